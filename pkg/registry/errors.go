package registry

import "fmt"

// ConflictError reports a registration that would make a (module, name) pair
// ambiguous: either two files in the same directory sharing a base name with
// different extensions, or an inline template colliding with a file template.
type ConflictError struct {
	// Name is the template base name both sides claim.
	Name string
	// Dir is the file template directory involved.
	Dir string
	// Module is the dotted name of the module owning the inline template.
	// Empty for same-directory extension clashes.
	Module string
}

func (e *ConflictError) Error() string {
	if e.Module == "" {
		return fmt.Sprintf("templatereg: conflicting templates found for name %q in directory %q: multiple templates with the same name and different extensions", e.Name, e.Dir)
	}
	return fmt.Sprintf("templatereg: conflicting templates found for name %q: the inline template in module %q conflicts with the file template in directory %q", e.Name, e.Module, e.Dir)
}

// LookupError reports a lookup that could not resolve a template name.
type LookupError struct {
	// Name is the template name that was searched for.
	Name string
	// Scope is the template directory for file lookups or the module dotted
	// name for inline lookups.
	Scope string
	// Inline marks errors raised by the inline registry.
	Inline bool
}

func (e *LookupError) Error() string {
	if e.Inline {
		return fmt.Sprintf("templatereg: inline template %q in %q cannot be found", e.Name, e.Scope)
	}
	return fmt.Sprintf("templatereg: template %q in %q cannot be found", e.Name, e.Scope)
}
