package registry

// Template is an opaque handle for a renderable resource, either discovered on
// disk or declared inline. The registry never inspects template content;
// factories decide what concrete type sits behind the handle and callers
// type-assert to whatever capability they need.
type Template interface{}

// ModuleInfo describes the module that owns a set of templates. Implementations
// live outside the registry; pkg/module provides a directory-backed one.
type ModuleInfo interface {
	// DottedName returns the module identity, e.g. "app.admin.reports".
	DottedName() string
	// IsPackage reports whether the module is a package rather than a plain
	// module. Template directories are never registered for packages.
	IsPackage() bool
	// ResourcePath resolves a resource directory name relative to the module.
	ResourcePath(dirName string) string
}

// Factory builds a Template from a file found during a directory scan. The
// filename is the bare file name, dir the directory it was found in.
type Factory interface {
	New(filename, dir string) (Template, error)
}

// FactoryResolver maps a file extension (without the leading dot) to the
// Factory responsible for it. A false return means the extension is not
// recognized and the file is skipped with a warning.
type FactoryResolver interface {
	FactoryFor(extension string) (Factory, bool)
}

// WarningSink receives recoverable registration anomalies, such as files with
// unrecognized extensions. Warnings never affect control flow.
type WarningSink interface {
	Warn(message string)
}

// WarnFunc adapts a plain function to the WarningSink interface.
type WarnFunc func(message string)

// Warn calls the wrapped function.
func (f WarnFunc) Warn(message string) { f(message) }

// InlineRef identifies an inline template by its owning module's dotted name
// and the template name.
type InlineRef struct {
	Module string
	Name   string
}
