// Package registry maps symbolic template names, scoped to an owning module,
// to opaque template handles discovered on disk or declared inline in source,
// and tracks whether each registered template has been claimed by a view.
//
// Setup runs in two phases: a registration pass populates both stores in any
// order, then view construction resolves (module, name) pairs through Lookup,
// optionally marking the winning entry as associated. A final audit pass reads
// the unassociated sets to flag templates nobody claimed.
package registry

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"sync"
)

// Option configures a Registry during construction.
type Option func(*Registry)

// WithFactories injects the extension resolver used by directory scans.
func WithFactories(resolver FactoryResolver) Option {
	return func(r *Registry) {
		r.factories = resolver
	}
}

// WithWarningSink injects the sink receiving recoverable scan anomalies.
// Without a sink warnings are discarded.
func WithWarningSink(sink WarningSink) Option {
	return func(r *Registry) {
		r.sink = sink
	}
}

// Registry owns the file and inline template stores and enforces the
// cross-store invariant: a (module, name) pair never resolves to both an
// inline and a file-backed template. A single mutex guards both stores so a
// conflict check plus insertion is atomic relative to other registrations.
type Registry struct {
	mu        sync.Mutex
	files     *fileStore
	inline    *inlineStore
	factories FactoryResolver
	sink      WarningSink
}

// New constructs an empty Registry applying any provided options.
func New(options ...Option) *Registry {
	r := &Registry{
		files:  newFileStore(),
		inline: newInlineStore(),
	}
	for _, opt := range options {
		if opt == nil {
			continue
		}
		opt(r)
	}
	return r
}

// RegisterDirectory scans the module's template directory and registers one
// file template per base name. Files with unrecognized extensions are skipped
// with a warning. Two files sharing a base name, or a base name already taken
// by an inline template of the same module, abort the whole call with a
// *ConflictError and leave the registry untouched. Re-registering a directory
// with unchanged contents is a no-op that preserves associated flags.
func (r *Registry) RegisterDirectory(module ModuleInfo, dirName string) error {
	if module == nil {
		return errors.New("templatereg: module info is required")
	}
	// Template directories are never registered for packages; their
	// templates belong to the modules inside them.
	if module.IsPackage() {
		return nil
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if r.factories == nil {
		return errors.New("templatereg: factory resolver is not configured")
	}

	dir := module.ResourcePath(dirName)
	info, err := os.Stat(dir)
	if err != nil || !info.IsDir() {
		return nil
	}

	groups, err := scanDirectory(dir, r.factories, r.warn)
	if err != nil {
		return err
	}

	// Resolve conflicts and build templates before touching the store so a
	// failed registration leaves no partial state.
	type pending struct {
		name     string
		filename string
		template Template
	}
	var inserts []pending
	names := make([]string, 0, len(groups))
	for name := range groups {
		names = append(names, name)
	}
	sort.Strings(names)

	for _, name := range names {
		file := groups[name]
		if r.files.hasPath(filepath.Join(dir, file.filename)) {
			continue
		}
		if r.inline.has(module, name) {
			return conflictError(module, name, dir)
		}
		template, err := file.factory.New(file.filename, dir)
		if err != nil {
			return fmt.Errorf("templatereg: build template %q in %q: %w", file.filename, dir, err)
		}
		inserts = append(inserts, pending{name: name, filename: file.filename, template: template})
	}

	for _, item := range inserts {
		r.files.insert(dir, item.name, item.filename, item.template)
	}
	r.files.dirs[module.DottedName()] = dir
	return nil
}

// RegisterInline registers a source-declared template under (module, name).
// Re-registering an existing key is a no-op. A name already resolving to a
// file template in the module's template directory fails with *ConflictError.
func (r *Registry) RegisterInline(module ModuleInfo, name string, template Template) error {
	if module == nil {
		return errors.New("templatereg: module info is required")
	}
	if strings.TrimSpace(name) == "" {
		return errors.New("templatereg: template name is required")
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if r.inline.has(module, name) {
		return nil
	}
	if r.files.has(module, name) {
		return conflictError(module, name, r.files.templateDir(module))
	}
	r.inline.insert(module, name, template)
	return nil
}

// Lookup resolves (module, name) against the file store first, falling back
// to the inline store. When both fail the file-side *LookupError is returned.
// With markAssociated set the winning entry is claimed before returning.
func (r *Registry) Lookup(module ModuleInfo, name string, markAssociated bool) (Template, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	entry, fileErr := r.files.lookup(module, name)
	if fileErr == nil {
		if markAssociated {
			entry.associated = true
		}
		return entry.template, nil
	}

	inlineEntry, err := r.inline.lookup(module, name)
	if err != nil {
		return nil, fileErr
	}
	if markAssociated {
		inlineEntry.associated = true
	}
	return inlineEntry.template, nil
}

// LookupFile resolves a name against the file store only.
func (r *Registry) LookupFile(module ModuleInfo, name string) (Template, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	entry, err := r.files.lookup(module, name)
	if err != nil {
		return nil, err
	}
	return entry.template, nil
}

// LookupInline resolves a name against the inline store only.
func (r *Registry) LookupInline(module ModuleInfo, name string) (Template, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	entry, err := r.inline.lookup(module, name)
	if err != nil {
		return nil, err
	}
	return entry.template, nil
}

// AssociateFile marks the file template at path as claimed. Unknown or
// already-associated paths are ignored so two views in different modules can
// claim the same template.
func (r *Registry) AssociateFile(path string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.files.associate(path)
}

// AssociateInline marks the inline template under (module, name) as claimed.
func (r *Registry) AssociateInline(module ModuleInfo, name string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.inline.associate(module, name)
}

// UnassociatedFiles returns the sorted paths of file templates no view has
// claimed.
func (r *Registry) UnassociatedFiles() []string {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.files.unassociated()
}

// UnassociatedInline returns the sorted (module, name) pairs of inline
// templates no view has claimed.
func (r *Registry) UnassociatedInline() []InlineRef {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.inline.unassociated()
}

// ReportUnassociated emits one warning per unassociated inline (module, name)
// pair and a single aggregated warning for unassociated file templates.
// Intended for the audit pass at the end of setup.
func (r *Registry) ReportUnassociated() {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, ref := range r.inline.unassociated() {
		r.warn(fmt.Sprintf("templatereg: found unassociated inline template %q in module %q", ref.Name, ref.Module))
	}

	if paths := r.files.unassociated(); len(paths) > 0 {
		r.warn(fmt.Sprintf("templatereg: found unassociated file template(s): %s", strings.Join(paths, ", ")))
	}
}

// Clear wipes both stores. Test-only reset; never called during normal
// operation.
func (r *Registry) Clear() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.files = newFileStore()
	r.inline = newInlineStore()
}

func (r *Registry) warn(message string) {
	if r.sink != nil {
		r.sink.Warn(message)
	}
}

// conflictError builds the error reported when an inline and a file template
// would coexist under the same (module, name) pair. Both registration
// directions go through it so the message never diverges.
func conflictError(module ModuleInfo, name, fileDir string) *ConflictError {
	return &ConflictError{Name: name, Module: module.DottedName(), Dir: fileDir}
}
