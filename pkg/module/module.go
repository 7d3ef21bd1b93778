// Package module provides a directory-backed implementation of the
// registry.ModuleInfo contract for applications whose modules map onto
// filesystem trees.
package module

import (
	"path/filepath"
	"strings"
)

// Option configures a Module during construction.
type Option func(*Module)

// AsPackage marks the module as a package. The registry skips template
// directory registration for packages.
func AsPackage() Option {
	return func(m *Module) {
		m.pkg = true
	}
}

// Module identifies one application module: a dotted name plus the directory
// its resources live under.
type Module struct {
	dotted string
	dir    string
	pkg    bool
}

// New builds a Module for the given dotted name rooted at dir.
func New(dottedName, dir string, options ...Option) *Module {
	m := &Module{
		dotted: strings.TrimSpace(dottedName),
		dir:    dir,
	}
	for _, opt := range options {
		if opt == nil {
			continue
		}
		opt(m)
	}
	return m
}

// DottedName returns the module identity, e.g. "app.admin.reports".
func (m *Module) DottedName() string { return m.dotted }

// Name returns the last segment of the dotted name.
func (m *Module) Name() string {
	segments := strings.Split(m.dotted, ".")
	return segments[len(segments)-1]
}

// IsPackage reports whether the module is a package.
func (m *Module) IsPackage() bool { return m.pkg }

// ResourcePath resolves a resource directory name against the module root.
func (m *Module) ResourcePath(dirName string) string {
	return filepath.Join(m.dir, dirName)
}
