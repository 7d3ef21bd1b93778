// Package templatereg tracks the templates an application's modules provide,
// whether discovered in per-module template directories or declared inline in
// source, and records which of them views actually claim. See pkg/registry for
// the core semantics.
package templatereg

import (
	"github.com/goliatone/go-templatereg/pkg/factory"
	"github.com/goliatone/go-templatereg/pkg/factory/gotemplate"
	"github.com/goliatone/go-templatereg/pkg/registry"
)

// Template aliases the opaque template handle stored by the registry.
type Template = registry.Template

// ModuleInfo aliases the module introspection contract.
type ModuleInfo = registry.ModuleInfo

// Registry aliases the coordinator owning both template stores.
type Registry = registry.Registry

// InlineRef identifies an inline template by module and name.
type InlineRef = registry.InlineRef

// ConflictError reports an ambiguous registration.
type ConflictError = registry.ConflictError

// LookupError reports a failed template lookup.
type LookupError = registry.LookupError

// WarningSink receives recoverable registration anomalies.
type WarningSink = registry.WarningSink

// WarnFunc adapts a plain function to the WarningSink interface.
type WarnFunc = registry.WarnFunc

// New constructs a Registry applying any provided options.
func New(options ...registry.Option) *Registry {
	return registry.New(options...)
}

// WithFactories injects the extension resolver used by directory scans.
func WithFactories(resolver registry.FactoryResolver) registry.Option {
	return registry.WithFactories(resolver)
}

// WithWarningSink injects the sink receiving scan warnings.
func WithWarningSink(sink registry.WarningSink) registry.Option {
	return registry.WithWarningSink(sink)
}

// DefaultFactories builds a factory registry with the pongo2-backed factory
// wired under the default extensions.
func DefaultFactories(options ...gotemplate.Option) (*factory.Registry, error) {
	reg := factory.NewRegistry()
	if err := gotemplate.RegisterDefaults(reg, options...); err != nil {
		return nil, err
	}
	return reg, nil
}
