// Package gotemplate provides pongo2-backed template factories for file
// templates discovered during directory scans.
package gotemplate

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"path/filepath"
	"strings"
	"sync"

	"github.com/flosch/pongo2/v6"
	"github.com/microcosm-cc/bluemonday"

	"github.com/goliatone/go-templatereg/pkg/factory"
	"github.com/goliatone/go-templatereg/pkg/registry"
)

// DefaultExtensions lists the extensions RegisterDefaults wires up.
var DefaultExtensions = []string{"html", "tpl"}

// Option configures the factory before construction.
type Option func(*config)

type config struct {
	filters    map[string]func(input any, param any) (any, error)
	globalData map[string]any
	policy     *bluemonday.Policy
}

// WithFilter registers a template filter available to every template the
// factory builds.
func WithFilter(name string, fn func(input any, param any) (any, error)) Option {
	return func(cfg *config) {
		name = strings.TrimSpace(name)
		if name == "" || fn == nil {
			return
		}
		if cfg.filters == nil {
			cfg.filters = make(map[string]func(input any, param any) (any, error))
		}
		cfg.filters[name] = fn
	}
}

// WithGlobalData seeds context values available to every template.
func WithGlobalData(data map[string]any) Option {
	return func(cfg *config) {
		if len(data) == 0 {
			return
		}
		if cfg.globalData == nil {
			cfg.globalData = make(map[string]any, len(data))
		}
		for key, value := range data {
			cfg.globalData[strings.TrimSpace(key)] = value
		}
	}
}

// WithSanitizer runs rendered output through a bluemonday policy. Useful when
// template sources are not fully trusted.
func WithSanitizer(policy *bluemonday.Policy) Option {
	return func(cfg *config) {
		cfg.policy = policy
	}
}

// Factory builds pongo2-backed templates. One pongo2 template set is created
// per template directory so relative includes resolve within the directory.
type Factory struct {
	mu         sync.Mutex
	sets       map[string]*pongo2.TemplateSet
	globalData map[string]any
	policy     *bluemonday.Policy
}

var _ registry.Factory = (*Factory)(nil)

// New constructs a Factory applying any provided options.
func New(options ...Option) (*Factory, error) {
	cfg := &config{}
	for _, opt := range options {
		if opt == nil {
			continue
		}
		opt(cfg)
	}

	for name, fn := range cfg.filters {
		if err := registerFilter(name, fn); err != nil {
			return nil, err
		}
	}

	return &Factory{
		sets:       make(map[string]*pongo2.TemplateSet),
		globalData: cfg.globalData,
		policy:     cfg.policy,
	}, nil
}

// RegisterDefaults wires a shared Factory under the default extensions.
func RegisterDefaults(reg *factory.Registry, options ...Option) error {
	if reg == nil {
		return errors.New("gotemplate: factory registry is required")
	}
	f, err := New(options...)
	if err != nil {
		return err
	}
	for _, ext := range DefaultExtensions {
		if err := reg.Register(ext, f); err != nil {
			return err
		}
	}
	return nil
}

// New compiles the template file and returns the handle stored in the
// registry.
func (f *Factory) New(filename, dir string) (registry.Template, error) {
	set, err := f.setFor(dir)
	if err != nil {
		return nil, err
	}

	tmpl, err := set.FromFile(filename)
	if err != nil {
		return nil, fmt.Errorf("gotemplate: load template %q: %w", filepath.Join(dir, filename), err)
	}

	return &Template{
		path:   filepath.Join(dir, filename),
		tmpl:   tmpl,
		policy: f.policy,
	}, nil
}

func (f *Factory) setFor(dir string) (*pongo2.TemplateSet, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	if set, ok := f.sets[dir]; ok {
		return set, nil
	}

	loader, err := pongo2.NewLocalFileSystemLoader(dir)
	if err != nil {
		return nil, fmt.Errorf("gotemplate: create loader for %q: %w", dir, err)
	}
	set := pongo2.NewSet("templatereg:"+dir, loader)
	if len(f.globalData) > 0 {
		if set.Globals == nil {
			set.Globals = make(pongo2.Context)
		}
		for key, value := range f.globalData {
			set.Globals[key] = value
		}
	}
	f.sets[dir] = set
	return set, nil
}

func registerFilter(name string, fn func(input any, param any) (any, error)) error {
	if pongo2.FilterExists(name) {
		return fmt.Errorf("gotemplate: filter %q already exists", name)
	}
	filter := func(in *pongo2.Value, param *pongo2.Value) (*pongo2.Value, *pongo2.Error) {
		var paramVal any
		if param != nil {
			paramVal = param.Interface()
		}
		result, err := fn(in.Interface(), paramVal)
		if err != nil {
			return nil, &pongo2.Error{Sender: "custom_filter", OrigError: err}
		}
		return pongo2.AsValue(result), nil
	}
	return pongo2.RegisterFilter(name, filter)
}

// FromString builds an inline Template from raw template content, for
// registration through RegisterInline.
func FromString(content string, options ...Option) (*Template, error) {
	cfg := &config{}
	for _, opt := range options {
		if opt == nil {
			continue
		}
		opt(cfg)
	}

	set := pongo2.NewSet("templatereg:inline", pongo2.MustNewLocalFileSystemLoader(""))
	if len(cfg.globalData) > 0 {
		set.Globals = make(pongo2.Context)
		for key, value := range cfg.globalData {
			set.Globals[key] = value
		}
	}
	tmpl, err := set.FromString(content)
	if err != nil {
		return nil, fmt.Errorf("gotemplate: parse template string: %w", err)
	}
	return &Template{tmpl: tmpl, policy: cfg.policy}, nil
}

// Template is the concrete file template the factory produces. It satisfies
// the renderable capability callers type-assert out of the registry.
type Template struct {
	path   string
	tmpl   *pongo2.Template
	policy *bluemonday.Policy
}

// Path returns the absolute path the template was loaded from.
func (t *Template) Path() string { return t.path }

// Render executes the template with the provided data.
func (t *Template) Render(ctx context.Context, data map[string]any) ([]byte, error) {
	if t == nil || t.tmpl == nil {
		return nil, errors.New("gotemplate: template is nil")
	}
	select {
	case <-ctx.Done():
		return nil, ctx.Err()
	default:
	}

	var buf bytes.Buffer
	if err := t.tmpl.ExecuteWriter(pongo2.Context(data), &buf); err != nil {
		return nil, fmt.Errorf("gotemplate: execute template %q: %w", t.path, err)
	}

	if t.policy != nil {
		return t.policy.SanitizeBytes(buf.Bytes()), nil
	}
	return buf.Bytes(), nil
}
