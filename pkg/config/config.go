// Package config loads the YAML manifest that drives the registration pass:
// which modules exist, where their resources live and which directory holds
// their templates.
package config

import (
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/goliatone/go-templatereg/pkg/module"
	"github.com/goliatone/go-templatereg/pkg/registry"
)

// Manifest describes the modules whose template directories should be
// registered.
type Manifest struct {
	Modules []ModuleConfig `yaml:"modules"`
}

// ModuleConfig declares one module: its dotted name, filesystem root and
// template directory name.
type ModuleConfig struct {
	Name string `yaml:"name"`
	Path string `yaml:"path"`
	// Templates overrides the template directory name. Defaults to
	// "<last dotted-name segment>_templates".
	Templates string `yaml:"templates"`
	Package   bool   `yaml:"package"`
}

// Parse decodes and validates a manifest document.
func Parse(raw []byte) (Manifest, error) {
	var manifest Manifest
	if err := yaml.Unmarshal(raw, &manifest); err != nil {
		return Manifest{}, fmt.Errorf("config: parse manifest: %w", err)
	}
	for i, mod := range manifest.Modules {
		if strings.TrimSpace(mod.Name) == "" {
			return Manifest{}, fmt.Errorf("config: modules[%d]: name is required", i)
		}
		if strings.TrimSpace(mod.Path) == "" {
			return Manifest{}, fmt.Errorf("config: modules[%d] (%s): path is required", i, mod.Name)
		}
	}
	return manifest, nil
}

// Load reads and parses a manifest file.
func Load(path string) (Manifest, error) {
	if strings.TrimSpace(path) == "" {
		return Manifest{}, fmt.Errorf("config: manifest path is required")
	}
	raw, err := os.ReadFile(path)
	if err != nil {
		return Manifest{}, fmt.Errorf("config: read manifest: %w", err)
	}
	return Parse(raw)
}

// Module builds the registry.ModuleInfo for this entry.
func (c ModuleConfig) Module() *module.Module {
	var options []module.Option
	if c.Package {
		options = append(options, module.AsPackage())
	}
	return module.New(c.Name, c.Path, options...)
}

// TemplateDirName returns the configured template directory name or the
// conventional default.
func (c ModuleConfig) TemplateDirName() string {
	if dir := strings.TrimSpace(c.Templates); dir != "" {
		return dir
	}
	segments := strings.Split(c.Name, ".")
	return segments[len(segments)-1] + "_templates"
}

// Apply registers every module's template directory against the registry,
// stopping at the first failure.
func (m Manifest) Apply(reg *registry.Registry) error {
	if reg == nil {
		return fmt.Errorf("config: registry is required")
	}
	for _, mod := range m.Modules {
		if err := reg.RegisterDirectory(mod.Module(), mod.TemplateDirName()); err != nil {
			return fmt.Errorf("config: register module %q: %w", mod.Name, err)
		}
	}
	return nil
}
