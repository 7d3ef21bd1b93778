// Package testsupport provides fixtures shared by the registry test suites.
package testsupport

import (
	"os"
	"path/filepath"
	"sync"
	"testing"

	"github.com/goliatone/go-templatereg/pkg/module"
	"github.com/goliatone/go-templatereg/pkg/registry"
)

// CollectSink captures warnings for assertions.
type CollectSink struct {
	mu       sync.Mutex
	messages []string
}

// Warn records the message.
func (s *CollectSink) Warn(message string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.messages = append(s.messages, message)
}

// Messages returns a copy of everything warned so far.
func (s *CollectSink) Messages() []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]string, len(s.messages))
	copy(out, s.messages)
	return out
}

// StubTemplate is the opaque handle StubFactory produces.
type StubTemplate struct {
	Filename string
	Dir      string
}

// StubFactory builds StubTemplates and records every constructor call.
type StubFactory struct {
	mu    sync.Mutex
	built []string
	// Err, when set, is returned by every New call.
	Err error
}

// New records the call and returns a StubTemplate.
func (f *StubFactory) New(filename, dir string) (registry.Template, error) {
	if f.Err != nil {
		return nil, f.Err
	}
	f.mu.Lock()
	f.built = append(f.built, filepath.Join(dir, filename))
	f.mu.Unlock()
	return &StubTemplate{Filename: filename, Dir: dir}, nil
}

// Built returns the paths passed to New, in call order.
func (f *StubFactory) Built() []string {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := make([]string, len(f.built))
	copy(out, f.built)
	return out
}

// StubResolver recognizes a fixed set of extensions, all served by the same
// factory.
type StubResolver struct {
	Factory    registry.Factory
	Extensions []string
}

// FactoryFor reports the shared factory for recognized extensions.
func (r *StubResolver) FactoryFor(extension string) (registry.Factory, bool) {
	for _, ext := range r.Extensions {
		if ext == extension {
			return r.Factory, true
		}
	}
	return nil, false
}

// WriteModuleDir creates a module root under t.TempDir(), writes the given
// files into its template directory and returns the module plus the template
// directory path.
func WriteModuleDir(t *testing.T, dotted, dirName string, files map[string]string) (*module.Module, string) {
	t.Helper()

	root := t.TempDir()
	dir := filepath.Join(root, dirName)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		t.Fatalf("create template dir: %v", err)
	}
	for name, content := range files {
		if err := os.WriteFile(filepath.Join(dir, name), []byte(content), 0o644); err != nil {
			t.Fatalf("write template %s: %v", name, err)
		}
	}
	return module.New(dotted, root), dir
}
