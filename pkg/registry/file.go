package registry

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
)

// defaultDirSuffix is appended to the last dotted-name segment when a module
// never registered a template directory explicitly.
const defaultDirSuffix = "_templates"

type fileKey struct {
	dir  string
	name string
}

type fileEntry struct {
	path       string
	template   Template
	associated bool
}

// fileStore holds file-backed templates keyed by (directory, base name). It is
// not safe for concurrent use; the owning Registry serializes access.
type fileStore struct {
	entries map[fileKey]*fileEntry
	byPath  map[string]*fileEntry
	// dirs remembers which template directory each module registered, so
	// lookups resolve against the directory the scan actually used.
	dirs map[string]string
}

func newFileStore() *fileStore {
	return &fileStore{
		entries: make(map[fileKey]*fileEntry),
		byPath:  make(map[string]*fileEntry),
		dirs:    make(map[string]string),
	}
}

// templateDir resolves the template directory for a module: the directory
// recorded at registration time, or the conventional
// "<module name>_templates" sibling when the module was never scanned.
func (s *fileStore) templateDir(module ModuleInfo) string {
	if dir, ok := s.dirs[module.DottedName()]; ok {
		return dir
	}
	segments := strings.Split(module.DottedName(), ".")
	return module.ResourcePath(segments[len(segments)-1] + defaultDirSuffix)
}

func (s *fileStore) has(module ModuleInfo, name string) bool {
	_, ok := s.entries[fileKey{dir: s.templateDir(module), name: name}]
	return ok
}

func (s *fileStore) hasPath(path string) bool {
	_, ok := s.byPath[path]
	return ok
}

func (s *fileStore) lookup(module ModuleInfo, name string) (*fileEntry, error) {
	dir := s.templateDir(module)
	entry, ok := s.entries[fileKey{dir: dir, name: name}]
	if !ok {
		return nil, &LookupError{Name: name, Scope: dir}
	}
	return entry, nil
}

// associate marks the entry at path as claimed. Unknown paths are ignored so
// non-authoritative callers can associate idempotently.
func (s *fileStore) associate(path string) {
	if entry, ok := s.byPath[path]; ok {
		entry.associated = true
	}
}

func (s *fileStore) unassociated() []string {
	var paths []string
	for path, entry := range s.byPath {
		if !entry.associated {
			paths = append(paths, path)
		}
	}
	sort.Strings(paths)
	return paths
}

// scanDirectory lists a module's template directory and groups usable files by
// base name, warning about unrecognized extensions. It performs no insertion.
func scanDirectory(dir string, resolver FactoryResolver, warn func(string)) (map[string]scannedFile, error) {
	listing, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("templatereg: read template directory %q: %w", dir, err)
	}

	groups := make(map[string]scannedFile)
	for _, item := range listing {
		if item.IsDir() {
			continue
		}
		filename := item.Name()
		if skipFile(filename) {
			continue
		}

		extension := strings.TrimPrefix(filepath.Ext(filename), ".")
		factory, ok := resolver.FactoryFor(extension)
		if !ok {
			warn(fmt.Sprintf("templatereg: file %q has an unrecognized extension in directory %q", filename, dir))
			continue
		}

		name := strings.TrimSuffix(filename, filepath.Ext(filename))
		if _, exists := groups[name]; exists {
			return nil, &ConflictError{Name: name, Dir: dir}
		}
		groups[name] = scannedFile{filename: filename, factory: factory}
	}
	return groups, nil
}

type scannedFile struct {
	filename string
	factory  Factory
}

// skipFile filters out hidden files, editor backups and cache droppings
// before extension resolution runs.
func skipFile(filename string) bool {
	return strings.HasPrefix(filename, ".") ||
		strings.HasSuffix(filename, "~") ||
		strings.HasSuffix(filename, ".cache")
}

func (s *fileStore) insert(dir, name string, filename string, template Template) {
	entry := &fileEntry{
		path:     filepath.Join(dir, filename),
		template: template,
	}
	s.entries[fileKey{dir: dir, name: name}] = entry
	s.byPath[entry.path] = entry
}
