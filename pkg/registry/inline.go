package registry

import "sort"

type inlineKey struct {
	module string
	name   string
}

type inlineEntry struct {
	template   Template
	associated bool
}

// inlineStore holds source-declared templates keyed by (module dotted name,
// template name). Not safe for concurrent use; the owning Registry serializes
// access.
type inlineStore struct {
	entries map[inlineKey]*inlineEntry
}

func newInlineStore() *inlineStore {
	return &inlineStore{entries: make(map[inlineKey]*inlineEntry)}
}

func (s *inlineStore) has(module ModuleInfo, name string) bool {
	_, ok := s.entries[inlineKey{module: module.DottedName(), name: name}]
	return ok
}

func (s *inlineStore) lookup(module ModuleInfo, name string) (*inlineEntry, error) {
	entry, ok := s.entries[inlineKey{module: module.DottedName(), name: name}]
	if !ok {
		return nil, &LookupError{Name: name, Scope: module.DottedName(), Inline: true}
	}
	return entry, nil
}

func (s *inlineStore) insert(module ModuleInfo, name string, template Template) {
	s.entries[inlineKey{module: module.DottedName(), name: name}] = &inlineEntry{template: template}
}

func (s *inlineStore) associate(module ModuleInfo, name string) {
	if entry, ok := s.entries[inlineKey{module: module.DottedName(), name: name}]; ok {
		entry.associated = true
	}
}

func (s *inlineStore) unassociated() []InlineRef {
	var refs []InlineRef
	for key, entry := range s.entries {
		if !entry.associated {
			refs = append(refs, InlineRef{Module: key.module, Name: key.name})
		}
	}
	sort.Slice(refs, func(i, j int) bool {
		if refs[i].Module != refs[j].Module {
			return refs[i].Module < refs[j].Module
		}
		return refs[i].Name < refs[j].Name
	})
	return refs
}
