package store

import (
	"slices"

	"github.com/siyuan-infoblox/py-imports-group/pkg/classifier"
	"github.com/siyuan-infoblox/py-imports-group/pkg/parser"
)

type section struct {
	entries map[entryKey]*entry
}

func newSection() *section {
	return &section{entries: make(map[entryKey]*entry)}
}

// merge folds spec into the entry for (category, path) and reports alias
// conflicts
func (s *section) merge(target Target, category classifier.Category, spec parser.ImportSpec) []Conflict {
	key := entryKey{category: category, module: spec.Path()}
	e, ok := s.entries[key]
	if !ok {
		e = &entry{items: make(map[string]string)}
		s.entries[key] = e
	}

	newConflict := func(name, previous, current string) Conflict {
		return Conflict{
			Target:   target,
			Category: category,
			Module:   key.module,
			Name:     name,
			Previous: previous,
			Current:  current,
		}
	}

	var conflicts []Conflict
	if spec.IsDirect() {
		if e.direct && e.directAlias != "" && spec.ModuleAlias != "" && e.directAlias != spec.ModuleAlias {
			conflicts = append(conflicts, newConflict(spec.Module, e.directAlias, spec.ModuleAlias))
		}
		e.direct = true
		if spec.ModuleAlias != "" {
			e.directAlias = spec.ModuleAlias
		}
		return conflicts
	}

	for _, item := range spec.Items {
		previous, seen := e.items[item.Name]
		if seen && item.Alias == "" {
			continue
		}
		if seen && previous != "" && previous != item.Alias {
			conflicts = append(conflicts, newConflict(item.Name, previous, item.Alias))
		}
		e.items[item.Name] = item.Alias
	}
	return conflicts
}

func (s *section) count() int {
	n := 0
	for _, e := range s.entries {
		n += len(e.items)
		if e.direct {
			n++
		}
	}
	return n
}

func (s *section) groups() []Group {
	groups := make([]Group, len(classifier.Categories))
	for i, category := range classifier.Categories {
		groups[i].Category = category
	}
	for key, e := range s.entries {
		groups[key.category].Entries = append(groups[key.category].Entries, e.toEntry(key))
	}
	for i := range groups {
		sortByKey(groups[i].Entries, func(e Entry) string { return e.Module })
	}
	return groups
}

func (s *section) clone() *section {
	c := newSection()
	for key, e := range s.entries {
		items := make(map[string]string, len(e.items))
		for name, alias := range e.items {
			items[name] = alias
		}
		c.entries[key] = &entry{direct: e.direct, directAlias: e.directAlias, items: items}
	}
	return c
}

// AllGroups holds the main and type-checking groups side by side
type AllGroups struct {
	Main         []Group
	TypeChecking []Group
}

// Store accumulates imports keyed by (category, module) in two isolated
// sections: the main one and the type-checking one.
//
// A Store is not safe for concurrent use.
type Store struct {
	classifier *classifier.Classifier
	sections   [2]*section
	conflicts  []Conflict
}

// New creates an empty store classifying with c
func New(c *classifier.Classifier) *Store {
	return &Store{
		classifier: c,
		sections:   [2]*section{newSection(), newSection()},
	}
}

// Classifier returns the classifier the store uses
func (s *Store) Classifier() *classifier.Classifier {
	return s.classifier
}

// Add classifies spec and merges it into the target section. It returns the
// alias conflicts caused by this call; the later alias has already won.
func (s *Store) Add(spec parser.ImportSpec, target Target) []Conflict {
	category := s.classifier.Classify(spec.Module, spec.Level)
	conflicts := s.sections[target].merge(target, category, spec)
	s.conflicts = append(s.conflicts, conflicts...)
	return conflicts
}

// Count returns the number of distinct imported names in the main section.
// A direct import counts its module once.
func (s *Store) Count() int {
	return s.sections[Main].count()
}

func (s *Store) CountTypeChecking() int {
	return s.sections[TypeChecking].count()
}

func (s *Store) IsEmpty() bool {
	return len(s.sections[Main].entries) == 0
}

func (s *Store) IsTypeCheckingEmpty() bool {
	return len(s.sections[TypeChecking].entries) == 0
}

// Reset empties both sections, the conflict log and the classification memo.
// Configuration is kept.
func (s *Store) Reset() {
	s.sections = [2]*section{newSection(), newSection()}
	s.conflicts = nil
	s.classifier.ClearCache()
}

// ClearCache drops memoized classifications only
func (s *Store) ClearCache() {
	s.classifier.ClearCache()
}

// Categorized returns the four main groups: Future, Stdlib, ThirdParty, Local
func (s *Store) Categorized() []Group {
	return s.sections[Main].groups()
}

// TypeCheckingCategorized returns the four type-checking groups
func (s *Store) TypeCheckingCategorized() []Group {
	return s.sections[TypeChecking].groups()
}

// AllCategorized returns all eight groups
func (s *Store) AllCategorized() AllGroups {
	return AllGroups{
		Main:         s.Categorized(),
		TypeChecking: s.TypeCheckingCategorized(),
	}
}

// Conflicts returns every alias conflict recorded since the last Reset
func (s *Store) Conflicts() []Conflict {
	return slices.Clone(s.conflicts)
}

// Clone returns a deep copy of the accumulated data sharing the classifier
func (s *Store) Clone() *Store {
	return &Store{
		classifier: s.classifier,
		sections:   [2]*section{s.sections[Main].clone(), s.sections[TypeChecking].clone()},
		conflicts:  slices.Clone(s.conflicts),
	}
}
