package store

import (
	"sort"

	"golang.org/x/text/cases"

	"github.com/siyuan-infoblox/py-imports-group/pkg/classifier"
	"github.com/siyuan-infoblox/py-imports-group/pkg/parser"
)

// Target selects the section an import is merged into
type Target int

const (
	Main         Target = iota // regular runtime imports
	TypeChecking               // imports guarded by "if TYPE_CHECKING:"
)

func (t Target) String() string {
	if t == TypeChecking {
		return "type-checking"
	}
	return "main"
}

// Entry is the merged view of every import of one module within a category
type Entry struct {
	Category    classifier.Category
	Module      string        // module as written, leading dots included
	Direct      bool          // the module was imported with "import X"
	// DirectAlias is the alias of the direct import, if any. Once set it
	// replaces the plain binding: "import numpy" followed by "import numpy as
	// np" renders only "import numpy as np", so code using the bare name
	// "numpy" needs its own import.
	DirectAlias string
	Items       []parser.Item // from-imported names, sorted case-insensitively
}

// Group holds the entries of one category in rendering order
type Group struct {
	Category classifier.Category
	Entries  []Entry
}

func (g Group) IsEmpty() bool {
	return len(g.Entries) == 0
}

// Conflict records a name imported under two different aliases. The later
// alias is kept.
type Conflict struct {
	Target   Target
	Category classifier.Category
	Module   string
	Name     string // imported name, or the module itself for a direct import
	Previous string
	Current  string
}

type entryKey struct {
	category classifier.Category
	module   string
}

type entry struct {
	direct      bool
	directAlias string
	items       map[string]string // name -> alias
}

func (e *entry) toEntry(key entryKey) Entry {
	out := Entry{
		Category:    key.category,
		Module:      key.module,
		Direct:      e.direct,
		DirectAlias: e.directAlias,
	}
	if len(e.items) > 0 {
		out.Items = make([]parser.Item, 0, len(e.items))
		for name, alias := range e.items {
			out.Items = append(out.Items, parser.Item{Name: name, Alias: alias})
		}
		sortByKey(out.Items, func(item parser.Item) string { return item.Name })
	}
	return out
}

// sortByKey orders values case-insensitively by key, falling back to byte
// order so equal folds still sort deterministically
func sortByKey[T any](values []T, key func(T) string) {
	caser := cases.Fold()
	folded := make(map[string]string, len(values))
	for _, v := range values {
		k := key(v)
		folded[k] = caser.String(k)
	}
	sort.SliceStable(values, func(i, j int) bool {
		a, b := key(values[i]), key(values[j])
		if folded[a] != folded[b] {
			return folded[a] < folded[b]
		}
		return a < b
	})
}
