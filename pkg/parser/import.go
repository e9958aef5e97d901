package parser

import "strings"

// Item is one imported name of a from-import, with an optional alias
type Item struct {
	Name  string // imported name, or "*"
	Alias string // empty if no alias
}

func (i Item) String() string {
	if i.Alias == "" {
		return i.Name
	}
	return i.Name + " as " + i.Alias
}

// ImportSpec represents a single parsed import statement.
//
// A spec with no Items is a direct import ("import X"); a spec with Items is a
// from-import. The two forms never mix.
type ImportSpec struct {
	Module      string // dotted module path, empty for "from . import x"
	Level       int    // number of leading dots, 0 for absolute imports
	ModuleAlias string // alias of "import X as Y"
	Items       []Item // unique by name, in statement order
}

// IsDirect reports whether the spec is an "import X" statement
func (s ImportSpec) IsDirect() bool {
	return len(s.Items) == 0
}

// IsRelative reports whether the spec uses leading dots
func (s ImportSpec) IsRelative() bool {
	return s.Level > 0
}

// Path returns the module as written in source, leading dots included
func (s ImportSpec) Path() string {
	return strings.Repeat(".", s.Level) + s.Module
}

// String renders the spec as a single-line statement
func (s ImportSpec) String() string {
	if s.IsDirect() {
		if s.ModuleAlias != "" {
			return "import " + s.Module + " as " + s.ModuleAlias
		}
		return "import " + s.Module
	}
	names := make([]string, len(s.Items))
	for i, item := range s.Items {
		names[i] = item.String()
	}
	return "from " + s.Path() + " import " + strings.Join(names, ", ")
}
