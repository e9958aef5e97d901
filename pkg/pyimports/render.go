package pyimports

import (
	"github.com/siyuan-infoblox/py-imports-group/pkg/classifier"
	"github.com/siyuan-infoblox/py-imports-group/pkg/parser"
	"github.com/siyuan-infoblox/py-imports-group/pkg/store"
)

// Categorized holds rendered statements per category. A wrapped from-import
// is one multi-line string.
type Categorized struct {
	Future     []string
	Stdlib     []string
	ThirdParty []string
	Local      []string
}

// AllCategorized holds the four main and four type-checking categories
type AllCategorized struct {
	Main         Categorized
	TypeChecking Categorized
}

func (h *Helper) categorize(groups []store.Group, render func(store.Entry) []string) Categorized {
	var out Categorized
	slots := map[classifier.Category]*[]string{
		classifier.Future:     &out.Future,
		classifier.Stdlib:     &out.Stdlib,
		classifier.ThirdParty: &out.ThirdParty,
		classifier.Local:      &out.Local,
	}
	for _, group := range groups {
		slot := slots[group.Category]
		for _, e := range group.Entries {
			*slot = append(*slot, render(e)...)
		}
	}
	return out
}

// GetCategorized returns the rendered main-block statements per category
func (h *Helper) GetCategorized() Categorized {
	return h.categorize(h.store.Categorized(), h.formatter.Statements)
}

// GetTypeCheckingCategorized returns the rendered type-checking statements per
// category. They wrap as in GetTypeCheckingFormatted, one indentation level
// narrower than the main block, and carry no indentation themselves.
func (h *Helper) GetTypeCheckingCategorized() Categorized {
	return h.categorize(h.store.TypeCheckingCategorized(), h.formatter.TypeCheckingStatements)
}

// GetAllCategorized returns all eight categories
func (h *Helper) GetAllCategorized() AllCategorized {
	return AllCategorized{
		Main:         h.GetCategorized(),
		TypeChecking: h.GetTypeCheckingCategorized(),
	}
}

// GetFormatted renders the main import block. Type-checking imports are never
// part of it.
func (h *Helper) GetFormatted() []string {
	return h.formatter.Format(h.store.Categorized())
}

// GetTypeCheckingFormatted renders the "if TYPE_CHECKING:" block, or nothing
// when no type-checking import was added
func (h *Helper) GetTypeCheckingFormatted() []string {
	return h.formatter.FormatTypeChecking(h.store.TypeCheckingCategorized())
}

// GetFormattedAll renders the main block followed by the TYPE_CHECKING block.
// When that block is present the main block also imports TYPE_CHECKING from
// typing; the collected imports themselves are left unchanged.
func (h *Helper) GetFormattedAll() []string {
	if h.store.IsTypeCheckingEmpty() {
		return h.GetFormatted()
	}

	view := h.store.Clone()
	view.Add(parser.ImportSpec{Module: "typing", Items: []parser.Item{{Name: "TYPE_CHECKING"}}}, store.Main)

	lines := h.formatter.Format(view.Categorized())
	lines = append(lines, "")
	return append(lines, h.GetTypeCheckingFormatted()...)
}
