package formatter

import (
	"strings"
	"unicode/utf8"

	"github.com/siyuan-infoblox/py-imports-group/pkg/store"
)

const (
	DefaultMaxLineLength = 88 // black and ruff
	PEP8MaxLineLength    = 79
	DefaultIndentSize    = 4

	// TypeCheckingGuard opens the block holding type-checking-only imports
	TypeCheckingGuard = "if TYPE_CHECKING:"
)

// Options controls how import blocks are rendered
type Options struct {
	MaxLineLength   int  // longest single-line from-import, in characters
	IndentSize      int  // spaces per indentation level
	ForceSingleLine bool // never wrap from-imports
	ForceMultiline  bool // always wrap from-imports
}

// DefaultOptions matches black's line length
func DefaultOptions() Options {
	return Options{MaxLineLength: DefaultMaxLineLength, IndentSize: DefaultIndentSize}
}

func BlackOptions() Options {
	return DefaultOptions()
}

func PEP8Options() Options {
	return Options{MaxLineLength: PEP8MaxLineLength, IndentSize: DefaultIndentSize}
}

func (o Options) withDefaults() Options {
	if o.MaxLineLength <= 0 {
		o.MaxLineLength = DefaultMaxLineLength
	}
	if o.IndentSize <= 0 {
		o.IndentSize = DefaultIndentSize
	}
	return o
}

// Formatter renders store groups as PEP8 import blocks
type Formatter struct {
	options Options
}

// New creates a Formatter; zero option fields fall back to the defaults
func New(options Options) *Formatter {
	return &Formatter{options: options.withDefaults()}
}

func (f *Formatter) Options() Options {
	return f.options
}

// Format renders groups with the default options and the given line length
func Format(groups []store.Group, maxLineLength int) []string {
	options := DefaultOptions()
	options.MaxLineLength = maxLineLength
	return New(options).Format(groups)
}

// Format renders non-empty groups in order, separated by one blank line
func (f *Formatter) Format(groups []store.Group) []string {
	return f.formatGroups(groups, "", f.options.MaxLineLength)
}

// FormatTypeChecking renders groups nested under the TYPE_CHECKING guard.
// Nested lines lose one indentation level of width. Nothing is rendered when
// every group is empty.
func (f *Formatter) FormatTypeChecking(groups []store.Group) []string {
	body := f.formatGroups(groups, f.indent(), f.typeCheckingWidth())
	if len(body) == 0 {
		return nil
	}
	return append([]string{TypeCheckingGuard}, body...)
}

// Statements renders one entry as complete statements; a wrapped from-import
// is a single multi-line string
func (f *Formatter) Statements(e store.Entry) []string {
	return f.statementsAt(e, f.options.MaxLineLength)
}

// TypeCheckingStatements is Statements for an entry nested under the
// TYPE_CHECKING guard: it wraps at the same width as FormatTypeChecking and
// leaves the indentation to the caller.
func (f *Formatter) TypeCheckingStatements(e store.Entry) []string {
	return f.statementsAt(e, f.typeCheckingWidth())
}

func (f *Formatter) statementsAt(e store.Entry, width int) []string {
	rendered := f.entryStatements(e, width)
	statements := make([]string, len(rendered))
	for i, lines := range rendered {
		statements[i] = strings.Join(lines, "\n")
	}
	return statements
}

// FormatEntry renders one entry as lines
func (f *Formatter) FormatEntry(e store.Entry) []string {
	var lines []string
	for _, statement := range f.entryStatements(e, f.options.MaxLineLength) {
		lines = append(lines, statement...)
	}
	return lines
}

func (f *Formatter) formatGroups(groups []store.Group, indent string, width int) []string {
	var lines []string
	for _, group := range groups {
		if group.IsEmpty() {
			continue
		}
		if len(lines) > 0 {
			lines = append(lines, "")
		}
		for _, e := range group.Entries {
			for _, statement := range f.entryStatements(e, width) {
				for _, line := range statement {
					lines = append(lines, indent+line)
				}
			}
		}
	}
	return lines
}

// entryStatements renders the direct import first, then a wildcard import,
// then the named from-import
func (f *Formatter) entryStatements(e store.Entry, width int) [][]string {
	var statements [][]string
	if e.Direct {
		statements = append(statements, []string{directImport(e)})
	}

	names := make([]string, 0, len(e.Items))
	for _, item := range e.Items {
		if item.Name == "*" {
			statements = append(statements, []string{"from " + e.Module + " import *"})
			continue
		}
		names = append(names, item.String())
	}
	if len(names) > 0 {
		statements = append(statements, f.fromImport(e.Module, names, width))
	}
	return statements
}

func directImport(e store.Entry) string {
	if e.DirectAlias != "" {
		return "import " + e.Module + " as " + e.DirectAlias
	}
	return "import " + e.Module
}

func (f *Formatter) fromImport(module string, names []string, width int) []string {
	single := "from " + module + " import " + strings.Join(names, ", ")
	if f.options.ForceSingleLine || (!f.options.ForceMultiline && utf8.RuneCountInString(single) <= width) {
		return []string{single}
	}

	indent := f.indent()
	lines := make([]string, 0, len(names)+2)
	lines = append(lines, "from "+module+" import (")
	for _, name := range names {
		lines = append(lines, indent+name+",")
	}
	return append(lines, ")")
}

// typeCheckingWidth is the line length left after one level of indentation
func (f *Formatter) typeCheckingWidth() int {
	return f.options.MaxLineLength - f.options.IndentSize
}

func (f *Formatter) indent() string {
	return strings.Repeat(" ", f.options.IndentSize)
}
