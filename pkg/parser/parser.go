package parser

import (
	"errors"
	"fmt"
	"strings"
	"unicode"

	msgs "github.com/siyuan-infoblox/py-imports-group/pkg/errors"
)

// Sentinel errors; every *ParseError unwraps to exactly one of them.
var (
	ErrNotAnImport         = errors.New(msgs.ErrMsgNotAnImport)
	ErrMalformedFromImport = errors.New(msgs.ErrMsgMalformedFromImport)
	ErrInvalidAlias        = errors.New(msgs.ErrMsgInvalidAlias)
	ErrInvalidModule       = errors.New(msgs.ErrMsgInvalidModule)
)

// ParseError describes why a statement was rejected
type ParseError struct {
	Kind      error  // one of the Err* sentinels
	Statement string // the statement as given by the caller
	Detail    string // optional finer-grained reason
}

func (e *ParseError) Error() string {
	if e.Detail == "" {
		return fmt.Sprintf("%v: %q", e.Kind, e.Statement)
	}
	return fmt.Sprintf("%v: %s: %q", e.Kind, e.Detail, e.Statement)
}

func (e *ParseError) Unwrap() error {
	return e.Kind
}

func newError(kind error, statement, detail string) *ParseError {
	return &ParseError{Kind: kind, Statement: statement, Detail: detail}
}

// Parse turns one import statement into an ImportSpec.
//
// Accepted forms are "import <module>[ as <alias>]" and
// "from <dots><module> import <name>[ as <alias>], ...". The name list may be
// wrapped in parentheses, across several lines, with a trailing comma.
// Surrounding whitespace, a trailing semicolon and a trailing comment are
// ignored.
func Parse(text string) (ImportSpec, error) {
	specs, err := parse(text, false)
	if err != nil {
		return ImportSpec{}, err
	}
	return specs[0], nil
}

// ParseAll is Parse that also accepts "import a, b as c", returning one spec
// per module.
func ParseAll(text string) ([]ImportSpec, error) {
	return parse(text, true)
}

func parse(text string, allowMultiple bool) ([]ImportSpec, error) {
	stmt := normalize(text)

	if rest, ok := cutKeyword(stmt, "import"); ok {
		return parseDirect(text, rest, allowMultiple)
	}
	if rest, ok := cutKeyword(stmt, "from"); ok {
		spec, err := parseFrom(text, rest)
		if err != nil {
			return nil, err
		}
		return []ImportSpec{spec}, nil
	}
	return nil, newError(ErrNotAnImport, text, "")
}

// normalize drops comments line by line, then surrounding whitespace and a
// trailing semicolon
func normalize(text string) string {
	lines := strings.Split(text, "\n")
	for i, line := range lines {
		if j := strings.IndexByte(line, '#'); j >= 0 {
			lines[i] = line[:j]
		}
	}
	s := strings.TrimSpace(strings.Join(lines, "\n"))
	s = strings.TrimSuffix(s, ";")
	return strings.TrimSpace(s)
}

// cutKeyword strips a leading keyword that stands as its own token
func cutKeyword(s, keyword string) (string, bool) {
	if !strings.HasPrefix(s, keyword) {
		return "", false
	}
	rest := s[len(keyword):]
	if rest == "" {
		return "", true
	}
	if isSpace(rest[0]) || (keyword == "from" && rest[0] == '.') {
		return strings.TrimSpace(rest), true
	}
	return "", false
}

func parseDirect(text, rest string, allowMultiple bool) ([]ImportSpec, error) {
	if rest == "" {
		return nil, newError(ErrInvalidModule, text, "")
	}

	parts := strings.Split(rest, ",")
	if len(parts) > 1 && !allowMultiple {
		return nil, newError(ErrInvalidModule, text, msgs.ErrMsgMultipleModules)
	}

	specs := make([]ImportSpec, 0, len(parts))
	for _, part := range parts {
		fields := strings.Fields(part)
		if len(fields) == 0 || !isDottedName(fields[0]) {
			return nil, newError(ErrInvalidModule, text, "")
		}

		spec := ImportSpec{Module: fields[0]}
		switch {
		case len(fields) == 1:
		case fields[1] != "as":
			return nil, newError(ErrInvalidModule, text, "")
		case len(fields) != 3 || !isIdentifier(fields[2]):
			return nil, newError(ErrInvalidAlias, text, msgs.ErrMsgAliasNotIdentifier)
		default:
			spec.ModuleAlias = fields[2]
		}
		specs = append(specs, spec)
	}
	return specs, nil
}

func parseFrom(text, rest string) (ImportSpec, error) {
	level := 0
	for level < len(rest) && rest[level] == '.' {
		level++
	}
	rest = rest[level:]

	idx := findImportKeyword(rest)
	if idx < 0 {
		return ImportSpec{}, newError(ErrMalformedFromImport, text, msgs.ErrMsgMissingImportKeyword)
	}

	module := strings.TrimSpace(rest[:idx])
	if (module == "" && level == 0) || (module != "" && !isDottedName(module)) {
		return ImportSpec{}, newError(ErrInvalidModule, text, "")
	}

	items, err := parseNames(text, strings.TrimSpace(rest[idx+len("import"):]))
	if err != nil {
		return ImportSpec{}, err
	}

	return ImportSpec{Module: module, Level: level, Items: items}, nil
}

// findImportKeyword returns the offset of the first standalone "import" token
func findImportKeyword(s string) int {
	offset := 0
	for {
		i := strings.Index(s[offset:], "import")
		if i < 0 {
			return -1
		}
		i += offset
		end := i + len("import")
		before := i == 0 || isSpace(s[i-1])
		after := end == len(s) || isSpace(s[end]) || s[end] == '(' || s[end] == '*'
		if before && after {
			return i
		}
		offset = end
	}
}

func parseNames(text, names string) ([]Item, error) {
	parenthesized := false
	if strings.HasPrefix(names, "(") {
		if !strings.HasSuffix(names, ")") {
			return nil, newError(ErrMalformedFromImport, text, msgs.ErrMsgUnbalancedParens)
		}
		names = strings.TrimSpace(names[1 : len(names)-1])
		parenthesized = true
	}
	if strings.ContainsAny(names, "()") {
		return nil, newError(ErrMalformedFromImport, text, msgs.ErrMsgUnbalancedParens)
	}
	if names == "" {
		return nil, newError(ErrMalformedFromImport, text, msgs.ErrMsgNoImportedNames)
	}

	parts := strings.Split(names, ",")
	if parenthesized && len(parts) > 1 && strings.TrimSpace(parts[len(parts)-1]) == "" {
		parts = parts[:len(parts)-1]
	}

	items := make([]Item, 0, len(parts))
	index := make(map[string]int, len(parts))
	for _, part := range parts {
		fields := strings.Fields(part)
		if len(fields) == 0 {
			return nil, newError(ErrMalformedFromImport, text, msgs.ErrMsgEmptyNameSlot)
		}

		name := fields[0]
		if name == "*" && (len(parts) > 1 || parenthesized) {
			return nil, newError(ErrMalformedFromImport, text, msgs.ErrMsgInvalidName)
		}
		if name != "*" && !isIdentifier(name) {
			return nil, newError(ErrMalformedFromImport, text, msgs.ErrMsgInvalidName)
		}

		item := Item{Name: name}
		if len(fields) > 1 {
			if fields[1] != "as" {
				return nil, newError(ErrMalformedFromImport, text, msgs.ErrMsgInvalidName)
			}
			if name == "*" {
				return nil, newError(ErrInvalidAlias, text, msgs.ErrMsgStarAlias)
			}
			if len(fields) != 3 || !isIdentifier(fields[2]) {
				return nil, newError(ErrInvalidAlias, text, msgs.ErrMsgAliasNotIdentifier)
			}
			item.Alias = fields[2]
		}

		// repeated names collapse; a later alias replaces an earlier one
		if i, ok := index[name]; ok {
			if item.Alias != "" {
				items[i].Alias = item.Alias
			}
			continue
		}
		index[name] = len(items)
		items = append(items, item)
	}
	return items, nil
}

// keywords are the hard keywords; soft ones like "match" and "type" are
// valid names
var keywords = map[string]bool{
	"False": true, "None": true, "True": true, "and": true, "as": true,
	"assert": true, "async": true, "await": true, "break": true, "class": true,
	"continue": true, "def": true, "del": true, "elif": true, "else": true,
	"except": true, "finally": true, "for": true, "from": true, "global": true,
	"if": true, "import": true, "in": true, "is": true, "lambda": true,
	"nonlocal": true, "not": true, "or": true, "pass": true, "raise": true,
	"return": true, "try": true, "while": true, "with": true, "yield": true,
}

// isIdentifier reports whether s is a Python identifier other than a keyword
func isIdentifier(s string) bool {
	if s == "" || keywords[s] {
		return false
	}
	for i, r := range s {
		if r == '_' || unicode.IsLetter(r) {
			continue
		}
		if i > 0 && unicode.IsDigit(r) {
			continue
		}
		return false
	}
	return true
}

func isDottedName(s string) bool {
	for _, part := range strings.Split(s, ".") {
		if !isIdentifier(part) {
			return false
		}
	}
	return true
}

func isSpace(b byte) bool {
	return b == ' ' || b == '\t' || b == '\n' || b == '\r'
}
