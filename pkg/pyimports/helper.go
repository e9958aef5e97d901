// Package pyimports collects Python import statements emitted by code
// generators and renders them as one deduplicated, PEP8-ordered import block.
package pyimports

import (
	"io"
	"strings"

	"github.com/charmbracelet/log"

	"github.com/siyuan-infoblox/py-imports-group/pkg/classifier"
	msgs "github.com/siyuan-infoblox/py-imports-group/pkg/errors"
	"github.com/siyuan-infoblox/py-imports-group/pkg/formatter"
	"github.com/siyuan-infoblox/py-imports-group/pkg/parser"
	"github.com/siyuan-infoblox/py-imports-group/pkg/store"
)

// Config configures a Helper
type Config struct {
	PackageName   string            // project package; its imports are local
	LocalPrefixes []string          // extra dotted prefixes treated as local
	LocalPatterns []string          // glob patterns over module paths treated as local
	Format        formatter.Options // zero fields fall back to formatter defaults
	Logger        *log.Logger       // discards output when nil
}

// Helper accumulates imports and renders them. It is not safe for concurrent
// use; give each goroutine its own Helper.
type Helper struct {
	classifier *classifier.Classifier
	store      *store.Store
	formatter  *formatter.Formatter
	logger     *log.Logger
}

// New creates a Helper. It fails only when a local pattern does not compile.
func New(cfg Config) (*Helper, error) {
	c, err := classifier.New(classifier.Config{
		PackageName:   cfg.PackageName,
		LocalPrefixes: cfg.LocalPrefixes,
		LocalPatterns: cfg.LocalPatterns,
	})
	if err != nil {
		return nil, err
	}

	logger := cfg.Logger
	if logger == nil {
		logger = log.New(io.Discard)
	}

	return &Helper{
		classifier: c,
		store:      store.New(c),
		formatter:  formatter.New(cfg.Format),
		logger:     logger,
	}, nil
}

// Request describes an import structurally. No Items means "import Package".
type Request struct {
	Package      string
	Items        []string
	TypeChecking bool
}

// AddImport adds the import described by r
func (h *Helper) AddImport(r Request) error {
	target := store.Main
	if r.TypeChecking {
		target = store.TypeChecking
	}
	if len(r.Items) == 0 {
		return h.addStatement("import "+r.Package, target)
	}
	return h.addStatement(fromStatement(r.Package, r.Items), target)
}

// AddImportString parses and adds one statement to the main block.
// "import a, b" adds both modules. On error nothing is added.
func (h *Helper) AddImportString(statement string) error {
	return h.addStatement(statement, store.Main)
}

// AddTypeCheckingImport parses and adds one statement to the TYPE_CHECKING block
func (h *Helper) AddTypeCheckingImport(statement string) error {
	return h.addStatement(statement, store.TypeChecking)
}

// AddFromImport adds "from module import names..."
func (h *Helper) AddFromImport(module string, names ...string) error {
	return h.addStatement(fromStatement(module, names), store.Main)
}

func (h *Helper) AddTypeCheckingFromImport(module string, names ...string) error {
	return h.addStatement(fromStatement(module, names), store.TypeChecking)
}

// AddDirectImport adds "import module"
func (h *Helper) AddDirectImport(module string) error {
	return h.addStatement("import "+module, store.Main)
}

func (h *Helper) AddTypeCheckingDirectImport(module string) error {
	return h.addStatement("import "+module, store.TypeChecking)
}

func fromStatement(module string, names []string) string {
	return "from " + module + " import " + strings.Join(names, ", ")
}

func (h *Helper) addStatement(statement string, target store.Target) error {
	specs, err := parser.ParseAll(statement)
	if err != nil {
		h.logger.Debug("rejected statement", "statement", statement, "err", err)
		return err
	}
	for _, spec := range specs {
		h.addSpec(spec, target)
	}
	return nil
}

func (h *Helper) addSpec(spec parser.ImportSpec, target store.Target) {
	for _, conflict := range h.store.Add(spec, target) {
		h.logger.Warn(msgs.WarnMsgAliasConflict,
			"section", conflict.Target.String(),
			"module", conflict.Module,
			"name", conflict.Name,
			"previous", conflict.Previous,
			"current", conflict.Current,
		)
	}
	h.logger.Debug("merged import", "statement", spec.String(), "section", target.String())
}

// Configuration. Changes affect later additions only; merged entries keep
// their category.

func (h *Helper) PackageName() string {
	return h.classifier.Config().PackageName
}

func (h *Helper) SetPackageName(name string) {
	h.classifier.SetPackageName(name)
}

func (h *Helper) LocalPackagePrefixes() []string {
	return h.classifier.Config().LocalPrefixes
}

func (h *Helper) AddLocalPackagePrefix(prefix string) {
	h.classifier.AddLocalPrefixes(prefix)
}

func (h *Helper) AddLocalPackagePrefixes(prefixes ...string) {
	h.classifier.AddLocalPrefixes(prefixes...)
}

func (h *Helper) SetLocalPackagePrefixes(prefixes []string) {
	h.classifier.SetLocalPrefixes(prefixes)
}

// SetLocalPatterns replaces the local glob patterns; on error nothing changes
func (h *Helper) SetLocalPatterns(patterns []string) error {
	return h.classifier.SetLocalPatterns(patterns)
}

func (h *Helper) MaxLineLength() int {
	return h.formatter.Options().MaxLineLength
}

func (h *Helper) SetMaxLineLength(n int) {
	options := h.formatter.Options()
	options.MaxLineLength = n
	h.formatter = formatter.New(options)
}

func (h *Helper) FormatOptions() formatter.Options {
	return h.formatter.Options()
}

func (h *Helper) SetFormatOptions(options formatter.Options) {
	h.formatter = formatter.New(options)
}

// Queries

// Count returns the number of distinct imported names in the main block
func (h *Helper) Count() int {
	return h.store.Count()
}

func (h *Helper) CountTypeChecking() int {
	return h.store.CountTypeChecking()
}

func (h *Helper) IsEmpty() bool {
	return h.store.IsEmpty()
}

func (h *Helper) IsTypeCheckingEmpty() bool {
	return h.store.IsTypeCheckingEmpty()
}

// Conflicts returns the alias conflicts recorded since the last Reset
func (h *Helper) Conflicts() []store.Conflict {
	return h.store.Conflicts()
}

// Groups returns the four main groups as structured entries
func (h *Helper) Groups() []store.Group {
	return h.store.Categorized()
}

// AllGroups returns the main and type-checking groups as structured entries
func (h *Helper) AllGroups() store.AllGroups {
	return h.store.AllCategorized()
}

// Reset drops every collected import and the classification memo, keeping
// the configuration
func (h *Helper) Reset() {
	h.store.Reset()
}

// ClearCache drops memoized classifications only
func (h *Helper) ClearCache() {
	h.store.ClearCache()
}

// CloneConfig returns an empty Helper with the same configuration
func (h *Helper) CloneConfig() *Helper {
	c := h.classifier.Clone()
	return &Helper{
		classifier: c,
		store:      store.New(c),
		formatter:  formatter.New(h.formatter.Options()),
		logger:     h.logger,
	}
}
