package classifier

import (
	"fmt"
	"slices"
	"sort"
	"strings"

	"github.com/gobwas/glob"
	lru "github.com/hashicorp/golang-lru/v2"

	msgs "github.com/siyuan-infoblox/py-imports-group/pkg/errors"
	"github.com/siyuan-infoblox/py-imports-group/pkg/std"
)

// DefaultCacheSize bounds the number of memoized classifications
const DefaultCacheSize = 4096

// Config decides which modules belong to the consuming project
type Config struct {
	PackageName   string   // top-level package of the project, empty if none
	LocalPrefixes []string // dotted module prefixes treated as local
	LocalPatterns []string // glob patterns matched against the dotted module path
}

// Fingerprint identifies the configuration independently of slice order
func (c Config) Fingerprint() string {
	prefixes := slices.Clone(c.LocalPrefixes)
	sort.Strings(prefixes)
	patterns := slices.Clone(c.LocalPatterns)
	sort.Strings(patterns)
	return c.PackageName + "|" + strings.Join(prefixes, ",") + "|" + strings.Join(patterns, ",")
}

func (c Config) clone() Config {
	return Config{
		PackageName:   c.PackageName,
		LocalPrefixes: slices.Clone(c.LocalPrefixes),
		LocalPatterns: slices.Clone(c.LocalPatterns),
	}
}

type matcher struct {
	config   Config
	patterns []glob.Glob
}

func compilePatterns(patterns []string) ([]glob.Glob, error) {
	compiled := make([]glob.Glob, 0, len(patterns))
	for _, pattern := range patterns {
		g, err := glob.Compile(pattern, '.')
		if err != nil {
			return nil, fmt.Errorf("%s %q: %w", msgs.ErrMsgInvalidLocalPattern, pattern, err)
		}
		compiled = append(compiled, g)
	}
	return compiled, nil
}

func (m *matcher) classify(module string, level int) Category {
	switch {
	case level > 0:
		return Local
	case module == "__future__":
		return Future
	case m.isLocal(module):
		return Local
	case std.IsStandardModule(module):
		return Stdlib
	default:
		return ThirdParty
	}
}

func (m *matcher) isLocal(module string) bool {
	if m.config.PackageName != "" && std.TopLevel(module) == m.config.PackageName {
		return true
	}
	for _, prefix := range m.config.LocalPrefixes {
		if prefix == "" {
			continue
		}
		if module == prefix || strings.HasPrefix(module, prefix+".") {
			return true
		}
	}
	for _, g := range m.patterns {
		if g.Match(module) {
			return true
		}
	}
	return false
}

// Classify returns the category of a module under cfg without memoization.
// Patterns that do not compile are ignored.
func Classify(module string, level int, cfg Config) Category {
	m := matcher{config: cfg}
	for _, pattern := range cfg.LocalPatterns {
		if g, err := glob.Compile(pattern, '.'); err == nil {
			m.patterns = append(m.patterns, g)
		}
	}
	return m.classify(module, level)
}

type memoKey struct {
	module      string
	fingerprint string
}

// Classifier assigns categories and memoizes the results.
// Every configuration change purges the memo.
type Classifier struct {
	matcher     matcher
	fingerprint string
	memo        *lru.Cache[memoKey, Category]
}

// New creates a Classifier; it fails only when a local pattern does not compile
func New(cfg Config) (*Classifier, error) {
	memo, err := lru.New[memoKey, Category](DefaultCacheSize)
	if err != nil {
		return nil, err
	}
	c := &Classifier{memo: memo}
	if err := c.SetConfig(cfg); err != nil {
		return nil, err
	}
	return c, nil
}

// Classify returns the category for module imported with the given number of
// leading dots
func (c *Classifier) Classify(module string, level int) Category {
	if level > 0 {
		return Local
	}
	key := memoKey{module: module, fingerprint: c.fingerprint}
	if category, ok := c.memo.Get(key); ok {
		return category
	}
	category := c.matcher.classify(module, level)
	c.memo.Add(key, category)
	return category
}

// Config returns a copy of the current configuration
func (c *Classifier) Config() Config {
	return c.matcher.config.clone()
}

// SetConfig replaces the whole configuration. On error nothing changes.
func (c *Classifier) SetConfig(cfg Config) error {
	patterns, err := compilePatterns(cfg.LocalPatterns)
	if err != nil {
		return err
	}
	c.matcher = matcher{config: cfg.clone(), patterns: patterns}
	c.configChanged()
	return nil
}

func (c *Classifier) SetPackageName(name string) {
	c.matcher.config.PackageName = name
	c.configChanged()
}

func (c *Classifier) SetLocalPrefixes(prefixes []string) {
	c.matcher.config.LocalPrefixes = slices.Clone(prefixes)
	c.configChanged()
}

// AddLocalPrefixes appends prefixes that are not configured yet
func (c *Classifier) AddLocalPrefixes(prefixes ...string) {
	for _, prefix := range prefixes {
		if !slices.Contains(c.matcher.config.LocalPrefixes, prefix) {
			c.matcher.config.LocalPrefixes = append(c.matcher.config.LocalPrefixes, prefix)
		}
	}
	c.configChanged()
}

// SetLocalPatterns replaces the glob patterns. On error nothing changes.
func (c *Classifier) SetLocalPatterns(patterns []string) error {
	compiled, err := compilePatterns(patterns)
	if err != nil {
		return err
	}
	c.matcher.config.LocalPatterns = slices.Clone(patterns)
	c.matcher.patterns = compiled
	c.configChanged()
	return nil
}

// Clone returns a classifier with the same configuration and an empty memo
func (c *Classifier) Clone() *Classifier {
	// lru.New only fails for a non-positive size
	memo, _ := lru.New[memoKey, Category](DefaultCacheSize)
	return &Classifier{
		matcher: matcher{
			config:   c.matcher.config.clone(),
			patterns: slices.Clone(c.matcher.patterns),
		},
		fingerprint: c.fingerprint,
		memo:        memo,
	}
}

// ClearCache drops every memoized classification
func (c *Classifier) ClearCache() {
	c.memo.Purge()
}

// CacheLen returns the number of memoized classifications
func (c *Classifier) CacheLen() int {
	return c.memo.Len()
}

func (c *Classifier) configChanged() {
	c.fingerprint = c.matcher.config.Fingerprint()
	c.memo.Purge()
}
