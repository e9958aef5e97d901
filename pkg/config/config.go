// Package config loads pig settings from .pig.toml or the [tool.pig] table of
// pyproject.toml.
package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/BurntSushi/toml"

	msgs "github.com/siyuan-infoblox/py-imports-group/pkg/errors"
	"github.com/siyuan-infoblox/py-imports-group/pkg/formatter"
)

const (
	FileName          = ".pig.toml"
	PyprojectFileName = "pyproject.toml"

	maxParentLookups = 20
)

// Config mirrors the file settings. Zero values mean "not set".
type Config struct {
	PackageName     string   `toml:"package_name"`
	LocalPrefixes   []string `toml:"local_prefixes"`
	LocalPatterns   []string `toml:"local_patterns"`
	LineLength      int      `toml:"line_length"`
	IndentSize      int      `toml:"indent_size"`
	ForceSingleLine bool     `toml:"force_single_line"`
	ForceMultiline  bool     `toml:"force_multiline"`
}

type pyproject struct {
	Tool struct {
		Pig *Config `toml:"pig"`
	} `toml:"tool"`
}

// Load reads a config file. A pyproject.toml contributes its [tool.pig] table
// only; without one the result is empty.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("%s %s: %w", msgs.ErrMsgFailedToReadConfig, path, err)
	}

	if filepath.Base(path) == PyprojectFileName {
		var doc pyproject
		if _, err := toml.Decode(string(data), &doc); err != nil {
			return nil, fmt.Errorf("%s %s: %w", msgs.ErrMsgFailedToDecodeConfig, path, err)
		}
		if doc.Tool.Pig == nil {
			return &Config{}, nil
		}
		return doc.Tool.Pig, nil
	}

	var cfg Config
	if _, err := toml.Decode(string(data), &cfg); err != nil {
		return nil, fmt.Errorf("%s %s: %w", msgs.ErrMsgFailedToDecodeConfig, path, err)
	}
	return &cfg, nil
}

// Find walks from dir up to the filesystem root and returns the first
// .pig.toml, or the first pyproject.toml with a [tool.pig] table. It returns
// "" when neither exists.
func Find(dir string) (string, error) {
	dir, err := filepath.Abs(dir)
	if err != nil {
		return "", err
	}

	for i := 0; i < maxParentLookups; i++ {
		candidate := filepath.Join(dir, FileName)
		if _, err := os.Stat(candidate); err == nil {
			return candidate, nil
		}

		candidate = filepath.Join(dir, PyprojectFileName)
		if ok, err := hasToolTable(candidate); err != nil {
			return "", err
		} else if ok {
			return candidate, nil
		}

		parent := filepath.Dir(dir)
		if parent == dir {
			break
		}
		dir = parent
	}
	return "", nil
}

func hasToolTable(path string) (bool, error) {
	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("%s %s: %w", msgs.ErrMsgFailedToReadConfig, path, err)
	}
	var doc pyproject
	meta, err := toml.Decode(string(data), &doc)
	if err != nil {
		return false, fmt.Errorf("%s %s: %w", msgs.ErrMsgFailedToDecodeConfig, path, err)
	}
	return meta.IsDefined("tool", "pig"), nil
}

// Discover finds and loads the config for dir; an empty Config when none exists
func Discover(dir string) (*Config, string, error) {
	path, err := Find(dir)
	if err != nil || path == "" {
		return &Config{}, "", err
	}
	cfg, err := Load(path)
	if err != nil {
		return nil, "", err
	}
	return cfg, path, nil
}

// FormatOptions converts the layout settings; unset fields keep the defaults
func (c *Config) FormatOptions() formatter.Options {
	return formatter.Options{
		MaxLineLength:   c.LineLength,
		IndentSize:      c.IndentSize,
		ForceSingleLine: c.ForceSingleLine,
		ForceMultiline:  c.ForceMultiline,
	}
}
