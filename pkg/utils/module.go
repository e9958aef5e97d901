package utils

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
)

const pyprojectFile = "pyproject.toml"

type pyprojectMeta struct {
	Project struct {
		Name string `toml:"name"`
	} `toml:"project"`
	Tool struct {
		Poetry struct {
			Name string `toml:"name"`
		} `toml:"poetry"`
	} `toml:"tool"`
}

// GetProjectPackage returns the importable package name of the project that
// contains path, read from the nearest pyproject.toml. Distribution names are
// normalized: "my-project" becomes "my_project". It returns "" when no
// pyproject.toml names the project.
func GetProjectPackage(path string) string {
	absPath, err := filepath.Abs(path)
	if err != nil {
		return ""
	}

	dir := absPath
	if info, err := os.Stat(absPath); err != nil || !info.IsDir() {
		dir = filepath.Dir(absPath)
	}

	maxIterations := 20 // Prevent infinite loop
	for i := 0; i < maxIterations; i++ {
		if name := projectName(filepath.Join(dir, pyprojectFile)); name != "" {
			return NormalizePackageName(name)
		}

		parent := filepath.Dir(dir)
		if parent == dir {
			break
		}
		dir = parent
	}
	return ""
}

func projectName(path string) string {
	data, err := os.ReadFile(path)
	if err != nil {
		return ""
	}
	var meta pyprojectMeta
	if _, err := toml.Decode(string(data), &meta); err != nil {
		return ""
	}
	if meta.Project.Name != "" {
		return meta.Project.Name
	}
	return meta.Tool.Poetry.Name
}

// NormalizePackageName turns a distribution name into an import name
func NormalizePackageName(name string) string {
	name = strings.TrimSpace(name)
	name = strings.ReplaceAll(name, "-", "_")
	name = strings.ReplaceAll(name, ".", "_")
	return strings.ToLower(name)
}
