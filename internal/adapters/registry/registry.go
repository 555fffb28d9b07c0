package registry

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/pigi/proxy/internal/core/models"
)

// Registry is the immutable package-name to repository mapping. It is built
// once at startup and only read afterwards, so concurrent use needs no
// locking.
type Registry struct {
	repos map[string]models.Repository
	names []string
}

// New builds a Registry from a raw mapping, validating every entry.
func New(repos map[string]models.Repository) (*Registry, error) {
	names := make([]string, 0, len(repos))
	for pkg, repo := range repos {
		if pkg == "" {
			return nil, fmt.Errorf("registry entry with empty package name")
		}
		if repo.Owner == "" || repo.Name == "" {
			return nil, fmt.Errorf("registry entry %q: owner and name must be set", pkg)
		}
		names = append(names, pkg)
	}
	sort.Strings(names)

	return &Registry{repos: repos, names: names}, nil
}

// Load reads the registry from a source file, dispatching on its extension:
// .json (default), .yaml/.yml, or a SQLite database (.db/.sqlite/.sqlite3).
func Load(path string) (*Registry, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return loadYAML(path)
	case ".db", ".sqlite", ".sqlite3":
		return loadSQLite(path)
	default:
		return loadJSON(path)
	}
}

func loadJSON(path string) (*Registry, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading registry source: %w", err)
	}

	var repos map[string]models.Repository
	if err := json.Unmarshal(data, &repos); err != nil {
		return nil, fmt.Errorf("parsing registry source: %w", err)
	}
	return New(repos)
}

func loadYAML(path string) (*Registry, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading registry source: %w", err)
	}

	var repos map[string]models.Repository
	if err := yaml.Unmarshal(data, &repos); err != nil {
		return nil, fmt.Errorf("parsing registry source: %w", err)
	}
	return New(repos)
}

// All returns every package name, sorted ascending.
func (r *Registry) All() []string {
	out := make([]string, len(r.names))
	copy(out, r.names)
	return out
}

// Get looks up a package by exact, case-sensitive name.
func (r *Registry) Get(name string) (models.Repository, bool) {
	repo, ok := r.repos[name]
	return repo, ok
}

// Len returns the number of registered packages.
func (r *Registry) Len() int {
	return len(r.names)
}
