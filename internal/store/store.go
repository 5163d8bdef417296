// Package store persists analysis snapshots to the output directory:
// the full result as JSON and the grouped module map as YAML.
package store

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"

	"github.com/docweave/docweave/internal/analyzer"
	"github.com/docweave/docweave/internal/grouper"
)

const (
	analysisFile = "analysis.json"
	modulesFile  = "modules.yaml"
)

// Store writes analysis artifacts under a fixed output directory.
type Store struct {
	outputDir string
}

// New creates a Store rooted at outputDir.
func New(outputDir string) *Store {
	return &Store{outputDir: outputDir}
}

// SaveAnalysis writes the full result snapshot and returns its path.
func (s *Store) SaveAnalysis(result *analyzer.AnalysisResult) (string, error) {
	data, err := json.MarshalIndent(result, "", "  ")
	if err != nil {
		return "", fmt.Errorf("marshaling analysis: %w", err)
	}
	path := filepath.Join(s.outputDir, analysisFile)
	if err := s.write(path, data); err != nil {
		return "", err
	}
	return path, nil
}

// moduleEntry is the persisted per-module view.
type moduleEntry struct {
	Routes []routeEntry `yaml:"routes"`
}

type routeEntry struct {
	Method  string `yaml:"method"`
	Path    string `yaml:"path"`
	Handler string `yaml:"handler"`
}

// SaveModules groups the result and writes the module map as YAML.
func (s *Store) SaveModules(result *analyzer.AnalysisResult) (string, error) {
	g := grouper.New()
	modules := g.Group(result.Routes, result.Services, result.Controllers)

	out := make(map[string]moduleEntry, len(modules))
	for name, routes := range modules {
		entry := moduleEntry{Routes: make([]routeEntry, 0, len(routes))}
		for _, r := range routes {
			entry.Routes = append(entry.Routes, routeEntry{
				Method:  r.Method,
				Path:    r.Path,
				Handler: r.Handler,
			})
		}
		out[name] = entry
	}

	data, err := yaml.Marshal(out)
	if err != nil {
		return "", fmt.Errorf("marshaling modules: %w", err)
	}
	path := filepath.Join(s.outputDir, modulesFile)
	if err := s.write(path, data); err != nil {
		return "", err
	}
	return path, nil
}

// GeneratedFiles lists the artifact paths this store may have written,
// for `docweave clean`.
func (s *Store) GeneratedFiles() []string {
	return []string{
		filepath.Join(s.outputDir, analysisFile),
		filepath.Join(s.outputDir, modulesFile),
	}
}

func (s *Store) write(path string, data []byte) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("mkdir %s: %w", filepath.Dir(path), err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("write %s: %w", path, err)
	}
	return nil
}
