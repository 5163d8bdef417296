package analyzer

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// ConfigurationError reports a missing or unparsable build configuration.
// It is fatal for the whole run: no partial analysis is returned.
type ConfigurationError struct {
	Path string
	Err  error
}

func (e *ConfigurationError) Error() string {
	return fmt.Sprintf("build configuration %s: %v", e.Path, e.Err)
}

func (e *ConfigurationError) Unwrap() error { return e.Err }

// buildConfig is the subset of tsconfig.json the index reads.
type buildConfig struct {
	Include []string `json:"include"`
	Exclude []string `json:"exclude"`
}

// SourceIndex resolves the ordered set of source files to analyze for one
// project. It loads eagerly, once per run.
type SourceIndex struct {
	Root   string
	Files  []string
	filter *FileFilter
}

// LoadSourceIndex reads the build configuration at configPath (default
// <root>/tsconfig.json) and walks the project for candidate files.
func LoadSourceIndex(root, configPath string) (*SourceIndex, error) {
	if configPath == "" {
		configPath = filepath.Join(root, "tsconfig.json")
	}

	data, err := os.ReadFile(configPath)
	if err != nil {
		return nil, &ConfigurationError{Path: configPath, Err: err}
	}
	var cfg buildConfig
	if err := json.Unmarshal(stripJSONComments(data), &cfg); err != nil {
		return nil, &ConfigurationError{Path: configPath, Err: err}
	}

	index := &SourceIndex{
		Root:   root,
		filter: NewFileFilter(root, cfg.Exclude),
	}

	for _, dir := range walkRoots(root, cfg.Include) {
		files, err := index.filter.FindCandidateFiles(dir)
		if err != nil {
			return nil, fmt.Errorf("indexing %s: %w", dir, err)
		}
		index.Files = append(index.Files, files...)
	}
	return index, nil
}

// walkRoots derives walk starting points from tsconfig include entries:
// the non-glob directory prefix of each entry, falling back to the project
// root when none resolve to an existing directory.
func walkRoots(root string, include []string) []string {
	var roots []string
	seen := map[string]bool{}
	for _, entry := range include {
		prefix := entry
		if star := strings.IndexByte(prefix, '*'); star >= 0 {
			prefix = prefix[:star]
		}
		prefix = strings.TrimSuffix(filepath.ToSlash(prefix), "/")
		if prefix == "" {
			continue
		}
		dir := filepath.Join(root, filepath.FromSlash(prefix))
		info, err := os.Stat(dir)
		if err != nil || !info.IsDir() {
			continue
		}
		if !seen[dir] {
			seen[dir] = true
			roots = append(roots, dir)
		}
	}
	if len(roots) == 0 {
		roots = []string{root}
	}
	return roots
}

// stripJSONComments removes // and /* */ comments so JSONC-flavored
// tsconfig files parse with encoding/json. Content inside string literals
// is preserved.
func stripJSONComments(data []byte) []byte {
	out := make([]byte, 0, len(data))
	i := 0
	for i < len(data) {
		c := data[i]
		switch c {
		case '"':
			start := i
			i++
			for i < len(data) {
				if data[i] == '\\' {
					i += 2
					continue
				}
				if data[i] == '"' {
					i++
					break
				}
				i++
			}
			out = append(out, data[start:i]...)
			continue
		case '/':
			if i+1 < len(data) && data[i+1] == '/' {
				for i < len(data) && data[i] != '\n' {
					i++
				}
				continue
			}
			if i+1 < len(data) && data[i+1] == '*' {
				i += 2
				for i+1 < len(data) && !(data[i] == '*' && data[i+1] == '/') {
					i++
				}
				i += 2
				continue
			}
		}
		out = append(out, c)
		i++
	}
	return out
}
