package analyzer

import (
	"bufio"
	"os"
	"path/filepath"
	"strings"
)

// sourceExtensions are the file types the analyzer looks at.
var sourceExtensions = []string{".ts", ".tsx", ".js", ".mjs"}

// hardExcludeMarkers are always skipped regardless of ignore patterns:
// vendored dependencies and test/spec files never contribute routes.
var hardExcludeMarkers = []string{"node_modules", ".spec.", ".test."}

// FileFilter decides which files under a project root are analysis
// candidates, combining built-in markers, gitignore-style patterns from
// .docweaveignore and any extra patterns handed in by the caller.
// Patterns are matched against root-relative paths.
type FileFilter struct {
	root     string
	patterns []string
}

var defaultIgnores = []string{
	"node_modules/**",
	"dist/**",
	"build/**",
	"coverage/**",
	".git/**",
	"**/*.d.ts",
	"**/__tests__/**",
	"**/__mocks__/**",
}

// NewFileFilter builds a filter from the defaults, the project's
// .docweaveignore (if present) and extra patterns (typically the build
// configuration's exclude list).
func NewFileFilter(root string, extra []string) *FileFilter {
	f := &FileFilter{root: root}
	f.patterns = append(f.patterns, defaultIgnores...)
	f.patterns = append(f.patterns, extra...)
	f.loadIgnoreFile(filepath.Join(root, ".docweaveignore"))
	return f
}

func (f *FileFilter) loadIgnoreFile(path string) {
	file, err := os.Open(path)
	if err != nil {
		return
	}
	defer file.Close()

	scanner := bufio.NewScanner(file)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		f.patterns = append(f.patterns, line)
	}
}

// FindCandidateFiles walks dir and returns every non-excluded source file,
// in walk order (lexical, so runs are reproducible).
func (f *FileFilter) FindCandidateFiles(dir string) ([]string, error) {
	var candidates []string
	err := filepath.Walk(dir, func(path string, info os.FileInfo, err error) error {
		if err != nil {
			return err
		}
		rel, err := filepath.Rel(f.root, path)
		if err != nil {
			return err
		}
		if info.IsDir() {
			if f.Excluded(rel) {
				return filepath.SkipDir
			}
			return nil
		}
		if !isSourceFile(path) {
			return nil
		}
		if !f.Excluded(rel) {
			candidates = append(candidates, path)
		}
		return nil
	})
	return candidates, err
}

func isSourceFile(path string) bool {
	for _, ext := range sourceExtensions {
		if strings.HasSuffix(path, ext) {
			return true
		}
	}
	return false
}

// Excluded reports whether relPath matches a hard marker or an ignore
// pattern.
func (f *FileFilter) Excluded(relPath string) bool {
	normalized := filepath.ToSlash(relPath)
	for _, marker := range hardExcludeMarkers {
		if strings.Contains(normalized, marker) {
			return true
		}
	}
	for _, pattern := range f.patterns {
		if matchPattern(pattern, normalized) {
			return true
		}
	}
	return false
}

// matchPattern implements a gitignore-style subset: "**" spans
// directories, "*" matches within one segment, bare names match as
// directory prefixes.
func matchPattern(pattern, path string) bool {
	if strings.Contains(pattern, "**") {
		return matchDoubleStar(pattern, path)
	}
	if strings.Contains(pattern, "*") {
		return matchSegments(strings.Split(pattern, "/"), strings.Split(path, "/"))
	}
	if pattern == path {
		return true
	}
	return strings.HasPrefix(path, strings.TrimSuffix(pattern, "/")+"/")
}

func matchDoubleStar(pattern, path string) bool {
	parts := strings.SplitN(pattern, "**", 2)
	if len(parts) != 2 {
		return strings.Contains(path, strings.ReplaceAll(pattern, "**", ""))
	}
	prefix := strings.TrimSuffix(parts[0], "/")
	suffix := strings.TrimPrefix(parts[1], "/")

	if prefix != "" && !strings.HasPrefix(path, prefix) {
		return false
	}
	if suffix == "" {
		return true
	}
	if strings.Contains(suffix, "*") {
		rest := path
		if prefix != "" {
			rest = strings.TrimPrefix(path, prefix+"/")
		}
		// A "**/" prefix means the suffix may match any trailing segment run.
		segs := strings.Split(rest, "/")
		want := strings.Split(suffix, "/")
		for start := 0; start+len(want) <= len(segs); start++ {
			if matchSegments(want, segs[start:start+len(want)]) {
				return true
			}
		}
		return false
	}
	return strings.HasSuffix(path, suffix)
}

func matchSegments(patternParts, pathParts []string) bool {
	if len(patternParts) > len(pathParts) {
		return false
	}
	for i, part := range patternParts {
		if !matchSegment(part, pathParts[i]) {
			return false
		}
	}
	return true
}

func matchSegment(pattern, segment string) bool {
	if pattern == "*" {
		return true
	}
	if !strings.Contains(pattern, "*") {
		return pattern == segment
	}
	parts := strings.Split(pattern, "*")
	idx := 0
	for i, part := range parts {
		if part == "" {
			continue
		}
		pos := strings.Index(segment[idx:], part)
		if pos == -1 {
			return false
		}
		if i == 0 && pos != 0 {
			return false
		}
		idx += pos + len(part)
	}
	if last := parts[len(parts)-1]; last != "" {
		return strings.HasSuffix(segment, last)
	}
	return true
}

// DefaultIgnoreFile is the content `docweave init` writes to
// .docweaveignore.
const DefaultIgnoreFile = `# docweave ignore patterns
# gitignore-style globs for files and directories to skip during analysis

# Dependencies and build output
node_modules/**
dist/**
build/**
coverage/**

# Declarations and generated code
**/*.d.ts
**/generated/**

# Tests
**/*.spec.ts
**/*.test.ts
**/__tests__/**
**/__mocks__/**

# Tooling
.git/**
.idea/**
.vscode/**
`

// WriteDefaultIgnoreFile creates the project's .docweaveignore.
func WriteDefaultIgnoreFile(root string) error {
	return os.WriteFile(filepath.Join(root, ".docweaveignore"), []byte(DefaultIgnoreFile), 0o644)
}
