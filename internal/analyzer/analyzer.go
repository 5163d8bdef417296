package analyzer

import (
	"fmt"
	"os"
	"time"
)

// Analyzer assembles the full analysis result for one project. The pipeline
// is strictly sequential: the source index loads once, then every file
// is processed in order with nothing shared between files except the
// accumulating result slices. There is no cancellation; a run either
// completes or fails as a whole.
type Analyzer struct {
	declExtractor    *DeclarationExtractor
	patternExtractor *PatternExtractor
}

// New creates an Analyzer with both extractors.
func New() *Analyzer {
	return &Analyzer{
		declExtractor:    NewDeclarationExtractor(),
		patternExtractor: NewPatternExtractor(),
	}
}

// Analyze runs the whole pipeline over the project at root. configPath may
// be empty to use the conventional tsconfig.json location.
//
// Per file the declaration scan runs first and its controller routes are
// flattened into the result; the pattern scan then runs over the same raw
// text and its routes are appended as well. The two passes are independent
// and their outputs are concatenated without any cross-check, so a
// registration visible to both appears twice.
func (a *Analyzer) Analyze(root, configPath string) (*AnalysisResult, error) {
	start := time.Now()

	index, err := LoadSourceIndex(root, configPath)
	if err != nil {
		return nil, err
	}

	result := &AnalysisResult{
		Framework:   DetectFramework(root),
		Routes:      []Route{},
		Controllers: []Controller{},
		Services:    []Service{},
		Types:       []TypeDef{},
	}

	for _, file := range index.Files {
		if err := a.analyzeFile(file, result); err != nil {
			// No per-file fault containment: one bad file aborts the run.
			return nil, fmt.Errorf("analyzing %s: %w", file, err)
		}
	}

	result.Metadata = Metadata{
		TotalRoutes:      len(result.Routes),
		TotalControllers: len(result.Controllers),
		TotalServices:    len(result.Services),
		TotalTypes:       len(result.Types),
		FilesAnalyzed:    len(index.Files),
		Elapsed:          time.Since(start),
	}
	return result, nil
}

func (a *Analyzer) analyzeFile(path string, result *AnalysisResult) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return err
	}
	src := string(data)

	decl := a.declExtractor.Extract(src, path)
	result.Controllers = append(result.Controllers, decl.Controllers...)
	result.Services = append(result.Services, decl.Services...)
	result.Types = append(result.Types, decl.Types...)
	for _, c := range decl.Controllers {
		result.Routes = append(result.Routes, c.Routes...)
	}

	result.Routes = append(result.Routes, a.patternExtractor.Extract(src)...)
	return nil
}
