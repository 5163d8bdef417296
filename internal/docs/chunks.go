package docs

import (
	"sort"
	"strings"

	"github.com/docweave/docweave/internal/analyzer"
	"github.com/docweave/docweave/internal/grouper"
)

// ModuleChunk is a restricted view of an AnalysisResult scoped to one
// documentation module: the module's routes plus any service or type whose
// name substring-matches the module name.
type ModuleChunk struct {
	Name     string
	Routes   []analyzer.Route
	Services []analyzer.Service
	Types    []analyzer.TypeDef
}

// BuildChunks groups the result's routes and carves one chunk per module,
// sorted by module name for stable output.
func BuildChunks(result *analyzer.AnalysisResult) []ModuleChunk {
	g := grouper.New()
	modules := g.Group(result.Routes, result.Services, result.Controllers)

	names := make([]string, 0, len(modules))
	for name := range modules {
		names = append(names, name)
	}
	sort.Strings(names)

	chunks := make([]ModuleChunk, 0, len(names))
	for _, name := range names {
		chunk := ModuleChunk{Name: name, Routes: modules[name]}
		lowerModule := strings.ToLower(name)
		for _, svc := range result.Services {
			if strings.Contains(strings.ToLower(svc.Name), lowerModule) {
				chunk.Services = append(chunk.Services, svc)
			}
		}
		for _, t := range result.Types {
			if strings.Contains(strings.ToLower(t.Name), lowerModule) {
				chunk.Types = append(chunk.Types, t)
			}
		}
		chunks = append(chunks, chunk)
	}
	return chunks
}
