// Package docs renders an AnalysisResult into markdown documentation,
// either as a single overview document or as one document per grouped
// module. Prose sections come from a deterministic template unless an LLM
// writer is plugged in.
package docs

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/docweave/docweave/internal/analyzer"
)

// timeRounding keeps elapsed-time output readable.
const timeRounding = time.Millisecond

// ProseWriter produces free-text prose for a module. Implementations may
// call an external model; failures degrade to the built-in template and
// never abort generation.
type ProseWriter interface {
	WriteModuleProse(ctx context.Context, chunk ModuleChunk) (string, error)
}

// Generator writes markdown documentation for an analysis result.
type Generator struct {
	outputDir string
	prose     ProseWriter // nil means template-only output
}

// NewGenerator creates a Generator writing under outputDir.
func NewGenerator(outputDir string, prose ProseWriter) *Generator {
	return &Generator{outputDir: outputDir, prose: prose}
}

// GenerateOverview writes the whole API surface into one markdown file and
// returns its path.
func (g *Generator) GenerateOverview(result *analyzer.AnalysisResult, filename string) (string, error) {
	var b strings.Builder
	fmt.Fprintf(&b, "# API Documentation\n\n")
	fmt.Fprintf(&b, "Framework: `%s`\n\n", result.Framework)
	fmt.Fprintf(&b, "Analyzed %d file(s) in %s: %d route(s), %d controller(s), %d service(s), %d type(s).\n\n",
		result.Metadata.FilesAnalyzed, result.Metadata.Elapsed.Round(timeRounding),
		result.Metadata.TotalRoutes, result.Metadata.TotalControllers,
		result.Metadata.TotalServices, result.Metadata.TotalTypes)

	writeRouteTable(&b, result.Routes)
	writeServices(&b, result.Services)
	writeTypes(&b, result.Types)

	path := filepath.Join(g.outputDir, filename)
	if err := g.writeFile(path, b.String()); err != nil {
		return "", err
	}
	return path, nil
}

// GenerateChunked writes one markdown file per documentation module and
// returns the written paths in module order.
func (g *Generator) GenerateChunked(ctx context.Context, result *analyzer.AnalysisResult) ([]string, error) {
	chunks := BuildChunks(result)
	paths := make([]string, 0, len(chunks))
	for _, chunk := range chunks {
		var b strings.Builder
		fmt.Fprintf(&b, "# %s\n\n", titleCase(chunk.Name))
		b.WriteString(g.moduleProse(ctx, chunk))
		b.WriteString("\n\n")
		writeRouteTable(&b, chunk.Routes)
		writeServices(&b, chunk.Services)
		writeTypes(&b, chunk.Types)

		path := filepath.Join(g.outputDir, "modules", chunk.Name+".md")
		if err := g.writeFile(path, b.String()); err != nil {
			return nil, err
		}
		paths = append(paths, path)
	}
	return paths, nil
}

func (g *Generator) moduleProse(ctx context.Context, chunk ModuleChunk) string {
	if g.prose != nil {
		if text, err := g.prose.WriteModuleProse(ctx, chunk); err == nil && strings.TrimSpace(text) != "" {
			return strings.TrimSpace(text)
		}
	}
	return fmt.Sprintf("The %s module exposes %d endpoint(s) backed by %d service(s).",
		chunk.Name, len(chunk.Routes), len(chunk.Services))
}

func (g *Generator) writeFile(path, content string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("mkdir %s: %w", filepath.Dir(path), err)
	}
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		return fmt.Errorf("write %s: %w", path, err)
	}
	return nil
}

func writeRouteTable(b *strings.Builder, routes []analyzer.Route) {
	if len(routes) == 0 {
		return
	}
	b.WriteString("## Routes\n\n")
	b.WriteString("| Method | Path | Handler | Framework |\n")
	b.WriteString("|--------|------|---------|-----------|\n")
	for _, r := range routes {
		fmt.Fprintf(b, "| %s | `%s` | `%s` | %s |\n", r.Method, r.Path, r.Handler, r.Framework)
	}
	b.WriteString("\n")
}

func writeServices(b *strings.Builder, services []analyzer.Service) {
	if len(services) == 0 {
		return
	}
	b.WriteString("## Services\n\n")
	for _, svc := range services {
		fmt.Fprintf(b, "### %s\n\n", svc.Name)
		for _, m := range svc.Methods {
			visibility := "public"
			if !m.Public {
				visibility = "private"
			}
			fmt.Fprintf(b, "- `%s(%s): %s` (%s)\n", m.Name, formatParams(m.Parameters), m.ReturnType, visibility)
		}
		b.WriteString("\n")
	}
}

func writeTypes(b *strings.Builder, types []analyzer.TypeDef) {
	if len(types) == 0 {
		return
	}
	b.WriteString("## Types\n\n")
	for _, t := range types {
		fmt.Fprintf(b, "### %s (%s)\n\n", t.Name, t.Kind)
		for _, p := range t.Properties {
			optional := ""
			if p.Optional {
				optional = "?"
			}
			fmt.Fprintf(b, "- `%s%s: %s`\n", p.Name, optional, p.Type)
		}
		b.WriteString("\n")
	}
}

func titleCase(s string) string {
	if s == "" {
		return s
	}
	return strings.ToUpper(s[:1]) + s[1:]
}

func formatParams(params []analyzer.Parameter) string {
	parts := make([]string, 0, len(params))
	for _, p := range params {
		s := p.Name
		if p.Optional {
			s += "?"
		}
		s += ": " + p.Type
		parts = append(parts, s)
	}
	return strings.Join(parts, ", ")
}
