package main

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"github.com/docweave/docweave/internal/analyzer"
	"github.com/docweave/docweave/internal/config"
	"github.com/docweave/docweave/internal/docs"
	"github.com/docweave/docweave/internal/llm"
	"github.com/docweave/docweave/internal/store"
)

var (
	configPath  string
	projectFlag string
	chunkedFlag bool
	aiFlag      bool
)

var rootCmd = &cobra.Command{
	Use:   "docweave",
	Short: "API documentation generator for TypeScript/JavaScript services",
	Long: `docweave analyzes a web-service source tree and extracts its HTTP
surface (routes, controllers, services, data types), then groups the
routes into documentation modules and renders markdown docs.

Extraction is static and convention-driven: it tolerates duplicates and
approximate results rather than failing on ambiguous code.`,
}

// Spinner handles animated loading indicators
type Spinner struct {
	chars []string
	delay time.Duration
	done  chan bool
	mu    sync.Mutex
}

func NewSpinner() *Spinner {
	return &Spinner{
		chars: []string{"⠋", "⠙", "⠹", "⠸", "⠼", "⠴", "⠦", "⠧", "⠇", "⠏"},
		delay: 100 * time.Millisecond,
		done:  make(chan bool),
	}
}

func (s *Spinner) Start(message string) {
	go func() {
		i := 0
		for {
			select {
			case <-s.done:
				return
			default:
				s.mu.Lock()
				fmt.Printf("\r%s %s", s.chars[i%len(s.chars)], message)
				s.mu.Unlock()
				i++
				time.Sleep(s.delay)
			}
		}
	}()
}

func (s *Spinner) Stop(message string) {
	s.done <- true
	s.mu.Lock()
	fmt.Printf("\r✔ %s\n", message)
	s.mu.Unlock()
}

func init() {
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "Path to docweave.yaml config file")
	analyzeCmd.Flags().StringVar(&projectFlag, "project", "", "Project root to analyze (overrides config)")
	generateCmd.Flags().StringVar(&projectFlag, "project", "", "Project root to analyze (overrides config)")
	generateCmd.Flags().BoolVar(&chunkedFlag, "chunked", false, "Write one document per grouped module")
	generateCmd.Flags().BoolVar(&aiFlag, "ai", false, "Use the configured LLM for module prose")

	rootCmd.AddCommand(initCmd)
	rootCmd.AddCommand(analyzeCmd)
	rootCmd.AddCommand(generateCmd)
	rootCmd.AddCommand(cleanCmd)
}

func main() {
	_ = godotenv.Load()

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

var initCmd = &cobra.Command{
	Use:   "init",
	Short: "Create docweave.yaml and .docweaveignore",
	Long: `Initialize a docweave project by creating:
- docweave.yaml configuration file with default settings
- .docweaveignore file with common exclusion patterns`,
	Run: func(cmd *cobra.Command, args []string) {
		handleInit(configPath)
	},
}

func handleInit(configPath string) {
	if configPath == "" {
		configPath = "docweave.yaml"
	}

	if _, err := os.Stat(configPath); err == nil {
		fmt.Printf("Config file %s already exists\n", configPath)
	} else {
		cfg, err := config.LoadConfig(configPath)
		if err != nil {
			fmt.Printf("Error creating config: %v\n", err)
			os.Exit(1)
		}
		if err := cfg.Save(configPath); err != nil {
			fmt.Printf("Error writing config: %v\n", err)
			os.Exit(1)
		}
		fmt.Println("● Created docweave.yaml")
		fmt.Printf("  Project root: %s\n", cfg.Project.Root)
		fmt.Printf("  Output directory: %s\n", cfg.Paths.OutputDir)
	}

	if _, err := os.Stat(".docweaveignore"); os.IsNotExist(err) {
		if err := analyzer.WriteDefaultIgnoreFile("."); err != nil {
			fmt.Printf("Warning: Could not create .docweaveignore: %v\n", err)
		} else {
			fmt.Println("● Created .docweaveignore")
		}
	} else {
		fmt.Println("• Using existing .docweaveignore")
	}

	fmt.Println("\nNext steps:")
	fmt.Println("  1. Edit docweave.yaml to point at the project to document")
	fmt.Println("  2. Run 'docweave analyze' to preview the extracted API surface")
	fmt.Println("  3. Run 'docweave generate' to write documentation")
}

var analyzeCmd = &cobra.Command{
	Use:   "analyze",
	Short: "Extract the API surface and show a summary",
	Long: `Analyze the configured project and display the detected routes,
controllers, services and types, along with advisory findings. The raw
result is persisted as analysis.json in the output directory.`,
	Run: func(cmd *cobra.Command, args []string) {
		cfg := mustLoadConfig()
		result := runAnalysis(cfg)
		showResult(result)

		st := store.New(cfg.Paths.OutputDir)
		if path, err := st.SaveAnalysis(result); err != nil {
			fmt.Printf("Warning: could not persist analysis: %v\n", err)
		} else {
			fmt.Printf("\n● Saved: %s\n", path)
		}
	},
}

var generateCmd = &cobra.Command{
	Use:   "generate",
	Short: "Generate markdown documentation",
	Long: `Analyze the configured project and write markdown documentation to
the output directory: a single overview document, or one document per
grouped module with --chunked. --ai routes module prose through the
configured LLM.`,
	Run: func(cmd *cobra.Command, args []string) {
		cfg := mustLoadConfig()
		result := runAnalysis(cfg)
		generateDocs(cfg, result)
	},
}

var cleanCmd = &cobra.Command{
	Use:   "clean",
	Short: "Remove generated files",
	Run: func(cmd *cobra.Command, args []string) {
		handleClean(configPath)
	},
}

func mustLoadConfig() *config.Config {
	cfg, err := config.LoadConfig(configPath)
	if err != nil {
		fmt.Printf("Error loading config: %v\n", err)
		os.Exit(1)
	}
	if projectFlag != "" {
		cfg.Project.Root = projectFlag
	}
	return cfg
}

func runAnalysis(cfg *config.Config) *analyzer.AnalysisResult {
	spinner := NewSpinner()
	spinner.Start("Analyzing project...")

	a := analyzer.New()
	result, err := a.Analyze(cfg.Project.Root, cfg.Project.TSConfig)
	if err != nil {
		spinner.Stop("Analysis failed")
		fmt.Printf("Error: %v\n", err)
		os.Exit(1)
	}

	spinner.Stop("Project analyzed successfully")
	return result
}

func showResult(result *analyzer.AnalysisResult) {
	fmt.Printf("\nAnalysis Results (%s):\n", result.Framework)
	fmt.Printf("  • Routes found: %d\n", result.Metadata.TotalRoutes)
	fmt.Printf("  • Controllers found: %d\n", result.Metadata.TotalControllers)
	fmt.Printf("  • Services found: %d\n", result.Metadata.TotalServices)
	fmt.Printf("  • Types found: %d\n", result.Metadata.TotalTypes)
	fmt.Printf("  • Files analyzed: %d in %s\n", result.Metadata.FilesAnalyzed, result.Metadata.Elapsed.Round(time.Millisecond))

	if len(result.Routes) > 0 {
		fmt.Println("\nRoutes:")
		for _, r := range result.Routes {
			fmt.Printf("  - %s %s -> %s\n", r.Method, r.Path, r.Handler)
		}
	}

	if len(result.Services) > 0 {
		fmt.Println("\nServices:")
		for _, s := range result.Services {
			fmt.Printf("  - %s (%d method(s))\n", s.Name, len(s.Methods))
		}
	}

	advisories := analyzer.NewValidator().Review(result)
	if len(advisories) > 0 {
		fmt.Println("\nAdvisories:")
		for _, a := range advisories {
			fmt.Printf("  • %s: %s\n", a.Type, a.Message)
		}
	}
}

func generateDocs(cfg *config.Config, result *analyzer.AnalysisResult) {
	if !cfg.Generation.Docs.Enabled {
		fmt.Println("• Docs generation disabled in config")
		return
	}

	ctx := context.Background()
	var prose docs.ProseWriter
	if aiFlag || cfg.LLM.Enabled {
		client, err := llm.NewClient(ctx, cfg.LLM.Model, cfg.LLM.MaxRetries)
		if err != nil {
			fmt.Printf("Warning: LLM unavailable, using template prose: %v\n", err)
		} else {
			prose = client
		}
	}

	spinner := NewSpinner()
	spinner.Start("Generating documentation...")

	gen := docs.NewGenerator(cfg.Paths.OutputDir, prose)
	var written []string

	if chunkedFlag || cfg.Generation.Chunked {
		paths, err := gen.GenerateChunked(ctx, result)
		if err != nil {
			spinner.Stop("Error generating documentation")
			fmt.Printf("Error: %v\n", err)
			os.Exit(1)
		}
		written = paths
	} else {
		path, err := gen.GenerateOverview(result, cfg.Generation.Docs.OutputFile)
		if err != nil {
			spinner.Stop("Error generating documentation")
			fmt.Printf("Error: %v\n", err)
			os.Exit(1)
		}
		written = []string{path}
	}

	st := store.New(cfg.Paths.OutputDir)
	if path, err := st.SaveModules(result); err != nil {
		fmt.Printf("Warning: could not persist module map: %v\n", err)
	} else {
		written = append(written, path)
	}

	spinner.Stop("Documentation generated successfully")
	for _, path := range written {
		fmt.Printf("  • Generated: %s\n", path)
	}
}

func handleClean(configPath string) {
	cfg, err := config.LoadConfig(configPath)
	if err != nil {
		fmt.Printf("Error loading config: %v\n", err)
		os.Exit(1)
	}

	var deleted []string
	var skipped []string

	st := store.New(cfg.Paths.OutputDir)
	targets := st.GeneratedFiles()
	targets = append(targets, filepath.Join(cfg.Paths.OutputDir, cfg.Generation.Docs.OutputFile))

	for _, path := range targets {
		if ok, err := deleteIfExists(path); err != nil {
			fmt.Printf("• Error deleting %s: %v\n", path, err)
		} else if ok {
			deleted = append(deleted, path)
		} else {
			skipped = append(skipped, path)
		}
	}

	// Per-module docs live in their own subdirectory.
	modulesDir := filepath.Join(cfg.Paths.OutputDir, "modules")
	if _, err := os.Stat(modulesDir); err == nil {
		if err := os.RemoveAll(modulesDir); err == nil {
			deleted = append(deleted, modulesDir+"/")
		}
	}

	if len(deleted) > 0 {
		fmt.Printf("● Deleted %d file(s):\n", len(deleted))
		for _, f := range deleted {
			fmt.Printf("  - %s\n", f)
		}
	}
	if len(skipped) > 0 {
		fmt.Printf("• Skipped %d file(s) (not found)\n", len(skipped))
	}
	if len(deleted) == 0 && len(skipped) == 0 {
		fmt.Println("• No generated files found to clean")
	}
}

// deleteIfExists deletes a file if it exists, returns (deleted, error)
func deleteIfExists(path string) (bool, error) {
	if _, err := os.Stat(path); os.IsNotExist(err) {
		return false, nil
	} else if err != nil {
		return false, err
	}
	if err := os.Remove(path); err != nil {
		return false, err
	}
	return true, nil
}
