package config

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/spf13/viper"
)

// Config is the explicit configuration value threaded into every entry
// point. There is no ambient/global settings object.
type Config struct {
	Version    string     `mapstructure:"version" validate:"required"`
	Project    Project    `mapstructure:"project"`
	Paths      Paths      `mapstructure:"paths"`
	Generation Generation `mapstructure:"generation"`
	LLM        LLM        `mapstructure:"llm"`
}

type Project struct {
	Root     string `mapstructure:"root" validate:"required"`
	TSConfig string `mapstructure:"tsconfig"` // empty means <root>/tsconfig.json
}

type Paths struct {
	OutputDir string `mapstructure:"output_dir" validate:"required"`
}

type Generation struct {
	Docs    DocsConfig `mapstructure:"docs"`
	Chunked bool       `mapstructure:"chunked"`
}

type DocsConfig struct {
	Enabled    bool   `mapstructure:"enabled"`
	OutputFile string `mapstructure:"output_file"`
}

type LLM struct {
	Enabled    bool   `mapstructure:"enabled"`
	Model      string `mapstructure:"model"`
	MaxRetries int    `mapstructure:"max_retries" validate:"gte=0,lte=10"`
}

// LoadConfig loads docweave.yaml (or the file at path) with defaults
// applied, and validates the result. A missing config file is not an
// error: defaults describe a usable analysis of the current directory.
func LoadConfig(path string) (*Config, error) {
	if path == "" {
		path = "docweave.yaml"
	}

	v := viper.New()
	dir := filepath.Dir(path)
	base := filepath.Base(path)
	v.AddConfigPath(dir)
	v.SetConfigName(strings.TrimSuffix(base, filepath.Ext(base)))
	v.SetConfigType(strings.TrimPrefix(filepath.Ext(base), "."))

	setDefaults(v)

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("error reading config file: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("error unmarshaling config: %w", err)
	}
	if err := validator.New().Struct(&cfg); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}
	return &cfg, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("version", "1.0")
	v.SetDefault("project.root", ".")
	v.SetDefault("project.tsconfig", "")
	v.SetDefault("paths.output_dir", "docs")
	v.SetDefault("generation.docs.enabled", true)
	v.SetDefault("generation.docs.output_file", "api.md")
	v.SetDefault("generation.chunked", false)
	v.SetDefault("llm.enabled", false)
	v.SetDefault("llm.model", "gemini-2.5-flash")
	v.SetDefault("llm.max_retries", 3)
}

// Save writes the config to a YAML file (docweave.yaml when path is empty).
func (c *Config) Save(path string) error {
	if path == "" {
		path = "docweave.yaml"
	}

	v := viper.New()
	v.SetConfigFile(path)
	v.SetConfigType("yaml")

	v.Set("version", c.Version)
	v.Set("project.root", c.Project.Root)
	v.Set("project.tsconfig", c.Project.TSConfig)
	v.Set("paths.output_dir", c.Paths.OutputDir)
	v.Set("generation.docs.enabled", c.Generation.Docs.Enabled)
	v.Set("generation.docs.output_file", c.Generation.Docs.OutputFile)
	v.Set("generation.chunked", c.Generation.Chunked)
	v.Set("llm.enabled", c.LLM.Enabled)
	v.Set("llm.model", c.LLM.Model)
	v.Set("llm.max_retries", c.LLM.MaxRetries)

	if err := v.WriteConfig(); err != nil {
		return fmt.Errorf("error writing config file: %w", err)
	}
	return nil
}
