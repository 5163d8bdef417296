package store

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"

	"github.com/docweave/docweave/internal/analyzer"
)

func storeFixture() *analyzer.AnalysisResult {
	return &analyzer.AnalysisResult{
		Framework: analyzer.FrameworkExpress,
		Routes: []analyzer.Route{
			{Method: "GET", Path: "/users", Handler: "getUsers"},
			{Method: "POST", Path: "/users", Handler: "createUser"},
		},
		Services: []analyzer.Service{{Name: "UsersService"}},
		Metadata: analyzer.Metadata{TotalRoutes: 2, TotalServices: 1},
	}
}

func TestSaveAnalysis(t *testing.T) {
	dir := t.TempDir()
	s := New(filepath.Join(dir, "out"))

	path, err := s.SaveAnalysis(storeFixture())
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(dir, "out", "analysis.json"), path)

	data, err := os.ReadFile(path)
	require.NoError(t, err)

	var decoded analyzer.AnalysisResult
	require.NoError(t, json.Unmarshal(data, &decoded))
	assert.Equal(t, analyzer.FrameworkExpress, decoded.Framework)
	require.Len(t, decoded.Routes, 2)
	assert.Equal(t, "getUsers", decoded.Routes[0].Handler)
}

func TestSaveModules(t *testing.T) {
	dir := t.TempDir()
	s := New(dir)

	path, err := s.SaveModules(storeFixture())
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(dir, "modules.yaml"), path)

	data, err := os.ReadFile(path)
	require.NoError(t, err)

	var decoded map[string]struct {
		Routes []struct {
			Method  string `yaml:"method"`
			Path    string `yaml:"path"`
			Handler string `yaml:"handler"`
		} `yaml:"routes"`
	}
	require.NoError(t, yaml.Unmarshal(data, &decoded))

	users, ok := decoded["users"]
	require.True(t, ok, "handler names match the users service module")
	require.Len(t, users.Routes, 2)
	assert.Equal(t, "GET", users.Routes[0].Method)
}

func TestGeneratedFiles(t *testing.T) {
	s := New("docs")
	files := s.GeneratedFiles()
	assert.Contains(t, files, filepath.Join("docs", "analysis.json"))
	assert.Contains(t, files, filepath.Join("docs", "modules.yaml"))
}
