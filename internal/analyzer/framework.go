package analyzer

import (
	"encoding/json"
	"os"
	"path/filepath"
)

// DetectFramework guesses the project's web framework from package.json
// dependencies and well-known marker files. The guess is a display label
// only: it never gates which extractors run, and it may disagree with the
// per-route framework tags (those reflect which pattern matched, not a
// verified dependency).
func DetectFramework(root string) Framework {
	if _, err := os.Stat(filepath.Join(root, "nest-cli.json")); err == nil {
		return FrameworkNest
	}

	data, err := os.ReadFile(filepath.Join(root, "package.json"))
	if err != nil {
		return FrameworkUnknown
	}
	var pkg struct {
		Dependencies    map[string]string `json:"dependencies"`
		DevDependencies map[string]string `json:"devDependencies"`
	}
	if err := json.Unmarshal(data, &pkg); err != nil {
		return FrameworkUnknown
	}

	has := func(name string) bool {
		if _, ok := pkg.Dependencies[name]; ok {
			return true
		}
		_, ok := pkg.DevDependencies[name]
		return ok
	}

	switch {
	case has("@nestjs/core") || has("@nestjs/common"):
		return FrameworkNest
	case has("fastify"):
		return FrameworkFastify
	case has("koa"):
		return FrameworkKoa
	case has("express"):
		return FrameworkExpress
	default:
		return FrameworkUnknown
	}
}
