package analyzer

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFileFilterHardMarkers(t *testing.T) {
	f := NewFileFilter(t.TempDir(), nil)

	assert.True(t, f.Excluded("node_modules/express/index.js"))
	assert.True(t, f.Excluded("src/users.spec.ts"))
	assert.True(t, f.Excluded("src/users.test.ts"))
	assert.False(t, f.Excluded("src/users.ts"))
}

func TestFileFilterDefaultPatterns(t *testing.T) {
	f := NewFileFilter(t.TempDir(), nil)

	assert.True(t, f.Excluded("dist/app.js"))
	assert.True(t, f.Excluded("coverage/lcov.info"))
	assert.True(t, f.Excluded("src/types.d.ts"))
	assert.True(t, f.Excluded("src/__tests__/helper.ts"))
	assert.False(t, f.Excluded("src/app.ts"))
}

func TestFileFilterExtraPatterns(t *testing.T) {
	f := NewFileFilter(t.TempDir(), []string{"src/generated/**"})

	assert.True(t, f.Excluded("src/generated/client.ts"))
	assert.False(t, f.Excluded("src/client.ts"))
}

func TestFileFilterIgnoreFile(t *testing.T) {
	root := t.TempDir()
	writeFile(t, root, ".docweaveignore", `# vendored code
legacy/**

**/*.gen.ts
`)
	f := NewFileFilter(root, nil)

	assert.True(t, f.Excluded("legacy/old.ts"))
	assert.True(t, f.Excluded("src/api.gen.ts"))
	assert.False(t, f.Excluded("src/api.ts"))
}

func TestFindCandidateFiles(t *testing.T) {
	root := t.TempDir()
	writeFile(t, root, "src/app.ts", "")
	writeFile(t, root, "src/routes.js", "")
	writeFile(t, root, "src/view.tsx", "")
	writeFile(t, root, "src/worker.mjs", "")
	writeFile(t, root, "README.md", "")
	writeFile(t, root, "dist/app.js", "")
	writeFile(t, root, "node_modules/x/index.js", "")

	f := NewFileFilter(root, nil)
	files, err := f.FindCandidateFiles(root)
	require.NoError(t, err)
	require.Len(t, files, 4)
	for _, path := range files {
		assert.NotContains(t, path, "dist")
		assert.NotContains(t, path, "node_modules")
		assert.NotContains(t, path, "README")
	}
}

func TestMatchPattern(t *testing.T) {
	tests := []struct {
		pattern string
		path    string
		want    bool
	}{
		{"node_modules/**", "node_modules/a/b.js", true},
		{"dist/**", "src/dist.ts", false},
		{"**/*.d.ts", "deep/nested/types.d.ts", true},
		{"**/*.d.ts", "types.d.ts", true},
		{"**/__mocks__/**", "src/__mocks__/fs.ts", true},
		{"*.ts", "app.ts", true},
		{"build", "build/out.js", true},
		{"build", "builder/out.js", false},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, matchPattern(tt.pattern, tt.path), "matchPattern(%q, %q)", tt.pattern, tt.path)
	}
}
