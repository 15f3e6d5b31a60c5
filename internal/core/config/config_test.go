package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestLoad_MissingFileUsesDefaults(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))

	require.NoError(t, err)
	assert.Equal(t, "git", cfg.GitPath)
	assert.Equal(t, "tokyo-night", cfg.Theme)
	assert.Empty(t, cfg.Exclude)
}

func TestLoad_OverridesDefaults(t *testing.T) {
	path := writeConfig(t, `
git_path: /usr/local/bin/git
theme: gruvbox
exclude:
  - "vendor/**"
  - "*.lock"
`)

	cfg, err := Load(path)

	require.NoError(t, err)
	assert.Equal(t, "/usr/local/bin/git", cfg.GitPath)
	assert.Equal(t, "gruvbox", cfg.Theme)
	assert.Equal(t, []string{"vendor/**", "*.lock"}, cfg.Exclude)
}

func TestLoad_UnknownTheme(t *testing.T) {
	path := writeConfig(t, "theme: solarized-dark\n")

	_, err := Load(path)

	require.Error(t, err)
	assert.Contains(t, err.Error(), "theme")
}

func TestLoad_InvalidGlob(t *testing.T) {
	path := writeConfig(t, "exclude: [\"[\"]\n")

	_, err := Load(path)

	require.Error(t, err)
	assert.Contains(t, err.Error(), "exclude[0]")
}

func TestLoad_MalformedYAML(t *testing.T) {
	path := writeConfig(t, "theme: [unterminated\n")

	_, err := Load(path)
	require.Error(t, err)
}

func TestConfig_Excluded(t *testing.T) {
	cfg := Config{Exclude: []string{"vendor/**", "*.lock", "dist/*.min.js"}}

	tests := []struct {
		path string
		want bool
	}{
		{"vendor/lib/util.go", true},
		{"Cargo.lock", true},
		{"dist/app.min.js", true},
		{"internal/app.go", false},
		{"distx/app.min.js", false},
	}

	for _, tt := range tests {
		t.Run(tt.path, func(t *testing.T) {
			assert.Equal(t, tt.want, cfg.Excluded(tt.path))
		})
	}
}
