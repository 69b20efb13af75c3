package config_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/a11yscan/engine/engine"
	"github.com/a11yscan/engine/finding"
	"github.com/a11yscan/engine/internal/config"
)

func TestLoadMissingExplicitPathIsError(t *testing.T) {
	cfg, err := config.Load(filepath.Join(t.TempDir(), "missing.toml"))
	require.Error(t, err)
	_ = cfg
}

func TestLoadWithNoPathReturnsDefaults(t *testing.T) {
	cfg, err := config.Load("")
	require.NoError(t, err)
	require.Equal(t, engine.DefaultRunConfig(), cfg)
}

func TestLoadOverridesDefaults(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "a11yscan.toml")
	contents := `
scope = "workspace"
min_severity = "error"
disabled_detectors = ["touch-without-click"]

include_patterns = ["src/**/*.js"]
exclude_patterns = ["src/**/*.test.js"]
format = "yaml"
`
	require.NoError(t, os.WriteFile(path, []byte(contents), 0o644))

	cfg, err := config.Load(path)
	require.NoError(t, err)
	require.Equal(t, finding.ScopeWorkspace, cfg.Scope)
	require.Equal(t, finding.SeverityError, cfg.MinSeverity)
	require.Equal(t, []string{"touch-without-click"}, cfg.DisabledKinds)
	require.Equal(t, []string{"src/**/*.js"}, cfg.IncludePatterns)
	require.Equal(t, "yaml", cfg.Format)
}
