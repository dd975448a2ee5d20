package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadConfigCreatesDefaults(t *testing.T) {
	home := t.TempDir()
	t.Setenv("HOME", home)
	t.Setenv("USERPROFILE", home)

	cfg := LoadConfig()
	assert.Equal(t, DefaultConfig(), cfg)

	_, err := os.Stat(filepath.Join(home, ".texpop", ConfigFileName))
	assert.NoError(t, err, "default config should be written on first load")
}

func TestLoadConfigMergesMissingFields(t *testing.T) {
	home := t.TempDir()
	t.Setenv("HOME", home)
	t.Setenv("USERPROFILE", home)

	dir := filepath.Join(home, ".texpop")
	require.NoError(t, os.MkdirAll(dir, 0755))
	require.NoError(t, os.WriteFile(filepath.Join(dir, ConfigFileName),
		[]byte(`{"compiler": "lualatex", "dpi": 300}`), 0644))

	cfg := LoadConfig()
	assert.Equal(t, "lualatex", cfg.Compiler)
	assert.Equal(t, 300, cfg.DPI)
	assert.Equal(t, defaultWorkspaceDir, cfg.WorkspaceDir)
	assert.Equal(t, defaultBaseName, cfg.BaseName)
	assert.Equal(t, defaultCompileCommand, cfg.CompileCommand)
}

func TestLoadConfigFallsBackOnGarbage(t *testing.T) {
	home := t.TempDir()
	t.Setenv("HOME", home)
	t.Setenv("USERPROFILE", home)

	dir := filepath.Join(home, ".texpop")
	require.NoError(t, os.MkdirAll(dir, 0755))
	require.NoError(t, os.WriteFile(filepath.Join(dir, ConfigFileName), []byte("{not json"), 0644))

	assert.Equal(t, DefaultConfig(), LoadConfig())
}

func TestResolve(t *testing.T) {
	cwd := t.TempDir()

	tests := []struct {
		name    string
		mutate  func(c *Config)
		check   func(t *testing.T, s *Settings)
		wantErr bool
	}{
		{
			name:   "defaults",
			mutate: func(c *Config) {},
			check: func(t *testing.T, s *Settings) {
				assert.Equal(t, []string{"pdflatex"}, s.CompilerArgv)
				assert.Equal(t, filepath.Join(cwd, "latex_temp"), s.WorkspaceDir)
				assert.Equal(t, "_temp", s.BaseName)
				assert.Equal(t, 200, s.DPI)
				assert.Equal(t, 60*time.Second, s.CompileTimeout)
				assert.Equal(t, ":c", s.CompileCommand)
			},
		},
		{
			name: "compiler with flags",
			mutate: func(c *Config) {
				c.Compiler = `xelatex --shell-escape "-jobname=my doc"`
			},
			check: func(t *testing.T, s *Settings) {
				assert.Equal(t, []string{"xelatex", "--shell-escape", "-jobname=my doc"}, s.CompilerArgv)
			},
		},
		{
			name: "absolute workspace",
			mutate: func(c *Config) {
				c.WorkspaceDir = filepath.Join(cwd, "elsewhere", "..", "scratch")
			},
			check: func(t *testing.T, s *Settings) {
				assert.Equal(t, filepath.Join(cwd, "scratch"), s.WorkspaceDir)
			},
		},
		{
			name: "zero timeout disables bound",
			mutate: func(c *Config) {
				c.CompileTimeoutSeconds = 0
			},
			check: func(t *testing.T, s *Settings) {
				assert.Zero(t, s.CompileTimeout)
			},
		},
		{
			name: "viewer override gets render flags",
			mutate: func(c *Config) {
				c.ViewerCommand = "/opt/texpop/texpop-view --debug"
				c.DPI = 150
				c.Margin = 4
			},
			check: func(t *testing.T, s *Settings) {
				assert.Equal(t, []string{"/opt/texpop/texpop-view", "--debug", "--dpi=150", "--margin=4"}, s.ViewerArgv)
			},
		},
		{
			name: "sentinel normalised",
			mutate: func(c *Config) {
				c.CompileCommand = "  :COMPILE "
			},
			check: func(t *testing.T, s *Settings) {
				assert.Equal(t, ":compile", s.CompileCommand)
			},
		},
		{
			name: "unterminated quote",
			mutate: func(c *Config) {
				c.Compiler = `pdflatex "oops`
			},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := DefaultConfig()
			tt.mutate(cfg)
			s, err := cfg.Resolve(cwd)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			tt.check(t, s)
		})
	}
}
