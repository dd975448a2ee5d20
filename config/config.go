package config

import (
	"encoding/json"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
	"texpop/log"
	"time"

	"github.com/mattn/go-shellwords"
	"github.com/mitchellh/go-homedir"
)

const (
	ConfigFileName = "config.json"

	defaultCompiler       = "pdflatex"
	defaultWorkspaceDir   = "latex_temp"
	defaultBaseName       = "_temp"
	defaultDPI            = 200
	defaultMargin         = 10
	defaultTimeoutSeconds = 60
	defaultCompileCommand = ":c"

	// ViewerProgram is the name of the viewer binary shipped next to texpop.
	ViewerProgram = "texpop-view"
)

// GetConfigDir returns the path to the application's configuration directory
func GetConfigDir() (string, error) {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("failed to get config home directory: %w", err)
	}
	return filepath.Join(homeDir, ".texpop"), nil
}

// Config represents the application configuration
type Config struct {
	// Compiler is the LaTeX compiler command line, e.g. "pdflatex" or "lualatex --shell-escape".
	Compiler string `json:"compiler"`
	// WorkspaceDir is the scratch directory, relative to the working directory unless absolute.
	WorkspaceDir string `json:"workspace_dir"`
	// BaseName is the file name, without extension, of every generated artifact.
	BaseName string `json:"base_name"`
	// DPI is the resolution the viewer rasterizes page one at.
	DPI int `json:"dpi"`
	// Margin is the white frame, in pixels, around the rendered page.
	Margin int `json:"margin"`
	// CompileTimeoutSeconds bounds a single compiler run. Zero means no bound.
	CompileTimeoutSeconds int `json:"compile_timeout_seconds"`
	// ViewerCommand overrides how the viewer is started. Empty means texpop-view
	// next to the running executable, then on PATH.
	ViewerCommand string `json:"viewer_command"`
	// CompileCommand is the line that triggers a compile.
	CompileCommand string `json:"compile_command"`
}

// DefaultConfig returns the default configuration
func DefaultConfig() *Config {
	return &Config{
		Compiler:              defaultCompiler,
		WorkspaceDir:          defaultWorkspaceDir,
		BaseName:              defaultBaseName,
		DPI:                   defaultDPI,
		Margin:                defaultMargin,
		CompileTimeoutSeconds: defaultTimeoutSeconds,
		ViewerCommand:         "",
		CompileCommand:        defaultCompileCommand,
	}
}

func LoadConfig() *Config {
	configDir, err := GetConfigDir()
	if err != nil {
		log.ErrorLog.Printf("failed to get config directory: %v", err)
		return DefaultConfig()
	}

	configPath := filepath.Join(configDir, ConfigFileName)
	data, err := os.ReadFile(configPath)
	if err != nil {
		if os.IsNotExist(err) {
			// Create and save default config if file doesn't exist
			defaultCfg := DefaultConfig()
			if saveErr := saveConfig(defaultCfg); saveErr != nil {
				log.WarningLog.Printf("failed to save default config: %v", saveErr)
			}
			return defaultCfg
		}

		log.WarningLog.Printf("failed to get config file: %v", err)
		return DefaultConfig()
	}

	var config Config
	if err := json.Unmarshal(data, &config); err != nil {
		log.ErrorLog.Printf("failed to parse config file: %v", err)
		return DefaultConfig()
	}

	config.mergeDefaults()
	return &config
}

// mergeDefaults fills fields missing from older config files.
func (c *Config) mergeDefaults() {
	defaults := DefaultConfig()
	if strings.TrimSpace(c.Compiler) == "" {
		c.Compiler = defaults.Compiler
	}
	if c.WorkspaceDir == "" {
		c.WorkspaceDir = defaults.WorkspaceDir
	}
	if c.BaseName == "" {
		c.BaseName = defaults.BaseName
	}
	if c.DPI <= 0 {
		c.DPI = defaults.DPI
	}
	if c.Margin < 0 {
		c.Margin = defaults.Margin
	}
	if c.CompileTimeoutSeconds < 0 {
		c.CompileTimeoutSeconds = defaults.CompileTimeoutSeconds
	}
	if strings.TrimSpace(c.CompileCommand) == "" {
		c.CompileCommand = defaults.CompileCommand
	}
}

// saveConfig saves the configuration to disk
func saveConfig(config *Config) error {
	configDir, err := GetConfigDir()
	if err != nil {
		return fmt.Errorf("failed to get config directory: %w", err)
	}

	if err := os.MkdirAll(configDir, 0755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	configPath := filepath.Join(configDir, ConfigFileName)
	data, err := json.MarshalIndent(config, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}

	return os.WriteFile(configPath, data, 0644)
}

// Settings is the resolved, read-only form of Config handed to every component.
type Settings struct {
	// CompilerArgv is the compiler program followed by any user supplied flags.
	CompilerArgv []string
	// WorkspaceDir is an absolute path.
	WorkspaceDir string
	BaseName     string
	DPI          int
	Margin       int
	// CompileTimeout is zero when compiles are unbounded.
	CompileTimeout time.Duration
	// ViewerArgv is the command that starts the viewer, reading a PDF on stdin.
	ViewerArgv []string
	// CompileCommand is lower-cased and trimmed.
	CompileCommand string
	// Verbose echoes every spawned command to the console.
	Verbose bool
}

// Resolve turns the config into Settings. Relative workspace paths are taken
// against cwd.
func (c *Config) Resolve(cwd string) (*Settings, error) {
	cfg := *c
	cfg.mergeDefaults()

	compiler, err := splitCommand(cfg.Compiler)
	if err != nil {
		return nil, fmt.Errorf("invalid compiler command %q: %w", cfg.Compiler, err)
	}

	dir, err := homedir.Expand(cfg.WorkspaceDir)
	if err != nil {
		return nil, fmt.Errorf("invalid workspace directory %q: %w", cfg.WorkspaceDir, err)
	}
	if !filepath.IsAbs(dir) {
		dir = filepath.Join(cwd, dir)
	}

	var viewer []string
	if strings.TrimSpace(cfg.ViewerCommand) != "" {
		viewer, err = splitCommand(cfg.ViewerCommand)
		if err != nil {
			return nil, fmt.Errorf("invalid viewer command %q: %w", cfg.ViewerCommand, err)
		}
	} else {
		viewer = DefaultViewerArgv()
	}
	viewer = append(viewer, fmt.Sprintf("--dpi=%d", cfg.DPI), fmt.Sprintf("--margin=%d", cfg.Margin))

	return &Settings{
		CompilerArgv:   compiler,
		WorkspaceDir:   filepath.Clean(dir),
		BaseName:       cfg.BaseName,
		DPI:            cfg.DPI,
		Margin:         cfg.Margin,
		CompileTimeout: time.Duration(cfg.CompileTimeoutSeconds) * time.Second,
		ViewerArgv:     viewer,
		CompileCommand: strings.ToLower(strings.TrimSpace(cfg.CompileCommand)),
	}, nil
}

// splitCommand splits a shell-style command line and expands ~ in the program path.
func splitCommand(line string) ([]string, error) {
	args, err := shellwords.Parse(line)
	if err != nil {
		return nil, err
	}
	if len(args) == 0 {
		return nil, fmt.Errorf("empty command")
	}
	args[0], err = homedir.Expand(args[0])
	if err != nil {
		return nil, err
	}
	return args, nil
}

// DefaultViewerArgv looks for the viewer binary next to the running executable
// first, then on PATH. If neither exists the bare program name is returned and
// the failure surfaces when the viewer is started.
func DefaultViewerArgv() []string {
	name := ViewerProgram
	if filepath.Separator == '\\' {
		name += ".exe"
	}
	if exe, err := os.Executable(); err == nil {
		if resolved, err := filepath.EvalSymlinks(exe); err == nil {
			exe = resolved
		}
		sibling := filepath.Join(filepath.Dir(exe), name)
		if info, err := os.Stat(sibling); err == nil && !info.IsDir() {
			return []string{sibling}
		}
	}
	if path, err := exec.LookPath(ViewerProgram); err == nil {
		return []string{path}
	}
	return []string{ViewerProgram}
}
