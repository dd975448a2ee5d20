package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"syscall"
	"texpop/app"
	"texpop/config"
	"texpop/log"
	"texpop/session"
	"time"

	"github.com/spf13/cobra"
)

var (
	version       = "0.1.0"
	compilerFlag  string
	workspaceFlag string
	viewerFlag    string
	timeoutFlag   time.Duration
	dpiFlag       int
	verboseFlag   bool
	rootCmd       = &cobra.Command{
		Use:   "texpop",
		Short: "texpop - type LaTeX, see it rendered in a pop-up window",
		Long: "texpop reads LaTeX line by line. Enter the compile command (:c by default) on its own\n" +
			"line to compile what you typed and show the first page in a pop-up window.",
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			log.Initialize("texpop")
			defer log.Close()

			settings, err := resolveSettings(cmd)
			if err != nil {
				return err
			}

			ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			return app.Run(ctx, settings)
		},
	}

	resetCmd = &cobra.Command{
		Use:   "reset",
		Short: "Remove the scratch workspace in the current directory",
		RunE: func(cmd *cobra.Command, args []string) error {
			log.Initialize("texpop")
			defer log.Close()

			settings, err := resolveSettings(cmd)
			if err != nil {
				return err
			}
			session.NewWorkspace(settings).Remove()
			fmt.Printf("Removed %s\n", settings.WorkspaceDir)
			return nil
		},
	}

	debugCmd = &cobra.Command{
		Use:   "debug",
		Short: "Print debug information like config paths",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg := config.LoadConfig()

			configDir, err := config.GetConfigDir()
			if err != nil {
				return fmt.Errorf("failed to get config directory: %w", err)
			}
			configJson, _ := json.MarshalIndent(cfg, "", "  ")

			fmt.Printf("Config: %s\n%s\n", filepath.Join(configDir, config.ConfigFileName), configJson)

			settings, err := resolveSettings(cmd)
			if err != nil {
				return err
			}
			fmt.Printf("Compiler: %s\n", strings.Join(settings.CompilerArgv, " "))
			fmt.Printf("Workspace: %s\n", settings.WorkspaceDir)
			fmt.Printf("Viewer: %s\n", strings.Join(settings.ViewerArgv, " "))
			fmt.Printf("Log: %s\n", log.LogFilePath("texpop"))
			return nil
		},
	}

	versionCmd = &cobra.Command{
		Use:   "version",
		Short: "Print the version number of texpop",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Printf("texpop version %s\n", version)
		},
	}
)

// resolveSettings loads the config file and applies command line overrides.
func resolveSettings(cmd *cobra.Command) (*config.Settings, error) {
	cfg := config.LoadConfig()
	flags := cmd.Flags()
	if flags.Changed("compiler") {
		cfg.Compiler = compilerFlag
	}
	if flags.Changed("workspace") {
		cfg.WorkspaceDir = workspaceFlag
	}
	if flags.Changed("viewer") {
		cfg.ViewerCommand = viewerFlag
	}
	if flags.Changed("timeout") {
		cfg.CompileTimeoutSeconds = int(timeoutFlag / time.Second)
	}
	if flags.Changed("dpi") {
		cfg.DPI = dpiFlag
	}

	cwd, err := os.Getwd()
	if err != nil {
		return nil, fmt.Errorf("failed to get working directory: %w", err)
	}
	settings, err := cfg.Resolve(cwd)
	if err != nil {
		return nil, err
	}
	settings.Verbose = verboseFlag
	return settings, nil
}

func init() {
	flags := rootCmd.PersistentFlags()
	flags.StringVarP(&compilerFlag, "compiler", "c", "",
		"LaTeX compiler command (e.g. 'pdflatex' or 'lualatex --shell-escape')")
	flags.StringVarP(&workspaceFlag, "workspace", "w", "",
		"Scratch directory for generated files, relative to the current directory")
	flags.StringVar(&viewerFlag, "viewer", "",
		"Command that starts the viewer; it receives the PDF on stdin")
	flags.DurationVar(&timeoutFlag, "timeout", 0,
		"Maximum time a single compile may take (0 disables the limit)")
	flags.IntVar(&dpiFlag, "dpi", 0, "Preview resolution in dots per inch")
	flags.BoolVarP(&verboseFlag, "verbose", "v", false, "Print every external command before it runs")

	rootCmd.AddCommand(debugCmd)
	rootCmd.AddCommand(versionCmd)
	rootCmd.AddCommand(resetCmd)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Println(err)
		os.Exit(1)
	}
}
