package app

import (
	"context"
	"errors"
	"io"
	"os"
	"strings"
	"texpop/config"
	"texpop/log"
	"texpop/session"
	"texpop/session/preview"
	"texpop/ui"

	"github.com/muesli/termenv"
	"golang.org/x/term"
)

const (
	promptEmpty    = ">>> "
	promptContinue = "... "
)

// Compiler runs one compile attempt for a snippet.
type Compiler interface {
	Compile(ctx context.Context, snippet string) error
}

// Workspace is the part of the scratch directory the loop tears down on exit.
type Workspace interface {
	Remove()
}

// Run is the main entrypoint into the application. It reads LaTeX from stdin
// until end of input or an interrupt.
func Run(ctx context.Context, settings *config.Settings) error {
	interactive := term.IsTerminal(int(os.Stdin.Fd())) && term.IsTerminal(int(os.Stdout.Fd()))
	profile := termenv.Ascii
	if interactive {
		profile = termenv.NewOutput(os.Stdout).EnvColorProfile()
	}

	reader := NewLineReader(ctx, os.Stdin, os.Stdout)
	defer reader.Close()

	invoker := session.NewInvoker(settings, preview.NewLauncher(settings))
	loop := &Loop{
		Reader:         reader,
		Console:        ui.NewConsole(os.Stdout, profile),
		Compiler:       invoker,
		Workspace:      invoker.Workspace,
		CompileCommand: settings.CompileCommand,
		Interactive:    interactive,
	}
	if settings.Verbose {
		// The spinner would garble the echoed commands.
		loop.Interactive = false
	}
	invoker.OnStatus = loop.OnStatus
	loop.Warnings = CheckTools(settings)

	if settings.Verbose {
		log.SetCommandLogger(NewCommandLoggerAdapter(loop.Console))
		defer log.SetCommandLogger(nil)
	}

	log.InfoLog.Printf("starting REPL, workspace %s, compiler %v", settings.WorkspaceDir, settings.CompilerArgv)
	return loop.Run(ctx)
}

// Loop is the read-compile loop. Lines accumulate in a buffer until the
// compile command is entered on its own line.
type Loop struct {
	Reader    LineReader
	Console   *ui.Console
	Compiler  Compiler
	Workspace Workspace
	// CompileCommand is compared against trimmed, lower-cased input lines.
	CompileCommand string
	// Interactive enables the progress spinner.
	Interactive bool
	// Warnings are printed once, right after the banner.
	Warnings []string

	lines   []string
	spinner *ui.Spinner
}

// Run loops until input ends or ctx is cancelled, then removes the workspace.
// Compile failures are reported and never end the loop.
func (l *Loop) Run(ctx context.Context) error {
	l.Console.Banner(l.CompileCommand)
	for _, w := range l.Warnings {
		l.Console.Notice(w)
	}

	for {
		line, err := l.Reader.ReadLine(l.prompt())
		if err != nil || ctx.Err() != nil {
			if err != nil && !errors.Is(err, io.EOF) && !errors.Is(err, ErrInterrupt) {
				log.ErrorLog.Printf("failed to read input: %v", err)
			}
			l.exit()
			return nil
		}

		l.handleLine(ctx, line)

		if ctx.Err() != nil {
			l.exit()
			return nil
		}
	}
}

func (l *Loop) prompt() string {
	if len(l.lines) == 0 {
		return promptEmpty
	}
	return promptContinue
}

// Buffered returns the lines waiting to be compiled.
func (l *Loop) Buffered() []string {
	return append([]string(nil), l.lines...)
}

func (l *Loop) handleLine(ctx context.Context, line string) {
	if strings.ToLower(strings.TrimSpace(line)) != l.CompileCommand {
		l.lines = append(l.lines, line)
		return
	}
	if len(l.lines) == 0 {
		l.Console.Notice("No code to compile.")
		return
	}

	snippet := strings.Join(l.lines, "\n")
	l.lines = nil

	err := l.Compiler.Compile(ctx, snippet)
	l.stopSpinner()
	l.report(err)
}

// OnStatus receives progress from the compiler.
func (l *Loop) OnStatus(s session.Status) {
	switch s {
	case session.Compiling:
		if l.Interactive {
			l.spinner = ui.StartSpinner(l.Console.Writer(), "Compiling...")
		} else {
			l.Console.Status("Compiling...")
		}
	case session.Compiled:
		l.stopSpinner()
		l.Console.Success("Compilation successful! Displaying preview...")
	}
}

func (l *Loop) stopSpinner() {
	if l.spinner != nil {
		l.spinner.Stop()
		l.spinner = nil
	}
}

func (l *Loop) report(err error) {
	if err == nil {
		return
	}

	var compileErr *session.CompileError
	var previewErr *session.PreviewError
	switch {
	case errors.As(err, &compileErr):
		l.Console.Section("LaTeX Compilation Error", compileErr.Snippet)
	case errors.Is(err, session.ErrMissingPDF):
		l.Console.Error("Error: " + session.ErrMissingPDF.Error() + ".")
	case errors.As(err, &previewErr):
		l.Console.Section("Preview Generation Error", previewErr.Err.Error())
	case errors.Is(err, context.Canceled):
		// Interrupted, the loop is about to exit.
	default:
		log.ErrorLog.Printf("compile attempt failed: %v", err)
		l.Console.Error("Error: " + err.Error())
	}
}

func (l *Loop) exit() {
	l.stopSpinner()
	l.Console.Status("")
	l.Console.Status("Exiting.")
	if l.Workspace != nil {
		l.Workspace.Remove()
	}
}
