package session

import (
	"context"
	"errors"
	"fmt"
	"slices"
	"texpop/config"
	"texpop/log"
	"time"
)

type Status int

const (
	// Compiling is sent right before the compiler starts.
	Compiling Status = iota
	// Compiled is sent when the compiler exited successfully, before the PDF is read.
	Compiled
)

// Previewer receives the bytes of a freshly compiled PDF.
type Previewer interface {
	Preview(pdf []byte) error
}

// Invoker runs one compile attempt at a time against a workspace.
type Invoker struct {
	// Workspace is where sources and artifacts live.
	Workspace *Workspace
	// Compiler is the compiler program and its extra flags.
	Compiler []string
	// Timeout bounds a single compiler run. Zero means no bound.
	Timeout time.Duration
	// Runner starts the compiler.
	Runner Runner
	// Previewer is handed the PDF after a successful compile.
	Previewer Previewer
	// OnStatus, if set, is called as the attempt progresses.
	OnStatus func(Status)
}

// NewInvoker builds an Invoker from settings.
func NewInvoker(s *config.Settings, previewer Previewer) *Invoker {
	return &Invoker{
		Workspace: NewWorkspace(s),
		Compiler:  slices.Clone(s.CompilerArgv),
		Timeout:   s.CompileTimeout,
		Runner:    ExecRunner{},
		Previewer: previewer,
	}
}

func (inv *Invoker) notify(s Status) {
	if inv.OnStatus != nil {
		inv.OnStatus(s)
	}
}

// Args returns the full compiler command line for the workspace source.
func (inv *Invoker) Args() []string {
	ws := inv.Workspace
	return append(slices.Clone(inv.Compiler),
		"-interaction=nonstopmode",
		"-output-directory="+ws.Dir,
		ws.Path(".tex"),
	)
}

// Compile wraps snippet in the standalone preamble, compiles it and hands the
// PDF to the previewer. Generated artifacts are removed before returning,
// whatever the outcome.
//
// Errors are *CompileError, ErrMissingPDF, *PreviewError, a context error
// when ctx is cancelled, or a plain error when the workspace or the compiler
// could not be used at all.
func (inv *Invoker) Compile(ctx context.Context, snippet string) error {
	ws := inv.Workspace
	if err := ws.Ensure(); err != nil {
		return err
	}
	defer ws.Clean()

	if err := ws.WriteSource(WrapDocument(snippet)); err != nil {
		return err
	}

	inv.notify(Compiling)

	runCtx := ctx
	if inv.Timeout > 0 {
		var cancel context.CancelFunc
		runCtx, cancel = context.WithTimeout(ctx, inv.Timeout)
		defer cancel()
	}

	argv := inv.Args()
	res, err := inv.Runner.Run(runCtx, argv)
	if err != nil {
		if ctx.Err() != nil {
			return ctx.Err()
		}
		if errors.Is(err, context.DeadlineExceeded) {
			log.WarningLog.Printf("compiler timed out after %s", inv.Timeout)
			return &CompileError{
				ExitCode: -1,
				Snippet:  fmt.Sprintf("Compiler timed out after %s.", inv.Timeout),
				TimedOut: true,
			}
		}
		return fmt.Errorf("failed to run compiler %s: %w", argv[0], err)
	}

	if res.ExitCode != 0 {
		log.InfoLog.Printf("compiler exited with status %d", res.ExitCode)
		return &CompileError{ExitCode: res.ExitCode, Snippet: ErrorSnippet(res.Output)}
	}

	inv.notify(Compiled)

	pdf, err := ws.ReadPDF()
	if err != nil {
		return err
	}

	if inv.Previewer == nil {
		return &PreviewError{Err: errors.New("no previewer configured")}
	}
	if err := inv.Previewer.Preview(pdf); err != nil {
		log.ErrorLog.Printf("preview failed: %v", err)
		return &PreviewError{Err: err}
	}
	return nil
}
