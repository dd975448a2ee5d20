package session

import (
	"context"
	"errors"
	"os/exec"
	"texpop/util"
	"time"
)

// RunResult is the outcome of a compiler process that ran to completion.
type RunResult struct {
	// Output is the combined stdout and stderr.
	Output   string
	ExitCode int
}

// Runner runs the compiler. An error means the process could not be started
// or was cut short by ctx; a non-zero exit is reported through RunResult.
type Runner interface {
	Run(ctx context.Context, argv []string) (RunResult, error)
}

// ExecRunner runs argv as a subprocess.
type ExecRunner struct{}

func (ExecRunner) Run(ctx context.Context, argv []string) (RunResult, error) {
	if len(argv) == 0 {
		return RunResult{}, errors.New("empty compiler command")
	}
	cmd := util.CommandContext(ctx, "Invoker.Compile", argv[0], argv[1:]...)
	// Don't hang on grandchildren that inherit the output pipe after a kill.
	cmd.WaitDelay = 2 * time.Second

	out, err := cmd.CombinedOutput()
	if ctxErr := ctx.Err(); ctxErr != nil {
		return RunResult{Output: string(out), ExitCode: -1}, ctxErr
	}
	var exitErr *exec.ExitError
	if errors.As(err, &exitErr) {
		return RunResult{Output: string(out), ExitCode: exitErr.ExitCode()}, nil
	}
	if err != nil {
		return RunResult{}, err
	}
	return RunResult{Output: string(out)}, nil
}
