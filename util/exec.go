package util

import (
	"context"
	"os/exec"
	"texpop/log"
)

// Command creates a new exec.Cmd and logs it
func Command(source string, name string, arg ...string) *exec.Cmd {
	cmd := exec.Command(name, arg...)
	HideWindow(cmd)
	log.LogExecCommand(cmd, source)
	return cmd
}

// CommandContext is Command bound to ctx; the process is killed when ctx is done.
func CommandContext(ctx context.Context, source string, name string, arg ...string) *exec.Cmd {
	cmd := exec.CommandContext(ctx, name, arg...)
	HideWindow(cmd)
	log.LogExecCommand(cmd, source)
	return cmd
}
