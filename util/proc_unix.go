//go:build !windows

package util

import (
	"os/exec"
	"syscall"
)

// HideWindow is a no-op outside Windows.
func HideWindow(cmd *exec.Cmd) {}

// Detach puts cmd in its own process group so terminal signals aimed at the
// parent (Ctrl-C) do not reach it.
func Detach(cmd *exec.Cmd) {
	if cmd.SysProcAttr == nil {
		cmd.SysProcAttr = &syscall.SysProcAttr{}
	}
	cmd.SysProcAttr.Setpgid = true
}
