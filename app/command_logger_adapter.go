package app

import (
	"os/exec"
	"strings"
	"texpop/log"
	"texpop/ui"
)

// CommandLoggerAdapter echoes spawned commands to the console in verbose mode.
type CommandLoggerAdapter struct {
	console *ui.Console
}

// NewCommandLoggerAdapter creates a new command logger adapter
func NewCommandLoggerAdapter(console *ui.Console) *CommandLoggerAdapter {
	return &CommandLoggerAdapter{
		console: console,
	}
}

// LogCommand implements the CommandLogger interface
func (a *CommandLoggerAdapter) LogCommand(cmd *exec.Cmd, source string) {
	if cmd == nil {
		return
	}
	log.InfoLog.Printf("[%s] %s", source, strings.Join(cmd.Args, " "))
	if a.console != nil {
		a.console.Hint("$ " + strings.Join(cmd.Args, " "))
	}
}
