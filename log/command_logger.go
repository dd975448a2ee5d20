package log

import (
	"os/exec"
	"strings"
	"sync"
)

// CommandLogger is a global interface for logging command executions
type CommandLogger interface {
	LogCommand(cmd *exec.Cmd, source string)
}

var (
	commandLogger CommandLogger = fileCommandLogger{}
	loggerMu      sync.RWMutex
)

// SetCommandLogger sets the global command logger. Passing nil restores the
// default, which writes to InfoLog.
func SetCommandLogger(logger CommandLogger) {
	loggerMu.Lock()
	defer loggerMu.Unlock()
	if logger == nil {
		logger = fileCommandLogger{}
	}
	commandLogger = logger
}

// LogExecCommand logs an exec.Command call
func LogExecCommand(cmd *exec.Cmd, source string) {
	loggerMu.RLock()
	logger := commandLogger
	loggerMu.RUnlock()

	if logger != nil && cmd != nil {
		logger.LogCommand(cmd, source)
	}
}

type fileCommandLogger struct{}

func (fileCommandLogger) LogCommand(cmd *exec.Cmd, source string) {
	dir := cmd.Dir
	if dir == "" {
		dir = "."
	}
	InfoLog.Printf("[%s] exec %s (dir: %s)", source, strings.Join(cmd.Args, " "), dir)
}
