package app

import (
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"texpop/config"
)

// lookPath is swapped out in tests.
var lookPath = exec.LookPath

// CheckTools reports external programs the REPL will need but cannot find.
// Missing tools are not fatal: the failure resurfaces on the first compile.
func CheckTools(settings *config.Settings) []string {
	var warnings []string
	if len(settings.CompilerArgv) > 0 && !available(settings.CompilerArgv[0]) {
		warnings = append(warnings, fmt.Sprintf("Warning: compiler %q not found, install a TeX distribution or set \"compiler\" in the config.", settings.CompilerArgv[0]))
	}
	if len(settings.ViewerArgv) > 0 && !available(settings.ViewerArgv[0]) {
		warnings = append(warnings, fmt.Sprintf("Warning: viewer %q not found, previews will fail.", settings.ViewerArgv[0]))
	}
	return warnings
}

func available(program string) bool {
	if filepath.IsAbs(program) {
		info, err := os.Stat(program)
		return err == nil && !info.IsDir()
	}
	_, err := lookPath(program)
	return err == nil
}
