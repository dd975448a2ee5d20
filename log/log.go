package log

import (
	"io"
	"log"
	"os"
	"path/filepath"
)

var (
	WarningLog = log.New(io.Discard, "", 0)
	InfoLog    = log.New(io.Discard, "", 0)
	ErrorLog   = log.New(io.Discard, "", 0)
)

var globalLogFile *os.File

// LogFilePath returns the log file used by the program called name.
func LogFilePath(name string) string {
	return filepath.Join(os.TempDir(), name+".log")
}

// Initialize should be called once at the beginning of the program to set up logging.
// defer Close() after calling this function. Each program gets its own file in the os
// temp directory so the viewer never interleaves with the REPL.
func Initialize(name string) {
	f, err := os.OpenFile(LogFilePath(name), os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0666)
	if err != nil {
		// Logging is best effort; keep the discard loggers.
		return
	}
	setOutput(f)
	globalLogFile = f
}

func setOutput(w io.Writer) {
	InfoLog = log.New(w, "INFO:", log.Ldate|log.Ltime|log.Lshortfile)
	WarningLog = log.New(w, "WARNING:", log.Ldate|log.Ltime|log.Lshortfile)
	ErrorLog = log.New(w, "ERROR:", log.Ldate|log.Ltime|log.Lshortfile)
}

// Close closes the log file opened by Initialize.
func Close() {
	if globalLogFile == nil {
		return
	}
	_ = globalLogFile.Close()
	globalLogFile = nil
}
