package preview

import (
	"errors"
	"fmt"
	"slices"
	"texpop/config"
	"texpop/log"
	"texpop/util"

	"github.com/h2non/filetype"
)

// ErrNotPDF is returned when the bytes handed to Launch are not a PDF document.
var ErrNotPDF = errors.New("compiled output is not a PDF document")

// Launcher starts the viewer process and streams a PDF to its stdin.
type Launcher struct {
	// Argv is the viewer command line.
	Argv []string
}

// NewLauncher returns a Launcher using the configured viewer command.
func NewLauncher(s *config.Settings) *Launcher {
	return &Launcher{Argv: slices.Clone(s.ViewerArgv)}
}

// Preview implements session.Previewer.
func (l *Launcher) Preview(pdf []byte) error {
	return l.Launch(pdf)
}

// Launch starts the viewer, writes pdf to its stdin and closes the pipe. It
// returns as soon as the bytes are handed over; the viewer lives on by itself
// in its own process group and is reaped in the background.
func (l *Launcher) Launch(pdf []byte) error {
	if len(l.Argv) == 0 {
		return errors.New("no viewer command configured")
	}
	if !filetype.Is(pdf, "pdf") {
		return ErrNotPDF
	}

	// Stdout and Stderr stay nil, which connects them to the null device.
	cmd := util.Command("Launcher.Launch", l.Argv[0], l.Argv[1:]...)
	util.Detach(cmd)

	stdin, err := cmd.StdinPipe()
	if err != nil {
		return fmt.Errorf("failed to open viewer stdin: %w", err)
	}
	if err := cmd.Start(); err != nil {
		return fmt.Errorf("failed to start viewer: %w", err)
	}
	defer func() {
		go func() {
			if err := cmd.Wait(); err != nil {
				log.WarningLog.Printf("viewer exited: %v", err)
			}
		}()
	}()

	if _, err := stdin.Write(pdf); err != nil {
		_ = stdin.Close()
		return fmt.Errorf("failed to send PDF to viewer: %w", err)
	}
	if err := stdin.Close(); err != nil {
		return fmt.Errorf("failed to close viewer stdin: %w", err)
	}
	log.InfoLog.Printf("sent %d bytes to viewer pid %d", len(pdf), cmd.Process.Pid)
	return nil
}
