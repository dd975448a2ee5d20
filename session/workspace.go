package session

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"texpop/config"
	"texpop/log"
)

// Artifact extensions produced for the fixed base name. Every compile
// attempt removes all of them.
var Artifacts = []string{".tex", ".aux", ".log", ".pdf"}

// ErrMissingPDF is returned when the compiler reports success but leaves no PDF behind.
var ErrMissingPDF = errors.New("PDF file was not created by the compiler")

// Workspace is the scratch directory a compile attempt writes into.
type Workspace struct {
	// Dir is the absolute scratch directory.
	Dir string
	// Base is the artifact file name without extension.
	Base string
}

// NewWorkspace returns the workspace described by s. Nothing is created on disk.
func NewWorkspace(s *config.Settings) *Workspace {
	return &Workspace{Dir: s.WorkspaceDir, Base: s.BaseName}
}

// Path returns the artifact path for ext, e.g. Path(".pdf").
func (w *Workspace) Path(ext string) string {
	return filepath.Join(w.Dir, w.Base+ext)
}

// Ensure creates the directory if needed.
func (w *Workspace) Ensure() error {
	if err := os.MkdirAll(w.Dir, 0755); err != nil {
		return fmt.Errorf("failed to create workspace %s: %w", w.Dir, err)
	}
	return nil
}

// WriteSource overwrites the .tex file.
func (w *Workspace) WriteSource(src string) error {
	if err := os.WriteFile(w.Path(".tex"), []byte(src), 0644); err != nil {
		return fmt.Errorf("failed to write source: %w", err)
	}
	return nil
}

// ReadPDF reads the compiled document.
func (w *Workspace) ReadPDF() ([]byte, error) {
	data, err := os.ReadFile(w.Path(".pdf"))
	if errors.Is(err, os.ErrNotExist) {
		return nil, ErrMissingPDF
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read PDF: %w", err)
	}
	return data, nil
}

// Clean deletes every generated artifact. Errors are logged and otherwise ignored.
func (w *Workspace) Clean() {
	for _, ext := range Artifacts {
		err := os.Remove(w.Path(ext))
		if err != nil && !errors.Is(err, os.ErrNotExist) {
			log.WarningLog.Printf("failed to remove %s: %v", w.Path(ext), err)
		}
	}
}

// Remove deletes the workspace directory and everything in it. Errors are ignored.
func (w *Workspace) Remove() {
	if err := os.RemoveAll(w.Dir); err != nil {
		log.WarningLog.Printf("failed to remove workspace %s: %v", w.Dir, err)
	}
}
