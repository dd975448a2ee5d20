// Package viewer shows the first page of a PDF read from stdin in a small
// pop-up window. It is only linked into texpop-view.
package viewer

import (
	"context"
	"errors"
	"fmt"
	"image"
	"io"
	"texpop/log"

	"github.com/h2non/filetype"
)

// ErrNotPDF is returned when the input does not start with a PDF header.
var ErrNotPDF = errors.New("input is not a PDF document")

// Page is the rendered first page of a document.
type Page struct {
	// Image is the page rasterized at the configured DPI.
	Image *image.RGBA
	// Text is the plain text content of the page.
	Text string
}

// Renderer turns PDF bytes into the first page of the document.
type Renderer interface {
	Render(ctx context.Context, pdf []byte) (*Page, error)
}

// Display shows a session and blocks until the user closes it.
type Display interface {
	Show(s *Session) error
}

// Viewer ties input, rendering and display together.
type Viewer struct {
	Renderer Renderer
	Display  Display
	// Margin is the white frame around the page, in pixels.
	Margin int
}

// Run reads one PDF from in and displays its first page. Empty input is not
// an error: the viewer has nothing to show and returns immediately.
func (v *Viewer) Run(ctx context.Context, in io.Reader) error {
	pdf, err := io.ReadAll(in)
	if err != nil {
		return fmt.Errorf("failed to read input: %w", err)
	}
	if len(pdf) == 0 {
		log.InfoLog.Printf("empty input, nothing to show")
		return nil
	}
	if !filetype.Is(pdf, "pdf") {
		return ErrNotPDF
	}

	page, err := v.Renderer.Render(ctx, pdf)
	if err != nil {
		return fmt.Errorf("failed to render page: %w", err)
	}
	log.InfoLog.Printf("rendered page %dx%d, %d bytes of text", page.Image.Bounds().Dx(), page.Image.Bounds().Dy(), len(page.Text))

	return v.Display.Show(NewSession(page, v.Margin))
}
