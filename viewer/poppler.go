package viewer

import (
	"bytes"
	"context"
	"fmt"
	"image"
	"image/png"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"texpop/log"
	"texpop/util"

	"golang.org/x/image/draw"
)

const (
	pdftoppm  = "pdftoppm"
	pdftotext = "pdftotext"
)

// PopplerRenderer rasterizes and extracts text with the poppler command line tools.
type PopplerRenderer struct {
	// DPI is the rasterization resolution.
	DPI int
}

// Render rasterizes page one of pdf and extracts its text. Further pages are ignored.
func (p *PopplerRenderer) Render(ctx context.Context, pdf []byte) (*Page, error) {
	dir, err := os.MkdirTemp("", "texpop-view-*")
	if err != nil {
		return nil, fmt.Errorf("failed to create temp directory: %w", err)
	}
	defer os.RemoveAll(dir)

	src := filepath.Join(dir, "page.pdf")
	if err := os.WriteFile(src, pdf, 0600); err != nil {
		return nil, fmt.Errorf("failed to write PDF to temp file: %w", err)
	}

	img, err := p.rasterize(ctx, src, filepath.Join(dir, "page"))
	if err != nil {
		return nil, err
	}

	text, err := p.extractText(ctx, src)
	if err != nil {
		// The picture is what matters; copying just yields nothing.
		log.WarningLog.Printf("text extraction failed: %v", err)
	}

	return &Page{Image: img, Text: text}, nil
}

func (p *PopplerRenderer) rasterize(ctx context.Context, src, outBase string) (*image.RGBA, error) {
	cmd := util.CommandContext(ctx, "PopplerRenderer.rasterize", pdftoppm,
		"-f", "1", "-l", "1",
		"-r", strconv.Itoa(p.DPI),
		"-png", "-singlefile",
		src, outBase,
	)
	var stderr bytes.Buffer
	cmd.Stderr = &stderr
	if err := cmd.Run(); err != nil {
		return nil, fmt.Errorf("pdftoppm failed: %w (stderr: %s)", err, strings.TrimSpace(stderr.String()))
	}

	f, err := os.Open(outBase + ".png")
	if err != nil {
		return nil, fmt.Errorf("failed to read converted image: %w", err)
	}
	defer f.Close()

	decoded, err := png.Decode(f)
	if err != nil {
		return nil, fmt.Errorf("failed to decode converted image: %w", err)
	}
	return toRGBA(decoded), nil
}

func (p *PopplerRenderer) extractText(ctx context.Context, src string) (string, error) {
	cmd := util.CommandContext(ctx, "PopplerRenderer.extractText", pdftotext,
		"-f", "1", "-l", "1",
		"-enc", "UTF-8",
		"-nopgbrk",
		src, "-",
	)
	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr
	if err := cmd.Run(); err != nil {
		return "", fmt.Errorf("pdftotext failed: %w (stderr: %s)", err, strings.TrimSpace(stderr.String()))
	}
	return stdout.String(), nil
}

// toRGBA copies img into an RGBA bitmap with a zero origin.
func toRGBA(img image.Image) *image.RGBA {
	if rgba, ok := img.(*image.RGBA); ok && rgba.Bounds().Min == (image.Point{}) {
		return rgba
	}
	b := img.Bounds()
	dst := image.NewRGBA(image.Rect(0, 0, b.Dx(), b.Dy()))
	draw.Draw(dst, dst.Bounds(), img, b.Min, draw.Src)
	return dst
}
