package viewer

import (
	"image"

	"github.com/atotto/clipboard"
)

// Clipboard receives copied text.
type Clipboard interface {
	WriteAll(text string) error
}

// SystemClipboard writes to the OS clipboard.
type SystemClipboard struct{}

func (SystemClipboard) WriteAll(text string) error {
	return clipboard.WriteAll(text)
}

// Session is one window's worth of state: the page and its frame.
type Session struct {
	Page   *Page
	Margin int
}

func NewSession(page *Page, margin int) *Session {
	return &Session{Page: page, Margin: max(margin, 0)}
}

// FrameSize is the natural window size: the page plus the margin on every side.
func (s *Session) FrameSize() image.Point {
	b := s.Page.Image.Bounds()
	return image.Pt(b.Dx()+2*s.Margin, b.Dy()+2*s.Margin)
}

// CenteredPos is the top-left corner that centers s on a screen of the given size.
func (s *Session) CenteredPos(screen image.Point) image.Point {
	return CenteredPos(screen, s.FrameSize())
}

// CenteredPos returns the top-left corner that centers a window on a screen.
func CenteredPos(screen, window image.Point) image.Point {
	return image.Pt(screen.X/2-window.X/2, screen.Y/2-window.Y/2)
}

// CopyText puts the page text on c.
func (s *Session) CopyText(c Clipboard) error {
	return c.WriteAll(s.Page.Text)
}
