package viewer

import (
	"image/color"
	"texpop/log"

	"cogentcore.org/core/colors"
	"cogentcore.org/core/core"
	"cogentcore.org/core/events"
	"cogentcore.org/core/events/key"
	"cogentcore.org/core/icons"
	"cogentcore.org/core/styles"
	"cogentcore.org/core/styles/abilities"
	"cogentcore.org/core/styles/units"
	"cogentcore.org/core/system"
)

const defaultTitle = "texpop"

// Window displays a session in a fixed size window with a white frame.
type Window struct {
	// Title names the window for the OS.
	Title string
	// Clipboard receives the page text on "Copy Text". Nil means the system clipboard.
	Clipboard Clipboard
}

func (w *Window) clipboard() Clipboard {
	if w.Clipboard == nil {
		return SystemClipboard{}
	}
	return w.Clipboard
}

func (w *Window) title() string {
	if w.Title == "" {
		return defaultTitle
	}
	return w.Title
}

// Show builds the window and runs the event loop until it is closed.
func (w *Window) Show(s *Session) error {
	w.newStage(w.newBody(s), s).Run()
	core.Wait()
	return nil
}

// newBody lays out the page and wires the context menu and Escape.
func (w *Window) newBody(s *Session) *core.Body {
	b := core.NewBody(w.title())
	b.Styler(func(st *styles.Style) {
		// Key chords only reach the focused widget and nothing else here
		// can take focus.
		st.SetAbilities(true, abilities.Focusable)
		st.Background = colors.Uniform(color.White)
		st.Padding.Set(units.Dot(float32(s.Margin)))
		st.Border.Width.Zero()
		st.MaxBorder.Width.Zero()
		st.Overflow.Set(styles.OverflowVisible)
		st.Gap.Zero()
		st.Grow.Set(0, 0)
	})

	core.NewImage(b).SetImage(s.Page.Image)

	// Scene menus apply to the image and to the frame around it.
	b.Scene.AddContextMenu(w.contextMenu(s, b.Close))

	b.OnShow(func(e events.Event) {
		b.SetFocus()
	})
	b.OnKeyChord(func(e events.Event) {
		if e.KeyCode() == key.CodeEscape {
			e.SetHandled()
			b.Close()
		}
	})
	return b
}

func (w *Window) contextMenu(s *Session, closeWindow func()) func(m *core.Scene) {
	return func(m *core.Scene) {
		core.NewButton(m).SetText("Copy Text").SetIcon(icons.Copy).OnClick(func(e events.Event) {
			if err := s.CopyText(w.clipboard()); err != nil {
				log.ErrorLog.Printf("failed to copy text: %v", err)
			}
		})
		core.NewSeparator(m)
		core.NewButton(m).SetText("Close").SetIcon(icons.Close).OnClick(func(e events.Event) {
			closeWindow()
		})
	}
}

// newStage sizes the window to its content and centers it on the primary
// screen.
func (w *Window) newStage(b *core.Body, s *Session) *core.Stage {
	// Every preview shares one title; a saved geometry would resize and move
	// the next page to where the last one was.
	core.DebugSettings.DisableWindowGeometrySaver = true

	st := b.NewWindow().SetResizable(false).SetUseMinSize(false)
	if scr := system.TheApp.Screen(0); scr != nil {
		st.SetPos(s.CenteredPos(scr.PixelSize))
	}
	return st
}
