package ui

import (
	"fmt"
	"io"
	"sync"
	"texpop/log"

	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
)

type stopSpinnerMsg struct{}

// spinnerModel is an inline program: it draws on the current line only, so
// everything printed before it stays in the scrollback.
type spinnerModel struct {
	spinner spinner.Model
	label   string
	done    bool
}

func (m spinnerModel) Init() tea.Cmd {
	return m.spinner.Tick
}

func (m spinnerModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case stopSpinnerMsg:
		m.done = true
		return m, tea.Quit
	case spinner.TickMsg:
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd
	}
	return m, nil
}

func (m spinnerModel) View() string {
	if m.done {
		return ""
	}
	return m.spinner.View() + " " + m.label
}

// Spinner animates a label on the current line until stopped. It is only
// meant for terminals.
type Spinner struct {
	p    *tea.Program
	done chan struct{}
	once sync.Once
}

// StartSpinner begins animating label on w. Once stopped, label is left
// behind as a normal line.
func StartSpinner(w io.Writer, label string) *Spinner {
	m := spinnerModel{
		spinner: spinner.New(spinner.WithSpinner(spinner.MiniDot)),
		label:   label,
	}
	s := &Spinner{
		p: tea.NewProgram(m,
			tea.WithOutput(w),
			tea.WithInput(nil),
			tea.WithoutSignalHandler(),
		),
		done: make(chan struct{}),
	}
	go func() {
		defer close(s.done)
		if _, err := s.p.Run(); err != nil {
			log.WarningLog.Printf("spinner stopped: %v", err)
		}
		fmt.Fprintf(w, "%s\n", label)
	}()
	return s
}

// Stop ends the animation and waits until the line is finalised. Calling it
// more than once is fine.
func (s *Spinner) Stop() {
	s.once.Do(func() { s.p.Send(stopSpinnerMsg{}) })
	<-s.done
}
