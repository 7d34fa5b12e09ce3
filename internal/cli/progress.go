package cli

import (
	"context"
	"fmt"
	"io"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
)

const defaultBarWidth = 30

// progressMsg reports that done of total requirements have been handled.
type progressMsg struct {
	done, total int
	name        string
}

// progressModel is the bubbletea model rendering the manifest progress bar.
type progressModel struct {
	done, total int
	name        string
	width       int
}

func (m progressModel) Init() tea.Cmd { return nil }

func (m progressModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case progressMsg:
		m.done, m.total, m.name = msg.done, msg.total, msg.name
	case tea.WindowSizeMsg:
		m.width = min(max(msg.Width-40, 10), defaultBarWidth)
	}
	return m, nil
}

func (m progressModel) View() string {
	width := m.width
	if width <= 0 {
		width = defaultBarWidth
	}
	filled := 0
	if m.total > 0 {
		filled = width * m.done / m.total
	}
	bar := styleBarFilled.Render(strings.Repeat("█", filled)) +
		styleBarEmpty.Render(strings.Repeat("░", width-filled))
	line := fmt.Sprintf("Processing packages %s %d/%d", bar, m.done, m.total)
	if m.name != "" {
		line += " " + StyleDim.Render(m.name)
	}
	return line + "\n"
}

// progressBar runs a progressModel program in the background.
type progressBar struct {
	program *tea.Program
	exited  chan struct{}
}

// newProgressBar starts a progress bar on w for total requirements.
// Keyboard input and signal handling are left to the caller.
func newProgressBar(ctx context.Context, w io.Writer, total int) *progressBar {
	p := tea.NewProgram(progressModel{total: total},
		tea.WithContext(ctx),
		tea.WithOutput(w),
		tea.WithInput(nil),
		tea.WithoutSignalHandler(),
	)
	b := &progressBar{program: p, exited: make(chan struct{})}
	go func() {
		defer close(b.exited)
		_, _ = p.Run()
	}()
	return b
}

// Update advances the bar.
func (b *progressBar) Update(done, total int, name string) {
	b.program.Send(progressMsg{done: done, total: total, name: name})
}

// Stop renders the final frame and waits for the program to exit.
func (b *progressBar) Stop() {
	b.program.Quit()
	<-b.exited
}
