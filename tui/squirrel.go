// Package tui holds the bubbletea models behind `critters play` and
// `critters <sweep> --animate`.
//
// Both models pace their replay with tea.Tick and are driven entirely through
// Update, so tests feed them messages without a terminal.
package tui

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/progress"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/katalvlaran/critters/render"
	"github.com/katalvlaran/critters/squirrel"
)

// DefaultInterval is the pause between two replayed steps.
const DefaultInterval = 500 * time.Millisecond

type tickMsg time.Time

// Option configures a model.
type Option func(*settings)

type settings struct {
	interval time.Duration
	theme    render.Theme
}

func newSettings(opts []Option) settings {
	s := settings{interval: DefaultInterval, theme: render.DefaultTheme()}
	for _, opt := range opts {
		opt(&s)
	}

	return s
}

// WithInterval sets the replay pace; non-positive values are ignored.
func WithInterval(d time.Duration) Option {
	return func(s *settings) {
		if d > 0 {
			s.interval = d
		}
	}
}

// WithTheme replaces the default theme.
func WithTheme(t render.Theme) Option {
	return func(s *settings) {
		s.theme = t
	}
}

func tick(d time.Duration) tea.Cmd {
	return tea.Tick(d, func(t time.Time) tea.Msg { return tickMsg(t) })
}

// SquirrelModel replays a squirrel.Run.
//
// Keys: s start, space pause/resume, r reset, q quit.
type SquirrelModel struct {
	run      *squirrel.Run
	settings settings
	progress progress.Model
	ticking  bool
	err      error
	quitting bool
}

// NewSquirrel wraps run; the model owns it from now on.
func NewSquirrel(run *squirrel.Run, opts ...Option) SquirrelModel {
	return SquirrelModel{
		run:      run,
		settings: newSettings(opts),
		progress: progress.New(progress.WithDefaultGradient()),
	}
}

// Init implements tea.Model.
func (m SquirrelModel) Init() tea.Cmd { return nil }

// Update implements tea.Model.
func (m SquirrelModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.progress.Width = max(msg.Width-4, 10)
		return m, nil

	case tea.KeyMsg:
		return m.key(msg)

	case tickMsg:
		done, err := m.run.Step()
		if err != nil {
			m.err = err
			m.ticking = false
			return m, nil
		}
		if done {
			m.ticking = false
			return m, nil
		}
		return m, tick(m.settings.interval)
	}

	return m, nil
}

func (m SquirrelModel) key(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	m.err = nil
	switch msg.String() {
	case "q", "esc", "ctrl+c":
		m.quitting = true
		return m, tea.Quit

	case "s":
		if err := m.run.Start(); err != nil {
			m.err = err
			return m, nil
		}
		return m.play()

	case " ":
		switch m.run.State() {
		case squirrel.Running:
			m.err = m.run.Pause()
		case squirrel.Paused:
			m.err = m.run.Resume()
		}

	case "r":
		m.run.Reset()
	}

	return m, nil
}

// play schedules the first tick unless a tick loop is already in flight.
func (m SquirrelModel) play() (tea.Model, tea.Cmd) {
	if m.ticking || m.run.State() != squirrel.Running {
		return m, nil
	}
	m.ticking = true

	return m, tick(m.settings.interval)
}

// View implements tea.Model.
func (m SquirrelModel) View() string {
	if m.quitting {
		return ""
	}
	t := m.settings.theme
	trips := m.run.Trips()
	trip, step := m.run.Cursor()

	var b strings.Builder
	b.WriteString(t.Title.Render("squirrel") + "  " + m.run.State().String() + "\n\n")
	b.WriteString(t.Frame.Render(t.Tree(m.run.Tree(), m.run.Position())) + "\n\n")

	ratio := 0.0
	if len(trips) > 0 {
		ratio = float64(m.run.Collected()) / float64(len(trips))
	}
	b.WriteString(m.progress.ViewAs(ratio) + "\n")
	status := fmt.Sprintf("collected %d/%d", m.run.Collected(), len(trips))
	if trip < len(trips) {
		status += fmt.Sprintf("  trip %s  step %d", trips[trip], step+1)
	}
	b.WriteString(status + "\n")
	if m.err != nil {
		b.WriteString(t.Longest.Render(m.err.Error()) + "\n")
	}
	b.WriteString(t.Muted.Render("s start • space pause/resume • r reset • q quit") + "\n")

	return b.String()
}
