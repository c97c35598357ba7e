package tui

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/katalvlaran/critters/grid"
	"github.com/katalvlaran/critters/render"
	"github.com/katalvlaran/critters/turtle"
)

// WalkModel animates a turtle.Walk over its grid. It starts playing at once.
//
// Keys: space pause/resume, r restart, q quit.
type WalkModel struct {
	title    string
	g        *grid.Grid
	path     []grid.Position
	walk     *turtle.Walk
	settings settings
	paused   bool
	ticking  bool
	err      error
	quitting bool
}

// NewWalk prepares an animation of path over g.
func NewWalk(title string, g *grid.Grid, path []grid.Position, opts ...Option) (WalkModel, error) {
	w, err := turtle.NewWalk(g, path)
	if err != nil {
		return WalkModel{}, err
	}

	return WalkModel{
		title:    title,
		g:        g,
		path:     path,
		walk:     w,
		settings: newSettings(opts),
		ticking:  len(path) > 0,
	}, nil
}

// Init implements tea.Model.
func (m WalkModel) Init() tea.Cmd {
	if !m.ticking {
		return nil
	}

	return tick(m.settings.interval)
}

// Update implements tea.Model.
func (m WalkModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "esc", "ctrl+c":
			m.quitting = true
			return m, tea.Quit
		case " ":
			m.paused = !m.paused
			if !m.paused {
				return m.resume()
			}
		case "r":
			m.walk.Reset()
			m.err = nil
			m.paused = false
			return m.resume()
		}

	case tickMsg:
		m.ticking = false
		if m.paused {
			return m, nil
		}
		done, err := m.walk.Step()
		if err != nil {
			m.err = err
			return m, nil
		}
		if done {
			return m, nil
		}
		m.ticking = true
		return m, tick(m.settings.interval)
	}

	return m, nil
}

func (m WalkModel) resume() (tea.Model, tea.Cmd) {
	if m.ticking || m.walk.Done() {
		return m, nil
	}
	m.ticking = true

	return m, tick(m.settings.interval)
}

// View implements tea.Model.
func (m WalkModel) View() string {
	if m.quitting {
		return ""
	}
	t := m.settings.theme
	view := render.GridView{Grid: m.g, Visited: m.path[:m.walk.Progress()]}
	if cur, ok := m.walk.Current(); ok {
		view.Current = &cur
	}

	var b strings.Builder
	b.WriteString(t.Title.Render(m.title) + "\n")
	b.WriteString(t.Grid(view) + "\n")
	b.WriteString(fmt.Sprintf("%d/%d cells", m.walk.Progress(), m.walk.Len()))
	if m.paused {
		b.WriteString("  paused")
	}
	b.WriteString("\n")
	if m.err != nil {
		b.WriteString(t.Longest.Render(m.err.Error()) + "\n")
	}
	b.WriteString(t.Muted.Render("space pause/resume • r restart • q quit") + "\n")

	return b.String()
}
