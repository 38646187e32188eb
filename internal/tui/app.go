// Package tui provides the interactive terminal UI for tracklet.
package tui

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"tracklet/internal/store"
	"tracklet/internal/track"
)

var (
	// Colors
	primaryColor = lipgloss.Color("#7C3AED")
	successColor = lipgloss.Color("#10B981")
	errorColor   = lipgloss.Color("#EF4444")
	mutedColor   = lipgloss.Color("#6B7280")
	fgColor      = lipgloss.Color("#F9FAFB")

	// Styles
	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(primaryColor).
			Padding(0, 1)

	statusBarStyle = lipgloss.NewStyle().
			Background(lipgloss.Color("#374151")).
			Foreground(fgColor).
			Padding(0, 1)

	taskItemStyle = lipgloss.NewStyle().
			Padding(0, 2)

	selectedStyle = lipgloss.NewStyle().
			Background(primaryColor).
			Foreground(fgColor).
			Bold(true).
			Padding(0, 2)

	activeStyle = lipgloss.NewStyle().
			Foreground(successColor).
			Bold(true)

	helpStyle = lipgloss.NewStyle().
			Foreground(mutedColor).
			Italic(true)

	errorStyle = lipgloss.NewStyle().
			Foreground(errorColor)

	inputBoxStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(primaryColor).
			Padding(0, 1)
)

// tickMsg drives the per-second display refresh.
type tickMsg time.Time

// rollMsg drives the day-boundary check.
type rollMsg time.Time

// App is the main TUI application model. It owns the two periodic
// drivers the engine itself refuses to hold: a fast tick for the live
// elapsed display and a slow roll for the midnight closure. Bubble Tea
// delivers all messages on one goroutine, so the registry sees strictly
// serialized access.
type App struct {
	reg      *track.Registry
	store    store.Store
	tickEach time.Duration
	rollEach time.Duration

	views    []track.TaskView
	selected int
	input    textinput.Model
	adding   bool
	mode     string // "list" or "stats"
	message  string
	width    int
	height   int
}

// New creates the TUI over an already-loaded registry.
func New(reg *track.Registry, st store.Store, tickEach, rollEach time.Duration) *App {
	ti := textinput.New()
	ti.Placeholder = "New task name"
	ti.CharLimit = 128
	ti.Width = 40

	return &App{
		reg:      reg,
		store:    st,
		tickEach: tickEach,
		rollEach: rollEach,
		views:    reg.Snapshot(),
		input:    ti,
		mode:     "list",
	}
}

// Run starts the TUI application.
func (a *App) Run() error {
	p := tea.NewProgram(a, tea.WithAltScreen())
	_, err := p.Run()
	return err
}

// Init implements tea.Model.
func (a *App) Init() tea.Cmd {
	return tea.Batch(a.tickCmd(), a.rollCmd())
}

func (a *App) tickCmd() tea.Cmd {
	return tea.Tick(a.tickEach, func(t time.Time) tea.Msg { return tickMsg(t) })
}

func (a *App) rollCmd() tea.Cmd {
	return tea.Tick(a.rollEach, func(t time.Time) tea.Msg { return rollMsg(t) })
}

// Update implements tea.Model.
func (a *App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		a.width = msg.Width
		a.height = msg.Height
		return a, nil

	case tickMsg:
		a.views = a.reg.TickAll()
		return a, a.tickCmd()

	case rollMsg:
		if a.reg.RollAll(track.DateOf(a.reg.Now())) {
			a.persist()
			a.views = a.reg.Snapshot()
		}
		return a, a.rollCmd()

	case tea.KeyMsg:
		if a.adding {
			return a.updateAdding(msg)
		}
		return a.updateKeys(msg)
	}
	return a, nil
}

func (a *App) updateKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "q", "ctrl+c":
		return a, tea.Quit

	case "up", "k":
		if a.selected > 0 {
			a.selected--
		}

	case "down", "j":
		if a.selected < len(a.views)-1 {
			a.selected++
		}

	case "enter", " ", "space":
		if a.mode != "list" || len(a.views) == 0 {
			break
		}
		if err := a.reg.Toggle(a.views[a.selected].ID); err != nil {
			a.message = err.Error()
			break
		}
		a.persist()
		a.views = a.reg.Snapshot()

	case "a":
		if a.mode == "list" {
			a.adding = true
			a.input.SetValue("")
			a.input.Focus()
			return a, textinput.Blink
		}

	case "d":
		if a.mode != "list" || len(a.views) == 0 {
			break
		}
		if err := a.reg.DeleteTask(a.views[a.selected].ID); err != nil {
			a.message = err.Error()
			break
		}
		a.persist()
		a.views = a.reg.Snapshot()
		if a.selected >= len(a.views) && a.selected > 0 {
			a.selected--
		}

	case "s":
		if a.mode == "stats" {
			a.mode = "list"
		} else {
			a.mode = "stats"
		}
	}
	return a, nil
}

func (a *App) updateAdding(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "esc":
		a.adding = false
		a.input.Blur()
		return a, nil
	case "enter":
		name := strings.TrimSpace(a.input.Value())
		a.adding = false
		a.input.Blur()
		if name == "" {
			return a, nil
		}
		if _, err := a.reg.AddTask(name, "", nil, ""); err != nil {
			a.message = err.Error()
			return a, nil
		}
		a.persist()
		a.views = a.reg.Snapshot()
		return a, nil
	}
	var cmd tea.Cmd
	a.input, cmd = a.input.Update(msg)
	return a, cmd
}

func (a *App) persist() {
	if err := a.store.Save(a.reg); err != nil {
		a.message = fmt.Sprintf("save failed: %v", err)
	} else {
		a.message = ""
	}
}

// View implements tea.Model.
func (a *App) View() string {
	var b strings.Builder
	b.WriteString(titleStyle.Render("tracklet"))
	b.WriteString("\n\n")

	if a.mode == "stats" {
		a.renderStats(&b)
	} else {
		a.renderList(&b)
	}

	if a.adding {
		b.WriteString("\n")
		b.WriteString(inputBoxStyle.Render(a.input.View()))
	}

	b.WriteString("\n")
	if a.message != "" {
		b.WriteString(errorStyle.Render(a.message))
		b.WriteString("\n")
	}

	status := "no task running"
	if active := a.reg.Active(); active != nil {
		status = "tracking: " + active.Name()
	}
	b.WriteString(statusBarStyle.Render(status))
	b.WriteString("\n")
	b.WriteString(helpStyle.Render("enter/space toggle · a add · d delete · s stats · q quit"))
	return b.String()
}

func (a *App) renderList(b *strings.Builder) {
	if len(a.views) == 0 {
		b.WriteString(helpStyle.Render("No tasks yet. Press 'a' to add one."))
		b.WriteString("\n")
		return
	}
	for i, v := range a.views {
		marker := " "
		name := v.Name
		if v.Active {
			marker = activeStyle.Render("●")
		}
		line := fmt.Sprintf("%s %-30s %s  today %s", marker, name, v.Elapsed, v.Today)
		if labels := taskLabels(v); labels != "" {
			line += "  " + helpStyle.Render(labels)
		}
		if i == a.selected {
			b.WriteString(selectedStyle.Render(line))
		} else {
			b.WriteString(taskItemStyle.Render(line))
		}
		b.WriteString("\n")
	}
}

func (a *App) renderStats(b *strings.Builder) {
	sections := []struct {
		title string
		kind  track.Kind
	}{
		{"Time by Projects", track.KindProject},
		{"Time by Life Areas", track.KindLifeArea},
		{"Time by Tags", track.KindTag},
	}
	for _, sec := range sections {
		b.WriteString(titleStyle.Render(sec.title))
		b.WriteString("\n")
		buckets, err := a.reg.StatsBy(sec.kind)
		if err != nil {
			b.WriteString(errorStyle.Render(err.Error()))
			b.WriteString("\n")
			continue
		}
		if len(buckets) == 0 {
			b.WriteString(helpStyle.Render("  no data"))
			b.WriteString("\n")
			continue
		}
		for _, bk := range buckets {
			d := track.Seconds(int64(bk.Seconds))
			b.WriteString(fmt.Sprintf("  %-24s %s\n", bk.Label, d.FormatCompact()))
		}
	}
}

func taskLabels(v track.TaskView) string {
	parts := []string{}
	if v.Project != "" {
		parts = append(parts, v.Project)
	}
	if v.LifeArea != "" {
		parts = append(parts, v.LifeArea)
	}
	if len(v.Tags) > 0 {
		parts = append(parts, "#"+strings.Join(v.Tags, " #"))
	}
	return strings.Join(parts, " · ")
}
