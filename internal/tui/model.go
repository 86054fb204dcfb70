// Package tui is the interactive terminal calculator.
package tui

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"web-calculator/internal/app"
	"web-calculator/internal/calculator"
)

// evaluator is the part of *app.Session the model needs.
type evaluator interface {
	Evaluate(ctx context.Context, expr string) app.Outcome
}

type outcomeMsg app.Outcome

// resetErrorMsg clears the failure numbered seq, unless a newer one replaced it.
type resetErrorMsg struct{ seq int }

// Model is the Bubble Tea model of the calculator screen.
type Model struct {
	ctx          context.Context
	session      evaluator
	state        app.State
	cursor       int
	errSeq       int
	errorDisplay time.Duration

	keys   keyMap
	help   help.Model
	styles styles
}

// New returns a model starting from state.
func New(ctx context.Context, session evaluator, state app.State) Model {
	return Model{
		ctx:          ctx,
		session:      session,
		state:        state,
		errorDisplay: app.ErrorDisplay,
		keys:         defaultKeyMap(),
		help:         help.New(),
		styles:       defaultStyles(),
	}
}

// State returns the current application state.
func (m Model) State() app.State {
	return m.state
}

func (m Model) Init() tea.Cmd {
	return nil
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case outcomeMsg:
		m.state = app.Apply(m.state, app.Outcome(msg))
		m.cursor = 0
		if msg.Err == nil {
			return m, nil
		}
		reset := m.scheduleReset()
		return m, reset

	case resetErrorMsg:
		if msg.seq == m.errSeq {
			m.state = app.ResetError(m.state)
		}
		return m, nil

	case tea.WindowSizeMsg:
		m.help.Width = msg.Width
		return m, nil
	}

	return m, nil
}

func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Quit):
		return m, tea.Quit
	case key.Matches(msg, m.keys.Evaluate):
		return m, m.evaluate(m.state.Expression)
	case key.Matches(msg, m.keys.Backspace):
		m.state = app.Backspace(m.state)
	case key.Matches(msg, m.keys.Clear):
		m.state = app.ClearAll(m.state)
	case key.Matches(msg, m.keys.Root):
		m.state = app.Press(m.state, calculator.Sqrt.Token())
	case key.Matches(msg, m.keys.Up):
		if m.cursor > 0 {
			m.cursor--
		}
	case key.Matches(msg, m.keys.Down):
		if m.cursor < len(m.state.History)-1 {
			m.cursor++
		}
	case key.Matches(msg, m.keys.Reuse):
		if next, ok := app.Reuse(m.state, m.cursor); ok {
			m.state = next
		}
	default:
		if s := msg.String(); len(s) == 1 && strings.Contains(tokenKeys, s) {
			m.state = app.Press(m.state, s)
		}
	}
	return m, nil
}

// evaluate runs the request off the UI loop. Nothing cancels an earlier
// request, so overlapping replies are applied in arrival order.
func (m Model) evaluate(expr string) tea.Cmd {
	ctx, session := m.ctx, m.session
	return func() tea.Msg {
		return outcomeMsg(session.Evaluate(ctx, expr))
	}
}

func (m *Model) scheduleReset() tea.Cmd {
	m.errSeq++
	seq := m.errSeq
	return tea.Tick(m.errorDisplay, func(time.Time) tea.Msg {
		return resetErrorMsg{seq: seq}
	})
}

func (m Model) View() string {
	var b strings.Builder

	b.WriteString(m.styles.Title.Render("Calculator"))
	b.WriteString("\n")
	b.WriteString(m.styles.Expression.Render(m.state.Expression))
	b.WriteString("\n")

	if m.state.Error != "" {
		b.WriteString(m.styles.ErrorResult.Render(m.state.Result))
		b.WriteString("\n")
		b.WriteString(m.styles.ErrorMessage.Render(m.state.Error))
	} else {
		b.WriteString(m.styles.Result.Render(m.state.Result))
	}
	b.WriteString("\n\n")

	b.WriteString(m.styles.Subtitle.Render("History"))
	b.WriteString("\n")
	if len(m.state.History) == 0 {
		b.WriteString(m.styles.Muted.Render("  no calculations yet"))
		b.WriteString("\n")
	}
	for i, e := range m.state.History {
		marker := "  "
		if i == m.cursor {
			marker = "> "
		}
		line := fmt.Sprintf("%s%s  %s = %s", marker, m.styles.Muted.Render(e.Timestamp), e.Expression, m.styles.HistoryResult.Render(e.Result))
		b.WriteString(line)
		b.WriteString("\n")
	}

	b.WriteString("\n")
	b.WriteString(m.help.View(m.keys))
	return m.styles.App.Render(b.String())
}

// Run starts the full-screen program and blocks until the user quits.
func Run(ctx context.Context, session evaluator, state app.State) error {
	p := tea.NewProgram(New(ctx, session, state), tea.WithAltScreen(), tea.WithContext(ctx))
	_, err := p.Run()
	return err
}

var _ tea.Model = Model{}

func defaultStyles() styles {
	return styles{
		App:           lipgloss.NewStyle().Padding(1, 2),
		Title:         lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#7D56F4")).MarginBottom(1),
		Subtitle:      lipgloss.NewStyle().Bold(true).Underline(true),
		Expression:    lipgloss.NewStyle().Foreground(lipgloss.Color("#A0A0A0")),
		Result:        lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#FFFFFF")),
		ErrorResult:   lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#FF5F56")),
		ErrorMessage:  lipgloss.NewStyle().Italic(true).Foreground(lipgloss.Color("#FF5F56")),
		HistoryResult: lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#27C93F")),
		Muted:         lipgloss.NewStyle().Foreground(lipgloss.Color("#6C6C6C")),
	}
}

type styles struct {
	App           lipgloss.Style
	Title         lipgloss.Style
	Subtitle      lipgloss.Style
	Expression    lipgloss.Style
	Result        lipgloss.Style
	ErrorResult   lipgloss.Style
	ErrorMessage  lipgloss.Style
	HistoryResult lipgloss.Style
	Muted         lipgloss.Style
}
