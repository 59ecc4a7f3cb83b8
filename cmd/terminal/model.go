package main

import (
	"context"
	"strings"
	"time"

	"airops-service/internal/usecase"

	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

// refreshInterval is how often the screen picks up lines appended by
// background sends and bag enrichment.
const refreshInterval = 200 * time.Millisecond

var (
	headerStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#0B1F3A")).
			Background(lipgloss.Color("#7FD1FF")).
			Padding(0, 1)
	screenStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#7CFC9A"))
	echoStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#FFFFFF"))
	errorStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#FF6B6B"))
	footerStyle = lipgloss.NewStyle().
			Faint(true)
)

type (
	commandDoneMsg struct{}
	refreshMsg     struct{}
)

type screenModel struct {
	ctx      context.Context
	terminal *usecase.Terminal
	session  *usecase.Session

	input  textinput.Model
	screen viewport.Model

	history      []string
	historyIndex int
	shown        int
	busy         bool
	width        int
	height       int
}

func newModel(ctx context.Context, terminal *usecase.Terminal) screenModel {
	input := textinput.New()
	input.Prompt = "> "
	input.Placeholder = "AN RIXJFK"
	input.CharLimit = 200
	input.Focus()

	return screenModel{
		ctx:      ctx,
		terminal: terminal,
		session:  terminal.OpenSession(),
		input:    input,
		screen:   viewport.New(80, 20),
	}
}

func (model screenModel) Init() tea.Cmd {
	return tea.Batch(textinput.Blink, refreshTick())
}

func refreshTick() tea.Cmd {
	return tea.Tick(refreshInterval, func(time.Time) tea.Msg {
		return refreshMsg{}
	})
}

func (model screenModel) Update(message tea.Msg) (tea.Model, tea.Cmd) {
	var commands []tea.Cmd

	switch message := message.(type) {
	case tea.WindowSizeMsg:
		model.width = message.Width
		model.height = message.Height
		model.screen.Width = message.Width
		model.screen.Height = max(message.Height-4, 1)
		model.input.Width = max(message.Width-4, 10)
		model.render(true)

	case tea.KeyMsg:
		switch message.Type {
		case tea.KeyCtrlC, tea.KeyEsc:
			model.terminal.CloseSession(model.session.ID)
			return model, tea.Quit
		case tea.KeyEnter:
			line := strings.TrimSpace(model.input.Value())
			if line == "" || model.busy {
				return model, nil
			}
			model.history = append(model.history, line)
			model.historyIndex = len(model.history)
			model.input.Reset()
			model.busy = true
			return model, model.execute(line)
		case tea.KeyUp:
			if model.historyIndex > 0 {
				model.historyIndex--
				model.input.SetValue(model.history[model.historyIndex])
				model.input.CursorEnd()
			}
			return model, nil
		case tea.KeyDown:
			if model.historyIndex < len(model.history)-1 {
				model.historyIndex++
				model.input.SetValue(model.history[model.historyIndex])
				model.input.CursorEnd()
			} else {
				model.historyIndex = len(model.history)
				model.input.Reset()
			}
			return model, nil
		case tea.KeyPgUp, tea.KeyPgDown:
			var cmd tea.Cmd
			model.screen, cmd = model.screen.Update(message)
			return model, cmd
		}

	case commandDoneMsg:
		model.busy = false
		model.render(true)
		return model, nil

	case refreshMsg:
		model.render(false)
		return model, refreshTick()
	}

	var cmd tea.Cmd
	model.input, cmd = model.input.Update(message)
	commands = append(commands, cmd)
	return model, tea.Batch(commands...)
}

// execute runs the line off the UI goroutine; the screen is redrawn from
// the session transcript once it completes.
func (model screenModel) execute(line string) tea.Cmd {
	return func() tea.Msg {
		model.terminal.Run(model.ctx, model.session, line)
		return commandDoneMsg{}
	}
}

// render redraws the screen when the transcript changed. force also
// redraws after CLEAR or a resize.
func (model *screenModel) render(force bool) {
	transcript := model.session.Transcript()
	if !force && len(transcript) == model.shown {
		return
	}
	model.shown = len(transcript)

	var b strings.Builder
	for i, line := range transcript {
		if i > 0 {
			b.WriteByte('\n')
		}
		switch {
		case strings.HasPrefix(line, "> "):
			b.WriteString(echoStyle.Render(line))
		case strings.HasPrefix(line, "ERROR") || strings.Contains(line, "FAILED"):
			b.WriteString(errorStyle.Render(line))
		default:
			b.WriteString(screenStyle.Render(line))
		}
	}
	model.screen.SetContent(b.String())
	model.screen.GotoBottom()
}

func (model screenModel) View() string {
	header := headerStyle.Render("RESERVATION TERMINAL  " + model.session.ID[:8])
	status := "enter: run  up/down: history  pgup/pgdown: scroll  esc: quit"
	if model.busy {
		status = "working..."
	}
	return lipgloss.JoinVertical(lipgloss.Left,
		header,
		model.screen.View(),
		model.input.View(),
		footerStyle.Render(status),
	)
}
