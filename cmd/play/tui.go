package main

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/barragelab/barrage/config"
	"github.com/barragelab/barrage/engine"
	"github.com/barragelab/barrage/game"
	"github.com/barragelab/barrage/score"
	"github.com/barragelab/barrage/stage"
)

const (
	gridCols = 60
	gridRows = 30
)

var (
	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#FAFAFA")).
			Background(lipgloss.Color("#7D56F4")).
			Padding(0, 1)

	statusStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#98FB98"))

	overStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#FF6B6B"))

	scoreStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#90EE90"))

	helpStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#666666"))
)

// keyCodes maps terminal keys to the key codes stages are written against.
// Arrow keys alias the movement cluster.
var keyCodes = map[string]string{
	"w":     "KeyW",
	"a":     "KeyA",
	"s":     "KeyS",
	"d":     "KeyD",
	"j":     "KeyJ",
	"k":     "KeyK",
	"up":    "KeyW",
	"left":  "KeyA",
	"down":  "KeyS",
	"right": "KeyD",
}

type modelState int

const (
	statePlaying modelState = iota
	stateEnterName
	stateScores
)

type frameMsg time.Time

type scoresMsg struct {
	err     error
	entries []score.Entry
}

type playModel struct {
	st    *stage.Stage
	game  *game.Shooter
	store *score.Store

	loop   *engine.Loop
	input  *engine.Input
	keys   *engine.KeyState
	canvas *cellCanvas

	tick time.Duration
	hold time.Duration
	held map[string]time.Time

	state     modelState
	nameInput textinput.Model
	entries   []score.Entry
	err       error
}

func newPlayModel(cfg config.Config, st *stage.Stage, g *game.Shooter, store *score.Store) *playModel {
	ti := textinput.New()
	ti.Placeholder = "anonymous"
	ti.Prompt = "name: "
	ti.Width = 20
	ti.CharLimit = 20

	tickRate := cfg.TickRate
	if tickRate <= 0 {
		tickRate = 60
	}

	return &playModel{
		st:        st,
		game:      g,
		store:     store,
		loop:      engine.NewLoop(nowMillis()),
		input:     engine.NewInput(0),
		keys:      engine.NewKeyState(),
		canvas:    newCellCanvas(st.Canvas.Width, st.Canvas.Height, gridCols, gridRows),
		tick:      time.Second / time.Duration(tickRate),
		hold:      time.Duration(cfg.HoldMillis) * time.Millisecond,
		held:      make(map[string]time.Time),
		state:     statePlaying,
		nameInput: ti,
	}
}

func nowMillis() float64 {
	return float64(time.Now().UnixNano()) / float64(time.Millisecond)
}

func (m *playModel) Init() tea.Cmd {
	return m.nextFrame()
}

func (m *playModel) nextFrame() tea.Cmd {
	return tea.Tick(m.tick, func(t time.Time) tea.Msg { return frameMsg(t) })
}

func (m *playModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case frameMsg:
		if m.state != statePlaying {
			return m, nil
		}
		m.expireHeldKeys()
		m.loop.Step(nowMillis(), m.input, m.keys, m.game, m.canvas)

		if m.game.Over() {
			m.state = stateEnterName
			m.nameInput.Focus()
			return m, textinput.Blink
		}
		return m, m.nextFrame()

	case tea.KeyMsg:
		return m.updateKey(msg)

	case scoresMsg:
		m.err = msg.err
		m.entries = msg.entries
		m.state = stateScores
		return m, nil
	}

	if m.state == stateEnterName {
		var cmd tea.Cmd
		m.nameInput, cmd = m.nameInput.Update(msg)
		return m, cmd
	}
	return m, nil
}

func (m *playModel) updateKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if msg.String() == "ctrl+c" {
		return m, tea.Quit
	}

	switch m.state {
	case statePlaying:
		if msg.String() == "q" {
			return m, tea.Quit
		}
		if code, ok := keyCodes[msg.String()]; ok {
			m.input.Push(engine.KeyEvent{Code: code, Down: true})
			m.held[code] = time.Now()
		}
		return m, nil

	case stateEnterName:
		if msg.String() == "enter" {
			m.nameInput.Blur()
			return m, m.submitScore
		}
		var cmd tea.Cmd
		m.nameInput, cmd = m.nameInput.Update(msg)
		return m, cmd

	case stateScores:
		switch msg.String() {
		case "q", "enter", "esc":
			return m, tea.Quit
		}
	}
	return m, nil
}

// expireHeldKeys synthesizes release events for keys whose hold window has
// passed. Terminals repeat keydown while a key is held, so a held key keeps
// refreshing its window and stays pressed.
func (m *playModel) expireHeldKeys() {
	now := time.Now()
	for code, pressedAt := range m.held {
		if now.Sub(pressedAt) >= m.hold {
			m.input.Push(engine.KeyEvent{Code: code, Down: false})
			delete(m.held, code)
		}
	}
}

func (m *playModel) submitScore() tea.Msg {
	ctx := context.Background()
	if err := m.store.Submit(ctx, m.nameInput.Value(), m.game.Score()); err != nil {
		return scoresMsg{err: err}
	}
	entries, err := m.store.Top(ctx, 10)
	return scoresMsg{err: err, entries: entries}
}

func (m *playModel) View() string {
	var b strings.Builder
	b.WriteString(titleStyle.Render("barrage"))
	b.WriteString(" ")
	b.WriteString(m.st.Name)
	b.WriteString("\n\n")

	switch m.state {
	case statePlaying:
		b.WriteString(m.canvas.Render())
		b.WriteString("\n")
		b.WriteString(statusStyle.Render(
			fmt.Sprintf("score %d   lives %d", m.game.Score(), m.game.Lives())))
		b.WriteString("\n")
		b.WriteString(helpStyle.Render("wasd/arrows move • k slow • j bomb • q quit"))

	case stateEnterName:
		b.WriteString(overStyle.Render("GAME OVER"))
		b.WriteString("\n\n")
		b.WriteString(scoreStyle.Render(fmt.Sprintf("final score: %d", m.game.Score())))
		b.WriteString("\n\n")
		b.WriteString(m.nameInput.View())
		b.WriteString("\n\n")
		b.WriteString(helpStyle.Render("enter save • ctrl+c quit"))

	case stateScores:
		b.WriteString("Hiscores\n\n")
		if m.err != nil {
			b.WriteString(overStyle.Render(fmt.Sprintf("Error: %v", m.err)))
		} else {
			for i, e := range m.entries {
				b.WriteString(scoreStyle.Render(
					fmt.Sprintf("%2d. %-20s %8d", i+1, e.Name, e.Score)))
				b.WriteString("\n")
			}
		}
		b.WriteString("\n")
		b.WriteString(helpStyle.Render("enter/q quit"))
	}

	return b.String()
}
