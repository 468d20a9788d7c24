// Package terminal drives a game in the terminal with bubbletea.
//
// One tick message is scheduled per configured tick period. Key presses are
// queued and at most one queued heading is applied per tick, so two quick
// turns land on consecutive ticks instead of the second overriding the
// first.
package terminal

import (
	"context"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/pkg/errors"
	"go.uber.org/zap"

	"github.com/wricardo/termsnake/audio"
	"github.com/wricardo/termsnake/game/autopilot"
	"github.com/wricardo/termsnake/game/engine"
)

// MaxQueuedHeadings bounds the key presses buffered between ticks.
const MaxQueuedHeadings = 3

type tickMsg time.Time

// Options configures a Model.
type Options struct {
	// Autopilot steers the snake whenever no key press is queued.
	Autopilot bool
	Player    audio.Player
	Logger    *zap.Logger
}

// Model is the bubbletea model for one terminal game.
type Model struct {
	engine    *engine.Engine
	queue     []engine.Heading
	autopilot bool
	player    audio.Player
	logger    *zap.Logger

	width    int
	height   int
	games    int
	best     int
	quitting bool
}

// NewModel wraps e for the terminal.
func NewModel(e *engine.Engine, opts Options) Model {
	if opts.Player == nil {
		opts.Player = audio.Nop{}
	}
	if opts.Logger == nil {
		opts.Logger = zap.NewNop()
	}
	return Model{
		engine:    e,
		autopilot: opts.Autopilot,
		player:    opts.Player,
		logger:    opts.Logger,
		best:      e.Length(),
	}
}

// Games returns the number of finished games.
func (m Model) Games() int {
	return m.games
}

// Best returns the longest snake seen.
func (m Model) Best() int {
	return m.best
}

// Engine returns the wrapped engine.
func (m Model) Engine() *engine.Engine {
	return m.engine
}

func (m Model) Init() tea.Cmd {
	return m.tick()
}

func (m Model) tick() tea.Cmd {
	return tea.Tick(m.engine.Config().TickPeriod(), func(t time.Time) tea.Msg {
		return tickMsg(t)
	})
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(KeyIntent(msg))
	case tea.WindowSizeMsg:
		m.width, m.height = msg.Width, msg.Height
	case tickMsg:
		m = m.step()
		return m, m.tick()
	}
	return m, nil
}

func (m Model) handleKey(action KeyAction) (tea.Model, tea.Cmd) {
	switch action.Intent {
	case IntentQuit:
		m.quitting = true
		return m, tea.Quit
	case IntentRestart:
		if m.engine.IsGameOver() {
			m.engine.Reset()
			m.queue = nil
			m.logger.Info("game restarted", zap.Int("games", m.games))
		}
	case IntentSteer:
		if !m.engine.IsGameOver() && len(m.queue) < MaxQueuedHeadings {
			m.queue = append(m.queue, action.Heading)
		}
	}
	return m, nil
}

// step applies at most one intent and advances the game by one tick.
func (m Model) step() Model {
	live, ok := m.engine.State().(engine.Live)
	if !ok {
		return m
	}

	switch {
	case len(m.queue) > 0:
		m.engine.Steer(m.queue[0])
		m.queue = m.queue[1:]
	case m.autopilot:
		m.engine.Steer(autopilot.Choose(live))
	}

	res := m.engine.Tick()
	if m.engine.Length() > m.best {
		m.best = m.engine.Length()
	}

	if res.Ate {
		m.player.Eat()
		m.logger.Debug("food eaten", zap.Int("length", m.engine.Length()), zap.Int("tick", m.engine.Ticks()))
	}
	if res.Ended {
		m.games++
		m.queue = nil
		m.player.GameOver()
		m.logger.Info("game over",
			zap.String("cause", res.Cause.Code()),
			zap.Int("length", m.engine.Length()),
			zap.Int("ticks", m.engine.Ticks()),
			zap.Int("food", m.engine.FoodEaten()))
	}

	return m
}

// Run plays m on the alternate screen until the player quits or ctx is
// done. It returns the final model.
func Run(ctx context.Context, m Model) (Model, error) {
	p := tea.NewProgram(m, tea.WithAltScreen(), tea.WithContext(ctx))

	final, err := p.Run()
	if err != nil && !errors.Is(err, tea.ErrProgramKilled) && ctx.Err() == nil {
		return m, errors.Wrap(err, "terminal program failed")
	}

	if fm, ok := final.(Model); ok {
		return fm, nil
	}
	return m, nil
}
