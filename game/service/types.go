package service

import (
	"time"

	"github.com/wricardo/termsnake/game/engine"
)

// Game status values reported in snapshots
const (
	StatusLive  = "live"
	StatusEnded = "ended"
)

// SessionInfo provides information about a game session
type SessionInfo struct {
	ID             string             `json:"id"`
	ConfigName     string             `json:"config_name"`
	Seed           int64              `json:"seed"`
	CreatedAt      time.Time          `json:"created_at"`
	LastAccessedAt time.Time          `json:"last_accessed_at"`
	State          *Snapshot          `json:"state"`
	GameConfig     *engine.GameConfig `json:"game_config"`
}

// Snapshot is a serialisable view of a session's game.
type Snapshot struct {
	Status    string         `json:"status"`
	Grid      engine.Grid    `json:"grid"`
	Snake     []engine.Point `json:"snake,omitempty"`
	Heading   engine.Heading `json:"heading"`
	Food      *engine.Point  `json:"food,omitempty"`
	Length    int            `json:"length"`
	Ticks     int            `json:"ticks"`
	FoodEaten int            `json:"food_eaten"`
	Cause     string         `json:"cause,omitempty"`
	Board     []string       `json:"board"`
}

// AdvanceResult contains the result of an Advance call
type AdvanceResult struct {
	RequestedTicks int         `json:"requested_ticks"`
	TicksExecuted  int         `json:"ticks_executed"`
	FoodEaten      int         `json:"food_eaten"`
	GameOver       bool        `json:"game_over"`
	Cause          string      `json:"cause,omitempty"`
	Truncated      bool        `json:"truncated,omitempty"`
	Limit          int         `json:"limit,omitempty"`
	Interrupted    bool        `json:"interrupted,omitempty"`
	Events         []GameEvent `json:"events"`
	State          *Snapshot   `json:"state"`
}

// GameEvent represents an event that occurred during gameplay
type GameEvent struct {
	Type      string       `json:"type"` // "eat" or "game_over"
	Message   string       `json:"message"`
	Tick      int          `json:"tick"`
	Timestamp time.Time    `json:"timestamp"`
	Position  engine.Point `json:"position"`
}

// ConfigInfo provides information about a game configuration
type ConfigInfo struct {
	Filename      string `json:"filename"`
	ConfigID      string `json:"config_id"` // The identifier to use for session creation
	Name          string `json:"name"`      // Display name
	Description   string `json:"description"`
	Width         int    `json:"width"`
	Height        int    `json:"height"`
	InitialLength int    `json:"initial_length"`
	TickMillis    int    `json:"tick_ms"`
}

// NewSnapshot captures the current state of e.
func NewSnapshot(e *engine.Engine) *Snapshot {
	snap := &Snapshot{
		Grid:      e.Grid(),
		Length:    e.Length(),
		Ticks:     e.Ticks(),
		FoodEaten: e.FoodEaten(),
		Board:     engine.Board(e.State()),
	}

	live, ok := e.State().(engine.Live)
	if !ok {
		snap.Status = StatusEnded
		snap.Cause = e.Cause().Code()
		return snap
	}

	food := live.Food.Position
	snap.Status = StatusLive
	snap.Snake = live.Snake.Points()
	snap.Heading = live.Snake.Heading()
	snap.Food = &food
	return snap
}
