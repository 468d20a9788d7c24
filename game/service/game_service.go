package service

import (
	"context"
	"time"

	"github.com/wricardo/termsnake/game/engine"
)

// MaxAdvanceTicks caps the ticks a single Advance call may run.
const MaxAdvanceTicks = 500

// GameService defines all game-related operations
type GameService interface {
	// Session Management
	CreateSession(ctx context.Context, configName string, seed int64) (*SessionInfo, error)
	GetSession(ctx context.Context, sessionID string) (*SessionInfo, error)
	ListSessions(ctx context.Context) ([]*SessionInfo, error)
	DeleteSession(ctx context.Context, sessionID string) error

	// Game Operations
	Steer(ctx context.Context, sessionID, heading string) (*Snapshot, error)
	Advance(ctx context.Context, sessionID, heading string, ticks int) (*AdvanceResult, error)
	Reset(ctx context.Context, sessionID string) (*Snapshot, error)

	// Game State
	GetGameState(ctx context.Context, sessionID string) (*Snapshot, error)

	// Configuration
	ListConfigs(ctx context.Context) ([]*ConfigInfo, error)
	LoadConfig(ctx context.Context, configName string) (*engine.GameConfig, error)
}

// SessionManager defines session storage operations
type SessionManager interface {
	Create(id string, config *engine.GameConfig, seed int64) (*Session, error)
	Get(id string) (*Session, error)
	List() []*Session
	Delete(id string) error
	UpdateLastAccessed(id string) error
}

// ConfigManager handles game configuration loading
type ConfigManager interface {
	LoadConfig(name string) (*engine.GameConfig, error)
	ListConfigs() ([]*ConfigInfo, error)
	GetDefault() *engine.GameConfig
	RefreshCache()
}

// Session represents an active game session
type Session struct {
	ID             string
	Engine         *engine.Engine
	Config         *engine.GameConfig
	Seed           int64
	CreatedAt      time.Time
	LastAccessedAt time.Time
}
