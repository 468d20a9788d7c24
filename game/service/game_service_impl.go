package service

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/pkg/errors"
	"go.uber.org/zap"

	"github.com/wricardo/termsnake/game/engine"
)

// ErrInvalidTicks is returned when Advance is asked for a negative tick count.
var ErrInvalidTicks = errors.New("ticks must not be negative")

// gameServiceImpl implements the GameService interface
type gameServiceImpl struct {
	sessions SessionManager
	configs  ConfigManager
	logger   *zap.Logger
	mu       sync.RWMutex
}

// NewGameService creates a new game service instance. A nil logger discards
// all output.
func NewGameService(sessions SessionManager, configs ConfigManager, logger *zap.Logger) GameService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &gameServiceImpl{
		sessions: sessions,
		configs:  configs,
		logger:   logger,
	}
}

// getConfigID returns the config_id for a given config name, used for consistent API responses
func (s *gameServiceImpl) getConfigID(configName string) string {
	availableConfigs, err := s.configs.ListConfigs()
	if err == nil {
		for _, cfg := range availableConfigs {
			if cfg.Name == configName {
				return cfg.ConfigID
			}
		}
	}
	if configName == "" {
		return "default"
	}
	return configName
}

// CreateSession creates a new game session. An empty configName selects the
// default configuration; a zero seed selects a time-based one.
func (s *gameServiceImpl) CreateSession(ctx context.Context, configName string, seed int64) (*SessionInfo, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	var config *engine.GameConfig
	var err error
	if configName != "" {
		config, err = s.configs.LoadConfig(configName)
		if err != nil {
			if available := s.availableConfigIDs(); len(available) > 0 {
				return nil, errors.WithMessagef(err, "config '%s' unavailable (available configs: %s)",
					configName, strings.Join(available, ", "))
			}
			return nil, errors.WithMessagef(err, "failed to load config %s", configName)
		}
	} else {
		config = s.configs.GetDefault()
	}

	if seed == 0 {
		seed = time.Now().UnixNano()
	}

	session, err := s.sessions.Create("", config, seed)
	if err != nil {
		return nil, errors.WithMessage(err, "failed to create session")
	}

	configID := s.getConfigID(config.Name)

	s.logger.Info("session created",
		zap.String("session_id", session.ID),
		zap.String("config", configID),
		zap.Int64("seed", seed))

	return s.sessionInfo(session, configID), nil
}

// GetSession retrieves session information
func (s *gameServiceImpl) GetSession(ctx context.Context, sessionID string) (*SessionInfo, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	session, err := s.getSession(sessionID)
	if err != nil {
		return nil, err
	}

	return s.sessionInfo(session, s.getConfigID(session.Config.Name)), nil
}

// ListSessions returns all active sessions, oldest first
func (s *gameServiceImpl) ListSessions(ctx context.Context) ([]*SessionInfo, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	sessions := s.sessions.List()
	sort.Slice(sessions, func(i, j int) bool {
		return sessions[i].CreatedAt.Before(sessions[j].CreatedAt)
	})

	result := make([]*SessionInfo, 0, len(sessions))
	for _, sess := range sessions {
		result = append(result, s.sessionInfo(sess, s.getConfigID(sess.Config.Name)))
	}

	return result, nil
}

// DeleteSession removes a session
func (s *gameServiceImpl) DeleteSession(ctx context.Context, sessionID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.sessions.Delete(sessionID); err != nil {
		return errors.WithMessagef(err, "failed to delete session %s", sessionID)
	}
	s.logger.Info("session deleted", zap.String("session_id", sessionID))
	return nil
}

// Steer changes the heading of a session's snake without advancing time.
// Reversals are ignored, as is steering an ended game.
func (s *gameServiceImpl) Steer(ctx context.Context, sessionID, heading string) (*Snapshot, error) {
	h, err := engine.ParseHeading(heading)
	if err != nil {
		return nil, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	sess, err := s.getSession(sessionID)
	if err != nil {
		return nil, err
	}

	sess.Engine.Steer(h)
	return NewSnapshot(sess.Engine), nil
}

// Advance optionally steers, then runs up to ticks ticks. It stops early
// when the game ends. Advancing an ended game executes nothing. A context
// that is already done fails the call; one that is cancelled between ticks
// stops the loop and the ticks already run are reported as Interrupted.
func (s *gameServiceImpl) Advance(ctx context.Context, sessionID, heading string, ticks int) (*AdvanceResult, error) {
	if ticks < 0 {
		return nil, ErrInvalidTicks
	}
	if ticks == 0 {
		ticks = 1
	}

	var h engine.Heading
	steer := heading != ""
	if steer {
		var err error
		if h, err = engine.ParseHeading(heading); err != nil {
			return nil, err
		}
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	sess, err := s.getSession(sessionID)
	if err != nil {
		return nil, err
	}

	result := &AdvanceResult{
		RequestedTicks: ticks,
		Events:         make([]GameEvent, 0),
	}

	if ticks > MaxAdvanceTicks {
		result.Truncated = true
		result.Limit = MaxAdvanceTicks
		ticks = MaxAdvanceTicks
	}

	if err := ctx.Err(); err != nil {
		return nil, err
	}

	if steer {
		sess.Engine.Steer(h)
	}

	for i := 0; i < ticks; i++ {
		if ctx.Err() != nil {
			result.Interrupted = true
			break
		}
		if sess.Engine.IsGameOver() {
			break
		}

		res := sess.Engine.Tick()
		result.TicksExecuted++

		if res.Ate {
			result.FoodEaten++
			live := sess.Engine.State().(engine.Live)
			result.Events = append(result.Events, GameEvent{
				Type:      "eat",
				Message:   fmt.Sprintf("Food eaten, length %d", live.Snake.Len()),
				Tick:      sess.Engine.Ticks(),
				Timestamp: time.Now(),
				Position:  live.Snake.Head(),
			})
		}

		if res.Ended {
			result.Events = append(result.Events, GameEvent{
				Type:      "game_over",
				Message:   fmt.Sprintf("Game over: %s, final length %d", res.Cause, sess.Engine.Length()),
				Tick:      sess.Engine.Ticks(),
				Timestamp: time.Now(),
			})
			s.logger.Info("game over",
				zap.String("session_id", sess.ID),
				zap.String("cause", res.Cause.Code()),
				zap.Int("length", sess.Engine.Length()),
				zap.Int("ticks", sess.Engine.Ticks()))
			break
		}
	}

	result.GameOver = sess.Engine.IsGameOver()
	if result.GameOver {
		result.Cause = sess.Engine.Cause().Code()
	}
	result.State = NewSnapshot(sess.Engine)

	return result, nil
}

// Reset starts a new game in the session with the same configuration
func (s *gameServiceImpl) Reset(ctx context.Context, sessionID string) (*Snapshot, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	sess, err := s.getSession(sessionID)
	if err != nil {
		return nil, err
	}

	sess.Engine.Reset()
	s.logger.Debug("session reset", zap.String("session_id", sess.ID))
	return NewSnapshot(sess.Engine), nil
}

// GetGameState retrieves the current game state
func (s *gameServiceImpl) GetGameState(ctx context.Context, sessionID string) (*Snapshot, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	sess, err := s.getSession(sessionID)
	if err != nil {
		return nil, err
	}

	return NewSnapshot(sess.Engine), nil
}

// ListConfigs rereads the preset directory and returns the available game
// configurations.
func (s *gameServiceImpl) ListConfigs(ctx context.Context) ([]*ConfigInfo, error) {
	s.configs.RefreshCache()
	return s.configs.ListConfigs()
}

// LoadConfig loads a specific game configuration
func (s *gameServiceImpl) LoadConfig(ctx context.Context, configName string) (*engine.GameConfig, error) {
	return s.configs.LoadConfig(configName)
}

// getSession looks a session up and records the access.
func (s *gameServiceImpl) getSession(sessionID string) (*Session, error) {
	sess, err := s.sessions.Get(sessionID)
	if err != nil {
		return nil, errors.WithMessagef(err, "session %s", sessionID)
	}
	if err := s.sessions.UpdateLastAccessed(sessionID); err != nil {
		s.logger.Warn("failed to update last access", zap.String("session_id", sessionID), zap.Error(err))
	}
	return sess, nil
}

func (s *gameServiceImpl) sessionInfo(sess *Session, configID string) *SessionInfo {
	return &SessionInfo{
		ID:             sess.ID,
		ConfigName:     configID,
		Seed:           sess.Seed,
		CreatedAt:      sess.CreatedAt,
		LastAccessedAt: sess.LastAccessedAt,
		State:          NewSnapshot(sess.Engine),
		GameConfig:     sess.Config,
	}
}

func (s *gameServiceImpl) availableConfigIDs() []string {
	available, err := s.configs.ListConfigs()
	if err != nil {
		return nil
	}
	ids := make([]string, 0, len(available))
	for _, cfg := range available {
		ids = append(ids, cfg.ConfigID)
	}
	return ids
}
