package engine

// TickResult summarises what happened during one Engine tick.
type TickResult struct {
	Ate   bool
	Ended bool
	Cause EndCause
}

// Engine holds a Game together with its configuration and random source. It
// is a convenience for drivers; it is not safe for concurrent use.
type Engine struct {
	config *GameConfig
	rng    RandomSource
	game   Game

	ticks  int
	eaten  int
	length int
	cause  EndCause
}

// NewEngine creates a new game engine with the provided configuration. A nil
// rng is replaced by a time-seeded source.
func NewEngine(config *GameConfig, rng RandomSource) (*Engine, error) {
	if err := ValidateGameConfig(config); err != nil {
		return nil, err
	}
	if rng == nil {
		rng = NewRandomSource(0)
	}

	e := &Engine{
		config: config,
		rng:    rng,
	}
	e.Reset()

	return e, nil
}

// State returns the current game.
func (e *Engine) State() Game {
	return e.game
}

// Config returns the engine configuration.
func (e *Engine) Config() *GameConfig {
	return e.config
}

// Grid returns the bounds of the current configuration.
func (e *Engine) Grid() Grid {
	return e.config.Grid()
}

// Reset starts a new game from the configuration.
func (e *Engine) Reset() Game {
	e.game = NewGame(e.config.Grid(), e.config.InitialLength, e.rng)
	e.ticks = 0
	e.eaten = 0
	e.length = Length(e.game)
	e.cause = CauseNone
	return e.game
}

// Steer applies a heading change to the live snake.
func (e *Engine) Steer(h Heading) {
	e.game = e.game.WithHeading(h)
}

// Tick advances the game by one tick. Ticking an ended game changes nothing.
func (e *Engine) Tick() TickResult {
	live, ok := e.game.(Live)
	if !ok {
		return TickResult{Ended: true, Cause: e.cause}
	}

	e.ticks++
	next, ate, err := live.Step(e.rng)
	if err != nil {
		e.cause = CauseOf(err)
		e.game = Ended{}
		return TickResult{Ended: true, Cause: e.cause}
	}

	if ate {
		e.eaten++
	}
	e.game = next
	e.length = next.Snake.Len()

	return TickResult{Ate: ate}
}

// IsGameOver returns whether the game has ended.
func (e *Engine) IsGameOver() bool {
	return IsEnded(e.game)
}

// Length returns the snake length, or the final length once the game ended.
func (e *Engine) Length() int {
	return e.length
}

// Ticks returns the number of ticks since the last reset.
func (e *Engine) Ticks() int {
	return e.ticks
}

// FoodEaten returns the food eaten since the last reset.
func (e *Engine) FoodEaten() int {
	return e.eaten
}

// Cause returns why the game ended, or CauseNone while it is live.
func (e *Engine) Cause() EndCause {
	return e.cause
}
