package engine

// Game is the externally visible state machine. It is either Live or Ended;
// no other implementations exist.
type Game interface {
	// Advance returns the state one tick later. rng is consulted only when
	// food has to be placed.
	Advance(rng RandomSource) Game

	// WithHeading steers the snake of a live game. Ended ignores input.
	WithHeading(h Heading) Game

	isGame()
}

// Live is a game in progress.
type Live struct {
	Grid  Grid
	Snake Snake
	Food  Food
}

// Ended is the absorbing terminal state.
type Ended struct{}

func (Live) isGame()  {}
func (Ended) isGame() {}

// NewGame starts a live game with the snake on a random in-bounds point and
// freshly placed food.
func NewGame(grid Grid, initialLength int, rng RandomSource) Game {
	start := RandomPoint(grid, rng)
	return Live{
		Grid:  grid,
		Snake: NewSnake(start, initialLength),
		Food:  PlaceFood(grid, rng),
	}
}

// Advance moves the snake; any collision ends the game.
func (l Live) Advance(rng RandomSource) Game {
	next, _, err := l.Step(rng)
	if err != nil {
		return Ended{}
	}
	return next
}

// WithHeading applies a heading change to the snake.
func (l Live) WithHeading(h Heading) Game {
	l.Snake = l.Snake.WithHeading(h)
	return l
}

func (l Live) equal(other Live) bool {
	return l.Grid == other.Grid && l.Food == other.Food && l.Snake.equal(other.Snake)
}

func (Ended) Advance(RandomSource) Game { return Ended{} }

func (Ended) WithHeading(Heading) Game { return Ended{} }

// IsEnded reports whether g is the terminal state.
func IsEnded(g Game) bool {
	switch g.(type) {
	case Live:
		return false
	default:
		return true
	}
}

// Length is the snake's length, the only score the game keeps. Ended has no
// snake and reports zero.
func Length(g Game) int {
	switch g := g.(type) {
	case Live:
		return g.Snake.Len()
	default:
		return 0
	}
}
