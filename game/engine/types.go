package engine

import (
	"fmt"
	"strings"

	"github.com/pkg/errors"
)

const (
	// Validation constants
	MinGridSize      = 1
	MaxGridSize      = 200
	MinInitialLength = 1
	MaxInitialLength = 5
	MinTickMillis    = 10
	MaxTickMillis    = 2000
)

var ErrInvalidHeading = errors.New("invalid heading")

// Point is a grid coordinate. Y grows upwards, (0,0) is the bottom-left cell.
type Point struct {
	X int `json:"x" yaml:"x"`
	Y int `json:"y" yaml:"y"`
}

// Step returns the point one unit away from p in direction h.
func (p Point) Step(h Heading) Point {
	switch h {
	case Up:
		return Point{X: p.X, Y: p.Y + 1}
	case Down:
		return Point{X: p.X, Y: p.Y - 1}
	case Right:
		return Point{X: p.X + 1, Y: p.Y}
	case Left:
		return Point{X: p.X - 1, Y: p.Y}
	default:
		return p
	}
}

func (p Point) String() string {
	return fmt.Sprintf("(%d,%d)", p.X, p.Y)
}

// Grid is the bounds of the playing field. Both edges are inclusive, so a
// grid addresses (Width+1) x (Height+1) cells.
type Grid struct {
	Width  int `json:"width"`
	Height int `json:"height"`
}

// InBounds reports whether p lies on the grid.
func (g Grid) InBounds(p Point) bool {
	return p.X >= 0 && p.X <= g.Width && p.Y >= 0 && p.Y <= g.Height
}

// Cells returns the number of addressable cells.
func (g Grid) Cells() int {
	return (g.Width + 1) * (g.Height + 1)
}

// Heading is the direction the snake is committed to moving.
type Heading uint8

const (
	Still Heading = iota
	Up
	Right
	Down
	Left
)

// Headings lists the four moving headings in a stable order.
var Headings = []Heading{Up, Right, Down, Left}

func (h Heading) String() string {
	switch h {
	case Still:
		return "still"
	case Up:
		return "up"
	case Right:
		return "right"
	case Down:
		return "down"
	case Left:
		return "left"
	default:
		return "unknown"
	}
}

// Opposite returns the reverse heading. Still is its own opposite.
func (h Heading) Opposite() Heading {
	switch h {
	case Up:
		return Down
	case Down:
		return Up
	case Right:
		return Left
	case Left:
		return Right
	default:
		return h
	}
}

// CanMoveFrom reports whether h may replace current in a single tick.
// A heading never replaces its direct opposite; Still is always allowed.
func (h Heading) CanMoveFrom(current Heading) bool {
	switch h {
	case Still:
		return true
	case Left:
		return current != Right
	case Right:
		return current != Left
	case Up:
		return current != Down
	case Down:
		return current != Up
	default:
		return false
	}
}

// MarshalText encodes the heading by name.
func (h Heading) MarshalText() ([]byte, error) {
	return []byte(h.String()), nil
}

// UnmarshalText decodes a heading name accepted by ParseHeading.
func (h *Heading) UnmarshalText(text []byte) error {
	parsed, err := ParseHeading(string(text))
	if err != nil {
		return err
	}
	*h = parsed
	return nil
}

// ParseHeading converts a user supplied direction into a Heading.
func ParseHeading(s string) (Heading, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "still", "stop", "s":
		return Still, nil
	case "up", "u", "north":
		return Up, nil
	case "right", "r", "east":
		return Right, nil
	case "down", "d", "south":
		return Down, nil
	case "left", "l", "west":
		return Left, nil
	default:
		return Still, errors.WithMessagef(ErrInvalidHeading, "%q", s)
	}
}

// Food is the single piece of food on the grid.
type Food struct {
	Position Point `json:"position"`
}

// PlaceFood puts food on a uniformly random in-bounds point. The point may be
// covered by the snake.
func PlaceFood(grid Grid, rng RandomSource) Food {
	return Food{Position: RandomPoint(grid, rng)}
}

// EndCause records why a game ended.
type EndCause int

const (
	CauseNone EndCause = iota
	CauseOutOfBounds
	CauseSelfCollision
)

// Code is the machine friendly name of the cause.
func (c EndCause) Code() string {
	switch c {
	case CauseOutOfBounds:
		return "out_of_bounds"
	case CauseSelfCollision:
		return "self_collision"
	default:
		return "none"
	}
}

func (c EndCause) String() string {
	switch c {
	case CauseOutOfBounds:
		return ErrOutOfBounds.Error()
	case CauseSelfCollision:
		return ErrSelfCollision.Error()
	default:
		return "none"
	}
}

// MarshalText encodes the cause by its code.
func (c EndCause) MarshalText() ([]byte, error) {
	return []byte(c.Code()), nil
}

// CauseOf maps a movement error to its EndCause.
func CauseOf(err error) EndCause {
	switch {
	case err == nil:
		return CauseNone
	case errors.Is(err, ErrOutOfBounds):
		return CauseOutOfBounds
	case errors.Is(err, ErrSelfCollision):
		return CauseSelfCollision
	default:
		return CauseNone
	}
}
