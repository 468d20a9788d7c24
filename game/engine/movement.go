package engine

import "github.com/pkg/errors"

var (
	ErrOutOfBounds   = errors.New("snake left the grid")
	ErrSelfCollision = errors.New("snake collided with itself")
)

// Move shifts the snake one cell along its heading within grid.
//
// A Still snake is returned unchanged. Otherwise the next head is checked
// against the inclusive grid bounds (a step below zero is out of bounds) and
// then against every point of the current body, tail included. On success
// the next head is pushed to the front and the last point dropped.
func (s Snake) Move(grid Grid) (Snake, error) {
	if s.heading == Still {
		return s, nil
	}

	next := s.Head().Step(s.heading)
	if !grid.InBounds(next) {
		return s, ErrOutOfBounds
	}
	if s.Contains(next) {
		return s, ErrSelfCollision
	}

	points := make([]Point, len(s.points))
	points[0] = next
	copy(points[1:], s.points[:len(s.points)-1])

	return Snake{points: points, heading: s.heading}, nil
}

// Step advances a live game by one tick and reports whether food was eaten.
// A collision is returned as ErrOutOfBounds or ErrSelfCollision together with
// the unchanged state.
func (l Live) Step(rng RandomSource) (Live, bool, error) {
	moved, err := l.Snake.Move(l.Grid)
	if err != nil {
		return l, false, err
	}

	next := Live{Grid: l.Grid, Snake: moved, Food: l.Food}
	if moved.Head() != l.Food.Position {
		return next, false, nil
	}

	next.Snake = moved.Grow()
	next.Food = PlaceFood(l.Grid, rng)
	return next, true, nil
}
