package engine

// Snake is an immutable body, head first, plus the heading it moves along.
// Every method returns a new value; the backing slice is never written after
// construction, so values may share it.
type Snake struct {
	points  []Point
	heading Heading
}

// NewSnake returns a snake of length points stacked on start, heading Still.
// Lengths below one are raised to one.
func NewSnake(start Point, length int) Snake {
	if length < 1 {
		length = 1
	}
	points := make([]Point, length)
	for i := range points {
		points[i] = start
	}
	return Snake{points: points, heading: Still}
}

// Head returns the first point of the body.
func (s Snake) Head() Point {
	return s.points[0]
}

// Tail returns the last point of the body.
func (s Snake) Tail() Point {
	return s.points[len(s.points)-1]
}

// Heading returns the current heading.
func (s Snake) Heading() Heading {
	return s.heading
}

// Len returns the number of body points, duplicates included.
func (s Snake) Len() int {
	return len(s.points)
}

// Points returns a copy of the body, head first.
func (s Snake) Points() []Point {
	out := make([]Point, len(s.points))
	copy(out, s.points)
	return out
}

// Contains reports whether p is any point of the body.
func (s Snake) Contains(p Point) bool {
	for _, bp := range s.points {
		if bp == p {
			return true
		}
	}
	return false
}

// WithHeading returns the snake steering towards requested, unless requested
// is the direct reverse of the current heading.
func (s Snake) WithHeading(requested Heading) Snake {
	if !requested.CanMoveFrom(s.heading) {
		return s
	}
	return Snake{points: s.points, heading: requested}
}

// Grow returns the snake with its head duplicated, which keeps the tail in
// place for one extra move.
func (s Snake) Grow() Snake {
	points := make([]Point, len(s.points)+1)
	points[0] = s.points[0]
	copy(points[1:], s.points)
	return Snake{points: points, heading: s.heading}
}

// equal reports whether both snakes have the same body and heading.
func (s Snake) equal(other Snake) bool {
	if s.heading != other.heading || len(s.points) != len(other.points) {
		return false
	}
	for i := range s.points {
		if s.points[i] != other.points[i] {
			return false
		}
	}
	return true
}
