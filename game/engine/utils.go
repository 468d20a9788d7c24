package engine

import "bytes"

// Board glyphs
const (
	GlyphEmpty = '.'
	GlyphHead  = 'H'
	GlyphBody  = 'o'
	GlyphFood  = '*'
)

// GameOverBanner is the single row Board returns for an ended game.
const GameOverBanner = "GAME OVER"

// ManhattanDistance calculates the Manhattan distance between two points
func ManhattanDistance(from, to Point) int {
	dx := from.X - to.X
	if dx < 0 {
		dx = -dx
	}
	dy := from.Y - to.Y
	if dy < 0 {
		dy = -dy
	}
	return dx + dy
}

// Board draws g as text rows, top row first (highest Y). The snake is drawn
// over the food.
func Board(g Game) []string {
	live, ok := g.(Live)
	if !ok {
		return []string{GameOverBanner}
	}

	grid := live.Grid
	rows := make([][]byte, grid.Height+1)
	for i := range rows {
		rows[i] = bytes.Repeat([]byte{GlyphEmpty}, grid.Width+1)
	}

	set := func(p Point, glyph byte) {
		if grid.InBounds(p) {
			rows[grid.Height-p.Y][p.X] = glyph
		}
	}

	set(live.Food.Position, GlyphFood)
	for i := len(live.Snake.points) - 1; i > 0; i-- {
		set(live.Snake.points[i], GlyphBody)
	}
	set(live.Snake.Head(), GlyphHead)

	out := make([]string, len(rows))
	for i, row := range rows {
		out[i] = string(row)
	}
	return out
}
