// Package autopilot steers a snake without a player. It is used by the
// demo mode of the terminal driver and by the analyze command.
package autopilot

import (
	"context"

	"github.com/wricardo/termsnake/game/engine"
)

// ctxCheckInterval is how many ticks Play runs between context checks.
const ctxCheckInterval = 64

// Choose returns the heading a greedy player would pick for the next tick.
//
// Candidates are the headings allowed from the current one. A candidate is
// safe when the resulting move neither leaves the grid nor hits the body.
// Among safe candidates the one closest to the food wins, ties broken in the
// order of engine.Headings. With nothing safe the current heading is kept.
func Choose(live engine.Live) engine.Heading {
	current := live.Snake.Heading()
	food := live.Food.Position

	best := current
	bestDistance := -1

	for _, h := range engine.Headings {
		if !h.CanMoveFrom(current) {
			continue
		}
		moved, err := live.Snake.WithHeading(h).Move(live.Grid)
		if err != nil {
			continue
		}
		d := engine.ManhattanDistance(moved.Head(), food)
		if bestDistance < 0 || d < bestDistance {
			best = h
			bestDistance = d
		}
	}

	return best
}

// Play runs a game under Choose until it ends or maxTicks is reached.
// It reports whether the game ended before the limit. When ctx is done Play
// stops early and returns ctx's error.
func Play(ctx context.Context, e *engine.Engine, maxTicks int) (bool, error) {
	for i := 0; i < maxTicks; i++ {
		if i%ctxCheckInterval == 0 {
			if err := ctx.Err(); err != nil {
				return e.IsGameOver(), err
			}
		}
		live, ok := e.State().(engine.Live)
		if !ok {
			return true, nil
		}
		e.Steer(Choose(live))
		if res := e.Tick(); res.Ended {
			return true, nil
		}
	}
	return e.IsGameOver(), nil
}
