// Package engine provides the core game logic for termsnake.
//
// The engine package implements the game mechanics including:
//   - Grid bounds and point arithmetic
//   - Snake movement, growth and heading changes
//   - Wall and self collision detection
//   - Food placement through an injectable random source
//   - The Live/Ended game state machine and its tick transition
//
// Core Types:
//
// Game is a closed sum type with two variants: Live, which carries the grid,
// the snake and the food, and Ended, which carries nothing and absorbs every
// further transition. Every value in this package is immutable; each tick
// produces a new Game and callers replace the one they hold.
//
// Engine wraps a Game together with its configuration and random source for
// drivers that prefer a stateful handle, and records why a game ended.
//
// Usage:
//
//	rng := engine.NewRandomSource(0)
//	game := engine.NewGame(engine.Grid{Width: 20, Height: 20}, 1, rng)
//
//	// once per tick
//	game = game.WithHeading(engine.Right)
//	game = game.Advance(rng)
//	if engine.IsEnded(game) {
//		// game over
//	}
//
// Game Rules:
//
// The grid is inclusive of its edge index: a point is in bounds when
// 0 <= x <= Width and 0 <= y <= Height. Y grows upwards. The snake dies when
// its next head leaves the grid or lands on any point of its current body.
// Eating food grows the snake by one and respawns the food at a random point,
// which may be covered by the snake.
package engine
