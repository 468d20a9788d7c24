// Package mcp provides a Model Context Protocol server for termsnake.
//
// The mcp package implements:
//   - MCP server for AI agent integration
//   - Tool definitions for game operations
//   - Session-aware command execution over stdio
//
// MCP Tools:
//
// The package exposes the following tools for AI agents:
//   - create_session: Create new game session with config selection and seed
//   - list_sessions: List all active sessions
//   - get_session: Get specific session details
//   - delete_session: Remove a session
//   - game_state: Get current game state with board visualization
//   - steer: Change heading without advancing time
//   - advance: Optionally steer, then run a number of ticks
//   - reset_game: Start a fresh game in the session
//   - list_configs: List available game configurations
//   - game_instructions: Get the rules
//
// Tools answer with a human readable summary followed by the same data as
// JSON. Invalid input, unknown sessions and unknown configs are reported as
// tool errors rather than protocol errors.
//
// Usage:
//
//	srv := mcp.NewServer(gameService, "termsnake", version, logger)
//	if err := srv.ServeStdio(); err != nil {
//		log.Fatal(err)
//	}
//
// Games are turn based under MCP: time only passes when advance is called.
package mcp
