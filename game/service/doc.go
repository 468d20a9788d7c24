// Package service provides the business logic layer for termsnake.
//
// The service package implements:
//   - Multi-session game management
//   - Configuration lookup through a ConfigManager
//   - Steering and tick advancement per session
//   - Serialisable snapshots of a session's game
//
// Core Interfaces:
//
// GameService is the main service interface providing high-level game operations.
// SessionManager handles session creation, retrieval, and lifecycle.
// ConfigManager manages game configuration loading and validation.
//
// Architecture:
//
// The service layer sits between the MCP transport and the game engine. Each
// session owns an independent engine.Engine seeded with its own random
// source, so a session can be replayed from its configuration and seed. All
// engine access goes through the service mutex; engines themselves are not
// safe for concurrent use.
//
// Usage:
//
//	sessionMgr := session.NewManager(logger)
//	configMgr, _ := config.NewManager("configs")
//	gameService := service.NewGameService(sessionMgr, configMgr, logger)
//
//	info, err := gameService.CreateSession(ctx, "classic", 0)
//	if err != nil {
//		log.Fatal(err)
//	}
//
//	result, err := gameService.Advance(ctx, info.ID, "right", 10)
//
// Advance runs at most MaxAdvanceTicks ticks per call and stops as soon as
// the game ends. Advancing an ended game is not an error; it executes no
// ticks.
package service
