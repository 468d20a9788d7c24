// Package session provides session management for termsnake.
//
// The session package implements:
//   - Thread-safe session storage and retrieval
//   - Unique session ID generation
//   - Session cleanup and expiration
//
// Core Types:
//
// Manager is the main session manager that handles all session operations.
// Each service.Session owns its own engine.Engine and the seed its random
// source was created with.
//
// Session Identifiers:
//
// Generated IDs are the first eight characters of a random UUID. Lookups are
// case-insensitive, so "3F2A91C0" and "3f2a91c0" name the same session.
//
// Concurrency:
//
// The manager guards its registry with a read/write mutex. It does not guard
// the engines it hands out; the service layer serialises engine access.
//
// Usage:
//
//	manager := session.NewManager(logger)
//
//	sess, err := manager.Create("", config, seed)
//	if err != nil {
//		log.Fatal(err)
//	}
//
//	sess, err = manager.Get(sess.ID)
//
// Sessions live in memory only. CleanupExpiredSessions drops the ones that
// have not been accessed for a given duration.
package session
