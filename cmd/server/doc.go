// Package main is the entry point for the RetroShell backend.
//
// RetroShell simulates a 1990s desktop: icons, windows, a taskbar with a
// start menu and clock, and a handful of built-in applications backed by an
// in-memory document store. The renderer sends intents over REST or the
// /stream WebSocket and draws the snapshots the server pushes back.
//
// Configuration:
//   - Environment variables (12-factor)
//   - CLI flags (override env vars)
//   - Defaults for development
//
// Usage:
//
//	# Production mode
//	./server -port 8000
//
//	# Development mode (colored logs, debug level)
//	./server -dev
//
//	# Custom icon layout
//	./server -layout desktop.toml
//
// Signals:
//   - SIGINT, SIGTERM: Graceful shutdown
package main
