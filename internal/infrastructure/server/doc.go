// Package server assembles the RetroShell process: logger, metrics, the
// shell session, the gin router with its middleware chain, the REST API,
// the /stream WebSocket and /metrics.
package server
