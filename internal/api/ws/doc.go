// Package ws serves the /stream WebSocket. Each connection subscribes to
// the shell's change feed, receives a snapshot on connect and after every
// applied intent, receives clock frames when the displayed minute changes,
// and may send intents of its own.
//
// Per connection there is one reader goroutine and one writer goroutine;
// only the writer touches the socket for writes.
package ws
