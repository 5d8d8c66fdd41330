// Package http exposes the shell over REST.
//
// Every mutating route builds a shell.Intent and goes through
// shell.Dispatch, so REST and the /stream WebSocket share one code path.
// A no-op still answers 200 with "applied": false; a rejected intent
// answers 400 with {"error": ...}.
package http
