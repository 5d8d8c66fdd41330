// Package types holds the wire shapes shared by the HTTP and WebSocket
// layers: request bodies and the stream message envelopes.
//
// Stream protocol (JSON text frames on /stream):
//
//	server -> client  {"type":"snapshot","snapshot":{...}}
//	server -> client  {"type":"clock","time":"14:08"}
//	server -> client  {"type":"result","id":"...","result":{"applied":true}}
//	server -> client  {"type":"error","id":"...","message":"..."}
//	client -> server  {"type":"intent","id":"...","intent":{"type":"open","kind":"notepad"}}
//	client -> server  {"type":"ping"}                 answered by "pong"
package types
