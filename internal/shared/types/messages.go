package types

import "encoding/json"

// MessageType tags a stream frame.
type MessageType string

const (
	MsgSnapshot MessageType = "snapshot"
	MsgClock    MessageType = "clock"
	MsgResult   MessageType = "result"
	MsgError    MessageType = "error"
	MsgWelcome  MessageType = "welcome"
	MsgIntent   MessageType = "intent"
	MsgPing     MessageType = "ping"
	MsgPong     MessageType = "pong"

	// Window drags. Moves are answered with a MsgDrag preview to the
	// dragging client only; the end commits and publishes one snapshot.
	MsgDragStart  MessageType = "drag_start"
	MsgDragMove   MessageType = "drag_move"
	MsgDragEnd    MessageType = "drag_end"
	MsgDragCancel MessageType = "drag_cancel"
	MsgDrag       MessageType = "drag"
)

// ServerMessage is a frame sent to the renderer. Only the fields relevant
// to Type are set.
type ServerMessage struct {
	Type      MessageType `json:"type"`
	ID        string      `json:"id,omitempty"`
	ClientID  string      `json:"client_id,omitempty"`
	Snapshot  any         `json:"snapshot,omitempty"`
	Time      string      `json:"time,omitempty"`
	Result    any         `json:"result,omitempty"`
	Preview   any         `json:"preview,omitempty"`
	Message   string      `json:"message,omitempty"`
	Timestamp int64       `json:"timestamp"`
}

// ClientMessage is a frame received from the renderer. ID is echoed back on
// the matching result or error. Kind, DX and DY carry drag messages.
type ClientMessage struct {
	Type   MessageType     `json:"type"`
	ID     string          `json:"id,omitempty"`
	Intent json.RawMessage `json:"intent,omitempty"`
	Kind   string          `json:"kind,omitempty"`
	DX     int             `json:"dx,omitempty"`
	DY     int             `json:"dy,omitempty"`
}
