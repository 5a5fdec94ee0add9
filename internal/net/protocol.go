package net

import (
	"LocalPaint/internal/state"
)

// Client message types.
const (
	MsgPointerDown  = "pointer-down"
	MsgPointerMove  = "pointer-move"
	MsgPointerUp    = "pointer-up"
	MsgPointerLeave = "pointer-leave"
	MsgTool         = "tool"
	MsgColor        = "color"
	MsgHue          = "hue"
	MsgSticker      = "sticker"
	MsgUndo         = "undo"
	MsgRedo         = "redo"
	MsgClear        = "clear"
)

// Server message types. Frames travel as binary PNG messages.
const (
	MsgHello   = "hello"
	MsgHistory = "history"
	MsgTools   = "tools"
)

// ClientMessage is one input event from the browser.
type ClientMessage struct {
	Type      string  `json:"type"`
	X         float64 `json:"x"`
	Y         float64 `json:"y"`
	Name      string  `json:"name"`
	Thickness float64 `json:"thickness"`
	Glyph     string  `json:"glyph"`
	R         uint8   `json:"r"`
	G         uint8   `json:"g"`
	B         uint8   `json:"b"`
	Hue       float64 `json:"hue"`
}

// Hello is sent once a session is ready.
type Hello struct {
	Type    string            `json:"type"`
	Session string            `json:"session"`
	Width   int               `json:"width"`
	Height  int               `json:"height"`
	Tools   []state.Tool      `json:"tools"`
	Export  map[string]string `json:"export"`
}

// HistoryUpdate follows every frame caused by a history change.
type HistoryUpdate struct {
	Type string `json:"type"`
	state.Stats
}

// ToolsUpdate is sent when the tool list or selection changes.
type ToolsUpdate struct {
	Type     string       `json:"type"`
	Tools    []state.Tool `json:"tools"`
	Selected string       `json:"selected"`
}
