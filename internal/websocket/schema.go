package websocket

import "github.com/svuportal/portal-backend/internal/events"

// ─── Actions (Client → Server) ──────────────────────────────────────

type Action string

const (
	ActionPing Action = "ping"
)

// RequestEnvelope is used to peek at the action before full parsing.
type RequestEnvelope struct {
	Action Action `json:"action"`
}

// ─── Events (Server → Client) ───────────────────────────────────────

type Event string

const (
	EventSession Event = "session"
	EventError   Event = "error"
	EventPong    Event = "pong"
)

// SessionFrame pushes one session lifecycle event to the client. The
// SPA surfaces Message as a toast and uses Type to drive navigation.
type SessionFrame struct {
	Event   Event               `json:"event"`
	Session events.SessionEvent `json:"session"`
}

type ErrorFrame struct {
	Event Event  `json:"event"`
	Error string `json:"error"`
}

type PongFrame struct {
	Event Event `json:"event"`
}
