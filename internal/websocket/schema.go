package websocket

import "github.com/stemsi/gamesurvey-backend/internal/model"

// ─── Actions (Client → Server) ──────────────────────────────────────

type Action string

const (
	ActionPing Action = "ping"
)

// RequestEnvelope is the only message shape a feed client sends.
type RequestEnvelope struct {
	Action Action `json:"action"`
}

// ─── Events (Server → Client) ───────────────────────────────────────

type Event string

const (
	EventReady  Event = "ready"
	EventResult Event = "result"
	EventError  Event = "error"
	EventPong   Event = "pong"
)

// ReadyEvent is sent once the feed subscription is live.
type ReadyEvent struct {
	Event Event `json:"event"`
}

// ResultEvent carries one newly persisted survey result.
type ResultEvent struct {
	Event  Event        `json:"event"`
	Result model.Result `json:"result"`
}

type ErrorResponse struct {
	Event Event  `json:"event"`
	Error string `json:"error"`
}

type PongResponse struct {
	Event Event `json:"event"`
}
