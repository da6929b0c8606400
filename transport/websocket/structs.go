package websocket

import (
	"encoding/json"

	"github.com/rocketscienceinc/tictactoe-board/internal/entity"
)

const (
	actionGameNew     = "game:new"
	actionGameConnect = "game:connect"
	actionCellClick   = "cell:click"
	actionHistoryJump = "history:jump"
	actionHistorySort = "history:sort"
	actionError       = "error"
)

// Message represents a WebSocket message with an action type and a payload.
type Message struct {
	Action  string          `json:"action"`
	Payload json.RawMessage `json:"payload,omitempty"`
}

type RequestPayload struct {
	ID   string `json:"id,omitempty"`
	Cell *int   `json:"cell,omitempty"`
	Move *int   `json:"move,omitempty"`
}

type ResponsePayload struct {
	ID    string                `json:"id,omitempty"`
	State *entity.RenderedState `json:"state,omitempty"`
	Error string                `json:"error,omitempty"`
}
