package entity

type Session struct {
	ID    string    `json:"id"`
	State GameState `json:"state"`
}

func NewSession(id string) *Session {
	return &Session{
		ID:    id,
		State: NewGameState(),
	}
}
