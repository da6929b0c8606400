package entity

// RenderedState - everything a view needs to draw the board, recomputed after every transition.
type RenderedState struct {
	Cells         [BoardSize]string `json:"cells"`
	Status        string            `json:"status"`
	WinningLine   []int             `json:"winning_line"`
	MoveLabels    []string          `json:"move_labels"`
	MoveOrder     []int             `json:"move_order"`
	SortLabel     string            `json:"sort_label"`
	NextPlayer    string            `json:"next_player"`
	SortAscending bool              `json:"sort_ascending"`
}

func Render(state GameState) RenderedState {
	var cells [BoardSize]string
	for i, cell := range state.Board {
		cells[i] = string(cell)
	}

	return RenderedState{
		Cells:         cells,
		Status:        state.Status(),
		WinningLine:   GetWinningLine(state.Board),
		MoveLabels:    state.MoveLabels(),
		MoveOrder:     state.MoveOrder(),
		SortLabel:     state.SortLabel(),
		NextPlayer:    string(state.NextPlayer),
		SortAscending: state.SortAscending,
	}
}
