package entity

import (
	"fmt"

	"github.com/rocketscienceinc/tictactoe-board/internal/apperror"
)

type Mark string

const (
	PlayerX Mark = "X"
	PlayerO Mark = "O"

	EmptyCell Mark = ""
)

const (
	BoardSize = 9

	// gameStartPosition marks the history entry that holds the empty board.
	gameStartPosition = -1
)

// WinCombos - rows top-to-bottom, columns left-to-right, then both diagonals.
// The order decides which line is reported when more than one is complete.
var WinCombos = [8][3]int{
	{0, 1, 2},
	{3, 4, 5},
	{6, 7, 8},
	{0, 3, 6},
	{1, 4, 7},
	{2, 5, 8},
	{0, 4, 8},
	{2, 4, 6},
}

type Board [BoardSize]Mark

type Move struct {
	Board    Board `json:"board"`
	Position int   `json:"position"`
}

type GameState struct {
	Board         Board  `json:"board"`
	NextPlayer    Mark   `json:"next_player"`
	History       []Move `json:"history"`
	SortAscending bool   `json:"sort_ascending"`
}

// NewGameState - returns the state of a fresh game. History starts with the game-start entry.
func NewGameState() GameState {
	return GameState{
		NextPlayer:    PlayerX,
		History:       []Move{{Position: gameStartPosition}},
		SortAscending: true,
	}
}

// ApplyMove - places the next player's mark on the cell.
// Moves on a decided board, an occupied cell or a cell outside the board are ignored.
func ApplyMove(state GameState, cell int) GameState {
	if cell < 0 || cell >= BoardSize {
		return state
	}

	if CalculateWinner(state.Board) != EmptyCell || state.Board[cell] != EmptyCell {
		return state
	}

	next := state.clone()
	next.Board[cell] = state.NextPlayer
	next.History = append(next.History, Move{Board: next.Board, Position: cell})
	next.NextPlayer = toggleMark(state.NextPlayer)

	return next
}

// JumpTo - shows the board recorded at moveIndex. History and turn are left as they are.
func JumpTo(state GameState, moveIndex int) (GameState, error) {
	if err := state.checkMoveIndex(moveIndex); err != nil {
		return state, err
	}

	next := state.clone()
	next.Board = state.History[moveIndex].Board

	return next, nil
}

// BranchTo - rewinds the game to moveIndex: later moves are dropped and the turn follows the move parity.
func BranchTo(state GameState, moveIndex int) (GameState, error) {
	if err := state.checkMoveIndex(moveIndex); err != nil {
		return state, err
	}

	next := state.clone()
	next.History = next.History[:moveIndex+1]
	next.Board = next.History[moveIndex].Board

	if moveIndex%2 == 0 {
		next.NextPlayer = PlayerX
	} else {
		next.NextPlayer = PlayerO
	}

	return next, nil
}

func ToggleSort(state GameState) GameState {
	next := state.clone()
	next.SortAscending = !state.SortAscending

	return next
}

// CalculateWinner - returns the mark of the first complete line, or EmptyCell.
func CalculateWinner(board Board) Mark {
	combo, ok := findWinningCombo(board)
	if !ok {
		return EmptyCell
	}

	return board[combo[0]]
}

// GetWinningLine - returns the cells of the first complete line, or an empty slice.
func GetWinningLine(board Board) []int {
	combo, ok := findWinningCombo(board)
	if !ok {
		return []int{}
	}

	return []int{combo[0], combo[1], combo[2]}
}

func findWinningCombo(board Board) ([3]int, bool) {
	for _, combo := range WinCombos {
		a, b, c := board[combo[0]], board[combo[1]], board[combo[2]]
		if a != EmptyCell && a == b && b == c {
			return combo, true
		}
	}

	return [3]int{}, false
}

func (that Board) IsFull() bool {
	for _, cell := range that {
		if cell == EmptyCell {
			return false
		}
	}

	return true
}

// IsDraw - the board is full and nobody has a line.
func (that GameState) IsDraw() bool {
	return CalculateWinner(that.Board) == EmptyCell && that.Board.IsFull()
}

func (that GameState) Status() string {
	if winner := CalculateWinner(that.Board); winner != EmptyCell {
		return "Winner: " + string(winner)
	}

	if that.Board.IsFull() {
		return "Draw"
	}

	return "Next player: " + string(that.NextPlayer)
}

// MoveCount - number of moves played, the game-start entry excluded.
func (that GameState) MoveCount() int {
	if len(that.History) == 0 {
		return 0
	}

	return len(that.History) - 1
}

// MoveOrder - history indexes in the order the move list is displayed.
func (that GameState) MoveOrder() []int {
	order := make([]int, len(that.History))
	for i := range that.History {
		if that.SortAscending {
			order[i] = i
		} else {
			order[i] = len(that.History) - 1 - i
		}
	}

	return order
}

// MoveLabels - move list captions in display order.
func (that GameState) MoveLabels() []string {
	order := that.MoveOrder()

	labels := make([]string, 0, len(order))
	for _, move := range order {
		labels = append(labels, that.MoveLabel(move))
	}

	return labels
}

func (that GameState) MoveLabel(move int) string {
	if move == 0 {
		return "Go to game start"
	}

	position := that.History[move].Position

	return fmt.Sprintf("Go to move #%d (%d, %d)", move, position/3+1, position%3+1)
}

func (that GameState) SortLabel() string {
	if that.SortAscending {
		return "Sort Moves Descending"
	}

	return "Sort Moves Ascending"
}

func (that GameState) checkMoveIndex(moveIndex int) error {
	if moveIndex < 0 || moveIndex >= len(that.History) {
		return fmt.Errorf("%w: move %d out of range 0..%d", apperror.ErrInvalidArgument, moveIndex, len(that.History)-1)
	}

	return nil
}

// clone - copies the state so that appends never share the history backing array.
func (that GameState) clone() GameState {
	history := make([]Move, len(that.History), len(that.History)+1)
	copy(history, that.History)
	that.History = history

	return that
}

func toggleMark(currentMark Mark) Mark {
	if currentMark == PlayerX {
		return PlayerO
	}

	return PlayerX
}
