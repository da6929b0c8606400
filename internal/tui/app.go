package tui

import (
	"fmt"
	"slices"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/rocketscienceinc/tictactoe-board/internal/config"
	"github.com/rocketscienceinc/tictactoe-board/internal/entity"
)

type focus int

const (
	focusBoard focus = iota
	focusMoves
)

const boardSide = 3

type Model struct {
	state      entity.GameState
	jump       func(entity.GameState, int) (entity.GameState, error)
	cursor     int // board cell
	moveCursor int // row in the displayed move list
	focus      focus
	err        error
	quitting   bool
}

func NewModel(jumpMode string) Model {
	jump := entity.JumpTo
	if jumpMode == config.JumpModeBranch {
		jump = entity.BranchTo
	}

	return Model{
		state:  entity.NewGameState(),
		jump:   jump,
		cursor: 4,
	}
}

// Run - plays in the terminal until the user quits.
func Run(jumpMode string) error {
	if _, err := tea.NewProgram(NewModel(jumpMode), tea.WithAltScreen()).Run(); err != nil {
		return fmt.Errorf("failed to run terminal view: %w", err)
	}

	return nil
}

func (m Model) State() entity.GameState {
	return m.state
}

func (m Model) Init() tea.Cmd {
	return nil
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	keyMsg, ok := msg.(tea.KeyMsg)
	if !ok {
		return m, nil
	}

	m.err = nil

	switch keyMsg.String() {
	case "ctrl+c", "q":
		m.quitting = true
		return m, tea.Quit
	case "tab":
		if m.focus == focusBoard {
			m.focus = focusMoves
		} else {
			m.focus = focusBoard
		}
		return m, nil
	case "s":
		m.state = entity.ToggleSort(m.state)
		m.moveCursor = len(m.state.History) - 1 - m.moveCursor
		return m, nil
	case "n":
		m.state = entity.NewGameState()
		m.moveCursor = 0
		return m, nil
	}

	if m.focus == focusBoard {
		return m.updateBoard(keyMsg), nil
	}

	return m.updateMoves(keyMsg), nil
}

func (m Model) updateBoard(msg tea.KeyMsg) Model {
	row, col := m.cursor/boardSide, m.cursor%boardSide

	switch msg.String() {
	case "up", "k":
		row = max(0, row-1)
	case "down", "j":
		row = min(boardSide-1, row+1)
	case "left", "h":
		col = max(0, col-1)
	case "right", "l":
		col = min(boardSide-1, col+1)
	case "enter", " ":
		m.state = entity.ApplyMove(m.state, m.cursor)
		if !m.state.SortAscending {
			m.moveCursor = 0
		}
		return m
	}

	m.cursor = row*boardSide + col

	return m
}

func (m Model) updateMoves(msg tea.KeyMsg) Model {
	switch msg.String() {
	case "up", "k":
		m.moveCursor = max(0, m.moveCursor-1)
	case "down", "j":
		m.moveCursor = min(len(m.state.History)-1, m.moveCursor+1)
	case "enter", " ":
		move := m.state.MoveOrder()[m.moveCursor]
		state, err := m.jump(m.state, move)
		if err != nil {
			m.err = err
			return m
		}

		m.state = state
		// a branch drops rows, so keep the cursor on the entry that was chosen
		m.moveCursor = max(0, slices.Index(m.state.MoveOrder(), move))
	}

	return m
}

func (m Model) View() string {
	if m.quitting {
		return ""
	}

	view := entity.Render(m.state)

	var b strings.Builder

	b.WriteString(titleStyle.Render("Tic-Tac-Toe"))
	b.WriteString("\n")
	b.WriteString(statusStyle.Render(view.Status))
	b.WriteString("\n\n")
	b.WriteString(m.renderBoard(view))
	b.WriteString("\n\n")
	b.WriteString(dimStyle.Render("[s] " + view.SortLabel))
	b.WriteString("\n")
	b.WriteString(m.renderMoves(view))

	if m.err != nil {
		b.WriteString("\n")
		b.WriteString(errorStyle.Render(m.err.Error()))
	}

	b.WriteString("\n")
	b.WriteString(dimStyle.Render("arrows: move  enter: play/jump  tab: board/moves  n: new game  q: quit"))

	return b.String()
}

func (m Model) renderBoard(view entity.RenderedState) string {
	rows := make([]string, 0, boardSide)

	for row := range boardSide {
		cells := make([]string, 0, boardSide)

		for col := range boardSide {
			index := row*boardSide + col

			style := cellStyle
			switch {
			case slices.Contains(view.WinningLine, index):
				style = winningCellStyle
			case m.focus == focusBoard && index == m.cursor:
				style = cursorCellStyle
			}

			cells = append(cells, style.Render(renderMark(view.Cells[index])))
		}

		rows = append(rows, lipgloss.JoinHorizontal(lipgloss.Top, cells...))
	}

	return lipgloss.JoinVertical(lipgloss.Left, rows...)
}

func (m Model) renderMoves(view entity.RenderedState) string {
	lines := make([]string, 0, len(view.MoveLabels))

	for i, label := range view.MoveLabels {
		if m.focus == focusMoves && i == m.moveCursor {
			lines = append(lines, selectedStyle.Render(label))
			continue
		}

		lines = append(lines, normalStyle.Render(label))
	}

	return strings.Join(lines, "\n")
}

func renderMark(mark string) string {
	switch mark {
	case string(entity.PlayerX):
		return markXStyle.Render(mark)
	case string(entity.PlayerO):
		return markOStyle.Render(mark)
	default:
		return " "
	}
}
