package usecase

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/rocketscienceinc/tictactoe-board/internal/apperror"
	"github.com/rocketscienceinc/tictactoe-board/internal/config"
	"github.com/rocketscienceinc/tictactoe-board/internal/entity"
	"github.com/rocketscienceinc/tictactoe-board/internal/repository"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

var (
	errRedisDown     = errors.New("redis down")
	errStorageIsFull = errors.New("storage is full")
)

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func fixedID() string {
	return "session-1"
}

func sessionWithMoves(cells ...int) *entity.Session {
	session := entity.NewSession("session-1")
	for _, cell := range cells {
		session.State = entity.ApplyMove(session.State, cell)
	}

	return session
}

func TestGameUseCase_NewGame(t *testing.T) {
	ctx := context.Background()

	t.Run("Creates a session with a fresh game", func(t *testing.T) {
		// Given: a repository accepting the new session
		mockRepo := newMockSessionRepo(t)
		useCase := NewGameUseCase(discardLogger(), mockRepo, fixedID, config.JumpModeDisplay)

		mockRepo.On("CreateOrUpdate", mock.Anything, mock.AnythingOfType("*entity.Session")).
			Return(nil).
			Once()

		// When: a new game is requested
		session, err := useCase.NewGame(ctx)

		// Then: the session carries the generated id and the initial state
		require.NoError(t, err)
		assert.Equal(t, "session-1", session.ID)
		assert.Equal(t, entity.NewGameState(), session.State)
	})

	t.Run("Returns error if the repository fails", func(t *testing.T) {
		mockRepo := newMockSessionRepo(t)
		useCase := NewGameUseCase(discardLogger(), mockRepo, fixedID, config.JumpModeDisplay)

		mockRepo.On("CreateOrUpdate", mock.Anything, mock.Anything).
			Return(errStorageIsFull).
			Once()

		session, err := useCase.NewGame(ctx)

		require.ErrorIs(t, err, errStorageIsFull)
		assert.Nil(t, session)
	})
}

func TestGameUseCase_ClickCell(t *testing.T) {
	ctx := context.Background()

	t.Run("Applies the move and stores the new state", func(t *testing.T) {
		// Given: a stored game with no moves
		mockRepo := newMockSessionRepo(t)
		useCase := NewGameUseCase(discardLogger(), mockRepo, fixedID, config.JumpModeDisplay)

		mockRepo.On("GetByID", mock.Anything, "session-1").
			Return(sessionWithMoves(), nil).
			Once()
		mockRepo.On("CreateOrUpdate", mock.Anything, mock.MatchedBy(func(session *entity.Session) bool {
			return session.State.Board[4] == entity.PlayerX && session.State.MoveCount() == 1
		})).
			Return(nil).
			Once()

		// When: the centre cell is clicked
		session, err := useCase.ClickCell(ctx, "session-1", 4)

		// Then: X is placed and O is next
		require.NoError(t, err)
		assert.Equal(t, entity.PlayerO, session.State.NextPlayer)
	})

	t.Run("Click on an occupied cell leaves the state unchanged", func(t *testing.T) {
		// Given: X already played cell 0
		mockRepo := newMockSessionRepo(t)
		useCase := NewGameUseCase(discardLogger(), mockRepo, fixedID, config.JumpModeDisplay)

		stored := sessionWithMoves(0)
		mockRepo.On("GetByID", mock.Anything, "session-1").
			Return(stored, nil).
			Once()
		mockRepo.On("CreateOrUpdate", mock.Anything, mock.Anything).
			Return(nil).
			Once()

		// When: O clicks cell 0
		session, err := useCase.ClickCell(ctx, "session-1", 0)

		// Then: no error and still one move
		require.NoError(t, err)
		assert.Equal(t, 1, session.State.MoveCount())
		assert.Equal(t, sessionWithMoves(0).State, session.State)
	})

	t.Run("Returns error if the session is missing", func(t *testing.T) {
		mockRepo := newMockSessionRepo(t)
		useCase := NewGameUseCase(discardLogger(), mockRepo, fixedID, config.JumpModeDisplay)

		mockRepo.On("GetByID", mock.Anything, "nope").
			Return(nil, apperror.ErrSessionNotFound).
			Once()

		session, err := useCase.ClickCell(ctx, "nope", 0)

		require.ErrorIs(t, err, apperror.ErrSessionNotFound)
		assert.Nil(t, session)
	})

	t.Run("Returns error if the update fails", func(t *testing.T) {
		mockRepo := newMockSessionRepo(t)
		useCase := NewGameUseCase(discardLogger(), mockRepo, fixedID, config.JumpModeDisplay)

		mockRepo.On("GetByID", mock.Anything, "session-1").
			Return(sessionWithMoves(), nil).
			Once()
		mockRepo.On("CreateOrUpdate", mock.Anything, mock.Anything).
			Return(errRedisDown).
			Once()

		_, err := useCase.ClickCell(ctx, "session-1", 0)

		require.ErrorIs(t, err, errRedisDown)
	})
}

func TestGameUseCase_JumpTo(t *testing.T) {
	ctx := context.Background()

	t.Run("Display mode keeps the history", func(t *testing.T) {
		// Given: three moves were played
		mockRepo := newMockSessionRepo(t)
		useCase := NewGameUseCase(discardLogger(), mockRepo, fixedID, config.JumpModeDisplay)

		mockRepo.On("GetByID", mock.Anything, "session-1").
			Return(sessionWithMoves(0, 4, 8), nil).
			Once()
		mockRepo.On("CreateOrUpdate", mock.Anything, mock.Anything).
			Return(nil).
			Once()

		// When: jumping to the game start
		session, err := useCase.JumpTo(ctx, "session-1", 0)

		// Then: the board is empty and the moves are kept
		require.NoError(t, err)
		assert.Equal(t, entity.Board{}, session.State.Board)
		assert.Equal(t, 3, session.State.MoveCount())
	})

	t.Run("Branch mode truncates the history", func(t *testing.T) {
		mockRepo := newMockSessionRepo(t)
		useCase := NewGameUseCase(discardLogger(), mockRepo, fixedID, config.JumpModeBranch)

		mockRepo.On("GetByID", mock.Anything, "session-1").
			Return(sessionWithMoves(0, 4, 8), nil).
			Once()
		mockRepo.On("CreateOrUpdate", mock.Anything, mock.Anything).
			Return(nil).
			Once()

		session, err := useCase.JumpTo(ctx, "session-1", 0)

		require.NoError(t, err)
		assert.Equal(t, 0, session.State.MoveCount())
		assert.Equal(t, entity.PlayerX, session.State.NextPlayer)
	})

	t.Run("Out of range move is an invalid argument and nothing is stored", func(t *testing.T) {
		mockRepo := newMockSessionRepo(t)
		useCase := NewGameUseCase(discardLogger(), mockRepo, fixedID, config.JumpModeDisplay)

		mockRepo.On("GetByID", mock.Anything, "session-1").
			Return(sessionWithMoves(0), nil).
			Once()

		_, err := useCase.JumpTo(ctx, "session-1", 5)

		require.ErrorIs(t, err, apperror.ErrInvalidArgument)
		mockRepo.AssertNotCalled(t, "CreateOrUpdate", mock.Anything, mock.Anything)
	})
}

func TestGameUseCase_ToggleSort(t *testing.T) {
	ctx := context.Background()

	// Given: a stored game sorted ascending
	mockRepo := newMockSessionRepo(t)
	useCase := NewGameUseCase(discardLogger(), mockRepo, fixedID, config.JumpModeDisplay)

	mockRepo.On("GetByID", mock.Anything, "session-1").
		Return(sessionWithMoves(1), nil).
		Once()
	mockRepo.On("CreateOrUpdate", mock.Anything, mock.Anything).
		Return(nil).
		Once()

	// When: sort is toggled
	session, err := useCase.ToggleSort(ctx, "session-1")

	// Then: the list is descending and the history is unchanged
	require.NoError(t, err)
	assert.False(t, session.State.SortAscending)
	assert.Equal(t, sessionWithMoves(1).State.History, session.State.History)
}

func TestGameUseCase_EndGame(t *testing.T) {
	ctx := context.Background()

	t.Run("Deletes the session", func(t *testing.T) {
		mockRepo := newMockSessionRepo(t)
		useCase := NewGameUseCase(discardLogger(), mockRepo, fixedID, config.JumpModeDisplay)

		mockRepo.On("DeleteByID", mock.Anything, "session-1").
			Return(nil).
			Once()

		require.NoError(t, useCase.EndGame(ctx, "session-1"))
	})

	t.Run("Returns error if the session is missing", func(t *testing.T) {
		mockRepo := newMockSessionRepo(t)
		useCase := NewGameUseCase(discardLogger(), mockRepo, fixedID, config.JumpModeDisplay)

		mockRepo.On("DeleteByID", mock.Anything, "nope").
			Return(apperror.ErrSessionNotFound).
			Once()

		require.ErrorIs(t, useCase.EndGame(ctx, "nope"), apperror.ErrSessionNotFound)
	})
}

func TestGameUseCase_WithMemoryRepository(t *testing.T) {
	ctx := context.Background()

	// Given: a use case over the in-memory repository
	useCase := NewGameUseCase(discardLogger(), repository.NewMemorySessionRepository(time.Hour), fixedID, config.JumpModeDisplay)

	session, err := useCase.NewGame(ctx)
	require.NoError(t, err)

	// When: X wins on the left column
	for _, cell := range []int{0, 1, 3, 4, 6} {
		session, err = useCase.ClickCell(ctx, session.ID, cell)
		require.NoError(t, err)
	}

	// Then: the stored game reports the winner
	stored, err := useCase.GetGame(ctx, session.ID)
	require.NoError(t, err)
	assert.Equal(t, "Winner: X", stored.State.Status())
	assert.Equal(t, []int{0, 3, 6}, entity.GetWinningLine(stored.State.Board))
}
