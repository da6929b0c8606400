package usecase

import (
	"context"
	"fmt"
	"log/slog"
	"sync"

	"github.com/rocketscienceinc/tictactoe-board/internal/config"
	"github.com/rocketscienceinc/tictactoe-board/internal/entity"
)

// GameUseCase - view inputs of one play session mapped onto the engine.
type GameUseCase interface {
	NewGame(ctx context.Context) (*entity.Session, error)
	GetGame(ctx context.Context, sessionID string) (*entity.Session, error)
	EndGame(ctx context.Context, sessionID string) error

	ClickCell(ctx context.Context, sessionID string, cell int) (*entity.Session, error)
	JumpTo(ctx context.Context, sessionID string, move int) (*entity.Session, error)
	ToggleSort(ctx context.Context, sessionID string) (*entity.Session, error)
}

type sessionRepo interface {
	CreateOrUpdate(ctx context.Context, session *entity.Session) error
	GetByID(ctx context.Context, id string) (*entity.Session, error)
	DeleteByID(ctx context.Context, id string) error
}

type jumpFunc func(state entity.GameState, move int) (entity.GameState, error)

type gameUseCase struct {
	logger      *slog.Logger
	sessionRepo sessionRepo
	generateID  func() string
	jump        jumpFunc

	// mu makes every transition a single read-modify-write.
	mu sync.Mutex
}

func NewGameUseCase(logger *slog.Logger, sessionRepo sessionRepo, generateID func() string, jumpMode string) GameUseCase {
	jump := entity.JumpTo
	if jumpMode == config.JumpModeBranch {
		jump = entity.BranchTo
	}

	return &gameUseCase{
		logger:      logger.With("component", "game_usecase"),
		sessionRepo: sessionRepo,
		generateID:  generateID,
		jump:        jump,
	}
}

func (that *gameUseCase) NewGame(ctx context.Context) (*entity.Session, error) {
	session := entity.NewSession(that.generateID())

	if err := that.sessionRepo.CreateOrUpdate(ctx, session); err != nil {
		return nil, fmt.Errorf("failed to create session: %w", err)
	}

	that.logger.Info("game started", "sessionID", session.ID)

	return session, nil
}

func (that *gameUseCase) GetGame(ctx context.Context, sessionID string) (*entity.Session, error) {
	session, err := that.sessionRepo.GetByID(ctx, sessionID)
	if err != nil {
		return nil, fmt.Errorf("failed to get session: %w", err)
	}

	return session, nil
}

func (that *gameUseCase) EndGame(ctx context.Context, sessionID string) error {
	if err := that.sessionRepo.DeleteByID(ctx, sessionID); err != nil {
		return fmt.Errorf("failed to delete session: %w", err)
	}

	that.logger.Info("game ended", "sessionID", sessionID)

	return nil
}

func (that *gameUseCase) ClickCell(ctx context.Context, sessionID string, cell int) (*entity.Session, error) {
	return that.transition(ctx, sessionID, "ClickCell", func(state entity.GameState) (entity.GameState, error) {
		next := entity.ApplyMove(state, cell)
		if next.MoveCount() == state.MoveCount() {
			that.logger.Debug("move ignored", "sessionID", sessionID, "cell", cell)
		}

		return next, nil
	})
}

func (that *gameUseCase) JumpTo(ctx context.Context, sessionID string, move int) (*entity.Session, error) {
	return that.transition(ctx, sessionID, "JumpTo", func(state entity.GameState) (entity.GameState, error) {
		return that.jump(state, move)
	})
}

func (that *gameUseCase) ToggleSort(ctx context.Context, sessionID string) (*entity.Session, error) {
	return that.transition(ctx, sessionID, "ToggleSort", func(state entity.GameState) (entity.GameState, error) {
		return entity.ToggleSort(state), nil
	})
}

// transition - loads the session, applies one engine step and stores the result.
func (that *gameUseCase) transition(
	ctx context.Context,
	sessionID, method string,
	step func(entity.GameState) (entity.GameState, error),
) (*entity.Session, error) {
	log := that.logger.With("method", method, "sessionID", sessionID)

	that.mu.Lock()
	defer that.mu.Unlock()

	session, err := that.sessionRepo.GetByID(ctx, sessionID)
	if err != nil {
		return nil, fmt.Errorf("failed to get session: %w", err)
	}

	state, err := step(session.State)
	if err != nil {
		return nil, fmt.Errorf("failed to apply %s: %w", method, err)
	}

	session.State = state
	if err = that.sessionRepo.CreateOrUpdate(ctx, session); err != nil {
		return nil, fmt.Errorf("failed to update session: %w", err)
	}

	log.Debug("state updated", "moves", state.MoveCount(), "status", state.Status())

	return session, nil
}
