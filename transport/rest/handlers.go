package rest

import (
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/rocketscienceinc/tictactoe-board/internal/apperror"
	"github.com/rocketscienceinc/tictactoe-board/internal/entity"
	"github.com/rocketscienceinc/tictactoe-board/internal/usecase"
)

type Handlers interface {
	PingHandler(w http.ResponseWriter, _ *http.Request)

	NewGame(w http.ResponseWriter, r *http.Request)
	GetGame(w http.ResponseWriter, r *http.Request)
	EndGame(w http.ResponseWriter, r *http.Request)

	ClickCell(w http.ResponseWriter, r *http.Request)
	JumpTo(w http.ResponseWriter, r *http.Request)
	ToggleSort(w http.ResponseWriter, r *http.Request)
}

type GameResponse struct {
	ID    string               `json:"id"`
	State entity.RenderedState `json:"state"`
}

type errorResponse struct {
	Error string `json:"error"`
}

type handlers struct {
	logger      *slog.Logger
	gameUseCase usecase.GameUseCase
}

func NewHandlers(logger *slog.Logger, gameUseCase usecase.GameUseCase) Handlers {
	return &handlers{
		logger:      logger.With("component", "rest"),
		gameUseCase: gameUseCase,
	}
}

func (that *handlers) NewGame(w http.ResponseWriter, r *http.Request) {
	session, err := that.gameUseCase.NewGame(r.Context())
	if err != nil {
		that.writeError(w, "NewGame", err)
		return
	}

	that.writeSession(w, http.StatusCreated, session)
}

func (that *handlers) GetGame(w http.ResponseWriter, r *http.Request) {
	session, err := that.gameUseCase.GetGame(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		that.writeError(w, "GetGame", err)
		return
	}

	that.writeSession(w, http.StatusOK, session)
}

func (that *handlers) EndGame(w http.ResponseWriter, r *http.Request) {
	if err := that.gameUseCase.EndGame(r.Context(), chi.URLParam(r, "id")); err != nil {
		that.writeError(w, "EndGame", err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

func (that *handlers) ClickCell(w http.ResponseWriter, r *http.Request) {
	cell, err := intParam(r, "cell")
	if err != nil {
		that.writeError(w, "ClickCell", err)
		return
	}

	session, err := that.gameUseCase.ClickCell(r.Context(), chi.URLParam(r, "id"), cell)
	if err != nil {
		that.writeError(w, "ClickCell", err)
		return
	}

	that.writeSession(w, http.StatusOK, session)
}

func (that *handlers) JumpTo(w http.ResponseWriter, r *http.Request) {
	move, err := intParam(r, "move")
	if err != nil {
		that.writeError(w, "JumpTo", err)
		return
	}

	session, err := that.gameUseCase.JumpTo(r.Context(), chi.URLParam(r, "id"), move)
	if err != nil {
		that.writeError(w, "JumpTo", err)
		return
	}

	that.writeSession(w, http.StatusOK, session)
}

func (that *handlers) ToggleSort(w http.ResponseWriter, r *http.Request) {
	session, err := that.gameUseCase.ToggleSort(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		that.writeError(w, "ToggleSort", err)
		return
	}

	that.writeSession(w, http.StatusOK, session)
}

func (that *handlers) writeSession(w http.ResponseWriter, status int, session *entity.Session) {
	that.writeJSON(w, status, GameResponse{
		ID:    session.ID,
		State: entity.Render(session.State),
	})
}

func (that *handlers) writeError(w http.ResponseWriter, method string, err error) {
	status := http.StatusInternalServerError

	switch {
	case errors.Is(err, apperror.ErrSessionNotFound):
		status = http.StatusNotFound
	case errors.Is(err, apperror.ErrInvalidArgument):
		status = http.StatusBadRequest
	default:
		that.logger.Error("request failed", "method", method, "error", err)
	}

	that.writeJSON(w, status, errorResponse{Error: err.Error()})
}

func (that *handlers) writeJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)

	if err := json.NewEncoder(w).Encode(body); err != nil {
		that.logger.Error("failed to write response", "error", err)
	}
}

func intParam(r *http.Request, name string) (int, error) {
	value, err := strconv.Atoi(chi.URLParam(r, name))
	if err != nil {
		return 0, fmt.Errorf("%w: %s must be an integer", apperror.ErrInvalidArgument, name)
	}

	return value, nil
}
