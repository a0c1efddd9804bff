package httpapi

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"

	"github.com/go-playground/validator/v10"

	"github.com/Stembetevo/fairplay/internal/usecase"
)

type Handler struct {
	playerService  *usecase.PlayerService
	rosterService  *usecase.RosterService
	matchService   *usecase.MatchService
	historyService *usecase.HistoryService
	logger         *slog.Logger
	validator      *validator.Validate
}

func NewHandler(
	playerService *usecase.PlayerService,
	rosterService *usecase.RosterService,
	matchService *usecase.MatchService,
	historyService *usecase.HistoryService,
	logger *slog.Logger,
) *Handler {
	if logger == nil {
		logger = slog.Default()
	}

	return &Handler{
		playerService:  playerService,
		rosterService:  rosterService,
		matchService:   matchService,
		historyService: historyService,
		logger:         logger,
		validator:      validator.New(),
	}
}

func (h *Handler) Healthz(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.Healthz")
	defer span.End()

	writeSuccess(ctx, w, http.StatusOK, map[string]string{"status": "ok"})
}

func (h *Handler) validateRequest(ctx context.Context, payload any) error {
	if err := h.validator.StructCtx(ctx, payload); err != nil {
		return fmt.Errorf("%w: validation failed: %v", usecase.ErrInvalidInput, err)
	}

	return nil
}
