package httpapi

import (
	"fmt"
	"net/http"
	"strings"
	"time"

	sonic "github.com/bytedance/sonic"

	"github.com/Stembetevo/fairplay/internal/usecase"
)

type generateTeamsRequest struct {
	TeamNames []string `json:"teamNames" validate:"required,min=2,max=10,dive,max=100"`
}

func (h *Handler) GenerateTeams(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.GenerateTeams")
	defer span.End()

	principal, ok := principalFromContext(ctx)
	if !ok {
		writeError(ctx, w, fmt.Errorf("%w: principal is missing from request context", usecase.ErrUnauthorized))
		return
	}

	var req generateTeamsRequest
	decoder := sonic.ConfigDefault.NewDecoder(r.Body)
	decoder.DisallowUnknownFields()
	if err := decoder.Decode(&req); err != nil {
		writeError(ctx, w, fmt.Errorf("%w: invalid JSON payload: %v", usecase.ErrInvalidInput, err))
		return
	}
	if err := h.validateRequest(ctx, req); err != nil {
		writeError(ctx, w, err)
		return
	}

	teams, err := h.rosterService.GenerateTeams(ctx, usecase.GenerateTeamsInput{
		OwnerID:   principal.UserID,
		TeamNames: req.TeamNames,
	})
	if err != nil {
		h.logger.WarnContext(ctx, "generate teams failed", "owner_id", principal.UserID, "error", err)
		writeError(ctx, w, err)
		return
	}

	items := make([]teamDTO, 0, len(teams))
	for _, t := range teams {
		items = append(items, teamViewToDTO(t))
	}

	writeSuccess(ctx, w, http.StatusCreated, items)
}

func (h *Handler) ListTeams(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.ListTeams")
	defer span.End()

	principal, ok := principalFromContext(ctx)
	if !ok {
		writeError(ctx, w, fmt.Errorf("%w: principal is missing from request context", usecase.ErrUnauthorized))
		return
	}

	teams, err := h.rosterService.ListTeams(ctx, principal.UserID)
	if err != nil {
		h.logger.WarnContext(ctx, "list teams failed", "owner_id", principal.UserID, "error", err)
		writeError(ctx, w, err)
		return
	}

	items := make([]teamDTO, 0, len(teams))
	for _, t := range teams {
		items = append(items, teamViewToDTO(t))
	}

	writeSuccess(ctx, w, http.StatusOK, items)
}

func (h *Handler) GetTeamDetail(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.GetTeamDetail")
	defer span.End()

	principal, ok := principalFromContext(ctx)
	if !ok {
		writeError(ctx, w, fmt.Errorf("%w: principal is missing from request context", usecase.ErrUnauthorized))
		return
	}

	teamID := strings.TrimSpace(r.PathValue("teamID"))
	detail, err := h.historyService.TeamDetail(ctx, principal.UserID, teamID)
	if err != nil {
		h.logger.WarnContext(ctx, "get team detail failed", "owner_id", principal.UserID, "team_id", teamID, "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, teamDetailDTO{
		ID:            detail.Team.ID,
		Name:          detail.Team.Name,
		Players:       playersToDTO(detail.Players),
		TotalRating:   detail.TotalRating,
		AverageRating: detail.AverageRating,
		Record:        recordToDTO(detail.Record),
		Timeline:      timelineToDTO(detail.Timeline),
		CreatedAt:     detail.Team.CreatedAt.UTC().Format(time.RFC3339),
	})
}

func (h *Handler) GetTeamHistory(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.GetTeamHistory")
	defer span.End()

	principal, ok := principalFromContext(ctx)
	if !ok {
		writeError(ctx, w, fmt.Errorf("%w: principal is missing from request context", usecase.ErrUnauthorized))
		return
	}

	teamID := strings.TrimSpace(r.PathValue("teamID"))
	entries, err := h.historyService.TeamTimeline(ctx, principal.UserID, teamID)
	if err != nil {
		h.logger.WarnContext(ctx, "get team history failed", "owner_id", principal.UserID, "team_id", teamID, "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, timelineToDTO(entries))
}
