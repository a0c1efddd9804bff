package httpapi

import (
	"fmt"
	"net/http"

	"github.com/Stembetevo/fairplay/internal/usecase"
)

func (h *Handler) GetOwnerHistory(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.GetOwnerHistory")
	defer span.End()

	principal, ok := principalFromContext(ctx)
	if !ok {
		writeError(ctx, w, fmt.Errorf("%w: principal is missing from request context", usecase.ErrUnauthorized))
		return
	}

	entries, err := h.historyService.OwnerHistory(ctx, principal.UserID)
	if err != nil {
		h.logger.WarnContext(ctx, "get owner history failed", "owner_id", principal.UserID, "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, timelineToDTO(entries))
}

func (h *Handler) GetLeagueSummary(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.GetLeagueSummary")
	defer span.End()

	principal, ok := principalFromContext(ctx)
	if !ok {
		writeError(ctx, w, fmt.Errorf("%w: principal is missing from request context", usecase.ErrUnauthorized))
		return
	}

	rows, err := h.historyService.LeagueSummary(ctx, principal.UserID)
	if err != nil {
		h.logger.WarnContext(ctx, "get league summary failed", "owner_id", principal.UserID, "error", err)
		writeError(ctx, w, err)
		return
	}

	items := make([]summaryRowDTO, 0, len(rows))
	for _, row := range rows {
		items = append(items, summaryRowDTO{
			TeamID:        row.TeamID,
			Name:          row.Name,
			PlayerCount:   row.PlayerCount,
			TotalRating:   row.TotalRating,
			AverageRating: row.AverageRating,
			Record:        recordToDTO(row.Record),
		})
	}

	writeSuccess(ctx, w, http.StatusOK, items)
}
