package audit

import (
	"context"
	"encoding/json"
	"errors"
	"ipbtracker/internal/dto"
	"ipbtracker/internal/models"
	utils "ipbtracker/internal/utils/http_errors"
	parseutil "ipbtracker/internal/utils/parseLimit"
	"log/slog"
	"net/http"
)

func List(ctx context.Context, log *slog.Logger, w http.ResponseWriter, r *http.Request, al AuditLister) {
	op := pkg + "List"

	log = log.With(slog.String("op", op))

	requester, ok := r.Context().Value(models.UserContextKey).(*models.User)
	if !ok {
		log.Error("failed to get user from context")
		utils.WriteJSONError(w, http.StatusUnauthorized, models.ErrUnauthorized.Error())
		return
	}

	filter := models.AuditFilter{
		Action: models.AuditAction(r.URL.Query().Get("action")),
		Limit:  parseutil.ParseLimit(r.URL.Query().Get("limit")),
	}

	entries, err := al.List(ctx, requester, filter)
	if err != nil {
		if errors.Is(err, models.ErrForbidden) {
			log.Warn("audit log requested by non-admin", slog.String("user_id", requester.ID))
			utils.WriteJSONError(w, http.StatusForbidden, models.ErrForbidden.Error())
			return
		}
		if errors.Is(err, models.ErrInvalidParams) {
			utils.WriteJSONError(w, http.StatusBadRequest, models.ErrInvalidParams.Error())
			return
		}
		log.Error("failed to list audit entries", slog.String("error", err.Error()))
		utils.WriteJSONError(w, http.StatusInternalServerError, models.ErrInternal.Error())
		return
	}

	response := map[string]any{
		"data": map[string]any{
			"entries": dto.AuditEntriesToResponse(entries),
		},
	}

	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(response); err != nil {
		log.Error("failed to write response", slog.String("error", err.Error()))
	}
}
