package ipb

import (
	"context"
	"ipbtracker/internal/models"
	utils "ipbtracker/internal/utils/http_errors"
	"log/slog"
	"net/http"
)

func Delete(ctx context.Context, log *slog.Logger, w http.ResponseWriter, r *http.Request, id string, dd IPBDeleter) {
	op := pkg + "Delete"

	log = log.With(slog.String("op", op), slog.String("ipb_id", id))

	requester, ok := requesterFrom(r)
	if !ok {
		log.Error("failed to get user from context")
		utils.WriteJSONError(w, http.StatusUnauthorized, models.ErrUnauthorized.Error())
		return
	}

	if err := dd.Delete(ctx, requester, id); err != nil {
		writeServiceError(log, w, err)
		return
	}

	writeData(log, w, http.StatusOK, map[string]any{
		id: true,
	})
}
