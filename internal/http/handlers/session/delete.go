package session

import (
	"context"
	"encoding/json"
	"errors"
	"ipbtracker/internal/models"
	utils "ipbtracker/internal/utils/http_errors"
	"log/slog"
	"net/http"
)

// Delete ends the session. Logging out an unknown or expired token succeeds,
// only a failing session store is reported to the client.
func Delete(ctx context.Context, log *slog.Logger, w http.ResponseWriter, r *http.Request, token string, sd SessionDeleter) {
	op := pkg + "Delete"

	log = log.With(slog.String("op", op))

	if err := sd.Logout(ctx, token); err != nil {
		if !errors.Is(err, models.ErrSessionNotFound) {
			log.Error("failed to delete session", slog.String("error", err.Error()))
			utils.WriteJSONError(w, http.StatusInternalServerError, models.ErrInternal.Error())
			return
		}
		log.Debug("logout of unknown session")
	}

	response := map[string]any{
		"response": map[string]any{
			token: true,
		},
	}

	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(response); err != nil {
		log.Error("failed to write response", slog.String("error", err.Error()))
	}
}
