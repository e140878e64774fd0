package session

import (
	"context"
	"encoding/json"
	"errors"
	"ipbtracker/internal/dto"
	"ipbtracker/internal/models"
	utils "ipbtracker/internal/utils/http_errors"
	"log/slog"
	"net/http"
)

func Add(ctx context.Context, log *slog.Logger, w http.ResponseWriter, r *http.Request, sa SessionAdder) {
	op := pkg + "Add"

	log = log.With(slog.String("op", op))

	defer r.Body.Close()

	var req dto.SessionRequest

	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		log.Warn("failed to decode body", slog.String("error", err.Error()))
		utils.WriteJSONError(w, http.StatusBadRequest, models.ErrInvalidParams.Error())
		return
	}

	token, user, err := sa.Login(ctx, req.Login, req.Password)
	if err != nil {
		if errors.Is(err, models.ErrUserNotFound) || errors.Is(err, models.ErrInvalidCredentials) {
			log.Warn("failed to login", slog.String("login", req.Login))
			utils.WriteJSONError(w, http.StatusUnauthorized, models.ErrInvalidCredentials.Error())
			return
		}
		log.Error("failed to login", slog.String("error", err.Error()))
		utils.WriteJSONError(w, http.StatusInternalServerError, models.ErrInternal.Error())
		return
	}

	response := map[string]any{
		"response": dto.SessionResponse{
			Token: token,
			Login: user.Login,
			Role:  string(user.Role),
		},
	}

	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(response); err != nil {
		log.Error("failed to write response", slog.String("error", err.Error()))
	}
}
