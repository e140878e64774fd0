package ipb

import (
	"context"
	"errors"
	"fmt"
	"ipbtracker/internal/models"
	utils "ipbtracker/internal/utils/http_errors"
	"log/slog"
	"net/http"
)

func Head(ctx context.Context, log *slog.Logger, w http.ResponseWriter, r *http.Request, ip IPBProvider, up UserIDProvider) {
	op := pkg + "Head"

	log = log.With(slog.String("op", op))

	ipbs, ok := listIPBs(ctx, log, w, r, ip, up, func(w http.ResponseWriter, status int, _ string) {
		utils.WriteStatusError(w, status)
	})
	if !ok {
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.Header().Set("X-IPB-Count", fmt.Sprint(len(ipbs)))
	w.WriteHeader(http.StatusOK)
}

func HeadByID(ctx context.Context, log *slog.Logger, w http.ResponseWriter, r *http.Request, id string, ip IPBProvider) {
	op := pkg + "HeadByID"

	log = log.With(slog.String("op", op), slog.String("ipb_id", id))

	ipb, err := ip.Get(ctx, id)
	if err != nil {
		if errors.Is(err, models.ErrIPBNotFound) {
			utils.WriteStatusError(w, http.StatusNotFound)
			return
		}
		log.Error("failed to get ipb", slog.String("error", err.Error()))
		utils.WriteStatusError(w, http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.Header().Set("X-IPB-Status", string(ipb.Status))
	w.Header().Set("X-IPB-Status-Detail", ipb.StatusDetail)
	w.Header().Set("Last-Modified", ipb.UpdatedAt.UTC().Format(http.TimeFormat))
	w.WriteHeader(http.StatusOK)
}
