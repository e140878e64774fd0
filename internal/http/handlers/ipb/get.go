package ipb

import (
	"context"
	"errors"
	"ipbtracker/internal/dto"
	"ipbtracker/internal/models"
	utils "ipbtracker/internal/utils/http_errors"
	parseutil "ipbtracker/internal/utils/parseLimit"
	"log/slog"
	"net/http"
)

func List(ctx context.Context, log *slog.Logger, w http.ResponseWriter, r *http.Request, ip IPBProvider, up UserIDProvider) {
	op := pkg + "List"

	log = log.With(slog.String("op", op))

	ipbs, ok := listIPBs(ctx, log, w, r, ip, up, utils.WriteJSONError)
	if !ok {
		return
	}

	out := make([]dto.IPBResponse, 0, len(ipbs))
	for _, ipb := range ipbs {
		out = append(out, dto.IPBToResponse(ipb))
	}

	writeData(log, w, http.StatusOK, map[string]any{
		"ipbs": out,
	})
}

func GetByID(ctx context.Context, log *slog.Logger, w http.ResponseWriter, r *http.Request, id string, ip IPBProvider) {
	op := pkg + "GetByID"

	log = log.With(slog.String("op", op), slog.String("ipb_id", id))

	ipb, err := ip.Get(ctx, id)
	if err != nil {
		writeServiceError(log, w, err)
		return
	}

	writeData(log, w, http.StatusOK, dto.IPBToResponse(ipb))
}

// listIPBs resolves the query filter and runs the listing. created_by is a
// login; an unknown login yields an empty result rather than an error.
func listIPBs(
	ctx context.Context,
	log *slog.Logger,
	w http.ResponseWriter,
	r *http.Request,
	ip IPBProvider,
	up UserIDProvider,
	writeErr func(w http.ResponseWriter, status int, msg string),
) ([]*models.IPB, bool) {
	query := r.URL.Query()

	filter := models.IPBFilter{
		Status: models.Status(query.Get("status")),
		Limit:  parseutil.ParseLimit(query.Get("limit")),
	}

	if !filter.IsValid() {
		log.Warn("invalid status filter", slog.String("status", string(filter.Status)))
		writeErr(w, http.StatusBadRequest, models.ErrInvalidParams.Error())
		return nil, false
	}

	if login := query.Get("created_by"); login != "" {
		userID, err := up.UserIDByLogin(ctx, login)
		if err != nil {
			if errors.Is(err, models.ErrUserNotFound) {
				return []*models.IPB{}, true
			}
			log.Error("failed to resolve created_by", slog.String("error", err.Error()))
			writeErr(w, http.StatusInternalServerError, models.ErrInternal.Error())
			return nil, false
		}
		filter.CreatedBy = userID
	}

	ipbs, err := ip.List(ctx, filter)
	if err != nil {
		if errors.Is(err, models.ErrInvalidParams) {
			writeErr(w, http.StatusBadRequest, models.ErrInvalidParams.Error())
			return nil, false
		}
		log.Error("failed to list ipbs", slog.String("error", err.Error()))
		writeErr(w, http.StatusInternalServerError, models.ErrInternal.Error())
		return nil, false
	}

	return ipbs, true
}
