package ipb

import (
	"context"
	"encoding/json"
	"ipbtracker/internal/dto"
	"ipbtracker/internal/models"
	utils "ipbtracker/internal/utils/http_errors"
	"log/slog"
	"net/http"
)

func Create(ctx context.Context, log *slog.Logger, w http.ResponseWriter, r *http.Request, ic IPBCreator) {
	op := pkg + "Create"

	log = log.With(slog.String("op", op))

	requester, ok := requesterFrom(r)
	if !ok {
		log.Error("failed to get user from context")
		utils.WriteJSONError(w, http.StatusUnauthorized, models.ErrUnauthorized.Error())
		return
	}

	if err := r.ParseMultipartForm(maxFormMemory); err != nil {
		log.Warn("failed to parse multipart form", slog.String("error", err.Error()))
		utils.WriteJSONError(w, http.StatusBadRequest, "failed to parse multipart form")
		return
	}
	defer r.MultipartForm.RemoveAll()

	in := models.IPBCreate{
		Title: r.FormValue("title"),
	}

	if raw := r.FormValue("items"); raw != "" {
		var items []dto.ItemRequest
		if err := json.Unmarshal([]byte(raw), &items); err != nil {
			log.Warn("invalid items json", slog.String("error", err.Error()))
			utils.WriteJSONError(w, http.StatusBadRequest, "invalid items json")
			return
		}
		in.Items = dto.ItemsFromRequest(items)
	}

	uploads, closeUploads, err := formUploads(r)
	if err != nil {
		log.Warn("failed to read attachments", slog.String("error", err.Error()))
		utils.WriteJSONError(w, http.StatusBadRequest, "failed upload error")
		return
	}
	defer closeUploads()

	in.Uploads = uploads

	created, err := ic.Create(ctx, requester, in)
	if err != nil {
		writeServiceError(log, w, err)
		return
	}

	writeData(log, w, http.StatusCreated, dto.IPBToResponse(created))
}
