package ipb

import (
	"context"
	"ipbtracker/internal/dto"
	"ipbtracker/internal/models"
	utils "ipbtracker/internal/utils/http_errors"
	"log/slog"
	"net/http"
	"strconv"
)

func Update(ctx context.Context, log *slog.Logger, w http.ResponseWriter, r *http.Request, id string, iu IPBUpdater) {
	op := pkg + "Update"

	log = log.With(slog.String("op", op), slog.String("ipb_id", id))

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

	var in models.IPBUpdate

	if title, ok := formValue(r, "title"); ok {
		in.Title = &title
	}

	if status, ok := formValue(r, "status"); ok {
		s := models.Status(status)
		in.Status = &s
	}

	if text, ok := formValue(r, "textIPB"); ok {
		in.TextIPB = &text
	}

	in.Remove = make(map[models.Slot]bool)
	for _, slot := range models.Slots {
		raw, ok := formValue(r, slot.DeleteField())
		if !ok {
			continue
		}
		remove, err := strconv.ParseBool(raw)
		if err != nil {
			log.Warn("invalid delete flag", slog.String("field", slot.DeleteField()), slog.String("value", raw))
			utils.WriteJSONError(w, http.StatusBadRequest, models.ErrInvalidParams.Error())
			return
		}
		in.Remove[slot] = remove
	}

	uploads, closeUploads, err := formUploads(r)
	if err != nil {
		log.Warn("failed to read attachments", slog.String("error", err.Error()))
		utils.WriteJSONError(w, http.StatusBadRequest, "failed upload error")
		return
	}
	defer closeUploads()

	in.Uploads = uploads

	updated, err := iu.Update(ctx, requester, id, in)
	if err != nil {
		writeServiceError(log, w, err)
		return
	}

	writeData(log, w, http.StatusOK, dto.IPBToResponse(updated))
}
