package ipb

import (
	"encoding/json"
	"errors"
	"ipbtracker/internal/models"
	utils "ipbtracker/internal/utils/http_errors"
	"log/slog"
	"mime/multipart"
	"net/http"
)

// maxFormMemory is the part of a multipart body kept in memory; the rest is
// spooled to temporary files by net/http.
const maxFormMemory = 32 << 20

func requesterFrom(r *http.Request) (*models.User, bool) {
	user, ok := r.Context().Value(models.UserContextKey).(*models.User)
	return user, ok && user != nil
}

func writeServiceError(log *slog.Logger, w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, models.ErrInvalidParams), errors.Is(err, models.ErrEmptySheet):
		log.Warn("invalid request", slog.String("error", err.Error()))
		utils.WriteJSONError(w, http.StatusBadRequest, models.ErrInvalidParams.Error())
	case errors.Is(err, models.ErrForbidden):
		log.Warn("access denied", slog.String("error", err.Error()))
		utils.WriteJSONError(w, http.StatusForbidden, models.ErrForbidden.Error())
	case errors.Is(err, models.ErrIPBNotFound):
		utils.WriteJSONError(w, http.StatusNotFound, models.ErrIPBNotFound.Error())
	case errors.Is(err, models.ErrAttachmentNotFound):
		utils.WriteJSONError(w, http.StatusNotFound, models.ErrAttachmentNotFound.Error())
	default:
		log.Error("request failed", slog.String("error", err.Error()))
		utils.WriteJSONError(w, http.StatusInternalServerError, models.ErrInternal.Error())
	}
}

func writeData(log *slog.Logger, w http.ResponseWriter, status int, data any) {
	response := map[string]any{
		"data": data,
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(response); err != nil {
		log.Error("failed to write response", slog.String("error", err.Error()))
	}
}

// formUploads collects the attachment files present in the parsed form. The
// returned func closes them and must be called once the service is done.
func formUploads(r *http.Request) (map[models.Slot]*models.Upload, func(), error) {
	uploads := make(map[models.Slot]*models.Upload)
	files := make([]multipart.File, 0, len(models.Slots))

	closeAll := func() {
		for _, f := range files {
			f.Close()
		}
	}

	for _, slot := range models.Slots {
		file, header, err := r.FormFile(string(slot))
		if err != nil {
			if errors.Is(err, http.ErrMissingFile) {
				continue
			}
			closeAll()
			return nil, func() {}, err
		}

		files = append(files, file)

		contentType := header.Header.Get("Content-Type")
		if contentType == "" {
			contentType = "application/octet-stream"
		}

		uploads[slot] = &models.Upload{
			Name:        header.Filename,
			ContentType: contentType,
			Size:        header.Size,
			Content:     file,
		}
	}

	return uploads, closeAll, nil
}

// formValue reports a field only when the client sent it, so that an absent
// field and an empty one can be told apart.
func formValue(r *http.Request, name string) (string, bool) {
	if r.MultipartForm != nil {
		if values, ok := r.MultipartForm.Value[name]; ok && len(values) > 0 {
			return values[0], true
		}
	}
	if values, ok := r.PostForm[name]; ok && len(values) > 0 {
		return values[0], true
	}
	return "", false
}
