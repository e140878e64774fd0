package ipb

import (
	"context"
	"fmt"
	"io"
	"ipbtracker/internal/models"
	"ipbtracker/internal/repositories/storage"
	"log/slog"
	"mime"
	"net/http"
	"path/filepath"
)

func Attachment(ctx context.Context, log *slog.Logger, w http.ResponseWriter, r *http.Request, id string, slot string, ap AttachmentProvider) {
	op := pkg + "Attachment"

	log = log.With(slog.String("op", op), slog.String("ipb_id", id), slog.String("slot", slot))

	file, locator, err := ap.Attachment(ctx, id, models.Slot(slot))
	if err != nil {
		writeServiceError(log, w, err)
		return
	}
	defer file.Close()

	name := storage.OriginalName(locator)

	contentType := mime.TypeByExtension(filepath.Ext(name))
	if contentType == "" {
		contentType = "application/octet-stream"
	}

	w.Header().Set("Content-Type", contentType)
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=\"%s\"", name))
	if _, err := io.Copy(w, file); err != nil {
		log.Error("failed to write file response", slog.String("error", err.Error()))
	}
}
