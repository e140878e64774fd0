package ipb

import (
	"context"
	"fmt"
	"ipbtracker/internal/dto"
	"ipbtracker/internal/models"
	"ipbtracker/internal/spreadsheet"
	utils "ipbtracker/internal/utils/http_errors"
	"log/slog"
	"net/http"
	"strconv"
)

func Import(ctx context.Context, log *slog.Logger, w http.ResponseWriter, r *http.Request, id string, ii ItemImporter) {
	op := pkg + "Import"

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

	file, _, err := r.FormFile("file")
	if err != nil {
		log.Warn("workbook missing", slog.String("error", err.Error()))
		utils.WriteJSONError(w, http.StatusBadRequest, "file is required")
		return
	}
	defer file.Close()

	items, err := ii.ImportItems(ctx, requester, id, file)
	if err != nil {
		writeServiceError(log, w, err)
		return
	}

	writeData(log, w, http.StatusCreated, map[string]any{
		"imported": len(items),
		"items":    dto.ItemsToResponse(items),
	})
}

func Export(ctx context.Context, log *slog.Logger, w http.ResponseWriter, r *http.Request, id string, ie ItemExporter) {
	op := pkg + "Export"

	log = log.With(slog.String("op", op), slog.String("ipb_id", id))

	raw, name, err := ie.ExportItems(ctx, id)
	if err != nil {
		writeServiceError(log, w, err)
		return
	}

	w.Header().Set("Content-Type", spreadsheet.ContentType)
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=\"%s\"", name))
	w.Header().Set("Content-Length", strconv.Itoa(len(raw)))
	if _, err := w.Write(raw); err != nil {
		log.Error("failed to write workbook", slog.String("error", err.Error()))
	}
}
