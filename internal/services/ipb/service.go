package ipbservice

import (
	"context"
	"errors"
	"fmt"
	"io"
	"ipbtracker/internal/models"
	"ipbtracker/internal/spreadsheet"
	"ipbtracker/internal/workflow"
	"log/slog"
	"strings"
	"time"

	uuid "github.com/satori/go.uuid"
)

const pkg = "ipbService/"

type IPBService struct {
	log           *slog.Logger
	repo          IPBRepository
	cache         Cache
	blobs         BlobStore
	audit         AuditRecorder
	metrics       Metrics
	maxUploadSize int64
}

func New(
	log *slog.Logger,
	repo IPBRepository,
	cache Cache,
	blobs BlobStore,
	audit AuditRecorder,
	metrics Metrics,
	maxUploadSize int64,
) *IPBService {
	return &IPBService{
		log:           log,
		repo:          repo,
		cache:         cache,
		blobs:         blobs,
		audit:         audit,
		metrics:       metrics,
		maxUploadSize: maxUploadSize,
	}
}

func (s *IPBService) Create(ctx context.Context, actor *models.User, in models.IPBCreate) (*models.IPB, error) {
	op := pkg + "Create"

	log := s.log.With(slog.String("op", op), slog.String("user_id", actor.ID), slog.String("role", string(actor.Role)))

	log.Debug("attempting to create ipb")

	if !workflow.CanPerform(actor.Role, workflow.OpCreate) {
		log.Warn("role is not allowed to create ipb")
		return nil, models.ErrForbidden
	}

	title := strings.TrimSpace(in.Title)
	if title == "" {
		log.Warn("title is required")
		return nil, models.ErrInvalidParams
	}

	uploads := s.permittedUploads(log, actor.Role, in.Uploads)

	if err := s.checkSizes(uploads); err != nil {
		log.Warn("attachment rejected", slog.String("error", err.Error()))
		return nil, err
	}

	items := make([]models.Item, 0, len(in.Items))
	if len(in.Items) > 0 && workflow.CanWrite(actor.Role, workflow.FieldItems) {
		items = prepareItems(in.Items)
	}

	if !validItems(items) {
		log.Warn("item quantity out of range")
		return nil, models.ErrInvalidParams
	}

	stored, err := s.storeAll(ctx, log, uploads)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, models.ErrInternal)
	}

	now := time.Now()

	ipb := &models.IPB{
		ID:          uuid.NewV4().String(),
		Title:       title,
		Status:      models.StatusDraft,
		CreatedByID: actor.ID,
		Items:       items,
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	for slot, locator := range stored {
		ipb.Attachments.Set(slot, locator)
	}

	for i := range ipb.Items {
		ipb.Items[i].IPBID = ipb.ID
	}

	if err := s.repo.CreateIPB(ctx, ipb); err != nil {
		log.Error("failed to save ipb", slog.String("error", err.Error()))
		s.discard(ctx, log, stored)
		return nil, fmt.Errorf("%s: %w", op, models.ErrInternal)
	}

	ipb.CreatedByLogin = actor.Login
	ipb.CreatedByRole = actor.Role

	s.metrics.StatusDetailChanged("", ipb.StatusDetail)

	s.audit.Record(ctx, actor.ID, models.ActionCreateIPB, fmt.Sprintf("Created IPB ID: %s", ipb.ID))

	if err := s.cache.Invalidate(ctx); err != nil {
		log.Error("failed to invalidate ipb list cache", slog.String("error", err.Error()))
	}

	log.Debug("ipb created successfully", slog.String("ipb_id", ipb.ID), slog.String("status_detail", ipb.StatusDetail))

	return ipb, nil
}

func (s *IPBService) Get(ctx context.Context, id string) (*models.IPB, error) {
	op := pkg + "Get"

	log := s.log.With(slog.String("op", op), slog.String("ipb_id", id))

	cached, generation, cacheErr := s.cache.IPB(ctx, id)
	if cacheErr != nil {
		log.Warn("failed to read ipb from cache", slog.String("error", cacheErr.Error()))
	}
	if cached != nil {
		return cached, nil
	}

	ipb, err := s.repo.IPBByID(ctx, id)
	if err != nil {
		if errors.Is(err, models.ErrIPBNotFound) {
			log.Warn("ipb not found")
			return nil, models.ErrIPBNotFound
		}
		log.Error("failed to get ipb", slog.String("error", err.Error()))
		return nil, fmt.Errorf("%s: %w", op, models.ErrInternal)
	}

	// Without a generation there is nothing to guard the write with.
	if cacheErr == nil {
		if err := s.cache.SetIPB(ctx, ipb, generation); err != nil {
			log.Warn("failed to cache ipb", slog.String("error", err.Error()))
		}
	}

	return ipb, nil
}

func (s *IPBService) List(ctx context.Context, filter models.IPBFilter) ([]*models.IPB, error) {
	op := pkg + "List"

	log := s.log.With(slog.String("op", op))

	log.Debug("attempting to list ipbs",
		slog.String("status", string(filter.Status)),
		slog.String("created_by", filter.CreatedBy),
		slog.Int("limit", filter.Limit))

	if !filter.IsValid() {
		log.Warn("invalid filter")
		return nil, models.ErrInvalidParams
	}

	useCache := filter.IsEmpty()
	var generation string

	if useCache {
		cached, gen, err := s.cache.List(ctx)
		if err != nil {
			log.Warn("failed to read ipb list from cache", slog.String("error", err.Error()))
			useCache = false
		}
		if cached != nil {
			return cached, nil
		}
		generation = gen
	}

	ipbs, err := s.repo.ListIPBs(ctx, filter)
	if err != nil {
		log.Error("failed to list ipbs", slog.String("error", err.Error()))
		return nil, fmt.Errorf("%s: %w", op, models.ErrInternal)
	}

	if useCache {
		if err := s.cache.SetList(ctx, ipbs, generation); err != nil {
			log.Warn("failed to cache ipb list", slog.String("error", err.Error()))
		}
	}

	log.Debug("ipbs listed successfully", slog.Int("count", len(ipbs)))

	return ipbs, nil
}

// Update applies the fields the actor may write and silently drops the rest.
// New attachments are stored before the record is touched; if any upload
// fails nothing is persisted. Replaced and removed blobs are deleted only
// after the record update commits.
func (s *IPBService) Update(ctx context.Context, actor *models.User, id string, in models.IPBUpdate) (*models.IPB, error) {
	op := pkg + "Update"

	log := s.log.With(slog.String("op", op), slog.String("ipb_id", id), slog.String("user_id", actor.ID), slog.String("role", string(actor.Role)))

	log.Debug("attempting to update ipb")

	if !workflow.CanPerform(actor.Role, workflow.OpUpdate) {
		log.Warn("role is not allowed to update ipb")
		return nil, models.ErrForbidden
	}

	in = s.permittedUpdate(log, actor.Role, in)

	if in.Title != nil && strings.TrimSpace(*in.Title) == "" {
		log.Warn("empty title")
		return nil, models.ErrInvalidParams
	}

	if in.Status != nil && !in.Status.IsValid() {
		log.Warn("invalid status", slog.String("status", string(*in.Status)))
		return nil, models.ErrInvalidParams
	}

	for slot := range in.Uploads {
		if in.Remove[slot] {
			log.Warn("attachment both uploaded and removed", slog.String("slot", string(slot)))
			return nil, models.ErrInvalidParams
		}
	}

	if err := s.checkSizes(in.Uploads); err != nil {
		log.Warn("attachment rejected", slog.String("error", err.Error()))
		return nil, err
	}

	stored, err := s.storeAll(ctx, log, in.Uploads)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, models.ErrInternal)
	}

	var (
		stale        []string
		changes      []string
		detailBefore string
	)

	updated, err := s.repo.UpdateIPB(ctx, id, func(ipb *models.IPB) error {
		detailBefore = ipb.StatusDetail

		if in.Title != nil {
			ipb.Title = strings.TrimSpace(*in.Title)
			changes = append(changes, string(workflow.FieldTitle))
		}

		if in.Status != nil {
			ipb.Status = *in.Status
			changes = append(changes, string(workflow.FieldStatus))
		}

		if in.TextIPB != nil {
			ipb.TextIPB = *in.TextIPB
			changes = append(changes, string(workflow.FieldTextIPB))
		}

		for _, slot := range models.Slots {
			previous := ipb.Attachments.Get(slot)

			if locator, ok := stored[slot]; ok {
				ipb.Attachments.Set(slot, locator)
			} else if in.Remove[slot] && previous != "" {
				ipb.Attachments.Set(slot, "")
			} else {
				continue
			}

			if previous != "" {
				stale = append(stale, previous)
			}
			changes = append(changes, string(slot))
		}

		return nil
	})
	if err != nil {
		s.discard(ctx, log, stored)

		if errors.Is(err, models.ErrIPBNotFound) {
			log.Warn("ipb not found")
			return nil, models.ErrIPBNotFound
		}
		log.Error("failed to update ipb", slog.String("error", err.Error()))
		return nil, fmt.Errorf("%s: %w", op, models.ErrInternal)
	}

	for _, locator := range stale {
		s.deleteBlob(ctx, log, locator)
	}

	if detailBefore != updated.StatusDetail {
		s.metrics.StatusDetailChanged(detailBefore, updated.StatusDetail)
		log.Info("status detail changed", slog.String("from", detailBefore), slog.String("to", updated.StatusDetail))
	}

	s.audit.Record(ctx, actor.ID, models.ActionUpdateIPB,
		fmt.Sprintf("Updated IPB ID: %s. Changes: %s", id, strings.Join(changes, ", ")))

	if err := s.cache.Invalidate(ctx, id); err != nil {
		log.Error("failed to invalidate ipb cache", slog.String("error", err.Error()))
	}

	full, err := s.repo.IPBByID(ctx, id)
	if err != nil {
		log.Warn("failed to reload updated ipb", slog.String("error", err.Error()))
		return updated, nil
	}

	log.Debug("ipb updated successfully", slog.String("status_detail", full.StatusDetail))

	return full, nil
}

// Delete removes the record and then every attached blob. Blob failures are
// logged and do not fail the call.
func (s *IPBService) Delete(ctx context.Context, actor *models.User, id string) error {
	op := pkg + "Delete"

	log := s.log.With(slog.String("op", op), slog.String("ipb_id", id), slog.String("user_id", actor.ID))

	log.Debug("attempting to delete ipb")

	if !workflow.CanPerform(actor.Role, workflow.OpDelete) {
		log.Warn("role is not allowed to delete ipb", slog.String("role", string(actor.Role)))
		return models.ErrForbidden
	}

	ipb, err := s.repo.IPBByID(ctx, id)
	if err != nil {
		if errors.Is(err, models.ErrIPBNotFound) {
			log.Warn("ipb not found")
			return models.ErrIPBNotFound
		}
		log.Error("failed to get ipb", slog.String("error", err.Error()))
		return fmt.Errorf("%s: %w", op, models.ErrInternal)
	}

	if err := s.repo.DeleteIPB(ctx, id); err != nil {
		if errors.Is(err, models.ErrIPBNotFound) {
			log.Warn("ipb already deleted")
			return models.ErrIPBNotFound
		}
		log.Error("failed to delete ipb", slog.String("error", err.Error()))
		return fmt.Errorf("%s: %w", op, models.ErrInternal)
	}

	for _, locator := range ipb.Attachments.Locators() {
		s.deleteBlob(ctx, log, locator)
	}

	if err := s.cache.Invalidate(ctx, id); err != nil {
		log.Error("failed to invalidate ipb cache", slog.String("error", err.Error()))
	}

	s.audit.Record(ctx, actor.ID, models.ActionDeleteIPB, fmt.Sprintf("Deleted IPB ID: %s", id))

	log.Debug("ipb deleted successfully")

	return nil
}

func (s *IPBService) ImportItems(ctx context.Context, actor *models.User, id string, workbook io.Reader) ([]models.Item, error) {
	op := pkg + "ImportItems"

	log := s.log.With(slog.String("op", op), slog.String("ipb_id", id), slog.String("user_id", actor.ID))

	if !workflow.CanPerform(actor.Role, workflow.OpImportItems) {
		log.Warn("role is not allowed to import items", slog.String("role", string(actor.Role)))
		return nil, models.ErrForbidden
	}

	parsed, err := spreadsheet.ParseItems(workbook)
	if err != nil {
		log.Warn("failed to parse workbook", slog.String("error", err.Error()))
		return nil, models.ErrInvalidParams
	}

	items := prepareItems(parsed)
	for i := range items {
		items[i].IPBID = id
	}

	if err := s.repo.AddItems(ctx, id, items); err != nil {
		if errors.Is(err, models.ErrIPBNotFound) {
			log.Warn("ipb not found")
			return nil, models.ErrIPBNotFound
		}
		log.Error("failed to add items", slog.String("error", err.Error()))
		return nil, fmt.Errorf("%s: %w", op, models.ErrInternal)
	}

	if err := s.cache.Invalidate(ctx, id); err != nil {
		log.Error("failed to invalidate ipb cache", slog.String("error", err.Error()))
	}

	s.audit.Record(ctx, actor.ID, models.ActionImportItems, fmt.Sprintf("Imported %d items into IPB ID: %s", len(items), id))

	log.Debug("items imported successfully", slog.Int("count", len(items)))

	return items, nil
}

// ExportItems returns the item lines of the record as an xlsx workbook
// together with a download file name.
func (s *IPBService) ExportItems(ctx context.Context, id string) ([]byte, string, error) {
	op := pkg + "ExportItems"

	log := s.log.With(slog.String("op", op), slog.String("ipb_id", id))

	ipb, err := s.Get(ctx, id)
	if err != nil {
		return nil, "", err
	}

	raw, err := spreadsheet.WriteItems(ipb.Items)
	if err != nil {
		log.Error("failed to render workbook", slog.String("error", err.Error()))
		return nil, "", fmt.Errorf("%s: %w", op, models.ErrInternal)
	}

	return raw, fmt.Sprintf("IPB-%s.xlsx", ipb.ID), nil
}

// Attachment opens the blob stored in slot. The caller closes the reader.
func (s *IPBService) Attachment(ctx context.Context, id string, slot models.Slot) (io.ReadCloser, string, error) {
	op := pkg + "Attachment"

	log := s.log.With(slog.String("op", op), slog.String("ipb_id", id), slog.String("slot", string(slot)))

	if !slot.IsValid() {
		log.Warn("unknown attachment slot")
		return nil, "", models.ErrInvalidParams
	}

	ipb, err := s.Get(ctx, id)
	if err != nil {
		return nil, "", err
	}

	locator := ipb.Attachments.Get(slot)
	if locator == "" {
		return nil, "", models.ErrAttachmentNotFound
	}

	rc, err := s.blobs.Fetch(ctx, locator)
	if err != nil {
		if errors.Is(err, models.ErrBlobNotFound) {
			log.Warn("attachment blob is missing", slog.String("locator", locator))
			return nil, "", models.ErrAttachmentNotFound
		}
		log.Error("failed to fetch attachment", slog.String("error", err.Error()))
		return nil, "", fmt.Errorf("%s: %w", op, models.ErrInternal)
	}

	return rc, locator, nil
}

func (s *IPBService) permittedUploads(log *slog.Logger, role models.Role, uploads map[models.Slot]*models.Upload) map[models.Slot]*models.Upload {
	permitted := make(map[models.Slot]*models.Upload, len(uploads))

	for slot, upload := range uploads {
		if upload == nil || !slot.IsValid() {
			continue
		}
		if !workflow.CanWrite(role, workflow.SlotField(slot)) {
			log.Warn("dropping attachment not writable by role", slog.String("slot", string(slot)))
			continue
		}
		permitted[slot] = upload
	}

	return permitted
}

func (s *IPBService) permittedUpdate(log *slog.Logger, role models.Role, in models.IPBUpdate) models.IPBUpdate {
	out := models.IPBUpdate{
		Uploads: s.permittedUploads(log, role, in.Uploads),
		Remove:  make(map[models.Slot]bool, len(in.Remove)),
	}

	if in.Title != nil && workflow.CanWrite(role, workflow.FieldTitle) {
		out.Title = in.Title
	}

	if in.Status != nil {
		if workflow.CanWrite(role, workflow.FieldStatus) {
			out.Status = in.Status
		} else {
			log.Warn("dropping status not writable by role")
		}
	}

	if in.TextIPB != nil {
		if workflow.CanWrite(role, workflow.FieldTextIPB) {
			out.TextIPB = in.TextIPB
		} else {
			log.Warn("dropping textIPB not writable by role")
		}
	}

	for slot, remove := range in.Remove {
		if !remove || !slot.IsValid() {
			continue
		}
		if !workflow.CanWrite(role, workflow.SlotField(slot)) {
			log.Warn("dropping attachment removal not allowed for role", slog.String("slot", string(slot)))
			continue
		}
		out.Remove[slot] = true
	}

	return out
}

func (s *IPBService) checkSizes(uploads map[models.Slot]*models.Upload) error {
	if s.maxUploadSize <= 0 {
		return nil
	}

	for slot, upload := range uploads {
		if upload.Size > s.maxUploadSize {
			return fmt.Errorf("%w: %s exceeds %d bytes", models.ErrInvalidParams, slot, s.maxUploadSize)
		}
	}

	return nil
}

// storeAll uploads every attachment or none: on the first failure the blobs
// already written by this call are removed again.
func (s *IPBService) storeAll(ctx context.Context, log *slog.Logger, uploads map[models.Slot]*models.Upload) (map[models.Slot]string, error) {
	stored := make(map[models.Slot]string, len(uploads))

	for _, slot := range models.Slots {
		upload, ok := uploads[slot]
		if !ok {
			continue
		}

		locator, err := s.blobs.Store(ctx, upload.Name, upload.ContentType, upload.Size, upload.Content)
		if err != nil {
			log.Error("failed to store attachment", slog.String("slot", string(slot)), slog.String("error", err.Error()))
			s.discard(ctx, log, stored)
			return nil, err
		}

		stored[slot] = locator
	}

	return stored, nil
}

func (s *IPBService) discard(ctx context.Context, log *slog.Logger, stored map[models.Slot]string) {
	for _, locator := range stored {
		s.deleteBlob(ctx, log, locator)
	}
}

func (s *IPBService) deleteBlob(ctx context.Context, log *slog.Logger, locator string) {
	err := s.blobs.Delete(ctx, locator)
	if err == nil {
		return
	}

	if errors.Is(err, models.ErrBlobNotFound) {
		log.Warn("blob already missing", slog.String("locator", locator))
		return
	}

	s.metrics.BlobDeleteFailed()

	log.Error("failed to delete blob", slog.String("locator", locator), slog.String("error", err.Error()))
}

func validItems(items []models.Item) bool {
	for _, item := range items {
		if !item.IsValid() {
			return false
		}
	}
	return true
}

func prepareItems(in []models.Item) []models.Item {
	items := make([]models.Item, 0, len(in))

	for _, item := range in {
		item.ID = uuid.NewV4().String()
		item.Normalize()
		items = append(items, item)
	}

	return items
}
