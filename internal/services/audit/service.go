package auditservice

import (
	"context"
	"fmt"
	"ipbtracker/internal/models"
	"ipbtracker/internal/workflow"
	"log/slog"
	"time"

	uuid "github.com/satori/go.uuid"
)

const pkg = "auditService/"

const recordTimeout = 3 * time.Second

type AuditService struct {
	log  *slog.Logger
	repo EntryRepository
}

func New(log *slog.Logger, repo EntryRepository) *AuditService {
	return &AuditService{
		log:  log,
		repo: repo,
	}
}

// Record appends an entry to the audit log. It never fails the caller: the
// write runs detached from request cancellation and errors are only logged.
func (a *AuditService) Record(ctx context.Context, actorID string, action models.AuditAction, details string) {
	op := pkg + "Record"

	log := a.log.With(slog.String("op", op))

	ctx, cancel := context.WithTimeout(context.WithoutCancel(ctx), recordTimeout)
	defer cancel()

	entry := models.AuditEntry{
		ID:        uuid.NewV4().String(),
		UserID:    actorID,
		Action:    action,
		Details:   details,
		Timestamp: time.Now(),
	}

	if err := a.repo.AddEntry(ctx, entry); err != nil {
		log.Error("failed to write audit entry",
			slog.String("action", string(action)),
			slog.String("user_id", actorID),
			slog.String("error", err.Error()))
		return
	}

	log.Debug("audit entry written", slog.String("action", string(action)), slog.String("user_id", actorID))
}

func (a *AuditService) List(ctx context.Context, requester *models.User, filter models.AuditFilter) ([]*models.AuditEntry, error) {
	op := pkg + "List"

	log := a.log.With(slog.String("op", op))

	if !workflow.CanPerform(requester.Role, workflow.OpReadAudit) {
		log.Warn("user is not allowed to read audit log", slog.String("user_id", requester.ID))
		return nil, models.ErrForbidden
	}

	entries, err := a.repo.ListEntries(ctx, filter)
	if err != nil {
		log.Error("failed to list audit entries", slog.String("error", err.Error()))
		return nil, fmt.Errorf("%s: %w", op, models.ErrInternal)
	}

	return entries, nil
}
