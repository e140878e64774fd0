package auditservice

import (
	"context"
	"ipbtracker/internal/models"
)

type EntryRepository interface {
	AddEntry(ctx context.Context, entry models.AuditEntry) error
	ListEntries(ctx context.Context, filter models.AuditFilter) ([]*models.AuditEntry, error)
}
