package audit

import (
	"context"
	"ipbtracker/internal/models"
)

const pkg = "auditHandler/"

type AuditLister interface {
	List(ctx context.Context, requester *models.User, filter models.AuditFilter) ([]*models.AuditEntry, error)
}
