package auditrepo

import (
	"context"
	"fmt"
	"ipbtracker/internal/entities"
	"ipbtracker/internal/models"

	"github.com/jmoiron/sqlx"
)

const pkg = "auditRepo/"

type repository struct {
	db *sqlx.DB
}

func NewRepository(db *sqlx.DB) *repository {
	return &repository{db: db}
}

func (r *repository) AddEntry(ctx context.Context, entry models.AuditEntry) error {
	op := pkg + "AddEntry"

	_, err := r.db.ExecContext(ctx,
		`INSERT INTO audit_logs (id, user_id, action, details, timestamp) VALUES ($1, $2, $3, $4, $5)`,
		entry.ID, entry.UserID, string(entry.Action), entry.Details, entry.Timestamp)
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	return nil
}

func (r *repository) ListEntries(ctx context.Context, filter models.AuditFilter) ([]*models.AuditEntry, error) {
	op := pkg + "ListEntries"

	rawEntries := make([]entities.AuditEntry, 0)

	query := `SELECT
			a.id AS id,
			a.user_id AS user_id,
			a.action AS action,
			a.details AS details,
			a.timestamp AS timestamp
		FROM audit_logs a
		WHERE ($1 = '' OR a.action = $1)
		ORDER BY a.timestamp DESC`

	args := []any{string(filter.Action)}

	if filter.Limit > 0 {
		args = append(args, filter.Limit)

		query += ` LIMIT $2`
	}

	if err := r.db.SelectContext(ctx, &rawEntries, query, args...); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	entries := make([]*models.AuditEntry, 0, len(rawEntries))

	for _, raw := range rawEntries {
		entries = append(entries, &models.AuditEntry{
			ID:        raw.ID,
			UserID:    raw.UserID,
			Action:    models.AuditAction(raw.Action),
			Details:   raw.Details,
			Timestamp: raw.Timestamp,
		})
	}

	return entries, nil
}
