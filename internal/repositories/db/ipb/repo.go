package ipbrepo

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"ipbtracker/internal/entities"
	"ipbtracker/internal/models"
	"ipbtracker/internal/workflow"
	"time"

	"github.com/jmoiron/sqlx"
)

const pkg = "ipbRepo/"

const selectIPB = `SELECT
			i.id AS id,
			i.title AS title,
			i.status AS status,
			i.status_detail AS status_detail,
			i.doc_kebun AS doc_kebun,
			i.doc_teknis_1 AS doc_teknis_1,
			i.doc_teknis_2 AS doc_teknis_2,
			i.doc_ipb AS doc_ipb,
			i.text_ipb AS text_ipb,
			i.created_by AS created_by,
			u.login AS created_by_login,
			u.role AS created_by_role,
			i.created_at AS created_at,
			i.updated_at AS updated_at
		FROM ipbs i
		LEFT JOIN users u ON u.id = i.created_by`

type repository struct {
	db *sqlx.DB
}

func NewRepository(db *sqlx.DB) *repository {
	return &repository{db: db}
}

// CreateIPB inserts the record and its items in one transaction. The status
// detail is derived from the attachments here, whatever the caller set.
func (r *repository) CreateIPB(ctx context.Context, ipb *models.IPB) error {
	op := pkg + "CreateIPB"

	ipb.StatusDetail = workflow.ResolveAttachments(ipb.Attachments)

	tx, err := r.db.BeginTxx(ctx, &sql.TxOptions{})
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	defer func() {
		_ = tx.Rollback()
	}()

	_, err = tx.ExecContext(ctx,
		`INSERT INTO ipbs (id, title, status, status_detail, doc_kebun, doc_teknis_1, doc_teknis_2, doc_ipb, text_ipb, created_by, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)`,
		ipb.ID, ipb.Title, string(ipb.Status), ipb.StatusDetail,
		nullString(ipb.Attachments.Kebun), nullString(ipb.Attachments.Teknis1),
		nullString(ipb.Attachments.Teknis2), nullString(ipb.Attachments.IPB),
		nullString(ipb.TextIPB), ipb.CreatedByID, ipb.CreatedAt, ipb.UpdatedAt)
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	if err := insertItems(ctx, tx, ipb.ID, ipb.Items); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	return nil
}

func (r *repository) IPBByID(ctx context.Context, id string) (*models.IPB, error) {
	op := pkg + "IPBByID"

	raw := entities.IPB{}

	err := r.db.GetContext(ctx, &raw, selectIPB+`
		WHERE i.id = $1`, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("%s: %w", op, models.ErrIPBNotFound)
		}
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	items, err := r.items(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	ipb := toModel(raw)
	ipb.Items = items

	return ipb, nil
}

// ListIPBs returns records without their item lines, newest first.
func (r *repository) ListIPBs(ctx context.Context, filter models.IPBFilter) ([]*models.IPB, error) {
	op := pkg + "ListIPBs"

	rawIPBs := make([]entities.IPB, 0)

	query := selectIPB + `
		WHERE ($1 = '' OR i.status = $1)
		AND ($2 = '' OR i.created_by = $2)
		ORDER BY i.created_at DESC`

	args := []any{
		string(filter.Status),
		filter.CreatedBy,
	}

	if filter.Limit > 0 {
		args = append(args, filter.Limit)

		query += ` LIMIT $3`
	}

	err := r.db.SelectContext(ctx, &rawIPBs, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	ipbs := make([]*models.IPB, 0, len(rawIPBs))

	for _, raw := range rawIPBs {
		ipbs = append(ipbs, toModel(raw))
	}

	return ipbs, nil
}

// UpdateIPB locks the row, hands the current state to mutate and writes the
// result back. The status detail is recomputed from the mutated attachments
// before the write, so concurrent updates never persist a stale label.
func (r *repository) UpdateIPB(ctx context.Context, id string, mutate func(ipb *models.IPB) error) (*models.IPB, error) {
	op := pkg + "UpdateIPB"

	tx, err := r.db.BeginTxx(ctx, &sql.TxOptions{})
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	defer func() {
		_ = tx.Rollback()
	}()

	raw := entities.IPB{}

	err = tx.GetContext(ctx, &raw,
		`SELECT
			i.id AS id,
			i.title AS title,
			i.status AS status,
			i.status_detail AS status_detail,
			i.doc_kebun AS doc_kebun,
			i.doc_teknis_1 AS doc_teknis_1,
			i.doc_teknis_2 AS doc_teknis_2,
			i.doc_ipb AS doc_ipb,
			i.text_ipb AS text_ipb,
			i.created_by AS created_by,
			i.created_at AS created_at,
			i.updated_at AS updated_at
		FROM ipbs i
		WHERE i.id = $1
		FOR UPDATE`, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("%s: %w", op, models.ErrIPBNotFound)
		}
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	ipb := toModel(raw)

	if err := mutate(ipb); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	ipb.ID = raw.ID
	ipb.CreatedByID = raw.CreatedBy
	ipb.CreatedAt = raw.CreatedAt
	ipb.StatusDetail = workflow.ResolveAttachments(ipb.Attachments)
	ipb.UpdatedAt = time.Now()

	_, err = tx.ExecContext(ctx,
		`UPDATE ipbs SET
			title = $2,
			status = $3,
			status_detail = $4,
			doc_kebun = $5,
			doc_teknis_1 = $6,
			doc_teknis_2 = $7,
			doc_ipb = $8,
			text_ipb = $9,
			updated_at = $10
		WHERE id = $1`,
		ipb.ID, ipb.Title, string(ipb.Status), ipb.StatusDetail,
		nullString(ipb.Attachments.Kebun), nullString(ipb.Attachments.Teknis1),
		nullString(ipb.Attachments.Teknis2), nullString(ipb.Attachments.IPB),
		nullString(ipb.TextIPB), ipb.UpdatedAt)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	return ipb, nil
}

func (r *repository) DeleteIPB(ctx context.Context, id string) error {
	op := pkg + "DeleteIPB"

	res, err := r.db.ExecContext(ctx,
		`DELETE FROM ipbs WHERE id = $1`,
		id)
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	if affected == 0 {
		return fmt.Errorf("%s: %w", op, models.ErrIPBNotFound)
	}

	return nil
}

func (r *repository) AddItems(ctx context.Context, ipbID string, items []models.Item) error {
	op := pkg + "AddItems"

	tx, err := r.db.BeginTxx(ctx, &sql.TxOptions{})
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	defer func() {
		_ = tx.Rollback()
	}()

	var exists bool

	err = tx.GetContext(ctx, &exists, `SELECT EXISTS(SELECT 1 FROM ipbs WHERE id = $1)`, ipbID)
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	if !exists {
		return fmt.Errorf("%s: %w", op, models.ErrIPBNotFound)
	}

	if err := insertItems(ctx, tx, ipbID, items); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	return nil
}

func (r *repository) items(ctx context.Context, ipbID string) ([]models.Item, error) {
	op := pkg + "items"

	rawItems := make([]entities.Item, 0)

	err := r.db.SelectContext(ctx, &rawItems,
		`SELECT
			it.id AS id,
			it.ipb_id AS ipb_id,
			it.description AS description,
			it.quantity AS quantity,
			it.unit AS unit
		FROM ipb_items it
		WHERE it.ipb_id = $1
		ORDER BY it.seq ASC`,
		ipbID)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	items := make([]models.Item, 0, len(rawItems))

	for _, raw := range rawItems {
		items = append(items, models.Item{
			ID:          raw.ID,
			IPBID:       raw.IPBID,
			Description: raw.Description,
			Quantity:    raw.Quantity,
			Unit:        raw.Unit,
		})
	}

	return items, nil
}

func insertItems(ctx context.Context, tx *sqlx.Tx, ipbID string, items []models.Item) error {
	for _, item := range items {
		_, err := tx.ExecContext(ctx,
			`INSERT INTO ipb_items (id, ipb_id, description, quantity, unit) VALUES ($1, $2, $3, $4, $5)`,
			item.ID, ipbID, item.Description, item.Quantity, item.Unit)
		if err != nil {
			return err
		}
	}

	return nil
}

func toModel(raw entities.IPB) *models.IPB {
	return &models.IPB{
		ID:           raw.ID,
		Title:        raw.Title,
		Status:       models.Status(raw.Status),
		StatusDetail: raw.StatusDetail,
		Attachments: models.Attachments{
			Kebun:   raw.DocKebun.String,
			Teknis1: raw.DocTeknis1.String,
			Teknis2: raw.DocTeknis2.String,
			IPB:     raw.DocIPB.String,
		},
		TextIPB:        raw.TextIPB.String,
		CreatedByID:    raw.CreatedBy,
		CreatedByLogin: raw.CreatedByLogin.String,
		CreatedByRole:  models.Role(raw.CreatedByRole.String),
		Items:          make([]models.Item, 0),
		CreatedAt:      raw.CreatedAt,
		UpdatedAt:      raw.UpdatedAt,
	}
}

func nullString(s string) sql.NullString {
	return sql.NullString{String: s, Valid: s != ""}
}
