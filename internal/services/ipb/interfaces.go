package ipbservice

import (
	"context"
	"io"
	"ipbtracker/internal/models"
)

type IPBRepository interface {
	CreateIPB(ctx context.Context, ipb *models.IPB) error
	IPBByID(ctx context.Context, id string) (*models.IPB, error)
	ListIPBs(ctx context.Context, filter models.IPBFilter) ([]*models.IPB, error)
	UpdateIPB(ctx context.Context, id string, mutate func(ipb *models.IPB) error) (*models.IPB, error)
	DeleteIPB(ctx context.Context, id string) error
	AddItems(ctx context.Context, ipbID string, items []models.Item) error
}

// Cache reads return a generation alongside the data. Handing it back to the
// matching setter drops the write if an Invalidate landed in between.
type Cache interface {
	IPB(ctx context.Context, id string) (*models.IPB, string, error)
	SetIPB(ctx context.Context, ipb *models.IPB, generation string) error
	List(ctx context.Context) ([]*models.IPB, string, error)
	SetList(ctx context.Context, ipbs []*models.IPB, generation string) error
	Invalidate(ctx context.Context, ids ...string) error
}

type BlobStore interface {
	Store(ctx context.Context, name string, contentType string, size int64, r io.Reader) (string, error)
	Fetch(ctx context.Context, locator string) (io.ReadCloser, error)
	Delete(ctx context.Context, locator string) error
}

type AuditRecorder interface {
	Record(ctx context.Context, actorID string, action models.AuditAction, details string)
}

type Metrics interface {
	StatusDetailChanged(from, to string)
	BlobDeleteFailed()
}
