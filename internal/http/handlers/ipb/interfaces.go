package ipb

import (
	"context"
	"io"
	"ipbtracker/internal/models"
)

const pkg = "ipbHandler/"

type IPBCreator interface {
	Create(ctx context.Context, actor *models.User, in models.IPBCreate) (*models.IPB, error)
}

type IPBProvider interface {
	Get(ctx context.Context, id string) (*models.IPB, error)
	List(ctx context.Context, filter models.IPBFilter) ([]*models.IPB, error)
}

type IPBUpdater interface {
	Update(ctx context.Context, actor *models.User, id string, in models.IPBUpdate) (*models.IPB, error)
}

type IPBDeleter interface {
	Delete(ctx context.Context, actor *models.User, id string) error
}

type ItemImporter interface {
	ImportItems(ctx context.Context, actor *models.User, id string, workbook io.Reader) ([]models.Item, error)
}

type ItemExporter interface {
	ExportItems(ctx context.Context, id string) ([]byte, string, error)
}

type AttachmentProvider interface {
	Attachment(ctx context.Context, id string, slot models.Slot) (io.ReadCloser, string, error)
}

type UserIDProvider interface {
	UserIDByLogin(ctx context.Context, login string) (string, error)
}
