package server

import (
	"context"
	"io"
	"ipbtracker/internal/models"
	"net/http"
	"time"
)

type AuthService interface {
	Register(ctx context.Context, login string, password string, role models.Role, token string) (string, error)
	Login(ctx context.Context, login string, password string) (string, *models.User, error)
	UserByToken(ctx context.Context, token string) (*models.User, error)
	Logout(ctx context.Context, token string) error
}

type IPBService interface {
	Create(ctx context.Context, actor *models.User, in models.IPBCreate) (*models.IPB, error)
	Get(ctx context.Context, id string) (*models.IPB, error)
	List(ctx context.Context, filter models.IPBFilter) ([]*models.IPB, error)
	Update(ctx context.Context, actor *models.User, id string, in models.IPBUpdate) (*models.IPB, error)
	Delete(ctx context.Context, actor *models.User, id string) error
	ImportItems(ctx context.Context, actor *models.User, id string, workbook io.Reader) ([]models.Item, error)
	ExportItems(ctx context.Context, id string) ([]byte, string, error)
	Attachment(ctx context.Context, id string, slot models.Slot) (io.ReadCloser, string, error)
}

type UserService interface {
	UserIDByLogin(ctx context.Context, login string) (string, error)
}

type AuditService interface {
	List(ctx context.Context, requester *models.User, filter models.AuditFilter) ([]*models.AuditEntry, error)
}

type Metrics interface {
	ObserveRequest(route, method string, code int, elapsed time.Duration)
	Handler() http.Handler
}
