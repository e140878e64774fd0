package ipb

import (
	"context"
	"io"
	"ipbtracker/internal/models"

	"github.com/stretchr/testify/mock"
)

type mockIPBService struct {
	mock.Mock
}

func (m *mockIPBService) Create(ctx context.Context, actor *models.User, in models.IPBCreate) (*models.IPB, error) {
	args := m.Called(ctx, actor, in)
	ipb, _ := args.Get(0).(*models.IPB)
	return ipb, args.Error(1)
}

func (m *mockIPBService) Get(ctx context.Context, id string) (*models.IPB, error) {
	args := m.Called(ctx, id)
	ipb, _ := args.Get(0).(*models.IPB)
	return ipb, args.Error(1)
}

func (m *mockIPBService) List(ctx context.Context, filter models.IPBFilter) ([]*models.IPB, error) {
	args := m.Called(ctx, filter)
	ipbs, _ := args.Get(0).([]*models.IPB)
	return ipbs, args.Error(1)
}

func (m *mockIPBService) Update(ctx context.Context, actor *models.User, id string, in models.IPBUpdate) (*models.IPB, error) {
	args := m.Called(ctx, actor, id, in)
	ipb, _ := args.Get(0).(*models.IPB)
	return ipb, args.Error(1)
}

func (m *mockIPBService) Delete(ctx context.Context, actor *models.User, id string) error {
	return m.Called(ctx, actor, id).Error(0)
}

func (m *mockIPBService) ImportItems(ctx context.Context, actor *models.User, id string, workbook io.Reader) ([]models.Item, error) {
	args := m.Called(ctx, actor, id, workbook)
	items, _ := args.Get(0).([]models.Item)
	return items, args.Error(1)
}

func (m *mockIPBService) ExportItems(ctx context.Context, id string) ([]byte, string, error) {
	args := m.Called(ctx, id)
	raw, _ := args.Get(0).([]byte)
	return raw, args.String(1), args.Error(2)
}

func (m *mockIPBService) Attachment(ctx context.Context, id string, slot models.Slot) (io.ReadCloser, string, error) {
	args := m.Called(ctx, id, slot)
	rc, _ := args.Get(0).(io.ReadCloser)
	return rc, args.String(1), args.Error(2)
}

type mockUserIDProvider struct {
	mock.Mock
}

func (m *mockUserIDProvider) UserIDByLogin(ctx context.Context, login string) (string, error) {
	args := m.Called(ctx, login)
	return args.String(0), args.Error(1)
}
