package session

import (
	"context"
	"errors"
	"io"
	"ipbtracker/internal/models"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

type mockSessionDeleter struct {
	mock.Mock
}

func (m *mockSessionDeleter) Logout(ctx context.Context, token string) error {
	args := m.Called(ctx, token)
	return args.Error(0)
}

func TestDelete(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name      string
		token     string
		logoutErr error
		code      int
		body      string
	}{
		{
			name:  "active session",
			token: "token123",
			code:  http.StatusOK,
			body:  `{"response":{"token123":true}}`,
		},
		{
			name:      "unknown session is idempotent",
			token:     "expired",
			logoutErr: models.ErrSessionNotFound,
			code:      http.StatusOK,
			body:      `{"response":{"expired":true}}`,
		},
		{
			name:      "session store down",
			token:     "token456",
			logoutErr: errors.New("redis: connection refused"),
			code:      http.StatusInternalServerError,
			body:      `{"error":"internal server error"}`,
		},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			ctx := context.Background()
			logger := slog.New(slog.NewTextHandler(io.Discard, nil))

			deleter := new(mockSessionDeleter)
			deleter.On("Logout", ctx, tt.token).Return(tt.logoutErr)

			w := httptest.NewRecorder()
			req := httptest.NewRequest(http.MethodDelete, "/api/auth/"+tt.token, nil)

			Delete(ctx, logger, w, req, tt.token, deleter)

			assert.Equal(t, tt.code, w.Code)
			assert.JSONEq(t, tt.body, w.Body.String())
			deleter.AssertExpectations(t)
		})
	}
}
