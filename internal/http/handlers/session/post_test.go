package session

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"ipbtracker/internal/dto"
	"ipbtracker/internal/models"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

type mockSessionAdder struct {
	mock.Mock
}

func (m *mockSessionAdder) Login(ctx context.Context, login string, password string) (string, *models.User, error) {
	args := m.Called(ctx, login, password)
	user, _ := args.Get(1).(*models.User)
	return args.String(0), user, args.Error(2)
}

func TestAdd_Success(t *testing.T) {
	t.Parallel()

	req := httptest.NewRequest(http.MethodPost, "/api/auth", strings.NewReader(`{"login": "kebun", "pswd": "password123"}`))
	w := httptest.NewRecorder()

	mockAdder := new(mockSessionAdder)
	mockAdder.On("Login", mock.Anything, "kebun", "password123").
		Return("tok-1", &models.User{ID: "u1", Login: "kebun", Role: models.RoleKebun}, nil)

	Add(req.Context(), slog.New(slog.NewTextHandler(io.Discard, nil)), w, req, mockAdder)

	resp := w.Result()
	defer resp.Body.Close()

	assert.Equal(t, http.StatusOK, resp.StatusCode)

	var parsed map[string]dto.SessionResponse
	assert.NoError(t, json.NewDecoder(resp.Body).Decode(&parsed))
	assert.Equal(t, dto.SessionResponse{Token: "tok-1", Login: "kebun", Role: "KEBUN"}, parsed["response"])

	mockAdder.AssertExpectations(t)
}

func TestAdd_InvalidBody(t *testing.T) {
	t.Parallel()

	req := httptest.NewRequest(http.MethodPost, "/api/auth", strings.NewReader(`{`))
	w := httptest.NewRecorder()

	Add(req.Context(), slog.New(slog.NewTextHandler(io.Discard, nil)), w, req, new(mockSessionAdder))

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestAdd_BadCredentials(t *testing.T) {
	t.Parallel()

	for _, loginErr := range []error{models.ErrUserNotFound, models.ErrInvalidCredentials} {
		req := httptest.NewRequest(http.MethodPost, "/api/auth", strings.NewReader(`{"login": "kebun", "pswd": "nope"}`))
		w := httptest.NewRecorder()

		mockAdder := new(mockSessionAdder)
		mockAdder.On("Login", mock.Anything, "kebun", "nope").Return("", nil, loginErr)

		Add(req.Context(), slog.New(slog.NewTextHandler(io.Discard, nil)), w, req, mockAdder)

		assert.Equal(t, http.StatusUnauthorized, w.Code)
	}
}

func TestAdd_InternalError(t *testing.T) {
	t.Parallel()

	req := httptest.NewRequest(http.MethodPost, "/api/auth", strings.NewReader(`{"login": "kebun", "pswd": "password123"}`))
	w := httptest.NewRecorder()

	mockAdder := new(mockSessionAdder)
	mockAdder.On("Login", mock.Anything, "kebun", "password123").Return("", nil, errors.New("redis down"))

	Add(req.Context(), slog.New(slog.NewTextHandler(io.Discard, nil)), w, req, mockAdder)

	assert.Equal(t, http.StatusInternalServerError, w.Code)
}
