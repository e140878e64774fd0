package middleware

import (
	"context"
	"ipbtracker/internal/models"
	"time"
)

const pkg = "middleware/"

type SessionStorer interface {
	UserByToken(ctx context.Context, token string) (*models.User, error)
}

type RequestObserver interface {
	ObserveRequest(route, method string, code int, elapsed time.Duration)
}
