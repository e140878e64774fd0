package session

import (
	"context"
	"ipbtracker/internal/models"
)

const pkg = "sessionHandler/"

type SessionAdder interface {
	Login(ctx context.Context, login string, password string) (string, *models.User, error)
}

type SessionDeleter interface {
	Logout(ctx context.Context, token string) error
}
