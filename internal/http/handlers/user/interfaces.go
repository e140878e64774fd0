package user

import (
	"context"
	"ipbtracker/internal/models"
)

const pkg = "userHandler/"

type UserAdder interface {
	Register(ctx context.Context, login string, password string, role models.Role, token string) (string, error)
}
