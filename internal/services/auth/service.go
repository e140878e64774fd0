package authservice

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"ipbtracker/internal/models"
	"ipbtracker/internal/validator"
	"log/slog"

	uuid "github.com/satori/go.uuid"
	"golang.org/x/crypto/bcrypt"
)

const pkg = "authService/"

type AuthService struct {
	log           *slog.Logger
	userAdder     UserAdder
	userProvider  UserProvider
	sessionStorer SessionStorer
	adminToken    string
}

func New(
	log *slog.Logger,
	userAdder UserAdder,
	userProvider UserProvider,
	sessionStorer SessionStorer,
	adminToken string,
) *AuthService {
	return &AuthService{
		log:           log,
		userAdder:     userAdder,
		userProvider:  userProvider,
		sessionStorer: sessionStorer,
		adminToken:    adminToken,
	}
}

func (a *AuthService) Register(ctx context.Context, login string, password string, role models.Role, token string) (string, error) {
	op := pkg + "Register"

	log := a.log.With(slog.String("op", op))

	log.Debug("attempting to register user")

	if a.adminToken == "" || token != a.adminToken {
		log.Warn("invalid admin token")
		return "", models.ErrForbidden
	}

	if !validator.IsValidLogin(login) || !validator.IsValidPassword(password) {
		log.Warn("invalid login or password format")
		return "", models.ErrInvalidParams
	}

	if !role.IsValid() {
		log.Warn("invalid role", slog.String("role", string(role)))
		return "", models.ErrInvalidParams
	}

	passHash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		log.Error("failed to generate password hash", slog.String("error", err.Error()))
		return "", models.ErrInternal
	}

	user := models.User{
		ID:       uuid.NewV4().String(),
		Login:    login,
		PassHash: passHash,
		Role:     role,
	}

	err = a.userAdder.AddUser(ctx, user)
	if err != nil {
		var uce *models.UniqueConstraintError
		if errors.Is(err, models.ErrUserExists) || errors.As(err, &uce) {
			log.Warn("user already exists", slog.String("login", user.Login))
			return "", models.ErrUserExists
		}

		log.Error("failed to add user", slog.String("error", err.Error()))
		return "", models.ErrInternal
	}

	log.Info("user registered", slog.String("login", user.Login), slog.String("role", string(role)))

	return user.Login, nil
}

// Login checks the credentials and opens a session. The returned user has
// no password hash.
func (a *AuthService) Login(ctx context.Context, login string, password string) (string, *models.User, error) {
	op := pkg + "Login"

	log := a.log.With(
		slog.String("op", op),
	)

	log.Debug("attempting to login user")

	user, err := a.userProvider.UserByLogin(ctx, login)
	if err != nil {
		if errors.Is(err, models.ErrUserNotFound) {
			log.Info("user not found", slog.String("error", models.ErrUserNotFound.Error()))
			return "", nil, fmt.Errorf("%s: %w", op, models.ErrUserNotFound)
		}

		log.Error("failed to get user", slog.String("error", err.Error()))
		return "", nil, fmt.Errorf("%s: %w", op, err)
	}

	if err := bcrypt.CompareHashAndPassword(user.PassHash, []byte(password)); err != nil {
		log.Info("invalid credentials", slog.String("error", err.Error()))
		return "", nil, fmt.Errorf("%s: %w", op, models.ErrInvalidCredentials)
	}

	token := uuid.NewV4().String()

	user.PassHash = nil

	userJSON, err := json.Marshal(user)
	if err != nil {
		log.Error("failed to marshal user", slog.String("error", err.Error()))
		return "", nil, fmt.Errorf("%s: %w", op, err)
	}

	err = a.sessionStorer.SaveSession(ctx, token, string(userJSON))
	if err != nil {
		log.Error("failed to store token", slog.String("error", err.Error()))
		return "", nil, fmt.Errorf("%s: %w", op, models.ErrInternal)
	}

	log.Debug("user logged in successfully", slog.String("login", user.Login))

	return token, user, nil
}

func (a *AuthService) UserByToken(ctx context.Context, token string) (*models.User, error) {
	op := pkg + "UserByToken"

	log := a.log.With(
		slog.String("op", op),
	)

	log.Debug("attempting to get user by token")

	userJSON, err := a.sessionStorer.GetUserByToken(ctx, token)
	if err != nil {
		if errors.Is(err, models.ErrSessionNotFound) {
			log.Warn("session not found")
			return nil, models.ErrUnauthorized
		}
		log.Error("failed to get user by token", slog.String("error", err.Error()))
		return nil, models.ErrInternal
	}

	var session models.User

	err = json.Unmarshal([]byte(userJSON), &session)
	if err != nil {
		log.Error("failed to unmarshal user from json", slog.String("error", err.Error()))
		return nil, models.ErrInternal
	}

	// The stored row decides the role; the session only names the user.
	user, err := a.userProvider.UserByID(ctx, session.ID)
	if err != nil {
		if errors.Is(err, models.ErrUserNotFound) {
			log.Warn("session refers to a removed user", slog.String("user_id", session.ID))
			if err := a.sessionStorer.DeleteSession(ctx, token); err != nil && !errors.Is(err, models.ErrSessionNotFound) {
				log.Error("failed to revoke session", slog.String("error", err.Error()))
			}
			return nil, models.ErrUnauthorized
		}
		log.Error("failed to load session user", slog.String("error", err.Error()))
		return nil, models.ErrInternal
	}

	user.PassHash = nil

	log.Debug("user was founded successfully", slog.String("user_id", user.ID), slog.String("role", string(user.Role)))

	return user, nil
}

func (a *AuthService) Logout(ctx context.Context, token string) error {
	op := pkg + "Logout"

	log := a.log.With(slog.String("op", op))

	log.Debug("attempting to logout user")

	err := a.sessionStorer.DeleteSession(ctx, token)
	if err != nil {
		if errors.Is(err, models.ErrSessionNotFound) {
			log.Warn("session not found")

			return models.ErrSessionNotFound
		}
		log.Error("failed to delete session", slog.String("error", err.Error()))
		return fmt.Errorf("%s: %w", op, models.ErrInternal)
	}

	log.Debug("user logged out successfully")

	return nil
}
