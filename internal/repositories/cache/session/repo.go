package cachesessionrepo

import (
	"context"
	"ipbtracker/internal/models"
	cacherepo "ipbtracker/internal/repositories/cache"
	"time"
)

type repository struct {
	cache      cacherepo.Cache
	sessionTTL time.Duration
}

func New(cache cacherepo.Cache, sessionTTL time.Duration) *repository {
	return &repository{
		cache:      cache,
		sessionTTL: sessionTTL,
	}
}

func sessionKey(token string) string {
	return "session:" + token
}

func (r *repository) SaveSession(ctx context.Context, token string, userJSON string) error {
	return r.cache.Set(ctx, sessionKey(token), userJSON, r.sessionTTL).Err()
}

func (r *repository) DeleteSession(ctx context.Context, token string) error {
	deleted, err := r.cache.Del(ctx, sessionKey(token)).Result()
	if err != nil {
		return err
	}

	if deleted == 0 {
		return models.ErrSessionNotFound
	}

	return nil
}

// GetUserByToken returns the stored session and pushes its expiry forward, so
// a session only lapses after sessionTTL without requests.
func (r *repository) GetUserByToken(ctx context.Context, token string) (string, error) {
	if token == "" {
		return "", models.ErrSessionNotFound
	}

	userJSON, err := r.cache.GetEx(ctx, sessionKey(token), r.sessionTTL).Result()
	if err != nil {
		return "", err
	}

	if userJSON == "" {
		return "", models.ErrSessionNotFound
	}

	return userJSON, nil
}
