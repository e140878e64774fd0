package cacheipbrepo

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"ipbtracker/internal/models"
	cacherepo "ipbtracker/internal/repositories/cache"
	"time"

	uuid "github.com/satori/go.uuid"
)

const pkg = "cacheIPBRepo/"

const listKey = "ipbs:list"

type repository struct {
	cache  cacherepo.Cache
	ipbTTL time.Duration
}

func New(cache cacherepo.Cache, ipbTTL time.Duration) *repository {
	return &repository{
		cache:  cache,
		ipbTTL: ipbTTL,
	}
}

func ipbKey(id string) string {
	return "ipb:" + id
}

// generationKey holds the token Invalidate rotates for key. Writes of data
// read under an older token are dropped.
func generationKey(key string) string {
	return key + ":gen"
}

// generationTTL keeps a token alive longer than any entry written under it.
func (r *repository) generationTTL() time.Duration {
	if r.ipbTTL <= 0 {
		return 0
	}
	return 2 * r.ipbTTL
}

// IPB returns the cached record, or nil without error on a miss. The
// generation must be taken before the caller reads the database and handed
// back to SetIPB.
func (r *repository) IPB(ctx context.Context, id string) (*models.IPB, string, error) {
	op := pkg + "IPB"

	generation, err := r.cache.Get(ctx, generationKey(ipbKey(id))).Result()
	if err != nil {
		return nil, "", fmt.Errorf("%s: %w", op, err)
	}

	raw, err := r.cache.Get(ctx, ipbKey(id)).Result()
	if err != nil {
		return nil, "", fmt.Errorf("%s: %w", op, err)
	}

	if raw == "" {
		return nil, generation, nil
	}

	var ipb models.IPB
	if err := json.Unmarshal([]byte(raw), &ipb); err != nil {
		return nil, "", fmt.Errorf("%s: %w", op, err)
	}

	return &ipb, generation, nil
}

// SetIPB caches ipb unless the record was invalidated after generation was read.
func (r *repository) SetIPB(ctx context.Context, ipb *models.IPB, generation string) error {
	op := pkg + "SetIPB"

	raw, err := json.Marshal(ipb)
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	key := ipbKey(ipb.ID)
	return r.cache.SetIfEqual(ctx, key, string(raw), r.ipbTTL, generationKey(key), generation).Err()
}

// List returns the cached unfiltered listing, or nil without error on a miss,
// along with the generation to hand back to SetList.
func (r *repository) List(ctx context.Context) ([]*models.IPB, string, error) {
	op := pkg + "List"

	generation, err := r.cache.Get(ctx, generationKey(listKey)).Result()
	if err != nil {
		return nil, "", fmt.Errorf("%s: %w", op, err)
	}

	raw, err := r.cache.Get(ctx, listKey).Result()
	if err != nil {
		return nil, "", fmt.Errorf("%s: %w", op, err)
	}

	if raw == "" {
		return nil, generation, nil
	}

	ipbs := make([]*models.IPB, 0)
	if err := json.Unmarshal([]byte(raw), &ipbs); err != nil {
		return nil, "", fmt.Errorf("%s: %w", op, err)
	}

	return ipbs, generation, nil
}

func (r *repository) SetList(ctx context.Context, ipbs []*models.IPB, generation string) error {
	op := pkg + "SetList"

	raw, err := json.Marshal(ipbs)
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	return r.cache.SetIfEqual(ctx, listKey, string(raw), r.ipbTTL, generationKey(listKey), generation).Err()
}

// Invalidate rotates the generation of the listing and the given records,
// then drops them. Generation keys are never deleted, so a reader that
// started before the call cannot cache what it read.
func (r *repository) Invalidate(ctx context.Context, ids ...string) error {
	op := pkg + "Invalidate"

	keys := make([]string, 0, len(ids)+1)
	keys = append(keys, listKey)

	for _, id := range ids {
		keys = append(keys, ipbKey(id))
	}

	generation := uuid.NewV4().String()

	var errs []error
	for _, key := range keys {
		if err := r.cache.Set(ctx, generationKey(key), generation, r.generationTTL()).Err(); err != nil {
			errs = append(errs, err)
		}
	}

	if err := r.cache.Del(ctx, keys...).Err(); err != nil {
		errs = append(errs, err)
	}

	if len(errs) > 0 {
		return fmt.Errorf("%s: %w", op, errors.Join(errs...))
	}

	return nil
}
