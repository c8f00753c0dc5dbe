package repository

import (
	"context"
	"strconv"
	"time"

	"library-backend/internal/domains/user/model"
	"library-backend/pkg/cache"
	"library-backend/pkg/logger"
)

const (
	userCacheKeyPrefix = "user:"
	userCacheTTL       = 15 * time.Minute
)

// cachedRepository is a read-through cache over GetByID, which runs on every
// authenticated request. Users are never updated, so entries are never
// invalidated and only expire.
type cachedRepository struct {
	next  RepositoryInterface
	cache cache.Cache
}

// cachedUser carries the fields the JSON view of model.User hides.
type cachedUser struct {
	Key           int64     `json:"key"`
	Username      string    `json:"username"`
	PasswordHash  string    `json:"password_hash"`
	FavoriteGenre *string   `json:"favorite_genre"`
	CreatedAt     time.Time `json:"created_at"`
}

// NewCachedRepository wraps next with a cache for identity lookups.
func NewCachedRepository(next RepositoryInterface, c cache.Cache) RepositoryInterface {
	return &cachedRepository{next: next, cache: c}
}

func (r *cachedRepository) Create(ctx context.Context, u *model.User) (*model.User, error) {
	return r.next.Create(ctx, u)
}

func (r *cachedRepository) GetByUsername(ctx context.Context, username string) (*model.User, error) {
	return r.next.GetByUsername(ctx, username)
}

func (r *cachedRepository) GetByID(ctx context.Context, key int64) (*model.User, error) {
	cacheKey := userCacheKeyPrefix + strconv.FormatInt(key, 10)

	var entry cachedUser
	found, err := r.cache.Get(ctx, cacheKey, &entry)
	if err != nil {
		// cache failures are not fatal, fall through to the store
		logger.Warn("user cache read failed", map[string]interface{}{
			"key":   cacheKey,
			"error": err.Error(),
		})
	}
	if err == nil && found {
		return &model.User{
			Key:           entry.Key,
			Username:      entry.Username,
			PasswordHash:  entry.PasswordHash,
			FavoriteGenre: entry.FavoriteGenre,
			CreatedAt:     entry.CreatedAt,
		}, nil
	}

	u, err := r.next.GetByID(ctx, key)
	if err != nil {
		return nil, err
	}

	entry = cachedUser{
		Key:           u.Key,
		Username:      u.Username,
		PasswordHash:  u.PasswordHash,
		FavoriteGenre: u.FavoriteGenre,
		CreatedAt:     u.CreatedAt,
	}
	if err := r.cache.Set(ctx, cacheKey, entry, userCacheTTL); err != nil {
		logger.Warn("user cache write failed", map[string]interface{}{
			"key":   cacheKey,
			"error": err.Error(),
		})
	}

	return u, nil
}
