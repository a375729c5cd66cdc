package repository

import (
	"context"
	"encoding/json"
	"errors"
	"sync"

	"github.com/redis/go-redis/v9"

	"github.com/kpiexport/gateway/internal/models"
)

const preferenceKeyPrefix = "kpiexport:prefs:"

// PreferenceRepository persists per-device wizard preferences.
type PreferenceRepository interface {
	Get(ctx context.Context, deviceID string) (models.Preferences, error)
	Put(ctx context.Context, deviceID string, prefs models.Preferences) error
}

// RedisPreferenceRepository stores preferences as JSON values in redis.
type RedisPreferenceRepository struct {
	client *redis.Client
}

// NewRedisPreferenceRepository constructs a redis-backed store.
func NewRedisPreferenceRepository(client *redis.Client) *RedisPreferenceRepository {
	return &RedisPreferenceRepository{client: client}
}

// Get loads preferences for a device; unknown devices get zero values.
func (r *RedisPreferenceRepository) Get(ctx context.Context, deviceID string) (models.Preferences, error) {
	var prefs models.Preferences

	raw, err := r.client.Get(ctx, preferenceKeyPrefix+deviceID).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return prefs, nil
		}
		return prefs, err
	}

	if err := json.Unmarshal(raw, &prefs); err != nil {
		return models.Preferences{}, err
	}
	return prefs, nil
}

// Put stores preferences for a device.
func (r *RedisPreferenceRepository) Put(ctx context.Context, deviceID string, prefs models.Preferences) error {
	raw, err := json.Marshal(prefs)
	if err != nil {
		return err
	}
	return r.client.Set(ctx, preferenceKeyPrefix+deviceID, raw, 0).Err()
}

// MemoryPreferenceRepository is the fallback store used when redis is
// disabled; preferences then live as long as the process.
type MemoryPreferenceRepository struct {
	mu    sync.RWMutex
	prefs map[string]models.Preferences
}

// NewMemoryPreferenceRepository constructs an empty in-memory store.
func NewMemoryPreferenceRepository() *MemoryPreferenceRepository {
	return &MemoryPreferenceRepository{prefs: make(map[string]models.Preferences)}
}

// Get loads preferences for a device; unknown devices get zero values.
func (r *MemoryPreferenceRepository) Get(_ context.Context, deviceID string) (models.Preferences, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.prefs[deviceID], nil
}

// Put stores preferences for a device.
func (r *MemoryPreferenceRepository) Put(_ context.Context, deviceID string, prefs models.Preferences) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.prefs[deviceID] = prefs
	return nil
}
