package advancementsession

import (
	"context"
	"encoding/json"
	"time"

	redis "github.com/redis/go-redis/v9"

	"github.com/KirkDiggler/rpg-companion/internal/errors"
	"github.com/KirkDiggler/rpg-companion/internal/pkg/clock"
	redisclient "github.com/KirkDiggler/rpg-companion/internal/redis"
)

const (
	// Key pattern: advancement_session:{id}
	sessionKeyPrefix = "advancement_session:"
	// DefaultTTL is used when CreateInput leaves TTL unset
	DefaultTTL = 2 * time.Hour

	// Error messages
	errStateNil       = "state cannot be nil"
	errIDEmpty        = "session ID cannot be empty"
	errSessionExpired = "session has already expired"
	errNotFound       = "advancement session not found"
)

// Config holds the configuration for the Redis repository
type Config struct {
	Client redisclient.Client
	Clock  clock.Clock
}

// Validate ensures all required dependencies are provided
func (c *Config) Validate() error {
	if c.Client == nil {
		return errors.InvalidArgument("redis client is required")
	}
	if c.Clock == nil {
		return errors.InvalidArgument("clock is required")
	}
	return nil
}

type redisRepository struct {
	client redisclient.Client
	clock  clock.Clock
}

// NewRedisRepository creates a new Redis repository for advancement sessions
func NewRedisRepository(cfg *Config) (Repository, error) {
	if cfg == nil {
		return nil, errors.InvalidArgument("config is required")
	}
	if err := cfg.Validate(); err != nil {
		return nil, errors.Wrap(err, "invalid config")
	}

	return &redisRepository{
		client: cfg.Client,
		clock:  cfg.Clock,
	}, nil
}

// Ensure redisRepository implements Repository
var _ Repository = (*redisRepository)(nil)

// Create stores a new session with the configured TTL
func (r *redisRepository) Create(ctx context.Context, input CreateInput) (*CreateOutput, error) {
	if input.State == nil {
		return nil, errors.InvalidArgument(errStateNil)
	}
	if input.State.ID == "" {
		return nil, errors.InvalidArgument(errIDEmpty)
	}

	now := r.clock.Now()
	ttl := input.TTL
	if ttl == 0 {
		ttl = DefaultTTL
	}

	state := *input.State
	state.CreatedAt = now
	state.ExpiresAt = now.Add(ttl)

	stateJSON, err := json.Marshal(&state)
	if err != nil {
		return nil, errors.Wrapf(err, "failed to marshal session")
	}

	key := r.buildKey(state.ID)
	created, err := r.client.SetNX(ctx, key, stateJSON, ttl).Result()
	if err != nil {
		return nil, errors.Wrapf(err, "failed to store session in Redis")
	}
	if !created {
		return nil, errors.AlreadyExistsf("advancement session %s already exists", state.ID)
	}

	return &CreateOutput{
		State: &state,
	}, nil
}

// Get retrieves a session by ID
func (r *redisRepository) Get(ctx context.Context, input GetInput) (*GetOutput, error) {
	if input.ID == "" {
		return nil, errors.InvalidArgument(errIDEmpty)
	}

	key := r.buildKey(input.ID)

	stateJSON, err := r.client.Get(ctx, key).Result()
	if err != nil {
		if err == redis.Nil {
			return nil, errors.NotFound(errNotFound).WithMeta("session_id", input.ID)
		}
		return nil, errors.Wrapf(err, "failed to get session from Redis")
	}

	var state State
	if err := json.Unmarshal([]byte(stateJSON), &state); err != nil {
		return nil, errors.Wrapf(err, "failed to unmarshal session")
	}

	// the manual clock in tests can run ahead of redis expiry
	if r.clock.Now().After(state.ExpiresAt) {
		_ = r.client.Del(ctx, key)
		return nil, errors.NotFound("advancement session has expired").WithMeta("session_id", input.ID)
	}

	return &GetOutput{
		State: &state,
	}, nil
}

// Update replaces an existing session with its remaining TTL
func (r *redisRepository) Update(ctx context.Context, state *State) error {
	if state == nil {
		return errors.InvalidArgument(errStateNil)
	}
	if state.ID == "" {
		return errors.InvalidArgument(errIDEmpty)
	}

	now := r.clock.Now()
	if now.After(state.ExpiresAt) {
		return errors.FailedPrecondition(errSessionExpired)
	}
	remainingTTL := state.ExpiresAt.Sub(now)

	stateJSON, err := json.Marshal(state)
	if err != nil {
		return errors.Wrapf(err, "failed to marshal session")
	}

	updated, err := r.client.SetXX(ctx, r.buildKey(state.ID), stateJSON, remainingTTL).Result()
	if err != nil {
		return errors.Wrapf(err, "failed to update session in Redis")
	}
	if !updated {
		return errors.NotFound(errNotFound).WithMeta("session_id", state.ID)
	}

	return nil
}

// Delete removes a session
func (r *redisRepository) Delete(ctx context.Context, input DeleteInput) (*DeleteOutput, error) {
	if input.ID == "" {
		return nil, errors.InvalidArgument(errIDEmpty)
	}

	removed, err := r.client.Del(ctx, r.buildKey(input.ID)).Result()
	if err != nil {
		return nil, errors.Wrapf(err, "failed to delete session from Redis")
	}

	return &DeleteOutput{
		Deleted: removed > 0,
	}, nil
}

// buildKey creates the Redis key for a session
func (r *redisRepository) buildKey(id string) string {
	return sessionKeyPrefix + id
}
