package characters

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sort"
	"time"

	"github.com/redis/go-redis/v9"
	"golang.org/x/sync/errgroup"

	"github.com/KirkDiggler/spellbook/internal/domain/character"
	"github.com/KirkDiggler/spellbook/internal/domain/spells"
	"github.com/KirkDiggler/spellbook/internal/domain/stats"
	dnderr "github.com/KirkDiggler/spellbook/internal/errors"
)

// Data is the character record without its stats and spells, which are
// stored under their own keys
type Data struct {
	ID        string           `json:"id"`
	Name      string           `json:"name"`
	Side      character.Side   `json:"side"`
	Flags     []character.Flag `json:"flags,omitempty"`
	UpdatedAt time.Time        `json:"updated_at"`
}

// redisRepo implements the Repository interface using Redis
type redisRepo struct {
	client       redis.UniversalClient
	timeProvider TimeProvider
}

// RedisRepoConfig holds configuration for the Redis repository
type RedisRepoConfig struct {
	Client       redis.UniversalClient
	TimeProvider TimeProvider
}

// NewRedisRepository creates a new Redis-backed character repository
func NewRedisRepository(cfg *RedisRepoConfig) Repository {
	if cfg == nil {
		panic("RedisRepoConfig cannot be nil")
	}
	if cfg.Client == nil {
		panic("Redis client cannot be nil")
	}
	timeProvider := cfg.TimeProvider
	if timeProvider == nil {
		timeProvider = systemTime{}
	}
	return &redisRepo{
		client:       cfg.Client,
		timeProvider: timeProvider,
	}
}

// NewRedis creates a new Redis-backed character repository
func NewRedis(client redis.UniversalClient) Repository {
	return NewRedisRepository(&RedisRepoConfig{Client: client})
}

func (r *redisRepo) key(id string) string {
	return fmt.Sprintf("character:%s", id)
}

func (r *redisRepo) statsKey(id string) string {
	return fmt.Sprintf("character:%s:stats", id)
}

func (r *redisRepo) spellsKey(id string) string {
	return fmt.Sprintf("character:%s:spells", id)
}

const indexKey = "characters"

// Save writes the record, stats and spells in one pipeline
func (r *redisRepo) Save(ctx context.Context, state *character.State) error {
	if state == nil {
		return dnderr.InvalidArgument("character cannot be nil")
	}
	if state.ID == "" {
		return dnderr.InvalidArgument("character ID is required")
	}

	data, err := json.Marshal(Data{
		ID:        state.ID,
		Name:      state.Name,
		Side:      state.Side,
		Flags:     state.Flags,
		UpdatedAt: r.timeProvider.Now(),
	})
	if err != nil {
		return dnderr.Wrap(err, "failed to marshal character data")
	}
	statsData, err := json.Marshal(state.Stats)
	if err != nil {
		return dnderr.Wrap(err, "failed to marshal character stats")
	}
	spellsData, err := json.Marshal(state.Spells)
	if err != nil {
		return dnderr.Wrap(err, "failed to marshal character spells")
	}

	pipe := r.client.Pipeline()
	pipe.Set(ctx, r.key(state.ID), string(data), 0)
	pipe.Set(ctx, r.statsKey(state.ID), string(statsData), 0)
	pipe.Set(ctx, r.spellsKey(state.ID), string(spellsData), 0)
	pipe.SAdd(ctx, indexKey, state.ID)
	if _, err := pipe.Exec(ctx); err != nil {
		return dnderr.WrapWithCode(err, dnderr.CodeInternal, "failed to save character to Redis").
			WithMeta("character_id", state.ID)
	}
	return nil
}

// Get fetches the record, stats and spells concurrently
func (r *redisRepo) Get(ctx context.Context, id string) (*character.State, error) {
	if id == "" {
		return nil, dnderr.InvalidArgument("character ID is required")
	}

	var (
		data       Data
		bookState  stats.State
		spellState spells.State
	)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		return r.getJSON(gctx, r.key(id), id, &data)
	})
	g.Go(func() error {
		return r.getJSON(gctx, r.statsKey(id), id, &bookState)
	})
	g.Go(func() error {
		return r.getJSON(gctx, r.spellsKey(id), id, &spellState)
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}

	return &character.State{
		ID:     data.ID,
		Name:   data.Name,
		Side:   data.Side,
		Flags:  data.Flags,
		Stats:  bookState,
		Spells: spellState,
	}, nil
}

func (r *redisRepo) getJSON(ctx context.Context, key, id string, out any) error {
	raw, err := r.client.Get(ctx, key).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return dnderr.NotFoundf("character with ID '%s' not found", id).
				WithMeta("character_id", id)
		}
		return dnderr.WrapWithCode(err, dnderr.CodeInternal, "failed to get character from Redis").
			WithMeta("key", key)
	}
	if err := json.Unmarshal(raw, out); err != nil {
		return dnderr.WrapWithCode(err, dnderr.CodeInternal, "failed to unmarshal character").
			WithMeta("key", key)
	}
	return nil
}

// Delete removes all of a character's keys
func (r *redisRepo) Delete(ctx context.Context, id string) error {
	if id == "" {
		return dnderr.InvalidArgument("character ID is required")
	}

	exists, err := r.client.Exists(ctx, r.key(id)).Result()
	if err != nil {
		return dnderr.WrapWithCode(err, dnderr.CodeInternal, "failed to check character existence")
	}
	if exists == 0 {
		return dnderr.NotFoundf("character with ID '%s' not found", id).
			WithMeta("character_id", id)
	}

	pipe := r.client.Pipeline()
	pipe.Del(ctx, r.key(id), r.statsKey(id), r.spellsKey(id))
	pipe.SRem(ctx, indexKey, id)
	if _, err := pipe.Exec(ctx); err != nil {
		return dnderr.WrapWithCode(err, dnderr.CodeInternal, "failed to delete character from Redis").
			WithMeta("character_id", id)
	}
	return nil
}

// List loads every indexed character
func (r *redisRepo) List(ctx context.Context) ([]*character.State, error) {
	ids, err := r.client.SMembers(ctx, indexKey).Result()
	if err != nil {
		return nil, dnderr.WrapWithCode(err, dnderr.CodeInternal, "failed to list characters")
	}
	sort.Strings(ids)

	result := make([]*character.State, len(ids))
	g, gctx := errgroup.WithContext(ctx)
	for i, id := range ids {
		i, id := i, id
		g.Go(func() error {
			state, err := r.Get(gctx, id)
			if err != nil {
				return dnderr.Wrapf(err, "failed to get character %s", id)
			}
			result[i] = state
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return result, nil
}
