package store

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/redis/go-redis/v9"

	"debate-bot/internal/domain"
)

// DefaultKeyPrefix namespaces every key written by RedisStore.
const DefaultKeyPrefix = "debatebot:"

// RedisStore keeps each conversation as a JSON snapshot under its own key,
// plus a sorted set of ids scored by last activity for sweeps. Updates use
// WATCH/MULTI so a concurrent writer makes the loser fail with ErrConflict.
type RedisStore struct {
	client *redis.Client
	prefix string
}

var (
	_ domain.ConversationRepository = (*RedisStore)(nil)
	_ domain.ConversationLister     = (*RedisStore)(nil)
	_ domain.ConversationSweeper    = (*RedisStore)(nil)
)

// NewRedisStore wraps an existing client.
func NewRedisStore(client *redis.Client, prefix string) *RedisStore {
	if prefix == "" {
		prefix = DefaultKeyPrefix
	}
	return &RedisStore{client: client, prefix: prefix}
}

// OpenRedisStore parses a redis:// URL and connects.
func OpenRedisStore(url, prefix string) (*RedisStore, error) {
	opts, err := redis.ParseURL(url)
	if err != nil {
		return nil, fmt.Errorf("parse redis url: %w", err)
	}
	return NewRedisStore(redis.NewClient(opts), prefix), nil
}

// Close closes the client.
func (s *RedisStore) Close() error {
	return s.client.Close()
}

func (s *RedisStore) key(id string) string { return s.prefix + "conv:" + id }
func (s *RedisStore) activityKey() string  { return s.prefix + "conv:activity" }

func (s *RedisStore) Save(ctx context.Context, conv *domain.Conversation) error {
	const op = "redis.Save"
	next := conv.Version() + 1
	snap, data, err := encode(conv, next)
	if err != nil {
		return domain.RepositoryError(op, err)
	}
	_, err = s.client.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		s.write(ctx, pipe, snap, data)
		return nil
	})
	if err != nil {
		return domain.RepositoryError(op, err)
	}
	conv.SetVersion(next)
	return nil
}

func (s *RedisStore) write(ctx context.Context, pipe redis.Pipeliner, snap domain.ConversationSnapshot, data string) {
	pipe.Set(ctx, s.key(snap.ID), data, 0)
	pipe.ZAdd(ctx, s.activityKey(), redis.Z{Score: float64(snap.UpdatedAt.UnixMilli()), Member: snap.ID})
}

func (s *RedisStore) FindByID(ctx context.Context, id domain.ConversationID) (*domain.Conversation, error) {
	const op = "redis.FindByID"
	data, err := s.client.Get(ctx, s.key(id.String())).Result()
	if errors.Is(err, redis.Nil) {
		return nil, nil
	}
	if err != nil {
		return nil, domain.RepositoryError(op, err)
	}
	conv, err := decode(data)
	if err != nil {
		return nil, domain.RepositoryError(op, err)
	}
	return conv, nil
}

func (s *RedisStore) Update(ctx context.Context, conv *domain.Conversation) error {
	const op = "redis.Update"
	id := conv.ID().String()
	key := s.key(id)
	next := conv.Version() + 1
	snap, data, err := encode(conv, next)
	if err != nil {
		return domain.RepositoryError(op, err)
	}

	err = s.client.Watch(ctx, func(tx *redis.Tx) error {
		raw, err := tx.Get(ctx, key).Result()
		if errors.Is(err, redis.Nil) {
			return domain.NewDomainError(op, domain.ErrConversationNotFound, id)
		}
		if err != nil {
			return err
		}
		var stored struct {
			Version int64 `json:"version"`
		}
		if err := json.Unmarshal([]byte(raw), &stored); err != nil {
			return fmt.Errorf("unmarshal conversation: %w", err)
		}
		if stored.Version != conv.Version() {
			return domain.NewDomainError(op, domain.ErrConflict, id)
		}
		_, err = tx.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
			s.write(ctx, pipe, snap, data)
			return nil
		})
		return err
	}, key)

	switch {
	case err == nil:
		conv.SetVersion(next)
		return nil
	case errors.Is(err, domain.ErrConversationNotFound), errors.Is(err, domain.ErrConflict):
		return err
	case errors.Is(err, redis.TxFailedErr):
		return domain.NewDomainError(op, domain.ErrConflict, id)
	default:
		return domain.RepositoryError(op, err)
	}
}

func (s *RedisStore) Delete(ctx context.Context, id domain.ConversationID) (bool, error) {
	var del *redis.IntCmd
	_, err := s.client.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		del = pipe.Del(ctx, s.key(id.String()))
		pipe.ZRem(ctx, s.activityKey(), id.String())
		return nil
	})
	if err != nil {
		return false, domain.RepositoryError("redis.Delete", err)
	}
	return del.Val() > 0, nil
}

func (s *RedisStore) Count(ctx context.Context) (int, error) {
	n, err := s.client.ZCard(ctx, s.activityKey()).Result()
	if err != nil {
		return 0, domain.RepositoryError("redis.Count", err)
	}
	return int(n), nil
}

func (s *RedisStore) HealthCheck(ctx context.Context) bool {
	return s.client.Ping(ctx).Err() == nil
}

// ListIDs returns every stored id, least recently active first.
func (s *RedisStore) ListIDs(ctx context.Context) ([]domain.ConversationID, error) {
	raw, err := s.client.ZRange(ctx, s.activityKey(), 0, -1).Result()
	if err != nil {
		return nil, domain.RepositoryError("redis.ListIDs", err)
	}
	return parseIDs("redis.ListIDs", raw)
}

func (s *RedisStore) DeleteIdleSince(ctx context.Context, cutoff time.Time) ([]domain.ConversationID, error) {
	const op = "redis.DeleteIdleSince"
	raw, err := s.client.ZRangeByScore(ctx, s.activityKey(), &redis.ZRangeBy{
		Min: "-inf",
		Max: "(" + strconv.FormatInt(cutoff.UnixMilli(), 10),
	}).Result()
	if err != nil {
		return nil, domain.RepositoryError(op, err)
	}
	if len(raw) == 0 {
		return nil, nil
	}
	ids, err := parseIDs(op, raw)
	if err != nil {
		return nil, err
	}
	_, err = s.client.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		keys := make([]string, len(raw))
		members := make([]any, len(raw))
		for i, id := range raw {
			keys[i] = s.key(id)
			members[i] = id
		}
		pipe.Del(ctx, keys...)
		pipe.ZRem(ctx, s.activityKey(), members...)
		return nil
	})
	if err != nil {
		return nil, domain.RepositoryError(op, err)
	}
	return ids, nil
}

func parseIDs(op string, raw []string) ([]domain.ConversationID, error) {
	ids := make([]domain.ConversationID, 0, len(raw))
	for _, r := range raw {
		id, err := domain.ParseConversationID(r)
		if err != nil {
			return nil, domain.RepositoryError(op, err)
		}
		ids = append(ids, id)
	}
	return ids, nil
}
