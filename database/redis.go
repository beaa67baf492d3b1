package database

import (
	"context"
	"errors"

	"github.com/redis/go-redis/v9"
	"github.com/unoduel/server/consts"
	"github.com/unoduel/server/game"
)

// RedisStore keeps game records as hashes and hands as plain strings,
// expiring both together. Move writes go through WATCH plus a version
// field check so two near-simultaneous operations on one game can
// never both commit.
type RedisStore struct {
	client *redis.Client
}

func NewRedisStore(client *redis.Client) *RedisStore {
	return &RedisStore{client: client}
}

func (s *RedisStore) CreateGame(ctx context.Context, g *game.Game, hands *game.Hands) error {
	g.Version = 1
	fields, err := encodeGame(g)
	if err != nil {
		return err
	}
	ttl := recordTTL(g)
	_, err = s.client.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		pipe.HSet(ctx, gameKey(g.ID), fields)
		pipe.Expire(ctx, gameKey(g.ID), ttl)
		for seat, hand := range hands {
			pipe.Set(ctx, handKey(g.ID, seat), joinIDs(hand), ttl)
		}
		return nil
	})
	return err
}

func (s *RedisStore) LoadGame(ctx context.Context, id string) (*game.Game, error) {
	fields, err := s.client.HGetAll(ctx, gameKey(id)).Result()
	if err != nil {
		return nil, err
	}
	return decodeGame(fields)
}

func (s *RedisStore) LoadHand(ctx context.Context, id string, seat int) (game.Hand, error) {
	raw, err := s.client.Get(ctx, handKey(id, seat)).Result()
	if errors.Is(err, redis.Nil) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	ids, err := splitIDs(raw)
	return game.Hand(ids), err
}

// SaveMove commits one operation's full read-modify-write: the game
// hash and both hand keys in a single transaction, gated on the
// version the caller loaded. On success g.Version is bumped to the
// committed value.
func (s *RedisStore) SaveMove(ctx context.Context, g *game.Game, hands *game.Hands) error {
	key := gameKey(g.ID)
	err := s.client.Watch(ctx, func(tx *redis.Tx) error {
		stored, err := tx.HGet(ctx, key, "v").Int64()
		if errors.Is(err, redis.Nil) {
			return consts.ErrGameNotFound
		}
		if err != nil {
			return err
		}
		if stored != g.Version {
			return consts.ErrConcurrencyConflict
		}
		next := *g
		next.Version = g.Version + 1
		fields, err := encodeGame(&next)
		if err != nil {
			return err
		}
		ttl := recordTTL(g)
		_, err = tx.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
			pipe.HSet(ctx, key, fields)
			pipe.Expire(ctx, key, ttl)
			for seat, hand := range hands {
				pipe.Set(ctx, handKey(g.ID, seat), joinIDs(hand), ttl)
			}
			return nil
		})
		return err
	}, key)
	if errors.Is(err, redis.TxFailedErr) {
		return consts.ErrConcurrencyConflict
	}
	if err == nil {
		g.Version++
	}
	return err
}

func (s *RedisStore) DeleteGame(ctx context.Context, id string) error {
	keys := []string{gameKey(id)}
	for seat := 0; seat < consts.MaxPlayers; seat++ {
		keys = append(keys, handKey(id, seat))
	}
	return s.client.Del(ctx, keys...).Err()
}

func (s *RedisStore) SetActiveGame(ctx context.Context, userID, gameID string) error {
	return s.client.Set(ctx, activeKey(userID), gameID, consts.ActiveGameTTL).Err()
}

func (s *RedisStore) ActiveGame(ctx context.Context, userID string) (string, error) {
	id, err := s.client.Get(ctx, activeKey(userID)).Result()
	if errors.Is(err, redis.Nil) {
		return "", nil
	}
	return id, err
}

func (s *RedisStore) ClearActiveGame(ctx context.Context, userID string) error {
	return s.client.Del(ctx, activeKey(userID)).Err()
}
