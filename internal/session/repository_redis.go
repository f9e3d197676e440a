package session

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"BlackJack/internal/game/table"

	"github.com/redis/go-redis/v9"
)

type redisRepo struct {
	rdb *redis.Client
	ttl time.Duration
}

func NewRedisRepo(rdb *redis.Client, ttl time.Duration) Repo {
	return &redisRepo{rdb: rdb, ttl: ttl}
}

// key 约定：
//
//	kv: bj:round:{sessionID} -> JSON(Round)，带 TTL
func roundKey(id string) string {
	return fmt.Sprintf("bj:round:%s", id)
}

func (r *redisRepo) Load(ctx context.Context, id string) (*table.Round, error) {
	data, err := r.rdb.Get(ctx, roundKey(id)).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("load round %s: %w", id, err)
	}
	var round table.Round
	if err := json.Unmarshal(data, &round); err != nil {
		return nil, fmt.Errorf("decode round %s: %w", id, err)
	}
	return &round, nil
}

func (r *redisRepo) Save(ctx context.Context, id string, round *table.Round) error {
	data, err := json.Marshal(round)
	if err != nil {
		return fmt.Errorf("encode round %s: %w", id, err)
	}
	// 单条 SET 即整体原子写入
	return r.rdb.Set(ctx, roundKey(id), data, r.ttl).Err()
}

func (r *redisRepo) Delete(ctx context.Context, id string) error {
	return r.rdb.Del(ctx, roundKey(id)).Err()
}
