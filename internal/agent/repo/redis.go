// Package repo provides transcript storage for conversation context.
package repo

import (
	"context"
	"encoding/json"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/kdhyo/ledger-ai/internal/agent/model"
	errx "github.com/kdhyo/ledger-ai/internal/core/error"
)

const transcriptKeyPrefix = "ledger-ai:transcript:"

// maxStoredTurns caps the per-session transcript length in Redis; only
// the most recent turns feed the NLU prompt anyway.
const maxStoredTurns = 50

// RedisTranscript stores conversation turns in a Redis list per session,
// expiring idle transcripts after ttl.
type RedisTranscript struct {
	client *redis.Client
	ttl    time.Duration
}

func NewRedisTranscript(client *redis.Client, ttl time.Duration) *RedisTranscript {
	return &RedisTranscript{client: client, ttl: ttl}
}

func transcriptKey(sessionID string) string {
	return transcriptKeyPrefix + sessionID
}

func (r *RedisTranscript) AddTurn(ctx context.Context, sessionID string, turn model.Turn) error {
	data, err := json.Marshal(turn)
	if err != nil {
		return err
	}

	key := transcriptKey(sessionID)
	pipe := r.client.TxPipeline()
	pipe.RPush(ctx, key, data)
	pipe.LTrim(ctx, key, -maxStoredTurns, -1)
	pipe.Expire(ctx, key, r.ttl)
	if _, err := pipe.Exec(ctx); err != nil {
		return errx.WrapRedis(err)
	}
	return nil
}

func (r *RedisTranscript) Recent(ctx context.Context, sessionID string, n int) ([]model.Turn, error) {
	if n <= 0 {
		return nil, nil
	}

	values, err := r.client.LRange(ctx, transcriptKey(sessionID), int64(-n), -1).Result()
	if err != nil {
		return nil, errx.WrapRedis(err)
	}

	turns := make([]model.Turn, 0, len(values))
	for _, v := range values {
		var turn model.Turn
		if err := json.Unmarshal([]byte(v), &turn); err != nil {
			continue // skip corrupt rows rather than losing the whole context
		}
		turns = append(turns, turn)
	}
	return turns, nil
}

func (r *RedisTranscript) Clear(ctx context.Context, sessionID string) error {
	if err := r.client.Del(ctx, transcriptKey(sessionID)).Err(); err != nil {
		return errx.WrapRedis(err)
	}
	return nil
}
