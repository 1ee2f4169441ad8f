package store

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/aescanero/dago-node-chat/internal/transcript"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

// RedisTranscriptStore implements TranscriptStore using Redis with a TTL per
// session key
type RedisTranscriptStore struct {
	client *redis.Client
	ttl    time.Duration
	logger *zap.Logger
}

// NewRedisTranscriptStore creates a new Redis transcript store. A zero ttl
// stores transcripts without expiry.
func NewRedisTranscriptStore(client *redis.Client, ttl time.Duration, logger *zap.Logger) *RedisTranscriptStore {
	return &RedisTranscriptStore{
		client: client,
		ttl:    ttl,
		logger: logger,
	}
}

// key builds the Redis key for a session transcript
func (s *RedisTranscriptStore) key(sessionID string) string {
	return fmt.Sprintf("chat:transcript:%s", sessionID)
}

// Save serializes the transcript and stores it under the session key,
// refreshing the TTL.
func (s *RedisTranscriptStore) Save(ctx context.Context, sessionID string, tr *transcript.Transcript) error {
	data, err := json.Marshal(tr)
	if err != nil {
		return fmt.Errorf("failed to marshal transcript: %w", err)
	}

	if err := s.client.Set(ctx, s.key(sessionID), data, s.ttl).Err(); err != nil {
		return fmt.Errorf("failed to save transcript: %w", err)
	}

	return nil
}

// Load restores the transcript stored for a session. Returns ErrNotFound when
// the session has no stored transcript.
func (s *RedisTranscriptStore) Load(ctx context.Context, sessionID string) (*transcript.Transcript, error) {
	data, err := s.client.Get(ctx, s.key(sessionID)).Result()
	if err != nil {
		if err == redis.Nil {
			return nil, fmt.Errorf("session %s: %w", sessionID, ErrNotFound)
		}
		return nil, fmt.Errorf("failed to load transcript: %w", err)
	}

	tr := transcript.New()
	if err := json.Unmarshal([]byte(data), tr); err != nil {
		return nil, fmt.Errorf("failed to unmarshal transcript: %w", err)
	}

	return tr, nil
}

// Delete removes the stored transcript for a session
func (s *RedisTranscriptStore) Delete(ctx context.Context, sessionID string) error {
	if err := s.client.Del(ctx, s.key(sessionID)).Err(); err != nil {
		return fmt.Errorf("failed to delete transcript: %w", err)
	}

	return nil
}
