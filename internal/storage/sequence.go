package storage

import (
	"context"
	"sync"

	"github.com/redis/go-redis/v9"
)

const ticketNumberKey = "queue:ticket_number"

// Sequencer выдает отображаемые номера талонов.
type Sequencer interface {
	Next(ctx context.Context) (int64, error)
	Reset(ctx context.Context) error
}

// RedisSequencer хранит счетчик в Redis, чтобы номера не повторялись между экземплярами сервера.
type RedisSequencer struct {
	redis *redis.Client
	key   string
}

func NewRedisSequencer(client *redis.Client) *RedisSequencer {
	return &RedisSequencer{redis: client, key: ticketNumberKey}
}

func (s *RedisSequencer) Next(ctx context.Context) (int64, error) {
	return s.redis.Incr(ctx, s.key).Result()
}

func (s *RedisSequencer) Reset(ctx context.Context) error {
	return s.redis.Del(ctx, s.key).Err()
}

type MemorySequencer struct {
	mu   sync.Mutex
	next int64
}

func (s *MemorySequencer) Next(ctx context.Context) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.next++
	return s.next, nil
}

func (s *MemorySequencer) Reset(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.next = 0
	return nil
}
