package sink

import (
	"context"
	"errors"
	"sync"

	"github.com/redis/go-redis/v9"

	errs "riotscraper/pkg/errors"
)

// RedisSink stores records in Redis: a list holds the records in arrival
// order and a set holds the match IDs for membership. Both are updated in one
// transaction per append, and the set is read once at open to rebuild the
// in-process index, mirroring the file sink's scan-on-open design.
type RedisSink struct {
	client  *redis.Client
	ctx     context.Context
	setKey  string
	listKey string
	matches map[string]bool
	mu      sync.RWMutex
}

// NewRedisSink connects to Redis and prepares the destination keys. The
// prefix names the destination; <prefix>:ids and <prefix>:records are used.
func NewRedisSink(addr, prefix string, appendMode bool) (*RedisSink, error) {
	if prefix == "" {
		return nil, errs.NewStorageError("open", prefix, errors.New("destination key prefix is empty"))
	}

	ctx := context.Background()
	client := redis.NewClient(&redis.Options{Addr: addr})

	if err := client.Ping(ctx).Err(); err != nil {
		client.Close()
		return nil, errs.NewStorageError("open", addr, err)
	}

	s := &RedisSink{
		client:  client,
		ctx:     ctx,
		setKey:  prefix + ":ids",
		listKey: prefix + ":records",
		matches: make(map[string]bool),
	}

	if appendMode {
		ids, err := client.SMembers(ctx, s.setKey).Result()
		if err != nil {
			client.Close()
			return nil, errs.NewStorageError("scan", prefix, err)
		}
		for _, id := range ids {
			s.matches[id] = true
		}
	} else {
		exists, err := client.Exists(ctx, s.setKey, s.listKey).Result()
		if err != nil {
			client.Close()
			return nil, errs.NewStorageError("scan", prefix, err)
		}
		if exists > 0 {
			client.Close()
			return nil, errs.NewStorageError("create", prefix,
				errors.New("destination already contains data; use append mode"))
		}
	}

	return s, nil
}

// Contains reports whether a record with the given match ID is stored
func (s *RedisSink) Contains(matchID string) bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.matches[matchID]
}

// Append pushes one record and registers its ID in the membership set
func (s *RedisSink) Append(record *Record) error {
	data, err := record.Marshal()
	if err != nil {
		return errs.NewStorageError("encode", s.listKey, err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	pipe := s.client.TxPipeline()
	pipe.RPush(s.ctx, s.listKey, data)
	pipe.SAdd(s.ctx, s.setKey, record.MatchID)
	if _, err := pipe.Exec(s.ctx); err != nil {
		return errs.NewStorageError("append", s.listKey, err)
	}

	s.matches[record.MatchID] = true
	return nil
}

// Count returns the number of indexed records
func (s *RedisSink) Count() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.matches)
}

// Close closes the Redis connection
func (s *RedisSink) Close() error {
	if err := s.client.Close(); err != nil {
		return errs.NewStorageError("close", s.listKey, err)
	}
	return nil
}
