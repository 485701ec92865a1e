package sink

import (
	"fmt"

	"riotscraper/pkg/config"
)

// Sink is a durable, append-only store of match records with a membership
// test. Append must commit durably before returning; Contains must reflect
// every append that succeeded in this or any previous session. Appending two
// records with the same match ID is undefined behavior by contract: callers
// check Contains first.
type Sink interface {
	// Contains reports whether a record with the given match ID is stored
	Contains(matchID string) bool
	// Append durably persists one record
	Append(record *Record) error
	// Count returns the number of stored records
	Count() int
	// Close releases the underlying destination handle
	Close() error
}

// Options configures a sink destination
type Options struct {
	// Destination is backend specific: a file path for file and sqlite
	// backends, a key prefix for redis
	Destination string
	// Append opens an existing destination and preloads its identifiers;
	// when false, a destination that already holds data is an error
	Append bool
	// RedisAddr is only used by the redis backend
	RedisAddr string
}

// New creates a sink for the configured backend
func New(backend string, opts Options) (Sink, error) {
	switch backend {
	case config.BackendFile:
		return NewFileSink(opts.Destination, opts.Append)
	case config.BackendSQLite:
		return NewSQLiteSink(opts.Destination, opts.Append)
	case config.BackendRedis:
		return NewRedisSink(opts.RedisAddr, opts.Destination, opts.Append)
	default:
		return nil, fmt.Errorf("unknown sink backend %q", backend)
	}
}
