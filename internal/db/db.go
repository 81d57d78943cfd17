package db

import (
	"context"
	"time"
)

// Store is the document store facade combining all sub-interfaces.
// Consumers depend on the narrow sub-interfaces they actually use.
type Store interface {
	Pinger
	JSONStore
	SetStore
	RankStore
	Close()
	WaitForReady(ctx context.Context, timeout time.Duration) error
}

// Pinger checks store connectivity.
type Pinger interface {
	Ping(ctx context.Context) error
}

// JSONStore provides JSON document operations.
type JSONStore interface {
	JSONSet(ctx context.Context, key, path string, data []byte) error
	JSONGet(ctx context.Context, key string, paths ...string) ([]byte, error)
	// JSONGetMulti fetches multiple documents in one pipelined round-trip.
	// Missing keys yield nil entries instead of an error.
	JSONGetMulti(ctx context.Context, keys []string) ([][]byte, error)
	Del(ctx context.Context, key string) error
}

// SetStore provides unordered membership sets (collection indexes,
// per-user activity indexes).
type SetStore interface {
	SAdd(ctx context.Context, key string, members ...string) error
	SMembers(ctx context.Context, key string) ([]string, error)
}

// RankStore provides score-ordered sets (per-category view-count ranking).
type RankStore interface {
	ZAdd(ctx context.Context, key, member string, score float64) error
	// ZRevRange returns members from start to stop (inclusive) ordered by
	// score descending.
	ZRevRange(ctx context.Context, key string, start, stop int64) ([]string, error)
}
