package cache

import (
	"context"
	"time"
)

// Cache is the key-value contract the persistence layer depends on.
// Implementations must be safe for concurrent use.
//
// Values are plain strings so the port stays free of serialization concerns;
// callers encode their own payloads.
type Cache interface {
	// Get returns ErrMiss when the key does not exist. Any other error is a
	// transport or server failure.
	Get(ctx context.Context, key string) (string, error)

	// Set stores value at key. A non-positive ttl means no expiration.
	Set(ctx context.Context, key string, value string, ttl time.Duration) error

	// Del removes keys and returns how many existed.
	Del(ctx context.Context, keys ...string) (int64, error)

	Ping(ctx context.Context) error
	Close() error
}

// ErrMiss signals a cache miss, distinct from transport errors.
var ErrMiss = errMiss{}

type errMiss struct{}

func (e errMiss) Error() string { return "cache: miss" }

// Key builders shared by every component touching the cache.
func UserChatsKey(userID string) string    { return "user:" + userID + ":chats" }
func ChatMessagesKey(chatID string) string { return "chat:" + chatID + ":messages" }
func ChatMetaKey(chatID string) string     { return "chat:" + chatID + ":meta" }

// Time-to-live for each cached projection.
const (
	ChatsTTL    = time.Hour
	ChatMetaTTL = time.Hour
	MessagesTTL = 2 * time.Hour
)
