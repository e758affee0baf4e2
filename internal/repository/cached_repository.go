package repository

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"hash/fnv"
	"log/slog"
	"sync"
	"time"

	"golang.org/x/sync/singleflight"

	"chat-assistant/backend/internal/cache"
	"chat-assistant/backend/internal/model"
)

// CachedRepository is the persistence gateway: it serves reads cache-first
// from Redis and invalidates the affected keys after every write.
//
// The cache is strictly best-effort. Cache failures are logged and behave like
// a miss on read and a no-op on write; store failures always propagate.
//
// Concurrent misses on a key share one store read. Every invalidation bumps
// the key's generation; a refill is only written back if the generation it
// started under is still current, and readers never join a flight from an
// older generation.
type CachedRepository struct {
	store  Store
	cache  cache.Cache
	flight singleflight.Group
	gens   generations
}

// loadTimeout bounds a shared store read, which runs detached from the
// caller that started it.
const loadTimeout = 30 * time.Second

const generationStripes = 256

// generations holds striped per-key counters. Keys sharing a stripe only
// cause extra skipped refills.
type generations struct {
	mu  [generationStripes]sync.Mutex
	gen [generationStripes]uint64
}

func stripe(key string) int {
	h := fnv.New32a()
	_, _ = h.Write([]byte(key))
	return int(h.Sum32() % generationStripes)
}

var _ Repository = (*CachedRepository)(nil)

func NewCachedRepository(store Store, c cache.Cache) *CachedRepository {
	return &CachedRepository{store: store, cache: c}
}

func (r *CachedRepository) CreateChat(ctx context.Context, userID, title, firstMessage string) (*model.Chat, error) {
	chat, err := r.store.CreateChat(ctx, userID, title, firstMessage)
	if err != nil {
		return nil, err
	}
	r.invalidate(ctx, cache.UserChatsKey(userID))
	return chat, nil
}

func (r *CachedRepository) GetUserChats(ctx context.Context, userID string) ([]*model.Chat, error) {
	key := cache.UserChatsKey(userID)
	var chats []*model.Chat
	if r.readCache(ctx, key, &chats) {
		return chats, nil
	}

	v, err := r.load(ctx, key, cache.ChatsTTL, func(ctx context.Context) (any, error) {
		return r.store.GetUserChats(ctx, userID)
	})
	if err != nil {
		return nil, err
	}
	return v.([]*model.Chat), nil
}

// GetChatByID never returns a cached chat owned by someone else.
func (r *CachedRepository) GetChatByID(ctx context.Context, chatID, userID string) (*model.Chat, error) {
	key := cache.ChatMetaKey(chatID)
	var cached model.Chat
	if r.readCache(ctx, key, &cached) {
		if cached.UserID != userID {
			return nil, ErrNotFound
		}
		return &cached, nil
	}

	gen := r.generation(key)
	chat, err := r.store.GetChatByID(ctx, chatID, userID)
	if err != nil {
		return nil, err
	}
	r.writeCache(ctx, key, gen, chat, cache.ChatMetaTTL)
	return chat, nil
}

func (r *CachedRepository) GetChatMessages(ctx context.Context, chatID string) ([]model.Message, error) {
	key := cache.ChatMessagesKey(chatID)
	var messages []model.Message
	if r.readCache(ctx, key, &messages) {
		return messages, nil
	}

	v, err := r.load(ctx, key, cache.MessagesTTL, func(ctx context.Context) (any, error) {
		return r.store.GetChatMessages(ctx, chatID)
	})
	if err != nil {
		return nil, err
	}
	return v.([]model.Message), nil
}

// AddMessage also drops the owner's chat list, whose order follows updated_at.
func (r *CachedRepository) AddMessage(ctx context.Context, chatID string, msg model.NewMessage) (*model.Message, error) {
	message, ownerID, err := r.store.AddMessage(ctx, chatID, msg)
	if err != nil {
		return nil, err
	}
	keys := []string{cache.ChatMessagesKey(chatID), cache.ChatMetaKey(chatID)}
	if ownerID != "" {
		keys = append(keys, cache.UserChatsKey(ownerID))
	}
	r.invalidate(ctx, keys...)
	return message, nil
}

// DeleteChat invalidates even when nothing was removed, so a stale entry for
// an already-deleted chat cannot outlive the call.
func (r *CachedRepository) DeleteChat(ctx context.Context, chatID, userID string) (bool, error) {
	deleted, err := r.store.DeleteChat(ctx, chatID, userID)
	if err != nil {
		return false, err
	}
	r.invalidate(ctx, cache.ChatMessagesKey(chatID), cache.ChatMetaKey(chatID), cache.UserChatsKey(userID))
	return deleted, nil
}

func (r *CachedRepository) DeleteAllChats(ctx context.Context, userID string) (int, error) {
	ids, err := r.store.DeleteAllChats(ctx, userID)
	if err != nil {
		return 0, err
	}
	keys := make([]string, 0, 2*len(ids)+1)
	for _, id := range ids {
		keys = append(keys, cache.ChatMessagesKey(id), cache.ChatMetaKey(id))
	}
	keys = append(keys, cache.UserChatsKey(userID))
	r.invalidate(ctx, keys...)
	return len(ids), nil
}

func (r *CachedRepository) UpdateChatTitle(ctx context.Context, chatID, userID, title string) (bool, error) {
	updated, err := r.store.UpdateChatTitle(ctx, chatID, userID, title)
	if err != nil {
		return false, err
	}
	r.invalidate(ctx, cache.ChatMetaKey(chatID), cache.UserChatsKey(userID))
	return updated, nil
}

func (r *CachedRepository) SetGeneratedTitle(ctx context.Context, chatID, userID, title string) (bool, error) {
	updated, err := r.store.SetGeneratedTitle(ctx, chatID, userID, title)
	if err != nil {
		return false, err
	}
	r.invalidate(ctx, cache.ChatMetaKey(chatID), cache.UserChatsKey(userID))
	return updated, nil
}

// Ping checks the store only; the cache being down is not a readiness failure.
func (r *CachedRepository) Ping(ctx context.Context) error {
	return r.store.Ping(ctx)
}

// CachePing reports cache health for diagnostics.
func (r *CachedRepository) CachePing(ctx context.Context) error {
	return r.cache.Ping(ctx)
}

// --- Cache helpers ---

func (r *CachedRepository) readCache(ctx context.Context, key string, dst any) bool {
	raw, err := r.cache.Get(ctx, key)
	if err != nil {
		if !errors.Is(err, cache.ErrMiss) {
			slog.Warn("Cache read failed, falling back to store", "key", key, "error", err)
		}
		return false
	}
	if err := json.Unmarshal([]byte(raw), dst); err != nil {
		slog.Warn("Discarding undecodable cache entry", "key", key, "error", err)
		r.invalidate(ctx, key)
		return false
	}
	return true
}

// load reads key from the store through a flight shared by every concurrent
// miss of the same generation, then refills the cache. A caller that gives up
// does not cancel the read for the others.
func (r *CachedRepository) load(ctx context.Context, key string, ttl time.Duration, fetch func(context.Context) (any, error)) (any, error) {
	gen := r.generation(key)
	ch := r.flight.DoChan(fmt.Sprintf("%s#%d", key, gen), func() (any, error) {
		loadCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), loadTimeout)
		defer cancel()

		v, err := fetch(loadCtx)
		if err != nil {
			return nil, err
		}
		r.writeCache(loadCtx, key, gen, v, ttl)
		return v, nil
	})

	select {
	case res := <-ch:
		return res.Val, res.Err
	case <-ctx.Done():
		return nil, ctx.Err()
	}
}

func (r *CachedRepository) generation(key string) uint64 {
	i := stripe(key)
	r.gens.mu[i].Lock()
	defer r.gens.mu[i].Unlock()
	return r.gens.gen[i]
}

// writeCache stores value unless key was invalidated after gen was read. The
// stripe lock is held across the write so an invalidation cannot slip in
// between the check and the Set.
func (r *CachedRepository) writeCache(ctx context.Context, key string, gen uint64, value any, ttl time.Duration) {
	raw, err := json.Marshal(value)
	if err != nil {
		slog.Error("Failed to encode cache entry", "key", key, "error", err)
		return
	}

	i := stripe(key)
	r.gens.mu[i].Lock()
	defer r.gens.mu[i].Unlock()
	if r.gens.gen[i] != gen {
		slog.Debug("Skipping refill of invalidated cache entry", "key", key)
		return
	}
	if err := r.cache.Set(ctx, key, string(raw), ttl); err != nil {
		slog.Warn("Cache write failed", "key", key, "error", err)
	}
}

func (r *CachedRepository) invalidate(ctx context.Context, keys ...string) {
	for _, key := range keys {
		i := stripe(key)
		r.gens.mu[i].Lock()
		r.gens.gen[i]++
		r.gens.mu[i].Unlock()
	}
	if _, err := r.cache.Del(ctx, keys...); err != nil {
		slog.Warn("Cache invalidation failed", "keys", keys, "error", err)
	}
}
