// Package progresscache caches per-user list progress summaries in Redis.
// Entries are JSON-encoded domain.ProgressSummary values with a TTL; writes
// that change a user's ascents invalidate the affected lists.
//
// Every (user, list) pair also carries a generation counter that Invalidate
// bumps. A reader takes the generation before loading ascents and passes it
// to Set, which stores only if no invalidation happened in between.
package progresscache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	goredis "github.com/redis/go-redis/v9"

	"github.com/heartmarshall/summitlist-backend/internal/domain"
	"github.com/heartmarshall/summitlist-backend/internal/metrics"
)

const (
	keyPrefix = "summitlist:progress"
	genPrefix = "summitlist:progress-gen"

	// generationTTL bounds how long an idle counter is kept. It only has to
	// outlive a single summary computation.
	generationTTL = 24 * time.Hour
)

// setIfGeneration stores ARGV[1] under KEYS[1] for ARGV[3] milliseconds when
// the counter at KEYS[2] (missing reads as 0) equals ARGV[2].
var setIfGeneration = goredis.NewScript(`
local cur = redis.call('GET', KEYS[2])
if not cur then
	cur = '0'
end
if cur ~= ARGV[2] then
	return 0
end
redis.call('SET', KEYS[1], ARGV[1], 'PX', ARGV[3])
return 1
`)

// Cache stores progress summaries keyed by (user, list).
type Cache struct {
	client *goredis.Client
	ttl    time.Duration
}

// New creates a Cache. ttl must be positive.
func New(client *goredis.Client, ttl time.Duration) *Cache {
	return &Cache{client: client, ttl: ttl}
}

func key(userID, listID uuid.UUID) string {
	return fmt.Sprintf("%s:%s:%s", keyPrefix, userID, listID)
}

func genKey(userID, listID uuid.UUID) string {
	return fmt.Sprintf("%s:%s:%s", genPrefix, userID, listID)
}

// Get returns the cached summary. ok is false on a miss.
func (c *Cache) Get(ctx context.Context, userID, listID uuid.UUID) (summary domain.ProgressSummary, ok bool, err error) {
	raw, err := c.client.Get(ctx, key(userID, listID)).Bytes()
	if errors.Is(err, goredis.Nil) {
		metrics.RecordCacheLookup("miss")
		return domain.ProgressSummary{}, false, nil
	}
	if err != nil {
		metrics.RecordCacheLookup("error")
		return domain.ProgressSummary{}, false, fmt.Errorf("progresscache: get: %w", err)
	}

	if err := json.Unmarshal(raw, &summary); err != nil {
		metrics.RecordCacheLookup("error")
		return domain.ProgressSummary{}, false, fmt.Errorf("progresscache: decode: %w", err)
	}

	metrics.RecordCacheLookup("hit")
	return summary, true, nil
}

// Generation returns the current invalidation counter of (user, list).
func (c *Cache) Generation(ctx context.Context, userID, listID uuid.UUID) (int64, error) {
	gen, err := c.client.Get(ctx, genKey(userID, listID)).Int64()
	if errors.Is(err, goredis.Nil) {
		return 0, nil
	}
	if err != nil {
		return 0, fmt.Errorf("progresscache: generation: %w", err)
	}
	return gen, nil
}

// Set stores summary for the configured TTL if the generation of (user, list)
// still equals generation. stored is false when an invalidation landed since
// the generation was read.
func (c *Cache) Set(ctx context.Context, userID, listID uuid.UUID, generation int64, summary domain.ProgressSummary) (stored bool, err error) {
	raw, err := json.Marshal(summary)
	if err != nil {
		return false, fmt.Errorf("progresscache: encode: %w", err)
	}

	keys := []string{key(userID, listID), genKey(userID, listID)}
	n, err := setIfGeneration.Run(ctx, c.client, keys, raw, generation, c.ttl.Milliseconds()).Int()
	if err != nil {
		return false, fmt.Errorf("progresscache: set: %w", err)
	}
	return n == 1, nil
}

// Invalidate drops the user's cached summaries for the given lists and bumps
// their generations.
func (c *Cache) Invalidate(ctx context.Context, userID uuid.UUID, listIDs ...uuid.UUID) error {
	if len(listIDs) == 0 {
		return nil
	}

	keys := make([]string, len(listIDs))
	for i, id := range listIDs {
		keys[i] = key(userID, id)
	}
	_, err := c.client.TxPipelined(ctx, func(pipe goredis.Pipeliner) error {
		pipe.Del(ctx, keys...)
		for _, id := range listIDs {
			pipe.Incr(ctx, genKey(userID, id))
			pipe.Expire(ctx, genKey(userID, id), generationTTL)
		}
		return nil
	})
	if err != nil {
		return fmt.Errorf("progresscache: invalidate: %w", err)
	}
	return nil
}
