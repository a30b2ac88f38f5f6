package cache

import (
	"context"
	"encoding/json"
	"strings"
	"time"

	dom "taskboard/internal/domain"

	"github.com/redis/go-redis/v9"
)

const (
	keyList   = "task:list"
	keySearch = "task:search:"
)

// TaskCache caches task list and search results in Redis as persisted
// records.
type TaskCache struct {
	rdb *redis.Client
	ttl time.Duration
}

// NewTaskCache returns a new TaskCache.
func NewTaskCache(rdb *redis.Client, ttl time.Duration) *TaskCache {
	return &TaskCache{rdb: rdb, ttl: ttl}
}

// GetList returns the cached task list or nil on miss.
func (c *TaskCache) GetList(ctx context.Context) ([]*dom.Task, error) {
	return c.get(ctx, keyList)
}

// SetList stores the task list.
func (c *TaskCache) SetList(ctx context.Context, list []*dom.Task) error {
	return c.set(ctx, keyList, list)
}

// GetSearch returns the cached result for query q, or nil on miss.
func (c *TaskCache) GetSearch(ctx context.Context, q string) ([]*dom.Task, error) {
	return c.get(ctx, keySearch+normalizeQuery(q))
}

// SetSearch stores the search result for query q.
func (c *TaskCache) SetSearch(ctx context.Context, q string, list []*dom.Task) error {
	return c.set(ctx, keySearch+normalizeQuery(q), list)
}

// InvalidateAll removes the list key and all search keys (invalidation on
// write).
func (c *TaskCache) InvalidateAll(ctx context.Context) error {
	if err := c.rdb.Del(ctx, keyList).Err(); err != nil {
		return err
	}
	iter := c.rdb.Scan(ctx, 0, keySearch+"*", 100).Iterator()
	for iter.Next(ctx) {
		if err := c.rdb.Del(ctx, iter.Val()).Err(); err != nil {
			return err
		}
	}
	return iter.Err()
}

func (c *TaskCache) get(ctx context.Context, key string) ([]*dom.Task, error) {
	b, err := c.rdb.Get(ctx, key).Bytes()
	if err == redis.Nil {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	var recs []dom.TaskRecord
	if err := json.Unmarshal(b, &recs); err != nil {
		return nil, err
	}
	list := make([]*dom.Task, len(recs))
	for i, rec := range recs {
		list[i] = dom.ReconstituteTask(rec)
	}
	return list, nil
}

func (c *TaskCache) set(ctx context.Context, key string, list []*dom.Task) error {
	recs := make([]dom.TaskRecord, len(list))
	for i, t := range list {
		recs[i] = t.Record()
	}
	b, err := json.Marshal(recs)
	if err != nil {
		return err
	}
	return c.rdb.Set(ctx, key, b, c.ttl).Err()
}

func normalizeQuery(q string) string {
	return strings.TrimSpace(strings.ToLower(q))
}
