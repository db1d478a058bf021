package cache

import (
	"context"
	"encoding/json"
	"time"

	dom "github.com/SomuSingh11/timely/internal/domain"

	"github.com/redis/go-redis/v9"
)

const (
	keyTaskList     = "tasks:list:"    // + user id
	keyDailySummary = "summary:daily:" // + user id + ":" + YYYY-MM-DD
)

// TrackCache caches per-user task lists and daily summaries in Redis.
// Every write to a user's tasks or time logs invalidates both.
type TrackCache struct {
	rdb *redis.Client
	ttl time.Duration
}

// NewTrackCache returns a new TrackCache.
func NewTrackCache(rdb *redis.Client, ttl time.Duration) *TrackCache {
	return &TrackCache{rdb: rdb, ttl: ttl}
}

// GetTaskList returns the cached task list or nil if miss.
func (c *TrackCache) GetTaskList(ctx context.Context, userID string) ([]dom.TaskWithTotal, error) {
	b, err := c.rdb.Get(ctx, keyTaskList+userID).Bytes()
	if err == redis.Nil {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	var list []dom.TaskWithTotal
	if err := json.Unmarshal(b, &list); err != nil {
		return nil, err
	}
	return list, nil
}

// SetTaskList stores the task list in cache.
func (c *TrackCache) SetTaskList(ctx context.Context, userID string, list []dom.TaskWithTotal) error {
	b, err := json.Marshal(list)
	if err != nil {
		return err
	}
	return c.rdb.Set(ctx, keyTaskList+userID, b, c.ttl).Err()
}

// GetDailySummary returns the cached summary for the day or nil if miss.
func (c *TrackCache) GetDailySummary(ctx context.Context, userID, day string) (*dom.DailySummary, error) {
	b, err := c.rdb.Get(ctx, keyDailySummary+userID+":"+day).Bytes()
	if err == redis.Nil {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	var s dom.DailySummary
	if err := json.Unmarshal(b, &s); err != nil {
		return nil, err
	}
	return &s, nil
}

// SetDailySummary stores the summary for the day in cache.
func (c *TrackCache) SetDailySummary(ctx context.Context, userID, day string, s dom.DailySummary) error {
	b, err := json.Marshal(s)
	if err != nil {
		return err
	}
	return c.rdb.Set(ctx, keyDailySummary+userID+":"+day, b, c.ttl).Err()
}

// InvalidateUser removes the user's task list and all cached summaries
// (cache invalidation on write).
func (c *TrackCache) InvalidateUser(ctx context.Context, userID string) error {
	if err := c.rdb.Del(ctx, keyTaskList+userID).Err(); err != nil {
		return err
	}
	iter := c.rdb.Scan(ctx, 0, keyDailySummary+userID+":*", 100).Iterator()
	for iter.Next(ctx) {
		if err := c.rdb.Del(ctx, iter.Val()).Err(); err != nil {
			return err
		}
	}
	return iter.Err()
}
