package storage

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/url"
	"time"

	"restaurant-api/restaurant-svc/internal/domain"

	"github.com/redis/go-redis/v9"
)

const menuVersionKey = "menu:version"

// RedisMenuCache caches menu listing pages. Every key embeds the catalog
// version so bumping it drops all cached pages at once.
type RedisMenuCache struct {
	Client *redis.Client
	TTL    time.Duration
}

func NewRedisMenuCache(client *redis.Client, ttl time.Duration) *RedisMenuCache {
	return &RedisMenuCache{Client: client, TTL: ttl}
}

func (c *RedisMenuCache) version(ctx context.Context) (int64, error) {
	v, err := c.Client.Get(ctx, menuVersionKey).Int64()
	if errors.Is(err, redis.Nil) {
		return 0, nil
	}
	return v, err
}

func (c *RedisMenuCache) MenuPageKey(version int64, filter domain.MenuFilter) string {
	return fmt.Sprintf("menu:v%d:c%d:o%s:p%d:n%d:s%s",
		version, filter.CategoryID, filter.Ordering, filter.Page, filter.PerPage, url.QueryEscape(filter.Search))
}

func (c *RedisMenuCache) GetMenuPage(ctx context.Context, filter domain.MenuFilter) (*domain.MenuPage, bool, error) {
	version, err := c.version(ctx)
	if err != nil {
		return nil, false, err
	}
	raw, err := c.Client.Get(ctx, c.MenuPageKey(version, filter)).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, err
	}

	var page domain.MenuPage
	if err := json.Unmarshal(raw, &page); err != nil {
		return nil, false, err
	}
	return &page, true, nil
}

func (c *RedisMenuCache) SetMenuPage(ctx context.Context, filter domain.MenuFilter, page *domain.MenuPage) error {
	version, err := c.version(ctx)
	if err != nil {
		return err
	}
	payload, err := json.Marshal(page)
	if err != nil {
		return err
	}
	return c.Client.Set(ctx, c.MenuPageKey(version, filter), payload, c.TTL).Err()
}

func (c *RedisMenuCache) Invalidate(ctx context.Context) error {
	return c.Client.Incr(ctx, menuVersionKey).Err()
}
