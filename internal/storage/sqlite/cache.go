// SPDX-License-Identifier: MPL-2.0

package sqlite

import (
	"context"
	"fmt"
	"maps"
	"strings"
	"time"

	"github.com/charmbracelet/log"
	gocache "github.com/patrickmn/go-cache"

	"github.com/cratehub/registry/pkg/downloads"
)

// DefaultCacheTTL is how long a row stays cached when no TTL is configured.
const DefaultCacheTTL = 5 * time.Minute

// CachedSource is a read-through cache in front of any downloads.RowSource.
// Only found rows are cached; lookups that fail, including missing rows,
// always reach the underlying source. It is safe for concurrent use.
type CachedSource struct {
	src    downloads.RowSource
	cache  *gocache.Cache
	logger *log.Logger
}

// NewCachedSource wraps src with a cache whose entries expire after ttl.
// A non-positive ttl uses DefaultCacheTTL.
func NewCachedSource(src downloads.RowSource, ttl time.Duration, logger *log.Logger) *CachedSource {
	if ttl <= 0 {
		ttl = DefaultCacheTTL
	}
	if logger == nil {
		logger = log.Default().WithPrefix("storage")
	}
	return &CachedSource{
		src:    src,
		cache:  gocache.New(ttl, 2*ttl),
		logger: logger,
	}
}

// FindRow implements downloads.RowSource.
func (c *CachedSource) FindRow(ctx context.Context, table string, columns []string, id int32) (downloads.Row, error) {
	key := cacheKey(table, columns, id)
	if v, found := c.cache.Get(key); found {
		if row, ok := v.(downloads.MapRow); ok {
			c.logger.Debug("cache hit", "key", key)
			return maps.Clone(row), nil
		}
		c.logger.Error("wrong type in cache", "key", key)
		c.cache.Delete(key)
	}

	row, err := c.src.FindRow(ctx, table, columns, id)
	if err != nil {
		return nil, err
	}
	snapshot := make(downloads.MapRow, len(columns))
	for _, col := range columns {
		if v, ok := row.Column(col); ok {
			snapshot[col] = v
		}
	}
	c.cache.Set(key, snapshot, gocache.DefaultExpiration)
	return maps.Clone(snapshot), nil
}

// Forget drops every cached row of table with the given id.
func (c *CachedSource) Forget(table string, id int32) {
	prefix := fmt.Sprintf("%s/%d/", table, id)
	for key := range c.cache.Items() {
		if strings.HasPrefix(key, prefix) {
			c.cache.Delete(key)
		}
	}
}

// Len returns the number of cached rows, expired ones included until the
// next cleanup.
func (c *CachedSource) Len() int { return c.cache.ItemCount() }

func cacheKey(table string, columns []string, id int32) string {
	return fmt.Sprintf("%s/%d/%s", table, id, strings.Join(columns, ","))
}
