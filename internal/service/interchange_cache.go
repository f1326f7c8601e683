package service

import (
	"context"
	"log"
	"strings"
	"sync/atomic"

	"partflow/internal/domain"
	"partflow/internal/port"
)

// InterchangeCache holds the full old→new part number table in memory for
// O(1) lookup. Refresh builds a new map off to the side and swaps it in with
// a single atomic pointer store, so concurrent lookups never observe a
// partially built mapping and never block on a refresh in progress.
type InterchangeCache struct {
	parts    port.PartsRepository
	mappings atomic.Pointer[map[string]domain.InterchangeMapping]
}

// NewInterchangeCache creates an empty cache. Call Load to populate it.
func NewInterchangeCache(parts port.PartsRepository) *InterchangeCache {
	c := &InterchangeCache{parts: parts}
	empty := map[string]domain.InterchangeMapping{}
	c.mappings.Store(&empty)
	return c
}

// Load replaces the cached table with a fresh read from the parts database.
// Rows with an empty old or new number are skipped; duplicate old numbers are
// last-write-wins, matching the source data's ordering. On database failure
// the cache is cleared and the error returned; resolution then degrades to
// extraction plus fuzzy matching until the next successful refresh.
func (c *InterchangeCache) Load(ctx context.Context) error {
	rows, err := c.parts.LoadInterchange(ctx)
	if err != nil {
		empty := map[string]domain.InterchangeMapping{}
		c.mappings.Store(&empty)
		log.Printf("interchangeCache.Load: parts database unavailable, cache empty: %v", err)
		return err
	}

	next := make(map[string]domain.InterchangeMapping, len(rows))
	for _, row := range rows {
		oldNum := strings.ToUpper(strings.TrimSpace(row.OldPartNumber))
		newNum := strings.ToUpper(strings.TrimSpace(row.NewPartNumber))
		if oldNum == "" || newNum == "" {
			continue
		}
		next[oldNum] = domain.InterchangeMapping{
			OldPartNumber:   oldNum,
			NewPartNumber:   newNum,
			InterchangeCode: strings.TrimSpace(row.InterchangeCode),
		}
	}

	c.mappings.Store(&next)
	log.Printf("interchangeCache.Load: loaded %d interchange mappings", len(next))
	return nil
}

// Lookup returns the interchange mapping for an old part number, or nil.
// The key is case-normalized before lookup.
func (c *InterchangeCache) Lookup(oldNumber string) *domain.InterchangeMapping {
	m := *c.mappings.Load()
	if mapping, ok := m[strings.ToUpper(strings.TrimSpace(oldNumber))]; ok {
		return &mapping
	}
	return nil
}

// Size returns the number of cached mappings.
func (c *InterchangeCache) Size() int {
	return len(*c.mappings.Load())
}
