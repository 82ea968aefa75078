// Package facetcache caches facet scans in a key-value store so the
// filter value lists do not rescan the index on every request.
package facetcache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"go.uber.org/zap"

	"github.com/solistra/askdex/internal/db"
	"github.com/solistra/askdex/internal/domain/document"
)

const cacheKeySuffix = "facet_scan"

// scanner is the inner scan source.
type scanner interface {
	ScanFacetFields(ctx context.Context, top int) ([]document.Document, error)
}

// store is the consumer interface for the facet cache (ISP).
type store interface {
	Get(ctx context.Context, key string) ([]byte, error)
	SetWithTTL(ctx context.Context, key string, value []byte, ttl time.Duration) error
}

// cachedDoc is the wire form of one scanned document.
type cachedDoc struct {
	Author   string `json:"author,omitempty"`
	Category string `json:"category,omitempty"`
}

// CachedScanner caches facet scans in a key-value store.
type CachedScanner struct {
	inner      scanner
	store      store
	keyPrefix  string
	ttl        time.Duration
	cacheTotal *prometheus.CounterVec
	logger     *zap.Logger
}

// New creates a caching decorator.
// cacheTotal is a counter vec with label "result" ("hit"/"miss"), passed explicitly.
func New(
	inner scanner,
	s store,
	keyPrefix string,
	ttl time.Duration,
	cacheTotal *prometheus.CounterVec,
	logger *zap.Logger,
) *CachedScanner {
	return &CachedScanner{
		inner:      inner,
		store:      s,
		keyPrefix:  keyPrefix,
		ttl:        ttl,
		cacheTotal: cacheTotal,
		logger:     logger,
	}
}

// ScanFacetFields returns a cached scan or calls the inner scanner.
// Store failures degrade to a miss; they never fail the scan.
func (c *CachedScanner) ScanFacetFields(ctx context.Context, top int) ([]document.Document, error) {
	key := c.cacheKey(top)

	if docs, ok := c.getFromCache(ctx, key); ok {
		c.incCache("hit")
		return docs, nil
	}

	c.incCache("miss")

	docs, err := c.inner.ScanFacetFields(ctx, top)
	if err != nil {
		return nil, fmt.Errorf("scan facets: %w", err)
	}

	c.putToCache(ctx, key, docs)
	return docs, nil
}

func (c *CachedScanner) incCache(result string) {
	if c.cacheTotal != nil {
		c.cacheTotal.WithLabelValues(result).Inc()
	}
}

func (c *CachedScanner) cacheKey(top int) string {
	return fmt.Sprintf("%s%s:%d", c.keyPrefix, cacheKeySuffix, top)
}

func (c *CachedScanner) getFromCache(ctx context.Context, key string) ([]document.Document, bool) {
	data, err := c.store.Get(ctx, key)
	if err != nil {
		if !errors.Is(err, db.ErrKeyNotFound) {
			c.logger.Warn("Failed to get cached facets", zap.String("key", key), zap.Error(err))
		}
		return nil, false
	}
	if len(data) == 0 {
		return nil, false
	}

	var cached []cachedDoc
	if err := json.Unmarshal(data, &cached); err != nil {
		c.logger.Warn("Failed to parse cached facets", zap.String("key", key), zap.Error(err))
		return nil, false
	}

	docs := make([]document.Document, 0, len(cached))
	for _, d := range cached {
		docs = append(docs, document.New("", "", d.Author, d.Category, ""))
	}
	return docs, true
}

func (c *CachedScanner) putToCache(ctx context.Context, key string, docs []document.Document) {
	cached := make([]cachedDoc, 0, len(docs))
	for _, d := range docs {
		cached = append(cached, cachedDoc{Author: d.Author(), Category: d.Category()})
	}

	data, err := json.Marshal(cached)
	if err != nil {
		c.logger.Warn("Failed to encode facets for cache", zap.String("key", key), zap.Error(err))
		return
	}
	if err := c.store.SetWithTTL(ctx, key, data, c.ttl); err != nil {
		c.logger.Warn("Failed to cache facets", zap.String("key", key), zap.Error(err))
	}
}
