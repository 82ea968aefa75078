package facetcache

import (
	"context"
	"testing"
	"time"

	"go.uber.org/zap"

	"github.com/solistra/askdex/internal/db"
	"github.com/solistra/askdex/internal/domain/document"
)

type mockScanner struct {
	docs  []document.Document
	err   error
	calls int
}

func (m *mockScanner) ScanFacetFields(_ context.Context, _ int) ([]document.Document, error) {
	m.calls++
	return m.docs, m.err
}

// mockKVStore implements the consumer interface for tests.
type mockKVStore struct {
	getFn func(ctx context.Context, key string) ([]byte, error)
	setFn func(ctx context.Context, key string, value []byte, ttl time.Duration) error
}

func (m *mockKVStore) Get(ctx context.Context, key string) ([]byte, error) {
	if m.getFn != nil {
		return m.getFn(ctx, key)
	}
	return nil, db.ErrKeyNotFound
}

func (m *mockKVStore) SetWithTTL(ctx context.Context, key string, value []byte, ttl time.Duration) error {
	if m.setFn != nil {
		return m.setFn(ctx, key, value, ttl)
	}
	return nil
}

func newTestCachedScanner(t *testing.T, inner *mockScanner) (*CachedScanner, *mockKVStore) {
	t.Helper()
	ms := &mockKVStore{}
	cs := New(inner, ms, "askdex:", 5*time.Minute, nil, zap.NewNop())
	return cs, ms
}
