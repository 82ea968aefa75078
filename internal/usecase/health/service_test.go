package health

import (
	"context"
	"errors"
	"testing"
)

// --- Mocks ---

type mockChecker struct {
	err error
}

func (m *mockChecker) HealthCheck(_ context.Context) error { return m.err }

type mockPinger struct {
	err error
}

func (m *mockPinger) Ping(_ context.Context) error { return m.err }

// --- Tests ---

func TestCheck_AllHealthy(t *testing.T) {
	svc := New(&mockChecker{}, &mockChecker{}, &mockPinger{})
	r := svc.Check(context.Background())

	if r.Status != Healthy {
		t.Errorf("expected %q, got %q", Healthy, r.Status)
	}
	for _, name := range []string{"search", "generation", "cache"} {
		if r.Checks[name] != CheckOK {
			t.Errorf("expected %s %q, got %q", name, CheckOK, r.Checks[name])
		}
	}
}

func TestCheck_SearchError(t *testing.T) {
	svc := New(&mockChecker{err: errors.New("conn refused")}, &mockChecker{}, &mockPinger{})
	r := svc.Check(context.Background())

	if r.Status != Degraded {
		t.Errorf("expected %q, got %q", Degraded, r.Status)
	}
	if r.Checks["search"] != CheckError {
		t.Errorf("expected search %q, got %q", CheckError, r.Checks["search"])
	}
	if r.Checks["generation"] != CheckOK {
		t.Errorf("expected generation %q, got %q", CheckOK, r.Checks["generation"])
	}
}

func TestCheck_GenerationError(t *testing.T) {
	svc := New(&mockChecker{}, &mockChecker{err: errors.New("timeout")}, &mockPinger{})
	r := svc.Check(context.Background())

	if r.Status != Degraded {
		t.Errorf("expected %q, got %q", Degraded, r.Status)
	}
	if r.Checks["search"] != CheckOK {
		t.Errorf("expected search %q, got %q", CheckOK, r.Checks["search"])
	}
	if r.Checks["generation"] != CheckError {
		t.Errorf("expected generation %q, got %q", CheckError, r.Checks["generation"])
	}
}

func TestCheck_CacheError(t *testing.T) {
	svc := New(&mockChecker{}, &mockChecker{}, &mockPinger{err: errors.New("pool closed")})
	r := svc.Check(context.Background())

	if r.Status != Degraded {
		t.Errorf("expected %q, got %q", Degraded, r.Status)
	}
	if r.Checks["cache"] != CheckError {
		t.Errorf("expected cache %q, got %q", CheckError, r.Checks["cache"])
	}
}

func TestCheck_AllFail(t *testing.T) {
	svc := New(
		&mockChecker{err: errors.New("search down")},
		&mockChecker{err: errors.New("gen down")},
		&mockPinger{err: errors.New("cache down")},
	)
	r := svc.Check(context.Background())

	if r.Status != Degraded {
		t.Errorf("expected %q, got %q", Degraded, r.Status)
	}
	for _, name := range []string{"search", "generation", "cache"} {
		if r.Checks[name] != CheckError {
			t.Errorf("expected %s error", name)
		}
	}
}

func TestCheck_NoCache(t *testing.T) {
	svc := New(&mockChecker{}, &mockChecker{}, nil)
	r := svc.Check(context.Background())

	if r.Status != Healthy {
		t.Errorf("expected %q, got %q", Healthy, r.Status)
	}
	if _, ok := r.Checks["cache"]; ok {
		t.Error("cache check should be absent when cache is nil")
	}
}

func TestCheck_NoCache_SearchError(t *testing.T) {
	svc := New(&mockChecker{err: errors.New("fail")}, &mockChecker{}, nil)
	r := svc.Check(context.Background())

	if r.Status != Degraded {
		t.Errorf("expected %q, got %q", Degraded, r.Status)
	}
	if r.Checks["search"] != CheckError {
		t.Error("expected search error")
	}
	if _, ok := r.Checks["cache"]; ok {
		t.Error("cache check should be absent when cache is nil")
	}
}
