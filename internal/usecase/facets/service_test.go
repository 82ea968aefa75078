package facets

import (
	"context"
	"errors"
	"reflect"
	"testing"

	"github.com/solistra/askdex/internal/domain"
	"github.com/solistra/askdex/internal/domain/document"
)

// --- Mocks ---

type mockScanner struct {
	docs    []document.Document
	err     error
	called  bool
	lastTop int
}

func (m *mockScanner) ScanFacetFields(_ context.Context, top int) ([]document.Document, error) {
	m.called = true
	m.lastTop = top
	return m.docs, m.err
}

// --- Tests ---

func TestValues_DistinctSorted(t *testing.T) {
	scanner := &mockScanner{
		docs: []document.Document{
			document.New("", "", "smith", "ml", ""),
			document.New("", "", "jones", "ai", ""),
			document.New("", "", "smith", "ai", ""),
			document.New("", "", "adams", "", ""),
		},
	}
	svc := New(scanner)

	vals, err := svc.Values(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if scanner.lastTop != 1000 {
		t.Errorf("scan top = %d, want 1000", scanner.lastTop)
	}
	if want := []string{"adams", "jones", "smith"}; !reflect.DeepEqual(vals.Authors, want) {
		t.Errorf("Authors = %v, want %v", vals.Authors, want)
	}
	if want := []string{"ai", "ml"}; !reflect.DeepEqual(vals.Categories, want) {
		t.Errorf("Categories = %v, want %v", vals.Categories, want)
	}
}

func TestValues_EmptyFieldsSkipped(t *testing.T) {
	scanner := &mockScanner{
		docs: []document.Document{
			document.New("", "", "", "", ""),
			document.New("", "", "", "ai", ""),
		},
	}
	svc := New(scanner)

	vals, err := svc.Values(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(vals.Authors) != 0 {
		t.Errorf("Authors = %v, want empty", vals.Authors)
	}
	if want := []string{"ai"}; !reflect.DeepEqual(vals.Categories, want) {
		t.Errorf("Categories = %v, want %v", vals.Categories, want)
	}
}

func TestValues_NoDocuments(t *testing.T) {
	svc := New(&mockScanner{})

	vals, err := svc.Values(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	// Non-nil slices so the JSON surface renders [] rather than null.
	if vals.Authors == nil || vals.Categories == nil {
		t.Errorf("expected non-nil slices, got %+v", vals)
	}
	if len(vals.Authors) != 0 || len(vals.Categories) != 0 {
		t.Errorf("expected empty values, got %+v", vals)
	}
}

func TestValues_ScanError(t *testing.T) {
	scanner := &mockScanner{err: domain.ErrRetrievalFailed}
	svc := New(scanner)

	_, err := svc.Values(context.Background())
	if !errors.Is(err, domain.ErrRetrievalFailed) {
		t.Fatalf("expected ErrRetrievalFailed, got %v", err)
	}
}

func TestEmpty(t *testing.T) {
	vals := Empty()
	if vals.Authors == nil || vals.Categories == nil {
		t.Errorf("expected non-nil slices, got %+v", vals)
	}
	if len(vals.Authors) != 0 || len(vals.Categories) != 0 {
		t.Errorf("expected no entries, got %+v", vals)
	}
}
