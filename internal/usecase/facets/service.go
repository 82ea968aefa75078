// Package facets builds the filter value lists offered to clients by
// scanning the author and category fields of the search index.
package facets

import (
	"context"
	"fmt"
	"sort"
)

// scanTop caps how many documents a single facet scan reads.
const scanTop = 1000

// Values holds the distinct filter values present in the index.
// Slices are always non-nil so empty lists serialize as [].
type Values struct {
	Authors    []string `json:"authors"`
	Categories []string `json:"categories"`
}

// Empty returns a Values with no entries.
func Empty() Values {
	return Values{Authors: []string{}, Categories: []string{}}
}

// Service computes filter values from the search index.
type Service struct {
	scanner Scanner
}

// New creates the facets service.
func New(scanner Scanner) *Service {
	return &Service{scanner: scanner}
}

// Values returns the sorted distinct authors and categories.
func (s *Service) Values(ctx context.Context) (Values, error) {
	docs, err := s.scanner.ScanFacetFields(ctx, scanTop)
	if err != nil {
		return Values{}, fmt.Errorf("scan facet fields: %w", err)
	}

	authors := make(map[string]struct{})
	categories := make(map[string]struct{})
	for _, d := range docs {
		if a := d.Author(); a != "" {
			authors[a] = struct{}{}
		}
		if c := d.Category(); c != "" {
			categories[c] = struct{}{}
		}
	}

	return Values{
		Authors:    sortedKeys(authors),
		Categories: sortedKeys(categories),
	}, nil
}

func sortedKeys(set map[string]struct{}) []string {
	keys := make([]string, 0, len(set))
	for k := range set {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
