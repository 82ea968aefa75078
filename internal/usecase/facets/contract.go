package facets

import (
	"context"

	"github.com/solistra/askdex/internal/domain/document"
)

// Scanner reads facet source fields from the search index.
type Scanner interface {
	ScanFacetFields(ctx context.Context, top int) ([]document.Document, error)
}
