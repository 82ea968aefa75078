package ask

import (
	"context"

	"github.com/solistra/askdex/internal/domain/document"
)

// Retriever fetches matching documents from the search index.
type Retriever interface {
	Retrieve(ctx context.Context, query, filter string, top int) ([]document.Document, error)
}

// Generator produces an answer from a system and user message.
type Generator interface {
	Complete(ctx context.Context, system, user string) (string, error)
}
