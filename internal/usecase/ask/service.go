// Package ask implements the retrieval-augmented answering pipeline:
// compile filters, retrieve matching documents, assemble their text into
// a context block, and condition the completion model on it.
package ask

import (
	"context"
	"fmt"
	"strings"

	"github.com/solistra/askdex/internal/domain/document"
	"github.com/solistra/askdex/internal/domain/search/filter"
)

// searchTop is the fixed retrieval depth for answer grounding.
const searchTop = 5

// systemPrompt is sent with every completion request.
const systemPrompt = "You are a helpful assistant."

// Service runs the answering pipeline. Both backend calls are blocking
// and sequential: generation depends on retrieval output.
type Service struct {
	retriever Retriever
	generator Generator
}

// New creates an ask service.
func New(retriever Retriever, generator Generator) *Service {
	return &Service{retriever: retriever, generator: generator}
}

// Result is the outcome of one pipeline run.
type Result struct {
	Answer    string
	Documents []document.Document
}

// Ask answers the query over documents matching the filters.
// An empty query is allowed and searches unrestricted.
func (s *Service) Ask(ctx context.Context, query string, filters filter.Set) (Result, error) {
	compiled := filters.Compile()

	docs, err := s.retriever.Retrieve(ctx, query, compiled, searchTop)
	if err != nil {
		return Result{}, fmt.Errorf("retrieve documents: %w", err)
	}

	answer, err := s.generator.Complete(ctx, systemPrompt, buildPrompt(query, buildContext(docs)))
	if err != nil {
		return Result{}, fmt.Errorf("generate answer: %w", err)
	}

	return Result{Answer: answer, Documents: docs}, nil
}

// buildContext concatenates document titles and contents into one text
// block, preserving backend order.
func buildContext(docs []document.Document) string {
	var b strings.Builder
	for _, d := range docs {
		b.WriteString("\n\n")
		b.WriteString(d.Title())
		b.WriteString(":\n")
		b.WriteString(d.Content())
	}
	return b.String()
}

// buildPrompt interpolates the assembled context and the original query
// into the user message.
func buildPrompt(query, contextBlock string) string {
	var b strings.Builder
	b.WriteString("Based on the following documents, please answer the user's question.\n")
	b.WriteString("If the documents don't contain enough information to answer the question, please say so.\n\n")
	b.WriteString("Context Documents:\n")
	b.WriteString(contextBlock)
	b.WriteString("\n\nUser Question: ")
	b.WriteString(query)
	b.WriteString("\n\nPlease provide a comprehensive answer based on the documents above:")
	return b.String()
}
