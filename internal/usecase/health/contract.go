package health

import "context"

// SearchChecker checks search index availability.
type SearchChecker interface {
	HealthCheck(ctx context.Context) error
}

// GenerationChecker checks completion provider availability.
type GenerationChecker interface {
	HealthCheck(ctx context.Context) error
}

// CachePinger checks cache availability.
type CachePinger interface {
	Ping(ctx context.Context) error
}
