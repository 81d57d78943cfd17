package search

import (
	"context"

	"github.com/ghwns6404/ondongne/internal/domain"
)

// ListingReader scans the listing collection.
type ListingReader interface {
	All(ctx context.Context) ([]domain.Document, error)
}

// NewsReader scans a news collection by name.
type NewsReader interface {
	All(ctx context.Context, collection string) ([]domain.Document, error)
}

// Completer issues one completion-service call.
type Completer interface {
	Complete(ctx context.Context, req domain.CompletionRequest) (string, error)
}
