package recommend

import (
	"context"

	"github.com/ghwns6404/ondongne/internal/domain"
)

// ListingReader provides the listing queries the recommendation pipeline
// needs: the user's activity and per-category rankings.
type ListingReader interface {
	FavoritedBy(ctx context.Context, userID string, limit int) ([]domain.Document, error)
	ViewedBy(ctx context.Context, userID string, limit int) ([]domain.Document, error)
	TopByCategory(ctx context.Context, category string, limit int) ([]domain.Document, error)
}

// Completer issues one completion-service call.
type Completer interface {
	Complete(ctx context.Context, req domain.CompletionRequest) (string, error)
}
