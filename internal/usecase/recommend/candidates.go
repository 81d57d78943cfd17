package recommend

import (
	"context"
	"fmt"

	"github.com/ghwns6404/ondongne/internal/domain"
)

// selectCandidates retrieves the highest-viewed available listings for each
// top category and drops everything the user already has a relationship
// with: favorited, viewed, or selling. Categories contribute in order; no
// cross-category dedup is needed since a listing has exactly one category.
func (s *Service) selectCandidates(
	ctx context.Context, userID string, topCategories []string,
) ([]domain.Candidate, error) {
	var candidates []domain.Candidate
	for _, category := range topCategories {
		docs, err := s.listings.TopByCategory(ctx, category, s.maxPerCategory)
		if err != nil {
			return nil, fmt.Errorf("candidates for %q: %w", category, err)
		}
		for _, doc := range docs {
			if doc.FavoritedByUser(userID) || doc.ViewedByUser(userID) || doc.SellerID == userID {
				continue
			}
			candidates = append(candidates, domain.Candidate{
				ID:       doc.ID,
				Title:    doc.Title,
				Category: doc.Category,
				Price:    doc.Price,
			})
		}
	}
	return candidates, nil
}
