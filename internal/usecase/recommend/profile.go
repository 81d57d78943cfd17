package recommend

import (
	"context"
	"fmt"
	"sync"

	"github.com/ghwns6404/ondongne/internal/domain"
)

// buildProfile aggregates the user's favorited and viewed listings into a
// preference profile. The two activity fetches have no data dependency and
// run concurrently. Returns nil when the user has no activity at all.
// A listing that is both favorited and viewed is counted twice so it
// weighs preference more heavily.
func (s *Service) buildProfile(ctx context.Context, userID string) (*domain.PreferenceProfile, error) {
	var (
		favorited, viewed []domain.Document
		favErr, viewErr   error
		wg                sync.WaitGroup
	)
	wg.Add(2)
	go func() {
		defer wg.Done()
		favorited, favErr = s.listings.FavoritedBy(ctx, userID, s.activityLimit)
	}()
	go func() {
		defer wg.Done()
		viewed, viewErr = s.listings.ViewedBy(ctx, userID, s.activityLimit)
	}()
	wg.Wait()

	if favErr != nil {
		return nil, fmt.Errorf("fetch favorited listings: %w", favErr)
	}
	if viewErr != nil {
		return nil, fmt.Errorf("fetch viewed listings: %w", viewErr)
	}
	if len(favorited) == 0 && len(viewed) == 0 {
		return nil, nil
	}

	profile := domain.NewPreferenceProfile()
	for _, doc := range favorited {
		profile.Observe(doc)
	}
	for _, doc := range viewed {
		profile.Observe(doc)
	}
	return profile, nil
}
