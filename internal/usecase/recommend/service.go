package recommend

import (
	"context"
	"strings"

	"github.com/ghwns6404/ondongne/internal/domain"
)

// Pipeline bounds. The activity limit caps prompt and scan sizes, not
// correctness.
const (
	defaultActivityLimit  = 20
	defaultTopCategories  = 3
	defaultMaxPerCategory = 10
	defaultLimit          = 5
)

// User-facing messages for the two empty outcomes. Both are responses, not
// errors.
const (
	insufficientActivityMessage = "아직 활동 내역이 부족해요. 상품을 둘러보고 찜해보시면 추천해드릴게요!"
	noCandidatesMessage         = "지금 추천할 만한 새로운 상품이 없어요. 잠시 후 다시 확인해주세요."
)

// Service runs the recommendation pipeline: preference profiling, candidate
// selection, and reason assignment.
type Service struct {
	listings       ListingReader
	completer      Completer
	activityLimit  int
	topCategories  int
	maxPerCategory int
	defaultLimit   int
}

// New creates a recommendation service.
func New(listings ListingReader, completer Completer) *Service {
	return &Service{
		listings:       listings,
		completer:      completer,
		activityLimit:  defaultActivityLimit,
		topCategories:  defaultTopCategories,
		maxPerCategory: defaultMaxPerCategory,
		defaultLimit:   defaultLimit,
	}
}

// WithLimits overrides the pipeline bounds. Zero values keep the defaults.
func (s *Service) WithLimits(activityLimit, topCategories, maxPerCategory, limit int) *Service {
	if activityLimit > 0 {
		s.activityLimit = activityLimit
	}
	if topCategories > 0 {
		s.topCategories = topCategories
	}
	if maxPerCategory > 0 {
		s.maxPerCategory = maxPerCategory
	}
	if limit > 0 {
		s.defaultLimit = limit
	}
	return s
}

// Preference is the profile summary echoed back to the client.
type Preference struct {
	TopCategories []string `json:"topCategories"`
	AvgPrice      int      `json:"avgPrice"`
}

// Result is the recommendation response payload.
type Result struct {
	Recommendations []domain.Candidate `json:"recommendations"`
	UserPreference  *Preference        `json:"userPreference,omitempty"`
	Message         string             `json:"message,omitempty"`
}

// Recommend produces up to limit recommendations for the user. A user with
// no activity or no eligible candidates gets an empty response with an
// explanatory message, never an error.
func (s *Service) Recommend(ctx context.Context, userID string, limit int) (Result, error) {
	if strings.TrimSpace(userID) == "" {
		return Result{}, domain.ErrInvalidUser
	}
	if limit <= 0 {
		limit = s.defaultLimit
	}
	if maxCandidates := s.topCategories * s.maxPerCategory; limit > maxCandidates {
		limit = maxCandidates
	}

	profile, err := s.buildProfile(ctx, userID)
	if err != nil {
		return Result{}, err
	}
	if profile == nil {
		return Result{
			Recommendations: []domain.Candidate{},
			Message:         insufficientActivityMessage,
		}, nil
	}

	topCategories := profile.TopCategories(s.topCategories)
	avgPrice := profile.AveragePrice()
	preference := &Preference{TopCategories: topCategories, AvgPrice: avgPrice}

	candidates, err := s.selectCandidates(ctx, userID, topCategories)
	if err != nil {
		return Result{}, err
	}
	if len(candidates) == 0 {
		return Result{
			Recommendations: []domain.Candidate{},
			UserPreference:  preference,
			Message:         noCandidatesMessage,
		}, nil
	}

	// Truncating before reason assignment bounds the prompt size.
	if len(candidates) > limit {
		candidates = candidates[:limit]
	}

	return Result{
		Recommendations: s.assignReasons(ctx, candidates, topCategories, avgPrice),
		UserPreference:  preference,
	}, nil
}
