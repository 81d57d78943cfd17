package search

import (
	"context"
	"fmt"
	"strings"

	"github.com/ghwns6404/ondongne/internal/domain"
	"github.com/ghwns6404/ondongne/internal/repository/news"
)

// defaultResultBudget caps the ranked result set.
const defaultResultBudget = 10

// Service runs the keyword search pipeline: extraction, scoring across the
// source collections, ranking, and summary generation.
type Service struct {
	listings  ListingReader
	news      NewsReader
	completer Completer
	budget    int
}

// New creates a search service.
func New(listings ListingReader, newsReader NewsReader, completer Completer) *Service {
	return &Service{
		listings:  listings,
		news:      newsReader,
		completer: completer,
		budget:    defaultResultBudget,
	}
}

// WithResultBudget overrides the ranked result cap.
func (s *Service) WithResultBudget(n int) *Service {
	if n > 0 {
		s.budget = n
	}
	return s
}

// Result is the search response payload.
type Result struct {
	Message  string                `json:"message"`
	Results  []domain.ScoredResult `json:"results"`
	Keywords []string              `json:"keywords"`
}

// Search executes the pipeline for one query. Completion-service failures
// degrade inside their stage; store failures propagate to the caller.
func (s *Service) Search(ctx context.Context, query string) (Result, error) {
	query = strings.TrimSpace(query)
	if query == "" {
		return Result{}, domain.ErrInvalidQuery
	}

	keywords := s.extractKeywords(ctx, query)

	// Scan order fixes the tie-break order of equal scores:
	// listings, then news, then admin news.
	scored := make([]domain.ScoredResult, 0, s.budget)

	listings, err := s.listings.All(ctx)
	if err != nil {
		return Result{}, fmt.Errorf("scan listings: %w", err)
	}
	scored = appendMatches(scored, listings, keywords)

	for _, collection := range []string{news.Collection, news.AdminCollection} {
		posts, err := s.news.All(ctx, collection)
		if err != nil {
			return Result{}, fmt.Errorf("scan %s: %w", collection, err)
		}
		scored = appendMatches(scored, posts, keywords)
	}

	ranked := rank(scored, s.budget)

	return Result{
		Message:  s.summarize(ctx, query, ranked),
		Results:  ranked,
		Keywords: keywords,
	}, nil
}

// appendMatches scores each document and keeps only positive matches.
func appendMatches(dst []domain.ScoredResult, docs []domain.Document, keywords []string) []domain.ScoredResult {
	for _, doc := range docs {
		if score := scoreDocument(doc, keywords); score > 0 {
			dst = append(dst, project(doc, score))
		}
	}
	return dst
}
