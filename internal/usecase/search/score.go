package search

import (
	"sort"
	"strings"

	"github.com/ghwns6404/ondongne/internal/domain"
)

// Title hits weigh 3x body hits: the title is the stronger relevance
// signal when collections are scanned in full.
const (
	titleWeight = 3
	bodyWeight  = 1
)

// newsDescriptionRunes caps the description projected for news posts.
const newsDescriptionRunes = 100

// scoreDocument returns the lexical match score of doc against keywords:
// each keyword adds titleWeight when it is a substring of the title and
// bodyWeight when it is a substring of the body, case-insensitively and
// additively.
func scoreDocument(doc domain.Document, keywords []string) int {
	title := strings.ToLower(doc.Title)
	body := strings.ToLower(doc.Body)

	score := 0
	for _, kw := range keywords {
		k := strings.ToLower(kw)
		if strings.Contains(title, k) {
			score += titleWeight
		}
		if strings.Contains(body, k) {
			score += bodyWeight
		}
	}
	return score
}

// rank sorts results by score descending and truncates to budget. The sort
// is stable: equal scores keep the collection scan order.
func rank(results []domain.ScoredResult, budget int) []domain.ScoredResult {
	sort.SliceStable(results, func(i, j int) bool {
		return results[i].MatchScore > results[j].MatchScore
	})
	if len(results) > budget {
		results = results[:budget]
	}
	return results
}

// project builds the client-facing result for a matched document. News
// bodies are truncated and carry no price.
func project(doc domain.Document, score int) domain.ScoredResult {
	res := domain.ScoredResult{
		ID:          doc.ID,
		Kind:        doc.Kind,
		Title:       doc.Title,
		Description: doc.Body,
		ImageURL:    doc.FirstImageURL(),
		CreatedAt:   doc.CreatedAt,
		MatchScore:  score,
	}
	if doc.Kind == domain.KindNews {
		res.Description = truncateRunes(doc.Body, newsDescriptionRunes)
	} else {
		price := doc.Price
		res.Price = &price
	}
	return res
}

func truncateRunes(s string, n int) string {
	runes := []rune(s)
	if len(runes) <= n {
		return s
	}
	return string(runes[:n])
}
