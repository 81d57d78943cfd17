package domain

import (
	"sort"
	"strings"
)

// DefaultReason is assigned to a candidate when the completion service did
// not return a usable rationale for it.
const DefaultReason = "취향에 맞을 것 같아요"

// Candidate is a listing eligible for recommendation, with the short
// rationale attached by reason assignment.
type Candidate struct {
	ID       string `json:"productId"`
	Title    string `json:"title"`
	Category string `json:"category"`
	Price    int    `json:"price"`
	Reason   string `json:"reason"`
}

// PreferenceProfile aggregates one user's favorited and viewed listings.
// It is built fresh per request and never persisted.
type PreferenceProfile struct {
	CategoryCounts map[string]int
	Prices         []int
	TitleTokens    []string
}

// NewPreferenceProfile returns an empty profile ready for Observe calls.
func NewPreferenceProfile() *PreferenceProfile {
	return &PreferenceProfile{CategoryCounts: make(map[string]int)}
}

// Observe folds one listing into the profile. A listing that is both
// favorited and viewed is observed twice so it weighs more.
func (p *PreferenceProfile) Observe(doc Document) {
	if doc.Category != "" {
		p.CategoryCounts[doc.Category]++
	}
	p.Prices = append(p.Prices, doc.Price)
	for _, tok := range strings.Fields(doc.Title) {
		if len([]rune(tok)) > 1 {
			p.TitleTokens = append(p.TitleTokens, tok)
		}
	}
}

// Empty reports whether no listing was observed.
func (p *PreferenceProfile) Empty() bool {
	return len(p.CategoryCounts) == 0 && len(p.Prices) == 0
}

// TopCategories returns up to n categories ordered by observation count
// descending. Equal counts are ordered lexicographically so the result is
// deterministic.
func (p *PreferenceProfile) TopCategories(n int) []string {
	cats := make([]string, 0, len(p.CategoryCounts))
	for c := range p.CategoryCounts {
		cats = append(cats, c)
	}
	sort.Slice(cats, func(i, j int) bool {
		ci, cj := p.CategoryCounts[cats[i]], p.CategoryCounts[cats[j]]
		if ci != cj {
			return ci > cj
		}
		return cats[i] < cats[j]
	})
	if len(cats) > n {
		cats = cats[:n]
	}
	return cats
}

// AveragePrice returns the integer floor of the mean observed price,
// or 0 when nothing was observed.
func (p *PreferenceProfile) AveragePrice() int {
	if len(p.Prices) == 0 {
		return 0
	}
	sum := 0
	for _, v := range p.Prices {
		sum += v
	}
	return sum / len(p.Prices)
}
