package domain

// ScoredResult is the projection of a matched document returned by search.
// Price is nil for news posts; Description is the news body truncated to
// 100 runes at projection time.
type ScoredResult struct {
	ID          string `json:"id"`
	Kind        Kind   `json:"type"`
	Title       string `json:"title"`
	Description string `json:"description"`
	ImageURL    string `json:"imageUrl,omitempty"`
	Price       *int   `json:"price"`
	CreatedAt   string `json:"createdAt"`
	MatchScore  int    `json:"matchScore"`
}
