package listing

import (
	"encoding/json"
	"time"

	"github.com/ghwns6404/ondongne/internal/domain"
)

// docDTO is the stored JSON shape of a listing document.
type docDTO struct {
	Title       string   `json:"title"`
	Description string   `json:"description"`
	ImageURLs   []string `json:"imageUrls,omitempty"`
	Price       int      `json:"price"`
	CreatedAt   string   `json:"createdAt,omitempty"`
	Category    string   `json:"category"`
	SellerID    string   `json:"sellerId"`
	FavoritedBy []string `json:"favoritedBy,omitempty"`
	ViewedBy    []string `json:"viewedBy,omitempty"`
	ViewCount   int      `json:"viewCount"`
	Status      string   `json:"status"`
}

// parseDoc converts stored JSON into a domain Document. An absent or
// unparsable createdAt defaults to the current time, normalized to
// RFC-3339 UTC at this boundary.
func parseDoc(id string, raw []byte) (domain.Document, error) {
	var dto docDTO
	if err := json.Unmarshal(raw, &dto); err != nil {
		return domain.Document{}, err
	}
	return domain.Document{
		ID:          id,
		Kind:        domain.KindProduct,
		Title:       dto.Title,
		Body:        dto.Description,
		ImageURLs:   dto.ImageURLs,
		Price:       dto.Price,
		CreatedAt:   normalizeCreatedAt(dto.CreatedAt),
		Category:    dto.Category,
		SellerID:    dto.SellerID,
		FavoritedBy: dto.FavoritedBy,
		ViewedBy:    dto.ViewedBy,
		ViewCount:   dto.ViewCount,
		Status:      dto.Status,
	}, nil
}

// buildDoc converts a domain Document into its stored JSON shape.
func buildDoc(doc domain.Document) ([]byte, error) {
	return json.Marshal(docDTO{
		Title:       doc.Title,
		Description: doc.Body,
		ImageURLs:   doc.ImageURLs,
		Price:       doc.Price,
		CreatedAt:   doc.CreatedAt,
		Category:    doc.Category,
		SellerID:    doc.SellerID,
		FavoritedBy: doc.FavoritedBy,
		ViewedBy:    doc.ViewedBy,
		ViewCount:   doc.ViewCount,
		Status:      doc.Status,
	})
}

func normalizeCreatedAt(v string) string {
	if v == "" {
		return time.Now().UTC().Format(time.RFC3339)
	}
	t, err := time.Parse(time.RFC3339, v)
	if err != nil {
		return time.Now().UTC().Format(time.RFC3339)
	}
	return t.UTC().Format(time.RFC3339)
}
