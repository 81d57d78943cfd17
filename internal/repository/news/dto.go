package news

import (
	"encoding/json"
	"time"

	"github.com/ghwns6404/ondongne/internal/domain"
)

// docDTO is the stored JSON shape of a news post.
type docDTO struct {
	Title     string   `json:"title"`
	Content   string   `json:"content"`
	ImageURLs []string `json:"imageUrls,omitempty"`
	CreatedAt string   `json:"createdAt,omitempty"`
}

func parseDoc(id string, raw []byte) (domain.Document, error) {
	var dto docDTO
	if err := json.Unmarshal(raw, &dto); err != nil {
		return domain.Document{}, err
	}
	return domain.Document{
		ID:        id,
		Kind:      domain.KindNews,
		Title:     dto.Title,
		Body:      dto.Content,
		ImageURLs: dto.ImageURLs,
		CreatedAt: normalizeCreatedAt(dto.CreatedAt),
	}, nil
}

func buildDoc(doc domain.Document) ([]byte, error) {
	return json.Marshal(docDTO{
		Title:     doc.Title,
		Content:   doc.Body,
		ImageURLs: doc.ImageURLs,
		CreatedAt: doc.CreatedAt,
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
