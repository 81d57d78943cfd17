package news

import (
	"context"
	"fmt"

	"github.com/ghwns6404/ondongne/internal/domain"
)

// Store collection names for news posts. Admin news is a separate
// collection with the same document shape.
const (
	Collection      = "news"
	AdminCollection = "adminNews"
)

// store is the consumer interface for news posts (ISP).
type store interface {
	JSONSet(ctx context.Context, key, path string, data []byte) error
	JSONGetMulti(ctx context.Context, keys []string) ([][]byte, error)
	SAdd(ctx context.Context, key string, members ...string) error
	SMembers(ctx context.Context, key string) ([]string, error)
}

// Repo provides full-collection scans over the news collections.
type Repo struct {
	store  store
	prefix string
}

// New creates a news repository. keyPrefix namespaces every store key.
func New(s store, keyPrefix string) *Repo {
	return &Repo{store: s, prefix: keyPrefix}
}

// All returns every post in the given news collection.
func (r *Repo) All(ctx context.Context, collection string) ([]domain.Document, error) {
	ids, err := r.store.SMembers(ctx, r.prefix+"coll:"+collection)
	if err != nil {
		return nil, fmt.Errorf("scan %s: %w", collection, err)
	}
	if len(ids) == 0 {
		return nil, nil
	}
	keys := make([]string, len(ids))
	for i, id := range ids {
		keys[i] = r.docKey(collection, id)
	}
	raws, err := r.store.JSONGetMulti(ctx, keys)
	if err != nil {
		return nil, fmt.Errorf("fetch %s: %w", collection, err)
	}
	docs := make([]domain.Document, 0, len(ids))
	for i, raw := range raws {
		if raw == nil {
			continue
		}
		doc, err := parseDoc(ids[i], raw)
		if err != nil {
			return nil, fmt.Errorf("parse %s %s: %w", collection, ids[i], err)
		}
		docs = append(docs, doc)
	}
	return docs, nil
}

// Upsert stores a news post and maintains the collection index.
func (r *Repo) Upsert(ctx context.Context, collection string, doc domain.Document) error {
	data, err := buildDoc(doc)
	if err != nil {
		return fmt.Errorf("marshal %s %s: %w", collection, doc.ID, err)
	}
	key := r.docKey(collection, doc.ID)
	if err := r.store.JSONSet(ctx, key, "$", data); err != nil {
		return fmt.Errorf("json.set %s: %w", key, err)
	}
	if err := r.store.SAdd(ctx, r.prefix+"coll:"+collection, doc.ID); err != nil {
		return fmt.Errorf("index %s %s: %w", collection, doc.ID, err)
	}
	return nil
}

func (r *Repo) docKey(collection, id string) string {
	return r.prefix + "doc:" + collection + ":" + id
}
