package listing

import (
	"context"
	"fmt"

	"github.com/ghwns6404/ondongne/internal/domain"
)

// Collection is the store collection name for marketplace listings.
const Collection = "products"

// store is the consumer interface for listings (ISP).
type store interface {
	JSONSet(ctx context.Context, key, path string, data []byte) error
	JSONGetMulti(ctx context.Context, keys []string) ([][]byte, error)
	SAdd(ctx context.Context, key string, members ...string) error
	SMembers(ctx context.Context, key string) ([]string, error)
	ZAdd(ctx context.Context, key, member string, score float64) error
	ZRevRange(ctx context.Context, key string, start, stop int64) ([]string, error)
}

// Repo provides the listing query shapes used by the search and
// recommendation pipelines: full scan, per-user activity lookups, and
// per-category view-count ranking.
type Repo struct {
	store  store
	prefix string
}

// New creates a listing repository. keyPrefix namespaces every store key.
func New(s store, keyPrefix string) *Repo {
	return &Repo{store: s, prefix: keyPrefix}
}

// All returns every listing in the collection.
func (r *Repo) All(ctx context.Context) ([]domain.Document, error) {
	ids, err := r.store.SMembers(ctx, r.prefix+"coll:"+Collection)
	if err != nil {
		return nil, fmt.Errorf("scan %s: %w", Collection, err)
	}
	return r.fetch(ctx, ids)
}

// FavoritedBy returns up to limit listings the user has favorited.
func (r *Repo) FavoritedBy(ctx context.Context, userID string, limit int) ([]domain.Document, error) {
	return r.byActivity(ctx, r.prefix+"user:"+userID+":favorites", limit)
}

// ViewedBy returns up to limit listings the user has viewed.
func (r *Repo) ViewedBy(ctx context.Context, userID string, limit int) ([]domain.Document, error) {
	return r.byActivity(ctx, r.prefix+"user:"+userID+":views", limit)
}

// TopByCategory returns up to limit available listings in the category,
// ordered by view count descending. The category index tracks available
// listings; status is re-checked after load in case the index is stale.
func (r *Repo) TopByCategory(ctx context.Context, category string, limit int) ([]domain.Document, error) {
	if limit <= 0 {
		return nil, nil
	}
	ids, err := r.store.ZRevRange(ctx, r.prefix+"cat:"+category, 0, int64(limit)-1)
	if err != nil {
		return nil, fmt.Errorf("rank category %q: %w", category, err)
	}
	docs, err := r.fetch(ctx, ids)
	if err != nil {
		return nil, err
	}
	available := docs[:0]
	for _, d := range docs {
		if d.Status == domain.StatusAvailable {
			available = append(available, d)
		}
	}
	return available, nil
}

// Upsert stores a listing and maintains its collection, activity, and
// category indexes. Used by the seed loader and write-path triggers.
func (r *Repo) Upsert(ctx context.Context, doc domain.Document) error {
	data, err := buildDoc(doc)
	if err != nil {
		return fmt.Errorf("marshal listing %s: %w", doc.ID, err)
	}
	key := r.docKey(doc.ID)
	if err := r.store.JSONSet(ctx, key, "$", data); err != nil {
		return fmt.Errorf("json.set %s: %w", key, err)
	}
	if err := r.store.SAdd(ctx, r.prefix+"coll:"+Collection, doc.ID); err != nil {
		return fmt.Errorf("index listing %s: %w", doc.ID, err)
	}
	for _, uid := range doc.FavoritedBy {
		if err := r.store.SAdd(ctx, r.prefix+"user:"+uid+":favorites", doc.ID); err != nil {
			return fmt.Errorf("index favorite %s/%s: %w", uid, doc.ID, err)
		}
	}
	for _, uid := range doc.ViewedBy {
		if err := r.store.SAdd(ctx, r.prefix+"user:"+uid+":views", doc.ID); err != nil {
			return fmt.Errorf("index view %s/%s: %w", uid, doc.ID, err)
		}
	}
	if doc.Status == domain.StatusAvailable && doc.Category != "" {
		err := r.store.ZAdd(ctx, r.prefix+"cat:"+doc.Category, doc.ID, float64(doc.ViewCount))
		if err != nil {
			return fmt.Errorf("rank listing %s: %w", doc.ID, err)
		}
	}
	return nil
}

func (r *Repo) byActivity(ctx context.Context, key string, limit int) ([]domain.Document, error) {
	ids, err := r.store.SMembers(ctx, key)
	if err != nil {
		return nil, fmt.Errorf("activity %s: %w", key, err)
	}
	if limit > 0 && len(ids) > limit {
		ids = ids[:limit]
	}
	return r.fetch(ctx, ids)
}

func (r *Repo) fetch(ctx context.Context, ids []string) ([]domain.Document, error) {
	if len(ids) == 0 {
		return nil, nil
	}
	keys := make([]string, len(ids))
	for i, id := range ids {
		keys[i] = r.docKey(id)
	}
	raws, err := r.store.JSONGetMulti(ctx, keys)
	if err != nil {
		return nil, fmt.Errorf("fetch listings: %w", err)
	}
	docs := make([]domain.Document, 0, len(ids))
	for i, raw := range raws {
		if raw == nil {
			continue
		}
		doc, err := parseDoc(ids[i], raw)
		if err != nil {
			return nil, fmt.Errorf("parse listing %s: %w", ids[i], err)
		}
		docs = append(docs, doc)
	}
	return docs, nil
}

func (r *Repo) docKey(id string) string {
	return r.prefix + "doc:" + Collection + ":" + id
}
