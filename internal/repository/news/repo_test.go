package news

import (
	"context"
	"errors"
	"testing"

	"github.com/ghwns6404/ondongne/internal/domain"
)

// mockStore implements the consumer interface for tests.
type mockStore struct {
	jsonSetFn      func(ctx context.Context, key, path string, data []byte) error
	jsonGetMultiFn func(ctx context.Context, keys []string) ([][]byte, error)
	saddFn         func(ctx context.Context, key string, members ...string) error
	smembersFn     func(ctx context.Context, key string) ([]string, error)
}

func (m *mockStore) JSONSet(ctx context.Context, key, path string, data []byte) error {
	if m.jsonSetFn != nil {
		return m.jsonSetFn(ctx, key, path, data)
	}
	return nil
}

func (m *mockStore) JSONGetMulti(ctx context.Context, keys []string) ([][]byte, error) {
	if m.jsonGetMultiFn != nil {
		return m.jsonGetMultiFn(ctx, keys)
	}
	return make([][]byte, len(keys)), nil
}

func (m *mockStore) SAdd(ctx context.Context, key string, members ...string) error {
	if m.saddFn != nil {
		return m.saddFn(ctx, key, members...)
	}
	return nil
}

func (m *mockStore) SMembers(ctx context.Context, key string) ([]string, error) {
	if m.smembersFn != nil {
		return m.smembersFn(ctx, key)
	}
	return nil, nil
}

const rawNews = `{
  "title": "플리마켓 안내",
  "content": "이번 주 토요일 중앙공원에서 열립니다",
  "imageUrls": ["https://img/n1.jpg"],
  "createdAt": "2026-08-24T08:00:00Z"
}`

func TestAll(t *testing.T) {
	ms := &mockStore{}
	ms.smembersFn = func(_ context.Context, key string) ([]string, error) {
		if key != "test:coll:news" {
			t.Errorf("unexpected collection key: %s", key)
		}
		return []string{"n1"}, nil
	}
	ms.jsonGetMultiFn = func(_ context.Context, keys []string) ([][]byte, error) {
		if len(keys) != 1 || keys[0] != "test:doc:news:n1" {
			t.Errorf("unexpected doc keys: %v", keys)
		}
		return [][]byte{[]byte(rawNews)}, nil
	}
	repo := New(ms, "test:")

	docs, err := repo.All(context.Background(), Collection)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(docs) != 1 {
		t.Fatalf("expected 1 doc, got %d", len(docs))
	}
	got := docs[0]
	if got.ID != "n1" || got.Kind != domain.KindNews {
		t.Errorf("unexpected identity: %s/%s", got.ID, got.Kind)
	}
	if got.Body != "이번 주 토요일 중앙공원에서 열립니다" {
		t.Errorf("unexpected body: %q", got.Body)
	}
	// News posts never carry listing fields.
	if got.Price != 0 || got.Category != "" || got.SellerID != "" {
		t.Errorf("news doc carries listing fields: %+v", got)
	}
}

func TestAll_AdminCollectionUsesOwnKeys(t *testing.T) {
	ms := &mockStore{}
	ms.smembersFn = func(_ context.Context, key string) ([]string, error) {
		if key != "test:coll:adminNews" {
			t.Errorf("unexpected collection key: %s", key)
		}
		return []string{"a1"}, nil
	}
	ms.jsonGetMultiFn = func(_ context.Context, keys []string) ([][]byte, error) {
		if keys[0] != "test:doc:adminNews:a1" {
			t.Errorf("unexpected doc key: %s", keys[0])
		}
		return [][]byte{[]byte(rawNews)}, nil
	}
	repo := New(ms, "test:")

	docs, err := repo.All(context.Background(), AdminCollection)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(docs) != 1 {
		t.Fatalf("expected 1 doc, got %d", len(docs))
	}
}

func TestAll_StoreErrorPropagates(t *testing.T) {
	storeErr := errors.New("connection refused")
	ms := &mockStore{
		smembersFn: func(_ context.Context, _ string) ([]string, error) {
			return nil, storeErr
		},
	}
	repo := New(ms, "test:")

	_, err := repo.All(context.Background(), Collection)
	if !errors.Is(err, storeErr) {
		t.Fatalf("expected store error, got %v", err)
	}
}

func TestUpsert(t *testing.T) {
	ms := &mockStore{}
	var jsonKey, saddKey string
	ms.jsonSetFn = func(_ context.Context, key, path string, _ []byte) error {
		jsonKey = key
		return nil
	}
	ms.saddFn = func(_ context.Context, key string, members ...string) error {
		saddKey = key
		return nil
	}
	repo := New(ms, "test:")

	doc := domain.Document{ID: "n1", Kind: domain.KindNews, Title: "소식"}
	if err := repo.Upsert(context.Background(), Collection, doc); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if jsonKey != "test:doc:news:n1" {
		t.Errorf("unexpected doc key: %s", jsonKey)
	}
	if saddKey != "test:coll:news" {
		t.Errorf("unexpected index key: %s", saddKey)
	}
}
