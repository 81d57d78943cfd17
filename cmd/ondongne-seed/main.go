// Fixture loader for the ondongne API.
// Reads a JSON fixture file and upserts listings and news into the document
// store so a local stack has data to search and recommend from.
//
// Usage:
//
//	ondongne-seed -file fixtures/seed.json
//
// Env vars:
//
//	REDIS_ADDR     — store address (default: localhost:6379)
//	REDIS_PASSWORD — store password
//	KEY_PREFIX     — key prefix (default: ondongne:)
package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"

	dbRedis "github.com/ghwns6404/ondongne/internal/db/redis"
	"github.com/ghwns6404/ondongne/internal/domain"
	listingrepo "github.com/ghwns6404/ondongne/internal/repository/listing"
	newsrepo "github.com/ghwns6404/ondongne/internal/repository/news"
)

func main() {
	_ = godotenv.Load()
	cfg := parseFlags()

	ctx, cancel := signal.NotifyContext(
		context.Background(), syscall.SIGTERM, syscall.SIGINT,
	)
	defer cancel()

	if err := run(ctx, cfg); err != nil {
		cancel()
		log.Fatal(err)
	}
}

type config struct {
	file    string
	timeout int
}

func parseFlags() config {
	cfg := config{}
	flag.StringVar(&cfg.file, "file", "fixtures/seed.json", "path to the JSON fixture file")
	flag.IntVar(&cfg.timeout, "readiness-timeout", 10, "seconds to wait for the store")
	flag.Parse()
	return cfg
}

// fixture is the on-disk shape of a seed file.
type fixture struct {
	Listings  []listingFixture `json:"listings"`
	News      []newsFixture    `json:"news"`
	AdminNews []newsFixture    `json:"adminNews"`
}

type listingFixture struct {
	ID          string   `json:"id"`
	Title       string   `json:"title"`
	Description string   `json:"description"`
	ImageURLs   []string `json:"imageUrls"`
	Price       int      `json:"price"`
	CreatedAt   string   `json:"createdAt"`
	Category    string   `json:"category"`
	SellerID    string   `json:"sellerId"`
	FavoritedBy []string `json:"favoritedBy"`
	ViewedBy    []string `json:"viewedBy"`
	ViewCount   int      `json:"viewCount"`
	Status      string   `json:"status"`
}

type newsFixture struct {
	ID        string   `json:"id"`
	Title     string   `json:"title"`
	Content   string   `json:"content"`
	ImageURLs []string `json:"imageUrls"`
	CreatedAt string   `json:"createdAt"`
}

func run(ctx context.Context, cfg config) error {
	start := time.Now()

	data, err := os.ReadFile(cfg.file)
	if err != nil {
		return fmt.Errorf("read fixture: %w", err)
	}

	var fix fixture
	if err := json.Unmarshal(data, &fix); err != nil {
		return fmt.Errorf("parse fixture: %w", err)
	}

	store, err := dbRedis.NewStore(dbRedis.Config{
		Addrs:    []string{env("REDIS_ADDR", "localhost:6379")},
		Password: env("REDIS_PASSWORD", ""),
	})
	if err != nil {
		return fmt.Errorf("connect store: %w", err)
	}
	defer store.Close()

	if err := store.WaitForReady(ctx, time.Duration(cfg.timeout)*time.Second); err != nil {
		return fmt.Errorf("store not ready: %w", err)
	}

	prefix := env("KEY_PREFIX", "ondongne:")
	listings := listingrepo.New(store, prefix)
	news := newsrepo.New(store, prefix)

	for _, l := range fix.Listings {
		if err := listings.Upsert(ctx, listingDoc(l)); err != nil {
			return fmt.Errorf("upsert listing %s: %w", l.ID, err)
		}
	}
	log.Printf("listings: %d loaded", len(fix.Listings))

	for _, n := range fix.News {
		if err := news.Upsert(ctx, newsrepo.Collection, newsDoc(n)); err != nil {
			return fmt.Errorf("upsert news %s: %w", n.ID, err)
		}
	}
	for _, n := range fix.AdminNews {
		if err := news.Upsert(ctx, newsrepo.AdminCollection, newsDoc(n)); err != nil {
			return fmt.Errorf("upsert admin news %s: %w", n.ID, err)
		}
	}
	log.Printf("news: %d loaded (+%d admin)", len(fix.News), len(fix.AdminNews))

	log.Printf("DONE in %s", time.Since(start).Round(time.Millisecond))
	return nil
}

func listingDoc(l listingFixture) domain.Document {
	status := l.Status
	if status == "" {
		status = domain.StatusAvailable
	}
	return domain.Document{
		ID:          l.ID,
		Kind:        domain.KindProduct,
		Title:       l.Title,
		Body:        l.Description,
		ImageURLs:   l.ImageURLs,
		Price:       l.Price,
		CreatedAt:   l.CreatedAt,
		Category:    l.Category,
		SellerID:    l.SellerID,
		FavoritedBy: l.FavoritedBy,
		ViewedBy:    l.ViewedBy,
		ViewCount:   l.ViewCount,
		Status:      status,
	}
}

func newsDoc(n newsFixture) domain.Document {
	return domain.Document{
		ID:        n.ID,
		Kind:      domain.KindNews,
		Title:     n.Title,
		Body:      n.Content,
		ImageURLs: n.ImageURLs,
		CreatedAt: n.CreatedAt,
	}
}

func env(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
