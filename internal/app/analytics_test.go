package app_test

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"review_intel/internal/app"
	"review_intel/internal/domain"
)

// ---- fakes ----

type fakeRepo struct {
	reviews []domain.Review
	rejects []string
	listed  int
}

func (f *fakeRepo) UpsertReviews(ctx context.Context, rs []domain.Review) error { return nil }
func (f *fakeRepo) LogReject(ctx context.Context, source, category, reason string) error {
	f.rejects = append(f.rejects, category+":"+reason)
	return nil
}
func (f *fakeRepo) ListReviews(ctx context.Context, q domain.ReviewsQuery) ([]domain.Review, error) {
	f.listed++
	if q.Category == "" {
		return f.reviews, nil
	}
	var out []domain.Review
	for _, r := range f.reviews {
		if r.Category == q.Category {
			out = append(out, r)
		}
	}
	return out, nil
}
func (f *fakeRepo) CountReviews(ctx context.Context, source string) (int, error) {
	return len(f.reviews), nil
}

type fakeCache struct {
	store map[string][]byte
	sets  int
	dels  []string
}

func (c *fakeCache) Get(ctx context.Context, key string, dst any) (bool, error) {
	if c.store == nil {
		return false, nil
	}
	b, ok := c.store[key]
	if !ok {
		return false, nil
	}
	return true, json.Unmarshal(b, dst)
}
func (c *fakeCache) Set(ctx context.Context, key string, v any, ttlSec int) error {
	if c.store == nil {
		c.store = map[string][]byte{}
	}
	b, err := json.Marshal(v)
	if err != nil {
		return err
	}
	c.store[key] = b
	c.sets++
	return nil
}
func (c *fakeCache) Del(ctx context.Context, key string) error {
	delete(c.store, key)
	c.dels = append(c.dels, key)
	return nil
}

var categories = []string{"Books", "Electronics", "Clothing"}

func testReviews() []domain.Review {
	return []domain.Review{
		{ProductTitle: "Widget A", Category: "Electronics", Rating: 5},
		{ProductTitle: "Widget A", Category: "Electronics", Rating: 2},
		{ProductTitle: "Widget B", Category: "Books", Rating: 4},
	}
}

// ---- tests ----

func TestProducts_AggregatesAndEnriches(t *testing.T) {
	repo := &fakeRepo{reviews: testReviews()}
	svc := app.NewAnalyticsService(repo, &fakeCache{}, 10*time.Minute, categories)

	out, err := svc.Products(context.Background(), "master", domain.ProductsQuery{})
	if err != nil {
		t.Fatalf("err: %v", err)
	}
	if len(out) != 2 {
		t.Fatalf("expected 2 products, got %d", len(out))
	}

	a := out[0]
	if a.ProductTitle != "Widget A" || a.ReviewCount != 2 || a.AvgRating != 3.5 {
		t.Fatalf("unexpected Widget A: %+v", a)
	}
	if a.Verdict != domain.VerdictMixed {
		t.Fatalf("Widget A verdict = %s, want Mixed", a.Verdict)
	}
	if a.Sentiment.Positive != 1 || a.Sentiment.Negative != 1 || a.Sentiment.Neutral != 0 {
		t.Fatalf("unexpected Widget A sentiment: %+v", a.Sentiment)
	}

	b := out[1]
	if b.Verdict != domain.VerdictStrongBuy || b.Sentiment.Positive != 1 {
		t.Fatalf("unexpected Widget B: %+v", b)
	}
}

func TestProducts_CacheMissThenHit(t *testing.T) {
	repo := &fakeRepo{reviews: testReviews()}
	cache := &fakeCache{}
	svc := app.NewAnalyticsService(repo, cache, 10*time.Minute, categories)

	if _, err := svc.Products(context.Background(), "master", domain.ProductsQuery{}); err != nil {
		t.Fatalf("err: %v", err)
	}
	if repo.listed != 1 || cache.sets != 1 {
		t.Fatalf("expected one repo read and one cache set, got %d/%d", repo.listed, cache.sets)
	}

	// Mutate repo to prove the second read is served from cache
	repo.reviews = nil
	out, err := svc.Products(context.Background(), "master", domain.ProductsQuery{})
	if err != nil {
		t.Fatalf("err: %v", err)
	}
	if repo.listed != 1 {
		t.Fatalf("expected cache hit, repo read %d times", repo.listed)
	}
	if len(out) != 2 {
		t.Fatalf("expected cached view with 2 products, got %d", len(out))
	}
}

func TestProducts_FilterAndSearch(t *testing.T) {
	repo := &fakeRepo{reviews: testReviews()}
	svc := app.NewAnalyticsService(repo, &fakeCache{}, time.Minute, categories)

	out, err := svc.Products(context.Background(), "master", domain.ProductsQuery{Category: "Books"})
	if err != nil {
		t.Fatalf("err: %v", err)
	}
	if len(out) != 1 || out[0].ProductTitle != "Widget B" {
		t.Fatalf("unexpected filtered view: %+v", out)
	}

	out, err = svc.Products(context.Background(), "master", domain.ProductsQuery{Search: "widget"})
	if err != nil {
		t.Fatalf("err: %v", err)
	}
	if len(out) != 2 {
		t.Fatalf("case-insensitive search should match both widgets, got %d", len(out))
	}

	out, err = svc.Products(context.Background(), "master", domain.ProductsQuery{Category: "Books", Search: "widget a"})
	if err != nil {
		t.Fatalf("err: %v", err)
	}
	if len(out) != 0 {
		t.Fatalf("AND of filters should be empty, got %+v", out)
	}
}

func TestTotals(t *testing.T) {
	repo := &fakeRepo{reviews: testReviews()}
	svc := app.NewAnalyticsService(repo, &fakeCache{}, time.Minute, categories)

	tot, err := svc.Totals(context.Background(), "master")
	if err != nil {
		t.Fatalf("err: %v", err)
	}
	if tot.Products != 2 || tot.Reviews != 3 {
		t.Fatalf("unexpected totals: %+v", tot)
	}
	// mean of per-product averages: (3.5 + 4.0) / 2
	if tot.AverageRating != 3.75 {
		t.Fatalf("average rating = %v, want 3.75", tot.AverageRating)
	}
}

func TestRecommend_QueryBeatsGlobalMax(t *testing.T) {
	repo := &fakeRepo{reviews: []domain.Review{
		{ProductTitle: "Great Novel", Category: "Books", Rating: 5},
		{ProductTitle: "Pixel 9", Category: "Electronics", Rating: 4},
	}}
	svc := app.NewAnalyticsService(repo, &fakeCache{}, time.Minute, categories)

	rec, ok, err := svc.Recommend(context.Background(), "master", "All", "best phone")
	if err != nil || !ok {
		t.Fatalf("expected recommendation, ok=%v err=%v", ok, err)
	}
	if rec.Product.ProductTitle != "Pixel 9" {
		t.Fatalf("recommended %q, want Pixel 9", rec.Product.ProductTitle)
	}
}

func TestRecommend_EmptySubsetIsExplicit(t *testing.T) {
	repo := &fakeRepo{reviews: []domain.Review{
		{ProductTitle: "Pixel 9", Category: "Electronics", Rating: 4},
	}}
	svc := app.NewAnalyticsService(repo, &fakeCache{}, time.Minute, categories)

	_, ok, err := svc.Recommend(context.Background(), "master", "", "best novel")
	if err != nil {
		t.Fatalf("empty subset must not be an error: %v", err)
	}
	if ok {
		t.Fatal("expected no recommendation for a category with no products")
	}
}

func TestInvalidate_DropsAllViewKeys(t *testing.T) {
	repo := &fakeRepo{reviews: testReviews()}
	cache := &fakeCache{}
	svc := app.NewAnalyticsService(repo, cache, time.Minute, categories)

	if _, err := svc.Products(context.Background(), "master", domain.ProductsQuery{}); err != nil {
		t.Fatalf("err: %v", err)
	}
	svc.Invalidate(context.Background(), "master")

	repo.reviews = append(repo.reviews, domain.Review{ProductTitle: "Widget C", Category: "Books", Rating: 3})
	out, err := svc.Products(context.Background(), "master", domain.ProductsQuery{})
	if err != nil {
		t.Fatalf("err: %v", err)
	}
	if len(out) != 3 {
		t.Fatalf("invalidation should force a rebuild, got %d products", len(out))
	}
}
