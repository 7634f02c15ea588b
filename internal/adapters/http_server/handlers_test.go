package httpserver_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	httpserver "review_intel/internal/adapters/http_server"
	"review_intel/internal/app"
	"review_intel/internal/domain"
)

type stubRepo struct{ reviews []domain.Review }

func (s *stubRepo) UpsertReviews(ctx context.Context, rs []domain.Review) error { return nil }
func (s *stubRepo) LogReject(ctx context.Context, source, category, reason string) error {
	return nil
}
func (s *stubRepo) ListReviews(ctx context.Context, q domain.ReviewsQuery) ([]domain.Review, error) {
	if q.Category == "" {
		return s.reviews, nil
	}
	var out []domain.Review
	for _, r := range s.reviews {
		if r.Category == q.Category {
			out = append(out, r)
		}
	}
	return out, nil
}
func (s *stubRepo) CountReviews(ctx context.Context, source string) (int, error) {
	return len(s.reviews), nil
}

type nopCache struct{}

func (nopCache) Get(ctx context.Context, key string, dst any) (bool, error)   { return false, nil }
func (nopCache) Set(ctx context.Context, key string, v any, ttlSec int) error { return nil }
func (nopCache) Del(ctx context.Context, key string) error                    { return nil }

func newTestServer(reviews []domain.Review) *httptest.Server {
	svc := app.NewAnalyticsService(&stubRepo{reviews: reviews}, nopCache{}, time.Minute,
		[]string{"Books", "Electronics", "Clothing"})
	srv := httpserver.New()
	srv.MountHandlers(&httpserver.Handlers{A: svc, Source: "master"})
	return httptest.NewServer(srv.Mux())
}

func seed() []domain.Review {
	return []domain.Review{
		{ProductTitle: "Kindle Paperwhite", Category: "Electronics", Rating: 5},
		{ProductTitle: "Kindle Paperwhite", Category: "Electronics", Rating: 4},
		{ProductTitle: "War and Peace", Category: "Books", Rating: 4},
		{ProductTitle: "Cheap Socks", Category: "Clothing", Rating: 2},
	}
}

func TestListProducts(t *testing.T) {
	ts := newTestServer(seed())
	defer ts.Close()

	resp, err := http.Get(ts.URL + "/v1/products")
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("status: %d", resp.StatusCode)
	}
	if et := resp.Header.Get("ETag"); et == "" {
		t.Fatal("expected an ETag header")
	}

	var body struct {
		Items []app.ProductView `json:"items"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if len(body.Items) != 3 {
		t.Fatalf("expected 3 products, got %d", len(body.Items))
	}
	first := body.Items[0]
	if first.ProductTitle != "Kindle Paperwhite" || first.AvgRating != 4.5 || first.Verdict != domain.VerdictStrongBuy {
		t.Fatalf("unexpected first product: %+v", first)
	}
	if first.Sentiment.Positive != 2 {
		t.Fatalf("unexpected sentiment breakdown: %+v", first.Sentiment)
	}
}

func TestListProducts_FilterAndEmptyResult(t *testing.T) {
	ts := newTestServer(seed())
	defer ts.Close()

	resp, err := http.Get(ts.URL + "/v1/products?category=Books&q=kindle")
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	defer resp.Body.Close()
	// empty result is still a 200 with an empty items list
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("status: %d", resp.StatusCode)
	}
	var body struct {
		Items []app.ProductView `json:"items"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if len(body.Items) != 0 {
		t.Fatalf("expected no items, got %+v", body.Items)
	}
}

func TestStats(t *testing.T) {
	ts := newTestServer(seed())
	defer ts.Close()

	resp, err := http.Get(ts.URL + "/v1/stats")
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	defer resp.Body.Close()

	var tot domain.Totals
	if err := json.NewDecoder(resp.Body).Decode(&tot); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if tot.Products != 3 || tot.Reviews != 4 {
		t.Fatalf("unexpected totals: %+v", tot)
	}
}

func TestRecommend(t *testing.T) {
	ts := newTestServer(seed())
	defer ts.Close()

	resp, err := http.Get(ts.URL + "/v1/recommend?q=best+book")
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("status: %d", resp.StatusCode)
	}

	var rec domain.Recommendation
	if err := json.NewDecoder(resp.Body).Decode(&rec); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if rec.Product.ProductTitle != "War and Peace" || rec.ResolvedCategory != "Books" {
		t.Fatalf("unexpected recommendation: %+v", rec)
	}
}

func TestRecommend_NoCandidates(t *testing.T) {
	ts := newTestServer([]domain.Review{
		{ProductTitle: "Pixel 9", Category: "Electronics", Rating: 4},
	})
	defer ts.Close()

	resp, err := http.Get(ts.URL + "/v1/recommend?q=best+novel")
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusNotFound {
		t.Fatalf("expected 404 problem for empty candidate subset, got %d", resp.StatusCode)
	}
	if ct := resp.Header.Get("Content-Type"); ct != "application/problem+json" {
		t.Fatalf("expected problem+json, got %s", ct)
	}
}

func TestETagNotModified(t *testing.T) {
	ts := newTestServer(seed())
	defer ts.Close()

	first, err := http.Get(ts.URL + "/v1/stats")
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	first.Body.Close()
	etag := first.Header.Get("ETag")

	req, _ := http.NewRequest(http.MethodGet, ts.URL+"/v1/stats", nil)
	req.Header.Set("If-None-Match", etag)
	second, err := http.DefaultClient.Do(req)
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	second.Body.Close()
	if second.StatusCode != http.StatusNotModified {
		t.Fatalf("expected 304, got %d", second.StatusCode)
	}
}
