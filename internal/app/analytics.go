package app

import (
	"context"
	"fmt"
	"time"

	"review_intel/internal/domain"
	"review_intel/internal/engine"
)

// materializedView is what gets cached per (source, category): the aggregated
// summaries plus per-product sentiment breakdowns, recomputed in full from the
// review table on every miss. There is no incremental update path.
type materializedView struct {
	Summaries  []domain.ProductSummary              `json:"summaries"`
	Breakdowns map[string]domain.SentimentBreakdown `json:"breakdowns"`
}

func viewKey(title, category string) string { return title + "|" + category }

// ProductView is a summary enriched with the fields the caller renders.
type ProductView struct {
	domain.ProductSummary
	Verdict   domain.Verdict            `json:"verdict"`
	Sentiment domain.SentimentBreakdown `json:"sentiment"`
}

// AnalyticsService serves the derived product view over the review table.
// The cache is keyed explicitly by (source, category); Invalidate is the one
// way entries die early, otherwise the TTL does it.
type AnalyticsService struct {
	repo       domain.ReviewRepository
	cache      domain.Cache
	cacheTTL   time.Duration
	categories []string
}

func NewAnalyticsService(r domain.ReviewRepository, c domain.Cache, ttl time.Duration, categories []string) *AnalyticsService {
	return &AnalyticsService{repo: r, cache: c, cacheTTL: ttl, categories: categories}
}

func cacheKey(source, category string) string {
	if category == "" {
		category = engine.CategoryAll
	}
	return fmt.Sprintf("summaries:%s:%s", source, category)
}

// view returns the materialized view for one (source, category), building it
// from the repository on cache miss.
func (s *AnalyticsService) view(ctx context.Context, source, category string) (materializedView, error) {
	key := cacheKey(source, category)
	var mv materializedView
	if ok, _ := s.cache.Get(ctx, key, &mv); ok {
		return mv, nil
	}

	q := domain.ReviewsQuery{Source: source}
	if category != "" && category != engine.CategoryAll {
		q.Category = category
	}
	reviews, err := s.repo.ListReviews(ctx, q)
	if err != nil {
		return materializedView{}, err
	}

	mv.Summaries = engine.Aggregate(reviews)
	mv.Breakdowns = make(map[string]domain.SentimentBreakdown, len(mv.Summaries))
	for _, sum := range mv.Summaries {
		mv.Breakdowns[viewKey(sum.ProductTitle, sum.Category)] = engine.Breakdown(reviews, sum.ProductTitle, sum.Category)
	}

	_ = s.cache.Set(ctx, key, mv, int(s.cacheTTL.Seconds()))
	return mv, nil
}

// Products returns the filtered product view, order-preserved. An empty slice
// is a valid answer ("no matching products"), not an error.
func (s *AnalyticsService) Products(ctx context.Context, source string, q domain.ProductsQuery) ([]ProductView, error) {
	mv, err := s.view(ctx, source, q.Category)
	if err != nil {
		return nil, err
	}
	filtered := engine.Filter(mv.Summaries, q.Category, q.Search)
	out := make([]ProductView, 0, len(filtered))
	for _, sum := range filtered {
		out = append(out, ProductView{
			ProductSummary: sum,
			Verdict:        engine.ClassifyVerdict(sum.AvgRating),
			Sentiment:      mv.Breakdowns[viewKey(sum.ProductTitle, sum.Category)],
		})
	}
	return out, nil
}

// Totals computes the dataset-wide KPI figures over the unfiltered view.
func (s *AnalyticsService) Totals(ctx context.Context, source string) (domain.Totals, error) {
	mv, err := s.view(ctx, source, engine.CategoryAll)
	if err != nil {
		return domain.Totals{}, err
	}
	return engine.ComputeTotals(mv.Summaries), nil
}

// Recommend answers a "what should I buy" query. ok is false when no product
// satisfies the resolved category; callers render that as a no-match state.
func (s *AnalyticsService) Recommend(ctx context.Context, source, category, freeText string) (domain.Recommendation, bool, error) {
	// recommendation always ranks over the full view; narrowing happens
	// inside the engine so free-text resolution can override the category
	mv, err := s.view(ctx, source, engine.CategoryAll)
	if err != nil {
		return domain.Recommendation{}, false, err
	}
	rec, ok := engine.Recommend(mv.Summaries, category, freeText)
	return rec, ok, nil
}

// Invalidate drops every cached view for source. Called after ingestion
// touches the underlying review table.
func (s *AnalyticsService) Invalidate(ctx context.Context, source string) {
	_ = s.cache.Del(ctx, cacheKey(source, engine.CategoryAll))
	for _, c := range s.categories {
		_ = s.cache.Del(ctx, cacheKey(source, c))
	}
}
