package app

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"review_intel/internal/adapters/observability"
	"review_intel/internal/domain"
	"review_intel/internal/engine"
)

// ErrNoRows reports a feed that answered but carried nothing usable.
var ErrNoRows = errors.New("dataset returned no usable rows")

// IngestionService pulls raw review rows from the upstream dataset, normalizes
// them, and upserts them into the review table. Every successful write ends
// with an invalidation of the derived-view cache for the touched source.
type IngestionService struct {
	dataset    domain.DatasetClient
	repo       domain.ReviewRepository
	cache      domain.Cache
	categories []string
}

func NewIngestionService(d domain.DatasetClient, r domain.ReviewRepository, cache domain.Cache, categories []string) *IngestionService {
	return &IngestionService{dataset: d, repo: r, cache: cache, categories: categories}
}

// IngestCategory loads one category's feed into the review table under the
// given source identity. Known upstream misses (404, 401/403) are recorded as
// rejects and do not fail the run; anything else bubbles up.
func (s *IngestionService) IngestCategory(ctx context.Context, source, category string, limit int) error {
	rows, err := s.dataset.GetReviews(ctx, category, limit)
	if err != nil {
		low := strings.ToLower(err.Error())

		if errors.Is(err, domain.ErrNotFound) || strings.Contains(low, "not found") {
			_ = s.repo.LogReject(ctx, source, category, "feed not found")
			s.invalidate(ctx, source, category)
			return nil
		}
		if strings.Contains(low, "403") || strings.Contains(low, "forbidden") ||
			strings.Contains(low, "401") || strings.Contains(low, "unauthorized") {
			_ = s.repo.LogReject(ctx, source, category, "feed inactive")
			s.invalidate(ctx, source, category)
			return nil
		}
		return err
	}

	return s.ingestRows(ctx, source, category, rows)
}

// IngestRows loads pre-fetched raw rows (the local-CSV path) under the given
// source identity and fallback category.
func (s *IngestionService) IngestRows(ctx context.Context, source, category string, rows []map[string]any) error {
	return s.ingestRows(ctx, source, category, rows)
}

func (s *IngestionService) ingestRows(ctx context.Context, source, category string, rows []map[string]any) error {
	reviews, rejects := mapReviews(category, rows)

	for _, rej := range rejects {
		_ = s.repo.LogReject(ctx, source, rej.Category, rej.Reason)
		observability.ObserveReject(source, rej.Reason)
	}

	if len(reviews) > 0 {
		for i := range reviews {
			if reviews[i].Source == nil {
				reviews[i].Source = &source
			}
		}
		if err := s.repo.UpsertReviews(ctx, reviews); err != nil {
			// surface so we know inserts failed, never swallow
			return fmt.Errorf("upsert reviews failed for %s/%s: %w", source, category, err)
		}
		observability.ObserveIngest(source, category, len(reviews))
	}

	// invalidate even when zero rows landed, so a shrunken feed cannot keep
	// serving a stale aggregate
	s.invalidate(ctx, source, category)

	if len(reviews) == 0 && len(rejects) > 0 {
		return fmt.Errorf("%w: %s/%s", ErrNoRows, source, category)
	}
	return nil
}

func (s *IngestionService) invalidate(ctx context.Context, source, category string) {
	if s.cache == nil {
		return
	}
	_ = s.cache.Del(ctx, cacheKey(source, engine.CategoryAll))
	_ = s.cache.Del(ctx, cacheKey(source, category))
	for _, c := range s.categories {
		_ = s.cache.Del(ctx, cacheKey(source, c))
	}
}
