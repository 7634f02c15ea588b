package domain

import "context"

type ReviewRepository interface {
	// Write paths
	UpsertReviews(ctx context.Context, rs []Review) error
	LogReject(ctx context.Context, source, category, reason string) error

	// Read paths
	ListReviews(ctx context.Context, q ReviewsQuery) ([]Review, error)
	CountReviews(ctx context.Context, source string) (int, error)
}

type DatasetClient interface {
	GetReviews(ctx context.Context, category string, limit int) ([]map[string]any, error)
	GetCategories(ctx context.Context) ([]string, error)
}

type Cache interface {
	Get(ctx context.Context, key string, dst any) (bool, error)
	Set(ctx context.Context, key string, v any, ttlSec int) error
	Del(ctx context.Context, key string) error
}

// ReviewsQuery scopes a read of the review table. Source identifies which
// loaded dataset to read ("" means the default source); Category narrows to
// one category ("" or "All" means no narrowing).
type ReviewsQuery struct {
	Source   string
	Category string
	Limit    int
}

// ProductsQuery carries the filter parameters a caller applies to the
// materialized product view.
type ProductsQuery struct {
	Category string // exact match; "" or "All" disables
	Search   string // case-insensitive substring on title; "" disables
}
