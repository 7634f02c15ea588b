package mysql

import (
	"context"
	"database/sql"
	"strings"

	"review_intel/internal/domain"
)

func valStr(p *string) any {
	if p == nil {
		return nil
	}
	return *p
}
func valJSON(b []byte) any {
	if len(b) == 0 {
		return nil
	}
	return string(b)
}

type Repo struct{ db *sql.DB }

func New(db *sql.DB) *Repo { return &Repo{db: db} }

func (r *Repo) UpsertReviews(ctx context.Context, rs []domain.Review) error {
	if len(rs) == 0 {
		return nil
	}
	values := make([]string, 0, len(rs))
	args := make([]any, 0, len(rs)*7)
	for _, rv := range rs {
		// Columns (from insertReviewsPrefix):
		// (source, source_id, product_title, category, rating, `text`, raw)
		values = append(values, "(?,?,?,?,?,?,?)")
		args = append(args,
			valStr(rv.Source),
			valStr(rv.SourceID),
			rv.ProductTitle,
			rv.Category,
			rv.Rating,
			valStr(rv.Text),
			valJSON(rv.RawJSON),
		)
	}
	sqlStr := insertReviewsPrefix + strings.Join(values, ",") + insertReviewsOnDup
	_, err := r.db.ExecContext(ctx, sqlStr, args...)
	return err
}

func (r *Repo) LogReject(ctx context.Context, source, category, reason string) error {
	_, err := r.db.ExecContext(ctx, insertRejectSQL, source, category, reason)
	return err
}

func (r *Repo) ListReviews(ctx context.Context, q domain.ReviewsQuery) ([]domain.Review, error) {
	query := listReviewsSQL
	args := []any{q.Source, q.Category, q.Category}
	if q.Limit > 0 {
		query += " LIMIT ?"
		args = append(args, q.Limit)
	}

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []domain.Review
	for rows.Next() {
		var rv domain.Review
		var source, sourceID, text sql.NullString
		if err := rows.Scan(&rv.ID, &source, &sourceID, &rv.ProductTitle, &rv.Category, &rv.Rating, &text); err != nil {
			return nil, err
		}
		if source.Valid {
			rv.Source = &source.String
		}
		if sourceID.Valid {
			rv.SourceID = &sourceID.String
		}
		if text.Valid {
			rv.Text = &text.String
		}
		out = append(out, rv)
	}
	return out, rows.Err()
}

func (r *Repo) CountReviews(ctx context.Context, source string) (int, error) {
	var n int
	err := r.db.QueryRowContext(ctx, countReviewsSQL, source).Scan(&n)
	return n, err
}
