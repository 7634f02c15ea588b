package engine

import "review_intel/internal/domain"

// ClassifyVerdict maps a product's average rating to a buying verdict.
// Boundaries are closed: exactly 4.0 is StrongBuy, exactly 2.5 is Avoid,
// everything strictly between is Mixed.
func ClassifyVerdict(avgRating float64) domain.Verdict {
	switch {
	case avgRating >= 4.0:
		return domain.VerdictStrongBuy
	case avgRating <= 2.5:
		return domain.VerdictAvoid
	default:
		return domain.VerdictMixed
	}
}
