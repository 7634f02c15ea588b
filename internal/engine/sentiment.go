package engine

import "review_intel/internal/domain"

// Classify maps a rating to its sentiment label and signed score.
// Thresholds: >= 4 Positive, == 3 Neutral, < 3 Negative. Total over all
// floats; out-of-scale ratings are not clamped, they just fall through the
// same thresholds (a 5.5 is Positive, a 0 is Negative, a 3.5 is Negative
// because it is neither >= 4 nor == 3).
func Classify(rating float64) (domain.Sentiment, int) {
	switch {
	case rating >= 4:
		return domain.SentimentPositive, 1
	case rating == 3:
		return domain.SentimentNeutral, 0
	default:
		return domain.SentimentNegative, -1
	}
}
