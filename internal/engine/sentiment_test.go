package engine_test

import (
	"testing"

	"review_intel/internal/domain"
	"review_intel/internal/engine"
)

func TestClassify_Boundaries(t *testing.T) {
	cases := []struct {
		rating float64
		want   domain.Sentiment
		score  int
	}{
		{5, domain.SentimentPositive, 1},
		{4.0, domain.SentimentPositive, 1},
		{3.999, domain.SentimentNegative, -1}, // not >= 4, not == 3
		{3.0, domain.SentimentNeutral, 0},
		{2.999, domain.SentimentNegative, -1},
		{1, domain.SentimentNegative, -1},
		// out-of-scale values are still classified, never clamped
		{7.2, domain.SentimentPositive, 1},
		{0, domain.SentimentNegative, -1},
		{-1, domain.SentimentNegative, -1},
	}
	for _, c := range cases {
		got, score := engine.Classify(c.rating)
		if got != c.want || score != c.score {
			t.Errorf("Classify(%v) = (%s, %d), want (%s, %d)", c.rating, got, score, c.want, c.score)
		}
	}
}

func TestClassifyVerdict(t *testing.T) {
	cases := []struct {
		avg  float64
		want domain.Verdict
	}{
		{4.0, domain.VerdictStrongBuy},
		{4.8, domain.VerdictStrongBuy},
		{3.999, domain.VerdictMixed},
		{3.2, domain.VerdictMixed},
		{2.501, domain.VerdictMixed},
		{2.5, domain.VerdictAvoid},
		{1.0, domain.VerdictAvoid},
	}
	for _, c := range cases {
		if got := engine.ClassifyVerdict(c.avg); got != c.want {
			t.Errorf("ClassifyVerdict(%v) = %s, want %s", c.avg, got, c.want)
		}
	}
}
