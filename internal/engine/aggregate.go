package engine

import "review_intel/internal/domain"

// groupKey is the product identity: title and category together. Products
// sharing a title across categories aggregate separately.
type groupKey struct {
	title    string
	category string
}

// Aggregate folds the raw review table into one ProductSummary per
// (title, category) group. Pure; the full table is re-walked on every call.
// Output order is the first-encountered order of groups, so repeated calls
// over the same input produce the same sequence. An empty input yields an
// empty (non-nil-safe to range) result, not an error.
func Aggregate(reviews []domain.Review) []domain.ProductSummary {
	type acc struct {
		ratingSum    float64
		sentimentSum int
		count        int
	}

	idx := make(map[groupKey]int, len(reviews))
	keys := make([]groupKey, 0, len(reviews))
	accs := make([]acc, 0, len(reviews))

	for _, r := range reviews {
		k := groupKey{title: r.ProductTitle, category: r.Category}
		i, ok := idx[k]
		if !ok {
			i = len(accs)
			idx[k] = i
			keys = append(keys, k)
			accs = append(accs, acc{})
		}
		_, score := Classify(r.Rating)
		accs[i].ratingSum += r.Rating
		accs[i].sentimentSum += score
		accs[i].count++
	}

	out := make([]domain.ProductSummary, 0, len(accs))
	for i, a := range accs {
		n := float64(a.count)
		out = append(out, domain.ProductSummary{
			ProductTitle: keys[i].title,
			Category:     keys[i].category,
			AvgRating:    a.ratingSum / n,
			ReviewCount:  a.count,
			AvgSentiment: float64(a.sentimentSum) / n,
		})
	}
	return out
}

// Breakdown counts one product's reviews per sentiment label. Reviews not
// belonging to the (title, category) pair are skipped, so callers can pass
// the whole table.
func Breakdown(reviews []domain.Review, title, category string) domain.SentimentBreakdown {
	var b domain.SentimentBreakdown
	for _, r := range reviews {
		if r.ProductTitle != title || r.Category != category {
			continue
		}
		switch s, _ := Classify(r.Rating); s {
		case domain.SentimentPositive:
			b.Positive++
		case domain.SentimentNeutral:
			b.Neutral++
		default:
			b.Negative++
		}
	}
	if total := b.Positive + b.Neutral + b.Negative; total > 0 {
		b.PositivePct = 100 * float64(b.Positive) / float64(total)
		b.NeutralPct = 100 * float64(b.Neutral) / float64(total)
		b.NegativePct = 100 * float64(b.Negative) / float64(total)
	}
	return b
}

// ComputeTotals derives the dataset-wide KPI figures: product count, total
// review count, and the mean of the per-product average ratings (not the mean
// over raw reviews).
func ComputeTotals(summaries []domain.ProductSummary) domain.Totals {
	t := domain.Totals{Products: len(summaries)}
	var sum float64
	for _, s := range summaries {
		t.Reviews += s.ReviewCount
		sum += s.AvgRating
	}
	if len(summaries) > 0 {
		t.AverageRating = sum / float64(len(summaries))
	}
	return t
}
