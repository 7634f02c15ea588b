package engine

import (
	"strings"

	"review_intel/internal/domain"
)

// CategoryAll is the sentinel a caller passes to disable category narrowing.
const CategoryAll = "All"

func categoryFilterActive(category string) bool {
	return category != "" && category != CategoryAll
}

// Filter narrows the product view by exact category and case-insensitive
// substring on the title. Both filters combine as AND; input order is
// preserved. A zero-length result is a valid state for the caller to render,
// not an error.
func Filter(summaries []domain.ProductSummary, category, search string) []domain.ProductSummary {
	byCategory := categoryFilterActive(category)
	needle := strings.ToLower(strings.TrimSpace(search))

	out := make([]domain.ProductSummary, 0, len(summaries))
	for _, s := range summaries {
		if byCategory && s.Category != category {
			continue
		}
		if needle != "" && !strings.Contains(strings.ToLower(s.ProductTitle), needle) {
			continue
		}
		out = append(out, s)
	}
	return out
}
