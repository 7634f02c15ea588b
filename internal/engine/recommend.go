package engine

import (
	"strings"

	"review_intel/internal/domain"
)

// categoryRule maps query keywords to a category. Rules are evaluated in
// order; the first rule with any keyword contained in the lower-cased query
// wins.
type categoryRule struct {
	keywords []string
	category string
}

var categoryRules = []categoryRule{
	{keywords: []string{"phone", "mobile", "laptop", "headphone", "camera", "tablet", "electronic", "gadget"}, category: "Electronics"},
	{keywords: []string{"book", "novel", "read", "author"}, category: "Books"},
	{keywords: []string{"cloth", "shirt", "dress", "jean", "shoe", "wear", "fashion"}, category: "Clothing"},
}

// ResolveCategory maps a free-text query to a category via the keyword rule
// table. Returns "" when no rule matches.
func ResolveCategory(query string) string {
	q := strings.ToLower(query)
	if strings.TrimSpace(q) == "" {
		return ""
	}
	for _, rule := range categoryRules {
		for _, kw := range rule.keywords {
			if strings.Contains(q, kw) {
				return rule.category
			}
		}
	}
	return ""
}

// Recommend selects the single best product for a query. The free-text query
// is resolved to a category first; if it resolves to nothing the explicit
// category filter applies instead; if that too is absent or "All" the whole
// set is the candidate pool. Selection is max AvgRating with ties going to
// the earlier summary. ok is false when the candidate subset is empty; that
// is the only no-result path and it never faults.
func Recommend(summaries []domain.ProductSummary, category, freeText string) (rec domain.Recommendation, ok bool) {
	resolved := ResolveCategory(freeText)
	if resolved == "" && categoryFilterActive(category) {
		resolved = category
	}

	best := -1
	for i, s := range summaries {
		if resolved != "" && s.Category != resolved {
			continue
		}
		if best < 0 || s.AvgRating > summaries[best].AvgRating {
			best = i
		}
	}
	if best < 0 {
		return domain.Recommendation{}, false
	}
	return domain.Recommendation{
		Product:          summaries[best],
		Verdict:          ClassifyVerdict(summaries[best].AvgRating),
		ResolvedCategory: resolved,
	}, true
}
