package domain

// ProductSummary is the materialized per-product view derived from the review
// table. Identity is the composite (ProductTitle, Category) pair; two products
// sharing a title across categories are distinct entities.
type ProductSummary struct {
	ProductTitle string  `json:"product_title"`
	Category     string  `json:"category"`
	AvgRating    float64 `json:"avg_rating"`
	ReviewCount  int     `json:"review_count"`
	AvgSentiment float64 `json:"avg_sentiment"` // in [-1, 1]
}

// SentimentBreakdown counts a product's reviews per sentiment label, with
// percentages derived from the counts.
type SentimentBreakdown struct {
	Positive    int     `json:"positive"`
	Neutral     int     `json:"neutral"`
	Negative    int     `json:"negative"`
	PositivePct float64 `json:"positive_pct"`
	NeutralPct  float64 `json:"neutral_pct"`
	NegativePct float64 `json:"negative_pct"`
}

// Totals are the dataset-wide KPI figures.
type Totals struct {
	Products      int     `json:"products"`
	Reviews       int     `json:"reviews"`
	AverageRating float64 `json:"average_rating"` // mean of per-product averages
}

// Recommendation is the single best-matching product for a query. Category is
// the category the query resolved to ("" when no narrowing occurred).
type Recommendation struct {
	Product          ProductSummary `json:"product"`
	Verdict          Verdict        `json:"verdict"`
	ResolvedCategory string         `json:"resolved_category,omitempty"`
}
