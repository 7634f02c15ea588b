package domain

// Review is one user-submitted rating for a product. Immutable once loaded;
// ratings outside the 1-5 scale are kept as-is (data quality is the loader's
// concern, not the core's).
type Review struct {
	ID           int64
	ProductTitle string
	Category     string
	Rating       float64
	Text         *string
	Source       *string
	SourceID     *string
	RawJSON      []byte
}

// Sentiment is a three-valued label derived purely from a review's rating.
type Sentiment string

const (
	SentimentPositive Sentiment = "Positive"
	SentimentNeutral  Sentiment = "Neutral"
	SentimentNegative Sentiment = "Negative"
)

// Verdict is the qualitative buying recommendation for a product.
type Verdict string

const (
	VerdictStrongBuy Verdict = "StrongBuy"
	VerdictMixed     Verdict = "Mixed"
	VerdictAvoid     Verdict = "Avoid"
)
