package app

import (
	"crypto/sha1"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"strconv"
	"strings"

	"github.com/rs/zerolog/log"

	"review_intel/internal/domain"
)

/********** alias registry (single source of truth) **********/

// Dataset exports are inconsistent about column names; every alias observed
// across the source feeds lives here, tried in order.
var reviewAliases = map[string][]string{
	"title":     {"product_title", "title", "productTitle", "product.title", "name", "product_name"},
	"category":  {"category", "domain", "product_category", "categoryName", "product.category"},
	"rating":    {"rating", "rate", "score", "stars", "overall", "rating.value"},
	"text":      {"review_text", "reviewText", "text", "review", "body", "content", "comment"},
	"source":    {"source", "platform", "site", "origin"},
	"source_id": {"id", "review_id", "reviewId"},
}

// PlaceholderTitle stands in for rows whose title columns are all empty.
const PlaceholderTitle = "Unknown Product"

/********** tiny helpers **********/

// lookupAny: safe nested lookup with dot paths on maps.
func lookupAny(m map[string]any, path string) any {
	cur := any(m)
	for _, part := range strings.Split(path, ".") {
		obj, ok := cur.(map[string]any)
		if !ok {
			return nil
		}
		v, ok := obj[part]
		if !ok {
			return nil
		}
		cur = v
	}
	return cur
}

// lookupStr returns string at path or "".
func lookupStr(m map[string]any, path string) string {
	if v := lookupAny(m, path); v != nil {
		if s, ok := v.(string); ok {
			return s
		}
	}
	return ""
}

// firstNonEmptyAlias: first non-empty string for a named alias set.
func firstNonEmptyAlias(m map[string]any, key string) string {
	for _, p := range reviewAliases[key] {
		if s := strings.TrimSpace(lookupStr(m, p)); s != "" {
			return s
		}
	}
	return ""
}

func ptrStr(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}

func deref(p *string) string {
	if p == nil {
		return ""
	}
	return *p
}

// getFloatFlexible: number from several paths (float64/int/string like "4,0").
func getFloatFlexible(m map[string]any, paths ...string) (float64, bool) {
	for _, k := range paths {
		switch v := lookupAny(m, k).(type) {
		case float64:
			return v, true
		case int:
			return float64(v), true
		case string:
			s := strings.TrimSpace(strings.ReplaceAll(v, ",", "."))
			if s == "" {
				continue
			}
			if f, err := strconv.ParseFloat(s, 64); err == nil {
				return f, true
			}
		}
	}
	return 0, false
}

/********** review mapper **********/

// Reject describes a raw row the mapper refused: the one data-quality error
// the loader surfaces is a missing or non-numeric rating.
type Reject struct {
	Category string
	Reason   string
}

// mapReviews normalizes raw dataset rows into domain Reviews. fallbackCategory
// fills rows whose own category columns are empty (per-category feeds omit the
// column entirely). Rows without a coercible rating are returned as rejects;
// rows without a title get the placeholder and are kept.
func mapReviews(fallbackCategory string, in []map[string]any) ([]domain.Review, []Reject) {
	out := make([]domain.Review, 0, len(in))
	var rejects []Reject

	for _, r := range in {
		rating, ok := getFloatFlexible(r, reviewAliases["rating"]...)
		if !ok {
			rejects = append(rejects, Reject{Category: fallbackCategory, Reason: "non-numeric rating"})
			continue
		}

		title := firstNonEmptyAlias(r, "title")
		if title == "" {
			title = PlaceholderTitle
		}

		category := firstNonEmptyAlias(r, "category")
		if category == "" {
			category = fallbackCategory
		}

		rv := domain.Review{
			ProductTitle: title,
			Category:     category,
			Rating:       rating,
			Text:         ptrStr(firstNonEmptyAlias(r, "text")),
			Source:       ptrStr(firstNonEmptyAlias(r, "source")),
		}

		// SourceID: prefer explicit; else synthesize a stable hash so
		// re-ingesting the same feed upserts instead of duplicating.
		if s := firstNonEmptyAlias(r, "source_id"); s != "" {
			rv.SourceID = &s
		} else {
			sig := strings.Join([]string{title, category, fmt.Sprintf("%.3f", rating), deref(rv.Text)}, "|")
			sum := sha1.Sum([]byte(sig))
			id := hex.EncodeToString(sum[:])
			rv.SourceID = &id
		}

		if raw, err := json.Marshal(r); err == nil {
			rv.RawJSON = raw
		} else {
			log.Error().Err(err).Str("context", "mapReviews").Msg("marshal review failed")
		}

		out = append(out, rv)
	}
	return out, rejects
}
