// internal/adapters/http_server/handlers.go
package httpserver

import (
	"crypto/sha1"
	"encoding/hex"
	"encoding/json"
	"net/http"

	"github.com/rs/zerolog/log"

	"review_intel/internal/app"
	"review_intel/internal/domain"
)

// Handlers exposes the analytics service over HTTP. Source pins which loaded
// dataset the API serves (one active table per process).
type Handlers struct {
	A      *app.AnalyticsService
	Source string
}

type problem struct {
	Type   string `json:"type"`
	Title  string `json:"title"`
	Status int    `json:"status"`
	Detail string `json:"detail,omitempty"`
}

func (s *Server) MountHandlers(h *Handlers) {
	s.mux.Get("/healthz", func(w http.ResponseWriter, r *http.Request) { w.WriteHeader(200); _, _ = w.Write([]byte("ok")) })
	s.mux.Get("/v1/products", h.listProducts)
	s.mux.Get("/v1/stats", h.stats)
	s.mux.Get("/v1/recommend", h.recommend)
}

func writeProblem(w http.ResponseWriter, status int, title, detail string) {
	w.Header().Set("Content-Type", "application/problem+json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(problem{Type: "about:blank", Title: title, Status: status, Detail: detail}); err != nil {
		log.Error().Err(err).Msg("write JSON problem response failed")
	}
}

// calcETagAndBody marshals once and hashes once, returning both ETag and body.
func calcETagAndBody(v any) (string, []byte) {
	body, err := json.Marshal(v)
	if err != nil {
		log.Error().Err(err).Msg("failed to marshal object for ETag/body")
		return "", nil
	}
	sum := sha1.Sum(body)
	etag := `W/"` + hex.EncodeToString(sum[:]) + `"`
	return etag, body
}

func writeJSON(w http.ResponseWriter, r *http.Request, v any) {
	etag, body := calcETagAndBody(v)
	// If client already has this version, short-circuit.
	if inm := r.Header.Get("If-None-Match"); inm != "" && inm == etag {
		w.Header().Set("ETag", etag) // include ETag on 304
		w.WriteHeader(http.StatusNotModified)
		return
	}
	w.Header().Set("ETag", etag)
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	if _, err := w.Write(body); err != nil {
		log.Error().Err(err).Msg("failed to write response body")
	}
}

type productsResponse struct {
	Items []app.ProductView `json:"items"`
}

func (h *Handlers) listProducts(w http.ResponseWriter, r *http.Request) {
	q := domain.ProductsQuery{
		Category: r.URL.Query().Get("category"),
		Search:   r.URL.Query().Get("q"),
	}
	items, err := h.A.Products(r.Context(), h.Source, q)
	if err != nil {
		writeProblem(w, http.StatusInternalServerError, "Internal Error", "failed to load products")
		return
	}
	// zero items is a renderable "no matching products" state, not an error
	writeJSON(w, r, productsResponse{Items: items})
}

func (h *Handlers) stats(w http.ResponseWriter, r *http.Request) {
	tot, err := h.A.Totals(r.Context(), h.Source)
	if err != nil {
		writeProblem(w, http.StatusInternalServerError, "Internal Error", "failed to compute totals")
		return
	}
	writeJSON(w, r, tot)
}

func (h *Handlers) recommend(w http.ResponseWriter, r *http.Request) {
	category := r.URL.Query().Get("category")
	freeText := r.URL.Query().Get("q")

	rec, ok, err := h.A.Recommend(r.Context(), h.Source, category, freeText)
	if err != nil {
		writeProblem(w, http.StatusInternalServerError, "Internal Error", "failed to compute recommendation")
		return
	}
	if !ok {
		writeProblem(w, http.StatusNotFound, "No Recommendation Available", "no product matches the resolved category")
		return
	}
	writeJSON(w, r, rec)
}
