// Package stub serves a catalog.Searcher over HTTP in the wire format the
// storefront client expects. It backs cmd/catalogstub for local development.
package stub

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"maxgear/internal/catalog"
)

type detail struct {
	Detail string `json:"detail"`
}

// NewRouter returns the stub HTTP handler
func NewRouter(searcher catalog.Searcher, logger *slog.Logger) http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.Recoverer)
	r.Use(requestLogger(logger))

	r.Get("/health", func(w http.ResponseWriter, _ *http.Request) {
		writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
	})

	r.Get("/products/search", func(w http.ResponseWriter, req *http.Request) {
		q := strings.TrimSpace(req.URL.Query().Get("q"))
		if q == "" {
			writeJSON(w, http.StatusBadRequest, detail{Detail: "query parameter q is required"})
			return
		}

		items, err := searcher.SearchProducts(req.Context(), q)
		if err != nil {
			logger.ErrorContext(req.Context(), "search failed", slog.String("q", q), slog.Any("error", err))
			writeJSON(w, http.StatusInternalServerError, detail{Detail: "search failed"})
			return
		}
		writeJSON(w, http.StatusOK, items)
	})

	return r
}

func requestLogger(logger *slog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()
			ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
			next.ServeHTTP(ww, r)
			logger.InfoContext(r.Context(), "request",
				slog.String("method", r.Method),
				slog.String("path", r.URL.Path),
				slog.String("query", r.URL.RawQuery),
				slog.Int("status", ww.Status()),
				slog.String("request_id", r.Header.Get("X-Request-ID")),
				slog.Duration("elapsed", time.Since(start)),
			)
		})
	}
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
