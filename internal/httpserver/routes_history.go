// internal/httpserver/routes_history.go
//
// Finished runs for this process:
//   - GET /history/recent?limit=N → newest first (default 20, max 100)
//   - GET /history/summary        → totals over every run

package httpserver

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog/log"
)

func (s *Server) mountHistory() {
	s.r.Route("/history", func(r chi.Router) {
		r.Use(s.requireHistory)
		r.Get("/recent", s.handleHistoryRecent)
		r.Get("/summary", s.handleHistorySummary)
	})
}

func (s *Server) requireHistory(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if s.deps.History == nil {
			http.Error(w, `{"error":"history_disabled"}`, http.StatusServiceUnavailable)
			return
		}
		next.ServeHTTP(w, r)
	})
}

func (s *Server) handleHistoryRecent(w http.ResponseWriter, r *http.Request) {
	limit := 20
	if v := r.URL.Query().Get("limit"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n < 1 {
			http.Error(w, `{"error":"bad_limit"}`, http.StatusBadRequest)
			return
		}
		limit = min(n, 100)
	}
	recs, err := s.deps.History.Recent(r.Context(), limit)
	if err != nil {
		log.Error().Err(err).Msg("history recent")
		http.Error(w, `{"error":"db_error"}`, http.StatusInternalServerError)
		return
	}
	_ = json.NewEncoder(w).Encode(recs)
}

func (s *Server) handleHistorySummary(w http.ResponseWriter, r *http.Request) {
	sum, err := s.deps.History.Summary(r.Context())
	if err != nil {
		log.Error().Err(err).Msg("history summary")
		http.Error(w, `{"error":"db_error"}`, http.StatusInternalServerError)
		return
	}
	_ = json.NewEncoder(w).Encode(sum)
}
