// internal/httpserver/admin.go
//
// Admin endpoints (HTTP basic auth, user "admin"):
//   - GET  /admin/words → word list and corpus counts, live sessions
//   - POST /admin/sweep → drop sessions idle longer than olderThan (default: session TTL)
//
// The configured password is hashed with bcrypt at startup and only the
// hash is kept.

package httpserver

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog/log"
	"golang.org/x/crypto/bcrypt"
)

const adminUser = "admin"

type adminAuth struct {
	hash []byte
}

func newAdminAuth(password string, cost int) (*adminAuth, error) {
	h, err := bcrypt.GenerateFromPassword([]byte(password), cost)
	if err != nil {
		return nil, err
	}
	return &adminAuth{hash: h}, nil
}

// check is a bcrypt verifier for basic-auth credentials.
func (a *adminAuth) check(user, pw string) bool {
	if user != adminUser {
		return false
	}
	return bcrypt.CompareHashAndPassword(a.hash, []byte(pw)) == nil
}

// require enforces basic auth on admin routes.
func (a *adminAuth) require(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		user, pw, ok := r.BasicAuth()
		if !ok || !a.check(user, pw) {
			w.Header().Set("WWW-Authenticate", `Basic realm="admin"`)
			http.Error(w, `{"error":"Unauthorized"}`, http.StatusUnauthorized)
			return
		}
		next.ServeHTTP(w, r)
	})
}

func (s *Server) mountAdmin() {
	s.r.Route("/admin", func(r chi.Router) {
		r.Use(s.admin.require)
		r.Get("/words", s.handleAdminWords)
		r.Post("/sweep", s.handleAdminSweep)
	})
}

func (s *Server) handleAdminWords(w http.ResponseWriter, r *http.Request) {
	a, g := s.deps.Words.Stats()
	_ = json.NewEncoder(w).Encode(map[string]int{
		"answers":  a,
		"allowed":  g,
		"corpus":   s.deps.Corpus.Len(),
		"sessions": s.deps.Sessions.Len(),
	})
}

type sweepReq struct {
	OlderThan string `json:"olderThan"` // Go duration, e.g. "30m"
}

func (s *Server) handleAdminSweep(w http.ResponseWriter, r *http.Request) {
	var req sweepReq
	if err := decode(r, &req); err != nil {
		http.Error(w, `{"error":"bad_json"}`, http.StatusBadRequest)
		return
	}
	idle := s.deps.Config.Server.SessionTTL
	if req.OlderThan != "" {
		d, err := time.ParseDuration(req.OlderThan)
		if err != nil || d < 0 {
			http.Error(w, `{"error":"bad_duration"}`, http.StatusBadRequest)
			return
		}
		idle = d
	}
	n, err := s.sweep(r.Context(), idle)
	if err != nil {
		log.Error().Err(err).Msg("admin sweep")
		http.Error(w, `{"error":"sweep_failed"}`, http.StatusInternalServerError)
		return
	}
	log.Info().Int("removed", n).Dur("idle", idle).Msg("admin sweep")
	_ = json.NewEncoder(w).Encode(map[string]int{"removed": n})
}
