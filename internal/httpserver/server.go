// internal/httpserver/server.go
//
// HTTP server wiring for the solver service.
// Responsibilities:
//   - Router + middleware (JSON, CORS, timeouts, panic recovery, request IDs).
//   - Public endpoints: "/", "/health".
//   - Assist endpoints: /assist/new, /assist/feedback, /assist/candidates.
//   - Game endpoints: /game/new, /game/guess, /game/hint, /game/state.
//   - Simulation + history: /simulate, /history/recent, /history/summary.
//   - Admin endpoints behind basic auth: /admin/words, /admin/sweep.
//
// Notes:
//   - CORS is origin-aware and credentials-enabled for one client origin.
//   - Every session ID handed to clients is a signed token (see token.go);
//     handlers never trust a raw store key.

package httpserver

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/rs/zerolog/log"
	"golang.org/x/crypto/bcrypt"

	"github.com/robalobadob/wordle/apps/solver-server/internal/config"
	"github.com/robalobadob/wordle/apps/solver-server/internal/history"
	"github.com/robalobadob/wordle/apps/solver-server/internal/solver"
	"github.com/robalobadob/wordle/apps/solver-server/internal/store"
	"github.com/robalobadob/wordle/apps/solver-server/internal/words"
)

// Deps are the collaborators a Server needs. History may be nil, in which
// case the history endpoints answer 503 and nothing is recorded.
type Deps struct {
	Config   config.Config
	Corpus   *solver.Corpus
	Words    *words.Lists
	Sessions store.Store
	History  *history.Store

	// Now defaults to time.Now; tests pin it for the daily answer.
	Now func() time.Time
}

// Server bundles router and dependencies.
type Server struct {
	r      *chi.Mux
	deps   Deps
	tokens tokenIssuer
	admin  *adminAuth // nil when no admin password is configured
}

// New constructs a Server, installs middleware, and registers routes.
func New(deps Deps) (*Server, error) {
	return newServer(deps, bcrypt.DefaultCost)
}

func newServer(deps Deps, bcryptCost int) (*Server, error) {
	if deps.Corpus == nil || deps.Words == nil || deps.Sessions == nil {
		return nil, errors.New("httpserver: corpus, words and sessions are required")
	}
	if deps.Now == nil {
		deps.Now = time.Now
	}
	s := &Server{
		r:      chi.NewRouter(),
		deps:   deps,
		tokens: newTokenIssuer(deps.Config.Auth.SessionSecret, deps.Config.Server.SessionTTL),
	}
	if pw := deps.Config.Auth.AdminPassword; pw != "" {
		a, err := newAdminAuth(pw, bcryptCost)
		if err != nil {
			return nil, err
		}
		s.admin = a
	}

	timeout := deps.Config.Server.RequestTimeout
	if timeout <= 0 {
		timeout = 10 * time.Second
	}

	// --- middleware ---
	s.r.Use(chimw.RequestID)                       // add X-Request-ID
	s.r.Use(chimw.RealIP)                          // set RemoteAddr from X-Forwarded-For etc.
	s.r.Use(chimw.Recoverer)                       // recover from panics
	s.r.Use(chimw.Timeout(timeout))                // bound handler time
	s.r.Use(jsonContentType)                       // default JSON responses
	s.r.Use(cors(deps.Config.Server.ClientOrigin)) // credentials-friendly CORS

	// --- diagnostics ---
	s.r.Get("/", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte(`{"service":"wordle-solver","endpoints":["/health","/assist/*","/game/*","POST /simulate","/history/*","/admin/*"]}`))
	})
	s.r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte(`{"ok":true}`))
	})

	s.mountAssist()
	s.mountGame()
	s.mountSimulate()
	s.mountHistory()
	if s.admin != nil {
		s.mountAdmin()
	}

	// JSON 404 for easier debugging
	s.r.NotFound(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, `{"error":"not_found","path":"`+r.URL.Path+`"}`, http.StatusNotFound)
	})

	return s, nil
}

// Start begins serving HTTP on addr.
func (s *Server) Start(addr string) error { return http.ListenAndServe(addr, s.r) }

// Router exposes the internal router (useful for tests).
func (s *Server) Router() chi.Router { return s.r }

// SweepLoop removes idle sessions every interval until ctx is done.
func (s *Server) SweepLoop(ctx context.Context, every time.Duration) {
	if every <= 0 {
		return
	}
	t := time.NewTicker(every)
	defer t.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-t.C:
			n, err := s.sweep(ctx, s.deps.Config.Server.SessionTTL)
			if err != nil {
				log.Warn().Err(err).Msg("sweep sessions")
				continue
			}
			if n > 0 {
				log.Info().Int("removed", n).Msg("swept idle sessions")
			}
		}
	}
}

func (s *Server) sweep(ctx context.Context, idle time.Duration) (int, error) {
	return s.deps.Sessions.Sweep(ctx, s.deps.Now().Add(-idle))
}

// ----------------------------- middleware ----------------------------------

// jsonContentType sets a default JSON Content-Type header on all responses.
func jsonContentType(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json; charset=utf-8")
		next.ServeHTTP(w, r)
	})
}

// cors enables credentialed CORS for a single origin.
func cors(origin string) func(http.Handler) http.Handler {
	if origin == "" {
		origin = "http://localhost:5173"
	}
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.Header().Set("Vary", "Origin")
			w.Header().Set("Access-Control-Allow-Origin", origin)
			w.Header().Set("Access-Control-Allow-Credentials", "true")
			w.Header().Set("Access-Control-Allow-Methods", "GET,POST,OPTIONS")
			w.Header().Set("Access-Control-Allow-Headers", "Content-Type, Authorization")
			if r.Method == http.MethodOptions {
				w.WriteHeader(http.StatusNoContent)
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}

// ------------------------------ sessions -----------------------------------

// sessionToken picks the token from the body value, the sessionId query
// parameter, or an Authorization bearer header, in that order.
func sessionToken(r *http.Request, fromBody string) string {
	if fromBody != "" {
		return fromBody
	}
	if q := r.URL.Query().Get("sessionId"); q != "" {
		return q
	}
	if a := r.Header.Get("Authorization"); strings.HasPrefix(strings.ToLower(a), "bearer ") {
		return strings.TrimSpace(a[7:])
	}
	return ""
}

// loadSession verifies tok and fetches the session for mode. On failure it
// writes the error response and returns nil.
func (s *Server) loadSession(w http.ResponseWriter, r *http.Request, tok, mode string) *store.Session {
	if tok == "" {
		http.Error(w, `{"error":"missing_session"}`, http.StatusUnauthorized)
		return nil
	}
	id, tokMode, err := s.tokens.parse(tok)
	if err != nil {
		http.Error(w, `{"error":"invalid_session"}`, http.StatusUnauthorized)
		return nil
	}
	if tokMode != mode {
		http.Error(w, `{"error":"wrong_mode"}`, http.StatusBadRequest)
		return nil
	}
	sess, err := s.deps.Sessions.Get(r.Context(), id)
	if err != nil {
		http.Error(w, `{"error":"not_found"}`, http.StatusNotFound)
		return nil
	}
	return sess
}

// poolFor builds a fresh solver pool that logs under the session ID.
func (s *Server) poolFor(sessionID string) (*solver.Pool, error) {
	l := log.With().Str("session", sessionID).Logger()
	return solver.NewPool(s.deps.Corpus, solver.PoolOptions{
		Opening: s.deps.Config.Solver.Opening,
		Logger:  &l,
	})
}

// solverError maps solver failures to status codes.
func solverError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, solver.ErrInvalidFeedback):
		http.Error(w, `{"error":"invalid_feedback"}`, http.StatusBadRequest)
	case errors.Is(err, solver.ErrExhaustedCandidates):
		http.Error(w, `{"error":"no_candidates"}`, http.StatusConflict)
	default:
		log.Error().Err(err).Msg("solver")
		http.Error(w, `{"error":"solver_failed"}`, http.StatusInternalServerError)
	}
}

// record stores a finished run. Failures are logged, never surfaced.
func (s *Server) record(ctx context.Context, rec history.Record) {
	if s.deps.History == nil {
		return
	}
	if _, err := s.deps.History.Insert(ctx, rec); err != nil {
		log.Warn().Err(err).Str("session", rec.SessionID).Msg("record run")
	}
}

// decode reads a JSON body. An empty body leaves v untouched.
func decode(r *http.Request, v any) error {
	err := json.NewDecoder(r.Body).Decode(v)
	if errors.Is(err, io.EOF) {
		return nil
	}
	return err
}
