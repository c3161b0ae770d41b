// internal/httpserver/routes_assist.go
//
// Assist mode: the player plays Wordle elsewhere and reports the colours.
//   - POST /assist/new        → start a session, return the opening guess
//   - POST /assist/feedback   → report feedback for the last guess, get the next one
//   - GET  /assist/candidates → words still consistent with every report
//
// A report that empties the pool is rejected with 409 and the session keeps
// its previous state, so the player can correct a typo and retry.
//
// The player may play a word other than the suggestion, so a suggestion
// stays in the pool until feedback for it arrives.

package httpserver

import (
	"encoding/json"
	"net/http"
	"strconv"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog/log"

	"github.com/robalobadob/wordle/apps/solver-server/internal/history"
	"github.com/robalobadob/wordle/apps/solver-server/internal/solver"
	"github.com/robalobadob/wordle/apps/solver-server/internal/store"
)

const (
	defaultCandidateLimit = 50
	maxCandidateLimit     = 500
)

func (s *Server) mountAssist() {
	s.r.Route("/assist", func(r chi.Router) {
		r.Post("/new", s.handleAssistNew)
		r.Post("/feedback", s.handleAssistFeedback)
		r.Get("/candidates", s.handleAssistCandidates)
	})
}

type assistTurnRes struct {
	SessionID string `json:"sessionId,omitempty"`
	Guess     string `json:"guess,omitempty"`
	Remaining int    `json:"remaining"`
	Turn      int    `json:"turn"` // 1-based number of Guess
	Solved    bool   `json:"solved"`
}

func (s *Server) handleAssistNew(w http.ResponseWriter, r *http.Request) {
	sess := store.NewSession(store.ModeAssist, nil, nil)
	pool, err := s.poolFor(sess.ID)
	if err != nil {
		solverError(w, err)
		return
	}
	sess.Pool = pool

	guess, err := pool.Advance(sess.Last)
	if err != nil {
		solverError(w, err)
		return
	}
	sess.Suggestion = guess

	tok, err := s.tokens.sign(sess.ID, sess.Mode)
	if err != nil {
		http.Error(w, `{"error":"sign_failed"}`, http.StatusInternalServerError)
		return
	}
	if err := s.deps.Sessions.Save(r.Context(), sess); err != nil {
		log.Error().Err(err).Msg("save session")
		http.Error(w, `{"error":"save_failed"}`, http.StatusInternalServerError)
		return
	}
	_ = json.NewEncoder(w).Encode(assistTurnRes{SessionID: tok, Guess: guess, Remaining: pool.Len(), Turn: 1})
}

type assistFeedbackReq struct {
	SessionID string `json:"sessionId"`
	Guess     string `json:"guess"`    // optional: defaults to the last suggestion
	Feedback  string `json:"feedback"` // five of g/y/- (see solver.ParseFeedback)
}

func (s *Server) handleAssistFeedback(w http.ResponseWriter, r *http.Request) {
	var req assistFeedbackReq
	if err := decode(r, &req); err != nil {
		http.Error(w, `{"error":"bad_json"}`, http.StatusBadRequest)
		return
	}
	sess := s.loadSession(w, r, sessionToken(r, req.SessionID), store.ModeAssist)
	if sess == nil {
		return
	}
	sess.Lock()
	defer sess.Unlock()

	fb, err := solver.ParseFeedback(req.Feedback)
	if err != nil {
		http.Error(w, `{"error":"invalid_feedback"}`, http.StatusBadRequest)
		return
	}
	guess := strings.ToLower(strings.TrimSpace(req.Guess))
	if guess == "" {
		guess = sess.Suggestion
	}
	if !solver.IsWord(guess) {
		http.Error(w, `{"error":"invalid_guess"}`, http.StatusBadRequest)
		return
	}

	played := append(append([]string(nil), sess.Last.History...), guess)
	res := solver.GuessResult{Guess: guess, Feedback: fb, History: played, IsValid: true}

	if fb.AllCorrect() {
		s.record(r.Context(), history.Record{
			SessionID: sess.ID,
			Mode:      history.ModeAssist,
			Answer:    guess,
			Guesses:   len(played),
			Solved:    true,
			ElapsedMs: int(s.deps.Now().Sub(sess.CreatedAt).Milliseconds()),
		})
		if err := s.deps.Sessions.Delete(r.Context(), sess.ID); err != nil {
			log.Warn().Err(err).Str("session", sess.ID).Msg("delete session")
		}
		_ = json.NewEncoder(w).Encode(assistTurnRes{Remaining: 0, Turn: len(played), Solved: true})
		return
	}

	next, err := sess.Pool.Advance(res)
	if err != nil {
		solverError(w, err)
		return
	}
	sess.Last = res
	sess.Suggestion = next
	sess.Touch()
	_ = json.NewEncoder(w).Encode(assistTurnRes{Guess: next, Remaining: sess.Pool.Len(), Turn: len(played) + 1})
}

type candidatesRes struct {
	Total      int      `json:"total"`
	Candidates []string `json:"candidates"`
	Suggestion string   `json:"suggestion,omitempty"`
}

// handleAssistCandidates lists the pool, pending suggestion included.
func (s *Server) handleAssistCandidates(w http.ResponseWriter, r *http.Request) {
	limit := defaultCandidateLimit
	if v := r.URL.Query().Get("limit"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n < 1 {
			http.Error(w, `{"error":"bad_limit"}`, http.StatusBadRequest)
			return
		}
		limit = min(n, maxCandidateLimit)
	}
	sess := s.loadSession(w, r, sessionToken(r, ""), store.ModeAssist)
	if sess == nil {
		return
	}
	sess.Lock()
	all := sess.Pool.Candidates()
	suggestion := sess.Suggestion
	sess.Unlock()

	out := candidatesRes{Total: len(all), Candidates: all[:min(limit, len(all))], Suggestion: suggestion}
	_ = json.NewEncoder(w).Encode(out)
}
