// internal/httpserver/routes_game.go
//
// Built-in game with solver hints.
//   - POST /game/new   → start a game (random answer unless one is given)
//   - POST /game/guess → apply a guess, return marks and state
//   - POST /game/hint  → solver suggestion for the current board
//   - POST /game/state → the board so far, for clients resuming a game
//
// Every accepted guess is fed to the session's solver pool, so a hint always
// reflects the whole board.

package httpserver

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog/log"

	"github.com/robalobadob/wordle/apps/solver-server/internal/game"
	"github.com/robalobadob/wordle/apps/solver-server/internal/history"
	"github.com/robalobadob/wordle/apps/solver-server/internal/store"
)

func (s *Server) mountGame() {
	s.r.Route("/game", func(r chi.Router) {
		r.Post("/new", s.handleNewGame)
		r.Post("/guess", s.handleGuess)
		r.Post("/hint", s.handleHint)
		r.Post("/state", s.handleGameState)
	})
}

// newGameReq/Res payloads for POST /game/new.
type newGameReq struct {
	Answer string `json:"answer"` // optional fixed answer (testing)
}
type newGameRes struct {
	SessionID string `json:"sessionId"`
	Rows      int    `json:"rows"`
	Cols      int    `json:"cols"`
}

// handleNewGame creates a game and its hint pool in the session store.
func (s *Server) handleNewGame(w http.ResponseWriter, r *http.Request) {
	var req newGameReq
	if err := decode(r, &req); err != nil {
		http.Error(w, `{"error":"bad_json"}`, http.StatusBadRequest)
		return
	}

	g, err := game.New(s.deps.Words, req.Answer)
	if err != nil {
		http.Error(w, `{"error":"bad_answer"}`, http.StatusBadRequest)
		return
	}
	pool, err := s.poolFor(g.ID)
	if err != nil {
		solverError(w, err)
		return
	}
	sess := store.NewSession(store.ModeGame, pool, g)

	tok, err := s.tokens.sign(sess.ID, sess.Mode)
	if err != nil {
		http.Error(w, `{"error":"sign_failed"}`, http.StatusInternalServerError)
		return
	}
	if err := s.deps.Sessions.Save(r.Context(), sess); err != nil {
		log.Error().Err(err).Msg("save game")
		http.Error(w, `{"error":"save_failed"}`, http.StatusInternalServerError)
		return
	}
	_ = json.NewEncoder(w).Encode(newGameRes{SessionID: tok, Rows: g.Rows, Cols: g.Cols})
}

// guessReq/Res payloads for POST /game/guess.
type guessReq struct {
	SessionID string `json:"sessionId"`
	Guess     string `json:"guess"`
}
type guessRes struct {
	Marks     []game.Mark `json:"marks"`
	Feedback  string      `json:"feedback"`
	State     string      `json:"state"` // "playing" | "won" | "lost"
	Remaining int         `json:"remaining"`
	Answer    string      `json:"answer,omitempty"` // revealed once finished
}

// handleGuess applies a guess, narrows the hint pool, and records finished games.
func (s *Server) handleGuess(w http.ResponseWriter, r *http.Request) {
	var req guessReq
	if err := decode(r, &req); err != nil {
		http.Error(w, `{"error":"bad_json"}`, http.StatusBadRequest)
		return
	}
	sess := s.loadSession(w, r, sessionToken(r, req.SessionID), store.ModeGame)
	if sess == nil {
		return
	}
	sess.Lock()
	defer sess.Unlock()

	g := sess.Game
	marks, state, err := g.ApplyGuess(req.Guess)
	if err != nil {
		switch {
		case errors.Is(err, game.ErrFinished):
			http.Error(w, `{"error":"game_finished"}`, http.StatusConflict)
		case errors.Is(err, game.ErrNotInList):
			http.Error(w, `{"error":"not_in_list"}`, http.StatusBadRequest)
		default:
			http.Error(w, `{"error":"invalid_guess"}`, http.StatusBadRequest)
		}
		return
	}

	sess.Last = g.LastResult()
	if err := sess.Pool.Observe(sess.Last); err != nil {
		log.Warn().Err(err).Str("session", sess.ID).Msg("observe guess")
	}
	sess.Touch()

	res := guessRes{
		Marks:     marks,
		Feedback:  sess.Last.Feedback.String(),
		State:     state,
		Remaining: sess.Pool.Len(),
	}
	if g.Finished {
		res.Answer = g.Answer
		s.record(r.Context(), history.Record{
			SessionID: sess.ID,
			Mode:      history.ModeGame,
			Answer:    g.Answer,
			Guesses:   len(g.Guesses),
			Solved:    g.Won,
			ElapsedMs: int(s.deps.Now().Sub(sess.CreatedAt).Milliseconds()),
		})
	}
	_ = json.NewEncoder(w).Encode(res)
}

type hintReq struct {
	SessionID string `json:"sessionId"`
}
type hintRes struct {
	Guess     string `json:"guess"`
	Remaining int    `json:"remaining"`
}

// handleHint suggests the best remaining candidate without playing it.
func (s *Server) handleHint(w http.ResponseWriter, r *http.Request) {
	var req hintReq
	if err := decode(r, &req); err != nil {
		http.Error(w, `{"error":"bad_json"}`, http.StatusBadRequest)
		return
	}
	sess := s.loadSession(w, r, sessionToken(r, req.SessionID), store.ModeGame)
	if sess == nil {
		return
	}
	sess.Lock()
	defer sess.Unlock()

	if sess.Game.Finished {
		http.Error(w, `{"error":"game_finished"}`, http.StatusConflict)
		return
	}
	var (
		guess string
		err   error
	)
	if len(sess.Game.Guesses) == 0 {
		guess = sess.Pool.Opening()
	} else {
		guess, err = sess.Pool.Suggest()
	}
	if err != nil {
		solverError(w, err)
		return
	}
	sess.Suggestion = guess
	_ = json.NewEncoder(w).Encode(hintRes{Guess: guess, Remaining: sess.Pool.Len()})
}

type boardRow struct {
	Guess    string `json:"guess"`
	Feedback string `json:"feedback"`
}
type stateRes struct {
	Rows      int        `json:"rows"`
	Board     []boardRow `json:"board"`
	State     string     `json:"state"`
	Remaining int        `json:"remaining"`
	Answer    string     `json:"answer,omitempty"`
}

func (s *Server) handleGameState(w http.ResponseWriter, r *http.Request) {
	var req hintReq
	if err := decode(r, &req); err != nil {
		http.Error(w, `{"error":"bad_json"}`, http.StatusBadRequest)
		return
	}
	sess := s.loadSession(w, r, sessionToken(r, req.SessionID), store.ModeGame)
	if sess == nil {
		return
	}
	sess.Lock()
	defer sess.Unlock()

	g := sess.Game
	res := stateRes{Rows: g.Rows, Board: []boardRow{}, State: g.State(), Remaining: sess.Pool.Len()}
	for _, gr := range g.Results() {
		res.Board = append(res.Board, boardRow{Guess: gr.Guess, Feedback: gr.Feedback.String()})
	}
	if g.Finished {
		res.Answer = g.Answer
	}
	_ = json.NewEncoder(w).Encode(res)
}
