// internal/httpserver/routes_simulate.go
//
// Solver self-play.
//   - POST /simulate {answer?, date?} → full transcript of the solver playing
//
// Without an answer the game uses the daily word for date (default: today,
// UTC), picked deterministically from the answer list with the daily salt.

package httpserver

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	"github.com/rs/zerolog/log"

	"github.com/robalobadob/wordle/apps/solver-server/internal/autoplay"
	"github.com/robalobadob/wordle/apps/solver-server/internal/daily"
	"github.com/robalobadob/wordle/apps/solver-server/internal/history"
	"github.com/robalobadob/wordle/apps/solver-server/internal/solver"
)

func (s *Server) mountSimulate() {
	s.r.Post("/simulate", s.handleSimulate)
}

type simulateReq struct {
	Answer string `json:"answer"`
	Date   string `json:"date"` // YYYY-MM-DD
}

type simulateRes struct {
	autoplay.Transcript
	Guesses int    `json:"guesses"`
	Date    string `json:"date,omitempty"`
}

func (s *Server) handleSimulate(w http.ResponseWriter, r *http.Request) {
	var req simulateReq
	if err := decode(r, &req); err != nil {
		http.Error(w, `{"error":"bad_json"}`, http.StatusBadRequest)
		return
	}
	answer := strings.ToLower(strings.TrimSpace(req.Answer))
	if answer != "" && req.Date != "" {
		http.Error(w, `{"error":"answer_or_date"}`, http.StatusBadRequest)
		return
	}

	var date string
	if answer == "" {
		day := s.deps.Now()
		if req.Date != "" {
			t, err := daily.ParseDateKey(req.Date)
			if err != nil {
				http.Error(w, `{"error":"bad_date"}`, http.StatusBadRequest)
				return
			}
			day = t
		}
		date = daily.DateKey(day)
		answer = daily.Answer(day, s.deps.Config.Daily.Salt, s.deps.Words.Answers())
	} else if !s.deps.Words.IsAllowed(answer) {
		http.Error(w, `{"error":"not_in_list"}`, http.StatusBadRequest)
		return
	}

	l := log.With().Str("mode", history.ModeSimulate).Logger()
	tr, err := autoplay.Play(s.deps.Corpus, s.deps.Words, answer, autoplay.Options{
		Opening: s.deps.Config.Solver.Opening,
		MaxRows: s.deps.Config.Solver.MaxRows,
		Logger:  &l,
	})
	if err != nil && !errors.Is(err, solver.ErrExhaustedCandidates) {
		solverError(w, err)
		return
	}

	s.record(r.Context(), history.Record{
		Mode:      history.ModeSimulate,
		Answer:    tr.Answer,
		Guesses:   tr.Guesses(),
		Solved:    tr.Solved,
		ElapsedMs: int(tr.Elapsed.Milliseconds()),
	})
	if err != nil {
		solverError(w, err)
		return
	}
	_ = json.NewEncoder(w).Encode(simulateRes{Transcript: tr, Guesses: tr.Guesses(), Date: date})
}
