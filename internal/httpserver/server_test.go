package httpserver

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/robalobadob/wordle/apps/solver-server/assets"
	"github.com/robalobadob/wordle/apps/solver-server/internal/config"
	"github.com/robalobadob/wordle/apps/solver-server/internal/daily"
	"github.com/robalobadob/wordle/apps/solver-server/internal/game"
	"github.com/robalobadob/wordle/apps/solver-server/internal/history"
	"github.com/robalobadob/wordle/apps/solver-server/internal/solver"
	"github.com/robalobadob/wordle/apps/solver-server/internal/store"
	"github.com/robalobadob/wordle/apps/solver-server/internal/words"
)

// Corpus order matters: crane is the opening and the rest keep list order.
var testAnswers = []string{"crane", "slate", "trace", "shelf"}

func testDeps(t *testing.T) Deps {
	t.Helper()
	l, err := words.New(testAnswers, []string{"adieu"})
	require.NoError(t, err)
	c, err := solver.NewCorpus(l.Answers())
	require.NoError(t, err)

	db, err := history.OpenDB("file:" + uuid.NewString() + "?mode=memory&cache=shared")
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })
	require.NoError(t, history.Migrate(db, assets.Migrations()))

	return Deps{
		Config: config.Config{
			Server: config.ServerConfig{
				RequestTimeout: 5 * time.Second,
				ClientOrigin:   "http://client.test",
				SessionTTL:     time.Hour,
			},
			Solver: config.SolverConfig{MaxRows: 6},
			Auth:   config.AuthConfig{SessionSecret: "test_secret"},
			Daily:  config.DailyConfig{Salt: "test_salt"},
		},
		Corpus:   c,
		Words:    l,
		Sessions: store.NewMemoryStore(),
		History:  history.NewStore(db),
	}
}

func newTestServer(t *testing.T, deps Deps) *Server {
	t.Helper()
	s, err := newServer(deps, bcrypt.MinCost)
	require.NoError(t, err)
	return s
}

func do(t *testing.T, s *Server, method, path string, body any) *httptest.ResponseRecorder {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	rec := httptest.NewRecorder()
	s.Router().ServeHTTP(rec, req)
	return rec
}

func decodeInto[T any](t *testing.T, rec *httptest.ResponseRecorder) T {
	t.Helper()
	var v T
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&v), rec.Body.String())
	return v
}

func errorCode(t *testing.T, rec *httptest.ResponseRecorder) string {
	t.Helper()
	return decodeInto[map[string]string](t, rec)["error"]
}

func TestNew_RequiresDeps(t *testing.T) {
	t.Parallel()
	_, err := New(Deps{})
	assert.Error(t, err)
}

func TestDiagnostics(t *testing.T) {
	t.Parallel()
	s := newTestServer(t, testDeps(t))

	rec := do(t, s, http.MethodGet, "/health", nil)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"ok":true}`, rec.Body.String())
	assert.Equal(t, "application/json; charset=utf-8", rec.Header().Get("Content-Type"))
	assert.Equal(t, "http://client.test", rec.Header().Get("Access-Control-Allow-Origin"))

	rec = do(t, s, http.MethodOptions, "/assist/new", nil)
	assert.Equal(t, http.StatusNoContent, rec.Code)

	rec = do(t, s, http.MethodGet, "/nope", nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Equal(t, "not_found", errorCode(t, rec))
}

func TestAssist_SolveFlow(t *testing.T) {
	t.Parallel()
	deps := testDeps(t)
	s := newTestServer(t, deps)

	rec := do(t, s, http.MethodPost, "/assist/new", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	start := decodeInto[assistTurnRes](t, rec)
	assert.Equal(t, "crane", start.Guess)
	assert.Equal(t, 4, start.Remaining)
	assert.Equal(t, 1, start.Turn)
	require.NotEmpty(t, start.SessionID)

	rec = do(t, s, http.MethodGet, "/assist/candidates?limit=2&sessionId="+start.SessionID, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	cands := decodeInto[candidatesRes](t, rec)
	assert.Equal(t, 4, cands.Total)
	assert.Equal(t, []string{"crane", "slate"}, cands.Candidates)
	assert.Equal(t, "crane", cands.Suggestion)

	fb := game.Feedback("slate", "crane").String()
	rec = do(t, s, http.MethodPost, "/assist/feedback", map[string]string{"sessionId": start.SessionID, "feedback": fb})
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	next := decodeInto[assistTurnRes](t, rec)
	assert.Equal(t, "slate", next.Guess)
	assert.Equal(t, 1, next.Remaining)
	assert.Equal(t, 2, next.Turn)
	assert.False(t, next.Solved)

	rec = do(t, s, http.MethodPost, "/assist/feedback", map[string]string{"sessionId": start.SessionID, "feedback": "ggggg"})
	require.Equal(t, http.StatusOK, rec.Code)
	done := decodeInto[assistTurnRes](t, rec)
	assert.True(t, done.Solved)
	assert.Equal(t, 2, done.Turn)

	// Solved sessions are removed.
	rec = do(t, s, http.MethodPost, "/assist/feedback", map[string]string{"sessionId": start.SessionID, "feedback": "ggggg"})
	assert.Equal(t, http.StatusNotFound, rec.Code)

	rec = do(t, s, http.MethodGet, "/history/summary", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	sum := decodeInto[history.Summary](t, rec)
	assert.Equal(t, history.Summary{Runs: 1, Solved: 1, AvgGuesses: 2}, sum)
}

func TestAssist_FailedTurnKeepsState(t *testing.T) {
	t.Parallel()
	s := newTestServer(t, testDeps(t))

	start := decodeInto[assistTurnRes](t, do(t, s, http.MethodPost, "/assist/new", nil))

	rec := do(t, s, http.MethodPost, "/assist/feedback", map[string]string{"sessionId": start.SessionID, "feedback": "-----"})
	assert.Equal(t, http.StatusConflict, rec.Code)
	assert.Equal(t, "no_candidates", errorCode(t, rec))

	rec = do(t, s, http.MethodPost, "/assist/feedback", map[string]string{"sessionId": start.SessionID, "feedback": "ggg"})
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "invalid_feedback", errorCode(t, rec))

	rec = do(t, s, http.MethodPost, "/assist/feedback", map[string]string{"sessionId": start.SessionID, "guess": "cr4ne", "feedback": "-----"})
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "invalid_guess", errorCode(t, rec))

	// The pool is untouched, so the corrected report still works.
	rec = do(t, s, http.MethodPost, "/assist/feedback", map[string]string{"sessionId": start.SessionID, "feedback": "--g-g"})
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "slate", decodeInto[assistTurnRes](t, rec).Guess)
}

func TestAssist_PlayerChoosesOwnGuess(t *testing.T) {
	t.Parallel()
	s := newTestServer(t, testDeps(t))

	start := decodeInto[assistTurnRes](t, do(t, s, http.MethodPost, "/assist/new", nil))
	fb := game.Feedback("shelf", "trace").String()
	rec := do(t, s, http.MethodPost, "/assist/feedback", map[string]string{"sessionId": start.SessionID, "guess": "TRACE", "feedback": fb})
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	assert.Equal(t, "shelf", decodeInto[assistTurnRes](t, rec).Guess)
}

func TestAssist_SkippedSuggestionIsAnswer(t *testing.T) {
	t.Parallel()
	s := newTestServer(t, testDeps(t))

	start := decodeInto[assistTurnRes](t, do(t, s, http.MethodPost, "/assist/new", nil))
	require.Equal(t, "crane", start.Guess)

	// The answer is crane but the player opens with slate instead.
	fb := game.Feedback("crane", "slate").String()
	require.Equal(t, "--g-g", fb)
	rec := do(t, s, http.MethodPost, "/assist/feedback", map[string]string{"sessionId": start.SessionID, "guess": "slate", "feedback": fb})
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	next := decodeInto[assistTurnRes](t, rec)
	assert.Equal(t, assistTurnRes{Guess: "crane", Remaining: 1, Turn: 2}, next)

	rec = do(t, s, http.MethodPost, "/assist/feedback", map[string]string{"sessionId": start.SessionID, "feedback": "ggggg"})
	require.Equal(t, http.StatusOK, rec.Code)
	done := decodeInto[assistTurnRes](t, rec)
	assert.True(t, done.Solved)
	assert.Equal(t, 2, done.Turn)
}

func TestAssist_SessionTokens(t *testing.T) {
	t.Parallel()
	s := newTestServer(t, testDeps(t))

	rec := do(t, s, http.MethodPost, "/assist/feedback", map[string]string{"feedback": "ggggg"})
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.Equal(t, "missing_session", errorCode(t, rec))

	rec = do(t, s, http.MethodPost, "/assist/feedback", map[string]string{"sessionId": "garbage", "feedback": "ggggg"})
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.Equal(t, "invalid_session", errorCode(t, rec))

	gameTok := decodeInto[newGameRes](t, do(t, s, http.MethodPost, "/game/new", nil)).SessionID
	rec = do(t, s, http.MethodPost, "/assist/feedback", map[string]string{"sessionId": gameTok, "feedback": "ggggg"})
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "wrong_mode", errorCode(t, rec))

	// Signed but unknown session.
	tok, err := s.tokens.sign("missing", store.ModeAssist)
	require.NoError(t, err)
	req := httptest.NewRequest(http.MethodGet, "/assist/candidates", nil)
	req.Header.Set("Authorization", "Bearer "+tok)
	rec = httptest.NewRecorder()
	s.Router().ServeHTTP(rec, req)
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestGame_GuessAndHint(t *testing.T) {
	t.Parallel()
	s := newTestServer(t, testDeps(t))

	rec := do(t, s, http.MethodPost, "/game/new", map[string]string{"answer": "slate"})
	require.Equal(t, http.StatusOK, rec.Code)
	ng := decodeInto[newGameRes](t, rec)
	assert.Equal(t, game.DefaultRows, ng.Rows)
	assert.Equal(t, 5, ng.Cols)
	tok := map[string]string{"sessionId": ng.SessionID}

	hint := decodeInto[hintRes](t, do(t, s, http.MethodPost, "/game/hint", tok))
	assert.Equal(t, hintRes{Guess: "crane", Remaining: 4}, hint)

	rec = do(t, s, http.MethodPost, "/game/guess", map[string]string{"sessionId": ng.SessionID, "guess": "adieu"})
	require.Equal(t, http.StatusOK, rec.Code)
	g1 := decodeInto[guessRes](t, rec)
	assert.Equal(t, "playing", g1.State)
	assert.Empty(t, g1.Answer)

	rec = do(t, s, http.MethodPost, "/game/guess", map[string]string{"sessionId": ng.SessionID, "guess": "zzzzz"})
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "not_in_list", errorCode(t, rec))

	rec = do(t, s, http.MethodPost, "/game/guess", map[string]string{"sessionId": ng.SessionID, "guess": "crane"})
	require.Equal(t, http.StatusOK, rec.Code)
	g2 := decodeInto[guessRes](t, rec)
	assert.Equal(t, "--g-g", g2.Feedback)
	assert.Equal(t, 1, g2.Remaining)

	hint = decodeInto[hintRes](t, do(t, s, http.MethodPost, "/game/hint", tok))
	assert.Equal(t, hintRes{Guess: "slate", Remaining: 1}, hint)

	rec = do(t, s, http.MethodPost, "/game/state", tok)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, stateRes{
		Rows:      game.DefaultRows,
		Board:     []boardRow{{Guess: "adieu", Feedback: game.Feedback("slate", "adieu").String()}, {Guess: "crane", Feedback: "--g-g"}},
		State:     "playing",
		Remaining: 1,
	}, decodeInto[stateRes](t, rec))

	rec = do(t, s, http.MethodPost, "/game/guess", map[string]string{"sessionId": ng.SessionID, "guess": "slate"})
	require.Equal(t, http.StatusOK, rec.Code)
	g3 := decodeInto[guessRes](t, rec)
	assert.Equal(t, "won", g3.State)
	assert.Equal(t, "slate", g3.Answer)
	assert.Equal(t, []game.Mark{game.MarkHit, game.MarkHit, game.MarkHit, game.MarkHit, game.MarkHit}, g3.Marks)

	st := decodeInto[stateRes](t, do(t, s, http.MethodPost, "/game/state", tok))
	assert.Equal(t, "won", st.State)
	assert.Equal(t, "slate", st.Answer)
	require.Len(t, st.Board, 3)
	assert.Equal(t, boardRow{Guess: "slate", Feedback: "ggggg"}, st.Board[2])

	rec = do(t, s, http.MethodPost, "/game/hint", tok)
	assert.Equal(t, http.StatusConflict, rec.Code)
	rec = do(t, s, http.MethodPost, "/game/guess", map[string]string{"sessionId": ng.SessionID, "guess": "crane"})
	assert.Equal(t, http.StatusConflict, rec.Code)

	recent := decodeInto[[]history.Record](t, do(t, s, http.MethodGet, "/history/recent", nil))
	require.Len(t, recent, 1)
	assert.Equal(t, history.ModeGame, recent[0].Mode)
	assert.Equal(t, 3, recent[0].Guesses)
	assert.True(t, recent[0].Solved)
}

func TestGame_BadAnswer(t *testing.T) {
	t.Parallel()
	s := newTestServer(t, testDeps(t))
	rec := do(t, s, http.MethodPost, "/game/new", map[string]string{"answer": "toolong"})
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "bad_answer", errorCode(t, rec))
}

func TestSimulate(t *testing.T) {
	t.Parallel()
	deps := testDeps(t)
	today := time.Date(2026, 10, 19, 8, 0, 0, 0, time.UTC)
	deps.Now = func() time.Time { return today }
	s := newTestServer(t, deps)

	rec := do(t, s, http.MethodPost, "/simulate", map[string]string{"answer": "slate"})
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	res := decodeInto[simulateRes](t, rec)
	assert.True(t, res.Solved)
	assert.Equal(t, 2, res.Guesses)
	assert.Equal(t, "crane", res.Turns[0].Guess)
	assert.Empty(t, res.Date)

	rec = do(t, s, http.MethodPost, "/simulate", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	res = decodeInto[simulateRes](t, rec)
	assert.Equal(t, "2026-10-19", res.Date)
	assert.Equal(t, daily.Answer(today, "test_salt", testAnswers), res.Answer)
	assert.True(t, res.Solved)

	rec = do(t, s, http.MethodPost, "/simulate", map[string]string{"date": "2026-01-01"})
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "2026-01-01", decodeInto[simulateRes](t, rec).Date)

	for _, tc := range []struct {
		name string
		body map[string]string
		code int
		err  string
	}{
		{"both", map[string]string{"answer": "slate", "date": "2026-01-01"}, http.StatusBadRequest, "answer_or_date"},
		{"bad date", map[string]string{"date": "19/10/2026"}, http.StatusBadRequest, "bad_date"},
		{"unknown word", map[string]string{"answer": "qqqqq"}, http.StatusBadRequest, "not_in_list"},
		{"outside corpus", map[string]string{"answer": "adieu"}, http.StatusConflict, "no_candidates"},
	} {
		rec := do(t, s, http.MethodPost, "/simulate", tc.body)
		assert.Equal(t, tc.code, rec.Code, tc.name)
		assert.Equal(t, tc.err, errorCode(t, rec), tc.name)
	}

	sum := decodeInto[history.Summary](t, do(t, s, http.MethodGet, "/history/summary", nil))
	assert.Equal(t, 4, sum.Runs)
	assert.Equal(t, 3, sum.Solved)
}

func TestHistory_Disabled(t *testing.T) {
	t.Parallel()
	deps := testDeps(t)
	deps.History = nil
	s := newTestServer(t, deps)

	rec := do(t, s, http.MethodGet, "/history/recent", nil)
	assert.Equal(t, http.StatusServiceUnavailable, rec.Code)

	// Runs still work without a history store.
	rec = do(t, s, http.MethodPost, "/simulate", map[string]string{"answer": "crane"})
	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestHistory_BadLimit(t *testing.T) {
	t.Parallel()
	s := newTestServer(t, testDeps(t))
	rec := do(t, s, http.MethodGet, "/history/recent?limit=0", nil)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	rec = do(t, s, http.MethodGet, "/history/recent?limit=5", nil)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `[]`, rec.Body.String())
}

func TestAdmin(t *testing.T) {
	t.Parallel()

	// Without a password the routes are not mounted.
	s := newTestServer(t, testDeps(t))
	assert.Equal(t, http.StatusNotFound, do(t, s, http.MethodGet, "/admin/words", nil).Code)

	deps := testDeps(t)
	deps.Config.Auth.AdminPassword = "hunter22"
	deps.Now = func() time.Time { return time.Now().Add(time.Hour) }
	s = newTestServer(t, deps)

	adminReq := func(method, path, user, pw string, body string) *httptest.ResponseRecorder {
		req := httptest.NewRequest(method, path, bytes.NewBufferString(body))
		if user != "" {
			req.SetBasicAuth(user, pw)
		}
		rec := httptest.NewRecorder()
		s.Router().ServeHTTP(rec, req)
		return rec
	}

	rec := adminReq(http.MethodGet, "/admin/words", "", "", "")
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.Contains(t, rec.Header().Get("WWW-Authenticate"), "Basic")
	rec = adminReq(http.MethodGet, "/admin/words", "admin", "wrong", "")
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	rec = adminReq(http.MethodGet, "/admin/words", "root", "hunter22", "")
	assert.Equal(t, http.StatusUnauthorized, rec.Code)

	do(t, s, http.MethodPost, "/assist/new", nil)
	do(t, s, http.MethodPost, "/game/new", nil)

	rec = adminReq(http.MethodGet, "/admin/words", "admin", "hunter22", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, map[string]int{"answers": 4, "allowed": 5, "corpus": 4, "sessions": 2}, decodeInto[map[string]int](t, rec))

	rec = adminReq(http.MethodPost, "/admin/sweep", "admin", "hunter22", `{"olderThan":"soon"}`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = adminReq(http.MethodPost, "/admin/sweep", "admin", "hunter22", `{"olderThan":"30m"}`)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, map[string]int{"removed": 2}, decodeInto[map[string]int](t, rec))
	assert.Zero(t, deps.Sessions.Len())
}

func TestTokens(t *testing.T) {
	t.Parallel()

	iss := newTokenIssuer("secret", time.Hour)
	tok, err := iss.sign("abc", store.ModeGame)
	require.NoError(t, err)

	id, mode, err := iss.parse(tok)
	require.NoError(t, err)
	assert.Equal(t, "abc", id)
	assert.Equal(t, store.ModeGame, mode)

	_, _, err = newTokenIssuer("other", time.Hour).parse(tok)
	assert.ErrorIs(t, err, errBadToken)

	_, _, err = iss.parse(tok + "x")
	assert.ErrorIs(t, err, errBadToken)

	expired := tokenIssuer{secret: []byte("secret"), ttl: -time.Minute}
	old, err := expired.sign("abc", store.ModeGame)
	require.NoError(t, err)
	_, _, err = iss.parse(old)
	assert.ErrorIs(t, err, errBadToken)
}
