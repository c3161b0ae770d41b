// internal/game/engine.go
//
// Core game engine for a single session.
// Responsibilities:
//   - Create new games with fixed dimensions (6x5).
//   - Validate and apply guesses (length, alphabetic, allowed list).
//   - Score guesses using the classic two‑pass algorithm.
//   - Track state transitions: playing → won/lost.
//   - Hand the latest feedback to the solver as a solver.GuessResult.
//
// Notes:
//   - Word lists come from the Dictionary passed to New.
//   - Rows can be raised with SetRows for unlimited-play simulations.

package game

import (
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"

	"github.com/robalobadob/wordle/apps/solver-server/internal/solver"
)

const (
	DefaultRows = 6
	defaultCols = solver.WordLength
)

var (
	ErrFinished     = errors.New("game finished")
	ErrInvalidGuess = errors.New("invalid guess")
	ErrNotInList    = errors.New("not in word list")
	ErrBadAnswer    = errors.New("answer must be 5 letters a–z")
)

// New constructs a new game instance.
// If withAnswer is empty, a random answer is chosen from dict.
func New(dict Dictionary, withAnswer string) (*Game, error) {
	ans := strings.ToLower(strings.TrimSpace(withAnswer))
	if ans == "" {
		ans = dict.RandomAnswer()
	}
	if len(ans) != defaultCols || !isAlpha(ans) {
		return nil, fmt.Errorf("%w: %q", ErrBadAnswer, withAnswer)
	}
	return &Game{
		ID:      uuid.NewString(),
		Answer:  ans,
		Rows:    DefaultRows,
		Cols:    defaultCols,
		Guesses: []string{},
		dict:    dict,
	}, nil
}

// SetRows changes the guess limit. Values below 1 are ignored.
func (g *Game) SetRows(rows int) {
	if rows > 0 {
		g.Rows = rows
	}
}

// ApplyGuess validates and scores a guess, mutating the game state.
// Returns: the per‑letter marks, the new state string ("playing"/"won"/"lost"), or an error.
//
// Validation rules:
//   - Game must not be finished.
//   - Guess must be exactly g.Cols letters and alphabetic a–z.
//   - Guess must be present in the allowed list.
//
// State transitions:
//   - If all tiles are Hit → Finished = true, Won = true.
//   - Else if the number of guesses reaches g.Rows → Finished = true (loss).
func (g *Game) ApplyGuess(guess string) ([]Mark, string, error) {
	if g.Finished {
		return nil, g.State(), ErrFinished
	}
	guess = strings.ToLower(strings.TrimSpace(guess))
	if len(guess) != g.Cols || !isAlpha(guess) {
		return nil, g.State(), ErrInvalidGuess
	}
	if g.dict != nil && !g.dict.IsAllowed(guess) {
		return nil, g.State(), ErrNotInList
	}

	marks := Score(g.Answer, guess)
	g.Guesses = append(g.Guesses, guess)
	g.Marks = append(g.Marks, marks)

	if allHit(marks) {
		g.Finished, g.Won = true, true
	} else if len(g.Guesses) >= g.Rows {
		g.Finished = true
	}
	return marks, g.State(), nil
}

// State reports a coarse string representation of the current game state.
func (g *Game) State() string {
	if g.Finished {
		if g.Won {
			return "won"
		}
		return "lost"
	}
	return "playing"
}

// LastResult returns the feedback for the most recent guess in the form the
// solver consumes. Before any guess it returns solver.FirstTurn().
func (g *Game) LastResult() solver.GuessResult {
	n := len(g.Guesses)
	if n == 0 {
		return solver.FirstTurn()
	}
	return solver.GuessResult{
		Guess:    g.Guesses[n-1],
		Feedback: ToFeedback(g.Marks[n-1]),
		History:  append([]string(nil), g.Guesses...),
		IsValid:  true,
	}
}

// Results returns the feedback for every guess so far, oldest first.
func (g *Game) Results() []solver.GuessResult {
	out := make([]solver.GuessResult, 0, len(g.Guesses))
	for i := range g.Guesses {
		out = append(out, solver.GuessResult{
			Guess:    g.Guesses[i],
			Feedback: ToFeedback(g.Marks[i]),
			History:  append([]string(nil), g.Guesses[:i+1]...),
			IsValid:  true,
		})
	}
	return out
}

// ToFeedback converts five marks to a solver.Feedback.
// Missing positions are reported as Unused.
func ToFeedback(marks []Mark) solver.Feedback {
	var fb solver.Feedback
	for i := 0; i < len(fb) && i < len(marks); i++ {
		fb[i] = marks[i].Status()
	}
	return fb
}

// Feedback scores guess against answer and returns the solver's view of it.
func Feedback(answer, guess string) solver.Feedback {
	return ToFeedback(Score(answer, guess))
}

// Score implements the standard two‑pass scoring algorithm.
//
// Pass 1:
//   - Mark exact matches as Hit.
//   - Count remaining (non‑hit) answer letters by letter index.
//
// Pass 2:
//   - For each non‑hit guess letter: if there is remaining count for that letter,
//     mark Present and decrement the count; otherwise mark Miss.
//
// This ensures correct behavior with repeated letters in both answer and guess.
// answer and guess must have the same length.
func Score(answer, guess string) []Mark {
	n := len(guess)
	res := make([]Mark, n)

	// Letter frequency for the non‑hit positions (a–z).
	var counts [26]int

	// First pass: mark hits and collect counts for remaining answer letters.
	for i := 0; i < n; i++ {
		if guess[i] == answer[i] {
			res[i] = MarkHit
		} else if j := idx(answer[i]); j >= 0 && j < 26 {
			counts[j]++
		}
	}

	// Second pass: resolve presents/misses for non‑hit tiles.
	for i := 0; i < n; i++ {
		if res[i] == MarkHit {
			continue
		}
		j := idx(guess[i])
		if j >= 0 && j < 26 && counts[j] > 0 {
			res[i] = MarkPresent
			counts[j]--
		} else {
			res[i] = MarkMiss
		}
	}
	return res
}

// idx maps a lowercase ASCII letter to 0..25.
func idx(b byte) int { return int(b) - 'a' }

// isAlpha checks that a string consists only of lowercase a–z.
func isAlpha(s string) bool {
	for _, r := range s {
		if r < 'a' || r > 'z' {
			return false
		}
	}
	return true
}

// allHit returns true if all marks are MarkHit.
func allHit(m []Mark) bool {
	for _, x := range m {
		if x != MarkHit {
			return false
		}
	}
	return true
}
