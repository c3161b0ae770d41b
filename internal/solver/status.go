// internal/solver/status.go
//
// Feedback types shared by the solver and the game engine.
//   - LetterStatus: per-position outcome of a guess.
//   - Feedback:     the five statuses for one guess.
//   - GuessResult:  one turn's feedback as handed to Pool.PickNextGuess.

package solver

import (
	"fmt"
	"strings"
)

// WordLength is the only supported word length.
const WordLength = 5

// LetterStatus is the outcome of one guessed letter.
// The numeric values follow the usual 0/1/2 (miss/present/hit) encoding.
type LetterStatus uint8

const (
	Unused    LetterStatus = iota // letter absent, or more copies guessed than the answer holds
	Misplaced                     // letter present elsewhere
	Correct                       // letter in this exact position
)

// String returns the single-character code used by ParseFeedback.
func (s LetterStatus) String() string {
	switch s {
	case Correct:
		return "g"
	case Misplaced:
		return "y"
	case Unused:
		return "-"
	default:
		return "?"
	}
}

// Feedback is the status vector for one five-letter guess.
type Feedback [WordLength]LetterStatus

// AllCorrect reports whether every position is Correct.
func (f Feedback) AllCorrect() bool {
	for _, s := range f {
		if s != Correct {
			return false
		}
	}
	return true
}

// String renders the feedback as five status codes, e.g. "g-y--".
func (f Feedback) String() string {
	var b strings.Builder
	for _, s := range f {
		b.WriteString(s.String())
	}
	return b.String()
}

// ParseFeedback accepts five characters, one per position:
//
//	g, G, 2  Correct
//	y, Y, 1  Misplaced
//	-, x, X, b, B, ., 0  Unused
func ParseFeedback(s string) (Feedback, error) {
	var f Feedback
	s = strings.TrimSpace(s)
	if len(s) != WordLength {
		return f, fmt.Errorf("feedback must have %d positions, got %d", WordLength, len(s))
	}
	for i := 0; i < WordLength; i++ {
		switch s[i] {
		case 'g', 'G', '2':
			f[i] = Correct
		case 'y', 'Y', '1':
			f[i] = Misplaced
		case '-', 'x', 'X', 'b', 'B', '.', '0':
			f[i] = Unused
		default:
			return f, fmt.Errorf("feedback position %d: unknown status %q", i+1, s[i])
		}
	}
	return f, nil
}

// GuessResult is the feedback for one turn.
//
// History holds every guess made so far in order, including Guess itself.
// A zero GuessResult with IsValid set is the first turn of a game.
type GuessResult struct {
	Guess    string
	Feedback Feedback
	History  []string
	IsValid  bool
}

// FirstTurn is the result handed to PickNextGuess before any guess exists.
func FirstTurn() GuessResult {
	return GuessResult{IsValid: true}
}

// isFirstTurn reports whether no guess has been made yet.
func (r GuessResult) isFirstTurn() bool {
	return r.Guess == "" && len(r.History) == 0
}
