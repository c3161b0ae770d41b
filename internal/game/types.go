// internal/game/types.go
//
// Core type definitions for the game engine.
// Defines:
//   - Mark: per-letter result of a guess (hit/present/miss).
//   - Game: state for a single in-progress or finished game.
//   - Dictionary: the word lists a game validates against.

package game

import "github.com/robalobadob/wordle/apps/solver-server/internal/solver"

// Mark represents the evaluation result for a single letter in a guess.
// Possible values:
//   - "hit":     letter is correct and in the correct position.
//   - "present": letter exists in the answer but in a different position.
//   - "miss":    letter is not in the answer, or every copy is already matched.
type Mark string

const (
	MarkHit     Mark = "hit"
	MarkPresent Mark = "present"
	MarkMiss    Mark = "miss"
)

// Status converts a mark to the solver's letter status.
func (m Mark) Status() solver.LetterStatus {
	switch m {
	case MarkHit:
		return solver.Correct
	case MarkPresent:
		return solver.Misplaced
	default:
		return solver.Unused
	}
}

// Dictionary supplies answers and validates guesses.
// *words.Lists satisfies it.
type Dictionary interface {
	IsAllowed(w string) bool
	RandomAnswer() string
}

// Game holds the state of a single game session.
type Game struct {
	ID       string   // Unique game identifier (UUID).
	Answer   string   // The solution word (always lowercase).
	Rows     int      // Maximum number of guesses allowed (typically 6).
	Cols     int      // Number of letters per word (always 5).
	Guesses  []string // List of guesses made so far (lowercased).
	Marks    [][]Mark // Marks[i] scores Guesses[i].
	Finished bool     // True once the game is over (won or lost).
	Won      bool     // True if the game was finished with a win.

	dict Dictionary
}
