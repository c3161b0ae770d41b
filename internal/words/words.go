// internal/words/words.go
//
// Word list management for the solver and the game engine.
//
// Word Lists:
//   - "answers": the solver corpus and the pool of possible solutions.
//   - "allowed": extra valid guesses (always includes answers).
//
// Selection (Load):
//   1. answers and allowed paths both set: read each file.
//   2. only allowed path set: use that file for both lists.
//   3. only answers path set: use that file for both lists.
//   4. neither set: use the embedded lists from the assets package.
//
// Normalisation:
//   • lines are trimmed and lowercased; blanks and "#" comments are skipped.
//   • only five-letter a–z words are kept.
//   • duplicates are dropped, keeping the first occurrence.

package words

import (
	"bufio"
	"crypto/rand"
	"errors"
	"fmt"
	"math/big"
	"os"
	"strings"

	"github.com/robalobadob/wordle/apps/solver-server/assets"
)

// ErrNoAnswers is returned when the answers list ends up empty.
var ErrNoAnswers = errors.New("words: answers list is empty")

// Lists is a loaded, read-only pair of word lists.
type Lists struct {
	answers    []string
	answersSet map[string]struct{}
	allowedSet map[string]struct{} // answers ∪ allowed
}

// Load reads the word lists as described in the package comment.
func Load(answersPath, allowedPath string) (*Lists, error) {
	var ansList, allowList []string
	var err error

	switch {
	case answersPath != "" && allowedPath != "":
		if ansList, err = readWordFile(answersPath); err != nil {
			return nil, err
		}
		if allowList, err = readWordFile(allowedPath); err != nil {
			return nil, err
		}
	case answersPath == "" && allowedPath != "":
		if allowList, err = readWordFile(allowedPath); err != nil {
			return nil, err
		}
		ansList = allowList
	case answersPath != "":
		if ansList, err = readWordFile(answersPath); err != nil {
			return nil, err
		}
		allowList = ansList
	default:
		raw, err := assets.AnswersList()
		if err != nil {
			return nil, fmt.Errorf("words: embedded answers: %w", err)
		}
		ansList = Normalize(raw)
		raw, err = assets.AllowedList()
		if err != nil {
			return nil, fmt.Errorf("words: embedded allowed: %w", err)
		}
		allowList = Normalize(raw)
	}
	return New(ansList, allowList)
}

// New builds Lists from in-memory slices. Both are normalised.
func New(answers, allowed []string) (*Lists, error) {
	l := &Lists{answers: Normalize(answers)}
	if len(l.answers) == 0 {
		return nil, ErrNoAnswers
	}
	l.answersSet = toSet(l.answers)
	l.allowedSet = toSet(l.answers)
	for _, w := range Normalize(allowed) {
		l.allowedSet[w] = struct{}{}
	}
	return l, nil
}

// readWordFile loads one word per line from a file.
func readWordFile(path string) ([]string, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("words: open %s: %w", path, err)
	}
	defer f.Close()
	var out []string
	sc := bufio.NewScanner(f)
	for sc.Scan() {
		out = append(out, sc.Text())
	}
	if err := sc.Err(); err != nil {
		return nil, fmt.Errorf("words: read %s: %w", path, err)
	}
	return Normalize(out), nil
}

// Normalize lowercases and trims each entry, keeps valid five-letter words,
// and removes duplicates while preserving order.
func Normalize(lines []string) []string {
	out := make([]string, 0, len(lines))
	seen := make(map[string]struct{}, len(lines))
	for _, line := range lines {
		w := strings.TrimSpace(strings.ToLower(line))
		if len(w) != 5 || !isAlpha(w) {
			continue
		}
		if _, dup := seen[w]; dup {
			continue
		}
		seen[w] = struct{}{}
		out = append(out, w)
	}
	return out
}

// toSet converts a list of strings into a lookup set.
func toSet(list []string) map[string]struct{} {
	m := make(map[string]struct{}, len(list))
	for _, w := range list {
		m[w] = struct{}{}
	}
	return m
}

// isAlpha reports whether s is all lowercase ASCII letters.
func isAlpha(s string) bool {
	for _, r := range s {
		if r < 'a' || r > 'z' {
			return false
		}
	}
	return true
}

// Answers returns a copy of the answer list in file order.
func (l *Lists) Answers() []string {
	return append([]string(nil), l.answers...)
}

// RandomAnswer returns a cryptographically random answer.
func (l *Lists) RandomAnswer() string {
	nBig, err := rand.Int(rand.Reader, big.NewInt(int64(len(l.answers))))
	if err != nil {
		return l.answers[0]
	}
	return l.answers[nBig.Int64()]
}

// IsAllowed reports whether w is a valid guess (answers ∪ allowed).
func (l *Lists) IsAllowed(w string) bool {
	_, ok := l.allowedSet[strings.ToLower(w)]
	return ok
}

// IsAnswer reports whether w is an answer word.
func (l *Lists) IsAnswer(w string) bool {
	_, ok := l.answersSet[strings.ToLower(w)]
	return ok
}

// Stats returns counts of loaded words: (answers, allowed).
func (l *Lists) Stats() (answersCount int, allowedCount int) {
	return len(l.answers), len(l.allowedSet)
}
