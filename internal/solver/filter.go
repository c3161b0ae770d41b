// internal/solver/filter.go
//
// Feedback filtering: reduce a candidate list to the words consistent with
// one guess and its feedback.
//
// The feedback is first compiled into per-position and per-letter rules:
//   - fixed[i]     letter required at position i (Correct).
//   - banned[i]    letters ruled out at position i (Misplaced or Unused there).
//   - minCount[c]  number of Correct/Misplaced marks for letter c.
//   - maxCount[c]  equals minCount[c] once c has at least one Unused mark,
//     otherwise unbounded.
//
// Count bounds are what make guesses with repeated letters work: for
// "speed" scored g-g-- the word needs at least one 'e' (the Correct one)
// and at most one (the second 'e' was Unused).

package solver

const unbounded = WordLength + 1

// Constraint is the compiled form of one guess's feedback.
type Constraint struct {
	fixed    [WordLength]byte // 0 when the position is not fixed
	banned   [WordLength][alphabetSize]bool
	minCount [alphabetSize]int
	maxCount [alphabetSize]int
}

// NewConstraint compiles guess and feedback. guess must be a five-letter
// lowercase word.
func NewConstraint(guess string, fb Feedback) Constraint {
	var c Constraint
	for l := range c.maxCount {
		c.maxCount[l] = unbounded
	}

	var hasUnused [alphabetSize]bool
	for i := 0; i < WordLength; i++ {
		l := guess[i] - 'a'
		switch fb[i] {
		case Correct:
			c.fixed[i] = guess[i]
			c.minCount[l]++
		case Misplaced:
			c.banned[i][l] = true
			c.minCount[l]++
		case Unused:
			c.banned[i][l] = true
			hasUnused[l] = true
		}
	}
	for l, unused := range hasUnused {
		if unused {
			c.maxCount[l] = c.minCount[l]
		}
	}
	return c
}

// Matches reports whether w is consistent with the compiled feedback.
func (c *Constraint) Matches(w string) bool {
	if len(w) != WordLength {
		return false
	}
	var counts [alphabetSize]int
	for i := 0; i < WordLength; i++ {
		ch := w[i]
		if ch < 'a' || ch > 'z' {
			return false
		}
		if c.fixed[i] != 0 && ch != c.fixed[i] {
			return false
		}
		if c.banned[i][ch-'a'] {
			return false
		}
		counts[ch-'a']++
	}
	// Every letter is checked, including those the word lacks entirely.
	for l, n := range counts {
		if n < c.minCount[l] || n > c.maxCount[l] {
			return false
		}
	}
	return true
}

// Filter returns the words of pool consistent with guess and fb, in pool
// order. pool is not modified; the result never aliases it.
func Filter(pool []string, guess string, fb Feedback) []string {
	c := NewConstraint(guess, fb)
	out := make([]string, 0, len(pool))
	for _, w := range pool {
		if c.Matches(w) {
			out = append(out, w)
		}
	}
	return out
}
