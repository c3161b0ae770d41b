// internal/solver/pool.go
//
// Pool is the per-game candidate list.
// Responsibilities:
//   - Start every game from a full copy of the corpus (Reset).
//   - Apply one turn of feedback and pick the next guess (PickNextGuess),
//     or keep the pick in the pool until it is actually played (Advance).
//   - Shrink monotonically: each turn replaces the candidate slice with a
//     freshly filtered one and never adds words back.
//
// A Pool is not safe for concurrent use. Many pools may share one *Corpus.

package solver

import (
	"fmt"

	"github.com/rs/zerolog"
)

// DefaultOpening is the first guess used when none is configured.
const DefaultOpening = "crane"

// PoolOptions configures NewPool.
type PoolOptions struct {
	// Opening is the fixed first guess. It must be a corpus word.
	// Empty means DefaultOpening when the corpus contains it, otherwise the
	// corpus word with the best score.
	Opening string

	// Logger receives one debug event per turn. Zero value disables logging.
	Logger *zerolog.Logger
}

// Pool holds the words still consistent with the feedback of one game.
type Pool struct {
	corpus     *Corpus
	table      PopularityTable
	opening    string
	candidates []string
	log        zerolog.Logger
}

// NewPool creates a pool over corpus and resets it.
func NewPool(corpus *Corpus, opts PoolOptions) (*Pool, error) {
	p := &Pool{
		corpus: corpus,
		table:  corpus.Popularity(),
		log:    zerolog.Nop(),
	}
	if opts.Logger != nil {
		p.log = *opts.Logger
	}

	switch {
	case opts.Opening != "":
		if !corpus.Contains(opts.Opening) {
			return nil, fmt.Errorf("%w: %q", ErrOpeningNotInCorpus, opts.Opening)
		}
		p.opening = opts.Opening
	case corpus.Contains(DefaultOpening):
		p.opening = DefaultOpening
	default:
		best, err := ChooseBest(corpus.words, p.table)
		if err != nil {
			return nil, err
		}
		p.opening = best
	}

	p.Reset()
	return p, nil
}

// Reset repopulates the pool with every corpus word.
func (p *Pool) Reset() {
	p.candidates = p.corpus.Words()
}

// Opening returns the fixed first guess.
func (p *Pool) Opening() string { return p.opening }

// Len returns the number of remaining candidates.
func (p *Pool) Len() int { return len(p.candidates) }

// Candidates returns a copy of the remaining candidates in pool order.
func (p *Pool) Candidates() []string {
	return append([]string(nil), p.candidates...)
}

// PickNextGuess applies prev to the pool and returns the next guess, which
// is removed from the pool.
//
// The first turn (prev has no guess and no history) returns the opening
// word. A failed turn leaves the pool unchanged.
func (p *Pool) PickNextGuess(prev GuessResult) (string, error) {
	if !prev.IsValid {
		return "", ErrInvalidFeedback
	}
	if prev.isFirstTurn() {
		p.candidates = without(p.candidates, p.opening)
		p.log.Debug().Str("guess", p.opening).Int("remaining", len(p.candidates)).Msg("opening guess")
		return p.opening, nil
	}

	survivors, err := p.filter(prev)
	if err != nil {
		return "", err
	}
	best, err := ChooseBest(survivors, p.table)
	if err != nil {
		p.log.Debug().Str("guess", prev.Guess).Str("feedback", prev.Feedback.String()).
			Int("before", len(p.candidates)).Msg("no candidates left")
		return "", err
	}
	p.candidates = without(survivors, best)
	p.log.Debug().
		Str("previous", prev.Guess).
		Str("feedback", prev.Feedback.String()).
		Int("survivors", len(survivors)).
		Str("guess", best).
		Msg("picked guess")
	return best, nil
}

// Advance applies prev and returns the best survivor without removing it,
// for callers that cannot be sure the guess they are handed gets played.
// A guess whose feedback is not all correct fails its own positional
// constraints, so a played word drops out on the next call.
//
// The first turn returns the opening. A failed turn leaves the pool
// unchanged.
func (p *Pool) Advance(prev GuessResult) (string, error) {
	if !prev.IsValid {
		return "", ErrInvalidFeedback
	}
	if prev.isFirstTurn() {
		return p.opening, nil
	}
	survivors, err := p.filter(prev)
	if err != nil {
		return "", err
	}
	best, err := ChooseBest(survivors, p.table)
	if err != nil {
		p.log.Debug().Str("guess", prev.Guess).Str("feedback", prev.Feedback.String()).
			Int("before", len(p.candidates)).Msg("no candidates left")
		return "", err
	}
	p.candidates = survivors
	p.log.Debug().
		Str("previous", prev.Guess).
		Str("feedback", prev.Feedback.String()).
		Int("survivors", len(survivors)).
		Str("suggestion", best).
		Msg("advanced")
	return best, nil
}

// Observe applies prev to the pool without picking a guess. Applying the
// same feedback twice has no further effect.
func (p *Pool) Observe(prev GuessResult) error {
	if !prev.IsValid {
		return ErrInvalidFeedback
	}
	if prev.isFirstTurn() {
		return nil
	}
	survivors, err := p.filter(prev)
	if err != nil {
		return err
	}
	p.candidates = survivors
	return nil
}

// Suggest returns the best remaining candidate without removing it.
func (p *Pool) Suggest() (string, error) {
	return ChooseBest(p.candidates, p.table)
}

func (p *Pool) filter(prev GuessResult) ([]string, error) {
	if !IsWord(prev.Guess) {
		return nil, fmt.Errorf("%w: guess %q is not a %d-letter word", ErrInvalidFeedback, prev.Guess, WordLength)
	}
	return Filter(p.candidates, prev.Guess, prev.Feedback), nil
}

// without returns a copy of words minus w.
func without(words []string, w string) []string {
	out := make([]string, 0, len(words))
	for _, x := range words {
		if x != w {
			out = append(out, x)
		}
	}
	return out
}
