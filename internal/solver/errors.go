package solver

import "errors"

var (
	// ErrInvalidFeedback means PickNextGuess or Advance was handed a result with IsValid unset.
	// Callers must never do this; it aborts the game.
	ErrInvalidFeedback = errors.New("solver: invalid feedback")

	// ErrExhaustedCandidates means no candidate is consistent with the feedback
	// received so far. Either the feedback sequence is inconsistent or the
	// game is already won.
	ErrExhaustedCandidates = errors.New("solver: candidate pool exhausted")

	// ErrOpeningNotInCorpus is returned by NewPool for an opening word the
	// corpus does not contain.
	ErrOpeningNotInCorpus = errors.New("solver: opening word not in corpus")

	// ErrEmptyCorpus is returned by NewCorpus when no words are given.
	ErrEmptyCorpus = errors.New("solver: empty corpus")
)
