// internal/autoplay/autoplay.go
//
// Runs the solver against the game engine.
// Responsibilities:
//   - Play one game to a win or loss and record every turn (Play).
//   - Play many games concurrently over a shared corpus (Batch).
//
// Each game gets its own solver pool; the corpus is shared read-only.

package autoplay

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/rs/zerolog"
	"golang.org/x/sync/errgroup"

	"github.com/robalobadob/wordle/apps/solver-server/internal/game"
	"github.com/robalobadob/wordle/apps/solver-server/internal/solver"
)

// Options configures Play and Batch.
type Options struct {
	Opening string // empty uses the pool default
	MaxRows int    // guess limit; <= 0 means game.DefaultRows
	Workers int    // Batch only; <= 0 means 4
	Logger  *zerolog.Logger

	// Progress is called once per finished game in Batch. It may be called
	// from several goroutines at once.
	Progress func()
}

// Turn is one guess in a transcript.
type Turn struct {
	Guess     string      `json:"guess"`
	Marks     []game.Mark `json:"marks"`
	Feedback  string      `json:"feedback"`  // compact g/y/- form
	Remaining int         `json:"remaining"` // candidates left after the guess
}

// Transcript is the record of one game.
type Transcript struct {
	Answer  string        `json:"answer"`
	Opening string        `json:"opening"`
	Turns   []Turn        `json:"turns"`
	Solved  bool          `json:"solved"`
	Elapsed time.Duration `json:"-"`
}

// Guesses returns the number of turns played.
func (t Transcript) Guesses() int { return len(t.Turns) }

// Play runs the solver against a single game with the given answer.
//
// A game that ends with the pool exhausted is reported as unsolved with
// solver.ErrExhaustedCandidates; that only happens when answer is not in
// the corpus.
func Play(corpus *solver.Corpus, dict game.Dictionary, answer string, opts Options) (Transcript, error) {
	start := time.Now()
	pool, err := solver.NewPool(corpus, solver.PoolOptions{Opening: opts.Opening, Logger: opts.Logger})
	if err != nil {
		return Transcript{}, err
	}
	g, err := game.New(dict, answer)
	if err != nil {
		return Transcript{}, err
	}
	if opts.MaxRows > 0 {
		g.SetRows(opts.MaxRows)
	}

	tr := Transcript{Answer: g.Answer, Opening: pool.Opening(), Turns: []Turn{}}
	for !g.Finished {
		guess, err := pool.PickNextGuess(g.LastResult())
		if err != nil {
			tr.Elapsed = time.Since(start)
			return tr, err
		}
		marks, _, err := g.ApplyGuess(guess)
		if err != nil {
			tr.Elapsed = time.Since(start)
			return tr, fmt.Errorf("engine rejected %q: %w", guess, err)
		}
		tr.Turns = append(tr.Turns, Turn{
			Guess:     guess,
			Marks:     marks,
			Feedback:  game.ToFeedback(marks).String(),
			Remaining: pool.Len(),
		})
	}
	tr.Solved = g.Won
	tr.Elapsed = time.Since(start)
	return tr, nil
}

// Failure names an answer the solver did not get.
type Failure struct {
	Answer string `json:"answer"`
	Reason string `json:"reason"`
}

// Summary aggregates a batch of games.
type Summary struct {
	Games        int         `json:"games"`
	Wins         int         `json:"wins"`
	MeanGuesses  float64     `json:"meanGuesses"`  // over wins
	Distribution map[int]int `json:"distribution"` // guesses -> wins
	Failures     []Failure   `json:"failures"`     // in answers order
	Elapsed      time.Duration
}

// WinRate returns Wins/Games, or 0 for an empty batch.
func (s Summary) WinRate() float64 {
	if s.Games == 0 {
		return 0
	}
	return float64(s.Wins) / float64(s.Games)
}

// Batch plays one game per answer with at most opts.Workers in flight.
// It stops scheduling new games once ctx is done and returns ctx.Err().
func Batch(ctx context.Context, corpus *solver.Corpus, dict game.Dictionary, answers []string, opts Options) (Summary, error) {
	start := time.Now()
	workers := opts.Workers
	if workers <= 0 {
		workers = 4
	}

	results := make([]Transcript, len(answers))
	errs := make([]error, len(answers))

	eg, egCtx := errgroup.WithContext(ctx)
	eg.SetLimit(workers)

	var progressMu sync.Mutex
	for i, answer := range answers {
		if egCtx.Err() != nil {
			break
		}
		i, answer := i, answer
		eg.Go(func() error {
			if err := egCtx.Err(); err != nil {
				return err
			}
			results[i], errs[i] = Play(corpus, dict, answer, opts)
			if opts.Progress != nil {
				progressMu.Lock()
				opts.Progress()
				progressMu.Unlock()
			}
			return nil
		})
	}
	if err := eg.Wait(); err != nil {
		return Summary{}, err
	}
	if err := ctx.Err(); err != nil {
		return Summary{}, err
	}

	sum := Summary{Distribution: map[int]int{}, Failures: []Failure{}}
	total := 0
	for i, tr := range results {
		sum.Games++
		switch {
		case errs[i] != nil:
			sum.Failures = append(sum.Failures, Failure{Answer: answers[i], Reason: reason(errs[i])})
		case tr.Solved:
			sum.Wins++
			sum.Distribution[tr.Guesses()]++
			total += tr.Guesses()
		default:
			sum.Failures = append(sum.Failures, Failure{Answer: answers[i], Reason: "out of guesses"})
		}
	}
	if sum.Wins > 0 {
		sum.MeanGuesses = float64(total) / float64(sum.Wins)
	}
	sum.Elapsed = time.Since(start)
	return sum, nil
}

func reason(err error) string {
	if errors.Is(err, solver.ErrExhaustedCandidates) {
		return "no candidates left"
	}
	return err.Error()
}
