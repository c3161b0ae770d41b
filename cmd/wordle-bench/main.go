// Command wordle-bench plays the solver against the game engine.
//
// With -answer or -daily it plays one game and prints the transcript;
// otherwise it plays every answer (or the first -limit) and prints a summary.
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"os/signal"
	"sort"
	"time"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog/log"
	"github.com/schollz/progressbar/v3"

	"github.com/robalobadob/wordle/apps/solver-server/internal/autoplay"
	"github.com/robalobadob/wordle/apps/solver-server/internal/config"
	"github.com/robalobadob/wordle/apps/solver-server/internal/daily"
	"github.com/robalobadob/wordle/apps/solver-server/internal/logging"
	"github.com/robalobadob/wordle/apps/solver-server/internal/solver"
	"github.com/robalobadob/wordle/apps/solver-server/internal/words"
)

func main() {
	_ = godotenv.Load()
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	logging.Setup(config.LogConfig{Level: "warn", Format: "console"})
	if err := run(ctx, os.Args[1:], os.Stdout); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			os.Exit(2)
		}
		log.Fatal().Err(err).Msg("wordle-bench")
	}
}

type benchFlags struct {
	answer  string
	daily   string
	salt    string
	opening string
	answers string
	allowed string
	limit   int
	workers int
	rows    int
	quiet   bool
}

func parseFlags(args []string) (benchFlags, error) {
	var f benchFlags
	fs := flag.NewFlagSet("wordle-bench", flag.ContinueOnError)
	fs.StringVar(&f.answer, "answer", "", "play a single game with this answer")
	fs.StringVar(&f.daily, "daily", "", "play the daily word for YYYY-MM-DD (\"today\" for the current UTC date)")
	fs.StringVar(&f.salt, "salt", envOr("DAILY_SALT", "local_dev_salt"), "daily word salt")
	fs.StringVar(&f.opening, "opening", "", "fixed first guess (default: crane or the best-scoring word)")
	fs.StringVar(&f.answers, "answers", "", "answers file (default: embedded list)")
	fs.StringVar(&f.allowed, "allowed", "", "allowed guesses file (default: embedded list)")
	fs.IntVar(&f.limit, "limit", 0, "play only the first N answers (0 = all)")
	fs.IntVar(&f.workers, "workers", 4, "concurrent games")
	fs.IntVar(&f.rows, "rows", 6, "guess limit per game")
	fs.BoolVar(&f.quiet, "quiet", false, "no progress bar")
	if err := fs.Parse(args); err != nil {
		return f, err
	}
	if f.answer != "" && f.daily != "" {
		return f, errors.New("-answer and -daily are mutually exclusive")
	}
	if f.limit < 0 {
		return f, errors.New("-limit must be >= 0")
	}
	return f, nil
}

// envOr returns the value of k or def if unset/empty.
func envOr(k, def string) string {
	if v := os.Getenv(k); v != "" {
		return v
	}
	return def
}

func run(ctx context.Context, args []string, out io.Writer) error {
	f, err := parseFlags(args)
	if err != nil {
		return err
	}

	lists, err := words.Load(f.answers, f.allowed)
	if err != nil {
		return err
	}
	corpus, err := solver.NewCorpus(lists.Answers())
	if err != nil {
		return err
	}
	opts := autoplay.Options{Opening: f.opening, MaxRows: f.rows, Workers: f.workers}

	if f.daily != "" {
		day := time.Now().UTC()
		if f.daily != "today" {
			if day, err = daily.ParseDateKey(f.daily); err != nil {
				return fmt.Errorf("-daily: %w", err)
			}
		}
		f.answer = daily.Answer(day, f.salt, lists.Answers())
		fmt.Fprintf(out, "daily %s\n", daily.DateKey(day))
	}
	if f.answer != "" {
		tr, err := autoplay.Play(corpus, lists, f.answer, opts)
		printTranscript(out, tr)
		return err
	}

	answers := lists.Answers()
	if f.limit > 0 && f.limit < len(answers) {
		answers = answers[:f.limit]
	}
	if !f.quiet {
		bar := progressbar.Default(int64(len(answers)))
		opts.Progress = func() { _ = bar.Add(1) }
	}
	sum, err := autoplay.Batch(ctx, corpus, lists, answers, opts)
	if err != nil {
		return err
	}
	printSummary(out, sum)
	return nil
}

func printTranscript(out io.Writer, tr autoplay.Transcript) {
	for i, t := range tr.Turns {
		fmt.Fprintf(out, "%d  %s  %s  %d left\n", i+1, t.Guess, t.Feedback, t.Remaining)
	}
	if tr.Solved {
		fmt.Fprintf(out, "solved %s in %d\n", tr.Answer, tr.Guesses())
	} else {
		fmt.Fprintf(out, "failed %s after %d\n", tr.Answer, tr.Guesses())
	}
}

func printSummary(out io.Writer, sum autoplay.Summary) {
	fmt.Fprintf(out, "games %d  wins %d (%.1f%%)  mean %.3f  in %s\n",
		sum.Games, sum.Wins, 100*sum.WinRate(), sum.MeanGuesses, sum.Elapsed.Round(time.Millisecond))
	keys := make([]int, 0, len(sum.Distribution))
	for k := range sum.Distribution {
		keys = append(keys, k)
	}
	sort.Ints(keys)
	for _, k := range keys {
		fmt.Fprintf(out, "  %d: %d\n", k, sum.Distribution[k])
	}
	for _, fl := range sum.Failures {
		fmt.Fprintf(out, "  failed %s: %s\n", fl.Answer, fl.Reason)
	}
}
