package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog/log"

	"github.com/robalobadob/wordle/apps/solver-server/assets"
	"github.com/robalobadob/wordle/apps/solver-server/internal/config"
	"github.com/robalobadob/wordle/apps/solver-server/internal/history"
	"github.com/robalobadob/wordle/apps/solver-server/internal/httpserver"
	"github.com/robalobadob/wordle/apps/solver-server/internal/logging"
	"github.com/robalobadob/wordle/apps/solver-server/internal/solver"
	"github.com/robalobadob/wordle/apps/solver-server/internal/store"
	"github.com/robalobadob/wordle/apps/solver-server/internal/words"
)

func main() {
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		log.Fatal().Err(err).Msg("failed to load config")
	}
	logging.Setup(cfg.Log)

	lists, err := words.Load(cfg.Words.AnswersFile, cfg.Words.AllowedFile)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to load word lists")
	}
	corpus, err := solver.NewCorpus(lists.Answers())
	if err != nil {
		log.Fatal().Err(err).Msg("failed to build corpus")
	}
	if _, err := solver.NewPool(corpus, solver.PoolOptions{Opening: cfg.Solver.Opening}); err != nil {
		log.Fatal().Err(err).Str("opening", cfg.Solver.Opening).Msg("invalid opening word")
	}
	answers, allowed := lists.Stats()
	log.Info().Int("answers", answers).Int("allowed", allowed).Int("corpus", corpus.Len()).Msg("word lists loaded")

	db, err := history.OpenDB(cfg.Database.DSN)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to open history db")
	}
	defer db.Close()
	if err := history.Migrate(db, assets.Migrations()); err != nil {
		log.Fatal().Err(err).Msg("failed to migrate history db")
	}

	srv, err := httpserver.New(httpserver.Deps{
		Config:   *cfg,
		Corpus:   corpus,
		Words:    lists,
		Sessions: store.NewMemoryStore(),
		History:  history.NewStore(db),
	})
	if err != nil {
		log.Fatal().Err(err).Msg("failed to build server")
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	go srv.SweepLoop(ctx, 10*time.Minute)

	addr := cfg.Server.Addr()
	log.Info().Str("addr", addr).Msg("starting solver-server")
	if err := srv.Start(addr); err != nil {
		log.Fatal().Err(err).Msg("server exited")
	}
}
