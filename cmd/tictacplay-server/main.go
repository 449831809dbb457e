package main

import (
	"context"
	"flag"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/pkg/errors"
	"github.com/rs/zerolog/log"

	"github.com/hailam/tictacplay/internal/api"
	"github.com/hailam/tictacplay/internal/config"
)

var (
	addr       = flag.String("addr", config.Env("ADDR", ":8080"), "listen address")
	threads    = flag.Int("threads", config.EnvInt("THREADS", 1), "root moves searched in parallel")
	randomTies = flag.Bool("random-ties", config.EnvBool("RANDOM_TIES", false), "break ties between equal moves at random")
	seed       = flag.Uint64("seed", config.EnvUint("SEED", 0), "seed for random tie-breaking (0 = unseeded)")
	debug      = flag.Bool("debug", config.EnvBool("DEBUG", false), "enable debug logging")
)

func main() {
	flag.Parse()
	config.SetupLogging(*debug)

	eng := config.EngineOptions{Threads: *threads, RandomTies: *randomTies, Seed: *seed}.NewEngine()
	server := &http.Server{
		Addr:              *addr,
		Handler:           api.NewServer(eng),
		ReadHeaderTimeout: 5 * time.Second,
	}

	serverErrCh := make(chan error, 1)
	go func() {
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serverErrCh <- err
		}
		close(serverErrCh)
	}()

	sigCtx, stopSignals := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stopSignals()

	log.Info().Str("addr", *addr).Msg("server listening")

	var runErr error
	select {
	case <-sigCtx.Done():
		log.Info().Msg("shutdown signal received")
	case err, ok := <-serverErrCh:
		if ok {
			runErr = err
		}
	}

	shutdownCtx, cancelShutdown := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancelShutdown()
	if err := server.Shutdown(shutdownCtx); err != nil && !errors.Is(err, http.ErrServerClosed) {
		log.Error().Err(err).Msg("graceful shutdown failed")
		if closeErr := server.Close(); closeErr != nil && !errors.Is(closeErr, http.ErrServerClosed) {
			log.Error().Err(closeErr).Msg("forced close failed")
		}
	}

	if runErr != nil {
		log.Fatal().Err(runErr).Msg("server error")
	}
}
