package main

import (
	"flag"
	"fmt"
	"os"
	"time"

	"github.com/pkg/errors"
	"github.com/rs/zerolog/log"

	"github.com/hailam/tictacplay/internal/cli"
	"github.com/hailam/tictacplay/internal/config"
	"github.com/hailam/tictacplay/internal/game"
	"github.com/hailam/tictacplay/internal/storage"
)

var (
	pieceFlag  = flag.String("piece", config.Env("PIECE", ""), "mark to play: x, o or random (default from preferences)")
	threads    = flag.Int("threads", config.EnvInt("THREADS", 0), "root moves searched in parallel (default from preferences)")
	randomTies = flag.Bool("random-ties", config.EnvBool("RANDOM_TIES", true), "break ties between equal moves at random")
	seed       = flag.Uint64("seed", config.EnvUint("SEED", 0), "seed for random tie-breaking (0 = unseeded)")
	debug      = flag.Bool("debug", config.EnvBool("DEBUG", false), "enable debug logging")
	noStats    = flag.Bool("no-stats", config.EnvBool("NO_STATS", false), "do not read or record statistics")
)

func main() {
	flag.Parse()
	config.SetupLogging(*debug)

	var store *storage.Storage
	if !*noStats {
		s, err := storage.NewStorage()
		if err != nil {
			log.Warn().Err(err).Msg("statistics disabled")
		} else {
			store = s
			defer store.Close()
		}
	}

	prefs := storage.DefaultPreferences()
	if store != nil {
		if p, err := store.LoadPreferences(); err == nil {
			prefs = p
		}
	}

	choice := prefs.HumanPiece
	if *pieceFlag != "" {
		c, err := storage.ParsePieceChoice(*pieceFlag)
		if err != nil {
			fmt.Fprintln(os.Stderr, err)
			os.Exit(2)
		}
		choice = c
	}
	n := prefs.Threads
	if *threads > 0 {
		n = *threads
	}

	eng := config.EngineOptions{Threads: n, RandomTies: *randomTies, Seed: *seed}.NewEngine()

	var g *game.Game
	if choice == storage.ChoiceRandom {
		g = game.NewRandom(eng)
	} else {
		g, _ = game.New(choice.Piece(), eng)
	}

	result, err := cli.New(g, os.Stdin, os.Stdout).Run()
	if err != nil {
		if errors.Is(err, cli.ErrQuit) {
			fmt.Println("Bye!")
			return
		}
		log.Fatal().Err(err).Msg("game aborted")
	}

	if store == nil {
		return
	}
	stats, err := store.RecordGame(result)
	if err != nil {
		log.Warn().Err(err).Msg("could not record game")
		return
	}
	prefs.LastPlayed = time.Now()
	if err := store.SavePreferences(prefs); err != nil {
		log.Warn().Err(err).Msg("could not save preferences")
	}
	fmt.Printf("Games: %d  Wins: %d  Losses: %d  Ties: %d  (win rate %.1f%%)\n",
		stats.GamesPlayed, stats.Wins, stats.Losses, stats.Ties, stats.GetWinRate())
}
