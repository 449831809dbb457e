// Package config holds the settings shared by the tictacplay binaries.
// Every flag falls back to a TICTACPLAY_* environment variable.
package config

import (
	"os"
	"strconv"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/hailam/tictacplay/internal/engine"
)

const envPrefix = "TICTACPLAY_"

// Env returns TICTACPLAY_<name>, or def when unset.
func Env(name, def string) string {
	if v, ok := os.LookupEnv(envPrefix + name); ok && v != "" {
		return v
	}
	return def
}

// EnvBool parses TICTACPLAY_<name> as a boolean.
func EnvBool(name string, def bool) bool {
	v, err := strconv.ParseBool(Env(name, strconv.FormatBool(def)))
	if err != nil {
		log.Warn().Str("component", "config").Str("var", envPrefix+name).Msg("ignoring malformed boolean")
		return def
	}
	return v
}

// EnvInt parses TICTACPLAY_<name> as an integer.
func EnvInt(name string, def int) int {
	v, err := strconv.Atoi(Env(name, strconv.Itoa(def)))
	if err != nil {
		log.Warn().Str("component", "config").Str("var", envPrefix+name).Msg("ignoring malformed integer")
		return def
	}
	return v
}

// EnvUint parses TICTACPLAY_<name> as an unsigned integer.
func EnvUint(name string, def uint64) uint64 {
	v, err := strconv.ParseUint(Env(name, strconv.FormatUint(def, 10)), 10, 64)
	if err != nil {
		log.Warn().Str("component", "config").Str("var", envPrefix+name).Msg("ignoring malformed integer")
		return def
	}
	return v
}

// SetupLogging routes the global logger to a console writer on stderr.
func SetupLogging(debug bool) {
	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.Kitchen})
	zerolog.SetGlobalLevel(zerolog.InfoLevel)
	if debug {
		zerolog.SetGlobalLevel(zerolog.DebugLevel)
	}
}

// EngineOptions configures a new engine.
type EngineOptions struct {
	Threads    int
	RandomTies bool
	// Seed makes random tie-breaking reproducible. Zero means unseeded.
	Seed uint64
}

// NewEngine builds an engine from o.
func (o EngineOptions) NewEngine() *engine.Engine {
	eng := engine.NewEngine()
	eng.SetThreads(o.Threads)
	switch {
	case o.Seed != 0:
		eng.SetTieBreaker(engine.NewSeededTieBreaker(o.Seed))
	case o.RandomTies:
		eng.SetTieBreaker(engine.NewRandomTieBreaker())
	}
	log.Debug().
		Str("component", "config").
		Int("threads", eng.Threads()).
		Bool("random_ties", o.RandomTies || o.Seed != 0).
		Msg("engine configured")
	return eng
}
