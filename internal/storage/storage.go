package storage

import (
	"encoding/json"
	"time"

	"github.com/dgraph-io/badger/v4"
	"github.com/pkg/errors"
	"github.com/rs/zerolog/log"

	"github.com/hailam/tictacplay/internal/board"
)

// Storage keys
const (
	keyPreferences = "preferences"
	keyStats       = "stats"
)

// PieceChoice is the mark the human prefers to play.
type PieceChoice int

const (
	ChoiceRandom PieceChoice = iota
	ChoiceCross
	ChoiceCircle
)

// String returns the choice name.
func (c PieceChoice) String() string {
	switch c {
	case ChoiceCross:
		return "cross"
	case ChoiceCircle:
		return "circle"
	default:
		return "random"
	}
}

// ParsePieceChoice accepts "x", "o", "cross", "circle" or "random".
func ParsePieceChoice(s string) (PieceChoice, error) {
	switch s {
	case "x", "X", "cross":
		return ChoiceCross, nil
	case "o", "O", "circle":
		return ChoiceCircle, nil
	case "", "random":
		return ChoiceRandom, nil
	}
	return ChoiceRandom, errors.Errorf("invalid piece choice %q", s)
}

// Piece returns the chosen mark, or Blank for ChoiceRandom.
func (c PieceChoice) Piece() board.Piece {
	switch c {
	case ChoiceCross:
		return board.Cross
	case ChoiceCircle:
		return board.Circle
	default:
		return board.Blank
	}
}

// UserPreferences stores user settings
type UserPreferences struct {
	Username   string      `json:"username"`
	HumanPiece PieceChoice `json:"human_piece"`
	RandomTies bool        `json:"random_ties"`
	Threads    int         `json:"threads"`
	Sound      bool        `json:"sound"`
	LastPlayed time.Time   `json:"last_played"`
}

// DefaultPreferences returns default user preferences
func DefaultPreferences() *UserPreferences {
	return &UserPreferences{
		Username:   "Player",
		HumanPiece: ChoiceRandom,
		RandomTies: true,
		Threads:    1,
		Sound:      true,
		LastPlayed: time.Now(),
	}
}

// GameStats stores game statistics
type GameStats struct {
	GamesPlayed      int            `json:"games_played"`
	Wins             int            `json:"wins"`
	Losses           int            `json:"losses"`
	Ties             int            `json:"ties"`
	WinsByPiece      map[string]int `json:"wins_by_piece"`
	TotalPlayTime    time.Duration  `json:"total_play_time"`
	LongestTieStreak int            `json:"longest_tie_streak"`
	CurrentStreak    int            `json:"current_streak"`
}

// NewGameStats returns empty game statistics
func NewGameStats() *GameStats {
	return &GameStats{
		WinsByPiece: make(map[string]int),
	}
}

// GameResult represents the result of a completed game from the human's side.
type GameResult struct {
	Won      bool
	Tie      bool
	Piece    board.Piece
	Duration time.Duration
}

// Storage wraps BadgerDB for persistent storage
type Storage struct {
	db *badger.DB
}

// NewStorage opens the database in the platform data directory.
func NewStorage() (*Storage, error) {
	dbDir, err := GetDatabaseDir()
	if err != nil {
		return nil, err
	}
	return Open(dbDir)
}

// Open opens (or creates) a database in dir.
func Open(dir string) (*Storage, error) {
	opts := badger.DefaultOptions(dir)
	opts.Logger = nil // Disable logging

	db, err := badger.Open(opts)
	if err != nil {
		return nil, errors.Wrapf(err, "open database %s", dir)
	}

	log.Debug().Str("component", "storage").Str("dir", dir).Msg("database opened")
	return &Storage{db: db}, nil
}

// Close closes the database
func (s *Storage) Close() error {
	if s.db != nil {
		return s.db.Close()
	}
	return nil
}

func (s *Storage) put(key string, v any) error {
	data, err := json.Marshal(v)
	if err != nil {
		return errors.Wrapf(err, "encode %s", key)
	}

	return s.db.Update(func(txn *badger.Txn) error {
		return txn.Set([]byte(key), data)
	})
}

// get decodes the value at key into v, leaving v untouched if key is absent.
func (s *Storage) get(key string, v any) error {
	return s.db.View(func(txn *badger.Txn) error {
		item, err := txn.Get([]byte(key))
		if errors.Is(err, badger.ErrKeyNotFound) {
			return nil
		}
		if err != nil {
			return err
		}

		return item.Value(func(val []byte) error {
			return json.Unmarshal(val, v)
		})
	})
}

// SavePreferences saves user preferences
func (s *Storage) SavePreferences(prefs *UserPreferences) error {
	prefs.LastPlayed = time.Now()
	return s.put(keyPreferences, prefs)
}

// LoadPreferences loads user preferences, returns defaults if not found
func (s *Storage) LoadPreferences() (*UserPreferences, error) {
	prefs := DefaultPreferences()
	err := s.get(keyPreferences, prefs)
	return prefs, err
}

// SaveStats saves game statistics
func (s *Storage) SaveStats(stats *GameStats) error {
	return s.put(keyStats, stats)
}

// LoadStats loads game statistics, returns empty stats if not found
func (s *Storage) LoadStats() (*GameStats, error) {
	stats := NewGameStats()
	if err := s.get(keyStats, stats); err != nil {
		return stats, err
	}
	if stats.WinsByPiece == nil {
		stats.WinsByPiece = make(map[string]int)
	}
	return stats, nil
}

// RecordGame records a completed game and updates statistics
func (s *Storage) RecordGame(result GameResult) (*GameStats, error) {
	stats, err := s.LoadStats()
	if err != nil {
		return nil, err
	}

	stats.Record(result)

	if err := s.SaveStats(stats); err != nil {
		return nil, err
	}
	return stats, nil
}

// Record applies one game result to the statistics.
func (s *GameStats) Record(result GameResult) {
	s.GamesPlayed++
	s.TotalPlayTime += result.Duration

	switch {
	case result.Tie:
		s.Ties++
		s.CurrentStreak++
		if s.CurrentStreak > s.LongestTieStreak {
			s.LongestTieStreak = s.CurrentStreak
		}
	case result.Won:
		s.Wins++
		s.CurrentStreak = 0
		s.WinsByPiece[result.Piece.Name()]++
	default:
		s.Losses++
		s.CurrentStreak = 0
	}
}

// GetWinRate returns the win rate as a percentage (0-100)
func (s *GameStats) GetWinRate() float64 {
	if s.GamesPlayed == 0 {
		return 0
	}
	return float64(s.Wins) / float64(s.GamesPlayed) * 100
}
