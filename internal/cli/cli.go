// Package cli implements the interactive terminal game.
package cli

import (
	"bufio"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/pkg/errors"
	"github.com/rs/zerolog/log"

	"github.com/hailam/tictacplay/internal/board"
	"github.com/hailam/tictacplay/internal/game"
	"github.com/hailam/tictacplay/internal/storage"
)

// ErrQuit is returned when the player leaves before the game ends.
var ErrQuit = errors.New("player quit")

const prompt = "Please enter two numbers between 0 and 2, separated by a space:"

// Session plays one game over a line-oriented terminal.
type Session struct {
	game    *game.Game
	scanner *bufio.Scanner
	out     io.Writer
}

// New creates a session reading moves from in and writing to out.
func New(g *game.Game, in io.Reader, out io.Writer) *Session {
	return &Session{
		game:    g,
		scanner: bufio.NewScanner(in),
		out:     out,
	}
}

// Run plays until the game ends and returns the result from the human's side.
func (s *Session) Run() (storage.GameResult, error) {
	start := time.Now()
	human := s.game.Human()

	fmt.Fprintf(s.out, "You are playing %v. Type \"hint\" for a suggestion or \"quit\" to leave.\n", human.Piece)

	for !s.game.Over() {
		b := s.game.Board()
		fmt.Fprintf(s.out, "State of the board: \n%s\n\n", b.String())

		if s.game.CurrentPlayer().Opponent == game.Computer {
			fmt.Fprintln(s.out, "Computer calculating move...")
			if _, err := s.game.PlayComputer(); err != nil {
				return storage.GameResult{}, err
			}
			continue
		}

		if err := s.humanMove(); err != nil {
			return storage.GameResult{}, err
		}
	}

	b := s.game.Board()
	result := storage.GameResult{Piece: human.Piece, Duration: time.Since(start)}
	if winner, ok := s.game.Winner(); ok {
		fmt.Fprintf(s.out, "%v won!\n%s\n", winner, b.String())
		result.Won = winner.Opponent == game.Human
	} else {
		fmt.Fprintf(s.out, "The game ended in a tie!\n%s\n", b.String())
		result.Tie = true
	}

	log.Info().
		Str("component", "cli").
		Bool("won", result.Won).
		Bool("tie", result.Tie).
		Dur("duration", result.Duration).
		Msg("game finished")
	return result, nil
}

// humanMove prompts until a legal move is played.
func (s *Session) humanMove() error {
	for {
		fmt.Fprintln(s.out, prompt)

		if !s.scanner.Scan() {
			if err := s.scanner.Err(); err != nil {
				return errors.Wrap(err, "read move")
			}
			return io.ErrUnexpectedEOF
		}
		line := strings.TrimSpace(s.scanner.Text())

		switch strings.ToLower(line) {
		case "quit", "exit":
			return ErrQuit
		case "hint":
			if hint, ok := s.game.Hint(); ok {
				fmt.Fprintf(s.out, "Suggested move: %v (%v)\n", hint.Move, hint.Outcome)
			}
			continue
		}

		c, err := board.ParseCoord(line)
		if err != nil {
			fmt.Fprintln(s.out, "Input is invalid")
			continue
		}

		err = s.game.PlayHuman(c)
		switch {
		case err == nil:
			return nil
		case errors.Is(err, board.ErrCellOccupied):
			fmt.Fprintln(s.out, "There's already a piece...")
		case errors.Is(err, board.ErrOutOfBounds):
			fmt.Fprintln(s.out, err)
		default:
			return err
		}
	}
}
