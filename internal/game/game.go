package game

import (
	"github.com/pkg/errors"
	"github.com/rs/zerolog/log"
	"lukechampine.com/frand"

	"github.com/hailam/tictacplay/internal/board"
	"github.com/hailam/tictacplay/internal/engine"
)

var (
	// ErrNoMoves is returned when the computer is asked to move on a full board.
	ErrNoMoves = errors.New("no moves left to make")
	// ErrNotYourTurn is returned when a player moves out of turn.
	ErrNotYourTurn = errors.New("not your turn")
	// ErrGameOver is returned when a move is attempted after the game ended.
	ErrGameOver = errors.New("game already finished")
)

// Game is a match between a human and the computer. Cross always moves first.
type Game struct {
	board   board.Board
	players [2]Player
	engine  *engine.Engine
	history []board.Coord
}

// New creates a game in which the human plays humanPiece.
func New(humanPiece board.Piece, eng *engine.Engine) (*Game, error) {
	human, err := NewPlayer(Human, humanPiece)
	if err != nil {
		return nil, err
	}
	computer, err := NewPlayer(Computer, humanPiece.Opposite())
	if err != nil {
		return nil, err
	}
	if eng == nil {
		eng = engine.NewEngine()
	}
	return &Game{
		board:   board.New(),
		players: [2]Player{human, computer},
		engine:  eng,
	}, nil
}

// NewRandom creates a game with the human's mark chosen at random.
func NewRandom(eng *engine.Engine) *Game {
	piece := board.Cross
	if frand.Intn(2) == 1 {
		piece = board.Circle
	}
	g, _ := New(piece, eng)
	return g
}

// Board returns a copy of the current board.
func (g *Game) Board() board.Board {
	return g.board
}

// History returns the moves played so far.
func (g *Game) History() []board.Coord {
	return append([]board.Coord(nil), g.history...)
}

// Human returns the human player.
func (g *Game) Human() Player {
	return g.players[0]
}

// Computer returns the computer player.
func (g *Game) Computer() Player {
	return g.players[1]
}

// Engine returns the engine used for computer moves.
func (g *Game) Engine() *engine.Engine {
	return g.engine
}

// PlayerByPiece returns the player holding piece.
func (g *Game) PlayerByPiece(piece board.Piece) Player {
	if g.players[0].Piece == piece {
		return g.players[0]
	}
	return g.players[1]
}

// CurrentPlayer returns the player to move.
func (g *Game) CurrentPlayer() Player {
	return g.PlayerByPiece(g.board.SideToMove())
}

// Winner returns the player who completed a line, if any.
func (g *Game) Winner() (Player, bool) {
	piece, ok := g.board.Winner()
	if !ok {
		return Player{}, false
	}
	return g.PlayerByPiece(piece), true
}

// Tied returns true if the board is full with no winner.
func (g *Game) Tied() bool {
	_, won := g.board.Winner()
	return !won && g.board.Full()
}

// Over returns true once someone has won or the board is full.
func (g *Game) Over() bool {
	_, won := g.board.Winner()
	return won || g.board.Full()
}

// PlayHuman places the human's piece at c.
func (g *Game) PlayHuman(c board.Coord) error {
	if g.Over() {
		return ErrGameOver
	}
	if g.CurrentPlayer().Opponent != Human {
		return ErrNotYourTurn
	}
	return g.place(c, g.players[0].Piece)
}

// PlayComputer asks the engine for a move and plays it.
func (g *Game) PlayComputer() (board.Coord, error) {
	if _, won := g.board.Winner(); won {
		return board.NoCoord, ErrGameOver
	}
	player := g.CurrentPlayer()
	if player.Opponent != Computer {
		return board.NoCoord, ErrNotYourTurn
	}

	res, ok := g.engine.BestMove(g.board, player.Piece)
	if !ok {
		return board.NoCoord, ErrNoMoves
	}
	if err := g.place(res.Move, player.Piece); err != nil {
		return board.NoCoord, err
	}

	log.Info().
		Str("component", "game").
		Stringer("move", res.Move).
		Stringer("outcome", res.Outcome).
		Msg("computer moved")
	return res.Move, nil
}

// PlayComputerAt plays a move the caller already obtained from the engine,
// typically on a copy of the board in another goroutine.
func (g *Game) PlayComputerAt(c board.Coord) error {
	if g.Over() {
		return ErrGameOver
	}
	player := g.CurrentPlayer()
	if player.Opponent != Computer {
		return ErrNotYourTurn
	}
	return g.place(c, player.Piece)
}

// Hint returns the engine's move for the side to move.
func (g *Game) Hint() (engine.Result, bool) {
	if g.Over() {
		return engine.NoResult, false
	}
	return g.engine.BestMove(g.board, g.board.SideToMove())
}

// Reset clears the board, keeping players and the engine cache.
func (g *Game) Reset() {
	g.board = board.New()
	g.history = nil
}

// SetHumanPiece swaps sides if needed and resets the board.
func (g *Game) SetHumanPiece(piece board.Piece) error {
	human, err := NewPlayer(Human, piece)
	if err != nil {
		return err
	}
	g.players = [2]Player{human, {Opponent: Computer, Piece: piece.Opposite()}}
	g.Reset()
	return nil
}

func (g *Game) place(c board.Coord, piece board.Piece) error {
	if err := g.board.Place(c, piece); err != nil {
		return err
	}
	g.history = append(g.history, c)
	return nil
}
