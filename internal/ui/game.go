package ui

import (
	"fmt"
	"time"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/pkg/errors"
	"github.com/rs/zerolog/log"

	"github.com/hailam/tictacplay/internal/board"
	"github.com/hailam/tictacplay/internal/engine"
	"github.com/hailam/tictacplay/internal/game"
	"github.com/hailam/tictacplay/internal/storage"
)

// UI Constants
const (
	ScreenWidth  = 760
	ScreenHeight = 480
	BoardSize    = 480
	PanelWidth   = ScreenWidth - BoardSize
)

// UIScale is the HiDPI scale factor, set by Game.Layout.
var UIScale = 1.0

// aiResult is delivered by the search goroutine. gen ties it to the game
// that requested it so moves for an abandoned game are dropped.
type aiResult struct {
	gen  int
	move board.Coord
	ok   bool
	info engine.SearchInfo
}

// Game implements ebiten.Game.
type Game struct {
	match *game.Game

	// Storage
	storage *storage.Storage
	prefs   *storage.UserPreferences
	stats   *storage.GameStats

	// Components
	renderer *Renderer
	input    *InputHandler
	panel    *Panel
	toasts   *ToastManager
	audio    *AudioManager

	// AI Engine
	engine     *engine.Engine
	aiThinking bool
	aiMove     chan aiResult
	gen        int
	lastInfo   engine.SearchInfo

	// UI state
	hover    board.Coord
	hint     board.Coord
	lastMove board.Coord
	started  time.Time

	// Game state
	gameOver   bool
	gameResult string

	scale float64
}

// NewGame creates the window state, opening storage when available.
func NewGame() *Game {
	g := &Game{
		renderer: NewRenderer(BoardSize),
		input:    NewInputHandler(),
		toasts:   NewToastManager(),
		aiMove:   make(chan aiResult, 1),
		hover:    board.NoCoord,
		hint:     board.NoCoord,
		lastMove: board.NoCoord,
		scale:    1.0,
	}

	var err error
	g.storage, err = storage.NewStorage()
	if err != nil {
		log.Warn().Str("component", "ui").Err(err).Msg("failed to initialize storage")
	}
	g.loadPreferences()
	g.audio = NewAudioManager(g.prefs.Sound)

	g.engine = engine.NewEngine()
	g.engine.SetThreads(g.prefs.Threads)
	if g.prefs.RandomTies {
		g.engine.SetTieBreaker(engine.NewRandomTieBreaker())
	}

	if piece := g.prefs.HumanPiece.Piece(); piece != board.Blank {
		g.match, _ = game.New(piece, g.engine)
	} else {
		g.match = game.NewRandom(g.engine)
	}
	g.panel = NewPanel(g)
	g.startGame()
	return g
}

func (g *Game) loadPreferences() {
	g.prefs = storage.DefaultPreferences()
	g.stats = storage.NewGameStats()
	if g.storage == nil {
		return
	}

	if prefs, err := g.storage.LoadPreferences(); err != nil {
		log.Warn().Str("component", "ui").Err(err).Msg("failed to load preferences")
	} else {
		g.prefs = prefs
	}
	if stats, err := g.storage.LoadStats(); err != nil {
		log.Warn().Str("component", "ui").Err(err).Msg("failed to load statistics")
	} else {
		g.stats = stats
	}
}

func (g *Game) savePreferences() {
	if g.storage == nil {
		return
	}
	g.prefs.LastPlayed = time.Now()
	if err := g.storage.SavePreferences(g.prefs); err != nil {
		log.Warn().Str("component", "ui").Err(err).Msg("failed to save preferences")
	}
}

// Update advances one frame.
func (g *Game) Update() error {
	g.input.Update()
	g.toasts.Update()

	switch {
	case IsKeyJustPressed(ebiten.KeyN):
		g.NewGameAction(g.match.Human().Piece)
	case IsKeyJustPressed(ebiten.KeyX):
		g.NewGameAction(board.Cross)
	case IsKeyJustPressed(ebiten.KeyO):
		g.NewGameAction(board.Circle)
	case IsKeyJustPressed(ebiten.KeyH):
		g.HintAction()
	case IsKeyJustPressed(ebiten.KeyM):
		g.ToggleSoundAction()
	}

	if !g.panel.HandleInput(g.input) {
		g.handleBoardInput()
	}
	g.checkAIMove()
	g.updateCursor()
	return nil
}

func (g *Game) updateCursor() {
	if g.panel.AnyButtonHovered() || g.hover.Valid() {
		ebiten.SetCursorShape(ebiten.CursorShapePointer)
	} else {
		ebiten.SetCursorShape(ebiten.CursorShapeDefault)
	}
}

// Draw renders the game.
func (g *Game) Draw(screen *ebiten.Image) {
	g.renderer.SetScale(g.scale)
	g.panel.SetScale(g.scale)

	screen.Fill(g.renderer.Theme().Background)

	b := g.match.Board()
	g.renderer.DrawBoard(screen, g.hover)
	g.renderer.HighlightCell(screen, g.lastMove, g.renderer.Theme().LastMove)
	if g.hint.Valid() && b.IsEmpty(g.hint) {
		g.renderer.DrawHint(screen, g.hint, g.match.Human().Piece)
	}
	g.renderer.DrawPieces(screen, b)
	if line, ok := b.WinningLine(); ok {
		g.renderer.DrawWinningLine(screen, line)
	}

	g.panel.Draw(screen)
	g.toasts.Draw(screen, g.scale)
}

// Layout returns the screen size in device pixels.
func (g *Game) Layout(outsideWidth, outsideHeight int) (int, int) {
	g.scale = ebiten.Monitor().DeviceScaleFactor()
	if g.scale < 1.0 {
		g.scale = 1.0
	}
	UIScale = g.scale
	return int(float64(ScreenWidth) * g.scale), int(float64(ScreenHeight) * g.scale)
}

func (g *Game) humanToMove() bool {
	return !g.gameOver && !g.aiThinking && g.match.CurrentPlayer().Opponent == game.Human
}

func (g *Game) handleBoardInput() {
	g.hover = board.NoCoord
	if !g.humanToMove() {
		return
	}

	mx, my := g.input.MousePosition()
	c, ok := g.renderer.CellAt(mx, my)
	if !ok {
		return
	}
	b := g.match.Board()
	if b.IsEmpty(c) {
		g.hover = c
	}
	if !g.input.IsLeftJustPressed() {
		return
	}

	if err := g.match.PlayHuman(c); err != nil {
		if errors.Is(err, board.ErrCellOccupied) {
			g.audio.Play(SoundInvalid)
			g.toasts.Show("There's already a piece there", ToastWarning, 1500*time.Millisecond)
			return
		}
		log.Warn().Str("component", "ui").Err(err).Msg("rejected move")
		return
	}
	g.audio.Play(SoundPlace)
	g.afterMove(c)
}

func (g *Game) afterMove(c board.Coord) {
	g.lastMove = c
	g.hint = board.NoCoord
	g.hover = board.NoCoord
	g.checkGameEnd()
	if !g.gameOver && g.match.CurrentPlayer().Opponent == game.Computer {
		g.startAIThinking()
	}
}

// startAIThinking searches a copy of the board in a goroutine.
func (g *Game) startAIThinking() {
	if g.match.CurrentPlayer().Opponent != game.Computer {
		log.Error().Str("component", "ui").Msg("startAIThinking called on the human's turn")
		return
	}

	g.aiThinking = true
	b := g.match.Board()
	piece := g.match.Computer().Piece
	gen := g.gen
	eng := g.engine

	go func() {
		res, ok := eng.BestMove(b, piece)
		g.aiMove <- aiResult{gen: gen, move: res.Move, ok: ok, info: eng.LastSearch()}
	}()
}

// checkAIMove applies the computer's move once the search delivers it.
func (g *Game) checkAIMove() {
	if !g.aiThinking {
		return
	}

	select {
	case res := <-g.aiMove:
		if res.gen != g.gen {
			return
		}
		g.aiThinking = false
		g.lastInfo = res.info
		if !res.ok {
			g.checkGameEnd()
			return
		}
		if err := g.match.PlayComputerAt(res.move); err != nil {
			log.Error().Str("component", "ui").Err(err).Stringer("move", res.move).Msg("computer move rejected")
			return
		}
		g.audio.Play(SoundReply)
		log.Debug().Str("component", "ui").Stringer("move", res.move).Stringer("outcome", res.info.Outcome).Msg("computer moved")
		g.afterMove(res.move)
	default:
	}
}

func (g *Game) checkGameEnd() {
	if g.gameOver || !g.match.Over() {
		return
	}
	g.gameOver = true

	result := storage.GameResult{
		Piece:    g.match.Human().Piece,
		Duration: time.Since(g.started),
	}
	if winner, ok := g.match.Winner(); ok {
		result.Won = winner.Opponent == game.Human
		if result.Won {
			g.gameResult = "You won!"
			g.audio.Play(SoundWin)
			g.toasts.Show(g.gameResult, ToastSuccess, 3*time.Second)
		} else {
			g.gameResult = "Computer won!"
			g.audio.Play(SoundLoss)
			g.toasts.Show(g.gameResult, ToastWarning, 3*time.Second)
		}
	} else {
		result.Tie = true
		g.gameResult = "The game ended in a tie!"
		g.audio.Play(SoundTie)
		g.toasts.Show(g.gameResult, ToastInfo, 3*time.Second)
	}
	g.recordGame(result)
}

func (g *Game) recordGame(result storage.GameResult) {
	if g.storage == nil {
		g.stats.Record(result)
		return
	}
	stats, err := g.storage.RecordGame(result)
	if err != nil {
		log.Warn().Str("component", "ui").Err(err).Msg("failed to record game")
		g.stats.Record(result)
		return
	}
	g.stats = stats
}

func (g *Game) startGame() {
	g.gen++
	g.aiThinking = false
	g.gameOver = false
	g.gameResult = ""
	g.hint = board.NoCoord
	g.hover = board.NoCoord
	g.lastMove = board.NoCoord
	g.started = time.Now()
	g.toasts.Clear()

	select {
	case <-g.aiMove:
	default:
	}

	if g.match.CurrentPlayer().Opponent == game.Computer {
		g.startAIThinking()
	}
}

// NewGameAction starts a new game with the human playing piece.
func (g *Game) NewGameAction(piece board.Piece) {
	if err := g.match.SetHumanPiece(piece); err != nil {
		log.Error().Str("component", "ui").Err(err).Msg("invalid piece")
		return
	}
	switch piece {
	case board.Cross:
		g.prefs.HumanPiece = storage.ChoiceCross
	case board.Circle:
		g.prefs.HumanPiece = storage.ChoiceCircle
	}
	g.savePreferences()
	g.startGame()
}

// HintAction shows the engine's suggestion for the human.
func (g *Game) HintAction() {
	if !g.humanToMove() {
		return
	}
	res, ok := g.match.Hint()
	if !ok {
		return
	}
	g.hint = res.Move
	g.lastInfo = g.engine.LastSearch()
	g.toasts.Show(fmt.Sprintf("Suggested move: %v (%v)", res.Move, res.Outcome), ToastInfo, 2*time.Second)
}

// ToggleSoundAction turns sound effects on or off and remembers the choice.
func (g *Game) ToggleSoundAction() {
	g.prefs.Sound = !g.audio.IsEnabled()
	g.audio.SetEnabled(g.prefs.Sound)
	g.savePreferences()
	if g.prefs.Sound {
		g.toasts.Show("Sound on", ToastInfo, time.Second)
	} else {
		g.toasts.Show("Sound off", ToastInfo, time.Second)
	}
}

// HumanPiece returns the human's mark.
func (g *Game) HumanPiece() board.Piece {
	return g.match.Human().Piece
}

// SideToMove returns the mark to move.
func (g *Game) SideToMove() board.Piece {
	b := g.match.Board()
	return b.SideToMove()
}

// Stats returns the recorded statistics.
func (g *Game) Stats() *storage.GameStats {
	return g.stats
}

// LastSearch returns statistics for the latest engine search.
func (g *Game) LastSearch() engine.SearchInfo {
	return g.lastInfo
}

// GameOver returns true once the current game has finished.
func (g *Game) GameOver() bool {
	return g.gameOver
}

// GameResult describes how the game ended.
func (g *Game) GameResult() string {
	return g.gameResult
}

// IsAIThinking returns true while the computer searches.
func (g *Game) IsAIThinking() bool {
	return g.aiThinking
}

// Close releases storage.
func (g *Game) Close() {
	if g.storage != nil {
		g.storage.Close()
	}
}
