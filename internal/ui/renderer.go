package ui

import (
	"image/color"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/vector"

	"github.com/hailam/tictacplay/internal/board"
)

// Theme defines the board colors.
type Theme struct {
	Background color.RGBA
	Cell       color.RGBA
	CellHover  color.RGBA
	GridLine   color.RGBA
	HintColor  color.RGBA
	WinLine    color.RGBA
	LastMove   color.RGBA
}

// DefaultTheme returns the default color theme.
func DefaultTheme() *Theme {
	return &Theme{
		Background: color.RGBA{40, 44, 52, 255},
		Cell:       color.RGBA{246, 241, 230, 255},
		CellHover:  color.RGBA{232, 226, 210, 255},
		GridLine:   color.RGBA{60, 64, 72, 255},
		HintColor:  color.RGBA{130, 190, 120, 110},
		WinLine:    color.RGBA{255, 200, 80, 230},
		LastMove:   color.RGBA{247, 247, 105, 90},
	}
}

const gridLineWidth = 6

// Renderer draws the board and marks.
type Renderer struct {
	sprites   *SpriteManager
	theme     *Theme
	boardSize int
	cellSize  int
	scale     float64
}

// NewRenderer creates a renderer for a square board of boardSize pixels.
func NewRenderer(boardSize int) *Renderer {
	cellSize := boardSize / board.Size
	return &Renderer{
		sprites:   NewSpriteManager(cellSize),
		theme:     DefaultTheme(),
		boardSize: boardSize,
		cellSize:  cellSize,
		scale:     1.0,
	}
}

// SetScale sets the HiDPI scale factor.
func (r *Renderer) SetScale(scale float64) {
	r.scale = scale
	r.sprites.SetScale(scale)
}

func (r *Renderer) s(v int) float32 {
	return float32(float64(v) * r.scale)
}

// DrawBoard draws the cells and grid lines. hover is highlighted unless it is NoCoord.
func (r *Renderer) DrawBoard(screen *ebiten.Image, hover board.Coord) {
	for _, c := range board.Cells {
		x, y := r.CellToScreen(c)
		fill := r.theme.Cell
		if c == hover {
			fill = r.theme.CellHover
		}
		vector.DrawFilledRect(screen, r.s(x), r.s(y), r.s(r.cellSize), r.s(r.cellSize), fill, false)
	}

	for i := 1; i < board.Size; i++ {
		offset := r.s(i*r.cellSize - gridLineWidth/2)
		vector.DrawFilledRect(screen, offset, 0, r.s(gridLineWidth), r.s(r.boardSize), r.theme.GridLine, false)
		vector.DrawFilledRect(screen, 0, offset, r.s(r.boardSize), r.s(gridLineWidth), r.theme.GridLine, false)
	}
}

// HighlightCell draws a colored overlay on c.
func (r *Renderer) HighlightCell(screen *ebiten.Image, c board.Coord, clr color.RGBA) {
	if !c.Valid() {
		return
	}
	x, y := r.CellToScreen(c)
	vector.DrawFilledRect(screen, r.s(x), r.s(y), r.s(r.cellSize), r.s(r.cellSize), clr, false)
}

// DrawPieces draws every mark on b.
func (r *Renderer) DrawPieces(screen *ebiten.Image, b board.Board) {
	for _, c := range board.Cells {
		if p := b.At(c); p != board.Blank {
			r.drawPiece(screen, c, p, 1.0)
		}
	}
}

// DrawHint draws a translucent p on c.
func (r *Renderer) DrawHint(screen *ebiten.Image, c board.Coord, p board.Piece) {
	if !c.Valid() {
		return
	}
	r.HighlightCell(screen, c, r.theme.HintColor)
	r.drawPiece(screen, c, p, 0.35)
}

func (r *Renderer) drawPiece(screen *ebiten.Image, c board.Coord, p board.Piece, alpha float64) {
	x, y := r.CellToScreen(c)
	r.sprites.DrawPieceAt(screen, p, float64(r.s(x)), float64(r.s(y)), r.scale, alpha)
}

// DrawWinningLine strokes through the three cells of line.
func (r *Renderer) DrawWinningLine(screen *ebiten.Image, line [3]board.Coord) {
	half := r.cellSize / 2
	x0, y0 := r.CellToScreen(line[0])
	x1, y1 := r.CellToScreen(line[2])
	vector.StrokeLine(screen,
		r.s(x0+half), r.s(y0+half), r.s(x1+half), r.s(y1+half),
		r.s(10), r.theme.WinLine, true)
}

// CellToScreen returns the logical top-left corner of c.
func (r *Renderer) CellToScreen(c board.Coord) (int, int) {
	return c.Col * r.cellSize, c.Row * r.cellSize
}

// CellAt maps logical screen coordinates to a cell.
func (r *Renderer) CellAt(x, y int) (board.Coord, bool) {
	if x < 0 || x >= r.boardSize || y < 0 || y >= r.boardSize {
		return board.NoCoord, false
	}
	c := board.Coord{Row: y / r.cellSize, Col: x / r.cellSize}
	return c, c.Valid()
}

// Theme returns the current theme.
func (r *Renderer) Theme() *Theme {
	return r.theme
}
