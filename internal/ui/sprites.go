package ui

import (
	"bytes"
	"embed"
	"image"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/rs/zerolog/log"
	"github.com/srwiley/oksvg"
	"github.com/srwiley/rasterx"

	"github.com/hailam/tictacplay/internal/board"
)

//go:embed assets/pieces/*.svg
var pieceAssets embed.FS

var pieceFiles = map[board.Piece]string{
	board.Cross:  "assets/pieces/x.svg",
	board.Circle: "assets/pieces/o.svg",
}

// SpriteManager holds the rasterized X and O marks.
type SpriteManager struct {
	pieces      map[board.Piece]*ebiten.Image
	size        int
	renderScale float64
}

// NewSpriteManager rasterizes the marks for cells of the given size.
func NewSpriteManager(size int) *SpriteManager {
	sm := &SpriteManager{
		pieces:      make(map[board.Piece]*ebiten.Image),
		size:        size,
		renderScale: 2.0,
	}
	sm.loadPieces()
	return sm
}

// SetScale re-rasterizes the marks when the device scale changes.
func (sm *SpriteManager) SetScale(scale float64) {
	if scale*2 == sm.renderScale {
		return
	}
	sm.renderScale = scale * 2
	sm.loadPieces()
}

func (sm *SpriteManager) loadPieces() {
	renderSize := int(float64(sm.size) * sm.renderScale)

	for piece, path := range pieceFiles {
		data, err := pieceAssets.ReadFile(path)
		if err != nil {
			log.Error().Str("component", "ui").Str("path", path).Err(err).Msg("failed to read sprite")
			continue
		}
		icon, err := oksvg.ReadIconStream(bytes.NewReader(data))
		if err != nil {
			log.Error().Str("component", "ui").Str("path", path).Err(err).Msg("failed to parse sprite")
			continue
		}
		icon.SetTarget(0, 0, float64(renderSize), float64(renderSize))

		rgba := image.NewRGBA(image.Rect(0, 0, renderSize, renderSize))
		scanner := rasterx.NewScannerGV(renderSize, renderSize, rgba, rgba.Bounds())
		raster := rasterx.NewDasher(renderSize, renderSize, scanner)
		icon.Draw(raster, 1.0)

		sm.pieces[piece] = ebiten.NewImageFromImage(rgba)
	}
}

// DrawPieceAt draws p with its top-left corner at (x, y) in screen pixels.
// alpha below 1 draws a translucent preview.
func (sm *SpriteManager) DrawPieceAt(screen *ebiten.Image, p board.Piece, x, y float64, scale, alpha float64) {
	sprite := sm.pieces[p]
	if sprite == nil {
		return
	}
	op := &ebiten.DrawImageOptions{}
	s := scale / sm.renderScale
	op.GeoM.Scale(s, s)
	op.GeoM.Translate(x, y)
	op.ColorScale.ScaleAlpha(float32(alpha))
	op.Filter = ebiten.FilterLinear
	screen.DrawImage(sprite, op)
}
