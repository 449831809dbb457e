package ui

import (
	"fmt"
	"image/color"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/text/v2"
	"github.com/hajimehoshi/ebiten/v2/vector"

	"github.com/hailam/tictacplay/internal/board"
)

// Panel dimensions
const (
	PanelPadding = 20
	ButtonHeight = 40
	ButtonGap    = 12
)

// Panel colors
var (
	panelBg         = color.RGBA{38, 40, 45, 255}
	buttonBg        = color.RGBA{50, 54, 60, 255}
	buttonHoverBg   = color.RGBA{65, 70, 78, 255}
	buttonPressedBg = color.RGBA{40, 44, 50, 255}
	buttonBorder    = color.RGBA{70, 75, 82, 255}
	accentColor     = color.RGBA{76, 175, 120, 255}
	accentHover     = color.RGBA{96, 195, 140, 255}
	accentPressed   = color.RGBA{56, 155, 100, 255}
	textPrimary     = color.RGBA{240, 240, 245, 255}
	textSecondary   = color.RGBA{160, 165, 175, 255}
	dividerColor    = color.RGBA{60, 65, 72, 255}
	statusThinking  = color.RGBA{100, 180, 255, 255}
	statusGameOver  = color.RGBA{255, 200, 80, 255}
)

// Button is a clickable panel element.
type Button struct {
	X, Y, W, H int
	Label      string
	OnClick    func()
	primary    bool
	hovered    bool
	pressed    bool
}

// Panel is the side panel with controls, status and statistics.
type Panel struct {
	game    *Game
	buttons []*Button
	scale   float64
}

// NewPanel creates the panel for g.
func NewPanel(g *Game) *Panel {
	p := &Panel{game: g, scale: 1.0}

	x := BoardSize + PanelPadding
	w := PanelWidth - PanelPadding*2
	y := PanelPadding + 40
	add := func(label string, primary bool, onClick func()) {
		p.buttons = append(p.buttons, &Button{X: x, Y: y, W: w, H: ButtonHeight, Label: label, OnClick: onClick, primary: primary})
		y += ButtonHeight + ButtonGap
	}
	add("New game as X", true, func() { g.NewGameAction(board.Cross) })
	add("New game as O", false, func() { g.NewGameAction(board.Circle) })
	add("Hint", false, g.HintAction)
	return p
}

// SetScale sets the HiDPI scale factor.
func (p *Panel) SetScale(scale float64) {
	p.scale = scale
}

// HandleInput updates hover state and fires clicks. It returns true when a
// button consumed the click.
func (p *Panel) HandleInput(input *InputHandler) bool {
	handled := false
	for _, btn := range p.buttons {
		btn.hovered = input.IsInBounds(btn.X, btn.Y, btn.W, btn.H)
		btn.pressed = btn.hovered && input.IsLeftPressed()
		if btn.hovered && input.IsLeftJustPressed() {
			btn.OnClick()
			handled = true
		}
	}
	return handled
}

// AnyButtonHovered returns true if the mouse is over a button.
func (p *Panel) AnyButtonHovered() bool {
	for _, btn := range p.buttons {
		if btn.hovered {
			return true
		}
	}
	return false
}

// Draw renders the panel.
func (p *Panel) Draw(screen *ebiten.Image) {
	vector.DrawFilledRect(screen, p.sf(BoardSize), 0, p.sf(PanelWidth), p.sf(ScreenHeight), panelBg, false)

	x := BoardSize + PanelPadding
	p.drawTitle(screen, "Tic-Tac-Toe", x, PanelPadding)

	for _, btn := range p.buttons {
		p.drawButton(screen, btn)
	}

	y := p.buttons[len(p.buttons)-1].Y + ButtonHeight + 24
	vector.DrawFilledRect(screen, p.sf(x), p.sf(y), p.sf(PanelWidth-PanelPadding*2), p.sf(1), dividerColor, false)
	y += 14

	p.drawText(screen, fmt.Sprintf("You play %v", p.game.HumanPiece()), x, y, textPrimary)
	y += 24

	if stats := p.game.Stats(); stats != nil {
		p.drawText(screen, fmt.Sprintf("Games %d   Wins %d", stats.GamesPlayed, stats.Wins), x, y, textSecondary)
		y += 20
		p.drawText(screen, fmt.Sprintf("Ties %d   Losses %d", stats.Ties, stats.Losses), x, y, textSecondary)
		y += 20
	}

	if info := p.game.LastSearch(); info.Nodes > 0 {
		y += 8
		p.drawText(screen, fmt.Sprintf("Nodes %d  Cache %d", info.Nodes, info.CacheSize), x, y, textSecondary)
		y += 20
		p.drawText(screen, fmt.Sprintf("Hit rate %.0f%%", info.HitRate), x, y, textSecondary)
	}

	p.drawText(screen, "N new  H hint  M sound", x, ScreenHeight-84, textSecondary)
	p.drawStatusBar(screen)
}

func (p *Panel) drawStatusBar(screen *ebiten.Image) {
	statusY := ScreenHeight - 50
	x := BoardSize + PanelPadding

	vector.DrawFilledRect(screen, p.sf(x), p.sf(statusY-10), p.sf(PanelWidth-PanelPadding*2), p.sf(1), dividerColor, false)

	var statusText string
	statusColor := textPrimary
	switch {
	case p.game.GameOver():
		statusText = p.game.GameResult()
		statusColor = statusGameOver
	case p.game.IsAIThinking():
		statusText = "Computer thinking..."
		statusColor = statusThinking
	default:
		statusText = fmt.Sprintf("%v to move", p.game.SideToMove())
	}
	p.drawText(screen, statusText, x, statusY, statusColor)
}

func (p *Panel) drawButton(screen *ebiten.Image, btn *Button) {
	bg, border, label := buttonBg, buttonBorder, textSecondary
	if btn.primary {
		bg, border, label = accentColor, accentPressed, textPrimary
	}
	switch {
	case btn.pressed && btn.primary:
		bg = accentPressed
	case btn.pressed:
		bg = buttonPressedBg
	case btn.hovered && btn.primary:
		bg = accentHover
	case btn.hovered:
		bg, border = buttonHoverBg, accentColor
	}

	vector.DrawFilledRect(screen, p.sf(btn.X), p.sf(btn.Y), p.sf(btn.W), p.sf(btn.H), bg, false)
	vector.StrokeRect(screen, p.sf(btn.X), p.sf(btn.Y), p.sf(btn.W), p.sf(btn.H), 1, border, false)
	p.drawTextCentered(screen, btn.Label, btn.X+btn.W/2, btn.Y+btn.H/2, label)
}

func (p *Panel) sf(v int) float32 {
	return float32(float64(v) * p.scale)
}

func (p *Panel) scaledFace(face *text.GoTextFace) *text.GoTextFace {
	if face == nil {
		return nil
	}
	return &text.GoTextFace{Source: face.Source, Size: face.Size * p.scale}
}

func (p *Panel) drawTitle(screen *ebiten.Image, s string, x, y int) {
	p.draw(screen, s, p.scaledFace(GetBoldFace()), float64(p.sf(x)), float64(p.sf(y)), textPrimary)
}

func (p *Panel) drawText(screen *ebiten.Image, s string, x, y int, c color.Color) {
	p.draw(screen, s, p.scaledFace(GetRegularFace()), float64(p.sf(x)), float64(p.sf(y)), c)
}

func (p *Panel) drawTextCentered(screen *ebiten.Image, s string, centerX, centerY int, c color.Color) {
	face := p.scaledFace(GetRegularFace())
	w, h := MeasureText(s, face)
	p.draw(screen, s, face, float64(p.sf(centerX))-w/2, float64(p.sf(centerY))-h/2, c)
}

func (p *Panel) draw(screen *ebiten.Image, s string, face *text.GoTextFace, x, y float64, c color.Color) {
	if face == nil {
		return
	}
	op := &text.DrawOptions{}
	op.GeoM.Translate(x, y)
	op.ColorScale.ScaleWithColor(c)
	text.Draw(screen, s, face, op)
}
