// TicTacPlay - tic-tac-toe against a perfect opponent, built with Ebitengine
package main

import (
	"flag"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/rs/zerolog/log"

	"github.com/hailam/tictacplay/internal/config"
	"github.com/hailam/tictacplay/internal/ui"
)

var debug = flag.Bool("debug", config.EnvBool("DEBUG", false), "enable debug logging")

func main() {
	flag.Parse()
	config.SetupLogging(*debug)

	game := ui.NewGame()
	defer game.Close()

	ebiten.SetWindowSize(ui.ScreenWidth, ui.ScreenHeight)
	ebiten.SetWindowTitle("TicTacPlay")
	ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)

	if err := ebiten.RunGame(game); err != nil {
		log.Fatal().Err(err).Msg("game exited")
	}
}
