package main

import (
	"flag"
	"log"

	"github.com/hajimehoshi/ebiten/v2"
)

func main() {
	debug := flag.Bool("debug", false, "draw splash rays and trigger state")
	seed := flag.Uint64("seed", 0, "random seed for splash variation (0 picks one from the clock)")
	levelName := flag.String("level", "pool.yaml", "level prefab to load")
	script := flag.String("script", "", "override the motion script of every scripted entity")
	watch := flag.Bool("watch", true, "reload prefabs and scripts when they change on disk")
	flag.Parse()

	ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)
	ebiten.SetWindowSize(baseWidth, baseHeight)
	ebiten.SetWindowTitle("splashfx")

	game, err := NewGame(Options{
		Level:  *levelName,
		Debug:  *debug,
		Seed:   *seed,
		Script: *script,
		Watch:  *watch,
	})
	if err != nil {
		log.Fatal(err)
	}
	defer game.Close()

	if err := ebiten.RunGame(game); err != nil {
		log.Fatal(err)
	}
}
