package main

import (
	"flag"
	"log"
	"os"

	"github.com/hajimehoshi/ebiten/v2"

	"peakcast/internal/config"
	"peakcast/internal/game"
	"peakcast/internal/texture"
	"peakcast/internal/world"
)

func main() {
	configPath := flag.String("config", "config.yaml", "configuration file")
	mapPath := flag.String("map", "", "map file (defaults to world.map_file)")
	flag.Parse()

	// Load configuration
	cfg := config.MustLoadConfig(*configPath)

	if *mapPath == "" {
		*mapPath = cfg.World.MapFile
	}
	m := world.NewMapLoader(cfg.Graphics.Texture).LoadMapOrDefault(*mapPath)

	textures := texture.NewLoader(os.DirFS(cfg.Graphics.TextureDir), cfg.Graphics.MaxTextureSize, m)

	// Set window properties from config
	ebiten.SetWindowSize(cfg.GetScreenWidth(), cfg.GetScreenHeight())
	ebiten.SetWindowTitle(cfg.Display.WindowTitle)
	if cfg.Display.Resizable {
		ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)
	}

	g, err := game.NewGame(cfg, m, textures)
	if err != nil {
		log.Fatal(err)
	}
	if err := ebiten.RunGame(g); err != nil {
		log.Fatal(err)
	}
}
