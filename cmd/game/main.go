package main

import (
	"flag"
	"fmt"
	"io/fs"
	"os"

	"github.com/hajimehoshi/ebiten/v2"

	"github.com/younwookim/salmonrun/internal/application/game"
	"github.com/younwookim/salmonrun/internal/application/replay"
	"github.com/younwookim/salmonrun/internal/application/scene/menu"
	"github.com/younwookim/salmonrun/internal/application/scene/playing"
	"github.com/younwookim/salmonrun/internal/application/state"
	"github.com/younwookim/salmonrun/internal/infrastructure/assets"
	"github.com/younwookim/salmonrun/internal/infrastructure/config"
	"github.com/younwookim/salmonrun/internal/infrastructure/log"
	"github.com/younwookim/salmonrun/internal/infrastructure/sound"
)

func main() {
	// Parse command line flags
	configDir := flag.String("config", "", "Directory holding game.yaml (default: embedded config)")
	assetsDir := flag.String("assets", "assets", "Directory holding images and sounds")
	recordFlag := flag.String("record", "", "Record input to file (e.g., -record replay.json, .zst to compress, auto for one file per session)")
	replayFlag := flag.String("replay", "", "Replay a recording headlessly and verify its outcome")
	seed := flag.Int64("seed", 0, "Fix the obstacle RNG seed (0 = random per session)")
	logLevel := flag.String("log-level", "info", "Log level: error, warn, info, debug, trace")
	watch := flag.Bool("watch", false, "Reload game.yaml when it changes (requires -config)")
	flag.Parse()

	level, err := log.ParseLogLevel(*logLevel)
	if err != nil {
		log.Fatal("%v", err)
	}
	log.SetLevel(level)

	loader, err := configLoader(*configDir)
	if err != nil {
		log.Fatal("Failed to get config subfs: %v", err)
	}
	cfg, err := loader.LoadGame()
	if err != nil {
		log.Fatal("Failed to load config: %v", err)
	}

	if *replayFlag != "" {
		os.Exit(verifyReplay(cfg, *replayFlag))
	}

	store := config.NewStore(cfg)
	if *watch {
		if *configDir == "" {
			log.Fatal("-watch needs -config")
		}
		watcher, err := config.NewWatcher(loader, store)
		if err != nil {
			log.Fatal("Failed to watch %s: %v", *configDir, err)
		}
		defer func() { _ = watcher.Close() }()
	}

	files := assets.NewLoader(*assetsDir)
	images := files.LoadImages(cfg)
	face := assets.Face()
	mixer := sound.NewMixer(sound.Context(), files.FS(), map[sound.Cue][]string{
		sound.CueMove: cfg.Assets.MoveSound,
		sound.CueFail: cfg.Assets.DeadSound,
	})

	g, err := game.New(state.StateTitle, cfg.Display.ScreenWidth, cfg.Display.ScreenHeight,
		menu.NewTitle(cfg, images.Title, face),
		playing.New(playing.Options{
			Store:      store,
			Images:     images,
			Face:       face,
			Cues:       mixer,
			Seed:       *seed,
			RecordPath: *recordFlag,
		}),
		menu.NewGameOver(cfg, images.GameOver, face),
		menu.NewClear(cfg, images.Clear, face),
	)
	if err != nil {
		log.Fatal("Failed to create game: %v", err)
	}
	g.SetTPS(cfg.Display.Framerate)

	// Set up ebiten
	ebiten.SetWindowSize(
		int(float64(cfg.Display.ScreenWidth)*cfg.Display.WindowScale),
		int(float64(cfg.Display.ScreenHeight)*cfg.Display.WindowScale),
	)
	ebiten.SetWindowTitle(cfg.Display.Title)
	ebiten.SetTPS(cfg.Display.Framerate)

	// Run game
	if err := ebiten.RunGame(g); err != nil {
		log.Fatal("%v", err)
	}
}

// configLoader reads from dir, or from the embedded configs when dir is empty
func configLoader(dir string) (*config.Loader, error) {
	if dir != "" {
		return config.NewLoader(dir), nil
	}
	fsys, err := fs.Sub(configFS, "configs")
	if err != nil {
		return nil, err
	}
	return config.NewFSLoader(fsys, "configs"), nil
}

// verifyReplay plays a recording without a window and returns the exit code
func verifyReplay(cfg *config.GameConfig, path string) int {
	data, err := replay.LoadReplay(path)
	if err != nil {
		log.Error("Failed to load replay: %v", err)
		return 1
	}

	result := RunReplay(cfg, data)
	fmt.Printf("replay %s: %d frames, %s, outcome %s (recorded %s)\n",
		data.ID, result.Frames, result.Elapsed, result.Outcome, orNone(data.Outcome))
	if !result.Matches {
		log.Error("replay diverged: got %s, recorded %s", result.Outcome, data.Outcome)
		return 2
	}
	return 0
}

func orNone(s string) string {
	if s == "" {
		return "none"
	}
	return s
}
