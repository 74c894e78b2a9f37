package main

import (
	"context"
	"flag"
	"log"
	"math/rand/v2"
	"os"
	"os/signal"
	"path/filepath"

	"github.com/milk9111/tilebrush/autoborder"
	"github.com/milk9111/tilebrush/levels"
	"github.com/milk9111/tilebrush/materials"
	"github.com/milk9111/tilebrush/settings"
)

func main() {
	materialsDir := flag.String("materials", "", "Directory with material YAML files overriding the embedded defaults")
	scenarioName := flag.String("scenario", "demo", "Scenario name from levels/ or a path to a scenario file")
	settingsPath := flag.String("settings", "", "Optional settings YAML file")
	seed := flag.Uint64("seed", 1, "Seed for item variant picks; 0 picks a random seed")
	watch := flag.Bool("watch", false, "Re-run the scenario whenever a material file changes")
	useColor := flag.Bool("color", false, "Colour the map dump with the brushes' colours")
	preview := flag.Bool("preview", false, "Report the preview overlay size before each stroke")
	flag.Parse()

	log.Println("borderlab starting...")

	cfg := settings.Default()
	if *settingsPath != "" {
		var err error
		if cfg, err = settings.Load(*settingsPath); err != nil {
			log.Fatalf("Failed to load settings: %v", err)
		}
	}

	lib, err := materials.NewLibrary(*materialsDir)
	if err != nil {
		log.Fatalf("Failed to load materials: %v", err)
	}

	sc, err := levels.Load(*scenarioName)
	if err != nil {
		log.Fatalf("Failed to load scenario: %v", err)
	}

	r := &runner{
		cfg:     cfg,
		sc:      sc,
		out:     os.Stdout,
		color:   *useColor,
		preview: *preview,
		src:     newSource(*seed),
	}
	if err := r.run(lib.Snapshot()); err != nil {
		log.Fatalf("Scenario %s failed: %v", sc.Name, err)
	}

	if !*watch {
		return
	}
	if *materialsDir == "" {
		log.Fatalf("-watch needs -materials")
	}
	dir, err := filepath.Abs(*materialsDir)
	if err != nil {
		log.Fatalf("Failed to resolve %s: %v", *materialsDir, err)
	}
	w, err := materials.NewWatcher(dir)
	if err != nil {
		log.Fatalf("Failed to watch %s: %v", dir, err)
	}
	defer w.Close()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()
	log.Printf("Watching %s for material changes", dir)
	err = lib.Follow(ctx, w, func(set *materials.Set) {
		r.src = newSource(*seed)
		if err := r.run(set); err != nil {
			log.Printf("Scenario %s failed: %v", sc.Name, err)
		}
	})
	if err != nil && ctx.Err() == nil {
		log.Printf("Watch stopped: %v", err)
	}
}

func newSource(seed uint64) autoborder.Source {
	if seed == 0 {
		seed = rand.Uint64()
	}
	return rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15))
}
