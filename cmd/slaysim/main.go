// slaysim plays an attack scenario through the brand and slay resolver and
// prints what each blow does and what the player learns.
//
// Usage:
//
//	go run ./cmd/slaysim -scenario cmd/slaysim/testdata/scenario.yaml
//	go run ./cmd/slaysim -scenario my.yaml -data ./gamedata -v
package main

import (
	"flag"
	"fmt"
	"log/slog"
	"os"
	"strings"

	"github.com/udisondev/slays/internal/data"
	"github.com/udisondev/slays/internal/model"
)

func main() {
	scenario := flag.String("scenario", "cmd/slaysim/testdata/scenario.yaml", "attack scenario file")
	dataDir := flag.String("data", "", "game data directory (built-in data when empty)")
	verbose := flag.Bool("v", false, "debug logging")
	flag.Parse()

	level := slog.LevelWarn
	if *verbose {
		level = slog.LevelDebug
	}
	slog.SetDefault(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level})))

	if err := run(*scenario, *dataDir); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

func run(scenarioPath, dataDir string) error {
	data.UseDir(dataDir)
	if err := data.LoadAll(); err != nil {
		return fmt.Errorf("loading game data: %w", err)
	}

	sc, err := LoadScenario(scenarioPath)
	if err != nil {
		return err
	}

	p, err := NewPlayer(data.Slays, data.GetRace, data.GetEgoItem)
	if err != nil {
		return err
	}
	if err := p.Play(sc, os.Stdout); err != nil {
		return err
	}

	fmt.Println()
	fmt.Println("monster lore:")
	for _, race := range data.AllRaces() {
		known := p.Lore(race).Flags()
		if known.IsEmpty() {
			continue
		}
		names := make([]string, 0, known.Count())
		for _, f := range known.Flags() {
			names = append(names, model.RaceFlagName(f))
		}
		fmt.Printf("  %-26s %s\n", race.Name, strings.Join(names, " "))
	}
	return nil
}
