// Command play runs a stage in the terminal. The playfield is rasterized
// to colored cells, movement keys are held via a configurable hold window
// (terminals report no key releases), and finished runs are recorded in the
// hiscore database.
package main

import (
	"context"
	"flag"
	"fmt"
	"os"

	tea "github.com/charmbracelet/bubbletea"
	"golang.org/x/term"

	"github.com/barragelab/barrage/config"
	"github.com/barragelab/barrage/game"
	"github.com/barragelab/barrage/pattern"
	"github.com/barragelab/barrage/score"
	"github.com/barragelab/barrage/stage"
)

func main() {
	var (
		stagePath = flag.String("stage", "", "Stage YAML file (default: embedded opening stage)")
		dbPath    = flag.String("db", "", "Hiscore database path (default: $BARRAGE_SCORE_DB)")
	)
	flag.Parse()

	cfg, err := config.Parse()
	if err != nil {
		config.Exitf("config: %v", err)
	}
	if *stagePath != "" {
		cfg.StagePath = *stagePath
	}
	if *dbPath != "" {
		cfg.ScoreDB = *dbPath
	}

	if !term.IsTerminal(int(os.Stdout.Fd())) {
		config.Exitf("play needs an interactive terminal")
	}

	if err := run(cfg); err != nil {
		config.Exitf("Error: %v", err)
	}
}

func run(cfg config.Config) error {
	ctx := context.Background()

	st, err := loadStage(cfg.StagePath)
	if err != nil {
		return err
	}

	patterns, err := loadPatterns(ctx, st)
	if err != nil {
		return err
	}
	if patterns != nil {
		defer patterns.Close(ctx)
	}

	g := game.New(st, patterns)
	if err := g.Initialize(ctx); err != nil {
		return err
	}

	store, err := score.Open(cfg.ScoreDB)
	if err != nil {
		return err
	}
	defer store.Close()

	p := tea.NewProgram(newPlayModel(cfg, st, g, store), tea.WithAltScreen())
	_, err = p.Run()
	return err
}

func loadStage(path string) (*stage.Stage, error) {
	if path == "" {
		return stage.Default()
	}
	return stage.LoadFile(path)
}

// loadPatterns compiles every WASM pattern the stage references. The
// pattern field doubles as the file path, so registry names match what the
// level looks up. Returns nil when the stage uses no patterns.
func loadPatterns(ctx context.Context, st *stage.Stage) (*pattern.Registry, error) {
	var reg *pattern.Registry
	for _, e := range st.Enemies {
		if e.Pattern == "" {
			continue
		}
		if reg == nil {
			reg = pattern.NewRegistry(ctx)
		}
		data, err := os.ReadFile(e.Pattern)
		if err != nil {
			_ = reg.Close(ctx)
			return nil, fmt.Errorf("read pattern %s: %w", e.Pattern, err)
		}
		if _, err := reg.Load(ctx, e.Pattern, data); err != nil {
			_ = reg.Close(ctx)
			return nil, err
		}
	}
	return reg, nil
}
