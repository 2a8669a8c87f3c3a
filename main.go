package main

import (
	"flag"
	"log/slog"
	"os"
	"time"

	"github.com/hajimehoshi/ebiten/v2"
	"gonum.org/v1/gonum/spatial/r2"

	"github.com/olivierh59500/coffee-particles/internal/config"
	"github.com/olivierh59500/coffee-particles/internal/game"
	"github.com/olivierh59500/coffee-particles/internal/particle"
	"github.com/olivierh59500/coffee-particles/internal/store"
	"github.com/olivierh59500/coffee-particles/internal/telemetry"
)

func main() {
	configPath := flag.String("config", "", "Path to config.yaml (empty = use defaults)")
	seed := flag.Int64("seed", 0, "RNG seed (0 = time-based)")
	modeName := flag.String("mode", "setting", "Initial mode: setting, show-one..show-four, or a variant name")
	headless := flag.Bool("headless", false, "Run the simulation without a window")
	maxTicks := flag.Int("max-ticks", 600, "Ticks to run in headless mode")
	outputDir := flag.String("output-dir", "", "Directory for population.csv and a config snapshot")
	logJSON := flag.Bool("log-json", false, "Log JSON instead of text")
	noStore := flag.Bool("no-store", false, "Do not load or save the brew between runs")
	flag.Parse()

	var handler slog.Handler = slog.NewTextHandler(os.Stderr, nil)
	if *logJSON {
		handler = slog.NewJSONHandler(os.Stderr, nil)
	}
	logger := slog.New(handler)
	slog.SetDefault(logger)

	cfg, err := config.Load(*configPath)
	if err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}

	mode, err := particle.ParseMode(*modeName)
	if err != nil {
		slog.Error("bad -mode", "error", err)
		os.Exit(1)
	}

	rngSeed := *seed
	if rngSeed == 0 {
		rngSeed = time.Now().UnixNano()
	}

	var brews *store.BrewStore
	if !*noStore && !*headless {
		brews, err = store.Open(cfg.Store.AppName, cfg.Limits, logger)
		if err != nil {
			slog.Warn("brew will not persist", "error", err)
		}
	}

	rec, err := telemetry.NewRecorder(*outputDir, cfg.Telemetry.Every, logger)
	if err != nil {
		slog.Warn("telemetry disabled", "error", err)
		rec = nil
	}
	defer rec.Close()
	if err := rec.WriteConfig(cfg); err != nil {
		slog.Warn("could not write config snapshot", "error", err)
	}

	g := game.New(game.Options{
		Config:   cfg,
		Seed:     rngSeed,
		Mode:     mode,
		Store:    brews,
		Recorder: rec,
		Logger:   logger,
	})

	if *headless {
		slog.Info("starting headless simulation",
			"seed", rngSeed,
			"mode", mode,
			"max_ticks", *maxTicks,
		)
		for i := 0; i < *maxTicks; i++ {
			g.Step(r2.Vec{})
		}
		n := 0
		if ps := g.Controller().Active(); ps != nil {
			n = ps.Len()
		}
		slog.Info("headless simulation finished", "ticks", g.Controller().Ticks(), "particles", n)
		return
	}

	ebiten.SetWindowSize(cfg.Screen.Width, cfg.Screen.Height)
	ebiten.SetWindowTitle(cfg.Screen.Title)
	ebiten.SetTPS(cfg.Screen.TPS)

	slog.Info("starting", "seed", rngSeed, "mode", mode, "persistent_brew", brews != nil && brews.Persistent())
	if err := ebiten.RunGame(g); err != nil {
		slog.Error("game loop failed", "error", err)
		g.Close()
		os.Exit(1)
	}
	g.Close()
}
