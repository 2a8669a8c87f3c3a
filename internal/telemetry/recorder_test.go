package telemetry

import (
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"gonum.org/v1/gonum/spatial/r2"

	"github.com/olivierh59500/coffee-particles/internal/config"
	"github.com/olivierh59500/coffee-particles/internal/particle"
)

var quiet = slog.New(slog.NewTextHandler(io.Discard, nil))

func newController(t *testing.T) *particle.Controller {
	t.Helper()
	cfg, err := config.Load("")
	if err != nil {
		t.Fatal(err)
	}
	return particle.NewController(particle.Options{
		Bounds:       cfg.Derived.Bounds,
		GridAnchor:   cfg.Derived.GridAnchor,
		CellSize:     cfg.Grid.CellSize,
		StreamOrigin: cfg.Derived.StreamOrigin,
		Logger:       quiet,
	})
}

func TestNilRecorder(t *testing.T) {
	r, err := NewRecorder("", 10, quiet)
	if err != nil || r != nil {
		t.Fatalf("NewRecorder(\"\") = %v, %v", r, err)
	}
	if err := r.Observe(newController(t)); err != nil {
		t.Error(err)
	}
	if err := r.WriteConfig(nil); err != nil {
		t.Error(err)
	}
	if err := r.Close(); err != nil {
		t.Error(err)
	}
}

func TestMeasure(t *testing.T) {
	c := newController(t)
	if s := Measure(0, c.Mode(), c.Active()); s.Particles != 0 || s.Mode != "setting" {
		t.Errorf("setting sample = %+v", s)
	}

	c.SetMode(particle.ShowTwo)
	brew := particle.Brew{Radius: 20, Resolution: 8}
	for i := 0; i < 3; i++ {
		c.Update(particle.Input{Brew: brew, Pointer: r2.Vec{}})
	}
	s := Measure(c.Ticks(), c.Mode(), c.Active())
	if s.Particles != 3 {
		t.Fatalf("particles = %d, want 3", s.Particles)
	}
	// Lives are 255, 253.5 and 252.
	if s.MinLife != 252 || s.MeanLife != 253.5 {
		t.Errorf("life stats = %v / %v", s.MinLife, s.MeanLife)
	}
	if s.Intact {
		t.Error("stream reported intact")
	}
}

func TestRecorderWritesHeaderOnce(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "run")
	r, err := NewRecorder(dir, 5, quiet)
	if err != nil {
		t.Fatalf("NewRecorder() error = %v", err)
	}

	c := newController(t)
	c.SetMode(particle.ShowTwo)
	for i := 0; i < 20; i++ {
		c.Update(particle.Input{Brew: particle.Brew{Radius: 20, Resolution: 8}})
		if err := r.Observe(c); err != nil {
			t.Fatalf("Observe() error = %v", err)
		}
	}
	if err := r.Close(); err != nil {
		t.Fatal(err)
	}

	data, err := os.ReadFile(filepath.Join(dir, "population.csv"))
	if err != nil {
		t.Fatal(err)
	}
	lines := strings.Split(strings.TrimSpace(string(data)), "\n")
	if len(lines) != 5 {
		t.Fatalf("got %d lines, want header + 4 samples:\n%s", len(lines), data)
	}
	if lines[0] != "tick,mode,particles,mean_life,min_life,intact" {
		t.Errorf("header = %q", lines[0])
	}
	if !strings.HasPrefix(lines[4], "20,show-two,20,") {
		t.Errorf("last row = %q", lines[4])
	}
}

func TestRecorderWritesConfig(t *testing.T) {
	dir := t.TempDir()
	r, err := NewRecorder(dir, 1, quiet)
	if err != nil {
		t.Fatal(err)
	}
	defer r.Close()

	cfg, err := config.Load("")
	if err != nil {
		t.Fatal(err)
	}
	if err := r.WriteConfig(cfg); err != nil {
		t.Fatalf("WriteConfig() error = %v", err)
	}
	if _, err := config.Load(filepath.Join(dir, "config.yaml")); err != nil {
		t.Errorf("written config does not load: %v", err)
	}
}
