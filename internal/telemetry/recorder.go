// Package telemetry samples population statistics into CSV files.
package telemetry

import (
	"fmt"
	"log/slog"
	"math"
	"os"
	"path/filepath"

	"github.com/gocarina/gocsv"

	"github.com/olivierh59500/coffee-particles/internal/config"
	"github.com/olivierh59500/coffee-particles/internal/particle"
)

// Sample is one row of population.csv.
type Sample struct {
	Tick      uint64  `csv:"tick"`
	Mode      string  `csv:"mode"`
	Particles int     `csv:"particles"`
	MeanLife  float64 `csv:"mean_life"`
	MinLife   float64 `csv:"min_life"`
	Intact    bool    `csv:"intact"`
}

// Measure summarises ps at tick. A nil population yields an empty sample.
func Measure(tick uint64, mode particle.Mode, ps *particle.Population) Sample {
	s := Sample{Tick: tick, Mode: mode.String()}
	if ps == nil {
		return s
	}
	s.Intact = ps.Intact()
	parts := ps.Particles()
	s.Particles = len(parts)
	if len(parts) == 0 {
		return s
	}
	s.MinLife = math.Inf(1)
	var sum float64
	for i := range parts {
		sum += parts[i].Life
		s.MinLife = math.Min(s.MinLife, parts[i].Life)
	}
	s.MeanLife = sum / float64(len(parts))
	return s
}

// Recorder writes a Sample every few ticks. A nil Recorder does nothing.
type Recorder struct {
	dir           string
	every         uint64
	file          *os.File
	headerWritten bool
	log           *slog.Logger
}

// NewRecorder creates dir and opens population.csv inside it.
// Returns nil if dir is empty (output disabled).
func NewRecorder(dir string, every int, log *slog.Logger) (*Recorder, error) {
	if dir == "" {
		return nil, nil
	}
	if every < 1 {
		every = 1
	}
	if log == nil {
		log = slog.Default()
	}
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("creating output directory: %w", err)
	}
	f, err := os.Create(filepath.Join(dir, "population.csv"))
	if err != nil {
		return nil, fmt.Errorf("creating population.csv: %w", err)
	}
	return &Recorder{
		dir:   dir,
		every: uint64(every),
		file:  f,
		log:   log.With("component", "telemetry"),
	}, nil
}

// WriteConfig saves the effective configuration next to the samples.
func (r *Recorder) WriteConfig(cfg *config.Config) error {
	if r == nil {
		return nil
	}
	return cfg.WriteYAML(filepath.Join(r.dir, "config.yaml"))
}

// Observe records a sample when tick falls on the sampling period.
func (r *Recorder) Observe(c *particle.Controller) error {
	if r == nil || c.Ticks()%r.every != 0 {
		return nil
	}
	return r.Write(Measure(c.Ticks(), c.Mode(), c.Active()))
}

// Write appends s to population.csv.
func (r *Recorder) Write(s Sample) error {
	if r == nil {
		return nil
	}
	records := []Sample{s}
	if !r.headerWritten {
		if err := gocsv.Marshal(records, r.file); err != nil {
			return fmt.Errorf("writing sample: %w", err)
		}
		r.headerWritten = true
	} else {
		if err := gocsv.MarshalWithoutHeaders(records, r.file); err != nil {
			return fmt.Errorf("writing sample: %w", err)
		}
	}
	r.log.Debug("sample", "tick", s.Tick, "mode", s.Mode, "particles", s.Particles)
	return nil
}

// Close flushes and closes the output file.
func (r *Recorder) Close() error {
	if r == nil {
		return nil
	}
	return r.file.Close()
}
