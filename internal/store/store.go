// Package store persists the brew between runs.
package store

import (
	"fmt"
	"log/slog"

	"github.com/quasilyte/gdata/v2"
	"gopkg.in/yaml.v3"

	"github.com/olivierh59500/coffee-particles/internal/particle"
)

const (
	brewObject   = "settings"
	brewProperty = "brew"
)

// BrewStore loads and saves the brew through gdata. A store without a
// manager keeps nothing and never fails.
type BrewStore struct {
	manager *gdata.Manager
	limits  particle.Limits
	log     *slog.Logger
}

// Open creates a store for appName. If the platform storage cannot be opened
// the error is returned together with a usable in-memory store.
func Open(appName string, limits particle.Limits, log *slog.Logger) (*BrewStore, error) {
	m, err := gdata.Open(gdata.Config{AppName: appName})
	s := New(m, limits, log)
	if err != nil {
		s.manager = nil
		return s, fmt.Errorf("opening settings storage: %w", err)
	}
	return s, nil
}

// New wraps an existing manager, which may be nil.
func New(m *gdata.Manager, limits particle.Limits, log *slog.Logger) *BrewStore {
	if log == nil {
		log = slog.Default()
	}
	return &BrewStore{manager: m, limits: limits, log: log.With("component", "store")}
}

// Persistent reports whether saves survive the process.
func (s *BrewStore) Persistent() bool { return s.manager != nil }

// Load returns the saved brew clamped to the limits. ok is false when nothing
// has been saved yet; fallback is returned in that case and on error.
func (s *BrewStore) Load(fallback particle.Brew) (b particle.Brew, ok bool, err error) {
	if s.manager == nil || !s.manager.ObjectPropExists(brewObject, brewProperty) {
		return fallback, false, nil
	}
	data, err := s.manager.LoadObjectProp(brewObject, brewProperty)
	if err != nil {
		return fallback, false, fmt.Errorf("loading brew: %w", err)
	}
	if err := yaml.Unmarshal(data, &b); err != nil {
		return fallback, false, fmt.Errorf("decoding brew: %w", err)
	}
	b = b.Clamp(s.limits)
	s.log.Info("brew loaded", "radius", b.Radius, "resolution", b.Resolution, "hue", b.Color.Hue)
	return b, true, nil
}

// Save writes b. Without a manager it is a no-op.
func (s *BrewStore) Save(b particle.Brew) error {
	if s.manager == nil {
		return nil
	}
	data, err := yaml.Marshal(b)
	if err != nil {
		return fmt.Errorf("encoding brew: %w", err)
	}
	if err := s.manager.SaveObjectProp(brewObject, brewProperty, data); err != nil {
		return fmt.Errorf("saving brew: %w", err)
	}
	s.log.Info("brew saved")
	return nil
}
