package monitor

import (
	"sync"

	"github.com/desertthunder/qfill/internal/models"
)

// Settings owns the live [models.AutoFillConfig]. The web layer writes it,
// the monitor reads one snapshot per tick. Invalid writes are rejected here
// so the monitor never observes a config that fails validation.
type Settings struct {
	mu  sync.RWMutex
	cfg models.AutoFillConfig
}

// NewSettings creates a store seeded with cfg. The seed itself must validate.
func NewSettings(cfg models.AutoFillConfig) (*Settings, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &Settings{cfg: cfg.Clone()}, nil
}

// Snapshot returns a copy of the current config. The copy never aliases the
// stored state, so a concurrent write cannot alter a tick in progress.
func (s *Settings) Snapshot() models.AutoFillConfig {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.cfg.Clone()
}

// Update applies fn to a copy of the config and commits it only if the
// result validates. On rejection the stored config is unchanged.
func (s *Settings) Update(fn func(cfg *models.AutoFillConfig)) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	next := s.cfg.Clone()
	fn(&next)

	if err := next.Validate(); err != nil {
		return err
	}

	s.cfg = next
	return nil
}
