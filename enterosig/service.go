package enterosig

import (
	"context"
	"errors"
	"log"
	"sync"
	"time"
)

// Service binds a loaded reference basis to runtime configuration and a
// logger. The basis is read-only, configuration reads take a copy and all
// per-call state lives in the Result, so a single Service may serve any
// number of concurrent Reapply calls without further locking.
type Service struct {
	basis *ReferenceBasis

	cfgMu sync.RWMutex
	cfg   Config

	logger *log.Logger
}

// NewService constructs a service around an immutable reference basis.
func NewService(basis *ReferenceBasis, cfg Config, logger *log.Logger) (*Service, error) {
	if basis == nil {
		return nil, errors.New("reference basis is required")
	}
	cfg.ApplyDefaults()
	return &Service{basis: basis, cfg: cfg, logger: logger}, nil
}

// Basis returns the shared reference basis.
func (s *Service) Basis() *ReferenceBasis {
	return s.basis
}

// Config returns a copy of the current configuration.
func (s *Service) Config() Config {
	s.cfgMu.RLock()
	defer s.cfgMu.RUnlock()
	return s.cfg.Clone()
}

// UpdateConfig replaces the configuration.
func (s *Service) UpdateConfig(cfg Config) {
	cfg.ApplyDefaults()
	s.cfgMu.Lock()
	s.cfg = cfg
	s.cfgMu.Unlock()
}

// Reapply projects a raw abundance table onto the reference basis using
// the current configuration and an optional caller-supplied hard mapping.
// Every log line of the run is echoed to the service logger and collected
// on the Result for the log artifact.
func (s *Service) Reapply(ctx context.Context, raw *Table, hardMapping map[string]string) (*Result, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	cfg := s.Config()
	// The date header goes to the artifact only, not the live sink.
	lines := []string{"Date: " + time.Now().Format("2006-01-02")}
	sink := func(line string) {
		lines = append(lines, line)
		s.logf("%s", line)
	}
	res, err := Transform(raw, s.basis, TransformOptions{
		Rollup:                  cfg.Rollup,
		HardMapping:             hardMapping,
		Solve:                   cfg.Solve,
		RepresentativeThreshold: cfg.RepresentativeThreshold,
		MonodominantThreshold:   cfg.MonodominantThreshold,
		LowFitThreshold:         cfg.LowFitThreshold,
		Log:                     sink,
	})
	if err != nil {
		return nil, err
	}
	res.Log = lines
	return res, nil
}

func (s *Service) logf(format string, args ...any) {
	if s.logger != nil {
		s.logger.Printf(format, args...)
	}
}
