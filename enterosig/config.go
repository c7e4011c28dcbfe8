package enterosig

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
)

const defaultConfigFile = "config.json"

// SolveOptions controls the per-sample projection solve.
type SolveOptions struct {
	// MaxIter caps the multiplicative updates per sample. Exceeding it is
	// not fatal; the sample is flagged unconverged in the quality series.
	MaxIter int `json:"maxIter"`
	// Tolerance is the relative reconstruction-error change below which a
	// sample counts as converged.
	Tolerance float64 `json:"tolerance"`
}

// Config aggregates runtime settings persisted to config.json.
type Config struct {
	Rollup                  bool         `json:"rollup"`
	Solve                   SolveOptions `json:"solve"`
	RepresentativeThreshold float64      `json:"representativeThreshold"`
	MonodominantThreshold   float64      `json:"monodominantThreshold"`
	LowFitThreshold         float64      `json:"lowFitThreshold"`
	BasisPath               string       `json:"basisPath,omitempty"`
	MappingPath             string       `json:"mappingPath,omitempty"`
}

// Clone creates a deep copy of the configuration so callers can mutate safely.
func (c Config) Clone() Config {
	buf, _ := json.Marshal(c)
	var out Config
	_ = json.Unmarshal(buf, &out)
	return out
}

// ApplyDefaults populates zero values with sensible defaults.
func (c *Config) ApplyDefaults() {
	if c.Solve.MaxIter <= 0 {
		c.Solve.MaxIter = 2000
	}
	if c.Solve.Tolerance <= 0 {
		c.Solve.Tolerance = 1e-6
	}
	if c.RepresentativeThreshold == 0 {
		c.RepresentativeThreshold = 0.25
	}
	if c.MonodominantThreshold == 0 {
		c.MonodominantThreshold = 0.9
	}
	if c.LowFitThreshold == 0 {
		c.LowFitThreshold = 0.4
	}
}

// LoadConfig loads configuration from the given path or the default
// config.json. A missing file yields the defaults with rollup enabled.
func LoadConfig(path string) (Config, error) {
	if path == "" {
		path = defaultConfigFile
	}
	var cfg Config
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			cfg.Rollup = true
			cfg.ApplyDefaults()
			return cfg, nil
		}
		return cfg, fmt.Errorf("read config: %w", err)
	}
	if err := json.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("decode config: %w", err)
	}
	// Rollup defaults to on, but absence of the key must not be read as an
	// explicit false.
	var keys map[string]json.RawMessage
	_ = json.Unmarshal(data, &keys)
	if _, ok := keys["rollup"]; !ok {
		cfg.Rollup = true
	}
	cfg.ApplyDefaults()
	return cfg, nil
}

// SaveConfig persists configuration to disk.
func SaveConfig(path string, cfg Config) error {
	if path == "" {
		path = defaultConfigFile
	}
	tmp := path + ".tmp"
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("create config dir: %w", err)
		}
	}
	cfg.ApplyDefaults()
	data, err := json.MarshalIndent(cfg, "", "  ")
	if err != nil {
		return fmt.Errorf("encode config: %w", err)
	}
	if err := os.WriteFile(tmp, data, 0o644); err != nil {
		return fmt.Errorf("write temp config: %w", err)
	}
	if err := os.Rename(tmp, path); err != nil {
		return fmt.Errorf("rename config: %w", err)
	}
	return nil
}
