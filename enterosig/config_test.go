package enterosig

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadConfigMissingFileUsesDefaults(t *testing.T) {
	cfg, err := LoadConfig(filepath.Join(t.TempDir(), "nope.json"))
	require.NoError(t, err)
	assert.True(t, cfg.Rollup)
	assert.Equal(t, 2000, cfg.Solve.MaxIter)
	assert.Equal(t, 1e-6, cfg.Solve.Tolerance)
	assert.Equal(t, 0.25, cfg.RepresentativeThreshold)
	assert.Equal(t, 0.9, cfg.MonodominantThreshold)
	assert.Equal(t, 0.4, cfg.LowFitThreshold)
}

func TestLoadConfigKeepsExplicitRollupFalse(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.json")
	require.NoError(t, os.WriteFile(path, []byte(`{"rollup": false}`), 0o644))

	cfg, err := LoadConfig(path)
	require.NoError(t, err)
	assert.False(t, cfg.Rollup)
}

func TestLoadConfigDefaultsRollupWhenAbsent(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.json")
	require.NoError(t, os.WriteFile(path, []byte(`{"solve":{"maxIter":50}}`), 0o644))

	cfg, err := LoadConfig(path)
	require.NoError(t, err)
	assert.True(t, cfg.Rollup)
	assert.Equal(t, 50, cfg.Solve.MaxIter)
}

func TestLoadConfigIgnoresRollupLookalikes(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.json")
	require.NoError(t, os.WriteFile(path, []byte(`{"basisPath":"rollup"}`), 0o644))

	cfg, err := LoadConfig(path)
	require.NoError(t, err)
	assert.True(t, cfg.Rollup)
	assert.Equal(t, "rollup", cfg.BasisPath)
}

func TestSaveConfigRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "sub", "config.json")
	cfg := Config{Rollup: false, BasisPath: "w.tsv"}
	cfg.ApplyDefaults()
	require.NoError(t, SaveConfig(path, cfg))

	loaded, err := LoadConfig(path)
	require.NoError(t, err)
	assert.Equal(t, cfg, loaded)
}

func TestConfigCloneIsDeep(t *testing.T) {
	cfg := Config{BasisPath: "w.tsv"}
	cfg.ApplyDefaults()
	clone := cfg.Clone()
	clone.BasisPath = "other.tsv"
	clone.Solve.MaxIter = 1
	assert.Equal(t, "w.tsv", cfg.BasisPath)
	assert.Equal(t, 2000, cfg.Solve.MaxIter)
}
