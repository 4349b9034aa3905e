package util

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

func chdir(t *testing.T, dir string) {
	t.Helper()
	wd, err := os.Getwd()
	require.NoError(t, err)
	require.NoError(t, os.Chdir(dir))
	t.Cleanup(func() {
		_ = os.Chdir(wd)
	})
}

func TestLoadConfig(t *testing.T) {
	t.Run("defaults", func(t *testing.T) {
		chdir(t, t.TempDir())

		cfg, err := LoadConfig("")
		require.NoError(t, err)
		require.Equal(t, 3009, cfg.Port)
		require.Equal(t, "probability * impact", cfg.ScoreExpression)
		require.Equal(t, 80, cfg.HistogramBins)
		require.Equal(t, 10000, cfg.Simulation.Trials)
		require.Equal(t, 1_000_000.0, cfg.Simulation.BaseExposure)
		require.Equal(t, int64(42), cfg.Simulation.Seed)
	})

	t.Run("env overrides", func(t *testing.T) {
		chdir(t, t.TempDir())
		t.Setenv("RISK_SIMULATION_TRIALS", "500")
		t.Setenv("RISK_OUTPUT_DIR", "/tmp/out")
		t.Setenv("RISK_ENV", "dev")

		cfg, err := LoadConfig("")
		require.NoError(t, err)
		require.Equal(t, 500, cfg.Simulation.Trials)
		require.Equal(t, "/tmp/out", cfg.OutputDir)
		require.Equal(t, "dev", cfg.Env)
	})

	t.Run("config file", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "custom.yaml")
		content := "port: 8080\nsimulation:\n  trials: 2500\n  base_exposure: 50000\n  seed: 7\n"
		require.NoError(t, os.WriteFile(path, []byte(content), 0o644))

		cfg, err := LoadConfig(path)
		require.NoError(t, err)
		require.Equal(t, 8080, cfg.Port)
		require.Equal(t, 2500, cfg.Simulation.Trials)
		require.Equal(t, 50000.0, cfg.Simulation.BaseExposure)
		require.Equal(t, int64(7), cfg.Simulation.Seed)
		require.Equal(t, 80, cfg.HistogramBins)

		sim := cfg.Simulation.ToSimulationConfig()
		require.NoError(t, sim.Validate())
	})

	t.Run("missing explicit file", func(t *testing.T) {
		_, err := LoadConfig(filepath.Join(t.TempDir(), "nope.yaml"))
		require.Error(t, err)
	})

	t.Run("invalid values", func(t *testing.T) {
		chdir(t, t.TempDir())
		t.Setenv("RISK_SIMULATION_TRIALS", "0")

		_, err := LoadConfig("")
		require.Error(t, err)
	})
}
