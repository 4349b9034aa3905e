package main

import (
	"bytes"
	"os"
	"path/filepath"
	"riskmodel/internal/repository"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

func writeFixtures(t *testing.T) (string, string) {
	t.Helper()
	dir := t.TempDir()

	catalogPath := filepath.Join(dir, "risks.csv")
	err := os.WriteFile(catalogPath, []byte(
		"Category,Description,Probability,Impact\n"+
			"Credit,Counterparty default,3,5\n"+
			"Market,FX volatility,4,3\n",
	), 0o644)
	require.NoError(t, err)

	configPath := filepath.Join(dir, "riskmodel.yaml")
	err = os.WriteFile(configPath, []byte(
		"catalog_path: "+catalogPath+"\n"+
			"output_dir: "+filepath.Join(dir, "outputs")+"\n"+
			"simulation:\n"+
			"  trials: 500\n"+
			"  seed: 3\n",
	), 0o644)
	require.NoError(t, err)

	return dir, configPath
}

func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()
	root := newRootCmd()
	out := &bytes.Buffer{}
	root.SetOut(out)
	root.SetArgs(args)
	err := root.Execute()
	return out.String(), err
}

func Test_runCommand(t *testing.T) {
	t.Run("config values", func(t *testing.T) {
		dir, configPath := writeFixtures(t)

		out, err := execute(t, "run", "--config", configPath)
		require.NoError(t, err)
		require.Contains(t, out, "Trials: 500")

		_, err = os.Stat(filepath.Join(dir, "outputs", repository.SimulationSummaryFile))
		require.NoError(t, err)
	})

	t.Run("flags override config", func(t *testing.T) {
		dir, configPath := writeFixtures(t)
		outDir := filepath.Join(dir, "elsewhere")

		out, err := execute(t, "run", "--config", configPath, "--trials", "250", "--out", outDir, "--title", "Quarterly")
		require.NoError(t, err)
		require.True(t, strings.HasPrefix(out, "Quarterly\n"))
		require.Contains(t, out, "Trials: 250")

		_, err = os.Stat(filepath.Join(outDir, repository.LossesFile))
		require.NoError(t, err)
	})

	t.Run("invalid trials", func(t *testing.T) {
		_, configPath := writeFixtures(t)

		_, err := execute(t, "run", "--config", configPath, "--trials", "0")
		require.ErrorContains(t, err, "trials must be positive")
	})
}

func Test_simulateCommand(t *testing.T) {
	dir, configPath := writeFixtures(t)

	out, err := execute(t, "simulate", "--config", configPath, "--seed", "11")
	require.NoError(t, err)

	lines := strings.Split(strings.TrimSpace(out), "\n")
	require.Len(t, lines, 5)
	require.Equal(t, "Trials: 500", lines[0])
	require.True(t, strings.HasPrefix(lines[3], "VaR(95%): "))

	_, err = os.Stat(filepath.Join(dir, "outputs"))
	require.True(t, os.IsNotExist(err))
}
