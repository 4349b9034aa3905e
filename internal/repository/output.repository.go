package repository

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"riskmodel/internal/domain"

	"github.com/gocarina/gocsv"
)

const (
	ScoredRisksFile       = "risks_scored.csv"
	LossesFile            = "losses.csv"
	SimulationSummaryFile = "simulation_summary.json"
	ReportFile            = "report.txt"
)

// OutputRepository writes the artefacts of a model run into a directory.
// Every method returns the path it wrote.
type OutputRepository interface {
	WriteScoredRisks(dir string, scored []domain.ScoredRisk) (string, error)
	WriteLosses(dir string, losses domain.LossSample) (string, error)
	WriteSummary(dir string, summary domain.SimulationSummary) (string, error)
	WriteReport(dir string, report string) (string, error)
}

type outputRepositoryHandler struct{}

func NewOutputRepository() OutputRepository {
	return outputRepositoryHandler{}
}

type lossRow struct {
	Trial int     `csv:"trial"`
	Loss  float64 `csv:"loss"`
}

func create(dir, name string) (*os.File, string, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, "", fmt.Errorf("failed to create output dir %s: %w", dir, err)
	}
	path := filepath.Join(dir, name)
	f, err := os.Create(path)
	if err != nil {
		return nil, "", fmt.Errorf("failed to create %s: %w", path, err)
	}
	return f, path, nil
}

func (h outputRepositoryHandler) WriteScoredRisks(dir string, scored []domain.ScoredRisk) (string, error) {
	f, path, err := create(dir, ScoredRisksFile)
	if err != nil {
		return "", err
	}
	defer f.Close()

	if err := gocsv.Marshal(scored, f); err != nil {
		return "", fmt.Errorf("failed to write scored risks: %w", err)
	}
	return path, nil
}

func (h outputRepositoryHandler) WriteLosses(dir string, losses domain.LossSample) (string, error) {
	f, path, err := create(dir, LossesFile)
	if err != nil {
		return "", err
	}
	defer f.Close()

	rows := make([]lossRow, len(losses))
	for i, l := range losses {
		rows[i] = lossRow{Trial: i, Loss: l}
	}
	if err := gocsv.Marshal(rows, f); err != nil {
		return "", fmt.Errorf("failed to write losses: %w", err)
	}
	return path, nil
}

func (h outputRepositoryHandler) WriteSummary(dir string, summary domain.SimulationSummary) (string, error) {
	bytes, err := json.MarshalIndent(summary, "", "    ")
	if err != nil {
		return "", fmt.Errorf("failed to marshal summary: %w", err)
	}
	return writeFile(dir, SimulationSummaryFile, bytes)
}

func (h outputRepositoryHandler) WriteReport(dir string, report string) (string, error) {
	return writeFile(dir, ReportFile, []byte(report))
}

func writeFile(dir, name string, content []byte) (string, error) {
	f, path, err := create(dir, name)
	if err != nil {
		return "", err
	}
	defer f.Close()

	if _, err := f.Write(content); err != nil {
		return "", fmt.Errorf("failed to write %s: %w", path, err)
	}
	return path, nil
}
