package app

import (
	"context"
	"fmt"
	"riskmodel/internal/calculator"
	"riskmodel/internal/domain"
	"riskmodel/internal/logger"
	"riskmodel/internal/repository"
	"riskmodel/internal/service"

	"github.com/google/uuid"
)

const DefaultReportTitle = "Risk Model Report"

// RiskModelApp runs the whole model: load the catalog, score it, simulate
// losses and write the artefacts a dashboard or report needs.
type RiskModelApp interface {
	Run(ctx context.Context, in RunInput) (*RunResult, error)
}

type RunInput struct {
	CatalogPath string
	// outputs are skipped when empty
	OutputDir     string
	Simulation    domain.SimulationConfig
	Workers       int
	HistogramBins int
	TopN          int
	ReportTitle   string
}

type RunResult struct {
	RunID       uuid.UUID
	Scored      []domain.ScoredRisk
	TopRisks    []domain.ScoredRisk
	Losses      domain.LossSample
	Summary     domain.SimulationSummary
	Histogram   []domain.HistogramBin
	Report      string
	OutputPaths []string
	Profile     *domain.Profile
}

type riskModelAppHandler struct {
	RiskCatalogRepository repository.RiskCatalogRepository
	OutputRepository      repository.OutputRepository
	ScoringService        service.ScoringService
	SimulationService     service.SimulationService
	ReportService         service.ReportService
}

func NewRiskModelApp(
	riskCatalogRepository repository.RiskCatalogRepository,
	outputRepository repository.OutputRepository,
	scoringService service.ScoringService,
	simulationService service.SimulationService,
	reportService service.ReportService,
) RiskModelApp {
	return &riskModelAppHandler{
		RiskCatalogRepository: riskCatalogRepository,
		OutputRepository:      outputRepository,
		ScoringService:        scoringService,
		SimulationService:     simulationService,
		ReportService:         reportService,
	}
}

func (h *riskModelAppHandler) Run(ctx context.Context, in RunInput) (*RunResult, error) {
	log := logger.FromContext(ctx)

	// fail before touching the catalog or the output dir
	if err := in.Simulation.Validate(); err != nil {
		return nil, err
	}

	profile, endProfile := domain.NewProfile()
	defer endProfile()
	ctx = context.WithValue(ctx, domain.ContextProfileKey, profile)

	profile.StartStage("load")
	records, err := h.RiskCatalogRepository.LoadFile(in.CatalogPath)
	if err != nil {
		return nil, err
	}
	log.Infof("loaded %d risks from %s", len(records), in.CatalogPath)

	profile.StartStage("score")
	scored, err := h.ScoringService.Score(ctx, records)
	if err != nil {
		return nil, fmt.Errorf("failed to score risks: %w", err)
	}

	sim, err := h.SimulationService.Run(ctx, domain.RiskItemsFromScored(scored), in.Simulation, in.Workers)
	if err != nil {
		return nil, err
	}

	profile.StartStage("report")
	bins := in.HistogramBins
	if bins <= 0 {
		bins = 80
	}
	histogram, err := calculator.Histogram(sim.Losses, bins)
	if err != nil {
		return nil, fmt.Errorf("failed to build loss histogram: %w", err)
	}

	title := in.ReportTitle
	if title == "" {
		title = DefaultReportTitle
	}
	topRisks := h.ScoringService.TopRisks(scored, in.TopN)
	report := h.ReportService.Render(title, sim.Summary, topRisks)

	result := &RunResult{
		RunID:     sim.RunID,
		Scored:    scored,
		TopRisks:  topRisks,
		Losses:    sim.Losses,
		Summary:   sim.Summary,
		Histogram: histogram,
		Report:    report,
		Profile:   profile,
	}

	if in.OutputDir != "" {
		profile.StartStage("write")
		paths, err := h.writeOutputs(in.OutputDir, result)
		if err != nil {
			return nil, err
		}
		result.OutputPaths = paths
		log.Infof("outputs written to %s", in.OutputDir)
	}

	endProfile()
	if profileBytes, err := profile.ToJsonBytes(); err == nil {
		log.Infow("run complete", "runID", sim.RunID.String(), "profile", string(profileBytes))
	}

	return result, nil
}

func (h *riskModelAppHandler) writeOutputs(dir string, result *RunResult) ([]string, error) {
	paths := []string{}

	path, err := h.OutputRepository.WriteScoredRisks(dir, result.Scored)
	if err != nil {
		return nil, err
	}
	paths = append(paths, path)

	path, err = h.OutputRepository.WriteLosses(dir, result.Losses)
	if err != nil {
		return nil, err
	}
	paths = append(paths, path)

	path, err = h.OutputRepository.WriteSummary(dir, result.Summary)
	if err != nil {
		return nil, err
	}
	paths = append(paths, path)

	path, err = h.OutputRepository.WriteReport(dir, result.Report)
	if err != nil {
		return nil, err
	}
	paths = append(paths, path)

	return paths, nil
}
