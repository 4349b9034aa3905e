package service

import (
	"context"
	"errors"
	"fmt"
	"riskmodel/internal/calculator"
	"riskmodel/internal/domain"
	"riskmodel/internal/logger"
	"riskmodel/internal/metrics"
	"time"

	"github.com/google/uuid"
)

type SimulationResult struct {
	RunID   uuid.UUID
	Losses  domain.LossSample
	Summary domain.SimulationSummary
}

type SimulationService interface {
	// Run simulates items under cfg. workers <= 1 runs the sequential
	// simulator; more workers switch to per-trial seeding, which is
	// reproducible but yields a different stream than the sequential run.
	Run(ctx context.Context, items []domain.RiskItem, cfg domain.SimulationConfig, workers int) (*SimulationResult, error)
}

type simulationServiceHandler struct{}

func NewSimulationService() SimulationService {
	return simulationServiceHandler{}
}

func (h simulationServiceHandler) Run(ctx context.Context, items []domain.RiskItem, cfg domain.SimulationConfig, workers int) (*SimulationResult, error) {
	runID := uuid.New()
	log := logger.FromContext(ctx).With("runID", runID.String())

	_, endStage := domain.ProfileFromContext(ctx).StartStage("simulate")
	defer endStage()

	start := time.Now()
	var (
		losses  domain.LossSample
		summary *domain.SimulationSummary
		err     error
	)
	if workers > 1 {
		losses, summary, err = calculator.SimulateParallel(ctx, items, cfg, workers)
	} else {
		losses, summary, err = calculator.Simulate(items, cfg)
	}
	elapsed := time.Since(start)

	if err != nil {
		outcome := metrics.OutcomeError
		if errors.Is(err, domain.ErrInvalidConfig) {
			outcome = metrics.OutcomeInvalidConfig
		}
		metrics.SimulationsTotal.WithLabelValues(outcome).Inc()
		log.Warnf("simulation failed: %v", err)
		return nil, fmt.Errorf("failed to simulate losses: %w", err)
	}

	metrics.SimulationsTotal.WithLabelValues(metrics.OutcomeSuccess).Inc()
	metrics.SimulatedTrialsTotal.Add(float64(cfg.Trials))
	metrics.SimulationDuration.Observe(elapsed.Seconds())
	metrics.LastVaR95.Set(summary.VaR95)

	log.Infow("simulation complete",
		"risks", len(items),
		"trials", cfg.Trials,
		"workers", workers,
		"elapsedMs", elapsed.Milliseconds(),
		"VaR95", summary.VaR95,
		"ES95", summary.ES95,
	)

	return &SimulationResult{
		RunID:   runID,
		Losses:  losses,
		Summary: *summary,
	}, nil
}
