package calculator

import (
	"context"
	"fmt"
	"math/rand/v2"
	"riskmodel/internal/domain"

	"golang.org/x/sync/errgroup"
)

// trialRand derives the generator for a single trial from the master
// seed, so a trial's loss only depends on (seed, trial index).
func trialRand(seed int64, trial int) *rand.Rand {
	return rand.New(rand.NewPCG(uint64(seed), uint64(trial)+1))
}

// SimulateParallel splits the trials across workers. Every trial draws
// from its own generator derived from cfg.Seed and the trial index, so the
// output is the same for any worker count. It is NOT bit-identical to
// Simulate, which runs every trial off a single stream.
func SimulateParallel(ctx context.Context, items []domain.RiskItem, cfg domain.SimulationConfig, workers int) (domain.LossSample, *domain.SimulationSummary, error) {
	if err := cfg.Validate(); err != nil {
		return nil, nil, err
	}
	if workers < 1 {
		workers = 1
	}
	if workers > cfg.Trials {
		workers = cfg.Trials
	}

	normalized := normalize(items)
	losses := make(domain.LossSample, cfg.Trials)
	chunk := (cfg.Trials + workers - 1) / workers

	g, ctx := errgroup.WithContext(ctx)
	for start := 0; start < cfg.Trials; start += chunk {
		end := min(start+chunk, cfg.Trials)
		g.Go(func() error {
			occurs := make([]float64, len(normalized))
			for i := start; i < end; i++ {
				if (i-start)%1024 == 0 {
					if err := ctx.Err(); err != nil {
						return err
					}
				}
				// each worker writes a disjoint range of losses
				losses[i] = simulateTrial(normalized, cfg.BaseExposure, trialRand(cfg.Seed, i), occurs)
			}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, nil, fmt.Errorf("parallel simulation aborted: %w", err)
	}

	summary, err := Summarize(losses)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to summarize losses: %w", err)
	}

	return losses, summary, nil
}
