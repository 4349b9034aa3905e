package calculator

import (
	"fmt"
	"math"
	"math/rand/v2"
	"riskmodel/internal/domain"
)

// parameters of the underlying normal for the severity multiplier.
// median of exp(N(0, 0.6)) is 1, mean is ~1.197
const (
	SeverityMu    = 0.0
	SeveritySigma = 0.6
)

// NewRand builds the generator a run owns. Two generators built from the
// same seed produce the same stream.
func NewRand(seed int64) *rand.Rand {
	return rand.New(rand.NewPCG(uint64(seed), 0))
}

// Simulate runs cfg.Trials sequential trials over items and summarizes
// the resulting losses. Trial i consumes the generator after trials
// 0..i-1, so the output is reproducible for a given seed.
//
// Ratings are normalized by dividing by 5 and are otherwise used as-is;
// out of range and non-finite ratings propagate into the losses.
func Simulate(items []domain.RiskItem, cfg domain.SimulationConfig) (domain.LossSample, *domain.SimulationSummary, error) {
	if err := cfg.Validate(); err != nil {
		return nil, nil, err
	}

	losses := simulateTrials(items, cfg, NewRand(cfg.Seed))

	summary, err := Summarize(losses)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to summarize losses: %w", err)
	}

	return losses, summary, nil
}

type normalizedItem struct {
	probability    float64
	impactFraction float64
}

func normalize(items []domain.RiskItem) []normalizedItem {
	out := make([]normalizedItem, len(items))
	for i, item := range items {
		out[i] = normalizedItem{
			probability:    item.Probability / domain.MaxRating,
			impactFraction: item.Impact / domain.MaxRating,
		}
	}
	return out
}

func simulateTrials(items []domain.RiskItem, cfg domain.SimulationConfig, rng *rand.Rand) domain.LossSample {
	normalized := normalize(items)
	// reused across trials; every slot is overwritten each trial
	occurs := make([]float64, len(normalized))

	losses := make(domain.LossSample, cfg.Trials)
	for i := range losses {
		losses[i] = simulateTrial(normalized, cfg.BaseExposure, rng, occurs)
	}
	return losses
}

// simulateTrial draws every occurrence indicator first, then every
// severity. Severities are drawn even for risks that did not occur so the
// stream layout only depends on the number of items. The indicator is
// multiplied in rather than branched on, so a non-finite impact poisons
// the trial whether or not the risk occurred.
func simulateTrial(items []normalizedItem, baseExposure float64, rng *rand.Rand, occurs []float64) float64 {
	for j, item := range items {
		occurs[j] = 0
		if rng.Float64() < item.probability {
			occurs[j] = 1
		}
	}

	total := 0.0
	for j, item := range items {
		severity := math.Exp(SeverityMu + SeveritySigma*rng.NormFloat64())
		total += occurs[j] * (item.impactFraction * baseExposure * severity)
	}
	return total
}
