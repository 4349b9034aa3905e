package calculator

import (
	"fmt"
	"math"
	"riskmodel/internal/domain"
	"sort"

	"github.com/montanaflynn/stats"
)

// TailPercentile is the level VaR and expected shortfall are reported at
const TailPercentile = 95

// Summarize computes the summary statistics of a loss sample. It does not
// modify losses.
func Summarize(losses domain.LossSample) (*domain.SimulationSummary, error) {
	if len(losses) == 0 {
		return nil, fmt.Errorf("cannot summarize empty loss sample")
	}

	data := stats.Float64Data(losses)

	mean, err := stats.Mean(data)
	if err != nil {
		return nil, fmt.Errorf("failed to compute mean: %w", err)
	}
	median, err := stats.Median(data)
	if err != nil {
		return nil, fmt.Errorf("failed to compute median: %w", err)
	}
	stdev, err := stats.StandardDeviationPopulation(data)
	if err != nil {
		return nil, fmt.Errorf("failed to compute stdev: %w", err)
	}

	sorted := sortedCopy(losses)

	percentiles := map[int]float64{}
	for _, p := range domain.SummaryPercentiles {
		percentiles[p] = percentileSorted(sorted, float64(p))
	}

	valueAtRisk := percentileSorted(sorted, TailPercentile)

	return &domain.SimulationSummary{
		Trials:      len(losses),
		MeanLoss:    mean,
		MedianLoss:  median,
		StdLoss:     stdev,
		Percentiles: percentiles,
		VaR95:       valueAtRisk,
		ES95:        expectedShortfall(sorted, valueAtRisk),
	}, nil
}

// Percentile returns the value below which p percent of losses fall,
// interpolating linearly between the two closest ranks.
func Percentile(losses []float64, p float64) (float64, error) {
	if len(losses) == 0 {
		return 0, fmt.Errorf("cannot take percentile of empty sample")
	}
	if p < 0 || p > 100 || math.IsNaN(p) {
		return 0, fmt.Errorf("percentile must be within [0, 100], got %v", p)
	}
	return percentileSorted(sortedCopy(losses), p), nil
}

func sortedCopy(in []float64) []float64 {
	out := make([]float64, len(in))
	copy(out, in)
	sort.Float64s(out)
	return out
}

// percentileSorted expects a non-empty, ascending slice
func percentileSorted(sorted []float64, p float64) float64 {
	n := len(sorted)
	if n == 1 {
		return sorted[0]
	}

	rank := (float64(n) - 1) * p / 100
	lo := int(math.Floor(rank))
	if lo >= n-1 {
		return sorted[n-1]
	}
	hi := lo + 1
	frac := rank - float64(lo)

	v := sorted[lo] + frac*(sorted[hi]-sorted[lo])
	// rounding can overshoot the upper neighbour by an ulp
	if v > sorted[hi] {
		v = sorted[hi]
	}
	return v
}

// expectedShortfall averages every loss at or above threshold. It is
// computed as threshold plus the mean excess so the result can never drop
// below threshold through rounding. The comparison is inclusive, which
// guarantees at least the largest loss is in the tail.
func expectedShortfall(sorted []float64, threshold float64) float64 {
	start := sort.Search(len(sorted), func(i int) bool {
		return sorted[i] >= threshold
	})
	tail := sorted[start:]
	if len(tail) == 0 {
		// only reachable with NaN in the sample
		return threshold
	}

	excess := 0.0
	for _, v := range tail {
		excess += v - threshold
	}
	return threshold + excess/float64(len(tail))
}
