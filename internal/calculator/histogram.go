package calculator

import (
	"fmt"
	"math"
	"riskmodel/internal/domain"
)

// Histogram buckets losses into equal-width bins spanning [min, max].
// The last bin is closed on both ends so the max lands in it. When every
// loss is the same value a single bin is returned. Non-finite losses are
// skipped.
func Histogram(losses []float64, bins int) ([]domain.HistogramBin, error) {
	if bins <= 0 {
		return nil, fmt.Errorf("bin count must be positive, got %d", bins)
	}

	lo, hi := math.Inf(1), math.Inf(-1)
	for _, v := range losses {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			continue
		}
		lo = math.Min(lo, v)
		hi = math.Max(hi, v)
	}
	if lo > hi {
		return []domain.HistogramBin{}, nil
	}

	if lo == hi {
		count := 0
		for _, v := range losses {
			if v == lo {
				count++
			}
		}
		return []domain.HistogramBin{{Lower: lo, Upper: hi, Count: count}}, nil
	}

	// scale by the full span rather than a per-bin width, which can
	// underflow to 0 for subnormal ranges
	span := hi - lo
	out := make([]domain.HistogramBin, bins)
	for i := range out {
		out[i].Lower = lo + span*float64(i)/float64(bins)
		out[i].Upper = lo + span*float64(i+1)/float64(bins)
	}
	out[bins-1].Upper = hi

	for _, v := range losses {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			continue
		}
		idx := int(float64(bins) * ((v - lo) / span))
		idx = max(0, min(idx, bins-1))
		out[idx].Count++
	}

	return out, nil
}
