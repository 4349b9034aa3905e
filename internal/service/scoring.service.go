package service

import (
	"context"
	"fmt"
	"math"
	"riskmodel/internal/domain"
	"riskmodel/internal/logger"
	"riskmodel/internal/metrics"
	"sort"
	"strconv"
	"strings"

	"github.com/maja42/goval"
)

const DefaultScoreExpression = "probability * impact"

// ScoringService turns raw catalog rows into scored, ranked risks. It is
// the only place ratings get coerced; the simulator trusts whatever it is
// handed.
type ScoringService interface {
	Score(ctx context.Context, records []domain.RiskRecord) ([]domain.ScoredRisk, error)
	TopRisks(scored []domain.ScoredRisk, n int) []domain.ScoredRisk
}

type scoringServiceHandler struct {
	Expression string
}

// NewScoringService builds a scorer around expression, which may refer to
// the variables probability and impact. An empty expression falls back to
// probability * impact.
func NewScoringService(expression string) ScoringService {
	if strings.TrimSpace(expression) == "" {
		expression = DefaultScoreExpression
	}
	return scoringServiceHandler{
		Expression: expression,
	}
}

func (h scoringServiceHandler) Score(ctx context.Context, records []domain.RiskRecord) ([]domain.ScoredRisk, error) {
	log := logger.FromContext(ctx)

	out := make([]domain.ScoredRisk, 0, len(records))
	coerced := 0
	for i, r := range records {
		probability, ok := CoerceRating(r.Probability)
		if !ok {
			coerced++
		}
		impact, ok := CoerceRating(r.Impact)
		if !ok {
			coerced++
		}

		score, err := h.evaluate(probability, impact)
		if err != nil {
			return nil, fmt.Errorf("failed to score row %d (%s - %s): %w", i, r.Category, r.Description, err)
		}

		level := domain.RiskLevelFromScore(score)
		metrics.ScoredRisksTotal.WithLabelValues(string(level)).Inc()

		out = append(out, domain.ScoredRisk{
			Category:    r.Category,
			Description: r.Description,
			Probability: probability,
			Impact:      impact,
			Score:       score,
			Level:       level,
		})
	}

	if coerced > 0 {
		log.Warnf("coerced %d malformed ratings to 0", coerced)
	}

	sort.SliceStable(out, func(i, j int) bool {
		return out[i].Score > out[j].Score
	})

	return out, nil
}

func (h scoringServiceHandler) evaluate(probability, impact int) (int, error) {
	eval := goval.NewEvaluator()
	result, err := eval.Evaluate(
		h.Expression,
		map[string]interface{}{
			"probability": probability,
			"impact":      impact,
		},
		nil,
	)
	if err != nil {
		return 0, fmt.Errorf("failed to evaluate %q: %w", h.Expression, err)
	}

	switch v := result.(type) {
	case int:
		return v, nil
	case float64:
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return 0, fmt.Errorf("expression %q produced non-finite score", h.Expression)
		}
		return int(v), nil
	default:
		return 0, fmt.Errorf("expression %q produced %T, expected a number", h.Expression, result)
	}
}

func (h scoringServiceHandler) TopRisks(scored []domain.ScoredRisk, n int) []domain.ScoredRisk {
	if n < 0 {
		n = 0
	}
	if n > len(scored) {
		n = len(scored)
	}
	out := make([]domain.ScoredRisk, n)
	copy(out, scored[:n])
	return out
}

// CoerceRating parses a rating the way the catalog always has: numeric
// strings are truncated toward zero, anything unparseable, non-finite or
// too large for an int64 becomes 0. ok is false when the value had to be
// replaced.
func CoerceRating(raw string) (rating int, ok bool) {
	s := strings.TrimSpace(raw)
	if s == "" {
		return 0, false
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil || math.IsNaN(v) || math.IsInf(v, 0) {
		return 0, false
	}
	if math.Abs(v) >= 1<<63 {
		return 0, false
	}
	return int(v), true
}
