package service

import (
	"fmt"
	"math"
	"riskmodel/internal/domain"
	"strings"

	"github.com/shopspring/decimal"
)

// ReportService renders run results as plain text for whatever
// document or message the caller embeds them in
type ReportService interface {
	SummaryLines(summary domain.SimulationSummary) []string
	Render(title string, summary domain.SimulationSummary, topRisks []domain.ScoredRisk) string
}

type reportServiceHandler struct{}

func NewReportService() ReportService {
	return reportServiceHandler{}
}

// formatAmount rounds to cents. Non-finite values have no decimal
// representation and are printed as-is.
func formatAmount(v float64) string {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return fmt.Sprintf("%v", v)
	}
	return decimal.NewFromFloat(v).StringFixed(2)
}

func (h reportServiceHandler) SummaryLines(summary domain.SimulationSummary) []string {
	return []string{
		fmt.Sprintf("Trials: %d", summary.Trials),
		fmt.Sprintf("Mean loss: %s", formatAmount(summary.MeanLoss)),
		fmt.Sprintf("Median loss: %s", formatAmount(summary.MedianLoss)),
		fmt.Sprintf("VaR(95%%): %s", formatAmount(summary.VaR95)),
		fmt.Sprintf("ES(95%%): %s", formatAmount(summary.ES95)),
	}
}

func (h reportServiceHandler) Render(title string, summary domain.SimulationSummary, topRisks []domain.ScoredRisk) string {
	sb := strings.Builder{}
	sb.WriteString(title + "\n")
	sb.WriteString(strings.Repeat("=", len(title)) + "\n\n")

	for _, line := range h.SummaryLines(summary) {
		sb.WriteString(line + "\n")
	}
	sb.WriteString(fmt.Sprintf("Std dev: %s\n", formatAmount(summary.StdLoss)))

	sb.WriteString("\nPercentiles\n")
	for _, p := range domain.SummaryPercentiles {
		v, ok := summary.Percentiles[p]
		if !ok {
			continue
		}
		sb.WriteString(fmt.Sprintf("  p%d: %s\n", p, formatAmount(v)))
	}

	if len(topRisks) > 0 {
		sb.WriteString(fmt.Sprintf("\nTop %d risks\n", len(topRisks)))
		for i, r := range topRisks {
			sb.WriteString(fmt.Sprintf("  %d. %s - %s (score %d, %s)\n", i+1, r.Category, r.Description, r.Score, r.Level))
		}
	}

	return sb.String()
}
