package api

import (
	"context"
	"errors"
	"fmt"
	"math"
	"riskmodel/internal/calculator"
	"riskmodel/internal/domain"
	"strconv"

	"github.com/gin-gonic/gin"
)

type simulateRequestRisk struct {
	Category    string   `json:"category"`
	Description string   `json:"description"`
	Probability *float64 `json:"probability" binding:"required"`
	Impact      *float64 `json:"impact" binding:"required"`
}

type simulateRequest struct {
	Risks         []simulateRequestRisk `json:"risks" binding:"dive"`
	Trials        *int                  `json:"trials" binding:"omitempty,lte=1000000"`
	BaseExposure  *float64              `json:"baseExposure"`
	Seed          *int64                `json:"seed"`
	Workers       *int                  `json:"workers" binding:"omitempty,gte=0,lte=64"`
	HistogramBins *int                  `json:"histogramBins" binding:"omitempty,gt=0,lte=1000"`
	IncludeLosses bool                  `json:"includeLosses"`
	// extra percentile levels on top of the summary's fixed ones
	Percentiles []float64 `json:"percentiles" binding:"omitempty,max=20,dive,gte=0,lte=100"`
}

type simulateResponse struct {
	RunID        string                   `json:"runID"`
	Summary      domain.SimulationSummary `json:"summary"`
	SummaryLines []string                 `json:"summaryLines"`
	Histogram    []domain.HistogramBin    `json:"histogram"`
	Percentiles  map[string]float64       `json:"percentiles,omitempty"`
	Losses       []float64                `json:"losses,omitempty"`
	Profile      *domain.Profile          `json:"profile"`
}

// toSimulation fills in whatever the request left out from the configured
// defaults
func (m ApiHandler) toSimulation(req simulateRequest) (domain.SimulationConfig, int, int) {
	cfg := m.Config.Simulation.ToSimulationConfig()
	if req.Trials != nil {
		cfg.Trials = *req.Trials
	}
	if req.BaseExposure != nil {
		cfg.BaseExposure = *req.BaseExposure
	}
	if req.Seed != nil {
		cfg.Seed = *req.Seed
	}

	workers := m.Config.Simulation.Workers
	if req.Workers != nil {
		workers = *req.Workers
	}
	bins := m.Config.HistogramBins
	if req.HistogramBins != nil {
		bins = *req.HistogramBins
	}
	return cfg, workers, bins
}

func summaryIsFinite(s domain.SimulationSummary) bool {
	values := []float64{s.MeanLoss, s.MedianLoss, s.StdLoss, s.VaR95, s.ES95}
	for _, v := range s.Percentiles {
		values = append(values, v)
	}
	for _, v := range values {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return false
		}
	}
	return true
}

func (m ApiHandler) simulate(c *gin.Context) {
	var requestBody simulateRequest
	if err := c.ShouldBindJSON(&requestBody); err != nil {
		returnErrorJsonCode(fmt.Errorf("failed to read request body: %w", err), c, 400)
		return
	}

	items := make([]domain.RiskItem, 0, len(requestBody.Risks))
	for _, r := range requestBody.Risks {
		items = append(items, domain.RiskItem{
			Category:    r.Category,
			Description: r.Description,
			Probability: *r.Probability,
			Impact:      *r.Impact,
		})
	}

	cfg, workers, bins := m.toSimulation(requestBody)

	profile, endProfile := domain.NewProfile()
	ctx := context.WithValue(requestContext(c), domain.ContextProfileKey, profile)

	result, err := m.SimulationService.Run(ctx, items, cfg, workers)
	if err != nil {
		if errors.Is(err, domain.ErrInvalidConfig) {
			returnErrorJsonCode(err, c, 400)
			return
		}
		returnErrorJson(err, c)
		return
	}

	// JSON has no representation for NaN/Inf
	if !summaryIsFinite(result.Summary) {
		returnErrorJsonCode(fmt.Errorf("simulation produced non-finite losses; check ratings and exposure"), c, 422)
		return
	}

	profile.StartStage("summarize")
	histogram, err := calculator.Histogram(result.Losses, bins)
	if err != nil {
		returnErrorJson(err, c)
		return
	}

	var percentiles map[string]float64
	if len(requestBody.Percentiles) > 0 {
		percentiles = map[string]float64{}
		for _, p := range requestBody.Percentiles {
			v, err := calculator.Percentile(result.Losses, p)
			if err != nil {
				returnErrorJsonCode(err, c, 400)
				return
			}
			percentiles[strconv.FormatFloat(p, 'f', -1, 64)] = v
		}
	}
	endProfile()

	out := simulateResponse{
		RunID:        result.RunID.String(),
		Summary:      result.Summary,
		SummaryLines: m.ReportService.SummaryLines(result.Summary),
		Histogram:    histogram,
		Percentiles:  percentiles,
		Profile:      profile,
	}
	if requestBody.IncludeLosses {
		out.Losses = result.Losses
	}

	c.JSON(200, out)
}
