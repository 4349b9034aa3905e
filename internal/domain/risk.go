package domain

import (
	"errors"
	"fmt"
)

// MaxRating is the top of the 1-5 analyst rating scale. Ratings are
// normalized against it before simulation.
const MaxRating = 5.0

var ErrInvalidConfig = errors.New("invalid simulation config")

// RiskRecord is a raw row from the risk catalog. Ratings are kept as
// strings so malformed values survive until scoring coerces them.
type RiskRecord struct {
	Category    string `csv:"Category" json:"category"`
	Description string `csv:"Description" json:"description"`
	Probability string `csv:"Probability" json:"probability"`
	Impact      string `csv:"Impact" json:"impact"`
}

// RiskItem is the simulator's view of a risk. Ratings are floats on
// purpose - the simulator does not validate them, so out of range or
// non-finite values flow straight through to the losses.
type RiskItem struct {
	Category    string  `json:"category"`
	Description string  `json:"description"`
	Probability float64 `json:"probability"`
	Impact      float64 `json:"impact"`
}

type RiskLevel string

const (
	RiskLevel_Low      RiskLevel = "Low"
	RiskLevel_Medium   RiskLevel = "Medium"
	RiskLevel_High     RiskLevel = "High"
	RiskLevel_Critical RiskLevel = "Critical"
)

func RiskLevelFromScore(score int) RiskLevel {
	switch {
	case score >= 15:
		return RiskLevel_Critical
	case score >= 9:
		return RiskLevel_High
	case score >= 5:
		return RiskLevel_Medium
	default:
		return RiskLevel_Low
	}
}

type ScoredRisk struct {
	Category    string    `csv:"Category" json:"category"`
	Description string    `csv:"Description" json:"description"`
	Probability int       `csv:"Probability" json:"probability"`
	Impact      int       `csv:"Impact" json:"impact"`
	Score       int       `csv:"Score" json:"score"`
	Level       RiskLevel `csv:"Level" json:"level"`
}

func (s ScoredRisk) ToRiskItem() RiskItem {
	return RiskItem{
		Category:    s.Category,
		Description: s.Description,
		Probability: float64(s.Probability),
		Impact:      float64(s.Impact),
	}
}

func RiskItemsFromScored(scored []ScoredRisk) []RiskItem {
	out := make([]RiskItem, 0, len(scored))
	for _, s := range scored {
		out = append(out, s.ToRiskItem())
	}
	return out
}

type SimulationConfig struct {
	Trials       int     `json:"trials"`
	BaseExposure float64 `json:"baseExposure"`
	Seed         int64   `json:"seed"`
}

// Validate only rejects what would make a run meaningless. NaN exposure
// passes (NaN <= 0 is false) and shows up as NaN losses.
func (c SimulationConfig) Validate() error {
	if c.Trials <= 0 {
		return fmt.Errorf("%w: trials must be positive, got %d", ErrInvalidConfig, c.Trials)
	}
	if c.BaseExposure <= 0 {
		return fmt.Errorf("%w: base exposure must be positive, got %v", ErrInvalidConfig, c.BaseExposure)
	}
	return nil
}

// LossSample holds the aggregate loss of every trial, in trial order.
type LossSample []float64

// SummaryPercentiles are the levels reported in every SimulationSummary.
var SummaryPercentiles = []int{50, 75, 90, 95, 99}

type SimulationSummary struct {
	Trials      int             `json:"trials"`
	MeanLoss    float64         `json:"mean_loss"`
	MedianLoss  float64         `json:"median_loss"`
	StdLoss     float64         `json:"std_loss"`
	Percentiles map[int]float64 `json:"percentiles"`
	VaR95       float64         `json:"VaR_95"`
	ES95        float64         `json:"ES_95"`
}

type HistogramBin struct {
	Lower float64 `json:"lower"`
	Upper float64 `json:"upper"`
	Count int     `json:"count"`
}
