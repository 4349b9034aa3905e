package api

import (
	"fmt"
	"riskmodel/internal/domain"

	"github.com/gin-gonic/gin"
)

type scoreRequestRisk struct {
	Category    string `json:"category"`
	Description string `json:"description"`
	// numbers or strings; anything unparseable scores as 0
	Probability interface{} `json:"probability"`
	Impact      interface{} `json:"impact"`
}

type scoreRequest struct {
	Risks []scoreRequestRisk `json:"risks"`
	TopN  *int               `json:"topN" binding:"omitempty,gte=0"`
}

type scoreResponse struct {
	TotalRisks int `json:"totalRisks"`
	// nil and empty when there is nothing to score
	MaxScore    *int                `json:"maxScore"`
	TopCategory string              `json:"topCategory"`
	Risks       []domain.ScoredRisk `json:"risks"`
	TopRisks    []domain.ScoredRisk `json:"topRisks"`
}

func ratingString(v interface{}) string {
	if v == nil {
		return ""
	}
	return fmt.Sprint(v)
}

func (m ApiHandler) score(c *gin.Context) {
	var requestBody scoreRequest
	if err := c.ShouldBindJSON(&requestBody); err != nil {
		returnErrorJsonCode(fmt.Errorf("failed to read request body: %w", err), c, 400)
		return
	}

	records := make([]domain.RiskRecord, 0, len(requestBody.Risks))
	for _, r := range requestBody.Risks {
		records = append(records, domain.RiskRecord{
			Category:    r.Category,
			Description: r.Description,
			Probability: ratingString(r.Probability),
			Impact:      ratingString(r.Impact),
		})
	}

	scored, err := m.ScoringService.Score(requestContext(c), records)
	if err != nil {
		returnErrorJsonCode(err, c, 400)
		return
	}

	topN := m.Config.TopN
	if requestBody.TopN != nil {
		topN = *requestBody.TopN
	}

	out := scoreResponse{
		TotalRisks: len(scored),
		Risks:      scored,
		TopRisks:   m.ScoringService.TopRisks(scored, topN),
	}
	// scored is ranked, so the first entry holds the max score
	if len(scored) > 0 {
		out.MaxScore = &scored[0].Score
		out.TopCategory = scored[0].Category
	}

	c.JSON(200, out)
}
