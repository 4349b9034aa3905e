package api

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"riskmodel/internal/domain"
	"riskmodel/internal/service"
	"riskmodel/internal/util"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func newTestHandler() ApiHandler {
	gin.SetMode(gin.TestMode)
	return ApiHandler{
		Config: util.Config{
			HistogramBins: 10,
			TopN:          2,
			Simulation: util.SimulationDefaults{
				Trials:       1000,
				BaseExposure: 1_000_000,
				Seed:         42,
			},
		},
		Logger:            zap.NewNop().Sugar(),
		ScoringService:    service.NewScoringService(""),
		SimulationService: service.NewSimulationService(),
		ReportService:     service.NewReportService(),
	}
}

func doRequest(t *testing.T, h ApiHandler, method, path string, body interface{}) *httptest.ResponseRecorder {
	t.Helper()
	var reader *bytes.Reader
	if body == nil {
		reader = bytes.NewReader(nil)
	} else {
		raw, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(raw)
	}
	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	h.InitializeRouterEngine().ServeHTTP(w, req)
	return w
}

func Test_score(t *testing.T) {
	h := newTestHandler()

	t.Run("scores and ranks", func(t *testing.T) {
		w := doRequest(t, h, http.MethodPost, "/score", map[string]interface{}{
			"risks": []map[string]interface{}{
				{"category": "Ops", "description": "Outage", "probability": 2, "impact": "2"},
				{"category": "Credit", "description": "Default", "probability": 4, "impact": 4},
				{"category": "Market", "description": "FX", "probability": "n/a", "impact": 5},
			},
		})
		require.Equal(t, 200, w.Code, w.Body.String())

		out := scoreResponse{}
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &out))
		require.Len(t, out.Risks, 3)

		scores := []int{}
		for _, r := range out.Risks {
			scores = append(scores, r.Score)
		}
		require.Equal(t, "", cmp.Diff([]int{16, 4, 0}, scores))
		require.Equal(t, domain.RiskLevel_Critical, out.Risks[0].Level)
		require.Len(t, out.TopRisks, 2)

		require.Equal(t, 3, out.TotalRisks)
		require.NotNil(t, out.MaxScore)
		require.Equal(t, 16, *out.MaxScore)
		require.Equal(t, "Credit", out.TopCategory)
	})

	t.Run("top n override", func(t *testing.T) {
		w := doRequest(t, h, http.MethodPost, "/score", map[string]interface{}{
			"risks": []map[string]interface{}{
				{"category": "Ops", "probability": 1, "impact": 1},
			},
			"topN": 0,
		})
		require.Equal(t, 200, w.Code)

		out := scoreResponse{}
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &out))
		require.Empty(t, out.TopRisks)
	})

	t.Run("empty catalog", func(t *testing.T) {
		w := doRequest(t, h, http.MethodPost, "/score", map[string]interface{}{
			"risks": []map[string]interface{}{},
		})
		require.Equal(t, 200, w.Code)

		out := scoreResponse{}
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &out))
		require.Equal(t, 0, out.TotalRisks)
		require.Nil(t, out.MaxScore)
		require.Equal(t, "", out.TopCategory)
	})

	t.Run("malformed body", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodPost, "/score", bytes.NewBufferString("{"))
		req.Header.Set("Content-Type", "application/json")
		w := httptest.NewRecorder()
		h.InitializeRouterEngine().ServeHTTP(w, req)
		require.Equal(t, 400, w.Code)
	})
}

func Test_simulate(t *testing.T) {
	h := newTestHandler()
	risks := []map[string]interface{}{
		{"category": "Credit", "description": "Default", "probability": 3, "impact": 5},
		{"category": "Ops", "description": "Outage", "probability": 2, "impact": 2},
	}

	t.Run("uses configured defaults", func(t *testing.T) {
		w := doRequest(t, h, http.MethodPost, "/simulate", map[string]interface{}{
			"risks": risks,
		})
		require.Equal(t, 200, w.Code, w.Body.String())

		out := simulateResponse{}
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &out))
		require.Equal(t, 1000, out.Summary.Trials)
		require.Len(t, out.Histogram, 10)
		require.Empty(t, out.Losses)
		require.Equal(t, "Trials: 1000", out.SummaryLines[0])
		require.GreaterOrEqual(t, out.Summary.ES95, out.Summary.VaR95)
		require.NotEmpty(t, out.RunID)
	})

	t.Run("same seed same summary", func(t *testing.T) {
		body := map[string]interface{}{
			"risks":         risks,
			"trials":        300,
			"seed":          7,
			"includeLosses": true,
		}
		first := simulateResponse{}
		second := simulateResponse{}
		require.NoError(t, json.Unmarshal(doRequest(t, h, http.MethodPost, "/simulate", body).Body.Bytes(), &first))
		require.NoError(t, json.Unmarshal(doRequest(t, h, http.MethodPost, "/simulate", body).Body.Bytes(), &second))

		require.Len(t, first.Losses, 300)
		require.Equal(t, "", cmp.Diff(first.Losses, second.Losses))
		require.Equal(t, "", cmp.Diff(first.Summary, second.Summary))
	})

	t.Run("extra percentiles and profile", func(t *testing.T) {
		w := doRequest(t, h, http.MethodPost, "/simulate", map[string]interface{}{
			"risks":       risks,
			"trials":      400,
			"percentiles": []float64{95, 99.5},
		})
		require.Equal(t, 200, w.Code, w.Body.String())

		out := simulateResponse{}
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &out))
		require.Len(t, out.Percentiles, 2)
		require.Equal(t, out.Summary.VaR95, out.Percentiles["95"])
		require.GreaterOrEqual(t, out.Percentiles["99.5"], out.Percentiles["95"])

		require.NotNil(t, out.Profile)
		require.Equal(t, []string{"simulate", "summarize"}, out.Profile.StageNames())
		require.NotNil(t, out.Profile.TotalMs)
	})

	t.Run("percentile out of range", func(t *testing.T) {
		w := doRequest(t, h, http.MethodPost, "/simulate", map[string]interface{}{
			"risks":       risks,
			"percentiles": []float64{101},
		})
		require.Equal(t, 400, w.Code)
	})

	t.Run("invalid trials", func(t *testing.T) {
		w := doRequest(t, h, http.MethodPost, "/simulate", map[string]interface{}{
			"risks":  risks,
			"trials": 0,
		})
		require.Equal(t, 400, w.Code)
	})

	t.Run("invalid exposure", func(t *testing.T) {
		w := doRequest(t, h, http.MethodPost, "/simulate", map[string]interface{}{
			"risks":        risks,
			"baseExposure": -5,
		})
		require.Equal(t, 400, w.Code)
	})

	t.Run("missing rating", func(t *testing.T) {
		w := doRequest(t, h, http.MethodPost, "/simulate", map[string]interface{}{
			"risks": []map[string]interface{}{
				{"category": "Credit", "probability": 3},
			},
		})
		require.Equal(t, 400, w.Code)
	})

	t.Run("overflowing exposure", func(t *testing.T) {
		w := doRequest(t, h, http.MethodPost, "/simulate", map[string]interface{}{
			"risks": []map[string]interface{}{
				{"category": "Credit", "probability": 5, "impact": 5},
			},
			"baseExposure": 1e308,
		})
		require.Equal(t, 422, w.Code)
	})
}

func Test_root(t *testing.T) {
	h := newTestHandler()
	w := doRequest(t, h, http.MethodGet, "/", nil)
	require.Equal(t, 200, w.Code)

	w = doRequest(t, h, http.MethodGet, "/metrics", nil)
	require.Equal(t, 200, w.Code)
}
