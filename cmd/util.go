package cmd

import (
	"fmt"
	"riskmodel/api"
	"riskmodel/internal/app"
	"riskmodel/internal/logger"
	"riskmodel/internal/metrics"
	"riskmodel/internal/repository"
	"riskmodel/internal/service"
	"riskmodel/internal/util"
)

type Dependencies struct {
	Config       *util.Config
	ApiHandler   *api.ApiHandler
	RiskModelApp app.RiskModelApp
}

func InitializeDependencies(configFile string) (*Dependencies, error) {
	config, err := util.LoadConfig(configFile)
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}

	lg := logger.New(config.Env)
	metrics.InitMetrics()

	riskCatalogRepository := repository.NewRiskCatalogRepository()
	outputRepository := repository.NewOutputRepository()

	scoringService := service.NewScoringService(config.ScoreExpression)
	simulationService := service.NewSimulationService()
	reportService := service.NewReportService()

	riskModelApp := app.NewRiskModelApp(
		riskCatalogRepository,
		outputRepository,
		scoringService,
		simulationService,
		reportService,
	)

	apiHandler := &api.ApiHandler{
		Config:            *config,
		Logger:            lg,
		ScoringService:    scoringService,
		SimulationService: simulationService,
		ReportService:     reportService,
	}

	return &Dependencies{
		Config:       config,
		ApiHandler:   apiHandler,
		RiskModelApp: riskModelApp,
	}, nil
}
