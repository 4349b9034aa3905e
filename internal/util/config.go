package util

import (
	"errors"
	"fmt"
	"riskmodel/internal/domain"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/spf13/viper"
)

type Config struct {
	// RISK_ENV; "dev" switches the logger to its development config
	Env             string             `mapstructure:"env"`
	Port            int                `mapstructure:"port" validate:"gt=0,lte=65535"`
	CatalogPath     string             `mapstructure:"catalog_path" validate:"required"`
	OutputDir       string             `mapstructure:"output_dir" validate:"required"`
	ScoreExpression string             `mapstructure:"score_expression" validate:"required"`
	HistogramBins   int                `mapstructure:"histogram_bins" validate:"gt=0"`
	TopN            int                `mapstructure:"top_n" validate:"gt=0"`
	Simulation      SimulationDefaults `mapstructure:"simulation"`
}

// SimulationDefaults are used whenever a caller does not provide its own
// simulation parameters
type SimulationDefaults struct {
	Trials       int     `mapstructure:"trials" validate:"gt=0"`
	BaseExposure float64 `mapstructure:"base_exposure" validate:"gt=0"`
	Seed         int64   `mapstructure:"seed"`
	// <= 1 runs the sequential simulator
	Workers int `mapstructure:"workers" validate:"gte=0"`
}

func (s SimulationDefaults) ToSimulationConfig() domain.SimulationConfig {
	return domain.SimulationConfig{
		Trials:       s.Trials,
		BaseExposure: s.BaseExposure,
		Seed:         s.Seed,
	}
}

const envPrefix = "RISK"

func setDefaults(v *viper.Viper) {
	v.SetDefault("env", "")
	v.SetDefault("port", 3009)
	v.SetDefault("catalog_path", "data/risks.csv")
	v.SetDefault("output_dir", "outputs")
	v.SetDefault("score_expression", "probability * impact")
	v.SetDefault("histogram_bins", 80)
	v.SetDefault("top_n", 10)
	v.SetDefault("simulation.trials", 10000)
	v.SetDefault("simulation.base_exposure", 1_000_000.0)
	v.SetDefault("simulation.seed", 42)
	v.SetDefault("simulation.workers", 0)
}

// LoadConfig reads riskmodel.yaml from the working directory or ./config
// (or configFile when set), then applies RISK_* environment overrides,
// e.g. RISK_SIMULATION_TRIALS. A missing config file is not an error.
func LoadConfig(configFile string) (*Config, error) {
	v := viper.New()
	setDefaults(v)

	if configFile != "" {
		v.SetConfigFile(configFile)
	} else {
		v.SetConfigName("riskmodel")
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
		v.AddConfigPath("./config")
	}

	v.SetEnvPrefix(envPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if configFile != "" || !errors.As(err, &notFound) {
			return nil, fmt.Errorf("failed to read config: %w", err)
		}
	}

	cfg := Config{}
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	if err := validator.New().Struct(cfg); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	return &cfg, nil
}
