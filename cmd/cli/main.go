package main

import (
	"context"
	"fmt"
	"os"
	"riskmodel/cmd"
	"riskmodel/internal/app"
	"riskmodel/internal/logger"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
)

type runFlags struct {
	catalog  string
	out      string
	trials   int
	exposure float64
	seed     int64
	workers  int
	bins     int
	top      int
	title    string
}

func (f *runFlags) register(fs *pflag.FlagSet) {
	fs.StringVar(&f.catalog, "catalog", "", "risk catalog csv")
	fs.StringVar(&f.out, "out", "", "output directory")
	fs.IntVar(&f.trials, "trials", 0, "number of simulated trials")
	fs.Float64Var(&f.exposure, "exposure", 0, "base exposure")
	fs.Int64Var(&f.seed, "seed", 0, "random seed")
	fs.IntVar(&f.workers, "workers", 0, "parallel workers, <= 1 runs sequentially")
	fs.IntVar(&f.bins, "bins", 0, "loss histogram bins")
	fs.IntVar(&f.top, "top", 0, "number of top risks in the report")
	fs.StringVar(&f.title, "title", app.DefaultReportTitle, "report title")
}

// toRunInput starts from the loaded config and applies only the flags the
// user actually set
func (f *runFlags) toRunInput(fs *pflag.FlagSet, deps *cmd.Dependencies) app.RunInput {
	cfg := deps.Config
	in := app.RunInput{
		CatalogPath:   cfg.CatalogPath,
		OutputDir:     cfg.OutputDir,
		Simulation:    cfg.Simulation.ToSimulationConfig(),
		Workers:       cfg.Simulation.Workers,
		HistogramBins: cfg.HistogramBins,
		TopN:          cfg.TopN,
		ReportTitle:   f.title,
	}
	if fs.Changed("catalog") {
		in.CatalogPath = f.catalog
	}
	if fs.Changed("out") {
		in.OutputDir = f.out
	}
	if fs.Changed("trials") {
		in.Simulation.Trials = f.trials
	}
	if fs.Changed("exposure") {
		in.Simulation.BaseExposure = f.exposure
	}
	if fs.Changed("seed") {
		in.Simulation.Seed = f.seed
	}
	if fs.Changed("workers") {
		in.Workers = f.workers
	}
	if fs.Changed("bins") {
		in.HistogramBins = f.bins
	}
	if fs.Changed("top") {
		in.TopN = f.top
	}
	return in
}

func newRootCmd() *cobra.Command {
	var configFile string

	root := &cobra.Command{
		Use:           "riskmodel",
		Short:         "Score a risk catalog and simulate portfolio losses",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.PersistentFlags().StringVar(&configFile, "config", "", "config file (default riskmodel.yaml)")

	runOpts := &runFlags{}
	runCmd := &cobra.Command{
		Use:   "run",
		Short: "Score, simulate and write every output",
		RunE: func(c *cobra.Command, args []string) error {
			deps, err := cmd.InitializeDependencies(configFile)
			if err != nil {
				return err
			}
			ctx := logger.WithLogger(c.Context(), deps.ApiHandler.Logger)

			result, err := deps.RiskModelApp.Run(ctx, runOpts.toRunInput(c.Flags(), deps))
			if err != nil {
				return err
			}
			fmt.Fprint(c.OutOrStdout(), result.Report)
			for _, p := range result.OutputPaths {
				fmt.Fprintf(c.OutOrStdout(), "wrote %s\n", p)
			}
			return nil
		},
	}
	runOpts.register(runCmd.Flags())

	simOpts := &runFlags{}
	simulateCmd := &cobra.Command{
		Use:   "simulate",
		Short: "Simulate losses and print the summary without writing outputs",
		RunE: func(c *cobra.Command, args []string) error {
			deps, err := cmd.InitializeDependencies(configFile)
			if err != nil {
				return err
			}
			ctx := logger.WithLogger(c.Context(), deps.ApiHandler.Logger)

			in := simOpts.toRunInput(c.Flags(), deps)
			in.OutputDir = ""
			result, err := deps.RiskModelApp.Run(ctx, in)
			if err != nil {
				return err
			}
			for _, line := range deps.ApiHandler.ReportService.SummaryLines(result.Summary) {
				fmt.Fprintln(c.OutOrStdout(), line)
			}
			return nil
		},
	}
	simOpts.register(simulateCmd.Flags())
	simulateCmd.Flags().MarkHidden("out")

	var port int
	serveCmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the scoring and simulation api",
		RunE: func(c *cobra.Command, args []string) error {
			deps, err := cmd.InitializeDependencies(configFile)
			if err != nil {
				return err
			}
			if c.Flags().Changed("port") {
				deps.Config.Port = port
			}
			deps.ApiHandler.Logger.Infof("starting api on port %d", deps.Config.Port)
			return deps.ApiHandler.StartApi(deps.Config.Port)
		},
	}
	serveCmd.Flags().IntVar(&port, "port", 0, "listen port")

	root.AddCommand(runCmd, simulateCmd, serveCmd)
	return root
}

func main() {
	if err := newRootCmd().ExecuteContext(context.Background()); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
