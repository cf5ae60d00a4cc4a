package cmd

import (
	"fmt"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/schollz/progressbar/v3"
	"github.com/spf13/cobra"

	"github.com/isaacvp2/pokerproj/dataset"
)

type datasetFlags struct {
	simulations, trials int
	out                 string
	dbDriver, dbDSN     string
	seed                int64
	quiet               bool
}

func newDatasetCmd(a *app) *cobra.Command {
	f := &datasetFlags{}
	cmd := &cobra.Command{
		Use:     "dataset",
		Short:   "Generate random scenarios with their estimated odds",
		Example: "  pokerproj dataset --simulations 1000 --trials 500 --out odds.csv --db-driver sqlite --db-dsn odds.db",
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return a.runDataset(cmd, f)
		},
	}
	fl := cmd.Flags()
	fl.IntVar(&f.simulations, "simulations", 0, "scenarios to generate (overrides POKER_DATASET_SIMULATIONS)")
	fl.IntVar(&f.trials, "trials", 0, "trials per scenario (overrides POKER_DATASET_TRIALS)")
	fl.StringVar(&f.out, "out", "", "CSV output path (overrides POKER_DATASET_OUTPUT)")
	fl.StringVar(&f.dbDriver, "db-driver", "", "sqlite or pgx (overrides POKER_DATASET_DB_DRIVER)")
	fl.StringVar(&f.dbDSN, "db-dsn", "", "database connection string (overrides POKER_DATASET_DB_DSN)")
	fl.Int64Var(&f.seed, "seed", 0, "random seed (overrides POKER_SEED)")
	fl.BoolVar(&f.quiet, "quiet", false, "hide the progress bar")
	return cmd
}

func (a *app) runDataset(cmd *cobra.Command, f *datasetFlags) error {
	ds := &a.cfg.Dataset
	fl := cmd.Flags()
	if fl.Changed("simulations") {
		ds.Simulations = f.simulations
	}
	if fl.Changed("trials") {
		ds.Trials = f.trials
	}
	if fl.Changed("out") {
		ds.Output = f.out
	}
	if fl.Changed("db-driver") {
		ds.DBDriver = f.dbDriver
	}
	if fl.Changed("db-dsn") {
		ds.DBDSN = f.dbDSN
	}
	if fl.Changed("seed") {
		a.cfg.Seed = f.seed
	}
	if err := a.cfg.Validate(); err != nil {
		return err
	}
	stages, err := ds.Stages()
	if err != nil {
		return err
	}

	ctx := cmd.Context()
	var sinks []dataset.Sink
	if ds.Output != "" {
		s, err := dataset.NewCSVSink(ds.Output)
		if err != nil {
			return err
		}
		sinks = append(sinks, s)
	}
	if ds.DBDriver != "" {
		s, err := dataset.OpenSQLSink(ctx, ds.DBDriver, ds.DBDSN)
		if err != nil {
			dataset.CloseAll(sinks...)
			return err
		}
		sinks = append(sinks, s)
	}
	if len(sinks) == 0 {
		a.logger.Warn("no output configured, records are discarded")
	}

	seed := a.cfg.RandSeed()
	gen, err := dataset.NewGenerator(dataset.Config{
		Simulations:  ds.Simulations,
		Trials:       ds.Trials,
		StageWeights: stages,
		Seed:         seed,
	}, a.logger, sinks...)
	if err != nil {
		dataset.CloseAll(sinks...)
		return err
	}
	a.logger.Info("generating dataset", "run", gen.RunID(), "seed", seed, "output", ds.Output, "db", ds.DBDriver)

	bar := progressbar.NewOptions(ds.Simulations,
		progressbar.OptionSetWriter(cmd.ErrOrStderr()),
		progressbar.OptionSetDescription("simulating"),
		progressbar.OptionShowCount(),
		progressbar.OptionSetVisibility(!f.quiet),
		progressbar.OptionThrottle(100*time.Millisecond),
	)
	gen.OnRecord(func(dataset.Record) { bar.Add(1) })

	summary, runErr := gen.Run(ctx)
	bar.Finish()
	if err := dataset.CloseAll(sinks...); err != nil && runErr == nil {
		runErr = err
	}
	if runErr != nil {
		a.logger.Error("dataset run stopped", "written", summary.Simulations, "error", runErr)
		return runErr
	}

	_, err = fmt.Fprintf(cmd.OutOrStdout(), "Generated %s scenarios (%s trials each) in %s\n",
		humanize.Comma(int64(summary.Simulations)),
		humanize.Comma(int64(ds.Trials)),
		summary.Elapsed.Round(time.Millisecond))
	return err
}
