package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/MarquinhoCF/alwabp-solver/pkg/experiment"
	"github.com/MarquinhoCF/alwabp-solver/pkg/solver"
	"github.com/MarquinhoCF/alwabp-solver/pkg/store"
)

// batchCommand creates the batch command for replicated experiments.
func (c *CLI) batchCommand() *cobra.Command {
	var (
		runs       int
		baseSeed   int64
		output     string
		paramsPath string
		mongoURI   string
		mongoDB    string
	)

	cmd := &cobra.Command{
		Use:   "batch manifest.csv",
		Short: "Solve a set of instances with replications",
		Long: `Solve a set of instances with replications.

The manifest is a CSV file with one case per row: a name, the instance
path, and optionally the known optimal cycle time:

	name,path,optimal
	hes_4,instances/heskia_4.txt,316
	ros_1,instances/roszieg_1.txt,

Each case is solved several times with consecutive seeds; the aggregate
statistics (best/mean/stddev cycle time, gap to the optimum, run times)
are printed and optionally written as CSV. With --mongo, every
individual run is archived for later inspection.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg := solver.DefaultConfig()
			if paramsPath != "" {
				params, err := loadParams(paramsPath)
				if err != nil {
					return err
				}
				params.apply(&cfg)
			}
			return c.runBatch(cmd.Context(), args[0], batchParams{
				runs:     runs,
				baseSeed: baseSeed,
				cfg:      cfg,
				output:   output,
				mongoURI: mongoURI,
				mongoDB:  mongoDB,
			})
		},
	}

	cmd.Flags().IntVar(&runs, "runs", experiment.DefaultRuns, "replications per case")
	cmd.Flags().Int64Var(&baseSeed, "base-seed", experiment.DefaultBaseSeed, "seed of the first replication")
	cmd.Flags().StringVarP(&output, "output", "o", "", "write aggregate results to this CSV file")
	cmd.Flags().StringVar(&paramsPath, "params", "", "TOML file with tuning parameters")
	cmd.Flags().StringVar(&mongoURI, "mongo", "", "MongoDB URI for archiving individual runs")
	cmd.Flags().StringVar(&mongoDB, "mongo-db", appName, "MongoDB database name")

	return cmd
}

type batchParams struct {
	runs     int
	baseSeed int64
	cfg      solver.Config
	output   string
	mongoURI string
	mongoDB  string
}

// runBatch loads the manifest and solves every case.
func (c *CLI) runBatch(ctx context.Context, manifestPath string, p batchParams) error {
	cases, err := experiment.LoadManifest(manifestPath)
	if err != nil {
		return err
	}
	if len(cases) == 0 {
		printWarning("Manifest %s holds no cases", manifestPath)
		return nil
	}

	runner := experiment.Runner{
		Runs:     p.runs,
		BaseSeed: p.baseSeed,
		Config:   p.cfg,
	}
	if p.mongoURI != "" {
		archive, err := store.NewMongoStore(ctx, p.mongoURI, p.mongoDB)
		if err != nil {
			return fmt.Errorf("connect archive: %w", err)
		}
		defer archive.Close(context.Background())
		runner.Store = archive
		c.Logger.Info("archiving runs", "db", p.mongoDB)
	}

	printInfo("Solving %d cases, %d replications each", len(cases), runner.Runs)

	records := make([]experiment.Record, 0, len(cases))
	for _, cs := range cases {
		track := newProgress(c.Logger)
		rec, err := runner.RunCase(ctx, cs)
		if err != nil {
			return err
		}
		track.done(fmt.Sprintf("Solved %s", StyleHighlight.Render(cs.Name)))
		records = append(records, rec)
		printRecord(rec)
	}

	if p.output != "" {
		if err := experiment.WriteCSV(p.output, records); err != nil {
			return fmt.Errorf("write results: %w", err)
		}
		printFile(p.output)
	}

	printSuccess("Completed %d cases", len(records))
	return nil
}

// printRecord prints one aggregate result line.
func printRecord(r experiment.Record) {
	line := fmt.Sprintf("%s  best %g  mean %.2f  std %.2f", r.Name, r.CycleBest, r.CycleMean, r.CycleStd)
	if r.GapPct >= 0 {
		line += fmt.Sprintf("  gap %.2f%%", r.GapPct)
	}
	printDetail("%s", line)
}
