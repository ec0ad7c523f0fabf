package cli

import (
	"fmt"
	"math/rand"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/MarquinhoCF/alwabp-solver/pkg/alwabp"
)

// generateCommand creates the generate command for random instances.
func (c *CLI) generateCommand() *cobra.Command {
	opts := alwabp.RandomOptions{
		Tasks:         20,
		Workers:       4,
		MinTime:       1,
		MaxTime:       99,
		IncapableRate: 0.1,
		EdgeRate:      0.15,
	}
	var (
		seed   int64
		output string
	)

	cmd := &cobra.Command{
		Use:   "generate",
		Short: "Generate a random instance",
		Long: `Generate a random instance.

Durations are drawn uniformly from [min-time, max-time]; each
task/worker pair is marked incapable with the given rate (every task
keeps at least one capable worker), and forward-only precedence edges
are sampled so the graph stays acyclic. The instance is written in the
standard text format, to stdout or to --output.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if !cmd.Flags().Changed("seed") {
				seed = time.Now().UnixNano()
			}
			inst := alwabp.Random(opts, rand.New(rand.NewSource(seed)))

			if output == "" {
				return alwabp.Write(inst, os.Stdout)
			}
			if err := alwabp.WriteFile(inst, output); err != nil {
				return err
			}
			printSuccess("Generated instance")
			printKeyValue("Tasks", fmt.Sprintf("%d", opts.Tasks))
			printKeyValue("Workers", fmt.Sprintf("%d", opts.Workers))
			printKeyValue("Seed", fmt.Sprintf("%d", seed))
			printFile(output)
			return nil
		},
	}

	cmd.Flags().IntVar(&opts.Tasks, "tasks", opts.Tasks, "number of tasks")
	cmd.Flags().IntVar(&opts.Workers, "workers", opts.Workers, "number of workers (= stations)")
	cmd.Flags().IntVar(&opts.MinTime, "min-time", opts.MinTime, "minimum task duration")
	cmd.Flags().IntVar(&opts.MaxTime, "max-time", opts.MaxTime, "maximum task duration")
	cmd.Flags().Float64Var(&opts.IncapableRate, "incapable-rate", opts.IncapableRate, "probability a worker cannot perform a task")
	cmd.Flags().Float64Var(&opts.EdgeRate, "edge-rate", opts.EdgeRate, "probability of a precedence edge between task pairs")
	cmd.Flags().Int64Var(&seed, "seed", 0, "random seed (default: time-based)")
	cmd.Flags().StringVarP(&output, "output", "o", "", "output file (default: stdout)")

	return cmd
}
