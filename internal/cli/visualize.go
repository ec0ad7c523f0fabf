package cli

import (
	"context"
	"fmt"
	"math/rand"
	"os"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/MarquinhoCF/alwabp-solver/pkg/alwabp"
	apperrors "github.com/MarquinhoCF/alwabp-solver/pkg/errors"
	"github.com/MarquinhoCF/alwabp-solver/pkg/solver"
	"github.com/MarquinhoCF/alwabp-solver/pkg/viz"
)

// visualizeFormats are the accepted --format values.
var visualizeFormats = []string{"svg", "png", "dot"}

// visualizeCommand creates the visualize command for precedence graphs.
func (c *CLI) visualizeCommand() *cobra.Command {
	var (
		output   string
		format   string
		detailed bool
		solved   bool
		seed     int64
	)

	cmd := &cobra.Command{
		Use:   "visualize instance.txt",
		Short: "Render an instance's precedence graph",
		Long: `Render an instance's precedence graph.

By default the graph shows tasks and precedence edges. With --detailed,
task labels include the per-worker durations. With --solved, a quick
search runs first and tasks are grouped into station clusters labeled
with the assigned worker and load.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if !validFormat(format) {
				return apperrors.New(apperrors.ErrCodeUnsupported, "unknown format %q (want one of %s)", format, strings.Join(visualizeFormats, ", "))
			}
			return c.runVisualize(cmd.Context(), args[0], visualizeParams{
				output:   output,
				format:   format,
				detailed: detailed,
				solved:   solved,
				seed:     seed,
			})
		},
	}

	cmd.Flags().StringVarP(&output, "output", "o", "", "output file (default: instance path with the format extension)")
	cmd.Flags().StringVarP(&format, "format", "f", "svg", "output format: svg, png, dot")
	cmd.Flags().BoolVar(&detailed, "detailed", false, "include per-worker durations in task labels")
	cmd.Flags().BoolVar(&solved, "solved", false, "solve first and group tasks by station")
	cmd.Flags().Int64Var(&seed, "seed", 1, "random seed for --solved")

	return cmd
}

func validFormat(format string) bool {
	for _, f := range visualizeFormats {
		if f == format {
			return true
		}
	}
	return false
}

type visualizeParams struct {
	output   string
	format   string
	detailed bool
	solved   bool
	seed     int64
}

// runVisualize loads the instance, optionally solves it, and writes the
// rendered graph.
func (c *CLI) runVisualize(ctx context.Context, input string, p visualizeParams) error {
	inst, err := alwabp.ReadFile(input)
	if err != nil {
		return err
	}

	opts := viz.Options{Detailed: p.detailed}
	if p.solved {
		cfg := solver.DefaultConfig()
		cfg.MaxIterations = 1000
		cfg.MaxTime = 10 * time.Second

		track := newProgress(loggerFromContext(ctx))
		s, err := solver.New(cfg, rand.New(rand.NewSource(p.seed)))
		if err != nil {
			return err
		}
		res, err := s.Solve(ctx, inst)
		if err != nil {
			return fmt.Errorf("solve %s: %w", input, err)
		}
		track.done(fmt.Sprintf("Solved %s (cycle time %g)", input, res.CycleTime))
		opts.Solution = res.Best
	}

	dot := viz.ToDOT(inst, opts)

	var data []byte
	switch p.format {
	case "dot":
		data = []byte(dot)
	case "svg":
		data, err = viz.RenderSVG(dot)
	case "png":
		data, err = viz.RenderPNG(dot)
	}
	if err != nil {
		return fmt.Errorf("render %s: %w", p.format, err)
	}

	output := p.output
	if output == "" {
		output = strings.TrimSuffix(input, ".txt") + "." + p.format
	}
	if err := os.WriteFile(output, data, 0o644); err != nil {
		return fmt.Errorf("write %s: %w", output, err)
	}

	printSuccess("Rendered %s", input)
	printFile(output)
	return nil
}
