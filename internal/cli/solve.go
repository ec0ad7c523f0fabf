package cli

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"math/rand"
	"os"
	"time"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/MarquinhoCF/alwabp-solver/pkg/alwabp"
	"github.com/MarquinhoCF/alwabp-solver/pkg/cache"
	"github.com/MarquinhoCF/alwabp-solver/pkg/observability"
	"github.com/MarquinhoCF/alwabp-solver/pkg/report"
	"github.com/MarquinhoCF/alwabp-solver/pkg/solver"
)

// solveCacheTTL is how long solve summaries stay in the local cache.
const solveCacheTTL = 7 * 24 * time.Hour

// solveCommand creates the solve command.
func (c *CLI) solveCommand() *cobra.Command {
	var (
		seed       int64
		paramsPath string
		output     string
		watch      bool
		quiet      bool
		noCache    bool
	)
	defaults := solver.DefaultConfig()
	flagCfg := defaults

	cmd := &cobra.Command{
		Use:   "solve [instance.txt]",
		Short: "Solve one instance with iterated local search",
		Long: `Solve one instance with iterated local search.

The instance is read from the given file, or from stdin when the
argument is "-" or omitted. The search starts from a ranked positional
weight construction, descends with two neighborhoods, and escapes local
optima with randomized perturbations under simulated annealing
acceptance.

Tuning options come from (in increasing precedence) built-in defaults,
a --params TOML file, and individual flags. Results for identical
instance/configuration/seed triples are served from a local cache;
--no-cache forces a fresh run.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			input := "-"
			if len(args) == 1 {
				input = args[0]
			}

			cfg := defaults
			if paramsPath != "" {
				params, err := loadParams(paramsPath)
				if err != nil {
					return err
				}
				params.apply(&cfg)
			}
			applyFlagOverrides(cmd, &cfg, flagCfg)
			if err := cfg.Validate(); err != nil {
				return fmt.Errorf("config: %w", err)
			}

			if !cmd.Flags().Changed("seed") {
				seed = time.Now().UnixNano()
			}

			return c.runSolve(cmd.Context(), solveParams{
				input:   input,
				cfg:     cfg,
				seed:    seed,
				output:  output,
				watch:   watch,
				quiet:   quiet,
				noCache: noCache,
			})
		},
	}

	cmd.Flags().Int64Var(&seed, "seed", 0, "random seed (default: time-based)")
	cmd.Flags().StringVar(&paramsPath, "params", "", "TOML file with tuning parameters")
	cmd.Flags().StringVarP(&output, "output", "o", "", "write the summary as JSON to this file")
	cmd.Flags().BoolVarP(&watch, "watch", "w", false, "show live search progress")
	cmd.Flags().BoolVarP(&quiet, "quiet", "q", false, "suppress the report, print only the cycle time")
	cmd.Flags().BoolVar(&noCache, "no-cache", false, "disable the local result cache")

	cmd.Flags().IntVar(&flagCfg.MaxIterations, "max-iterations", defaults.MaxIterations, "iteration cap")
	cmd.Flags().DurationVar(&flagCfg.MaxTime, "max-time", defaults.MaxTime, "wall-clock budget")
	cmd.Flags().Float64Var(&flagCfg.OptimalValue, "optimal-value", defaults.OptimalValue, "known optimal cycle time for early stopping (0 = unknown)")
	cmd.Flags().Float64Var(&flagCfg.OptimalTolerance, "optimal-tolerance", defaults.OptimalTolerance, "absolute gap at which the optimum counts as reached")
	cmd.Flags().BoolVar(&flagCfg.AdaptiveTimeout, "adaptive-timeout", defaults.AdaptiveTimeout, "extend the budget once while improving quickly")
	cmd.Flags().IntVar(&flagCfg.MinImprovement, "min-improvement", defaults.MinImprovement, "iterations without a new best before the perturbation grows")
	cmd.Flags().IntVar(&flagCfg.MaxStagnation, "max-stagnation", defaults.MaxStagnation, "iterations without any accepted change before a restart")
	cmd.Flags().Float64Var(&flagCfg.CoolingRate, "cooling-rate", defaults.CoolingRate, "per-iteration temperature decay in (0,1)")
	cmd.Flags().Float64Var(&flagCfg.InitialTempFactor, "initial-temp-factor", defaults.InitialTempFactor, "initial temperature as a fraction of the starting cycle time")

	return cmd
}

// applyFlagOverrides copies every explicitly set tuning flag over cfg,
// so flags win over the params file.
func applyFlagOverrides(cmd *cobra.Command, cfg *solver.Config, flagCfg solver.Config) {
	overrides := map[string]func(){
		"max-iterations":      func() { cfg.MaxIterations = flagCfg.MaxIterations },
		"max-time":            func() { cfg.MaxTime = flagCfg.MaxTime },
		"optimal-value":       func() { cfg.OptimalValue = flagCfg.OptimalValue },
		"optimal-tolerance":   func() { cfg.OptimalTolerance = flagCfg.OptimalTolerance },
		"adaptive-timeout":    func() { cfg.AdaptiveTimeout = flagCfg.AdaptiveTimeout },
		"min-improvement":     func() { cfg.MinImprovement = flagCfg.MinImprovement },
		"max-stagnation":      func() { cfg.MaxStagnation = flagCfg.MaxStagnation },
		"cooling-rate":        func() { cfg.CoolingRate = flagCfg.CoolingRate },
		"initial-temp-factor": func() { cfg.InitialTempFactor = flagCfg.InitialTempFactor },
	}
	for name, apply := range overrides {
		if cmd.Flags().Changed(name) {
			apply()
		}
	}
}

type solveParams struct {
	input   string
	cfg     solver.Config
	seed    int64
	output  string
	watch   bool
	quiet   bool
	noCache bool
}

// runSolve reads the instance, consults the cache, runs the search, and
// prints the report.
func (c *CLI) runSolve(ctx context.Context, p solveParams) error {
	data, name, err := readInput(p.input)
	if err != nil {
		return err
	}

	inst, err := alwabp.Read(bytes.NewReader(data))
	if err != nil {
		return fmt.Errorf("parse %s: %w", name, err)
	}
	c.Logger.Debug("parsed instance", "name", name, "tasks", inst.Tasks(), "workers", inst.Workers())

	solutionCache, err := newCache(p.noCache)
	if err != nil {
		return fmt.Errorf("initialize cache: %w", err)
	}
	defer solutionCache.Close()

	key := solveKey(data, p.cfg, p.seed)
	if cached, ok := lookupSummary(ctx, solutionCache, key); ok {
		c.Logger.Debug("cache hit", "key", key)
		return c.printSolve(name, cached, p, true)
	}

	summary, err := c.search(ctx, inst, p, name)
	if err != nil {
		return err
	}

	if encoded, err := json.Marshal(summary); err == nil {
		if err := solutionCache.Set(ctx, key, encoded, solveCacheTTL); err != nil {
			c.Logger.Debug("cache write failed", "err", err)
		}
	}

	return c.printSolve(name, summary, p, false)
}

// search runs the ILS with progress reporting appropriate for the mode.
func (c *CLI) search(ctx context.Context, inst *alwabp.Instance, p solveParams, name string) (report.Summary, error) {
	s, err := solver.New(p.cfg, rand.New(rand.NewSource(p.seed)))
	if err != nil {
		return report.Summary{}, err
	}

	if p.watch {
		res, err := c.runWatch(ctx, s, inst)
		if err != nil {
			return report.Summary{}, err
		}
		return report.Build(res), nil
	}

	observability.SetSearchHooks(&logHooks{logger: c.Logger})
	defer observability.Reset()

	track := newProgress(c.Logger)
	var spinner *Spinner
	if !p.quiet {
		spinner = newSpinnerWithContext(ctx, fmt.Sprintf("Solving %s...", name))
		spinner.Start()
	}

	res, err := s.Solve(ctx, inst)
	if spinner != nil {
		spinner.Stop()
	}
	if err != nil {
		return report.Summary{}, fmt.Errorf("solve %s: %w", name, err)
	}
	track.done(fmt.Sprintf("Solved %s", name))

	return report.Build(res), nil
}

// printSolve renders the result in the requested verbosity.
func (c *CLI) printSolve(name string, summary report.Summary, p solveParams, cached bool) error {
	if p.quiet {
		fmt.Printf("%g\n", summary.CycleTime)
	} else {
		fmt.Println(StyleTitle.Render(name) + "  " +
			StyleDim.Render("cycle time") + " " + StyleNumber.Render(fmt.Sprintf("%g", summary.CycleTime)))
		printRunStats(summary.Iterations, summary.Improvements, cached)
		fmt.Println()
		if err := summary.WriteText(os.Stdout); err != nil {
			return err
		}
	}

	if p.output != "" {
		if err := report.ExportJSON(summary, p.output); err != nil {
			return err
		}
		if !p.quiet {
			printFile(p.output)
		}
	}
	return nil
}

// readInput returns the raw instance bytes and a display name.
func readInput(input string) ([]byte, string, error) {
	if input == "-" {
		data, err := io.ReadAll(os.Stdin)
		if err != nil {
			return nil, "", fmt.Errorf("read stdin: %w", err)
		}
		return data, "stdin", nil
	}
	data, err := os.ReadFile(input)
	if err != nil {
		return nil, "", fmt.Errorf("read %s: %w", input, err)
	}
	return data, input, nil
}

// solveKey derives the cache key from the raw instance bytes, the
// configuration, and the seed.
func solveKey(instance []byte, cfg solver.Config, seed int64) string {
	cfgData, _ := json.Marshal(struct {
		Cfg  solver.Config
		Seed int64
	}{cfg, seed})
	return cache.NewDefaultKeyer().SolutionKey(cache.Hash(instance), cache.Hash(cfgData))
}

// lookupSummary fetches and decodes a cached summary, treating any
// decode problem as a miss.
func lookupSummary(ctx context.Context, c cache.Cache, key string) (report.Summary, bool) {
	data, hit, err := c.Get(ctx, key)
	if err != nil || !hit {
		return report.Summary{}, false
	}
	var summary report.Summary
	if err := json.Unmarshal(data, &summary); err != nil {
		return report.Summary{}, false
	}
	return summary, true
}

// logHooks forwards search events to the debug log.
type logHooks struct {
	logger *log.Logger
}

func (h *logHooks) OnInitial(cycleTime float64) {
	h.logger.Debug("initial solution", "cycle_time", cycleTime)
}

func (h *logHooks) OnIteration(int, float64, float64, float64, int) {}

func (h *logHooks) OnImprovement(iteration int, cycleTime float64) {
	h.logger.Debug("improvement", "iteration", iteration, "cycle_time", cycleTime)
}

func (h *logHooks) OnStrengthIncrease(iteration, strength int) {
	h.logger.Debug("perturbation strength up", "iteration", iteration, "strength", strength)
}

func (h *logHooks) OnRestart(iteration, restartCount int) {
	h.logger.Debug("restart", "iteration", iteration, "count", restartCount)
}
