// Package experiment runs solver replications over instance sets and
// aggregates the outcomes.
//
// A [Case] names one instance file (optionally with a known optimal
// cycle time); a [Runner] solves each case several times with
// consecutive seeds and reduces the replications to a [Record] of
// best/mean/stddev statistics. Records can be exported as CSV with
// [WriteCSV] or archived through a [store.Store].
package experiment

import (
	"context"
	"fmt"
	"math/rand"
	"time"

	"github.com/MarquinhoCF/alwabp-solver/pkg/alwabp"
	"github.com/MarquinhoCF/alwabp-solver/pkg/report"
	"github.com/MarquinhoCF/alwabp-solver/pkg/solver"
	"github.com/MarquinhoCF/alwabp-solver/pkg/store"
)

// Defaults matching common experiment setups.
const (
	// DefaultRuns is the number of replications per case.
	DefaultRuns = 5

	// DefaultBaseSeed is the seed of the first replication; later
	// replications use consecutive seeds.
	DefaultBaseSeed = 10
)

// Case is one instance to benchmark.
type Case struct {
	// Name identifies the case in records and run archives.
	Name string

	// Path is the instance file to solve.
	Path string

	// Optimal is the known optimal cycle time, or 0 if unknown.
	// When set it enables early stopping and gap reporting.
	Optimal float64
}

// Record aggregates the replications of one case.
type Record struct {
	Name    string
	Tasks   int
	Workers int
	Runs    int

	CycleBest  float64
	CycleWorst float64
	CycleMean  float64
	CycleStd   float64

	// GapPct is the percent gap of the best cycle time to the known
	// optimum, or -1 when no optimum is known.
	GapPct float64

	TimeBest time.Duration
	TimeMean time.Duration
}

// Runner executes replicated solver runs.
type Runner struct {
	// Runs is the number of replications per case. Zero means [DefaultRuns].
	Runs int

	// BaseSeed seeds the first replication. Zero means [DefaultBaseSeed].
	BaseSeed int64

	// Config is the solver configuration shared by all replications.
	// Its OptimalValue field is overridden per case.
	Config solver.Config

	// Store, when non-nil, receives a run record per replication.
	Store store.Store
}

// RunCase solves one case r.Runs times and aggregates the results.
// The instance file is read once; each replication gets its own seeded
// generator so results are reproducible.
func (r Runner) RunCase(ctx context.Context, c Case) (Record, error) {
	runs := r.Runs
	if runs <= 0 {
		runs = DefaultRuns
	}
	baseSeed := r.BaseSeed
	if baseSeed == 0 {
		baseSeed = DefaultBaseSeed
	}

	inst, err := alwabp.ReadFile(c.Path)
	if err != nil {
		return Record{}, fmt.Errorf("case %s: %w", c.Name, err)
	}

	cfg := r.Config
	cfg.OptimalValue = c.Optimal
	if err := cfg.Validate(); err != nil {
		return Record{}, fmt.Errorf("case %s: %w", c.Name, err)
	}

	cycles := make([]float64, 0, runs)
	times := make([]time.Duration, 0, runs)

	for i := 0; i < runs; i++ {
		seed := baseSeed + int64(i)
		s, err := solver.New(cfg, rand.New(rand.NewSource(seed)))
		if err != nil {
			return Record{}, fmt.Errorf("case %s: %w", c.Name, err)
		}

		res, err := s.Solve(ctx, inst)
		if err != nil {
			return Record{}, fmt.Errorf("case %s seed %d: %w", c.Name, seed, err)
		}

		cycles = append(cycles, res.CycleTime)
		times = append(times, res.Duration)

		if r.Store != nil {
			run := store.NewRun(c.Name, "", seed, report.Build(res))
			if err := r.Store.Insert(ctx, run); err != nil {
				return Record{}, fmt.Errorf("case %s seed %d: archive: %w", c.Name, seed, err)
			}
		}
	}

	cs := CalcStats(cycles)
	var timeSum time.Duration
	timeBest := times[0]
	for _, d := range times {
		timeSum += d
		if d < timeBest {
			timeBest = d
		}
	}

	gap := -1.0
	if c.Optimal > 0 {
		gap = 100 * (cs.Best - c.Optimal) / c.Optimal
	}

	return Record{
		Name:       c.Name,
		Tasks:      inst.Tasks(),
		Workers:    inst.Workers(),
		Runs:       runs,
		CycleBest:  cs.Best,
		CycleWorst: cs.Worst,
		CycleMean:  cs.Mean,
		CycleStd:   cs.Std,
		GapPct:     gap,
		TimeBest:   timeBest,
		TimeMean:   timeSum / time.Duration(runs),
	}, nil
}

// RunAll solves every case in order, stopping at the first error.
func (r Runner) RunAll(ctx context.Context, cases []Case) ([]Record, error) {
	records := make([]Record, 0, len(cases))
	for _, c := range cases {
		rec, err := r.RunCase(ctx, c)
		if err != nil {
			return records, err
		}
		records = append(records, rec)
	}
	return records, nil
}
