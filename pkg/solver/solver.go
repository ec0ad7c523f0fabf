package solver

import (
	"context"
	"errors"
	"math/rand"
	"time"

	"github.com/MarquinhoCF/alwabp-solver/pkg/alwabp"
	"github.com/MarquinhoCF/alwabp-solver/pkg/observability"
)

// StopReason identifies why a run ended.
type StopReason string

const (
	StopIterations   StopReason = "iterations"    // iteration cap reached
	StopTime         StopReason = "time"          // wall-clock budget exhausted
	StopOptimal      StopReason = "optimal"       // known optimum matched within tolerance
	StopRestartLimit StopReason = "restart-limit" // too many full restarts
	StopContext      StopReason = "context"       // caller cancelled
)

// Solver controller tunables that are structural rather than per-run
// options: perturbation strength bounds and the restart budget.
const (
	initialStrength = 2
	restartStrength = 3
	maxStrength     = 5
	maxRestarts     = 5

	// adaptiveWarmup and adaptiveWindow govern the one-shot time budget
	// extension: every adaptiveWindow iterations past the warm-up the
	// recent improvement ratio is inspected.
	adaptiveWarmup    = 100
	adaptiveWindow    = 50
	adaptiveThreshold = 0.1
	adaptiveExtension = 1.2
)

// adaptiveBudget implements the one-shot time extension. Improvements
// are counted per window of adaptiveWindow iterations, starting only
// after the warm-up, and a single extension is granted when a window's
// improvement ratio clears adaptiveThreshold.
type adaptiveBudget struct {
	improvements int
	granted      bool
}

// observe records whether iter improved on the best. Warm-up
// iterations are not counted so the first window is not inflated by
// the cheap early improvements.
func (a *adaptiveBudget) observe(iter int, improved bool) {
	if improved && iter >= adaptiveWarmup {
		a.improvements++
	}
}

// shouldExtend reports whether the extension fires at iter. The window
// counter resets at every window boundary regardless of the outcome.
func (a *adaptiveBudget) shouldExtend(iter int) bool {
	if iter <= adaptiveWarmup || iter%adaptiveWindow != 0 {
		return false
	}
	ratio := float64(a.improvements) / float64(adaptiveWindow)
	a.improvements = 0
	if a.granted || ratio <= adaptiveThreshold {
		return false
	}
	a.granted = true
	return true
}

// Result is the outcome of one ILS run.
type Result struct {
	Best      *Solution
	CycleTime float64

	Iterations    int
	Improvements  int
	AcceptedWorse int
	Restarts      int
	Stop          StopReason
	Duration      time.Duration
}

// Solver runs the iterated local search. Cfg and Rng must both be set;
// use [New] to validate them. A Solver is single-threaded: run
// concurrent searches with separate Solver values and random sources.
type Solver struct {
	Cfg Config
	Rng *rand.Rand
}

// New returns a solver after validating the configuration and random
// source.
func New(cfg Config, rng *rand.Rand) (*Solver, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	if rng == nil {
		return nil, errors.New("solver: nil random source")
	}
	return &Solver{Cfg: cfg, Rng: rng}, nil
}

// Solve runs the full ILS loop on inst and returns the best solution
// found. The returned error is non-nil only when no solution could be
// built at all (infeasible instance) or the context was cancelled before
// the initial solution existed; otherwise the best-so-far is returned
// together with the reason the loop stopped. Callers should still check
// [Solution.IsFeasible] before trusting the result.
//
// Cancellation is cooperative: the context and the time budget are
// polled once per outer iteration, so a running descent always completes
// before the loop can stop.
func (s *Solver) Solve(ctx context.Context, inst *alwabp.Instance) (Result, error) {
	start := time.Now()
	hooks := observability.Search()

	current, err := Construct(inst, s.Rng)
	if err != nil {
		return Result{}, err
	}
	Descend(current)
	best := current.Clone()
	hooks.OnInitial(best.CycleTime())

	res := Result{Stop: StopIterations}
	if s.Cfg.optimalReached(best.CycleTime()) {
		res.Stop = StopOptimal
		return s.finish(res, best, start), nil
	}

	temperature := best.CycleTime() * s.Cfg.InitialTempFactor
	strength := initialStrength
	noImprovement := 0 // accepted iterations since the last new best
	noChange := 0      // iterations since any accepted change
	budget := s.Cfg.MaxTime
	var adaptive adaptiveBudget

	for iter := 0; iter < s.Cfg.MaxIterations; iter++ {
		if ctx.Err() != nil {
			res.Stop = StopContext
			return s.finish(res, best, start), ctx.Err()
		}

		// One-shot adaptive extension: a healthy improvement rate in the
		// recent window buys 20% more wall time over the configured cap.
		if s.Cfg.AdaptiveTimeout && adaptive.shouldExtend(iter) {
			budget = time.Duration(float64(s.Cfg.MaxTime) * adaptiveExtension)
		}
		if time.Since(start) > budget {
			res.Stop = StopTime
			break
		}

		candidate, _ := Perturb(current, strength, s.Rng)
		Descend(candidate)

		improved := candidate.CycleTime() < best.CycleTime()
		adaptive.observe(iter, improved)

		if Accept(current.CycleTime(), candidate.CycleTime(), temperature, s.Rng) {
			current = candidate
			if improved && current.IsFeasible() {
				best = current.Clone()
				res.Improvements++
				noImprovement, noChange = 0, 0
				strength = initialStrength
				hooks.OnImprovement(iter, best.CycleTime())
				if s.Cfg.optimalReached(best.CycleTime()) {
					res.Iterations = iter + 1
					res.Stop = StopOptimal
					return s.finish(res, best, start), nil
				}
			} else {
				res.AcceptedWorse++
				noImprovement++
				noChange++
			}
		} else {
			noChange++
		}

		if noImprovement > s.Cfg.MinImprovement {
			if strength < maxStrength {
				strength++
			}
			noImprovement = 0
			hooks.OnStrengthIncrease(iter, strength)
		}

		if noChange > s.Cfg.MaxStagnation {
			restarted, err := Construct(inst, s.Rng)
			if err != nil {
				// Construction can fail on a pathological worker shuffle;
				// keep the best found so far and stop.
				res.Stop = StopRestartLimit
				break
			}
			Descend(restarted)
			current = restarted
			temperature = best.CycleTime() * s.Cfg.InitialTempFactor
			strength = restartStrength
			noImprovement, noChange = 0, 0
			res.Restarts++
			hooks.OnRestart(iter, res.Restarts)
			if res.Restarts > maxRestarts {
				res.Stop = StopRestartLimit
				break
			}
		}

		temperature *= s.Cfg.CoolingRate
		if temperature < temperatureFloor {
			temperature = best.CycleTime() * s.Cfg.InitialTempFactor
		}

		res.Iterations = iter + 1
		hooks.OnIteration(iter, current.CycleTime(), best.CycleTime(), temperature, strength)
	}

	return s.finish(res, best, start), nil
}

func (s *Solver) finish(res Result, best *Solution, start time.Time) Result {
	res.Best = best
	res.CycleTime = best.CycleTime()
	res.Duration = time.Since(start)
	return res
}
