package solver

import (
	"fmt"
	"time"
)

// Config bundles the search controller options. Zero values are not
// usable - start from [DefaultConfig] and override fields as needed.
type Config struct {
	// MaxIterations caps the number of outer ILS iterations.
	MaxIterations int

	// MaxTime caps wall-clock time. The budget is polled between
	// iterations, so an in-progress descent always finishes first.
	MaxTime time.Duration

	// OptimalValue, when positive, is a known-optimal cycle time that
	// stops the search early once matched within OptimalTolerance.
	// Zero means no known optimum.
	OptimalValue float64

	// OptimalTolerance is the absolute gap at which OptimalValue counts
	// as reached.
	OptimalTolerance float64

	// AdaptiveTimeout extends the time budget by 20% (once) when the
	// recent improvement rate is high.
	AdaptiveTimeout bool

	// MinImprovement is the number of accepted-but-not-improving
	// iterations tolerated before the perturbation strength grows.
	MinImprovement int

	// MaxStagnation is the number of iterations without any accepted
	// change tolerated before a full restart.
	MaxStagnation int

	// CoolingRate is the per-iteration multiplicative temperature decay,
	// in (0, 1).
	CoolingRate float64

	// InitialTempFactor scales the best cycle time into the initial (and
	// reheated) temperature.
	InitialTempFactor float64
}

// DefaultConfig returns the tuned defaults.
func DefaultConfig() Config {
	return Config{
		MaxIterations:     10000,
		MaxTime:           300 * time.Second,
		OptimalValue:      0,
		OptimalTolerance:  0.01,
		AdaptiveTimeout:   true,
		MinImprovement:    50,
		MaxStagnation:     1000,
		CoolingRate:       0.95,
		InitialTempFactor: 0.1,
	}
}

// Validate reports the first invalid option, or nil.
func (c Config) Validate() error {
	if c.MaxIterations <= 0 {
		return fmt.Errorf("MaxIterations must be > 0 (got %d)", c.MaxIterations)
	}
	if c.MaxTime <= 0 {
		return fmt.Errorf("MaxTime must be > 0 (got %s)", c.MaxTime)
	}
	if c.OptimalValue < 0 {
		return fmt.Errorf("OptimalValue must be >= 0 (got %f)", c.OptimalValue)
	}
	if c.OptimalTolerance < 0 {
		return fmt.Errorf("OptimalTolerance must be >= 0 (got %f)", c.OptimalTolerance)
	}
	if c.MinImprovement <= 0 {
		return fmt.Errorf("MinImprovement must be > 0 (got %d)", c.MinImprovement)
	}
	if c.MaxStagnation <= 0 {
		return fmt.Errorf("MaxStagnation must be > 0 (got %d)", c.MaxStagnation)
	}
	if c.CoolingRate <= 0 || c.CoolingRate >= 1 {
		return fmt.Errorf("CoolingRate must be in (0,1) (got %f)", c.CoolingRate)
	}
	if c.InitialTempFactor <= 0 {
		return fmt.Errorf("InitialTempFactor must be > 0 (got %f)", c.InitialTempFactor)
	}
	return nil
}

// optimalReached reports whether cycleTime matches the known optimum
// within tolerance. Always false when no optimum is configured.
func (c Config) optimalReached(cycleTime float64) bool {
	if c.OptimalValue <= 0 {
		return false
	}
	diff := cycleTime - c.OptimalValue
	if diff < 0 {
		diff = -diff
	}
	return diff <= c.OptimalTolerance
}
