package cli

import (
	"fmt"
	"time"

	"github.com/BurntSushi/toml"

	"github.com/MarquinhoCF/alwabp-solver/pkg/solver"
)

// Params mirrors the tunable solver options for TOML parameter files.
// Absent keys keep their defaults, so a file can override a single knob:
//
//	cooling_rate = 0.9
//	max_stagnation = 500
type Params struct {
	MaxIterations     *int     `toml:"max_iterations"`
	MaxTimeSeconds    *float64 `toml:"max_time_seconds"`
	OptimalValue      *float64 `toml:"optimal_value"`
	OptimalTolerance  *float64 `toml:"optimal_tolerance"`
	AdaptiveTimeout   *bool    `toml:"adaptive_timeout"`
	MinImprovement    *int     `toml:"min_improvement"`
	MaxStagnation     *int     `toml:"max_stagnation"`
	CoolingRate       *float64 `toml:"cooling_rate"`
	InitialTempFactor *float64 `toml:"initial_temp_factor"`
}

// loadParams reads a TOML parameter file. Unknown keys are rejected so
// typos fail loudly instead of silently keeping a default.
func loadParams(path string) (Params, error) {
	var p Params
	md, err := toml.DecodeFile(path, &p)
	if err != nil {
		return Params{}, fmt.Errorf("params %s: %w", path, err)
	}
	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		return Params{}, fmt.Errorf("params %s: unknown key %q", path, undecoded[0].String())
	}
	return p, nil
}

// apply overrides cfg with every option the file sets.
func (p Params) apply(cfg *solver.Config) {
	if p.MaxIterations != nil {
		cfg.MaxIterations = *p.MaxIterations
	}
	if p.MaxTimeSeconds != nil {
		cfg.MaxTime = time.Duration(*p.MaxTimeSeconds * float64(time.Second))
	}
	if p.OptimalValue != nil {
		cfg.OptimalValue = *p.OptimalValue
	}
	if p.OptimalTolerance != nil {
		cfg.OptimalTolerance = *p.OptimalTolerance
	}
	if p.AdaptiveTimeout != nil {
		cfg.AdaptiveTimeout = *p.AdaptiveTimeout
	}
	if p.MinImprovement != nil {
		cfg.MinImprovement = *p.MinImprovement
	}
	if p.MaxStagnation != nil {
		cfg.MaxStagnation = *p.MaxStagnation
	}
	if p.CoolingRate != nil {
		cfg.CoolingRate = *p.CoolingRate
	}
	if p.InitialTempFactor != nil {
		cfg.InitialTempFactor = *p.InitialTempFactor
	}
}
