package solver

import (
	"testing"
	"time"
)

func TestConfigValidate(t *testing.T) {
	tests := []struct {
		name   string
		modify func(*Config)
		wantOK bool
	}{
		{"defaults", func(*Config) {}, true},
		{"zero iterations", func(c *Config) { c.MaxIterations = 0 }, false},
		{"zero time", func(c *Config) { c.MaxTime = 0 }, false},
		{"negative optimal", func(c *Config) { c.OptimalValue = -1 }, false},
		{"negative tolerance", func(c *Config) { c.OptimalTolerance = -0.1 }, false},
		{"zero min improvement", func(c *Config) { c.MinImprovement = 0 }, false},
		{"zero stagnation", func(c *Config) { c.MaxStagnation = 0 }, false},
		{"cooling rate one", func(c *Config) { c.CoolingRate = 1 }, false},
		{"cooling rate zero", func(c *Config) { c.CoolingRate = 0 }, false},
		{"zero temp factor", func(c *Config) { c.InitialTempFactor = 0 }, false},
		{"known optimum", func(c *Config) { c.OptimalValue = 42 }, true},
		{"short budget", func(c *Config) { c.MaxTime = time.Millisecond }, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := DefaultConfig()
			tt.modify(&cfg)
			err := cfg.Validate()
			if (err == nil) != tt.wantOK {
				t.Errorf("Validate() error = %v, wantOK %v", err, tt.wantOK)
			}
		})
	}
}

func TestOptimalReached(t *testing.T) {
	cfg := DefaultConfig()
	cfg.OptimalValue = 100
	cfg.OptimalTolerance = 0.5

	tests := []struct {
		cycle float64
		want  bool
	}{
		{100, true},
		{100.5, true},
		{99.6, true},
		{101, false},
		{98, false},
	}
	for _, tt := range tests {
		if got := cfg.optimalReached(tt.cycle); got != tt.want {
			t.Errorf("optimalReached(%g) = %v, want %v", tt.cycle, got, tt.want)
		}
	}

	cfg.OptimalValue = 0
	if cfg.optimalReached(0) {
		t.Error("optimalReached() should be false with no configured optimum")
	}
}
