package solver

import (
	"math/rand"
	"testing"
)

func TestAccept_ImprovingAlways(t *testing.T) {
	rng := rand.New(rand.NewSource(1))
	for i := 0; i < 100; i++ {
		if !Accept(10, 9.99, 0.001, rng) {
			t.Fatal("improving candidate rejected")
		}
	}
}

func TestAccept_WorseDependsOnTemperature(t *testing.T) {
	trials := 2000

	accepted := func(temperature float64) int {
		rng := rand.New(rand.NewSource(42))
		n := 0
		for i := 0; i < trials; i++ {
			if Accept(10, 11, temperature, rng) {
				n++
			}
		}
		return n
	}

	hot := accepted(10)
	cold := accepted(0.05)

	if hot <= cold {
		t.Errorf("hot acceptance %d not above cold acceptance %d", hot, cold)
	}
	// exp(-1/10) ~ 0.90: nearly everything passes when hot.
	if hot < trials/2 {
		t.Errorf("hot acceptance %d/%d, expected a majority", hot, trials)
	}
	// exp(-1/0.05) ~ 2e-9: essentially nothing passes when cold.
	if cold > trials/100 {
		t.Errorf("cold acceptance %d/%d, expected near zero", cold, trials)
	}
}

func TestAccept_ClampsTemperatureFloor(t *testing.T) {
	// At or below the floor the probability is exp(-delta/floor), not a
	// division by zero; with a tiny delta some acceptances still occur.
	rng := rand.New(rand.NewSource(7))
	n := 0
	for i := 0; i < 2000; i++ {
		if Accept(10, 10.001, 0, rng) {
			n++
		}
	}
	// exp(-0.001/0.01) ~ 0.905
	if n < 1000 {
		t.Errorf("accepted %d/2000 near-equal candidates at the floor, want a majority", n)
	}
}

func TestAccept_Deterministic(t *testing.T) {
	run := func() []bool {
		rng := rand.New(rand.NewSource(5))
		out := make([]bool, 50)
		for i := range out {
			out[i] = Accept(10, 10.5, 1, rng)
		}
		return out
	}

	a, b := run(), run()
	for i := range a {
		if a[i] != b[i] {
			t.Fatalf("decision %d differs across identical seeds", i)
		}
	}
}
