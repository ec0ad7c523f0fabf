package solver

import (
	"math"
	"math/rand"
)

// temperatureFloor is the minimum temperature the annealing schedule
// operates at. The controller reheats when cooling drops below it, and
// [Accept] clamps to it so the Metropolis exponent never divides by a
// non-positive temperature.
const temperatureFloor = 0.01

// Accept decides whether a candidate cycle time replaces the current
// one. An improving candidate (candidate < current) is always accepted,
// with no randomness involved. A worse candidate is accepted with the
// Metropolis probability exp(-(candidate-current)/temperature), so the
// probability falls as the deterioration grows and rises with the
// temperature.
//
// Temperatures at or below [temperatureFloor] are clamped to the floor.
func Accept(current, candidate, temperature float64, rng *rand.Rand) bool {
	if candidate < current {
		return true
	}
	if temperature < temperatureFloor {
		temperature = temperatureFloor
	}
	p := math.Exp(-(candidate - current) / temperature)
	return rng.Float64() < p
}
