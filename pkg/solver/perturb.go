package solver

import "math/rand"

// movesPerStrength scales perturbation strength into elementary moves:
// a perturbation of strength s applies s * movesPerStrength randomized
// moves. Kept as a single named constant so the intensity convention is
// fixed in one place.
const movesPerStrength = 10

// moveProbability is the chance an elementary move relocates a task; the
// remainder attempts a wholesale worker swap between two stations.
const moveProbability = 0.7

// PerturbStats counts the elementary moves attempted and applied during
// one perturbation. Draws that found no feasible target count as
// attempts but not as applications.
type PerturbStats struct {
	MoveAttempts int
	MovesApplied int
	SwapAttempts int
	SwapsApplied int
}

// Attempts returns the total number of elementary move draws.
func (p PerturbStats) Attempts() int { return p.MoveAttempts + p.SwapAttempts }

// Applied returns the number of draws that changed the solution.
func (p PerturbStats) Applied() int { return p.MovesApplied + p.SwapsApplied }

// Perturb returns a randomized variant of sol for diversification; sol
// itself is never touched. It applies strength * movesPerStrength
// elementary moves to a clone: with probability [moveProbability] a
// uniformly random task is relocated to a uniformly random feasible
// station, otherwise two random stations attempt to swap their bound
// workers wholesale. Infeasible draws are skipped and recorded in the
// returned stats.
//
// The clone's cycle time is recomputed once after all moves, so the
// task-count and bijection invariants of sol carry over for any
// strength >= 0.
func Perturb(sol *Solution, strength int, rng *rand.Rand) (*Solution, PerturbStats) {
	out := sol.Clone()
	var stats PerturbStats

	for i := 0; i < strength*movesPerStrength; i++ {
		if rng.Float64() < moveProbability {
			stats.MoveAttempts++
			if randomRelocate(out, rng) {
				stats.MovesApplied++
			}
		} else {
			stats.SwapAttempts++
			if randomWorkerSwap(out, rng) {
				stats.SwapsApplied++
			}
		}
	}

	out.CalculateCycleTime()
	return out, stats
}

// randomRelocate picks a random task from a random non-empty station and
// moves it to a random feasible station. Reports whether a move was
// applied; a draw with no feasible target is a no-op.
func randomRelocate(sol *Solution, rng *rand.Rand) bool {
	k := sol.inst.Stations()

	populated := make([]int, 0, k)
	for st := 0; st < k; st++ {
		if len(sol.stationTasks[st]) > 0 {
			populated = append(populated, st)
		}
	}
	if len(populated) == 0 {
		return false
	}

	from := populated[rng.Intn(len(populated))]
	t := sol.stationTasks[from][rng.Intn(len(sol.stationTasks[from]))]

	targets := make([]int, 0, k)
	for to := 0; to < k; to++ {
		if to != from && sol.canHost(t, to) {
			targets = append(targets, to)
		}
	}
	if len(targets) == 0 {
		return false
	}

	sol.relocate(t, targets[rng.Intn(len(targets))])
	return true
}

// randomWorkerSwap picks two distinct random stations and swaps their
// bound workers if each incoming worker is capable of every task at its
// new station. Reports whether the swap was applied.
func randomWorkerSwap(sol *Solution, rng *rand.Rand) bool {
	k := sol.inst.Stations()
	if k < 2 {
		return false
	}
	s1 := rng.Intn(k)
	s2 := rng.Intn(k - 1)
	if s2 >= s1 {
		s2++
	}

	w1, w2 := sol.stationWorker[s1], sol.stationWorker[s2]
	if !workerCapableOfAll(sol, w2, s1) || !workerCapableOfAll(sol, w1, s2) {
		return false
	}

	sol.swapWorkers(s1, s2)
	return true
}
