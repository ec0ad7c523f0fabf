package solver

import (
	"errors"
	"math"
	"math/rand"
	"sort"

	"github.com/MarquinhoCF/alwabp-solver/pkg/alwabp"
)

// ErrInfeasibleConstruction is returned by [Construct] when a full pass
// over the unassigned tasks places none of them. This happens on
// infeasible instances (for example, when capability constraints leave
// no station that can host a task) and turns what would otherwise be an
// endless retry loop into an explicit failure.
var ErrInfeasibleConstruction = errors.New("construction could not assign all tasks")

// Construct builds an initial solution with the ranked positional weight
// (RPW) heuristic of Helgeson & Birnie: workers are shuffled onto
// stations uniformly at random, and tasks are then placed in descending
// positional-weight order, each onto the feasible station whose load
// stays smallest.
//
// When no station can host a task, Construct tries to re-bind a single
// station to an alternate worker who is capable of everything already on
// that station plus the new task. Tasks whose predecessors were not yet
// assigned when first visited are retried in later passes; a pass that
// assigns nothing returns [ErrInfeasibleConstruction].
//
// The returned solution has its cycle time computed, but is not locally
// optimal - follow with [Descend].
func Construct(inst *alwabp.Instance, rng *rand.Rand) (*Solution, error) {
	sol := newSolution(inst)
	copy(sol.stationWorker, rng.Perm(inst.Stations()))

	order := weightOrder(inst)

	// Main RPW pass: a task is considered once; if its predecessors are
	// not assigned yet it is left for the retry passes below.
	for _, t := range order {
		if !predecessorsAssigned(sol, t) {
			continue
		}
		st := bestStation(sol, t)
		if st < 0 {
			st = rebindForTask(sol, t)
		}
		if st >= 0 {
			sol.assign(t, st)
		}
	}

	for sol.Assigned() < inst.Tasks() {
		progress := false
		for _, t := range order {
			if sol.taskStation[t] >= 0 || !predecessorsAssigned(sol, t) {
				continue
			}
			for st := 0; st < inst.Stations(); st++ {
				if sol.canHost(t, st) {
					sol.assign(t, st)
					progress = true
					break
				}
			}
		}
		if !progress {
			return nil, ErrInfeasibleConstruction
		}
	}

	sol.CalculateCycleTime()
	return sol, nil
}

// weightOrder returns all task indices sorted by descending positional
// weight, ties broken by task index for determinism.
func weightOrder(inst *alwabp.Instance) []int {
	order := make([]int, inst.Tasks())
	for t := range order {
		order[t] = t
	}
	sort.SliceStable(order, func(a, b int) bool {
		return inst.PositionalWeight(order[a]) > inst.PositionalWeight(order[b])
	})
	return order
}

func predecessorsAssigned(sol *Solution, t int) bool {
	for _, pred := range sol.inst.Predecessors(t) {
		if sol.taskStation[pred] < 0 {
			return false
		}
	}
	return true
}

// canHost reports whether station st may receive task t: the bound
// worker must be capable, every assigned predecessor must sit at or
// before st, and every assigned successor at or after st.
func (s *Solution) canHost(t, st int) bool {
	if !s.inst.CanAssign(t, s.stationWorker[st]) {
		return false
	}
	for _, pred := range s.inst.Predecessors(t) {
		if ps := s.taskStation[pred]; ps >= 0 && ps > st {
			return false
		}
	}
	for _, succ := range s.inst.Successors(t) {
		if ss := s.taskStation[succ]; ss >= 0 && ss < st {
			return false
		}
	}
	return true
}

// bestStation returns the feasible station minimizing the station's load
// after adding t, or -1 when no station is feasible. Ties keep the first
// station in index order.
func bestStation(sol *Solution, t int) int {
	best := -1
	bestLoad := math.Inf(1)
	for st := 0; st < sol.inst.Stations(); st++ {
		if !sol.canHost(t, st) {
			continue
		}
		load := sol.loads[st] + sol.inst.Time(t, sol.stationWorker[st])
		if load < bestLoad {
			bestLoad = load
			best = st
		}
	}
	return best
}

// rebindForTask searches for a station whose worker can be swapped with
// another station's worker so that the incoming worker is capable of
// every task already on the station plus t, with precedence intact. The
// displaced worker must likewise be capable of the other station's
// tasks, keeping the station/worker bijection valid. On success the
// swap is applied (which changes the duration of everything assigned at
// both stations) and the hosting station's index returned; otherwise -1.
func rebindForTask(sol *Solution, t int) int {
	k := sol.inst.Stations()
	for st := 0; st < k; st++ {
		if !precedenceAllows(sol, t, st) {
			continue
		}
		for other := 0; other < k; other++ {
			if other == st {
				continue
			}
			w := sol.stationWorker[other]
			if !sol.inst.CanAssign(t, w) {
				continue
			}
			if !workerCapableOfAll(sol, w, st) || !workerCapableOfAll(sol, sol.stationWorker[st], other) {
				continue
			}
			sol.swapWorkers(st, other)
			return st
		}
	}
	return -1
}

func workerCapableOfAll(sol *Solution, w, st int) bool {
	for _, assigned := range sol.stationTasks[st] {
		if !sol.inst.CanAssign(assigned, w) {
			return false
		}
	}
	return true
}

func precedenceAllows(sol *Solution, t, st int) bool {
	for _, pred := range sol.inst.Predecessors(t) {
		if ps := sol.taskStation[pred]; ps >= 0 && ps > st {
			return false
		}
	}
	return true
}
