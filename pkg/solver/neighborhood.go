package solver

// The two neighborhoods below both use best-improvement search: every
// scan examines the full neighborhood, remembers the single move with the
// most negative cycle-time delta, applies it, and rescans until a full
// scan finds nothing improving. Deltas are evaluated on the two affected
// stations only, using the cached load sums.

// descendMoveTask relocates single tasks between stations until no
// relocation lowers the maximum of the two affected stations' loads.
func descendMoveTask(sol *Solution) {
	inst := sol.inst
	for {
		bestDelta := 0.0
		bestTask, bestTo := -1, -1

		for from := 0; from < inst.Stations(); from++ {
			for _, t := range sol.stationTasks[from] {
				for to := 0; to < inst.Stations(); to++ {
					if to == from || !sol.canHost(t, to) {
						continue
					}
					delta := moveDelta(sol, t, from, to)
					if delta < bestDelta {
						bestDelta = delta
						bestTask, bestTo = t, to
					}
				}
			}
		}

		if bestTask < 0 {
			return
		}
		sol.relocate(bestTask, bestTo)
		sol.refreshCycleTime()
	}
}

// moveDelta returns the change in max(load(from), load(to)) if task t
// moved from station from to station to.
func moveDelta(sol *Solution, t, from, to int) float64 {
	inst := sol.inst
	oldFrom, oldTo := sol.loads[from], sol.loads[to]
	newFrom := oldFrom - inst.Time(t, sol.stationWorker[from])
	newTo := oldTo + inst.Time(t, sol.stationWorker[to])
	return max(newFrom, newTo) - max(oldFrom, oldTo)
}

// descendSwapTasks exchanges task pairs across station pairs until no
// exchange lowers the maximum of the two affected stations' loads.
func descendSwapTasks(sol *Solution) {
	inst := sol.inst
	for {
		bestDelta := 0.0
		bestT1, bestT2 := -1, -1

		for s1 := 0; s1 < inst.Stations(); s1++ {
			for s2 := s1 + 1; s2 < inst.Stations(); s2++ {
				for _, t1 := range sol.stationTasks[s1] {
					for _, t2 := range sol.stationTasks[s2] {
						if !swapFeasible(sol, t1, s1, t2, s2) {
							continue
						}
						delta := swapDelta(sol, t1, s1, t2, s2)
						if delta < bestDelta {
							bestDelta = delta
							bestT1, bestT2 = t1, t2
						}
					}
				}
			}
		}

		if bestT1 < 0 {
			return
		}
		sol.exchange(bestT1, bestT2)
		sol.refreshCycleTime()
	}
}

// swapFeasible reports whether exchanging the stations of t1 (at s1) and
// t2 (at s2) keeps precedence and capability intact. Each task's
// predecessors and successors are checked against its new station; the
// swap partner counts at its own new station, so directly related pairs
// are rejected.
func swapFeasible(sol *Solution, t1, s1, t2, s2 int) bool {
	inst := sol.inst
	w1, w2 := sol.stationWorker[s1], sol.stationWorker[s2]
	if !inst.CanAssign(t1, w2) || !inst.CanAssign(t2, w1) {
		return false
	}

	// station of a task after the hypothetical swap
	after := func(t int) int {
		switch t {
		case t1:
			return s2
		case t2:
			return s1
		default:
			return sol.taskStation[t]
		}
	}

	check := func(t, target int) bool {
		for _, pred := range inst.Predecessors(t) {
			if ps := after(pred); ps >= 0 && ps > target {
				return false
			}
		}
		for _, succ := range inst.Successors(t) {
			if ss := after(succ); ss >= 0 && ss < target {
				return false
			}
		}
		return true
	}

	return check(t1, s2) && check(t2, s1)
}

// swapDelta returns the change in max(load(s1), load(s2)) if t1 and t2
// exchanged stations.
func swapDelta(sol *Solution, t1, s1, t2, s2 int) float64 {
	inst := sol.inst
	w1, w2 := sol.stationWorker[s1], sol.stationWorker[s2]
	old1, old2 := sol.loads[s1], sol.loads[s2]
	new1 := old1 - inst.Time(t1, w1) + inst.Time(t2, w1)
	new2 := old2 - inst.Time(t2, w2) + inst.Time(t1, w2)
	return max(new1, new2) - max(old1, old2)
}
