package solver

import (
	"math"
	"slices"

	"github.com/MarquinhoCF/alwabp-solver/pkg/alwabp"
)

// Solution is a mutable assignment of tasks to stations and of workers to
// stations. Each station is staffed by exactly one worker (the
// station/worker mapping is a bijection), and every assigned task is
// executed by its station's worker.
//
// A Solution is owned by exactly one component at a time: local search
// and perturbation mutate it in place, and [Solution.Clone] produces an
// independent deep copy whenever two live variants must coexist. Per-
// station load sums are cached and maintained incrementally by the move
// operators; [Solution.CalculateCycleTime] recomputes them from scratch.
type Solution struct {
	inst *alwabp.Instance

	taskStation   []int   // task -> station, -1 while unassigned
	stationWorker []int   // station -> worker bijection
	stationTasks  [][]int // station -> assigned tasks
	loads         []float64
	cycleTime     float64
}

func newSolution(inst *alwabp.Instance) *Solution {
	k := inst.Stations()
	s := &Solution{
		inst:          inst,
		taskStation:   make([]int, inst.Tasks()),
		stationWorker: make([]int, k),
		stationTasks:  make([][]int, k),
		loads:         make([]float64, k),
		cycleTime:     math.Inf(1),
	}
	for t := range s.taskStation {
		s.taskStation[t] = -1
	}
	return s
}

// Clone returns a deep copy of the solution. Mutating the copy is never
// observable through the original, and vice versa.
func (s *Solution) Clone() *Solution {
	c := &Solution{
		inst:          s.inst,
		taskStation:   slices.Clone(s.taskStation),
		stationWorker: slices.Clone(s.stationWorker),
		stationTasks:  make([][]int, len(s.stationTasks)),
		loads:         slices.Clone(s.loads),
		cycleTime:     s.cycleTime,
	}
	for st, tasks := range s.stationTasks {
		c.stationTasks[st] = slices.Clone(tasks)
	}
	return c
}

// Instance returns the immutable instance this solution assigns.
func (s *Solution) Instance() *alwabp.Instance { return s.inst }

// CycleTime returns the cached cycle time: the maximum station load.
func (s *Solution) CycleTime() float64 { return s.cycleTime }

// TaskStation returns the station task t is assigned to, or -1 if the
// task is unassigned.
func (s *Solution) TaskStation(t int) int { return s.taskStation[t] }

// TaskWorker returns the worker executing task t, or -1 if the task is
// unassigned.
func (s *Solution) TaskWorker(t int) int {
	st := s.taskStation[t]
	if st < 0 {
		return -1
	}
	return s.stationWorker[st]
}

// StationWorker returns the worker bound to station st.
func (s *Solution) StationWorker(st int) int { return s.stationWorker[st] }

// StationTasks returns a copy of the tasks assigned to station st.
func (s *Solution) StationTasks(st int) []int { return slices.Clone(s.stationTasks[st]) }

// StationLoad returns the cached total duration of station st's tasks
// under its bound worker.
func (s *Solution) StationLoad(st int) float64 { return s.loads[st] }

// Assigned returns the number of assigned tasks.
func (s *Solution) Assigned() int {
	n := 0
	for _, st := range s.taskStation {
		if st >= 0 {
			n++
		}
	}
	return n
}

// CalculateCycleTime recomputes every station load and the cycle time
// from the current assignment and returns the cycle time. It is
// idempotent: calling it twice on an unmutated solution yields the same
// value.
func (s *Solution) CalculateCycleTime() float64 {
	for st := range s.loads {
		w := s.stationWorker[st]
		load := 0.0
		for _, t := range s.stationTasks[st] {
			load += s.inst.Time(t, w)
		}
		s.loads[st] = load
	}
	s.refreshCycleTime()
	return s.cycleTime
}

func (s *Solution) refreshCycleTime() {
	maxLoad := 0.0
	for _, load := range s.loads {
		if load > maxLoad {
			maxLoad = load
		}
	}
	s.cycleTime = maxLoad
}

// IsFeasible reports whether the solution satisfies every constraint:
// all tasks assigned exactly once and consistently with the station task
// sets, the station/worker mapping a bijection, every precedence edge
// (i, j) with station(i) <= station(j), and every task executed by a
// capable worker.
func (s *Solution) IsFeasible() bool {
	counted := 0
	for st, tasks := range s.stationTasks {
		for _, t := range tasks {
			if s.taskStation[t] != st {
				return false
			}
			counted++
		}
	}
	if counted != s.inst.Tasks() {
		return false
	}
	for _, st := range s.taskStation {
		if st < 0 || st >= len(s.stationWorker) {
			return false
		}
	}

	seen := make([]bool, len(s.stationWorker))
	for _, w := range s.stationWorker {
		if w < 0 || w >= len(seen) || seen[w] {
			return false
		}
		seen[w] = true
	}

	for _, e := range s.inst.Edges() {
		if s.taskStation[e.From] > s.taskStation[e.To] {
			return false
		}
	}

	for t, st := range s.taskStation {
		if !s.inst.CanAssign(t, s.stationWorker[st]) {
			return false
		}
	}
	return true
}

// assign places an unassigned task on a station and updates its load.
func (s *Solution) assign(t, st int) {
	s.stationTasks[st] = append(s.stationTasks[st], t)
	s.taskStation[t] = st
	s.loads[st] += s.inst.Time(t, s.stationWorker[st])
}

// relocate moves an assigned task to another station, updating both
// cached loads. The cycle time cache is not refreshed.
func (s *Solution) relocate(t, to int) {
	from := s.taskStation[t]
	s.stationTasks[from] = deleteTask(s.stationTasks[from], t)
	s.stationTasks[to] = append(s.stationTasks[to], t)
	s.taskStation[t] = to
	s.loads[from] -= s.inst.Time(t, s.stationWorker[from])
	s.loads[to] += s.inst.Time(t, s.stationWorker[to])
}

// exchange swaps the stations of two assigned tasks, updating both
// cached loads. The station workers stay in place.
func (s *Solution) exchange(t1, t2 int) {
	s1, s2 := s.taskStation[t1], s.taskStation[t2]
	w1, w2 := s.stationWorker[s1], s.stationWorker[s2]

	s.stationTasks[s1] = deleteTask(s.stationTasks[s1], t1)
	s.stationTasks[s2] = deleteTask(s.stationTasks[s2], t2)
	s.stationTasks[s1] = append(s.stationTasks[s1], t2)
	s.stationTasks[s2] = append(s.stationTasks[s2], t1)
	s.taskStation[t1], s.taskStation[t2] = s2, s1

	s.loads[s1] += s.inst.Time(t2, w1) - s.inst.Time(t1, w1)
	s.loads[s2] += s.inst.Time(t1, w2) - s.inst.Time(t2, w2)
}

// rebindWorker binds a different worker to a station and recomputes that
// station's load. Callers must have checked the worker is capable of
// every task currently on the station.
func (s *Solution) rebindWorker(st, w int) {
	s.stationWorker[st] = w
	load := 0.0
	for _, t := range s.stationTasks[st] {
		load += s.inst.Time(t, w)
	}
	s.loads[st] = load
}

// swapWorkers exchanges the workers bound to two stations, recomputing
// both loads.
func (s *Solution) swapWorkers(s1, s2 int) {
	w1, w2 := s.stationWorker[s1], s.stationWorker[s2]
	s.rebindWorker(s1, w2)
	s.rebindWorker(s2, w1)
}

func deleteTask(tasks []int, t int) []int {
	for i, v := range tasks {
		if v == t {
			return append(tasks[:i], tasks[i+1:]...)
		}
	}
	return tasks
}
