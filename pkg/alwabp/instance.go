package alwabp

import (
	"errors"
	"math"
)

var (
	// ErrEmptyInstance is returned by [New] when the time matrix has no
	// rows or no columns. An instance needs at least one task and worker.
	ErrEmptyInstance = errors.New("instance must have at least one task and one worker")

	// ErrRaggedTimeMatrix is returned by [New] when the rows of the time
	// matrix have differing lengths. Every task row must list a duration
	// for each of the k workers.
	ErrRaggedTimeMatrix = errors.New("time matrix rows must have equal length")

	// ErrNegativeTime is returned by [New] when a finite task duration is
	// negative. Durations are either non-negative or [Incapable].
	ErrNegativeTime = errors.New("task durations must be non-negative")

	// ErrTaskOutOfRange is returned by [New] when a precedence edge
	// references a task index outside [0, n).
	ErrTaskOutOfRange = errors.New("precedence edge references unknown task")

	// ErrSelfPrecedence is returned by [New] when a precedence edge has
	// identical endpoints. A task cannot precede itself.
	ErrSelfPrecedence = errors.New("task cannot precede itself")

	// ErrCyclicPrecedence is returned by [New] when the precedence
	// relation contains a directed cycle. Positional weights are only
	// defined on an acyclic relation, so cycles are rejected up front
	// rather than left to recurse forever downstream.
	ErrCyclicPrecedence = errors.New("precedence relation contains a cycle")

	// ErrNoCapableWorker is returned by [New] when some task has an
	// infinite duration for every worker. No feasible assignment exists
	// for such an instance.
	ErrNoCapableWorker = errors.New("task has no capable worker")
)

// Incapable is the sentinel duration marking a worker/task pair that is
// not executable. It compares greater than any finite duration, so load
// sums involving it stay infinite.
var Incapable = math.Inf(1)

// IsIncapable reports whether d is the incapable sentinel.
func IsIncapable(d float64) bool { return math.IsInf(d, 1) }

// Edge is a directed precedence constraint between two task indices:
// From's station must not exceed To's station in any feasible solution.
type Edge struct {
	From, To int
}

// Instance is an immutable ALWABP problem instance.
//
// The zero value is not usable - construct instances with [New] or [Read].
// All derived data (adjacency lists, positional weights) is computed once
// at construction time.
type Instance struct {
	tasks   int
	workers int
	times   [][]float64 // times[task][worker], Incapable marks a forbidden pair
	edges   []Edge

	successors   [][]int
	predecessors [][]int
	weights      []float64 // ranked positional weight per task
}

// New builds an instance from a task-by-worker time matrix and a
// precedence edge list. The number of tasks is len(times) and the number
// of workers (= stations) is the row length.
//
// New validates the input and returns one of the sentinel errors declared
// in this package when it is malformed: the matrix must be rectangular
// and non-empty, finite durations must be non-negative, every task needs
// at least one capable worker, and the precedence relation must be a DAG
// over valid task indices.
//
// The matrix and edge list are copied; the caller may reuse its slices.
func New(times [][]float64, edges []Edge) (*Instance, error) {
	n := len(times)
	if n == 0 || len(times[0]) == 0 {
		return nil, ErrEmptyInstance
	}
	k := len(times[0])

	inst := &Instance{
		tasks:        n,
		workers:      k,
		times:        make([][]float64, n),
		edges:        make([]Edge, len(edges)),
		successors:   make([][]int, n),
		predecessors: make([][]int, n),
	}

	for i, row := range times {
		if len(row) != k {
			return nil, ErrRaggedTimeMatrix
		}
		capable := false
		inst.times[i] = make([]float64, k)
		for w, d := range row {
			switch {
			case IsIncapable(d):
				// forbidden pair
			case d < 0 || math.IsNaN(d) || math.IsInf(d, -1):
				return nil, ErrNegativeTime
			default:
				capable = true
			}
			inst.times[i][w] = d
		}
		if !capable {
			return nil, ErrNoCapableWorker
		}
	}

	copy(inst.edges, edges)
	for _, e := range inst.edges {
		if e.From < 0 || e.From >= n || e.To < 0 || e.To >= n {
			return nil, ErrTaskOutOfRange
		}
		if e.From == e.To {
			return nil, ErrSelfPrecedence
		}
		inst.successors[e.From] = append(inst.successors[e.From], e.To)
		inst.predecessors[e.To] = append(inst.predecessors[e.To], e.From)
	}

	order, ok := inst.topoOrder()
	if !ok {
		return nil, ErrCyclicPrecedence
	}
	inst.computeWeights(order)

	return inst, nil
}

// Tasks returns the number of tasks n.
func (in *Instance) Tasks() int { return in.tasks }

// Workers returns the number of workers k. Stations and workers are
// equinumerous, so this is also the station count.
func (in *Instance) Workers() int { return in.workers }

// Stations returns the number of stations. Alias for [Instance.Workers].
func (in *Instance) Stations() int { return in.workers }

// Time returns the duration for worker w to execute task t, or
// [Incapable] when the pair is forbidden.
func (in *Instance) Time(t, w int) float64 { return in.times[t][w] }

// CanAssign reports whether worker w is capable of task t.
func (in *Instance) CanAssign(t, w int) bool { return !IsIncapable(in.times[t][w]) }

// Successors returns the direct successors of task t in the precedence
// relation. The returned slice is a read-only view and must not be modified.
func (in *Instance) Successors(t int) []int { return in.successors[t] }

// Predecessors returns the direct predecessors of task t in the
// precedence relation. The returned slice is a read-only view and must
// not be modified.
func (in *Instance) Predecessors(t int) []int { return in.predecessors[t] }

// Edges returns a copy of the precedence edge list.
func (in *Instance) Edges() []Edge {
	out := make([]Edge, len(in.edges))
	copy(out, in.edges)
	return out
}

// PositionalWeight returns the ranked positional weight of task t: its
// average duration over capable workers plus the recursively summed
// weights of its direct successors. Tasks with a higher weight sit on
// heavier chains and are scheduled earlier by the construction heuristic.
func (in *Instance) PositionalWeight(t int) float64 { return in.weights[t] }

// topoOrder returns a topological order of the tasks using Kahn's
// algorithm, or ok=false when the precedence relation is cyclic.
func (in *Instance) topoOrder() ([]int, bool) {
	inDegree := make([]int, in.tasks)
	for t := range inDegree {
		inDegree[t] = len(in.predecessors[t])
	}

	queue := make([]int, 0, in.tasks)
	for t, d := range inDegree {
		if d == 0 {
			queue = append(queue, t)
		}
	}

	order := make([]int, 0, in.tasks)
	for len(queue) > 0 {
		curr := queue[0]
		queue = queue[1:]
		order = append(order, curr)
		for _, succ := range in.successors[curr] {
			inDegree[succ]--
			if inDegree[succ] == 0 {
				queue = append(queue, succ)
			}
		}
	}
	return order, len(order) == in.tasks
}

// computeWeights fills in.weights by walking order backwards, so every
// successor's weight is final before it is summed into its predecessors.
func (in *Instance) computeWeights(order []int) {
	in.weights = make([]float64, in.tasks)
	for i := len(order) - 1; i >= 0; i-- {
		t := order[i]
		w := in.averageTime(t)
		for _, succ := range in.successors[t] {
			w += in.weights[succ]
		}
		in.weights[t] = w
	}
}

// averageTime returns the mean finite duration of task t over its
// capable workers.
func (in *Instance) averageTime(t int) float64 {
	sum, count := 0.0, 0
	for w := 0; w < in.workers; w++ {
		if d := in.times[t][w]; !IsIncapable(d) {
			sum += d
			count++
		}
	}
	if count == 0 {
		return 0
	}
	return sum / float64(count)
}
