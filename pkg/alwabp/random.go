package alwabp

import "math/rand"

// RandomOptions controls [Random] instance generation.
type RandomOptions struct {
	Tasks   int // number of tasks (must be > 0)
	Workers int // number of workers/stations (must be > 0)

	MinTime int // inclusive lower bound for finite durations
	MaxTime int // inclusive upper bound for finite durations

	// IncapableRate is the probability that a given task/worker pair is
	// forbidden. At least one worker always stays capable of each task.
	IncapableRate float64

	// EdgeRate is the probability that an ordered task pair (i, j) with
	// i < j receives a precedence edge. Edges only point forward in task
	// index order, so the relation is acyclic by construction.
	EdgeRate float64
}

// Random generates a pseudo-random feasible instance, used by tests and
// benchmarks. It panics on invalid options or a nil rng; generated
// instances always satisfy [New]'s validation by construction.
func Random(opts RandomOptions, rng *rand.Rand) *Instance {
	if rng == nil {
		panic("alwabp: nil random source")
	}
	if opts.Tasks <= 0 || opts.Workers <= 0 {
		panic("alwabp: task and worker counts must be positive")
	}
	if opts.MinTime < 0 || opts.MaxTime < opts.MinTime {
		panic("alwabp: invalid duration bounds")
	}

	span := opts.MaxTime - opts.MinTime + 1
	times := make([][]float64, opts.Tasks)
	for t := range times {
		row := make([]float64, opts.Workers)
		// one guaranteed capable worker per task
		keep := rng.Intn(opts.Workers)
		for w := range row {
			if w != keep && rng.Float64() < opts.IncapableRate {
				row[w] = Incapable
				continue
			}
			row[w] = float64(opts.MinTime + rng.Intn(span))
		}
		times[t] = row
	}

	var edges []Edge
	for i := 0; i < opts.Tasks; i++ {
		for j := i + 1; j < opts.Tasks; j++ {
			if rng.Float64() < opts.EdgeRate {
				edges = append(edges, Edge{From: i, To: j})
			}
		}
	}

	inst, err := New(times, edges)
	if err != nil {
		panic(err)
	}
	return inst
}
