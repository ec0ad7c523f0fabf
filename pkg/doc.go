// Package pkg provides the core libraries for the alwabp solver.
//
// # Overview
//
// alwabp solves the assembly line worker assignment and balancing
// problem: tasks with precedence constraints are assigned to stations,
// workers with heterogeneous speeds are assigned to stations, and the
// objective is to minimize the cycle time (the load of the busiest
// station). The pkg directory is organized into these areas:
//
//  1. [alwabp] - Problem model (instances, parsing, generation)
//  2. [solver] - The iterated local search engine
//  3. [report] - Result summaries, text reports, JSON export
//  4. [experiment] - Replicated benchmark runs and CSV aggregation
//  5. [cache], [store] - Solution caching and run archiving backends
//  6. [api] - The HTTP surface over the solver
//  7. [viz] - Precedence graph rendering via Graphviz
//
// # Architecture
//
// The typical data flow through a solve:
//
//	Instance file / HTTP request
//	         ↓
//	    [alwabp] package (parse + validate)
//	         ↓
//	    [solver] package (construct → descend → perturb → accept)
//	         ↓
//	    [report] package (summarize)
//	         ↓
//	    Terminal report / JSON / CSV / archive
//
// # Quick Start
//
//	inst, err := alwabp.ReadFile("instance.txt")
//	if err != nil {
//	    return err
//	}
//	s, err := solver.New(solver.DefaultConfig(), rand.New(rand.NewSource(42)))
//	if err != nil {
//	    return err
//	}
//	res, err := s.Solve(ctx, inst)
//	if err != nil {
//	    return err
//	}
//	report.Build(res).WriteText(os.Stdout)
package pkg
