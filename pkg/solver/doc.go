// Package solver implements an Iterated Local Search (ILS) metaheuristic
// for the Assembly Line Worker Assignment and Balancing Problem.
//
// The search minimizes the line's cycle time: the heaviest total workload
// carried by any single station. A run is composed of
//
//   - a ranked-positional-weight construction heuristic ([Construct]),
//   - two best-improvement neighborhoods composed by variable
//     neighborhood descent ([Descend]),
//   - a randomized perturbation operator ([Perturb]),
//   - a simulated-annealing acceptance rule ([Accept]), and
//   - an outer controller ([Solver.Solve]) with cooling, adaptive time
//     budgeting, stagnation detection, and bounded restarts.
//
// The engine is heuristic only: it offers no optimality guarantee, and
// callers should check [Solution.IsFeasible] on the returned best
// solution before using it. Runs are single-threaded; independent runs
// with distinct random sources may execute concurrently against the same
// immutable instance.
package solver
