// Package alwabp models instances of the Assembly Line Worker Assignment
// and Balancing Problem (ALWABP).
//
// An instance couples a set of tasks with an equinumerous set of workers
// and stations: every station is staffed by exactly one worker, and each
// worker performs tasks at an individual speed. A worker may be incapable
// of a task entirely, which is encoded as an infinite execution time.
// Tasks are partially ordered by a precedence relation: for an edge (i, j),
// task i must be assigned to a station no later than task j's station.
//
// # Construction
//
// Instances are built with [New] from a task-by-worker time matrix and a
// precedence edge list, or parsed from the standard ALWABP text format
// with [Read]. Construction validates the matrix shape, rejects cyclic
// precedence relations, and derives the adjacency lists and ranked
// positional weights used by the construction heuristic in package solver.
//
// Instances are immutable after construction and safe for concurrent use.
package alwabp
