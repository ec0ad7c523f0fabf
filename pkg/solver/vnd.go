package solver

// neighborhoods lists the descent operators in the order VND tries them.
var neighborhoods = []func(*Solution){descendMoveTask, descendSwapTasks}

// Descend runs variable neighborhood descent over the move-task and
// swap-tasks neighborhoods. Each neighborhood is applied to completion;
// when the cycle time strictly decreases the sequence restarts from the
// first neighborhood, otherwise it advances to the next. Descend returns
// once the last neighborhood yields no improvement, leaving the solution
// a local optimum under both neighborhoods simultaneously.
//
// The cycle-time sequence observed during Descend is non-increasing.
func Descend(sol *Solution) {
	for k := 0; k < len(neighborhoods); {
		before := sol.cycleTime
		neighborhoods[k](sol)
		if sol.cycleTime < before {
			k = 0
		} else {
			k++
		}
	}
}
