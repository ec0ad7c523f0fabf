package solver

import (
	"math/rand"
	"testing"
)

func TestSolution_CloneIsIndependent(t *testing.T) {
	inst := lineInstance(t)
	sol, err := Construct(inst, rand.New(rand.NewSource(1)))
	if err != nil {
		t.Fatalf("Construct() error = %v", err)
	}

	c := sol.Clone()
	if c.CycleTime() != sol.CycleTime() {
		t.Fatalf("clone cycle time %g, want %g", c.CycleTime(), sol.CycleTime())
	}

	// Move a task in the clone; the original must not notice.
	var task, from int
	for st := 0; st < inst.Stations(); st++ {
		if tasks := c.StationTasks(st); len(tasks) > 0 {
			task, from = tasks[0], st
			break
		}
	}
	to := (from + 1) % inst.Stations()
	if c.canHost(task, to) {
		c.relocate(task, to)
		c.CalculateCycleTime()
	}

	if sol.TaskStation(task) != from {
		t.Errorf("original task %d moved to station %d", task, sol.TaskStation(task))
	}
	cached := sol.CycleTime()
	if got := sol.CalculateCycleTime(); got != cached {
		t.Errorf("original loads drifted: cached %g, recomputed %g", cached, got)
	}
}

func TestSolution_IncrementalLoadsMatchRecompute(t *testing.T) {
	inst := lineInstance(t)
	sol, err := Construct(inst, rand.New(rand.NewSource(2)))
	if err != nil {
		t.Fatalf("Construct() error = %v", err)
	}

	loads := make([]float64, inst.Stations())
	for st := range loads {
		loads[st] = sol.StationLoad(st)
	}
	sol.CalculateCycleTime()
	for st := range loads {
		if sol.StationLoad(st) != loads[st] {
			t.Errorf("station %d: incremental load %g, recomputed %g",
				st, loads[st], sol.StationLoad(st))
		}
	}
}

func TestSolution_StationTasksIsCopy(t *testing.T) {
	inst := lineInstance(t)
	sol, err := Construct(inst, rand.New(rand.NewSource(3)))
	if err != nil {
		t.Fatalf("Construct() error = %v", err)
	}

	var st int
	for ; st < inst.Stations(); st++ {
		if len(sol.StationTasks(st)) > 0 {
			break
		}
	}
	tasks := sol.StationTasks(st)
	tasks[0] = -99

	if got := sol.StationTasks(st); got[0] == -99 {
		t.Error("StationTasks() exposed internal storage")
	}
}

func TestSolution_SwapWorkers(t *testing.T) {
	inst := lineInstance(t)
	sol, err := Construct(inst, rand.New(rand.NewSource(4)))
	if err != nil {
		t.Fatalf("Construct() error = %v", err)
	}

	w0, w1 := sol.StationWorker(0), sol.StationWorker(1)
	sol.swapWorkers(0, 1)

	if sol.StationWorker(0) != w1 || sol.StationWorker(1) != w0 {
		t.Errorf("workers after swap %d/%d, want %d/%d",
			sol.StationWorker(0), sol.StationWorker(1), w1, w0)
	}
	for st := 0; st < inst.Stations(); st++ {
		want := 0.0
		for _, task := range sol.StationTasks(st) {
			want += inst.Time(task, sol.StationWorker(st))
		}
		if sol.StationLoad(st) != want {
			t.Errorf("station %d load %g after swap, want %g", st, sol.StationLoad(st), want)
		}
	}
	if !sol.IsFeasible() {
		t.Error("swap between fully-capable workers broke feasibility")
	}
}

func TestSolution_TaskWorkerUnassigned(t *testing.T) {
	inst := lineInstance(t)
	sol := newSolution(inst)

	if got := sol.TaskWorker(0); got != -1 {
		t.Errorf("TaskWorker() on unassigned task = %d, want -1", got)
	}
	if sol.Assigned() != 0 {
		t.Errorf("Assigned() = %d, want 0", sol.Assigned())
	}
	if sol.IsFeasible() {
		t.Error("empty assignment reported feasible")
	}
}
