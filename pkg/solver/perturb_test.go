package solver

import (
	"math/rand"
	"testing"

	"github.com/MarquinhoCF/alwabp-solver/pkg/alwabp"
)

func TestPerturb_LeavesInputUntouched(t *testing.T) {
	inst := lineInstance(t)
	sol, err := Construct(inst, rand.New(rand.NewSource(6)))
	if err != nil {
		t.Fatalf("Construct() error = %v", err)
	}
	Descend(sol)

	before := sol.CycleTime()
	stations := make([]int, inst.Tasks())
	for task := range stations {
		stations[task] = sol.TaskStation(task)
	}

	out, _ := Perturb(sol, 3, rand.New(rand.NewSource(7)))

	if out == sol {
		t.Fatal("Perturb() returned the input solution, want a clone")
	}
	if sol.CycleTime() != before {
		t.Errorf("input cycle time changed %g -> %g", before, sol.CycleTime())
	}
	for task, st := range stations {
		if sol.TaskStation(task) != st {
			t.Errorf("input assignment of task %d changed", task)
		}
	}
}

func TestPerturb_AttemptCount(t *testing.T) {
	inst := lineInstance(t)
	sol, err := Construct(inst, rand.New(rand.NewSource(8)))
	if err != nil {
		t.Fatalf("Construct() error = %v", err)
	}

	for _, strength := range []int{0, 1, 2, 5} {
		_, stats := Perturb(sol, strength, rand.New(rand.NewSource(9)))
		if got, want := stats.Attempts(), strength*movesPerStrength; got != want {
			t.Errorf("strength %d: Attempts() = %d, want %d", strength, got, want)
		}
		if stats.Applied() > stats.Attempts() {
			t.Errorf("strength %d: Applied() = %d exceeds Attempts() = %d",
				strength, stats.Applied(), stats.Attempts())
		}
	}
}

func TestPerturb_PreservesFeasibility(t *testing.T) {
	rng := rand.New(rand.NewSource(13))
	inst := alwabp.Random(alwabp.RandomOptions{
		Tasks: 20, Workers: 4, MinTime: 1, MaxTime: 50,
		IncapableRate: 0.2, EdgeRate: 0.1,
	}, rng)

	sol, err := Construct(inst, rng)
	if err != nil {
		t.Fatalf("Construct() error = %v", err)
	}
	Descend(sol)

	for i := 0; i < 25; i++ {
		out, _ := Perturb(sol, maxStrength, rng)
		if !out.IsFeasible() {
			t.Fatalf("round %d: perturbed solution infeasible", i)
		}
		if out.Assigned() != inst.Tasks() {
			t.Fatalf("round %d: perturbation lost tasks, %d assigned", i, out.Assigned())
		}
		sol = out
	}
}

func TestPerturb_ZeroStrengthIsClone(t *testing.T) {
	inst := lineInstance(t)
	sol, err := Construct(inst, rand.New(rand.NewSource(10)))
	if err != nil {
		t.Fatalf("Construct() error = %v", err)
	}

	out, stats := Perturb(sol, 0, rand.New(rand.NewSource(11)))
	if stats.Attempts() != 0 {
		t.Errorf("Attempts() = %d, want 0", stats.Attempts())
	}
	if out.CycleTime() != sol.CycleTime() {
		t.Errorf("zero-strength perturbation changed cycle time %g -> %g",
			sol.CycleTime(), out.CycleTime())
	}
}
