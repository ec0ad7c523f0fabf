package viz

import (
	"math/rand"
	"strings"
	"testing"

	"github.com/MarquinhoCF/alwabp-solver/pkg/alwabp"
	"github.com/MarquinhoCF/alwabp-solver/pkg/solver"
)

func testInstance(t *testing.T) *alwabp.Instance {
	t.Helper()
	inst, err := alwabp.New([][]float64{
		{2, 3},
		{4, 2},
		{3, alwabp.Incapable},
	}, []alwabp.Edge{{From: 0, To: 1}, {From: 0, To: 2}})
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	return inst
}

func TestToDOT(t *testing.T) {
	dot := ToDOT(testInstance(t), Options{})

	if !strings.HasPrefix(dot, "digraph precedence {") {
		t.Errorf("unexpected header: %s", dot)
	}
	for _, want := range []string{"0 -> 1;", "0 -> 2;"} {
		if !strings.Contains(dot, want) {
			t.Errorf("DOT missing edge %q:\n%s", want, dot)
		}
	}
	// One node statement per task.
	for _, want := range []string{`0 [label="0"]`, `1 [label="1"]`, `2 [label="2"]`} {
		if !strings.Contains(dot, want) {
			t.Errorf("DOT missing node %q:\n%s", want, dot)
		}
	}
}

func TestToDOTDetailed(t *testing.T) {
	dot := ToDOT(testInstance(t), Options{Detailed: true})

	if !strings.Contains(dot, "w0: 2") {
		t.Errorf("detailed label should show durations:\n%s", dot)
	}
	// Incapable pairs render as a dash, not an infinity.
	if !strings.Contains(dot, "w1: -") {
		t.Errorf("detailed label should mark incapable workers:\n%s", dot)
	}
}

func TestToDOTWithSolution(t *testing.T) {
	inst := testInstance(t)
	sol, err := solver.Construct(inst, rand.New(rand.NewSource(3)))
	if err != nil {
		t.Fatalf("Construct: %v", err)
	}

	dot := ToDOT(inst, Options{Solution: sol})

	if !strings.Contains(dot, "subgraph cluster_0") || !strings.Contains(dot, "subgraph cluster_1") {
		t.Errorf("expected one cluster per station:\n%s", dot)
	}
	if !strings.Contains(dot, "station 0 / worker") {
		t.Errorf("cluster labels should name station and worker:\n%s", dot)
	}
}
