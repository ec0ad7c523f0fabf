package store

import (
	"context"
	"testing"

	"github.com/MarquinhoCF/alwabp-solver/pkg/report"
)

func TestMemoryStore(t *testing.T) {
	ctx := context.Background()
	s := NewMemoryStore()
	defer s.Close(ctx)

	run := NewRun("instance_4.txt", "abc123", 42, report.Summary{CycleTime: 5})
	if run.ID == "" {
		t.Fatal("NewRun should assign an ID")
	}
	if run.CreatedAt.IsZero() {
		t.Fatal("NewRun should assign a timestamp")
	}

	if err := s.Insert(ctx, run); err != nil {
		t.Fatalf("Insert: %v", err)
	}

	got, err := s.Get(ctx, run.ID)
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if got.Instance != "instance_4.txt" {
		t.Errorf("Instance = %q, want %q", got.Instance, "instance_4.txt")
	}
	if got.Summary.CycleTime != 5 {
		t.Errorf("CycleTime = %g, want 5", got.Summary.CycleTime)
	}

	// Returned record is a copy.
	got.Instance = "mutated"
	again, _ := s.Get(ctx, run.ID)
	if again.Instance != "instance_4.txt" {
		t.Error("Get should return an independent copy")
	}

	if _, err := s.Get(ctx, "missing"); err != ErrNotFound {
		t.Errorf("Get missing = %v, want ErrNotFound", err)
	}

	if err := s.Delete(ctx, run.ID); err != nil {
		t.Fatalf("Delete: %v", err)
	}
	if _, err := s.Get(ctx, run.ID); err != ErrNotFound {
		t.Errorf("Get after Delete = %v, want ErrNotFound", err)
	}

	// Deleting a missing run is not an error.
	if err := s.Delete(ctx, "missing"); err != nil {
		t.Errorf("Delete missing: %v", err)
	}
}

func TestMemoryStoreList(t *testing.T) {
	ctx := context.Background()
	s := NewMemoryStore()

	var ids []string
	for i := 0; i < 3; i++ {
		run := NewRun("inst", "h", int64(i), report.Summary{CycleTime: float64(i)})
		if err := s.Insert(ctx, run); err != nil {
			t.Fatalf("Insert: %v", err)
		}
		ids = append(ids, run.ID)
	}

	// Newest first.
	runs, err := s.List(ctx, 0)
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if len(runs) != 3 {
		t.Fatalf("List returned %d runs, want 3", len(runs))
	}
	if runs[0].ID != ids[2] || runs[2].ID != ids[0] {
		t.Error("List should return newest first")
	}

	// Limit caps the result.
	runs, err = s.List(ctx, 2)
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if len(runs) != 2 {
		t.Errorf("List(2) returned %d runs, want 2", len(runs))
	}
	if runs[0].ID != ids[2] {
		t.Error("List(2) should start with the newest run")
	}
}
