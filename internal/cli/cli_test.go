package cli

import (
	"bytes"
	"testing"

	"github.com/charmbracelet/log"

	apperrors "github.com/MarquinhoCF/alwabp-solver/pkg/errors"
	"github.com/MarquinhoCF/alwabp-solver/pkg/solver"
)

func TestRootCommand(t *testing.T) {
	c := New(&bytes.Buffer{}, log.InfoLevel)
	root := c.RootCommand()

	if root.Use != "alwabp" {
		t.Errorf("Use = %q, want alwabp", root.Use)
	}

	want := []string{"solve", "batch", "serve", "visualize", "generate", "cache", "completion"}
	for _, name := range want {
		found := false
		for _, cmd := range root.Commands() {
			if cmd.Name() == name {
				found = true
				break
			}
		}
		if !found {
			t.Errorf("root command missing subcommand %q", name)
		}
	}
}

func TestSetLogLevel(t *testing.T) {
	c := New(&bytes.Buffer{}, log.InfoLevel)
	c.SetLogLevel(log.DebugLevel)
	if c.Logger.GetLevel() != log.DebugLevel {
		t.Errorf("level = %v, want debug", c.Logger.GetLevel())
	}
}

func TestVisualizeRejectsUnknownFormat(t *testing.T) {
	c := New(&bytes.Buffer{}, log.InfoLevel)
	root := c.RootCommand()
	root.SetOut(&bytes.Buffer{})
	root.SetErr(&bytes.Buffer{})
	root.SetArgs([]string{"visualize", "missing.txt", "--format", "gif"})

	err := root.Execute()
	if err == nil {
		t.Fatal("unknown format should fail")
	}
	if apperrors.GetCode(err) != apperrors.ErrCodeUnsupported {
		t.Errorf("error code = %q, want %q", apperrors.GetCode(err), apperrors.ErrCodeUnsupported)
	}
}

func TestSolveKey(t *testing.T) {
	cfg := solver.DefaultConfig()
	instance := []byte("3\n2 3\n4 2\n3 3\n-1 -1\n")

	k1 := solveKey(instance, cfg, 42)
	k2 := solveKey(instance, cfg, 42)
	if k1 != k2 {
		t.Error("solveKey should be deterministic")
	}

	if solveKey(instance, cfg, 43) == k1 {
		t.Error("different seeds should produce different keys")
	}

	cfg2 := cfg
	cfg2.CoolingRate = 0.9
	if solveKey(instance, cfg2, 42) == k1 {
		t.Error("different configs should produce different keys")
	}

	if solveKey([]byte("other"), cfg, 42) == k1 {
		t.Error("different instances should produce different keys")
	}
}
