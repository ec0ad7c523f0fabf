package alwabp

import (
	"bytes"
	"errors"
	"path/filepath"
	"strings"
	"testing"
)

const sampleInstance = `3
2 3
4 2
3 3
1 2
-1 -1
`

func TestRead(t *testing.T) {
	inst, err := Read(strings.NewReader(sampleInstance))
	if err != nil {
		t.Fatalf("Read() error = %v", err)
	}

	if inst.Tasks() != 3 || inst.Workers() != 2 {
		t.Fatalf("parsed %dx%d instance, want 3x2", inst.Tasks(), inst.Workers())
	}
	if got := inst.Time(1, 1); got != 2 {
		t.Errorf("Time(1,1) = %g, want 2", got)
	}
	edges := inst.Edges()
	if len(edges) != 1 || edges[0] != (Edge{From: 0, To: 1}) {
		t.Errorf("Edges() = %v, want [{0 1}]", edges)
	}
}

func TestRead_IncapableAndBlankLines(t *testing.T) {
	input := `
2

1 Inf
inf 3

1 2
`
	inst, err := Read(strings.NewReader(input))
	if err != nil {
		t.Fatalf("Read() error = %v", err)
	}
	if !IsIncapable(inst.Time(0, 1)) {
		t.Error("Time(0,1) should be incapable, Inf literal ignored")
	}
	if !IsIncapable(inst.Time(1, 0)) {
		t.Error("Time(1,0) should be incapable, lowercase inf ignored")
	}
	if len(inst.Edges()) != 1 {
		t.Errorf("Edges() = %v, want one edge without the -1 -1 terminator", inst.Edges())
	}
}

func TestRead_Errors(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  error
	}{
		{"empty input", "", ErrMissingTaskCount},
		{"non-numeric count", "abc\n", ErrMissingTaskCount},
		{"zero count", "0\n", ErrMissingTaskCount},
		{"truncated matrix", "3\n1 2\n", ErrTruncatedTimeMatrix},
		{"short precedence line", sampleRows() + "5\n", ErrBadPrecedenceLine},
		{"non-integer precedence", sampleRows() + "1 x\n", ErrBadPrecedenceLine},
		{"cyclic precedence", sampleRows() + "1 2\n2 1\n", ErrCyclicPrecedence},
		{"edge out of range", sampleRows() + "1 9\n", ErrTaskOutOfRange},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Read(strings.NewReader(tt.input))
			if !errors.Is(err, tt.want) {
				t.Errorf("Read() error = %v, want %v", err, tt.want)
			}
		})
	}
}

func TestRead_InvalidDurationNamesLine(t *testing.T) {
	_, err := Read(strings.NewReader("2\n1 2\n3 x\n"))
	if err == nil || !strings.Contains(err.Error(), "line 3") {
		t.Errorf("Read() error = %v, want a line 3 parse error", err)
	}
}

// sampleRows yields a valid header and time matrix so error cases can
// focus on the precedence section.
func sampleRows() string {
	return "2\n1 2\n3 4\n"
}

func TestWrite_RoundTrip(t *testing.T) {
	orig, err := New([][]float64{
		{2.5, 3},
		{4, Incapable},
		{3, 3},
	}, []Edge{{From: 0, To: 1}, {From: 1, To: 2}})
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}

	var buf bytes.Buffer
	if err := Write(orig, &buf); err != nil {
		t.Fatalf("Write() error = %v", err)
	}

	parsed, err := Read(&buf)
	if err != nil {
		t.Fatalf("Read() error = %v", err)
	}

	if parsed.Tasks() != orig.Tasks() || parsed.Workers() != orig.Workers() {
		t.Fatalf("round trip changed dimensions: %dx%d", parsed.Tasks(), parsed.Workers())
	}
	for task := 0; task < orig.Tasks(); task++ {
		for w := 0; w < orig.Workers(); w++ {
			if parsed.Time(task, w) != orig.Time(task, w) {
				t.Errorf("Time(%d,%d) = %g, want %g", task, w, parsed.Time(task, w), orig.Time(task, w))
			}
		}
	}
	if len(parsed.Edges()) != len(orig.Edges()) {
		t.Errorf("round trip changed edges: %v", parsed.Edges())
	}
}

func TestReadWriteFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "instance.txt")

	inst, err := Read(strings.NewReader(sampleInstance))
	if err != nil {
		t.Fatalf("Read() error = %v", err)
	}
	if err := WriteFile(inst, path); err != nil {
		t.Fatalf("WriteFile() error = %v", err)
	}

	back, err := ReadFile(path)
	if err != nil {
		t.Fatalf("ReadFile() error = %v", err)
	}
	if back.Tasks() != 3 {
		t.Errorf("ReadFile() Tasks() = %d, want 3", back.Tasks())
	}
}

func TestReadFile_Missing(t *testing.T) {
	if _, err := ReadFile(filepath.Join(t.TempDir(), "missing.txt")); err == nil {
		t.Error("ReadFile() on a missing path should fail")
	}
}
