package alwabp

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
)

var (
	// ErrMissingTaskCount is returned by [Read] when the input is empty
	// or the first non-blank line is not a positive integer.
	ErrMissingTaskCount = errors.New("missing or invalid task count")

	// ErrTruncatedTimeMatrix is returned by [Read] when the input ends
	// before n time rows have been read.
	ErrTruncatedTimeMatrix = errors.New("time matrix ends before all tasks are listed")

	// ErrBadPrecedenceLine is returned by [Read] when a precedence line
	// has fewer than two fields or non-integer endpoints.
	ErrBadPrecedenceLine = errors.New("precedence line must hold two integers")
)

// Read parses an instance from the standard ALWABP text format:
//
//	n
//	t[0][0] t[0][1] ... t[0][k-1]
//	...
//	t[n-1][0] ... t[n-1][k-1]
//	i j        (1-based precedence pairs)
//	-1 -1      (optional terminator)
//
// The first line holds the task count n. Each of the next n lines lists
// the durations of one task for every worker; the literal "Inf" (any
// case) marks an incapable worker. Remaining lines are 1-based precedence
// pairs, terminated by "-1 -1" or end of input. Blank lines are skipped
// throughout.
//
// Parse errors identify the offending line number. Structural problems in
// the parsed data (ragged matrix, cycles, tasks nobody can perform) are
// reported through [New]'s sentinel errors.
func Read(r io.Reader) (*Instance, error) {
	sc := bufio.NewScanner(r)
	sc.Buffer(make([]byte, 0, 64*1024), 1024*1024)

	lineNo := 0
	nextLine := func() (string, bool) {
		for sc.Scan() {
			lineNo++
			line := strings.TrimSpace(sc.Text())
			if line != "" {
				return line, true
			}
		}
		return "", false
	}

	first, ok := nextLine()
	if !ok {
		return nil, ErrMissingTaskCount
	}
	n, err := strconv.Atoi(first)
	if err != nil || n <= 0 {
		return nil, fmt.Errorf("line %d: %w", lineNo, ErrMissingTaskCount)
	}

	times := make([][]float64, 0, n)
	for len(times) < n {
		line, ok := nextLine()
		if !ok {
			return nil, fmt.Errorf("line %d: %w", lineNo, ErrTruncatedTimeMatrix)
		}
		fields := strings.Fields(line)
		row := make([]float64, 0, len(fields))
		for _, f := range fields {
			if strings.EqualFold(f, "inf") {
				row = append(row, Incapable)
				continue
			}
			d, err := strconv.ParseFloat(f, 64)
			if err != nil {
				return nil, fmt.Errorf("line %d: invalid duration %q", lineNo, f)
			}
			row = append(row, d)
		}
		times = append(times, row)
	}

	var edges []Edge
	for {
		line, ok := nextLine()
		if !ok {
			break
		}
		fields := strings.Fields(line)
		if len(fields) < 2 {
			return nil, fmt.Errorf("line %d: %w", lineNo, ErrBadPrecedenceLine)
		}
		i, errI := strconv.Atoi(fields[0])
		j, errJ := strconv.Atoi(fields[1])
		if errI != nil || errJ != nil {
			return nil, fmt.Errorf("line %d: %w", lineNo, ErrBadPrecedenceLine)
		}
		if i == -1 && j == -1 {
			break
		}
		edges = append(edges, Edge{From: i - 1, To: j - 1})
	}
	if err := sc.Err(); err != nil {
		return nil, fmt.Errorf("read instance: %w", err)
	}

	return New(times, edges)
}

// ReadFile parses an instance from the file at path. See [Read] for the
// format.
func ReadFile(path string) (*Instance, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	inst, err := Read(f)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return inst, nil
}
