package alwabp

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strconv"
)

// Write encodes an instance in the text format accepted by [Read].
// Durations are written with minimal precision; incapable pairs are
// written as "Inf". Precedence pairs are 1-based and terminated by the
// "-1 -1" sentinel.
func Write(inst *Instance, w io.Writer) error {
	bw := bufio.NewWriter(w)

	fmt.Fprintln(bw, inst.Tasks())
	for t := 0; t < inst.Tasks(); t++ {
		for wk := 0; wk < inst.Workers(); wk++ {
			if wk > 0 {
				bw.WriteByte(' ')
			}
			d := inst.Time(t, wk)
			if IsIncapable(d) {
				bw.WriteString("Inf")
			} else {
				bw.WriteString(strconv.FormatFloat(d, 'g', -1, 64))
			}
		}
		bw.WriteByte('\n')
	}
	for _, e := range inst.Edges() {
		fmt.Fprintf(bw, "%d %d\n", e.From+1, e.To+1)
	}
	fmt.Fprintln(bw, "-1 -1")

	return bw.Flush()
}

// WriteFile writes an instance to the file at path.
func WriteFile(inst *Instance, path string) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}
	defer f.Close()
	return Write(inst, f)
}
