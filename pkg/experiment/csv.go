package experiment

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
)

// WriteCSV writes records to a CSV file at path, creating parent
// directories as needed.
func WriteCSV(path string, records []Record) error {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return err
		}
	}
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()
	return writeCSV(f, records)
}

func writeCSV(w io.Writer, records []Record) error {
	cw := csv.NewWriter(w)
	defer cw.Flush()

	header := []string{
		"name", "tasks", "workers", "runs",
		"cycle_best", "cycle_worst", "cycle_mean", "cycle_std",
		"gap_pct",
		"time_best_ms", "time_mean_ms",
	}
	if err := cw.Write(header); err != nil {
		return err
	}

	for _, r := range records {
		gap := ""
		if r.GapPct >= 0 {
			gap = ftoa(r.GapPct)
		}
		row := []string{
			r.Name,
			strconv.Itoa(r.Tasks),
			strconv.Itoa(r.Workers),
			strconv.Itoa(r.Runs),

			ftoa(r.CycleBest),
			ftoa(r.CycleWorst),
			ftoa(r.CycleMean),
			ftoa(r.CycleStd),

			gap,

			ftoa(float64(r.TimeBest.Microseconds()) / 1000.0),
			ftoa(float64(r.TimeMean.Microseconds()) / 1000.0),
		}
		if err := cw.Write(row); err != nil {
			return err
		}
	}

	return cw.Error()
}

func ftoa(v float64) string {
	return fmt.Sprintf("%.3f", v)
}
