package experiment

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
)

// ReadManifest parses a CSV case manifest.
//
// Each row names one case: name, instance path, and an optional known
// optimal cycle time. A header row starting with "name" is skipped.
//
//	name,path,optimal
//	hes_4,instances/heskia_4.txt,316
//	hes_5,instances/heskia_5.txt,
func ReadManifest(r io.Reader) ([]Case, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = -1
	cr.TrimLeadingSpace = true

	var cases []Case
	line := 0
	for {
		row, err := cr.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("manifest: %w", err)
		}
		line++
		if len(row) == 0 || (line == 1 && strings.EqualFold(row[0], "name")) {
			continue
		}
		if len(row) < 2 {
			return nil, fmt.Errorf("manifest line %d: expected name and path", line)
		}

		c := Case{Name: row[0], Path: row[1]}
		if len(row) >= 3 && strings.TrimSpace(row[2]) != "" {
			opt, err := strconv.ParseFloat(strings.TrimSpace(row[2]), 64)
			if err != nil {
				return nil, fmt.Errorf("manifest line %d: bad optimal %q: %w", line, row[2], err)
			}
			c.Optimal = opt
		}
		cases = append(cases, c)
	}
	return cases, nil
}

// LoadManifest reads a case manifest from a file.
func LoadManifest(path string) ([]Case, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", path, err)
	}
	defer f.Close()
	return ReadManifest(f)
}
