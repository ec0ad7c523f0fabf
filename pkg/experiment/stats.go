package experiment

import "math"

// Stats summarizes a sample of cycle times.
type Stats struct {
	N     int
	Best  float64
	Worst float64
	Mean  float64
	Std   float64
}

// CalcStats computes min/max/mean and the sample standard deviation.
// A sample of fewer than two values has zero deviation.
func CalcStats(values []float64) Stats {
	s := Stats{N: len(values)}
	if s.N == 0 {
		return s
	}

	best := values[0]
	worst := values[0]
	sum := 0.0
	for _, v := range values {
		if v < best {
			best = v
		}
		if v > worst {
			worst = v
		}
		sum += v
	}
	mean := sum / float64(s.N)

	variance := 0.0
	if s.N >= 2 {
		for _, v := range values {
			d := v - mean
			variance += d * d
		}
		variance /= float64(s.N - 1)
	}

	s.Best = best
	s.Worst = worst
	s.Mean = mean
	s.Std = math.Sqrt(variance)
	return s
}
