package dist

import "github.com/montanaflynn/stats"

// Summary is the empirical distribution report for one (alpha, beta)
// hull's correlation samples across independently keyed trials (spec
// §4.7 step 3, §6.1's dist output columns).
type Summary struct {
	N      int
	Mean   float64
	StdDev float64
	Min    float64
	Max    float64
}

// Summarize reduces a slice of per-key correlation samples to a Summary.
func Summarize(samples []float64) (Summary, error) {
	data := stats.LoadRawData(samples)

	mean, err := data.Mean()
	if err != nil {
		return Summary{}, err
	}
	stddev, err := data.StandardDeviation()
	if err != nil {
		return Summary{}, err
	}
	min, err := data.Min()
	if err != nil {
		return Summary{}, err
	}
	max, err := data.Max()
	if err != nil {
		return Summary{}, err
	}

	return Summary{
		N:      len(samples),
		Mean:   mean,
		StdDev: stddev,
		Min:    min,
		Max:    max,
	}, nil
}
