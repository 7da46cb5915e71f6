package recorder

import "math"

// Stats summarizes one session's samples. The zero value is the defined
// result for an empty log.
type Stats struct {
	// Average load over the session, 0-1000 scale.
	Average float64 `json:"average"`
	// Max is the highest recorded load.
	Max int `json:"max"`
	// StdDev is the sample standard deviation (n-1 divisor); 0 when
	// fewer than two samples were recorded.
	StdDev float64 `json:"std_dev"`
	// Count is the number of recorded samples.
	Count int `json:"count"`
}

// Stats computes summary statistics over a snapshot of the current log.
// Safe to call in any state, including on an empty log.
func (r *Recorder) Stats() Stats {
	data := r.Data()
	if len(data) == 0 {
		return Stats{}
	}

	var sum float64
	max := data[0].Value
	for _, s := range data {
		sum += float64(s.Value)
		if s.Value > max {
			max = s.Value
		}
	}
	avg := sum / float64(len(data))

	var stddev float64
	if len(data) > 1 {
		var sq float64
		for _, s := range data {
			d := float64(s.Value) - avg
			sq += d * d
		}
		stddev = math.Sqrt(sq / float64(len(data)-1))
	}

	return Stats{
		Average: avg,
		Max:     max,
		StdDev:  stddev,
		Count:   len(data),
	}
}
