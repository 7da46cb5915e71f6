package export

import (
	"encoding/json"
	"io"

	"gpumon/internal/source"
)

// ConsoleExporter writes one JSON object per recording to Out.
type ConsoleExporter struct {
	Out io.Writer
}

type consoleEnvelope struct {
	Recording
	// AveragePercent duplicates stats.average on the 0-100 scale the
	// devfreq value is usually displayed in.
	AveragePercent float64 `json:"average_percent"`
	MaxPercent     float64 `json:"max_percent"`
}

func (e ConsoleExporter) Export(rec Recording) error {
	env := consoleEnvelope{
		Recording:      rec,
		AveragePercent: rec.Stats.Average / 10,
		MaxPercent:     source.Percent(rec.Stats.Max),
	}

	enc := json.NewEncoder(e.Out)
	enc.SetEscapeHTML(false)
	return enc.Encode(env)
}
