package export

import (
	"time"

	"gpumon/internal/recorder"
)

// Recording is a finished session ready for export.
type Recording struct {
	RecordedAt time.Time         `json:"recorded_at"`
	Interval   time.Duration     `json:"interval_ns"`
	Samples    []recorder.Sample `json:"samples"`
	Stats      recorder.Stats    `json:"stats"`
}

type Exporter interface {
	Export(rec Recording) error
}
