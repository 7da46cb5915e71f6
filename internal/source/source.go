package source

import "errors"

var (
	// ErrUnavailable means the source could not be opened or read. The
	// device may simply not be present yet.
	ErrUnavailable = errors.New("load source unavailable")

	// ErrBadValue means the source was read but its content is not a
	// valid load reading.
	ErrBadValue = errors.New("invalid load reading")
)

// Source yields one GPU load reading per call. Readings are integers in
// the devfreq native range 0-1000.
type Source interface {
	// ReadOnce opens the source, reads a single value and closes it.
	// It touches no shared state and is safe to call from any goroutine.
	ReadOnce() (int, error)

	// Probe reports whether the source is currently readable.
	Probe() error
}

// Percent converts a 0-1000 devfreq load to a percentage for display.
func Percent(v int) float64 {
	return float64(v) / 10
}
