// Package recorder samples a GPU load source at a fixed cadence and keeps
// the readings of the current session in memory for later analysis.
package recorder

import (
	"sync"
	"time"

	"go.uber.org/zap"

	"gpumon/constants"
	"gpumon/internal/source"
)

// Sample is one recorded reading: seconds elapsed since the session
// started and the raw devfreq load (0-1000). Immutable once recorded.
type Sample struct {
	Elapsed float64 `json:"elapsed"`
	Value   int     `json:"value"`
}

// State is the session lifecycle of a Recorder.
type State int

const (
	StateIdle State = iota
	StateRunning
	StateStopped
)

func (s State) String() string {
	switch s {
	case StateIdle:
		return "idle"
	case StateRunning:
		return "running"
	case StateStopped:
		return "stopped"
	default:
		return "unknown"
	}
}

// Config carries construction options for a Recorder. The zero value is
// usable: it records the default devfreq GPU load at the default interval
// without logging.
type Config struct {
	Source   source.Source // default: source.DevfreqLoad{}
	Interval time.Duration // default 10ms, floor 1ms
	Logger   *zap.Logger   // default: no-op
}

// Recorder owns a background sampling goroutine and an append-only log of
// the current session. A single mutex guards both the log and the session
// state, so queries always see a consistent snapshot.
type Recorder struct {
	src      source.Source
	interval time.Duration
	logger   *zap.Logger

	mu     sync.Mutex
	state  State
	log    []Sample
	stopCh chan struct{}
	doneCh chan struct{}
}

// New builds a Recorder. The source is probed once so a missing device
// shows up in the logs early, but absence is not an error: the device may
// appear later, and Current works without a session either way.
func New(cfg Config) *Recorder {
	src := cfg.Source
	if src == nil {
		src = source.DevfreqLoad{}
	}
	interval := cfg.Interval
	if interval == 0 {
		interval = constants.DefaultSamplingInterval
	}
	if interval < constants.MinSamplingInterval {
		interval = constants.MinSamplingInterval
	}
	logger := cfg.Logger
	if logger == nil {
		logger = zap.NewNop()
	}

	if err := src.Probe(); err != nil {
		logger.Warn("load source not readable, sampling may yield nothing", zap.Error(err))
	}

	return &Recorder{
		src:      src,
		interval: interval,
		logger:   logger,
	}
}

// Interval returns the configured sampling interval.
func (r *Recorder) Interval() time.Duration {
	return r.interval
}

// Start transitions to Running, clears any previous session's log and
// launches the sampling loop. Calling Start while already running is a
// no-op with a warning.
func (r *Recorder) Start() {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.state == StateRunning {
		r.logger.Warn("recorder already running, start ignored")
		return
	}

	r.log = nil
	r.state = StateRunning
	r.stopCh = make(chan struct{})
	r.doneCh = make(chan struct{})

	r.logger.Debug("recording started",
		zap.Duration("interval", r.interval),
		zap.Float64("hz", float64(time.Second)/float64(r.interval)))

	go r.run(time.Now(), r.stopCh, r.doneCh)
}

// Stop signals the sampling loop and blocks until it has exited. No
// samples are appended after Stop returns. Stopping an idle or already
// stopped recorder is a no-op.
func (r *Recorder) Stop() {
	r.mu.Lock()
	if r.state != StateRunning {
		r.mu.Unlock()
		return
	}
	r.state = StateStopped
	stopCh, doneCh := r.stopCh, r.doneCh
	r.mu.Unlock()

	close(stopCh)
	<-doneCh

	r.logger.Debug("recording stopped", zap.Int("samples", r.Stats().Count))
}

// State returns the current session state.
func (r *Recorder) State() State {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.state
}

// Current reads the load source once, regardless of session state. It
// never touches the log.
func (r *Recorder) Current() (int, error) {
	return r.src.ReadOnce()
}

// Data returns a copy of the current session's log in recording order.
func (r *Recorder) Data() []Sample {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]Sample(nil), r.log...)
}

// run is the sampling loop. Deadlines are absolute (start + n*interval)
// so variable read latency does not accumulate into drift. When a
// deadline is already past the loop re-anchors to now instead of firing
// a burst of catch-up ticks.
func (r *Recorder) run(start time.Time, stopCh <-chan struct{}, doneCh chan<- struct{}) {
	defer close(doneCh)

	timer := time.NewTimer(0)
	if !timer.Stop() {
		<-timer.C
	}
	defer timer.Stop()

	next := start
	var lastWarn time.Time

	for {
		v, err := r.src.ReadOnce()
		if err != nil {
			// Skip the tick. Warn at most once per second so a
			// missing device does not flood the log at 1 kHz.
			if now := time.Now(); now.Sub(lastWarn) >= time.Second {
				lastWarn = now
				r.logger.Warn("sample skipped", zap.Error(err))
			}
		} else {
			elapsed := time.Since(start).Seconds()
			r.mu.Lock()
			if r.state == StateRunning {
				r.log = append(r.log, Sample{Elapsed: elapsed, Value: v})
			}
			r.mu.Unlock()
		}

		next = next.Add(r.interval)
		wait := time.Until(next)
		if wait < 0 {
			next = time.Now()
			wait = 0
		}

		timer.Reset(wait)
		select {
		case <-stopCh:
			return
		case <-timer.C:
		}
	}
}
