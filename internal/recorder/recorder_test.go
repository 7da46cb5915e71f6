package recorder

import (
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"

	"gpumon/internal/source"
)

// stubSource is a settable in-memory load source.
type stubSource struct {
	mu       sync.Mutex
	value    int
	err      error
	probeErr error
}

func (s *stubSource) ReadOnce() (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.err != nil {
		return 0, s.err
	}
	return s.value, nil
}

func (s *stubSource) Probe() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.probeErr
}

func (s *stubSource) set(value int, err error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.value, s.err = value, err
}

// waitForSamples polls until the log holds at least n samples.
func waitForSamples(t *testing.T, r *Recorder, n int) {
	t.Helper()
	deadline := time.Now().Add(5 * time.Second)
	for time.Now().Before(deadline) {
		if len(r.Data()) >= n {
			return
		}
		time.Sleep(time.Millisecond)
	}
	t.Fatalf("timed out waiting for %d samples, have %d", n, len(r.Data()))
}

func TestStartStopLeavesNoBackgroundActivity(t *testing.T) {
	t.Parallel()
	src := &stubSource{value: 500}
	r := New(Config{Source: src, Interval: time.Millisecond})

	r.Start()
	waitForSamples(t, r, 3)
	r.Stop()

	n := len(r.Data())
	time.Sleep(20 * time.Millisecond)
	assert.Equal(t, n, len(r.Data()), "log grew after Stop returned")
	assert.Equal(t, StateStopped, r.State())
}

func TestDataIsOrderedAndSkipsFailedTicks(t *testing.T) {
	t.Parallel()
	src := &stubSource{value: 500}
	r := New(Config{Source: src, Interval: time.Millisecond})

	r.Start()
	waitForSamples(t, r, 5)
	src.set(0, source.ErrUnavailable)
	time.Sleep(10 * time.Millisecond)
	src.set(700, nil)
	waitForSamples(t, r, 6)
	r.Stop()

	data := r.Data()
	for i, s := range data {
		assert.Contains(t, []int{500, 700}, s.Value, "failed tick recorded")
		if i > 0 {
			assert.GreaterOrEqual(t, s.Elapsed, data[i-1].Elapsed)
		}
	}
}

func TestConsecutiveSessionsAreIndependent(t *testing.T) {
	t.Parallel()
	src := &stubSource{value: 111}
	r := New(Config{Source: src, Interval: time.Millisecond})

	r.Start()
	waitForSamples(t, r, 2)
	r.Stop()
	require.NotEmpty(t, r.Data())

	src.set(222, nil)
	r.Start()
	waitForSamples(t, r, 2)
	r.Stop()

	for _, s := range r.Data() {
		assert.Equal(t, 222, s.Value, "second session leaked a first-session sample")
	}
}

func TestStartWhileRunningIsNoopWithWarning(t *testing.T) {
	t.Parallel()
	core, logs := observer.New(zap.WarnLevel)
	src := &stubSource{value: 500}
	r := New(Config{Source: src, Interval: time.Millisecond, Logger: zap.New(core)})

	r.Start()
	defer r.Stop()
	waitForSamples(t, r, 1)

	before := len(r.Data())
	r.Start()
	assert.Equal(t, 1, logs.FilterMessage("recorder already running, start ignored").Len())
	assert.GreaterOrEqual(t, len(r.Data()), before, "redundant Start cleared the log")
	assert.Equal(t, StateRunning, r.State())
}

func TestStopWhenNotRunningIsNoop(t *testing.T) {
	t.Parallel()
	r := New(Config{Source: &stubSource{value: 1}, Interval: time.Millisecond})

	r.Stop() // idle
	assert.Equal(t, StateIdle, r.State())

	r.Start()
	r.Stop()
	r.Stop() // already stopped
	assert.Equal(t, StateStopped, r.State())
}

func TestCurrentDoesNotTouchLog(t *testing.T) {
	t.Parallel()
	src := &stubSource{err: source.ErrUnavailable, probeErr: source.ErrUnavailable}
	r := New(Config{Source: src, Interval: time.Millisecond})

	_, err := r.Current()
	require.ErrorIs(t, err, source.ErrUnavailable)
	assert.Empty(t, r.Data())

	src.set(512, nil)
	v, err := r.Current()
	require.NoError(t, err)
	assert.Equal(t, 512, v)
	assert.Empty(t, r.Data(), "Current appended to the log")
}

func TestUnreadableSourceWarnsAtConstruction(t *testing.T) {
	t.Parallel()
	core, logs := observer.New(zap.WarnLevel)
	New(Config{
		Source: &stubSource{probeErr: source.ErrUnavailable},
		Logger: zap.New(core),
	})
	assert.Equal(t, 1, logs.FilterMessage("load source not readable, sampling may yield nothing").Len())
}

func TestIntervalFloor(t *testing.T) {
	t.Parallel()
	r := New(Config{Source: &stubSource{}, Interval: time.Microsecond})
	assert.Equal(t, time.Millisecond, r.Interval())

	r = New(Config{Source: &stubSource{}})
	assert.Equal(t, 10*time.Millisecond, r.Interval())
}
