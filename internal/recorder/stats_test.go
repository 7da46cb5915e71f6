package recorder

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"gpumon/internal/source"
)

func recorderWithLog(samples []Sample) *Recorder {
	r := New(Config{Source: &stubSource{}, Interval: time.Millisecond})
	r.log = samples
	return r
}

func TestStatsKnownValues(t *testing.T) {
	t.Parallel()
	r := recorderWithLog([]Sample{
		{Elapsed: 0.00, Value: 100},
		{Elapsed: 0.01, Value: 200},
		{Elapsed: 0.02, Value: 300},
	})

	st := r.Stats()
	assert.Equal(t, 3, st.Count)
	assert.Equal(t, 300, st.Max)
	assert.InDelta(t, 200.0, st.Average, 1e-9)
	// Sample standard deviation of {100, 200, 300}.
	assert.InDelta(t, 100.0, st.StdDev, 1e-9)
}

func TestStatsEmptyLog(t *testing.T) {
	t.Parallel()
	r := New(Config{Source: &stubSource{}})
	assert.Equal(t, Stats{}, r.Stats())
}

func TestStatsSingleSampleHasZeroStdDev(t *testing.T) {
	t.Parallel()
	r := recorderWithLog([]Sample{{Elapsed: 0, Value: 512}})

	st := r.Stats()
	assert.Equal(t, 1, st.Count)
	assert.Equal(t, 512, st.Max)
	assert.InDelta(t, 512.0, st.Average, 1e-9)
	assert.Zero(t, st.StdDev)
}

func TestPercentConversion(t *testing.T) {
	t.Parallel()
	assert.InDelta(t, 51.2, source.Percent(512), 1e-9)
	assert.InDelta(t, 100.0, source.Percent(1000), 1e-9)
	assert.Zero(t, source.Percent(0))
}
