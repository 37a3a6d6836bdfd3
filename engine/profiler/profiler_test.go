package profiler

import (
	"bytes"
	"encoding/json"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTickLogsOncePerInterval(t *testing.T) {
	var buf bytes.Buffer
	p := NewProfiler(zerolog.New(&buf))

	start := time.Unix(1000, 0)
	clock := start
	p.now = func() time.Time { return clock }
	p.lastTime = start

	for i := range 9 {
		clock = start.Add(time.Duration(i+1) * 100 * time.Millisecond)
		assert.False(t, p.Tick(i%3 == 0))
	}
	assert.Zero(t, buf.Len())

	clock = start.Add(time.Second)
	require.True(t, p.Tick(false))

	var line map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &line))
	assert.Equal(t, "frame stats", line["message"])
	assert.Equal(t, "profiler", line["component"])
	assert.InDelta(t, 10.0, line["fps"], 1e-9)
	assert.InDelta(t, 3.0, line["camera_updates_per_sec"], 1e-9)

	buf.Reset()
	clock = clock.Add(10 * time.Millisecond)
	assert.False(t, p.Tick(true), "counters restart after a report")
}

func TestSetInterval(t *testing.T) {
	p := NewProfiler(zerolog.Nop())
	p.SetInterval(0)
	assert.Equal(t, time.Second, p.updateInterval)
	p.SetInterval(250 * time.Millisecond)
	assert.Equal(t, 250*time.Millisecond, p.updateInterval)
}
