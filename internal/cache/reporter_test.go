package cache

import (
	"bytes"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// syncBuffer lets the report goroutine write while the test reads.
type syncBuffer struct {
	mu  sync.Mutex
	buf bytes.Buffer
}

func (b *syncBuffer) Write(p []byte) (int, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.buf.Write(p)
}

func (b *syncBuffer) String() string {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.buf.String()
}

func TestReporter_ReportFields(t *testing.T) {
	c := newTestCache[string, int](t, 4)
	c.Put("a", 1)
	c.Get("a")
	c.Get("b")

	var buf syncBuffer
	r := NewReporter(c, ReporterConfig{Logger: zerolog.New(&buf)})
	defer r.Close()

	r.Report()

	out := buf.String()
	assert.Contains(t, out, `"message":"cache metrics"`)
	assert.Contains(t, out, `"hits":1`)
	assert.Contains(t, out, `"misses":1`)
	assert.Contains(t, out, `"hit_rate":0.5`)
	assert.Contains(t, out, `"size":1`)
	assert.Contains(t, out, `"capacity":4`)
}

func TestReporter_BackgroundLoop(t *testing.T) {
	c := newTestCache[string, int](t, 4)

	var buf syncBuffer
	r := NewReporter(c, ReporterConfig{
		Interval: 10 * time.Millisecond,
		Logger:   zerolog.New(&buf),
	})
	defer r.Close()

	require.Eventually(t, func() bool {
		return strings.Count(buf.String(), "cache metrics") >= 2
	}, time.Second, 5*time.Millisecond)
}

func TestReporter_CloseIdempotent(t *testing.T) {
	c := newTestCache[string, int](t, 1)
	r := NewReporter(c, ReporterConfig{Interval: 5 * time.Millisecond, Logger: zerolog.Nop()})

	require.NoError(t, r.Close())
	require.NoError(t, r.Close())
}
