package output

import (
	"fmt"
	"io"
	"time"

	"github.com/HdrHistogram/hdrhistogram-go"
)

// Timing aggregates per-test durations for the post-run summary.
type Timing struct {
	histogram *hdrhistogram.Histogram
}

// NewTiming returns a recorder covering 1us to 60s at 3 significant
// digits.
func NewTiming() *Timing {
	return &Timing{histogram: hdrhistogram.New(1, 60_000_000, 3)}
}

// Record adds one test duration.
func (t *Timing) Record(d time.Duration) {
	_ = t.histogram.RecordValue(d.Microseconds())
}

// Count reports how many durations were recorded.
func (t *Timing) Count() int64 {
	return t.histogram.TotalCount()
}

// WriteSummary renders min/p50/p95/p99/max when anything was recorded.
func (t *Timing) WriteSummary(w io.Writer) {
	if t.histogram.TotalCount() == 0 {
		return
	}
	fmt.Fprintf(w, "Timing: min %s, p50 %s, p95 %s, p99 %s, max %s\n",
		micros(t.histogram.Min()),
		micros(t.histogram.ValueAtQuantile(50)),
		micros(t.histogram.ValueAtQuantile(95)),
		micros(t.histogram.ValueAtQuantile(99)),
		micros(t.histogram.Max()),
	)
}

func micros(v int64) string {
	return (time.Duration(v) * time.Microsecond).String()
}
