// Package track implements the task timing and daily-aggregation engine.
package track

import (
	"fmt"
	"time"
)

// Duration is a non-negative elapsed span with one-second granularity.
// Sub-second remainders are truncated.
type Duration struct {
	secs int64
}

// Seconds constructs a Duration from a second count. Negative input
// clamps to zero.
func Seconds(n int64) Duration {
	if n < 0 {
		n = 0
	}
	return Duration{secs: n}
}

// Between returns the span from start to end. Callers are expected to
// pass end >= start; an inverted pair clamps to zero rather than
// producing a negative span.
func Between(start, end time.Time) Duration {
	if end.Before(start) {
		return Duration{}
	}
	return Duration{secs: int64(end.Sub(start) / time.Second)}
}

// Add returns the sum of d and other.
func (d Duration) Add(other Duration) Duration {
	return Duration{secs: d.secs + other.secs}
}

// Seconds returns the whole-second count.
func (d Duration) Seconds() int64 {
	return d.secs
}

// FormatHMS renders the span as zero-padded HH:MM:SS. Hours are not
// wrapped at 24, so long-lived totals stay readable.
func (d Duration) FormatHMS() string {
	h := d.secs / 3600
	m := (d.secs % 3600) / 60
	s := d.secs % 60
	return fmt.Sprintf("%02d:%02d:%02d", h, m, s)
}

// FormatCompact renders the span as "XhYm", the short form used in
// statistics listings.
func (d Duration) FormatCompact() string {
	h := d.secs / 3600
	m := (d.secs % 3600) / 60
	return fmt.Sprintf("%dh %dm", h, m)
}
