package tracker

import "time"

// Timeframe names a fixed candle bucket width.
type Timeframe struct {
	Name     string
	Duration time.Duration
}

// DefaultTimeframes is the canonical set of supported timeframes, ordered from
// shortest to longest. The set is closed: buffers are keyed by these names and
// nothing else.
var DefaultTimeframes = []Timeframe{
	{Name: "15s", Duration: 15 * time.Second},
	{Name: "30s", Duration: 30 * time.Second},
	{Name: "1m", Duration: time.Minute},
	{Name: "5m", Duration: 5 * time.Minute},
	{Name: "15m", Duration: 15 * time.Minute},
	{Name: "1h", Duration: time.Hour},
	{Name: "4h", Duration: 4 * time.Hour},
	{Name: "1d", Duration: 24 * time.Hour},
}

// TimeframeByName resolves a timeframe from the default set.
func TimeframeByName(name string) (Timeframe, bool) {
	for _, tf := range DefaultTimeframes {
		if tf.Name == name {
			return tf, true
		}
	}
	return Timeframe{}, false
}

// BucketStart aligns ts down to the start of its bucket. All supported
// durations divide 24h evenly, so Truncate matches epoch-aligned flooring.
func (tf Timeframe) BucketStart(ts time.Time) time.Time {
	return ts.Truncate(tf.Duration)
}

// intervalSeconds maps the change-interval identifiers accepted by the query
// layer to their length in seconds.
var intervalSeconds = map[string]int{
	"2s": 2, "5s": 5, "10s": 10, "15s": 15, "30s": 30,
	"1m": 60, "2m": 120, "3m": 180, "5m": 300, "10m": 600,
	"15m": 900, "20m": 1200, "30m": 1800, "1h": 3600,
	"4h": 14400, "24h": 86400,
}

// IntervalSeconds converts a change-interval name such as "30s" or "1h" to
// seconds. Unknown names report ok=false and are skipped by callers.
func IntervalSeconds(name string) (int, bool) {
	secs, ok := intervalSeconds[name]
	return secs, ok
}

// defaultCandleCap returns the bounded closed-candle buffer size for a
// timeframe duration. Shorter timeframes keep more bars.
func defaultCandleCap(d time.Duration) int {
	switch {
	case d <= time.Minute:
		return 100
	case d <= 15*time.Minute:
		return 50
	default:
		return 30
	}
}
