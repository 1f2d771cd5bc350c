package logic

import (
	"strings"
	"time"

	"screener-api/internal/types"
	"screener-api/pkg/tracker"
)

func toCandleData(c tracker.Candle) types.CandleData {
	return types.CandleData{
		Open:      c.Open,
		High:      c.High,
		Low:       c.Low,
		Close:     c.Close,
		Volume:    c.Volume,
		StartTime: c.Start.UTC().Format(time.RFC3339),
		EndTime:   c.End.UTC().Format(time.RFC3339),
		Timestamp: c.Start.UnixMilli(),
		Timeframe: c.Timeframe,
	}
}

func toCandleSlice(candles []tracker.Candle) []types.CandleData {
	out := make([]types.CandleData, 0, len(candles))
	for _, c := range candles {
		out = append(out, toCandleData(c))
	}
	return out
}

func toPriceChange(c *tracker.Change) *types.PriceChange {
	if c == nil {
		return nil
	}
	return &types.PriceChange{
		PriceChange:   c.PriceChange,
		PercentChange: c.PercentChange,
		SecondsAgo:    float64(c.SecondsAgo),
		OldPrice:      c.OldPrice,
		CurrentPrice:  c.CurrentPrice,
	}
}

// splitCSV splits a comma-separated query value, dropping empty entries.
func splitCSV(raw string) []string {
	parts := strings.Split(raw, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		p = strings.TrimSpace(p)
		if p == "" {
			continue
		}
		out = append(out, p)
	}
	return out
}

// parseIntervals resolves interval names like "15s" or "24h" into change
// windows, silently dropping unknown names.
func parseIntervals(names []string) []tracker.Interval {
	out := make([]tracker.Interval, 0, len(names))
	for _, name := range names {
		secs, ok := tracker.IntervalSeconds(name)
		if !ok {
			continue
		}
		out = append(out, tracker.Interval{Name: name, Seconds: secs})
	}
	return out
}

func nowStamp() string {
	return time.Now().UTC().Format(time.RFC3339Nano)
}
