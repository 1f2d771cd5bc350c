package tracker

import "time"

// PricePoint is a single ingested price/volume observation.
type PricePoint struct {
	Price     float64
	Volume    float64
	Timestamp time.Time
}

// Candle is an OHLCV aggregate over one timeframe bucket. Closed candles are
// immutable once appended to a buffer; only the open candle mutates.
type Candle struct {
	Open      float64
	High      float64
	Low       float64
	Close     float64
	Volume    float64
	Start     time.Time
	End       time.Time
	Timeframe string
}

// Change reports the price movement against the nearest historical sample.
type Change struct {
	PriceChange   float64
	PercentChange float64
	SecondsAgo    int
	OldPrice      float64
	CurrentPrice  float64
}

// Interval is a named change window resolved to seconds. Entries with
// non-positive Seconds are skipped by Snapshot.
type Interval struct {
	Name    string
	Seconds int
}

// SymbolSnapshot is the batch query result for one symbol.
type SymbolSnapshot struct {
	Symbol       string
	CurrentPrice float64
	LastUpdate   time.Time
	Changes      map[string]*Change
	Candles      map[string][]Candle
}
