package market

import (
	"context"
	"errors"
	"time"
)

// ErrUnsupportedTimeframe indicates the exchange has no kline source for the
// requested timeframe (sub-minute frames are live-only).
var ErrUnsupportedTimeframe = errors.New("market: unsupported timeframe")

// Provider exposes exchange-agnostic market data for the screener.
type Provider interface {
	// BulkTickers returns the current 24h ticker stats for every symbol the
	// exchange lists, in one request.
	BulkTickers(ctx context.Context) ([]Ticker, error)
	// Klines returns up to limit historical OHLCV bars for the given engine
	// timeframe name (e.g. "1m", "4h"), oldest first.
	Klines(ctx context.Context, symbol, timeframe string, limit int) ([]Kline, error)
}

// Ticker is a normalized 24h ticker observation.
type Ticker struct {
	Symbol           string
	LastPrice        float64
	Volume           float64
	High24h          float64
	Low24h           float64
	ChangePercent24h float64
	Timestamp        time.Time
}

// Kline is a single historical OHLCV bar.
type Kline struct {
	OpenTime  int64 // milliseconds
	Open      float64
	High      float64
	Low       float64
	Close     float64
	Volume    float64
	CloseTime int64 // milliseconds
}
