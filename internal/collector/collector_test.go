package collector

import (
	"context"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"screener-api/pkg/market"
	"screener-api/pkg/tracker"
)

type fakeProvider struct {
	mu       sync.Mutex
	tickers  []market.Ticker
	klineErr error
	bars     int
}

func (f *fakeProvider) BulkTickers(ctx context.Context) ([]market.Ticker, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]market.Ticker(nil), f.tickers...), nil
}

func (f *fakeProvider) Klines(ctx context.Context, symbol, timeframe string, limit int) ([]market.Kline, error) {
	if timeframe == "15s" || timeframe == "30s" {
		return nil, fmt.Errorf("%w: %q", market.ErrUnsupportedTimeframe, timeframe)
	}
	if f.klineErr != nil {
		return nil, f.klineErr
	}
	bars := f.bars
	if bars == 0 {
		bars = 3
	}
	tf, _ := tracker.TimeframeByName(timeframe)
	step := tf.Duration.Milliseconds()
	base := time.Date(2024, 5, 1, 0, 0, 0, 0, time.UTC).UnixMilli()
	out := make([]market.Kline, 0, bars)
	for i := 0; i < bars; i++ {
		open := 100.0 + float64(i)
		out = append(out, market.Kline{
			OpenTime:  base + int64(i)*step,
			Open:      open,
			High:      open + 1,
			Low:       open - 1,
			Close:     open + 0.5,
			Volume:    10,
			CloseTime: base + int64(i+1)*step - 1,
		})
	}
	return out, nil
}

type fakePersist struct {
	mu      sync.Mutex
	batches [][]market.Ticker
}

func (f *fakePersist) RecordTickers(ctx context.Context, provider string, tickers []market.Ticker) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.batches = append(f.batches, append([]market.Ticker(nil), tickers...))
	return nil
}

func newTestCollector(provider market.Provider, persist market.Persistence, universe ...string) (*Collector, *tracker.Registry) {
	reg := tracker.New(tracker.Config{})
	c := New(Config{
		Provider:     provider,
		ProviderName: "mexc",
		Registry:     reg,
		Persist:      persist,
		Universe:     universe,
		SeedWorkers:  4,
	})
	return c, reg
}

func TestPollOnceIngestsUniverseOnly(t *testing.T) {
	now := time.Now().UTC()
	provider := &fakeProvider{tickers: []market.Ticker{
		{Symbol: "BTCUSDT", LastPrice: 65000, Volume: 12, Timestamp: now},
		{Symbol: "ETHUSDT", LastPrice: 3200, Volume: 5, Timestamp: now},
		{Symbol: "UNLISTEDUSDT", LastPrice: 1, Timestamp: now},
	}}
	c, reg := newTestCollector(provider, nil, "BTCUSDT", "ETHUSDT")

	c.PollOnce(context.Background())

	price, ok := reg.LastPrice("BTCUSDT")
	require.True(t, ok)
	require.InDelta(t, 65000.0, price, 1e-9)
	_, ok = reg.LastPrice("ETHUSDT")
	require.True(t, ok)
	_, ok = reg.LastPrice("UNLISTEDUSDT")
	require.False(t, ok)

	tk, ok := c.Ticker("BTCUSDT")
	require.True(t, ok)
	require.InDelta(t, 12.0, tk.Volume, 1e-9)
	_, ok = c.Ticker("UNLISTEDUSDT")
	require.False(t, ok)
}

func TestPollOnceSkipsInvalidPrices(t *testing.T) {
	provider := &fakeProvider{tickers: []market.Ticker{
		{Symbol: "BTCUSDT", LastPrice: 0, Timestamp: time.Now().UTC()},
	}}
	c, reg := newTestCollector(provider, nil, "BTCUSDT")

	c.PollOnce(context.Background())

	_, ok := reg.LastPrice("BTCUSDT")
	require.False(t, ok)
	// 24h stats are still available for the response layer.
	_, ok = c.Ticker("BTCUSDT")
	require.True(t, ok)
}

func TestPollOncePersistsBatch(t *testing.T) {
	provider := &fakeProvider{tickers: []market.Ticker{
		{Symbol: "BTCUSDT", LastPrice: 65000, Timestamp: time.Now().UTC()},
	}}
	persist := &fakePersist{}
	c, _ := newTestCollector(provider, persist, "BTCUSDT")

	c.PollOnce(context.Background())

	persist.mu.Lock()
	defer persist.mu.Unlock()
	require.Len(t, persist.batches, 1)
	require.Len(t, persist.batches[0], 1)
	require.Equal(t, "BTCUSDT", persist.batches[0][0].Symbol)
}

func TestLoadHistorySeedsRegistry(t *testing.T) {
	provider := &fakeProvider{bars: 3}
	c, reg := newTestCollector(provider, nil, "BTCUSDT", "ETHUSDT")

	symbols, candles, err := c.LoadHistory(context.Background(), nil, []string{"1m", "15s"}, 3)
	require.NoError(t, err)
	require.Equal(t, 2, symbols)
	require.Equal(t, 6, candles)

	series := reg.Candles("BTCUSDT", "1m", 10)
	require.Len(t, series, 3)
	require.True(t, series[0].Start.Before(series[2].Start))
	require.True(t, reg.HistoryLoaded())
}

// liveBarProvider anchors its klines at the wall clock so the final bar is
// still in progress, the way a real kline endpoint responds.
type liveBarProvider struct {
	fakeProvider
}

func (f *liveBarProvider) Klines(ctx context.Context, symbol, timeframe string, limit int) ([]market.Kline, error) {
	tf, _ := tracker.TimeframeByName(timeframe)
	step := tf.Duration.Milliseconds()
	last := time.Now().UTC().Truncate(tf.Duration).UnixMilli()
	out := make([]market.Kline, 0, 3)
	for i := 2; i >= 0; i-- {
		open := 90.0 + float64(2-i)
		out = append(out, market.Kline{
			OpenTime:  last - int64(i)*step,
			Open:      open,
			High:      open + 2,
			Low:       open - 2,
			Close:     open + 1,
			Volume:    10,
			CloseTime: last - int64(i-1)*step - 1,
		})
	}
	return out, nil
}

func TestLoadHistoryThenPollKeepsPricesLive(t *testing.T) {
	now := time.Now().UTC()
	provider := &liveBarProvider{}
	provider.tickers = []market.Ticker{{Symbol: "BTCUSDT", LastPrice: 120, Volume: 1, Timestamp: now}}
	c, reg := newTestCollector(provider, nil, "BTCUSDT")

	_, _, err := c.LoadHistory(context.Background(), nil, []string{"1h"}, 3)
	require.NoError(t, err)

	c.PollOnce(context.Background())

	price, ok := reg.LastPrice("BTCUSDT")
	require.True(t, ok)
	require.Equal(t, 120.0, price, "poll after seeding must not be shadowed by the running bar")

	series := reg.Candles("BTCUSDT", "1h", 10)
	require.NotEmpty(t, series)
	require.Equal(t, 120.0, series[len(series)-1].Close)
}

func TestLoadHistoryRejectsConcurrentRuns(t *testing.T) {
	provider := &fakeProvider{bars: 1}
	c, _ := newTestCollector(provider, nil, "BTCUSDT")

	c.seeding.Store(true)
	_, _, err := c.LoadHistory(context.Background(), nil, nil, 1)
	require.Error(t, err)
	c.seeding.Store(false)

	_, _, err = c.LoadHistory(context.Background(), nil, []string{"1m"}, 1)
	require.NoError(t, err)
}

func TestSweepOnceEvictsStaleSymbols(t *testing.T) {
	provider := &fakeProvider{}
	c, reg := newTestCollector(provider, nil, "BTCUSDT")
	c.symbolTTL = time.Hour

	stale := time.Now().UTC().Add(-2 * time.Hour)
	reg.Ingest("BTCUSDT", 65000, 1, stale)
	c.storeTickers([]market.Ticker{{Symbol: "BTCUSDT", LastPrice: 65000}})

	c.sweepOnce()

	require.Equal(t, 0, reg.ActiveCount())
	_, ok := c.Ticker("BTCUSDT")
	require.False(t, ok)
}

func TestNewAppliesDefaults(t *testing.T) {
	c, _ := newTestCollector(&fakeProvider{}, nil)
	require.Equal(t, 2*time.Second, c.pollInterval)
	require.Equal(t, 15*time.Minute, c.sweepInterval)
	require.Equal(t, time.Hour, c.symbolTTL)
	require.Equal(t, 100, c.seedBars)
}
