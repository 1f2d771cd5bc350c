package collector

import (
	"context"
	"errors"
	"strings"
	"sync"
	"sync/atomic"
	"time"

	"github.com/zeromicro/go-zero/core/logx"

	"screener-api/pkg/market"
	"screener-api/pkg/tracker"
)

const (
	apiTimeout     = 5 * time.Second
	persistTimeout = 10 * time.Second
	seedTimeout    = 30 * time.Second
)

// DefaultSeedTimeframes lists the timeframes backfilled from exchange klines.
// Sub-minute frames have no upstream source and fill from live polling only.
var DefaultSeedTimeframes = []string{"1m", "5m", "15m", "1h", "4h", "1d"}

// Config enumerates collector dependencies and tuning.
type Config struct {
	Provider     market.Provider
	ProviderName string
	Registry     *tracker.Registry
	Persist      market.Persistence // optional
	Universe     []string

	PollInterval  time.Duration
	SweepInterval time.Duration
	SymbolTTL     time.Duration
	SeedBars      int
	SeedWorkers   int
}

// Collector polls bulk tickers into the tracking registry, sweeps stale
// symbols, and backfills candle history on demand.
type Collector struct {
	provider     market.Provider
	providerName string
	registry     *tracker.Registry
	persist      market.Persistence
	universe     []string
	universeSet  map[string]struct{}

	pollInterval  time.Duration
	sweepInterval time.Duration
	symbolTTL     time.Duration
	seedBars      int
	seedWorkers   int

	running atomic.Bool
	seeding atomic.Bool

	mu      sync.RWMutex
	tickers map[string]market.Ticker
}

// New constructs a collector. Zero durations fall back to the defaults used
// by the reference deployment: 2s polling, 15m sweeps, 1h symbol TTL.
func New(cfg Config) *Collector {
	c := &Collector{
		provider:      cfg.Provider,
		providerName:  cfg.ProviderName,
		registry:      cfg.Registry,
		persist:       cfg.Persist,
		universe:      append([]string(nil), cfg.Universe...),
		universeSet:   make(map[string]struct{}, len(cfg.Universe)),
		pollInterval:  cfg.PollInterval,
		sweepInterval: cfg.SweepInterval,
		symbolTTL:     cfg.SymbolTTL,
		seedBars:      cfg.SeedBars,
		seedWorkers:   cfg.SeedWorkers,
		tickers:       make(map[string]market.Ticker),
	}
	if c.providerName == "" {
		c.providerName = "mexc"
	}
	if c.pollInterval <= 0 {
		c.pollInterval = 2 * time.Second
	}
	if c.sweepInterval <= 0 {
		c.sweepInterval = 15 * time.Minute
	}
	if c.symbolTTL <= 0 {
		c.symbolTTL = time.Hour
	}
	if c.seedBars <= 0 {
		c.seedBars = 100
	}
	if c.seedWorkers <= 0 {
		c.seedWorkers = 20
	}
	for _, sym := range cfg.Universe {
		c.universeSet[strings.ToUpper(sym)] = struct{}{}
	}
	return c
}

// Universe returns the configured pair symbols.
func (c *Collector) Universe() []string {
	return c.universe
}

// Running reports whether the poll loop is active.
func (c *Collector) Running() bool {
	return c.running.Load()
}

// Run polls and sweeps until ctx is cancelled.
func (c *Collector) Run(ctx context.Context) {
	c.running.Store(true)
	defer c.running.Store(false)

	var wg sync.WaitGroup
	wg.Add(2)
	go func() {
		defer wg.Done()
		c.runPollLoop(ctx)
	}()
	go func() {
		defer wg.Done()
		c.runSweepLoop(ctx)
	}()
	wg.Wait()
}

func (c *Collector) runPollLoop(ctx context.Context) {
	ticker := time.NewTicker(c.pollInterval)
	defer ticker.Stop()

	// Run once immediately on startup
	c.PollOnce(ctx)

	for {
		select {
		case <-ctx.Done():
			logx.Info("collector: stopping poll loop")
			return
		case <-ticker.C:
			c.PollOnce(ctx)
		}
	}
}

func (c *Collector) runSweepLoop(ctx context.Context) {
	ticker := time.NewTicker(c.sweepInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			logx.Info("collector: stopping sweep loop")
			return
		case <-ticker.C:
			c.sweepOnce()
		}
	}
}

// PollOnce fetches one bulk ticker batch and feeds it into the registry.
// The poll loop calls this on every tick; it is also useful for priming
// state before the first request in tools and tests.
func (c *Collector) PollOnce(parentCtx context.Context) {
	if parentCtx.Err() != nil {
		return
	}
	ctx, cancel := context.WithTimeout(parentCtx, apiTimeout)
	defer cancel()

	start := time.Now()
	tickers, err := c.provider.BulkTickers(ctx)
	elapsed := time.Since(start)
	if err != nil {
		logx.Errorf("collector: bulk tickers failed err=%v took=%dms", err, elapsed.Milliseconds())
		return
	}

	tracked := make([]market.Ticker, 0, len(c.universeSet))
	for _, t := range tickers {
		if _, ok := c.universeSet[strings.ToUpper(t.Symbol)]; !ok {
			continue
		}
		tracked = append(tracked, t)
	}

	valid := 0
	for _, t := range tracked {
		if t.LastPrice <= 0 {
			continue
		}
		ts := t.Timestamp
		if ts.IsZero() {
			ts = time.Now().UTC()
		}
		c.registry.Ingest(t.Symbol, t.LastPrice, t.Volume, ts)
		valid++
	}
	c.storeTickers(tracked)
	logx.Debugf("collector: updated %d/%d tickers took=%dms", valid, len(tracked), elapsed.Milliseconds())

	if c.persist != nil && len(tracked) > 0 {
		pctx, pcancel := context.WithTimeout(parentCtx, persistTimeout)
		defer pcancel()
		if err := c.persist.RecordTickers(pctx, c.providerName, tracked); err != nil {
			logx.Errorf("collector: persist tickers failed err=%v", err)
		}
	}
}

func (c *Collector) sweepOnce() {
	evicted := c.registry.Sweep(c.symbolTTL, time.Now().UTC())
	if len(evicted) > 0 {
		logx.Infof("collector: swept %d stale symbols", len(evicted))
		c.mu.Lock()
		for _, sym := range evicted {
			delete(c.tickers, sym)
		}
		c.mu.Unlock()
	}
}

func (c *Collector) storeTickers(tickers []market.Ticker) {
	c.mu.Lock()
	defer c.mu.Unlock()
	for _, t := range tickers {
		c.tickers[t.Symbol] = t
	}
}

// Ticker returns the most recent 24h stats for a symbol.
func (c *Collector) Ticker(symbol string) (market.Ticker, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	t, ok := c.tickers[symbol]
	return t, ok
}

// Tickers returns the most recent 24h stats for all polled symbols.
func (c *Collector) Tickers() map[string]market.Ticker {
	c.mu.RLock()
	defer c.mu.RUnlock()
	out := make(map[string]market.Ticker, len(c.tickers))
	for k, v := range c.tickers {
		out[k] = v
	}
	return out
}

// Seeding reports whether a history backfill is in flight.
func (c *Collector) Seeding() bool {
	return c.seeding.Load()
}

// LoadHistory backfills candle buffers from exchange klines with bounded
// concurrency. A failed symbol/timeframe pair is logged and skipped; the
// backfill never fails as a whole. Returns the number of symbols that
// received at least one candle and the total candles loaded.
func (c *Collector) LoadHistory(ctx context.Context, symbols, timeframes []string, bars int) (int, int, error) {
	if !c.seeding.CompareAndSwap(false, true) {
		return 0, 0, errors.New("collector: history load already in progress")
	}
	defer c.seeding.Store(false)

	if len(symbols) == 0 {
		symbols = c.universe
	}
	if len(timeframes) == 0 {
		timeframes = DefaultSeedTimeframes
	}
	if bars <= 0 {
		bars = c.seedBars
	}

	type job struct {
		symbol    string
		timeframe string
	}
	jobs := make(chan job)
	var (
		wg           sync.WaitGroup
		mu           sync.Mutex
		totalCandles int
		loadedBySym  = make(map[string]struct{})
	)

	for i := 0; i < c.seedWorkers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for j := range jobs {
				n := c.seedOne(ctx, j.symbol, j.timeframe, bars)
				if n > 0 {
					mu.Lock()
					totalCandles += n
					loadedBySym[j.symbol] = struct{}{}
					mu.Unlock()
				}
			}
		}()
	}

	start := time.Now()
dispatch:
	for _, sym := range symbols {
		for _, tf := range timeframes {
			select {
			case <-ctx.Done():
				break dispatch
			case jobs <- job{symbol: sym, timeframe: tf}:
			}
		}
	}
	close(jobs)
	wg.Wait()

	logx.Infof("collector: history load finished symbols=%d candles=%d took=%s",
		len(loadedBySym), totalCandles, time.Since(start).Round(time.Millisecond))
	return len(loadedBySym), totalCandles, ctx.Err()
}

func (c *Collector) seedOne(parentCtx context.Context, symbol, timeframe string, bars int) int {
	if parentCtx.Err() != nil {
		return 0
	}
	ctx, cancel := context.WithTimeout(parentCtx, seedTimeout)
	defer cancel()

	klines, err := c.provider.Klines(ctx, symbol, timeframe, bars)
	if err != nil {
		if errors.Is(err, market.ErrUnsupportedTimeframe) {
			logx.Debugf("collector: seed %s %s skipped: %v", symbol, timeframe, err)
		} else {
			logx.Errorf("collector: seed %s %s failed: %v", symbol, timeframe, err)
		}
		return 0
	}
	if len(klines) == 0 {
		return 0
	}

	candles := make([]tracker.Candle, 0, len(klines))
	for _, k := range klines {
		candles = append(candles, tracker.Candle{
			Open:      k.Open,
			High:      k.High,
			Low:       k.Low,
			Close:     k.Close,
			Volume:    k.Volume,
			Start:     time.UnixMilli(k.OpenTime).UTC(),
			End:       time.UnixMilli(k.CloseTime + 1).UTC(),
			Timeframe: timeframe,
		})
	}
	if err := c.registry.Seed(symbol, timeframe, candles, time.Now().UTC()); err != nil {
		logx.Errorf("collector: seed %s %s rejected: %v", symbol, timeframe, err)
		return 0
	}
	return len(candles)
}
