package tracker

import (
	"errors"
	"fmt"
	"math"
	"sort"
	"sync"
	"time"

	"github.com/zeromicro/go-zero/core/logx"
)

const (
	defaultHistoryCap = 500

	// nearEnough stops the nearest-sample scan early once a point lands
	// within one second of the target time.
	nearEnough = time.Second
)

// ErrUnknownTimeframe is returned by Seed for a timeframe outside the
// configured set.
var ErrUnknownTimeframe = errors.New("tracker: unknown timeframe")

// Config tunes a Registry. Zero values fall back to defaults.
type Config struct {
	// Timeframes defaults to DefaultTimeframes.
	Timeframes []Timeframe
	// HistoryCap bounds the per-symbol point history (default 500).
	HistoryCap int
	// CandleCaps overrides the closed-candle buffer size per timeframe name.
	CandleCaps map[string]int
}

// Registry owns all per-symbol state behind a single lock. A coarse mutex is
// a deliberate simplicity/contention trade-off at moderate symbol counts;
// sharding by symbol hash is the documented scale-out path.
type Registry struct {
	mu         sync.Mutex
	symbols    map[string]*symbolState
	timeframes []Timeframe
	byName     map[string]Timeframe
	historyCap int
	candleCaps map[string]int
	seeded     bool
}

// New constructs a Registry. State is ephemeral; there is no teardown.
func New(cfg Config) *Registry {
	frames := cfg.Timeframes
	if len(frames) == 0 {
		frames = DefaultTimeframes
	}
	historyCap := cfg.HistoryCap
	if historyCap <= 0 {
		historyCap = defaultHistoryCap
	}
	byName := make(map[string]Timeframe, len(frames))
	for _, tf := range frames {
		byName[tf.Name] = tf
	}
	return &Registry{
		symbols:    make(map[string]*symbolState),
		timeframes: frames,
		byName:     byName,
		historyCap: historyCap,
		candleCaps: cfg.CandleCaps,
	}
}

// Ingest records one tick for a symbol and rolls it into every configured
// timeframe. Ticks with a non-positive or non-finite price are dropped
// without touching any state.
func (r *Registry) Ingest(symbol string, price, volume float64, ts time.Time) {
	if price <= 0 || math.IsNaN(price) || math.IsInf(price, 0) {
		return
	}
	point := PricePoint{Price: price, Volume: volume, Timestamp: ts}

	r.mu.Lock()
	defer r.mu.Unlock()

	st := r.getOrCreateLocked(symbol)
	st.appendPoint(point)
	for _, tf := range r.timeframes {
		if !st.frames[tf.Name].apply(point, tf) {
			logx.Debugf("tracker: dropped backward tick symbol=%s timeframe=%s ts=%d", symbol, tf.Name, ts.Unix())
		}
	}
}

func (r *Registry) getOrCreateLocked(symbol string) *symbolState {
	st, ok := r.symbols[symbol]
	if !ok {
		st = newSymbolState(symbol, r.historyCap, r.timeframes, r.candleCaps)
		r.symbols[symbol] = st
	}
	return st
}

// Candles returns the closed candles plus the open candle for one timeframe,
// truncated to the last limit entries, oldest first. Unknown symbols or
// timeframes yield an empty result, never an error.
func (r *Registry) Candles(symbol, timeframe string, limit int) []Candle {
	r.mu.Lock()
	defer r.mu.Unlock()

	st, ok := r.symbols[symbol]
	if !ok {
		return nil
	}
	fs, ok := st.frames[timeframe]
	if !ok {
		return nil
	}
	return fs.series(limit)
}

// Change reports the price movement over the past secondsAgo seconds using
// the nearest historical sample. This is an approximation, not an interpolation.
// It returns nil when the symbol has no usable history.
func (r *Registry) Change(symbol string, secondsAgo int, now time.Time) *Change {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.changeLocked(symbol, secondsAgo, now)
}

func (r *Registry) changeLocked(symbol string, secondsAgo int, now time.Time) *Change {
	st, ok := r.symbols[symbol]
	if !ok || len(st.history) == 0 {
		return nil
	}

	target := now.Add(-time.Duration(secondsAgo) * time.Second)
	var oldPrice float64
	minDiff := time.Duration(math.MaxInt64)
	for i := len(st.history) - 1; i >= 0; i-- {
		diff := st.history[i].Timestamp.Sub(target)
		if diff < 0 {
			diff = -diff
		}
		if diff < minDiff {
			minDiff = diff
			oldPrice = st.history[i].Price
			if diff < nearEnough {
				break
			}
		}
	}

	if oldPrice <= 0 || st.lastPrice <= 0 {
		return nil
	}
	delta := st.lastPrice - oldPrice
	return &Change{
		PriceChange:   delta,
		PercentChange: delta / oldPrice * 100,
		SecondsAgo:    secondsAgo,
		OldPrice:      oldPrice,
		CurrentPrice:  st.lastPrice,
	}
}

// snapshotCandleLimit bounds the candle series returned per timeframe in a
// batch snapshot.
const snapshotCandleLimit = 50

// Snapshot aggregates current price, change windows and candle series for a
// batch of symbols. Symbols without a tracked positive price are omitted so
// callers can distinguish "no data yet" from "zero change". Unknown
// timeframes and non-positive intervals are skipped silently.
func (r *Registry) Snapshot(symbols []string, timeframes []string, intervals []Interval, now time.Time) map[string]*SymbolSnapshot {
	r.mu.Lock()
	defer r.mu.Unlock()

	out := make(map[string]*SymbolSnapshot, len(symbols))
	for _, symbol := range symbols {
		st, ok := r.symbols[symbol]
		if !ok || st.lastPrice <= 0 {
			continue
		}
		snap := &SymbolSnapshot{
			Symbol:       symbol,
			CurrentPrice: st.lastPrice,
			LastUpdate:   st.lastUpdate,
			Changes:      make(map[string]*Change, len(intervals)),
			Candles:      make(map[string][]Candle, len(timeframes)),
		}
		for _, iv := range intervals {
			if iv.Seconds <= 0 {
				continue
			}
			snap.Changes[iv.Name] = r.changeLocked(symbol, iv.Seconds, now)
		}
		for _, name := range timeframes {
			fs, ok := st.frames[name]
			if !ok {
				continue
			}
			snap.Candles[name] = fs.series(snapshotCandleLimit)
		}
		out[symbol] = snap
	}
	return out
}

// Seed merges externally fetched candles into one timeframe buffer. Only
// buffers with no data are populated; live data always wins. Exchanges
// return the in-progress bar last, with a close time still in the future:
// that bar is installed as the open candle so subsequent live ticks keep
// updating it, and lastUpdate falls back to the bar's start so ticks are
// never rejected while it runs out.
func (r *Registry) Seed(symbol, timeframe string, candles []Candle, now time.Time) error {
	if _, ok := r.byName[timeframe]; !ok {
		return fmt.Errorf("%w: %q", ErrUnknownTimeframe, timeframe)
	}
	if len(candles) == 0 {
		return nil
	}

	sorted := make([]Candle, len(candles))
	copy(sorted, candles)
	sort.Slice(sorted, func(i, j int) bool { return sorted[i].Start.Before(sorted[j].Start) })

	r.mu.Lock()
	defer r.mu.Unlock()

	st := r.getOrCreateLocked(symbol)
	fs := st.frames[timeframe]
	if !fs.empty() {
		return nil
	}

	for i := range sorted {
		sorted[i].Timeframe = timeframe
		if sorted[i].End.After(now) {
			continue
		}
		fs.appendClosed(sorted[i])
	}
	last := sorted[len(sorted)-1]
	if last.End.After(now) {
		open := last
		fs.open = &open
	}

	marker := last.End
	if marker.After(now) {
		// Running bar: any tick inside its bucket must still win.
		marker = last.Start
		if marker.After(now) {
			marker = now
		}
	}
	if marker.After(st.lastUpdate) {
		st.lastUpdate = marker
		st.lastPrice = last.Close
	}
	r.seeded = true
	return nil
}

// HistoryLoaded reports whether any historical seed has been applied.
func (r *Registry) HistoryLoaded() bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.seeded
}

// Sweep evicts every symbol whose last update is older than now−ttl and
// returns the evicted symbols. Running it twice without intervening ticks
// leaves the registry unchanged the second time.
func (r *Registry) Sweep(ttl time.Duration, now time.Time) []string {
	cutoff := now.Add(-ttl)

	r.mu.Lock()
	defer r.mu.Unlock()

	var evicted []string
	for symbol, st := range r.symbols {
		if st.lastUpdate.Before(cutoff) {
			evicted = append(evicted, symbol)
		}
	}
	for _, symbol := range evicted {
		r.removeLocked(symbol)
	}
	return evicted
}

// Remove drops a symbol and all of its state. Unknown symbols are a no-op.
func (r *Registry) Remove(symbol string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.removeLocked(symbol)
}

func (r *Registry) removeLocked(symbol string) {
	delete(r.symbols, symbol)
}

// ActiveCount returns the number of tracked symbols.
func (r *Registry) ActiveCount() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.symbols)
}

// LastPrice returns the most recent price for a symbol, or ok=false when the
// symbol is untracked or has no positive price yet.
func (r *Registry) LastPrice(symbol string) (float64, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	st, ok := r.symbols[symbol]
	if !ok || st.lastPrice <= 0 {
		return 0, false
	}
	return st.lastPrice, true
}
