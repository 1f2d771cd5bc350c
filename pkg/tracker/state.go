package tracker

import (
	"math"
	"time"
)

// frameState holds one timeframe's bounded closed-candle buffer plus the
// single mutable open candle.
type frameState struct {
	closed []Candle
	open   *Candle
	cap    int
}

// symbolState is owned exclusively by the Registry and never escapes it.
type symbolState struct {
	symbol     string
	history    []PricePoint
	historyCap int
	frames     map[string]*frameState
	lastPrice  float64
	lastUpdate time.Time
}

func newSymbolState(symbol string, historyCap int, frames []Timeframe, caps map[string]int) *symbolState {
	st := &symbolState{
		symbol:     symbol,
		historyCap: historyCap,
		frames:     make(map[string]*frameState, len(frames)),
	}
	for _, tf := range frames {
		c := caps[tf.Name]
		if c <= 0 {
			c = defaultCandleCap(tf.Duration)
		}
		st.frames[tf.Name] = &frameState{cap: c}
	}
	return st
}

func (st *symbolState) appendPoint(p PricePoint) {
	if len(st.history) == st.historyCap {
		copy(st.history, st.history[1:])
		st.history = st.history[:st.historyCap-1]
	}
	st.history = append(st.history, p)
	if !p.Timestamp.Before(st.lastUpdate) {
		st.lastPrice = p.Price
		st.lastUpdate = p.Timestamp
	}
}

// apply rolls the point into the frame. It reports false when the point's
// bucket lies behind an already-closed bucket and is dropped for this frame.
func (fs *frameState) apply(p PricePoint, tf Timeframe) bool {
	start := tf.BucketStart(p.Timestamp)
	end := start.Add(tf.Duration)

	if fs.open != nil {
		switch {
		case start.Equal(fs.open.Start):
			fs.open.High = math.Max(fs.open.High, p.Price)
			fs.open.Low = math.Min(fs.open.Low, p.Price)
			fs.open.Close = p.Price
			fs.open.Volume += p.Volume
			fs.open.End = end
			return true
		case start.After(fs.open.Start):
			fs.appendClosed(*fs.open)
		default:
			return false
		}
	} else if n := len(fs.closed); n > 0 && !start.After(fs.closed[n-1].Start) {
		return false
	}

	fs.open = &Candle{
		Open:      p.Price,
		High:      p.Price,
		Low:       p.Price,
		Close:     p.Price,
		Volume:    p.Volume,
		Start:     start,
		End:       end,
		Timeframe: tf.Name,
	}
	return true
}

func (fs *frameState) appendClosed(c Candle) {
	if len(fs.closed) == fs.cap {
		copy(fs.closed, fs.closed[1:])
		fs.closed = fs.closed[:fs.cap-1]
	}
	fs.closed = append(fs.closed, c)
}

// series returns closed candles plus the open candle, truncated to the last
// limit entries, oldest first. The returned slice is a copy.
func (fs *frameState) series(limit int) []Candle {
	total := len(fs.closed)
	if fs.open != nil {
		total++
	}
	if total == 0 || limit <= 0 {
		return nil
	}
	out := make([]Candle, 0, total)
	out = append(out, fs.closed...)
	if fs.open != nil {
		out = append(out, *fs.open)
	}
	if len(out) > limit {
		out = out[len(out)-limit:]
	}
	return out
}

func (fs *frameState) empty() bool {
	return len(fs.closed) == 0 && fs.open == nil
}
