package mexc

import (
	"context"
	"net/url"
	"strconv"
	"time"

	"screener-api/pkg/market"
)

// Tickers24h fetches 24h ticker statistics for every listed symbol in a
// single bulk request.
func (c *Client) Tickers24h(ctx context.Context) ([]market.Ticker, error) {
	var raw []Ticker24h
	if err := c.doRequest(ctx, "/api/v3/ticker/24hr", nil, &raw); err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	tickers := make([]market.Ticker, 0, len(raw))
	for _, t := range raw {
		if t.Symbol == "" {
			continue
		}
		tickers = append(tickers, market.Ticker{
			Symbol:           t.Symbol,
			LastPrice:        parsePrice(t.LastPrice),
			Volume:           parsePrice(t.Volume),
			High24h:          parsePrice(t.HighPrice),
			Low24h:           parsePrice(t.LowPrice),
			ChangePercent24h: parsePrice(t.PriceChangePercent),
			Timestamp:        now,
		})
	}
	return tickers, nil
}

// Klines fetches historical OHLCV bars for a symbol and MEXC interval,
// oldest first. The limit is clamped to the upstream maximum.
func (c *Client) Klines(ctx context.Context, symbol, interval string, limit int) ([]market.Kline, error) {
	if limit <= 0 || limit > maxKlineLimit {
		limit = maxKlineLimit
	}
	query := url.Values{}
	query.Set("symbol", symbol)
	query.Set("interval", interval)
	query.Set("limit", strconv.Itoa(limit))

	var rows []klineRow
	if err := c.doRequest(ctx, "/api/v3/klines", query, &rows); err != nil {
		return nil, err
	}

	klines := make([]market.Kline, 0, len(rows))
	for _, row := range rows {
		k, err := row.toKline()
		if err != nil {
			return nil, err
		}
		klines = append(klines, k)
	}
	return klines, nil
}
