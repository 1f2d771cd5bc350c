package mexc

import (
	"encoding/json"
	"fmt"
	"strconv"

	"screener-api/pkg/market"
)

// Ticker24h mirrors one entry of the 24hr ticker response. MEXC encodes all
// numeric fields as strings.
type Ticker24h struct {
	Symbol             string `json:"symbol"`
	LastPrice          string `json:"lastPrice"`
	PriceChange        string `json:"priceChange"`
	PriceChangePercent string `json:"priceChangePercent"`
	Volume             string `json:"volume"`
	HighPrice          string `json:"highPrice"`
	LowPrice           string `json:"lowPrice"`
}

func parsePrice(s string) float64 {
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0
	}
	return v
}

// klineRow mirrors one entry of the klines response, which is a heterogeneous
// JSON array: [openTime, open, high, low, close, volume, closeTime, ...].
type klineRow []json.RawMessage

func (r klineRow) toKline() (market.Kline, error) {
	if len(r) < 7 {
		return market.Kline{}, fmt.Errorf("mexc: kline row has %d fields, want at least 7", len(r))
	}
	var k market.Kline
	if err := json.Unmarshal(r[0], &k.OpenTime); err != nil {
		return market.Kline{}, fmt.Errorf("mexc: kline open time: %w", err)
	}
	if err := json.Unmarshal(r[6], &k.CloseTime); err != nil {
		return market.Kline{}, fmt.Errorf("mexc: kline close time: %w", err)
	}
	for i, dst := range []*float64{&k.Open, &k.High, &k.Low, &k.Close, &k.Volume} {
		var s string
		if err := json.Unmarshal(r[i+1], &s); err != nil {
			// Some deployments return bare numbers instead of strings.
			if err := json.Unmarshal(r[i+1], dst); err != nil {
				return market.Kline{}, fmt.Errorf("mexc: kline field %d: %w", i+1, err)
			}
			continue
		}
		v, err := strconv.ParseFloat(s, 64)
		if err != nil {
			return market.Kline{}, fmt.Errorf("mexc: kline field %d: %w", i+1, err)
		}
		*dst = v
	}
	return k, nil
}
