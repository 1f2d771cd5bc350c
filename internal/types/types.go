// Code scaffolded by goctl. Safe to edit.
// goctl 1.9.2

package types

type HealthResp struct {
	Status                string `json:"status"`
	Timestamp             string `json:"timestamp"`
	TotalSupportedTickers int    `json:"total_supported_tickers"`
	ActiveSymbols         int    `json:"active_symbols"`
	CollectorRunning      bool   `json:"collector_running"`
	Version               string `json:"version"`
}

type TickersResp struct {
	Tickers   []string `json:"tickers"`
	Count     int      `json:"count"`
	Timestamp string   `json:"timestamp"`
}

type PriceChange struct {
	PriceChange   float64 `json:"price_change"`
	PercentChange float64 `json:"percent_change"`
	SecondsAgo    float64 `json:"seconds_ago"`
	OldPrice      float64 `json:"old_price"`
	CurrentPrice  float64 `json:"current_price"`
}

type CandleData struct {
	Open      float64 `json:"open"`
	High      float64 `json:"high"`
	Low       float64 `json:"low"`
	Close     float64 `json:"close"`
	Volume    float64 `json:"volume"`
	StartTime string  `json:"start_time"`
	EndTime   string  `json:"end_time"`
	Timestamp int64   `json:"timestamp"`
	Timeframe string  `json:"timeframe"`
}

type CryptoPrice struct {
	Symbol           string                  `json:"symbol"`
	Price            float64                 `json:"price"`
	ChangePercent24h float64                 `json:"changePercent24h"`
	Volume           float64                 `json:"volume"`
	High24h          float64                 `json:"high24h"`
	Low24h           float64                 `json:"low24h"`
	Timestamp        string                  `json:"timestamp"`
	Source           string                  `json:"source"`
	Changes          map[string]*PriceChange `json:"changes,omitempty"`
	Candles          []CandleData            `json:"candles"`
}

type PricesReq struct {
	Limit      int    `form:"limit,optional,default=20"`
	Offset     int    `form:"offset,optional,default=0"`
	SortBy     string `form:"sort_by,optional,default=symbol"`
	SortOrder  string `form:"sort_order,optional,default=asc"`
	Search     string `form:"search,optional"`
	// Comma-separated lists; defaults are applied in the logic layer
	// because tag options cannot carry commas.
	Timeframes string `form:"timeframes,optional"`
	Intervals  string `form:"intervals,optional"`
}

type PricesResp struct {
	Data           map[string]CryptoPrice `json:"data"`
	Timestamp      string                 `json:"timestamp"`
	Count          int                    `json:"count"`
	TotalAvailable int                    `json:"total_available"`
}

type CandlesReq struct {
	Symbol    string `form:"symbol"`
	Timeframe string `form:"timeframe,optional,default=1m"`
	Limit     int    `form:"limit,optional,default=50"`
}

type CandlesResp struct {
	Symbol    string       `json:"symbol"`
	Timeframe string       `json:"timeframe"`
	Candles   []CandleData `json:"candles"`
	Count     int          `json:"count"`
	Timestamp string       `json:"timestamp"`
}

type ChangeReq struct {
	Symbol  string `form:"symbol"`
	Seconds int    `form:"seconds,optional,default=60"`
}

type ChangeResp struct {
	Symbol    string       `json:"symbol"`
	Seconds   int          `json:"seconds"`
	Change    *PriceChange `json:"change"`
	Timestamp string       `json:"timestamp"`
}

type LoadHistoryReq struct {
	Symbols    []string `json:"symbols,optional"`
	Timeframes []string `json:"timeframes,optional"`
	Bars       int      `json:"bars,optional"`
}

type LoadHistoryResp struct {
	Success       bool     `json:"success"`
	Message       string   `json:"message"`
	SymbolsLoaded int      `json:"symbols_loaded"`
	TotalCandles  int      `json:"total_candles"`
	Timeframes    []string `json:"timeframes"`
	Timestamp     string   `json:"timestamp"`
}

type HistoryStatusResp struct {
	HistoricalDataLoaded bool   `json:"historical_data_loaded"`
	ActiveSymbols        int    `json:"active_symbols"`
	SupportedSymbols     int    `json:"supported_symbols"`
	Timestamp            string `json:"timestamp"`
}
