package config

import (
	"screener-api/pkg/confkit"
	"screener-api/pkg/market"
)

// MustLoadMarket loads etc/market.yaml from the project root and panics on
// error. It isolates market config so tests and tools that only need the
// providers do not have to load the full app config.
func MustLoadMarket() *market.Config {
	return market.MustLoad()
}

// MustLoadTickers loads etc/tickers.yaml from the project root and panics on
// error.
func MustLoadTickers() *TickersConf {
	cfg, err := LoadTickers(confkit.MustProjectPath("etc/tickers.yaml"))
	if err != nil {
		panic(err)
	}
	return cfg
}
