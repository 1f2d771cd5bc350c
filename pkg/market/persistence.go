package market

import "context"

// Persistence hooks let the collector archive polled market data to external
// stores. Implementations must be nil-safe no-ops when unconfigured.
type Persistence interface {
	// RecordTickers archives one poll cycle's ticker batch for the provider.
	RecordTickers(ctx context.Context, provider string, tickers []Ticker) error
}
