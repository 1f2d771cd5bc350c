package mexc

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"screener-api/pkg/market"
)

const defaultProviderTimeout = 30 * time.Second

// timeframeIntervals maps engine timeframe names to MEXC kline intervals.
// Sub-minute frames have no upstream kline source and are absent on purpose.
var timeframeIntervals = map[string]string{
	"1m":  "1m",
	"5m":  "5m",
	"15m": "15m",
	"1h":  "1h",
	"4h":  "4h",
	"1d":  "1d",
}

// Provider adapts the MEXC client to the generic market.Provider contract.
type Provider struct {
	client  *Client
	timeout time.Duration
}

type providerConfig struct {
	timeout      time.Duration
	clientConfig []Option
}

// ProviderOption customises the MEXC provider.
type ProviderOption func(*providerConfig)

// WithTimeout overrides the default per-call timeout.
func WithTimeout(timeout time.Duration) ProviderOption {
	return func(cfg *providerConfig) {
		if timeout > 0 {
			cfg.timeout = timeout
		}
	}
}

// WithClientOptions passes options to the underlying MEXC client.
func WithClientOptions(options ...Option) ProviderOption {
	return func(cfg *providerConfig) {
		cfg.clientConfig = append(cfg.clientConfig, options...)
	}
}

// NewProvider constructs a MEXC market provider.
func NewProvider(opts ...ProviderOption) *Provider {
	cfg := &providerConfig{timeout: defaultProviderTimeout}
	for _, opt := range opts {
		opt(cfg)
	}
	return &Provider{
		client:  NewClient(cfg.clientConfig...),
		timeout: cfg.timeout,
	}
}

func init() {
	market.RegisterProvider("mexc", func(name string, cfg *market.ProviderConfig) (market.Provider, error) {
		opts := []ProviderOption{}
		clientOptions := []Option{}
		if cfg.Timeout > 0 {
			opts = append(opts, WithTimeout(cfg.Timeout))
		}
		if cfg.BaseURL != "" {
			clientOptions = append(clientOptions, WithBaseURL(cfg.BaseURL))
		}
		if cfg.HTTPTimeout > 0 {
			clientOptions = append(clientOptions, WithHTTPClient(&http.Client{Timeout: cfg.HTTPTimeout}))
		}
		if cfg.MaxRetries > 0 {
			clientOptions = append(clientOptions, WithMaxRetries(cfg.MaxRetries))
		}
		if len(clientOptions) > 0 {
			opts = append(opts, WithClientOptions(clientOptions...))
		}
		return NewProvider(opts...), nil
	})
}

func (p *Provider) withTimeout(ctx context.Context) (context.Context, context.CancelFunc) {
	if ctx == nil {
		ctx = context.Background()
	}
	return context.WithTimeout(ctx, p.timeout)
}

// BulkTickers implements market.Provider.
func (p *Provider) BulkTickers(ctx context.Context) ([]market.Ticker, error) {
	ctx, cancel := p.withTimeout(ctx)
	defer cancel()
	return p.client.Tickers24h(ctx)
}

// Klines implements market.Provider. The timeframe is an engine name such as
// "1m" or "4h"; sub-minute frames return ErrUnsupportedTimeframe.
func (p *Provider) Klines(ctx context.Context, symbol, timeframe string, limit int) ([]market.Kline, error) {
	interval, ok := timeframeIntervals[timeframe]
	if !ok {
		return nil, fmt.Errorf("%w: %q", market.ErrUnsupportedTimeframe, timeframe)
	}
	ctx, cancel := p.withTimeout(ctx)
	defer cancel()
	return p.client.Klines(ctx, symbol, interval, limit)
}
