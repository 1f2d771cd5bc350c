//go:build integration
// +build integration

package mexc

import (
	"context"
	"net/http"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestClientTickers24h_Integration(t *testing.T) {
	client := NewClient(
		WithHTTPClient(&http.Client{Timeout: 10 * time.Second}),
		WithMaxRetries(3),
	)

	ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()

	tickers, err := client.Tickers24h(ctx)
	require.NoError(t, err)
	require.NotEmpty(t, tickers)

	btcFound := false
	for _, tk := range tickers {
		assert.NotEmpty(t, tk.Symbol)
		if tk.Symbol == "BTCUSDT" {
			btcFound = true
			assert.Greater(t, tk.LastPrice, 0.0)
		}
	}
	assert.True(t, btcFound, "BTCUSDT should be present in the bulk response")
}

func TestClientKlines_Integration(t *testing.T) {
	client := NewClient(
		WithHTTPClient(&http.Client{Timeout: 10 * time.Second}),
		WithMaxRetries(3),
	)

	ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()

	klines, err := client.Klines(ctx, "BTCUSDT", "1m", 10)
	require.NoError(t, err)
	require.NotEmpty(t, klines)

	for i, k := range klines {
		assert.Less(t, k.OpenTime, k.CloseTime)
		assert.Greater(t, k.Close, 0.0)
		if i > 0 {
			assert.Greater(t, k.OpenTime, klines[i-1].OpenTime)
		}
	}
}

func TestProviderKlines_Integration(t *testing.T) {
	provider := NewProvider(
		WithTimeout(10*time.Second),
		WithClientOptions(WithMaxRetries(3)),
	)

	ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()

	klines, err := provider.Klines(ctx, "ETHUSDT", "1h", 5)
	require.NoError(t, err)
	require.NotEmpty(t, klines)
}
