package config

import (
	"testing"
)

func TestTickersPairs(t *testing.T) {
	cfg := &TickersConf{
		Symbols: []string{"BTC", "eth", " SOL ", "BTC", "C", "BANANAS31", "KAITO", "BTCDOM", ""},
		Skip:    []string{"KAITO", "BTCDOM"},
		Aliases: map[string]string{"BANANAS31": "BANANAS"},
	}
	cfg.normalise()

	pairs := cfg.Pairs()
	want := []string{"BTCUSDT", "ETHUSDT", "SOLUSDT", "BANANASUSDT"}
	if len(pairs) != len(want) {
		t.Fatalf("got %v, want %v", pairs, want)
	}
	for i := range want {
		if pairs[i] != want[i] {
			t.Fatalf("pair %d: got %q, want %q", i, pairs[i], want[i])
		}
	}
}

func TestTickersQuoteDefault(t *testing.T) {
	cfg := &TickersConf{Symbols: []string{"BTC"}}
	cfg.normalise()
	if cfg.Quote != "USDT" {
		t.Fatalf("quote default got %q", cfg.Quote)
	}

	cfg = &TickersConf{Quote: "usdc", Symbols: []string{"BTC"}}
	cfg.normalise()
	if got := cfg.Pairs(); len(got) != 1 || got[0] != "BTCUSDC" {
		t.Fatalf("got %v", got)
	}
}

func TestLoadTickersMissingFile(t *testing.T) {
	if _, err := LoadTickers("/nonexistent/tickers.yaml"); err == nil {
		t.Fatalf("expected error for missing file")
	}
}
