package config

import (
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"
)

// TickersConf declares the tradeable universe. Symbols are raw base tickers;
// Pairs applies aliases and skip rules and appends the quote currency.
type TickersConf struct {
	// Quote is the quote currency appended to every base ticker.
	Quote string `yaml:"quote"`
	// Symbols lists raw base tickers, e.g. "BTC".
	Symbols []string `yaml:"symbols"`
	// Skip names tickers to leave out, e.g. index symbols or listings that
	// are not available on the exchange yet.
	Skip []string `yaml:"skip"`
	// Aliases maps a raw ticker to the base the exchange actually lists it
	// under, e.g. BANANAS31 -> BANANAS.
	Aliases map[string]string `yaml:"aliases"`
}

// LoadTickers reads a ticker universe file from disk.
func LoadTickers(path string) (*TickersConf, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read tickers config: %w", err)
	}
	var cfg TickersConf
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("unmarshal tickers config: %w", err)
	}
	cfg.normalise()
	return &cfg, nil
}

func (t *TickersConf) normalise() {
	if strings.TrimSpace(t.Quote) == "" {
		t.Quote = "USDT"
	}
	t.Quote = strings.ToUpper(strings.TrimSpace(t.Quote))
}

// Pairs converts the raw ticker list into exchange pair symbols. Skipped
// tickers, single-letter tickers, and duplicates are dropped.
func (t *TickersConf) Pairs() []string {
	skip := make(map[string]struct{}, len(t.Skip))
	for _, s := range t.Skip {
		skip[strings.ToUpper(strings.TrimSpace(s))] = struct{}{}
	}

	seen := make(map[string]struct{}, len(t.Symbols))
	pairs := make([]string, 0, len(t.Symbols))
	for _, raw := range t.Symbols {
		base := strings.ToUpper(strings.TrimSpace(raw))
		if base == "" {
			continue
		}
		if _, ok := skip[base]; ok {
			continue
		}
		if alias, ok := t.Aliases[base]; ok {
			base = strings.ToUpper(strings.TrimSpace(alias))
		}
		// Single-letter tickers collide with unrelated listings upstream.
		if len(base) <= 1 {
			continue
		}
		pair := base + t.Quote
		if _, ok := seen[pair]; ok {
			continue
		}
		seen[pair] = struct{}{}
		pairs = append(pairs, pair)
	}
	return pairs
}
