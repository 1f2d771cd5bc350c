package logic

import (
	"context"
	"sort"
	"strings"
	"time"

	"github.com/zeromicro/go-zero/core/logx"

	"screener-api/internal/svc"
	"screener-api/internal/types"
	"screener-api/pkg/tracker"
)

const (
	maxPageLimit     = 50
	defaultPageLimit = 20
)

var (
	defaultTimeframes = []string{"15s", "30s", "1m"}
	defaultIntervals  = []string{"15s", "30s", "24h"}
)

type PricesLogic struct {
	logx.Logger
	ctx    context.Context
	svcCtx *svc.ServiceContext
}

func NewPricesLogic(ctx context.Context, svcCtx *svc.ServiceContext) *PricesLogic {
	return &PricesLogic{
		Logger: logx.WithContext(ctx),
		ctx:    ctx,
		svcCtx: svcCtx,
	}
}

// priceEntry pairs a symbol with its payload and precomputed sort key.
// Keys are materialized up front so sorting never closes over loop state.
type priceEntry struct {
	symbol  string
	payload types.CryptoPrice
	sortKey float64
}

func (l *PricesLogic) Prices(req *types.PricesReq) (*types.PricesResp, error) {
	limit := req.Limit
	if limit <= 0 {
		limit = defaultPageLimit
	}
	if limit > maxPageLimit {
		limit = maxPageLimit
	}
	offset := req.Offset
	if offset < 0 {
		offset = 0
	}

	tfList := splitCSV(req.Timeframes)
	if len(tfList) == 0 {
		tfList = defaultTimeframes
	}
	intervalNames := splitCSV(req.Intervals)
	if len(intervalNames) == 0 {
		intervalNames = defaultIntervals
	}
	intervals := parseIntervals(intervalNames)

	tickers := map[string]mktTicker{}
	if l.svcCtx.Collector != nil {
		for sym, t := range l.svcCtx.Collector.Tickers() {
			tickers[sym] = mktTicker{
				price:            t.LastPrice,
				changePercent24h: t.ChangePercent24h,
				volume:           t.Volume,
				high24h:          t.High24h,
				low24h:           t.Low24h,
			}
		}
	}

	symbols := make([]string, 0, len(tickers))
	for sym := range tickers {
		symbols = append(symbols, sym)
	}
	snapshots := l.svcCtx.Tracker.Snapshot(symbols, tfList, intervals, time.Now().UTC())

	entries := make([]priceEntry, 0, len(tickers))
	search := strings.ToUpper(strings.TrimSpace(req.Search))
	for sym, raw := range tickers {
		if search != "" &&
			!strings.Contains(sym, search) &&
			!strings.Contains(strings.TrimSuffix(sym, "USDT"), search) {
			continue
		}
		payload := types.CryptoPrice{
			Symbol:           sym,
			Price:            raw.price,
			ChangePercent24h: raw.changePercent24h,
			Volume:           raw.volume,
			High24h:          raw.high24h,
			Low24h:           raw.low24h,
			Timestamp:        nowStamp(),
			Source:           l.sourceName(),
			Candles:          []types.CandleData{},
		}
		if snap, ok := snapshots[sym]; ok {
			payload.Price = snap.CurrentPrice
			payload.Changes = make(map[string]*types.PriceChange, len(snap.Changes))
			for name, change := range snap.Changes {
				payload.Changes[name] = toPriceChange(change)
			}
			for _, tf := range tfList {
				payload.Candles = append(payload.Candles, toCandleSlice(snap.Candles[tf])...)
			}
		}
		entries = append(entries, priceEntry{
			symbol:  sym,
			payload: payload,
			sortKey: sortKeyFor(req.SortBy, payload),
		})
	}

	sortEntries(entries, req.SortBy, req.SortOrder)

	total := len(entries)
	if offset > total {
		offset = total
	}
	end := offset + limit
	if end > total {
		end = total
	}
	page := entries[offset:end]

	data := make(map[string]types.CryptoPrice, len(page))
	for _, e := range page {
		data[e.symbol] = e.payload
	}

	return &types.PricesResp{
		Data:           data,
		Timestamp:      nowStamp(),
		Count:          len(data),
		TotalAvailable: total,
	}, nil
}

type mktTicker struct {
	price            float64
	changePercent24h float64
	volume           float64
	high24h          float64
	low24h           float64
}

func (l *PricesLogic) sourceName() string {
	if l.svcCtx.MarketConfig != nil && l.svcCtx.MarketConfig.Default != "" {
		return l.svcCtx.MarketConfig.Default
	}
	return "mexc"
}

// sortKeyFor computes a numeric sort key for non-symbol orderings. Interval
// keys accept both "change_15s" and plain "15s" forms; a missing change for
// the 24h window falls back to the exchange's 24h percent.
func sortKeyFor(sortBy string, p types.CryptoPrice) float64 {
	switch sortBy {
	case "", "symbol":
		return 0
	case "price":
		return p.Price
	case "changePercent24h":
		return p.ChangePercent24h
	case "volume":
		return p.Volume
	}
	name := strings.TrimPrefix(sortBy, "change_")
	if _, ok := tracker.IntervalSeconds(name); !ok {
		return 0
	}
	if change, ok := p.Changes[name]; ok && change != nil {
		return change.PercentChange
	}
	if name == "24h" {
		return p.ChangePercent24h
	}
	return 0
}

func sortEntries(entries []priceEntry, sortBy, sortOrder string) {
	desc := strings.EqualFold(sortOrder, "desc")
	if sortBy == "" || sortBy == "symbol" {
		sort.Slice(entries, func(i, j int) bool {
			if desc {
				return entries[i].symbol > entries[j].symbol
			}
			return entries[i].symbol < entries[j].symbol
		})
		return
	}
	sort.Slice(entries, func(i, j int) bool {
		if entries[i].sortKey == entries[j].sortKey {
			return entries[i].symbol < entries[j].symbol
		}
		if desc {
			return entries[i].sortKey > entries[j].sortKey
		}
		return entries[i].sortKey < entries[j].sortKey
	})
}
