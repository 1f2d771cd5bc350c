package marketpersist

import (
	"context"
	"database/sql"
	"strings"
	"time"

	"github.com/vmihailenco/msgpack/v5"
	"github.com/zeromicro/go-zero/core/logx"
	"github.com/zeromicro/go-zero/core/stores/redis"
	"github.com/zeromicro/go-zero/core/stores/sqlx"

	cachekeys "screener-api/internal/cache"
	"screener-api/internal/model"
	"screener-api/pkg/market"
)

// Service implements market data persistence and caching hooks.
type Service struct {
	sqlConn          sqlx.SqlConn
	priceLatestModel model.PriceLatestModel
	priceTicksModel  model.PriceTicksModel
	redis            *redis.Redis
	ttl              cachekeys.TTLSet
}

// Config enumerates dependencies required to persist market data.
type Config struct {
	SQLConn          sqlx.SqlConn
	PriceLatestModel model.PriceLatestModel
	PriceTicksModel  model.PriceTicksModel
	Redis            *redis.Redis
	TTL              cachekeys.TTLSet
}

// NewService wires a market persistence service. Returns nil when the
// database connection is missing.
func NewService(cfg Config) market.Persistence {
	if cfg.SQLConn == nil {
		return nil
	}
	return &Service{
		sqlConn:          cfg.SQLConn,
		priceLatestModel: cfg.PriceLatestModel,
		priceTicksModel:  cfg.PriceTicksModel,
		redis:            cfg.Redis,
		ttl:              cfg.TTL,
	}
}

// pricePayload is the msgpack-encoded shape stored under price keys.
type pricePayload struct {
	Price  float64 `msgpack:"price"`
	Volume float64 `msgpack:"volume"`
	TsMs   int64   `msgpack:"ts_ms"`
}

// tickerPayload is the msgpack-encoded shape stored under ticker keys.
type tickerPayload struct {
	Symbol           string  `msgpack:"symbol"`
	LastPrice        float64 `msgpack:"last_price"`
	Volume           float64 `msgpack:"volume"`
	High24h          float64 `msgpack:"high_24h"`
	Low24h           float64 `msgpack:"low_24h"`
	ChangePercent24h float64 `msgpack:"change_percent_24h"`
	TsMs             int64   `msgpack:"ts_ms"`
}

// RecordTickers persists a polled ticker batch to Postgres and refreshes the
// Redis price cache. Invalid entries are skipped rather than failing the batch.
func (s *Service) RecordTickers(ctx context.Context, provider string, tickers []market.Ticker) error {
	if s == nil || s.sqlConn == nil || len(tickers) == 0 {
		return nil
	}
	for i := range tickers {
		t := &tickers[i]
		if strings.TrimSpace(t.Symbol) == "" || t.LastPrice <= 0 {
			continue
		}
		ts := t.Timestamp
		if ts.IsZero() {
			ts = time.Now().UTC()
		}
		volume := sql.NullFloat64{}
		if t.Volume > 0 {
			volume = sql.NullFloat64{Float64: t.Volume, Valid: true}
		}
		latest := &model.PriceLatest{
			Provider: provider,
			Symbol:   t.Symbol,
			Price:    t.LastPrice,
			Volume:   volume,
			TsMs:     ts.UnixMilli(),
		}
		if err := s.priceLatestModel.Upsert(ctx, latest); err != nil {
			return err
		}
		tick := &model.PriceTick{
			Provider: provider,
			Symbol:   t.Symbol,
			Price:    t.LastPrice,
			Volume:   volume,
			TsMs:     ts.UnixMilli(),
		}
		if err := s.priceTicksModel.Insert(ctx, tick); err != nil && !model.IsUniqueViolation(err) {
			return err
		}
		s.cachePrice(ctx, provider, t.Symbol, t.LastPrice, t.Volume, ts)
		s.cacheTicker(ctx, provider, t, ts)
	}
	return nil
}

func (s *Service) cachePrice(ctx context.Context, provider, symbol string, price, volume float64, ts time.Time) {
	if s.redis == nil {
		return
	}
	ttl := cachekeys.PriceTTL(s.ttl)
	if ttl <= 0 {
		return
	}
	raw, err := msgpack.Marshal(pricePayload{Price: price, Volume: volume, TsMs: ts.UnixMilli()})
	if err != nil {
		logx.WithContext(ctx).Errorf("marketpersist: encode price symbol=%s err=%v", symbol, err)
		return
	}
	seconds := int(ttl / time.Second)
	// Provider scoped key
	key := cachekeys.PriceLatestByProviderKey(provider, symbol)
	if err := s.redis.SetexCtx(ctx, key, string(raw), seconds); err != nil {
		logx.WithContext(ctx).Errorf("marketpersist: cache price key=%s err=%v", key, err)
	}
	// Global key
	global := cachekeys.PriceLatestKey(symbol)
	if err := s.redis.SetexCtx(ctx, global, string(raw), seconds); err != nil {
		logx.WithContext(ctx).Errorf("marketpersist: cache price key=%s err=%v", global, err)
	}
}

func (s *Service) cacheTicker(ctx context.Context, provider string, t *market.Ticker, ts time.Time) {
	if s.redis == nil {
		return
	}
	ttl := cachekeys.TickerTTL(s.ttl)
	if ttl <= 0 {
		return
	}
	raw, err := msgpack.Marshal(tickerPayload{
		Symbol:           t.Symbol,
		LastPrice:        t.LastPrice,
		Volume:           t.Volume,
		High24h:          t.High24h,
		Low24h:           t.Low24h,
		ChangePercent24h: t.ChangePercent24h,
		TsMs:             ts.UnixMilli(),
	})
	if err != nil {
		logx.WithContext(ctx).Errorf("marketpersist: encode ticker symbol=%s err=%v", t.Symbol, err)
		return
	}
	key := cachekeys.TickerKey(provider, t.Symbol)
	if err := s.redis.SetexCtx(ctx, key, string(raw), int(ttl/time.Second)); err != nil {
		logx.WithContext(ctx).Errorf("marketpersist: cache ticker key=%s err=%v", key, err)
	}
}
