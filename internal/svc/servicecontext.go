package svc

import (
	"log"
	"time"

	_ "github.com/jackc/pgx/v5/stdlib" // register pgx driver
	"github.com/zeromicro/go-zero/core/stores/redis"
	"github.com/zeromicro/go-zero/core/stores/sqlx"

	cachekeys "screener-api/internal/cache"
	"screener-api/internal/collector"
	"screener-api/internal/config"
	"screener-api/internal/model"
	marketpersist "screener-api/internal/persistence/market"
	marketpkg "screener-api/pkg/market"
	_ "screener-api/pkg/market/exchanges/mexc"
	"screener-api/pkg/tracker"
)

type ServiceContext struct {
	Config config.Config

	Tracker  *tracker.Registry
	Universe []string

	MarketConfig    *marketpkg.Config
	MarketProviders map[string]marketpkg.Provider
	DefaultMarket   marketpkg.Provider

	Collector *collector.Collector

	// Optional storage backends; nil unless configured.
	DBConn           sqlx.SqlConn
	PriceLatestModel model.PriceLatestModel
	PriceTicksModel  model.PriceTicksModel
	Redis            *redis.Redis
	Persist          marketpkg.Persistence
	TTL              cachekeys.TTLSet
}

func NewServiceContext(c config.Config) *ServiceContext {
	svc := &ServiceContext{
		Config: c,
		TTL:    cachekeys.NewTTLSet(c.TTL),
	}

	svc.Tracker = tracker.New(tracker.Config{
		HistoryCap: c.Screener.HistoryCap,
	})

	if c.Tickers.Value != nil {
		svc.Universe = c.Tickers.Value.Pairs()
	}

	if c.Market.Value != nil {
		providers, err := c.Market.Value.BuildProviders()
		if err != nil {
			log.Fatalf("failed to build market providers: %v", err)
		}
		svc.MarketConfig = c.Market.Value
		svc.MarketProviders = providers
		if c.Market.Value.Default != "" {
			svc.DefaultMarket = providers[c.Market.Value.Default]
		}
	}

	if c.Redis.Host != "" {
		svc.Redis = redis.MustNewRedis(c.Redis)
	}

	if c.Postgres.DSN != "" {
		conn := sqlx.NewSqlConn("pgx", c.Postgres.DSN)
		svc.DBConn = conn
		svc.PriceLatestModel = model.NewPriceLatestModel(conn)
		svc.PriceTicksModel = model.NewPriceTicksModel(conn)
		svc.Persist = marketpersist.NewService(marketpersist.Config{
			SQLConn:          conn,
			PriceLatestModel: svc.PriceLatestModel,
			PriceTicksModel:  svc.PriceTicksModel,
			Redis:            svc.Redis,
			TTL:              svc.TTL,
		})
	}

	if svc.DefaultMarket != nil {
		providerName := ""
		if svc.MarketConfig != nil {
			providerName = svc.MarketConfig.Default
		}
		svc.Collector = collector.New(collector.Config{
			Provider:      svc.DefaultMarket,
			ProviderName:  providerName,
			Registry:      svc.Tracker,
			Persist:       svc.Persist,
			Universe:      svc.Universe,
			PollInterval:  time.Duration(c.Screener.PollInterval) * time.Second,
			SweepInterval: time.Duration(c.Screener.SweepInterval) * time.Second,
			SymbolTTL:     time.Duration(c.Screener.SymbolTTL) * time.Second,
			SeedBars:      c.Screener.SeedBars,
			SeedWorkers:   c.Screener.SeedWorkers,
		})
	}

	return svc
}
