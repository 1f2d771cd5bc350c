package model

import (
	"context"
	"database/sql"
	"time"

	"github.com/zeromicro/go-zero/core/stores/sqlx"
)

var _ PriceLatestModel = (*defaultPriceLatestModel)(nil)

type (
	// PriceLatestModel provides access to the price_latest table, which keeps
	// one row per provider/symbol with the most recent observed price.
	PriceLatestModel interface {
		Upsert(ctx context.Context, data *PriceLatest) error
		FindOne(ctx context.Context, provider, symbol string) (*PriceLatest, error)
	}

	defaultPriceLatestModel struct {
		conn sqlx.SqlConn
	}

	PriceLatest struct {
		Id        int64           `db:"id"`
		Provider  string          `db:"provider"`
		Symbol    string          `db:"symbol"`
		Price     float64         `db:"price"`
		Volume    sql.NullFloat64 `db:"volume"`
		TsMs      int64           `db:"ts_ms"`
		CreatedAt time.Time       `db:"created_at"`
		UpdatedAt time.Time       `db:"updated_at"`
	}
)

// NewPriceLatestModel returns a model for the price_latest table.
func NewPriceLatestModel(conn sqlx.SqlConn) PriceLatestModel {
	return &defaultPriceLatestModel{conn: conn}
}

func (m *defaultPriceLatestModel) Upsert(ctx context.Context, data *PriceLatest) error {
	stmt := `
INSERT INTO public.price_latest (provider, symbol, price, volume, ts_ms, created_at, updated_at)
VALUES ($1, $2, $3, $4, $5, NOW(), NOW())
ON CONFLICT (provider, symbol) DO UPDATE SET
    price = EXCLUDED.price,
    volume = EXCLUDED.volume,
    ts_ms = EXCLUDED.ts_ms,
    updated_at = NOW();`
	_, err := m.conn.ExecCtx(ctx, stmt, data.Provider, data.Symbol, data.Price, data.Volume, data.TsMs)
	return err
}

func (m *defaultPriceLatestModel) FindOne(ctx context.Context, provider, symbol string) (*PriceLatest, error) {
	query := `SELECT id, provider, symbol, price, volume, ts_ms, created_at, updated_at FROM public.price_latest WHERE provider = $1 AND symbol = $2 LIMIT 1`
	var resp PriceLatest
	err := m.conn.QueryRowCtx(ctx, &resp, query, provider, symbol)
	switch err {
	case nil:
		return &resp, nil
	case sqlx.ErrNotFound:
		return nil, ErrNotFound
	default:
		return nil, err
	}
}
