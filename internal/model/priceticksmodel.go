package model

import (
	"context"
	"database/sql"
	"time"

	"github.com/zeromicro/go-zero/core/stores/sqlx"
)

var _ PriceTicksModel = (*defaultPriceTicksModel)(nil)

type (
	// PriceTicksModel provides access to the append-only price_ticks table.
	PriceTicksModel interface {
		Insert(ctx context.Context, data *PriceTick) error
		FindRecent(ctx context.Context, provider, symbol string, limit int) ([]*PriceTick, error)
	}

	defaultPriceTicksModel struct {
		conn sqlx.SqlConn
	}

	PriceTick struct {
		Id        int64           `db:"id"`
		Provider  string          `db:"provider"`
		Symbol    string          `db:"symbol"`
		Price     float64         `db:"price"`
		Volume    sql.NullFloat64 `db:"volume"`
		TsMs      int64           `db:"ts_ms"`
		CreatedAt time.Time       `db:"created_at"`
	}
)

// NewPriceTicksModel returns a model for the price_ticks table.
func NewPriceTicksModel(conn sqlx.SqlConn) PriceTicksModel {
	return &defaultPriceTicksModel{conn: conn}
}

func (m *defaultPriceTicksModel) Insert(ctx context.Context, data *PriceTick) error {
	stmt := `
INSERT INTO public.price_ticks (provider, symbol, price, volume, ts_ms, created_at)
VALUES ($1, $2, $3, $4, $5, NOW());`
	_, err := m.conn.ExecCtx(ctx, stmt, data.Provider, data.Symbol, data.Price, data.Volume, data.TsMs)
	return err
}

func (m *defaultPriceTicksModel) FindRecent(ctx context.Context, provider, symbol string, limit int) ([]*PriceTick, error) {
	if limit <= 0 {
		limit = 100
	}
	query := `SELECT id, provider, symbol, price, volume, ts_ms, created_at FROM public.price_ticks WHERE provider = $1 AND symbol = $2 ORDER BY ts_ms DESC LIMIT $3`
	var resp []*PriceTick
	err := m.conn.QueryRowsCtx(ctx, &resp, query, provider, symbol, limit)
	if err != nil {
		return nil, err
	}
	return resp, nil
}
