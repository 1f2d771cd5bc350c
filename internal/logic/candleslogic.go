package logic

import (
	"context"
	"fmt"
	"strings"

	"github.com/zeromicro/go-zero/core/logx"

	"screener-api/internal/svc"
	"screener-api/internal/types"
	"screener-api/pkg/tracker"
)

type CandlesLogic struct {
	logx.Logger
	ctx    context.Context
	svcCtx *svc.ServiceContext
}

func NewCandlesLogic(ctx context.Context, svcCtx *svc.ServiceContext) *CandlesLogic {
	return &CandlesLogic{
		Logger: logx.WithContext(ctx),
		ctx:    ctx,
		svcCtx: svcCtx,
	}
}

func (l *CandlesLogic) Candles(req *types.CandlesReq) (*types.CandlesResp, error) {
	symbol := strings.ToUpper(strings.TrimSpace(req.Symbol))
	if symbol == "" {
		return nil, fmt.Errorf("symbol is required")
	}
	if _, ok := tracker.TimeframeByName(req.Timeframe); !ok {
		return nil, fmt.Errorf("unknown timeframe %q", req.Timeframe)
	}

	candles := l.svcCtx.Tracker.Candles(symbol, req.Timeframe, req.Limit)
	return &types.CandlesResp{
		Symbol:    symbol,
		Timeframe: req.Timeframe,
		Candles:   toCandleSlice(candles),
		Count:     len(candles),
		Timestamp: nowStamp(),
	}, nil
}
