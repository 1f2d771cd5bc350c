package logic

import (
	"context"
	"fmt"

	"github.com/zeromicro/go-zero/core/logx"

	"screener-api/internal/collector"
	"screener-api/internal/svc"
	"screener-api/internal/types"
)

type LoadHistoryLogic struct {
	logx.Logger
	ctx    context.Context
	svcCtx *svc.ServiceContext
}

func NewLoadHistoryLogic(ctx context.Context, svcCtx *svc.ServiceContext) *LoadHistoryLogic {
	return &LoadHistoryLogic{
		Logger: logx.WithContext(ctx),
		ctx:    ctx,
		svcCtx: svcCtx,
	}
}

func (l *LoadHistoryLogic) LoadHistory(req *types.LoadHistoryReq) (*types.LoadHistoryResp, error) {
	if l.svcCtx.Collector == nil {
		return nil, fmt.Errorf("no market provider configured")
	}

	timeframes := req.Timeframes
	if len(timeframes) == 0 {
		timeframes = collector.DefaultSeedTimeframes
	}

	symbolsLoaded, totalCandles, err := l.svcCtx.Collector.LoadHistory(l.ctx, req.Symbols, timeframes, req.Bars)
	if err != nil {
		return nil, err
	}

	l.Infof("history load done: %d symbols, %d candles", symbolsLoaded, totalCandles)
	return &types.LoadHistoryResp{
		Success:       true,
		Message:       fmt.Sprintf("loaded historical data for %d symbols", symbolsLoaded),
		SymbolsLoaded: symbolsLoaded,
		TotalCandles:  totalCandles,
		Timeframes:    timeframes,
		Timestamp:     nowStamp(),
	}, nil
}
