package logic

import (
	"context"

	"github.com/zeromicro/go-zero/core/logx"

	"screener-api/internal/svc"
	"screener-api/internal/types"
)

type HistoryStatusLogic struct {
	logx.Logger
	ctx    context.Context
	svcCtx *svc.ServiceContext
}

func NewHistoryStatusLogic(ctx context.Context, svcCtx *svc.ServiceContext) *HistoryStatusLogic {
	return &HistoryStatusLogic{
		Logger: logx.WithContext(ctx),
		ctx:    ctx,
		svcCtx: svcCtx,
	}
}

func (l *HistoryStatusLogic) HistoryStatus() (*types.HistoryStatusResp, error) {
	return &types.HistoryStatusResp{
		HistoricalDataLoaded: l.svcCtx.Tracker.HistoryLoaded(),
		ActiveSymbols:        l.svcCtx.Tracker.ActiveCount(),
		SupportedSymbols:     len(l.svcCtx.Universe),
		Timestamp:            nowStamp(),
	}, nil
}
