package logic

import (
	"context"

	"github.com/zeromicro/go-zero/core/logx"

	"screener-api/internal/svc"
	"screener-api/internal/types"
)

type TickersLogic struct {
	logx.Logger
	ctx    context.Context
	svcCtx *svc.ServiceContext
}

func NewTickersLogic(ctx context.Context, svcCtx *svc.ServiceContext) *TickersLogic {
	return &TickersLogic{
		Logger: logx.WithContext(ctx),
		ctx:    ctx,
		svcCtx: svcCtx,
	}
}

func (l *TickersLogic) Tickers() (*types.TickersResp, error) {
	return &types.TickersResp{
		Tickers:   l.svcCtx.Universe,
		Count:     len(l.svcCtx.Universe),
		Timestamp: nowStamp(),
	}, nil
}
