package logic

import (
	"context"

	"github.com/zeromicro/go-zero/core/logx"

	"screener-api/internal/svc"
	"screener-api/internal/types"
)

const apiVersion = "3.0.0"

type HealthLogic struct {
	logx.Logger
	ctx    context.Context
	svcCtx *svc.ServiceContext
}

func NewHealthLogic(ctx context.Context, svcCtx *svc.ServiceContext) *HealthLogic {
	return &HealthLogic{
		Logger: logx.WithContext(ctx),
		ctx:    ctx,
		svcCtx: svcCtx,
	}
}

func (l *HealthLogic) Health() (*types.HealthResp, error) {
	running := false
	if l.svcCtx.Collector != nil {
		running = l.svcCtx.Collector.Running()
	}
	return &types.HealthResp{
		Status:                "healthy",
		Timestamp:             nowStamp(),
		TotalSupportedTickers: len(l.svcCtx.Universe),
		ActiveSymbols:         l.svcCtx.Tracker.ActiveCount(),
		CollectorRunning:      running,
		Version:               apiVersion,
	}, nil
}
