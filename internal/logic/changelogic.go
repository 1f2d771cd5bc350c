package logic

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/zeromicro/go-zero/core/logx"

	"screener-api/internal/svc"
	"screener-api/internal/types"
)

type ChangeLogic struct {
	logx.Logger
	ctx    context.Context
	svcCtx *svc.ServiceContext
}

func NewChangeLogic(ctx context.Context, svcCtx *svc.ServiceContext) *ChangeLogic {
	return &ChangeLogic{
		Logger: logx.WithContext(ctx),
		ctx:    ctx,
		svcCtx: svcCtx,
	}
}

// Change answers "how much did this symbol move over the last N seconds".
// A nil change in the response means no usable sample exists for the window.
func (l *ChangeLogic) Change(req *types.ChangeReq) (*types.ChangeResp, error) {
	symbol := strings.ToUpper(strings.TrimSpace(req.Symbol))
	if symbol == "" {
		return nil, fmt.Errorf("symbol is required")
	}
	if req.Seconds <= 0 {
		return nil, fmt.Errorf("seconds must be positive")
	}

	change := l.svcCtx.Tracker.Change(symbol, req.Seconds, time.Now().UTC())
	return &types.ChangeResp{
		Symbol:    symbol,
		Seconds:   req.Seconds,
		Change:    toPriceChange(change),
		Timestamp: nowStamp(),
	}, nil
}
