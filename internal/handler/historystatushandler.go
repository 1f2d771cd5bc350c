package handler

import (
	"net/http"

	"github.com/zeromicro/go-zero/rest/httpx"

	"screener-api/internal/logic"
	"screener-api/internal/svc"
)

func HistoryStatusHandler(svcCtx *svc.ServiceContext) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		l := logic.NewHistoryStatusLogic(r.Context(), svcCtx)
		resp, err := l.HistoryStatus()
		if err != nil {
			httpx.ErrorCtx(r.Context(), w, err)
		} else {
			httpx.OkJsonCtx(r.Context(), w, resp)
		}
	}
}
