package handler

import (
	"net/http"

	"github.com/zeromicro/go-zero/rest/httpx"

	"screener-api/internal/logic"
	"screener-api/internal/svc"
	"screener-api/internal/types"
)

func LoadHistoryHandler(svcCtx *svc.ServiceContext) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req types.LoadHistoryReq
		if err := httpx.Parse(r, &req); err != nil {
			httpx.ErrorCtx(r.Context(), w, err)
			return
		}

		l := logic.NewLoadHistoryLogic(r.Context(), svcCtx)
		resp, err := l.LoadHistory(&req)
		if err != nil {
			httpx.ErrorCtx(r.Context(), w, err)
		} else {
			httpx.OkJsonCtx(r.Context(), w, resp)
		}
	}
}
