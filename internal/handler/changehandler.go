package handler

import (
	"net/http"

	"github.com/zeromicro/go-zero/rest/httpx"

	"screener-api/internal/logic"
	"screener-api/internal/svc"
	"screener-api/internal/types"
)

func ChangeHandler(svcCtx *svc.ServiceContext) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req types.ChangeReq
		if err := httpx.Parse(r, &req); err != nil {
			httpx.ErrorCtx(r.Context(), w, err)
			return
		}

		l := logic.NewChangeLogic(r.Context(), svcCtx)
		resp, err := l.Change(&req)
		if err != nil {
			httpx.ErrorCtx(r.Context(), w, err)
		} else {
			httpx.OkJsonCtx(r.Context(), w, resp)
		}
	}
}
