// Code scaffolded by goctl. Safe to edit.
// goctl 1.9.2

package handler

import (
	"net/http"

	"github.com/zeromicro/go-zero/rest"

	"screener-api/internal/svc"
)

func RegisterHandlers(server *rest.Server, serverCtx *svc.ServiceContext) {
	server.AddRoutes(
		[]rest.Route{
			{
				Method:  http.MethodGet,
				Path:    "/health",
				Handler: HealthHandler(serverCtx),
			},
			{
				Method:  http.MethodGet,
				Path:    "/tickers",
				Handler: TickersHandler(serverCtx),
			},
			{
				Method:  http.MethodGet,
				Path:    "/crypto/prices",
				Handler: PricesHandler(serverCtx),
			},
			{
				Method:  http.MethodGet,
				Path:    "/crypto/candles",
				Handler: CandlesHandler(serverCtx),
			},
			{
				Method:  http.MethodGet,
				Path:    "/crypto/change",
				Handler: ChangeHandler(serverCtx),
			},
			{
				Method:  http.MethodPost,
				Path:    "/crypto/load-history",
				Handler: LoadHistoryHandler(serverCtx),
			},
			{
				Method:  http.MethodGet,
				Path:    "/crypto/history-status",
				Handler: HistoryStatusHandler(serverCtx),
			},
		},
		rest.WithPrefix("/api"),
	)
}
