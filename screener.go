// Code scaffolded by goctl. Safe to edit.
// goctl 1.9.2

package main

import (
	"context"
	"flag"
	"fmt"

	"github.com/zeromicro/go-zero/rest"

	"screener-api/internal/cli"
	"screener-api/internal/config"
	"screener-api/internal/handler"
	"screener-api/internal/svc"
)

var configFile = flag.String("f", "etc/screener.yaml", "the config file")

func main() {
	flag.Parse()

	cfg := config.MustLoad(*configFile)
	cli.LogConfigSummary(cfg)

	var opts []rest.RunOption
	if cfg.CORSOrigin != "" {
		opts = append(opts, rest.WithCors(cfg.CORSOrigin))
	}
	server := rest.MustNewServer(cfg.RestConf, opts...)
	defer server.Stop()

	ctx := svc.NewServiceContext(*cfg)
	handler.RegisterHandlers(server, ctx)

	if ctx.Collector != nil {
		collectorCtx, cancel := context.WithCancel(context.Background())
		defer cancel()
		go ctx.Collector.Run(collectorCtx)
	}

	fmt.Printf("Starting server at %s:%d...\n", cfg.Host, cfg.Port)
	server.Start()
}
