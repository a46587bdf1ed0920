package server

import (
	nethttp "net/http"
	"time"

	"github.com/go-kratos/kratos/v2/log"
	"github.com/go-kratos/kratos/v2/middleware/recovery"
	"github.com/go-kratos/kratos/v2/transport/http"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/iWorld-y/growth_radar/app/growth/internal/conf"
	"github.com/iWorld-y/growth_radar/app/growth/internal/service"
)

func NewHTTPServer(c *conf.Server, s *service.GrowthService, logger log.Logger) *http.Server {
	var opts = []http.ServerOption{
		http.Middleware(
			recovery.Recovery(),
		),
	}
	if c != nil && c.Http != nil {
		if c.Http.Addr != "" {
			opts = append(opts, http.Address(c.Http.Addr))
		}
		if c.Http.Timeout != "" {
			if d, err := time.ParseDuration(c.Http.Timeout); err == nil {
				opts = append(opts, http.Timeout(d))
			}
		}
	}

	srv := http.NewServer(opts...)
	RegisterGrowthHTTPServer(srv, s)

	srv.Handle("/metrics", promhttp.Handler())
	srv.HandleFunc("/healthz", func(w nethttp.ResponseWriter, r *nethttp.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"status":"ok"}`))
	})

	return srv
}

// RegisterGrowthHTTPServer 注册增长报告相关路由
func RegisterGrowthHTTPServer(srv *http.Server, s *service.GrowthService) {
	r := srv.Route("/")
	r.POST("/v1/growth/report", s.GenerateReport)
	r.GET("/v1/growth/history", s.ListHistory)
	r.GET("/v1/growth/history/{id}", s.GetHistory)
	r.GET("/v1/credits/{userId}", s.GetCredits)
}
