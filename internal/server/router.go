package server

import (
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"keypool-go/internal/middleware"
	"keypool-go/internal/pool"
)

// NewRouter builds the observability HTTP surface over a pool. The routes
// are strictly read-only: the pool is driven by in-process workers, not by
// this server.
func NewRouter(p *pool.Pool, debug bool) *gin.Engine {
	if !debug {
		gin.SetMode(gin.ReleaseMode)
	}

	r := gin.New()
	r.Use(middleware.RequestID(), middleware.RequestLogger(), middleware.Recovery())

	r.GET("/healthz", handleHealthz(p))
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))

	v1 := r.Group("/v1")
	v1.GET("/stats", handleStats(p))
	v1.GET("/stats/summary", handleStatsSummary(p))

	return r
}
