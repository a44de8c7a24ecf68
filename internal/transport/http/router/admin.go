package router

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	resp "telco-admin/internal/transport/http/response"
)

// NewAdminEngine 运维端口：健康检查、Prometheus、/admin/v1 导出
func NewAdminEngine(l *zap.Logger, o Options, ping func(ctx context.Context) error) *gin.Engine {
	r := newEngine(l, o)

	// /health 额外检查数据库
	r.GET("/health/db", func(c *gin.Context) {
		if ping != nil {
			if err := ping(c); err != nil {
				l.Warn("db health check failed", zap.Error(err))
				c.JSON(http.StatusServiceUnavailable, resp.Error(http.StatusServiceUnavailable, "base de datos no disponible"))
				return
			}
		}
		c.JSON(http.StatusOK, gin.H{"ok": 1})
	})
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))

	admin := r.Group("/admin/v1")
	MountAllAdmin(admin)
	return r
}
