package router

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
	"golang.org/x/time/rate"

	"telco-admin/internal/core/server"
	mdw "telco-admin/internal/transport/http/middleware"
)

// Options 两个引擎共用的中间件参数
type Options struct {
	AllowOrigins []string
	RPS          float64 // 每 IP
	Burst        int
	MaxInFlight  int64
	Timeout      time.Duration
}

func (o Options) withDefaults() Options {
	if o.RPS <= 0 {
		o.RPS = 50
	}
	if o.Burst <= 0 {
		o.Burst = 100
	}
	if o.MaxInFlight <= 0 {
		o.MaxInFlight = 300
	}
	if o.Timeout <= 0 {
		o.Timeout = 10 * time.Second
	}
	return o
}

func newEngine(l *zap.Logger, o Options) *gin.Engine {
	o = o.withDefaults()
	r := server.NewRouter(l, o.AllowOrigins)
	r.Use(
		mdw.RequestID(),
		mdw.JSONRecovery(l),
		mdw.RateLimitPerIP(rate.Limit(o.RPS), o.Burst, 10*time.Minute),
		mdw.ConcurrencyLimit(o.MaxInFlight),
		mdw.MaxBodyBytes(1<<20),
		mdw.Timeout(o.Timeout),
		mdw.Metrics(),
		mdw.AccessLog(l),
	)
	r.GET("/health", func(c *gin.Context) { c.JSON(http.StatusOK, gin.H{"ok": 1}) })
	return r
}

// NewAPIEngine 对前端开放的 /api/v1
func NewAPIEngine(l *zap.Logger, o Options) *gin.Engine {
	r := newEngine(l, o)
	api := r.Group("/api/v1")
	MountAllAPI(api)
	return r
}
