package middleware

import (
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"telco-admin/internal/core/observability"
	resp "telco-admin/internal/transport/http/response"
)

// JSONRecovery panic 时返回 JSON 500，并记录日志 + 上报 Sentry
func JSONRecovery(l *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		defer func() {
			if rec := recover(); rec != nil {
				err := fmt.Errorf("panic: %v", rec)
				rid := c.GetString(KeyRequestID)
				l.Error("panic recovered",
					zap.String("rid", rid),
					zap.String("path", c.Request.URL.Path),
					zap.Any("panic", rec),
					zap.Stack("stack"),
				)
				observability.CaptureRequestErr(err, c.Request.Method, c.FullPath(), rid)
				resp.Abort(c, http.StatusInternalServerError, resp.MsgInternal)
			}
		}()
		c.Next()
	}
}
