// Package observability 错误上报（Sentry）；DSN 为空时全部为空操作
package observability

import (
	"time"

	"github.com/getsentry/sentry-go"
)

// InitSentry 返回 flush 函数，进程退出前调用
func InitSentry(dsn, env, release string) (func(), error) {
	if dsn == "" {
		return func() {}, nil
	}
	if err := sentry.Init(sentry.ClientOptions{
		Dsn:         dsn,
		Environment: env,
		Release:     release,
	}); err != nil {
		return func() {}, err
	}
	return func() { sentry.Flush(2 * time.Second) }, nil
}

func CaptureErr(err error) {
	if err != nil {
		sentry.CaptureException(err)
	}
}

// CaptureRequestErr 附带请求方法、路径与 request id
func CaptureRequestErr(err error, method, path, rid string) {
	if err == nil {
		return
	}
	sentry.WithScope(func(scope *sentry.Scope) {
		scope.SetTag("http.method", method)
		scope.SetTag("http.route", path)
		if rid != "" {
			scope.SetTag("request_id", rid)
		}
		sentry.CaptureException(err)
	})
}
