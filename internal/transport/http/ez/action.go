package ez

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	"telco-admin/internal/core/observability"
	"telco-admin/internal/domain"
	resp "telco-admin/internal/transport/http/response"
)

// EZ 路由分组 + 日志（500 错误需要落日志）
type EZ struct {
	g   *gin.RouterGroup
	log *zap.Logger
}

func New(g *gin.RouterGroup, l *zap.Logger) EZ { return EZ{g: g, log: l} }

func (e EZ) Group() *gin.RouterGroup { return e.g }
func (e EZ) Logger() *zap.Logger     { return e.log }

// 绑定方式
type Binder string

const (
	BindJSON  Binder = "json"  // 从 JSON 绑定
	BindQuery Binder = "query" // 从 URL ?a=b 绑定
	BindNone  Binder = "none"  // 不绑定，自己从 c.Param 取
)

// AErr transport 层自己产生的错误（参数解析等）
type AErr struct {
	Code int
	Msg  string
	Err  error
}

func (e *AErr) Error() string {
	if e.Msg != "" {
		return e.Msg
	}
	if e.Err != nil {
		return e.Err.Error()
	}
	return "action error"
}

func (e *AErr) Unwrap() error { return e.Err }

func BadRequest(msg string) error { return &AErr{Code: http.StatusBadRequest, Msg: msg} }
func NotFound(msg string) error   { return &AErr{Code: http.StatusNotFound, Msg: msg} }
func Internal(msg string, err error) error {
	return &AErr{Code: http.StatusInternalServerError, Msg: msg, Err: err}
}

// 动作定义：I 入参，O 出参
type Action[I any, O any] struct {
	Method  string // "GET" | "POST" | "PUT" | "DELETE"
	Path    string // 例："/periods/:id/end"
	Binder  Binder
	Status  int // 成功状态码，默认 200
	Handler func(c *gin.Context, in *I) (O, error)
}

// RegisterAction 在当前分组下注册一个动作接口
func RegisterAction[I any, O any](e EZ, a Action[I, O]) {
	status := a.Status
	if status == 0 {
		status = http.StatusOK
	}
	h := func(c *gin.Context) {
		var in I
		var bindErr error
		switch a.Binder {
		case BindJSON:
			bindErr = c.ShouldBindJSON(&in)
		case BindQuery:
			bindErr = c.ShouldBindQuery(&in)
		default:
		}
		if bindErr != nil {
			Fail(c, e.log, BadRequest(bindMessage(bindErr)))
			return
		}

		out, err := a.Handler(c, &in)
		if err != nil {
			Fail(c, e.log, err)
			return
		}
		c.JSON(status, out)
	}

	switch strings.ToUpper(a.Method) {
	case http.MethodGet:
		e.g.GET(a.Path, h)
	case http.MethodPut:
		e.g.PUT(a.Path, h)
	case http.MethodDelete:
		e.g.DELETE(a.Path, h)
	default:
		e.g.POST(a.Path, h)
	}
}

// Fail 统一错误映射：领域错误 -> 4xx，超时 -> 504，其余 -> 500（日志 + Sentry，对外只给通用文案）
func Fail(c *gin.Context, l *zap.Logger, err error) {
	status, msg := classify(err)
	if status == http.StatusGatewayTimeout {
		if l != nil {
			l.Warn("request timed out",
				zap.String("rid", c.GetString(requestIDKey)),
				zap.String("method", c.Request.Method),
				zap.String("path", c.FullPath()),
				zap.Error(err),
			)
		}
	} else if status >= http.StatusInternalServerError {
		rid := c.GetString(requestIDKey)
		if l != nil {
			l.Error("request failed",
				zap.String("rid", rid),
				zap.String("method", c.Request.Method),
				zap.String("path", c.FullPath()),
				zap.Error(err),
			)
		}
		observability.CaptureRequestErr(err, c.Request.Method, c.FullPath(), rid)
		msg = resp.MsgInternal
	}
	c.AbortWithStatusJSON(status, resp.Error(status, msg))
}

// 与 middleware.KeyRequestID 保持一致（ez 不反向依赖 middleware）
const requestIDKey = "X-Request-ID"

func classify(err error) (int, string) {
	var ae *AErr
	switch {
	case errors.As(err, &ae):
		return ae.Code, ae.Error()
	case errors.Is(err, domain.ErrNotFound):
		return http.StatusNotFound, err.Error()
	case errors.Is(err, context.DeadlineExceeded):
		return http.StatusGatewayTimeout, resp.CodeMsgMap[http.StatusGatewayTimeout]
	case errors.Is(err, domain.ErrValidation),
		errors.Is(err, domain.ErrOverlap),
		errors.Is(err, domain.ErrAlreadyEnded):
		return http.StatusBadRequest, err.Error()
	default:
		return http.StatusInternalServerError, ""
	}
}

// ParseID 解析路径参数 :name 为正整数
func ParseID(c *gin.Context, name string) (uint, error) {
	raw := c.Param(name)
	v, err := strconv.ParseUint(raw, 10, 64)
	if err != nil || v == 0 {
		return 0, BadRequest("id inválido: " + raw)
	}
	return uint(v), nil
}

func atoiDefault(s string, def int) int {
	if v, err := strconv.Atoi(s); err == nil && v > 0 {
		return v
	}
	return def
}

// bindMessage 绑定失败时给出可读的西语提示，不暴露 Go 类型名
func bindMessage(err error) string {
	var ve validator.ValidationErrors
	if errors.As(err, &ve) && len(ve) > 0 {
		return fmt.Sprintf("campo inválido: %s (%s)", ve[0].Field(), ve[0].Tag())
	}
	msg := err.Error()
	switch {
	case msg == "EOF":
		return "el cuerpo de la solicitud está vacío"
	case strings.Contains(msg, "invalid date"):
		return "fecha inválida, use el formato AAAA-MM-DD"
	case strings.Contains(msg, "http: request body too large"):
		return resp.CodeMsgMap[http.StatusRequestEntityTooLarge]
	}
	return "solicitud inválida: " + msg
}
