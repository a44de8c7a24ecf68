package response

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// ErrorBody 所有失败响应：{"error": "..."}
type ErrorBody struct {
	Error string `json:"error"`
}

// MessageBody 删除等无返回实体的操作：{"message": "..."}
type MessageBody struct {
	Message string `json:"message"`
}

// Page 列表分页
type Page[T any] struct {
	List  []T   `json:"list"`
	Total int64 `json:"total"`
	Page  int   `json:"page"`
	Size  int   `json:"size"`
}

// Error 失败响应（msg 为空时取 CodeMsgMap 默认文案）
func Error(status int, msg string) ErrorBody {
	if msg == "" {
		msg = CodeMsgMap[status]
	}
	if msg == "" {
		msg = http.StatusText(status)
	}
	return ErrorBody{Error: msg}
}

func Message(msg string) MessageBody { return MessageBody{Message: msg} }

// Abort 中断链路并写错误体
func Abort(c *gin.Context, status int, msg string) {
	c.AbortWithStatusJSON(status, Error(status, msg))
}
