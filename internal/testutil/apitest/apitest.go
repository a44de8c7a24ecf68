// Package apitest httptest 小工具
package apitest

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"
)

// Engine 测试模式下的空引擎，mount 负责挂路由
func Engine(mount func(api *gin.RouterGroup)) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.ContextWithFallback = true
	mount(r.Group("/api/v1"))
	return r
}

func Do(t testing.TB, r http.Handler, method, path, body string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func Decode[T any](t testing.TB, w *httptest.ResponseRecorder) T {
	t.Helper()
	var out T
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &out), w.Body.String())
	return out
}

// Created 断言 201 并返回新记录 id
func Created(t testing.TB, w *httptest.ResponseRecorder) uint {
	t.Helper()
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	return Decode[struct {
		ID uint `json:"id"`
	}](t, w).ID
}

// ErrorMsg 解析 {"error": "..."}
func ErrorMsg(t testing.TB, w *httptest.ResponseRecorder) string {
	t.Helper()
	return Decode[struct {
		Error string `json:"error"`
	}](t, w).Error
}
