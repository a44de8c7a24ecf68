package domain

import (
	"errors"
	"fmt"
)

// 错误分类（transport 层按 errors.Is 映射 HTTP 状态码）
var (
	ErrValidation   = errors.New("validation failed")
	ErrNotFound     = errors.New("not found")
	ErrOverlap      = errors.New("period overlap")
	ErrAlreadyEnded = errors.New("period already ended")
)

// ValidationError 入参缺失/格式错误/引用不存在，消息直接给用户看
type ValidationError struct {
	Msg string
}

func (e *ValidationError) Error() string        { return e.Msg }
func (e *ValidationError) Is(target error) bool { return target == ErrValidation }

func Invalid(format string, args ...any) error {
	return &ValidationError{Msg: fmt.Sprintf(format, args...)}
}

// NotFoundError 资源不存在
type NotFoundError struct {
	Resource string
	ID       uint
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("%s %d no encontrado", e.Resource, e.ID)
}
func (e *NotFoundError) Is(target error) bool { return target == ErrNotFound }

func NotFound(resource string, id uint) error {
	return &NotFoundError{Resource: resource, ID: id}
}

// OverlapError 与同一 (代表人, 公司) 的已有任期冲突
type OverlapError struct {
	Conflict RepresentationPeriod
}

func (e *OverlapError) Error() string {
	c := e.Conflict
	if c.Open() {
		return fmt.Sprintf("ya existe un período activo para este representante en la empresa (período %d, desde %s)",
			c.ID, c.StartDate)
	}
	return fmt.Sprintf("las fechas se superponen con el período %d (%s a %s)", c.ID, c.StartDate, *c.EndDate)
}
func (e *OverlapError) Is(target error) bool { return target == ErrOverlap }

// AlreadyEndedError 结束一个已结束的任期
type AlreadyEndedError struct {
	ID uint
}

func (e *AlreadyEndedError) Error() string {
	return fmt.Sprintf("el período %d ya fue finalizado", e.ID)
}
func (e *AlreadyEndedError) Is(target error) bool { return target == ErrAlreadyEnded }
