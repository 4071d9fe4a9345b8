// Package errors 定义业务错误分类：不存在、业务冲突、参数无效。
// 各 service 模块基于这三类声明自己的哨兵错误，handler 按类别映射 HTTP 状态码。
package errors

import "errors"

var (
	ErrNotFound     = errors.New("记录不存在")
	ErrConflict     = errors.New("业务冲突")
	ErrInvalidInput = errors.New("参数无效")
)

// Error 带类别的业务错误
// Subject 对 NotFound 是实体名，对 Conflict 是冲突原因，对 InvalidInput 是字段名
type Error struct {
	Kind    error
	Subject string
	Message string
}

func (e *Error) Error() string { return e.Message }

func (e *Error) Unwrap() error { return e.Kind }

// NotFound 实体不存在
func NotFound(entity, message string) *Error {
	return &Error{Kind: ErrNotFound, Subject: entity, Message: message}
}

// Conflict 业务规则冲突（满员、时间冲突等）
func Conflict(reason, message string) *Error {
	return &Error{Kind: ErrConflict, Subject: reason, Message: message}
}

// InvalidInput 请求字段无效
func InvalidInput(field, message string) *Error {
	return &Error{Kind: ErrInvalidInput, Subject: field, Message: message}
}

// Message 提取面向调用方的错误描述，非业务错误返回空串
func Message(err error) string {
	var e *Error
	if errors.As(err, &e) {
		return e.Message
	}
	return ""
}
