package handler

import (
	"errors"
	"io"
	"strconv"

	"github.com/gin-gonic/gin"

	pkgerrors "school-enroll/pkg/errors"
	"school-enroll/pkg/response"
)

// MustGetIDParam 从路径参数中解析正整数 ID。
// 解析失败时写入 400 响应并返回 false，调用方应直接 return。
func MustGetIDParam(c *gin.Context, name string) (uint, bool) {
	raw := c.Param(name)
	id, err := strconv.ParseUint(raw, 10, 32)
	if err != nil || id == 0 {
		response.BadRequest(c, "Invalid "+name)
		return 0, false
	}
	return uint(id), true
}

// bindOptionalJSON 解析 JSON 请求体，空请求体视为未提供任何字段。
// 字段缺失交给 service 在确认记录存在之后再校验；请求体格式非法时写入 400 并返回 false。
func bindOptionalJSON(c *gin.Context, obj interface{}, invalidMsg string) bool {
	if err := c.ShouldBindJSON(obj); err != nil && !errors.Is(err, io.EOF) {
		response.BadRequest(c, invalidMsg)
		return false
	}
	return true
}

// writeServiceError 按业务错误类别映射 HTTP 状态码
//   - NotFound → 404
//   - Conflict / InvalidInput → 400
//   - 其他 → 500（不向调用方暴露内部错误）
func writeServiceError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, pkgerrors.ErrNotFound):
		response.NotFound(c, pkgerrors.Message(err))
	case errors.Is(err, pkgerrors.ErrConflict), errors.Is(err, pkgerrors.ErrInvalidInput):
		response.BadRequest(c, pkgerrors.Message(err))
	default:
		_ = c.Error(err)
		response.InternalError(c)
	}
}
