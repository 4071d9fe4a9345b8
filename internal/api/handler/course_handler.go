package handler

import (
	"fmt"

	"github.com/gin-gonic/gin"

	"school-enroll/internal/dto"
	"school-enroll/internal/service"
	"school-enroll/pkg/response"
)

// CourseHandler 课程模块 HTTP 处理器
type CourseHandler struct {
	courseSvc service.CourseService
}

// NewCourseHandler 创建 CourseHandler
func NewCourseHandler(courseSvc service.CourseService) *CourseHandler {
	return &CourseHandler{courseSvc: courseSvc}
}

// ListCourses 课程列表
// GET /courses
func (h *CourseHandler) ListCourses(c *gin.Context) {
	courses, err := h.courseSvc.List(c.Request.Context())
	if err != nil {
		writeServiceError(c, err)
		return
	}

	response.OK(c, courses)
}

// UpdateCapacity 修改课程容量
// PUT /courses/:course_id
func (h *CourseHandler) UpdateCapacity(c *gin.Context) {
	courseID, ok := MustGetIDParam(c, "course_id")
	if !ok {
		return
	}

	var req dto.UpdateCapacityRequest
	if !bindOptionalJSON(c, &req, service.ErrInvalidCapacity.Message) {
		return
	}

	course, err := h.courseSvc.UpdateCapacity(c.Request.Context(), courseID, &req)
	if err != nil {
		writeServiceError(c, err)
		return
	}

	response.Message(c, fmt.Sprintf("Capacity for course %s updated to %d", course.Name, course.Capacity), course)
}
