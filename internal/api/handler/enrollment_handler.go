package handler

import (
	"fmt"

	"github.com/gin-gonic/gin"

	"school-enroll/internal/dto"
	"school-enroll/internal/service"
	"school-enroll/pkg/response"
)

// EnrollmentHandler 选课模块 HTTP 处理器
type EnrollmentHandler struct {
	enrollmentSvc service.EnrollmentService
}

// NewEnrollmentHandler 创建 EnrollmentHandler
func NewEnrollmentHandler(enrollmentSvc service.EnrollmentService) *EnrollmentHandler {
	return &EnrollmentHandler{enrollmentSvc: enrollmentSvc}
}

// ListEnrollments 全部选课记录
// GET /enrollments
func (h *EnrollmentHandler) ListEnrollments(c *gin.Context) {
	enrollments, err := h.enrollmentSvc.List(c.Request.Context())
	if err != nil {
		writeServiceError(c, err)
		return
	}

	response.OK(c, enrollments)
}

// Enroll 选课
// POST /enroll/:user_id/:course_id
func (h *EnrollmentHandler) Enroll(c *gin.Context) {
	userID, ok := MustGetIDParam(c, "user_id")
	if !ok {
		return
	}
	courseID, ok := MustGetIDParam(c, "course_id")
	if !ok {
		return
	}

	enrollment, err := h.enrollmentSvc.Enroll(c.Request.Context(), userID, courseID)
	if err != nil {
		writeServiceError(c, err)
		return
	}

	response.Created(c, fmt.Sprintf("%s enrolled in %s successfully!", enrollment.UserUsername, enrollment.CourseName), enrollment)
}

// Withdraw 退课
// DELETE /enroll/:user_id/:course_id
func (h *EnrollmentHandler) Withdraw(c *gin.Context) {
	userID, ok := MustGetIDParam(c, "user_id")
	if !ok {
		return
	}
	courseID, ok := MustGetIDParam(c, "course_id")
	if !ok {
		return
	}

	if err := h.enrollmentSvc.Withdraw(c.Request.Context(), userID, courseID); err != nil {
		writeServiceError(c, err)
		return
	}

	response.Message(c, "Enrollment removed successfully", nil)
}

// UpdateGrade 修改成绩
// PUT /enrollments/:enrollment_id
func (h *EnrollmentHandler) UpdateGrade(c *gin.Context) {
	enrollmentID, ok := MustGetIDParam(c, "enrollment_id")
	if !ok {
		return
	}

	var req dto.UpdateGradeRequest
	if !bindOptionalJSON(c, &req, service.ErrInvalidGrade.Message) {
		return
	}

	enrollment, err := h.enrollmentSvc.UpdateGrade(c.Request.Context(), enrollmentID, &req)
	if err != nil {
		writeServiceError(c, err)
		return
	}

	response.Message(c, fmt.Sprintf("Grade updated to %v for enrollment ID %d", enrollment.Grade, enrollment.EnrollmentID), enrollment)
}
