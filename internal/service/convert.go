package service

import (
	"school-enroll/internal/dto"
	"school-enroll/internal/model"
)

// ── 模型 → 响应 DTO ──

func toCourseResponse(c *model.Course) dto.CourseResponse {
	return dto.CourseResponse{
		ID:          c.ID,
		Name:        c.Name,
		Capacity:    c.Capacity,
		StartTime:   c.StartTime.Format12h(),
		EndTime:     c.EndTime.Format12h(),
		Teacher:     c.Teacher,
		NofStudents: c.NofStudents,
	}
}

func toUserResponse(u *model.User) dto.UserResponse {
	return dto.UserResponse{
		ID:       u.ID,
		Username: u.Username,
		Password: u.Password,
		Role:     u.Role,
	}
}

// toEnrollmentResponse 需要 e.User / e.Course 已加载
func toEnrollmentResponse(e *model.Enrollment) dto.EnrollmentResponse {
	resp := dto.EnrollmentResponse{
		EnrollmentID: e.ID,
		UserID:       e.UserID,
		CourseID:     e.CourseID,
		Grade:        dto.NotGraded,
	}
	if e.Grade != nil {
		resp.Grade = *e.Grade
	}
	if e.User != nil {
		resp.UserUsername = e.User.Username
	}
	if e.Course != nil {
		resp.CourseName = e.Course.Name
		resp.CourseTeacher = e.Course.Teacher
		resp.StartTime = e.Course.StartTime.Format12h()
		resp.EndTime = e.Course.EndTime.Format12h()
	}
	return resp
}
