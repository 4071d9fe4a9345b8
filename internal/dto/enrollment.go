package dto

// ── 选课模块 DTO ──

// NotGraded 未评分时 grade 字段的展示值
const NotGraded = "Not graded"

// UpdateGradeRequest 修改成绩请求
// Grade 接受 JSON 数字或数字字符串，由 service 层解析与校验
type UpdateGradeRequest struct {
	Grade interface{} `json:"grade"`
}

// EnrollmentResponse 选课记录响应（冗余用户与课程字段）
type EnrollmentResponse struct {
	EnrollmentID  uint        `json:"enrollment_id"`
	UserID        uint        `json:"user_id"`
	UserUsername  string      `json:"user_username"`
	CourseID      uint        `json:"course_id"`
	CourseName    string      `json:"course_name"`
	CourseTeacher string      `json:"course_teacher"`
	Grade         interface{} `json:"grade"` // float64 或 "Not graded"
	StartTime     string      `json:"start_time"`
	EndTime       string      `json:"end_time"`
}
