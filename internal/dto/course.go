package dto

// ── 课程模块 DTO ──

// UpdateCapacityRequest 修改课程容量请求
// Capacity 使用指针区分"未提供"与 0；按 JSON 数字接收，30.0 这类整数值同样合法
type UpdateCapacityRequest struct {
	Capacity *float64 `json:"capacity"`
}

// CourseResponse 课程信息响应（时间为 12 小时制展示格式）
type CourseResponse struct {
	ID          uint   `json:"id"`
	Name        string `json:"name"`
	Capacity    int    `json:"capacity"`
	StartTime   string `json:"start_time"` // "03:00 PM"
	EndTime     string `json:"end_time"`   // "04:00 PM"
	Teacher     string `json:"teacher"`
	NofStudents int    `json:"nofstudents"`
}
