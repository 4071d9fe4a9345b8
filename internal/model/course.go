package model

// Course 课程表 — 对应 courses
// NofStudents 是选课记录数的缓存，只能与 Enrollment 的增删在同一事务内变更
type Course struct {
	ID          uint      `gorm:"primaryKey"                  json:"id"`
	Name        string    `gorm:"type:varchar(100);not null"  json:"name"`
	Capacity    int       `gorm:"not null"                    json:"capacity"`
	StartTime   TimeOfDay `gorm:"type:time;not null"          json:"start_time"`
	EndTime     TimeOfDay `gorm:"type:time;not null"          json:"end_time"`
	NofStudents int       `gorm:"column:nofstudents;not null;default:0" json:"nofstudents"`
	Teacher     string    `gorm:"type:varchar(100);not null"  json:"teacher"`
	BaseModel
}

// TableName 指定表名
func (Course) TableName() string { return "courses" }

// ConflictsWith 两门课的时间窗是否相交（半开区间）
func (c *Course) ConflictsWith(other *Course) bool {
	return Overlaps(c.StartTime, c.EndTime, other.StartTime, other.EndTime)
}
