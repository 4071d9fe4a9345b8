package model

// Enrollment 选课记录表 — 对应 enrollments
// Grade 为 nil 表示未评分
type Enrollment struct {
	ID       uint     `gorm:"primaryKey"        json:"id"`
	UserID   uint     `gorm:"not null;index"    json:"user_id"`
	CourseID uint     `gorm:"not null;index"    json:"course_id"`
	Grade    *float64 `gorm:"type:double precision" json:"grade"`
	BaseModel

	// 关联（仅查询时 Preload，写入时只使用外键字段）
	User   *User   `gorm:"foreignKey:UserID"   json:"user,omitempty"`
	Course *Course `gorm:"foreignKey:CourseID" json:"course,omitempty"`
}

// TableName 指定表名
func (Enrollment) TableName() string { return "enrollments" }
