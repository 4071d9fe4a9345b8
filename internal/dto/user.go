package dto

// ── 用户模块 DTO ──

// UserResponse 用户信息响应
// 前端登录页依赖 password 字段比对凭据，此处保留
type UserResponse struct {
	ID       uint   `json:"id"`
	Username string `json:"username"`
	Password string `json:"password"`
	Role     string `json:"role"`
}
