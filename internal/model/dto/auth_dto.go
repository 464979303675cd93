package dto

// RegisterRequest 注册请求
type RegisterRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required,min=8,max=32"`
	Nickname string `json:"nickname" binding:"required,min=2,max=50"`
}

// RegisterResponse 注册响应
type RegisterResponse struct {
	MemberID int64  `json:"member_id"`
	Email    string `json:"email"`
}

// LoginRequest 登录请求
type LoginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

// LoginResponse 登录响应
type LoginResponse struct {
	AccessToken  string      `json:"access_token"`
	RefreshToken string      `json:"refresh_token"`
	Member       *MemberInfo `json:"member"`
}

// RefreshRequest 刷新 Token 请求
type RefreshRequest struct {
	RefreshToken string `json:"refresh_token" binding:"required"`
}

// RefreshResponse 刷新 Token 响应
type RefreshResponse struct {
	AccessToken string `json:"access_token"`
}

// MemberInfo 会员信息（返回给前端）
type MemberInfo struct {
	ID          int64    `json:"id"`
	Email       string   `json:"email"`
	Nickname    string   `json:"nickname"`
	Authorities []string `json:"authorities"`
	CreatedAt   string   `json:"created_at,omitempty"`
}
