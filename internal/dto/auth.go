package dto

// RegisterRequest 用户注册请求参数
type RegisterRequest struct {
	Username string `json:"username" binding:"required,min=3,max=64" msg:"username must be 3-64 characters"`
	Password string `json:"password" binding:"required,min=8,max=72" msg:"password must be 8-72 characters"`
}

// LoginRequest 用户登录请求参数
type LoginRequest struct {
	Username string `json:"username" binding:"required"`
	Password string `json:"password" binding:"required"`
}

// TokenResponse 登录成功返回的令牌
type TokenResponse struct {
	Token string `json:"token"`
}

// RedirectResponse 短码解析结果
type RedirectResponse struct {
	URL string `json:"url"`
}
