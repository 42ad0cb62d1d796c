package apperrors

import (
	"net/http"
)

// 稳定的错误类别标识，JSON 调用方依赖这些值做分支判断
const (
	ReasonInvalidRequest = "invalid_request"
	ReasonInvalidURL     = "invalid_url"
	ReasonInvalidCode    = "invalid_code"
	ReasonCodeConflict   = "code_conflict"
	ReasonNotFound       = "not_found"
	ReasonForbidden      = "forbidden"
	ReasonInactive       = "inactive"
	ReasonExpired        = "expired"
	ReasonUnauthorized   = "unauthorized"
	ReasonSystemError    = "system_error"
)

// AppError 自定义错误类型
type AppError struct {
	Code    int
	Reason  string
	Message string
	Cause   error
}

func (e *AppError) Error() string {
	return e.Message
}

func (e *AppError) Unwrap() error {
	return e.Cause
}

// WithReason 创建携带类别标识的业务错误
func WithReason(code int, reason, message string) *AppError {
	return &AppError{
		Code:    code,
		Reason:  reason,
		Message: message,
	}
}

// BusinessError 封装业务逻辑错误（通用）
func BusinessError(code int, message string) *AppError {
	return WithReason(code, ReasonInvalidRequest, message)
}

// InvalidRequestError 封装参数校验错误
func InvalidRequestError(message string) *AppError {
	return WithReason(http.StatusBadRequest, ReasonInvalidRequest, message)
}

// InvalidRequestErrorDefault 默认参数校验错误
func InvalidRequestErrorDefault() *AppError {
	return WithReason(http.StatusBadRequest, ReasonInvalidRequest, "Parameter verification failed")
}

// InvalidURLError 目标 URL 不是合法的 http/https 绝对地址
func InvalidURLError(message string) *AppError {
	return WithReason(http.StatusBadRequest, ReasonInvalidURL, message)
}

// InvalidCodeError 自定义短码格式不合法
func InvalidCodeError(message string) *AppError {
	return WithReason(http.StatusBadRequest, ReasonInvalidCode, message)
}

// CodeConflictError 自定义短码已被占用
func CodeConflictError() *AppError {
	return WithReason(http.StatusConflict, ReasonCodeConflict, "error.shortcode_taken")
}

// LinkNotFoundError 短链不存在
func LinkNotFoundError() *AppError {
	return WithReason(http.StatusNotFound, ReasonNotFound, "error.link_not_found")
}

// ForbiddenError 调用者不是记录的创建者
func ForbiddenError() *AppError {
	return WithReason(http.StatusForbidden, ReasonForbidden, "error.link_forbidden")
}

// LinkInactiveError 短链已被禁用
func LinkInactiveError() *AppError {
	return WithReason(http.StatusForbidden, ReasonInactive, "error.link_inactive")
}

// LinkExpiredError 短链已过期
func LinkExpiredError() *AppError {
	return WithReason(http.StatusGone, ReasonExpired, "error.link_expired")
}

// UnauthorizedError 未认证或凭证无效
func UnauthorizedError(message string) *AppError {
	return WithReason(http.StatusUnauthorized, ReasonUnauthorized, message)
}

// SystemError 封装系统内部错误
func SystemError(message string) *AppError {
	return WithReason(http.StatusInternalServerError, ReasonSystemError, message)
}

// SystemErrorDefault 默认系统内部错误
func SystemErrorDefault() *AppError {
	return WithReason(http.StatusInternalServerError, ReasonSystemError, "System error")
}

// Reason 提取错误的类别标识；非 AppError 一律按系统错误处理
func Reason(err error) string {
	if appErr, ok := err.(*AppError); ok {
		return appErr.Reason
	}
	return ReasonSystemError
}
