// Package errors 提供统一的错误定义
package errors

import (
	"fmt"
	"net/http"
)

// ErrorCode 错误码类型
type ErrorCode string

// 预定义错误码
const (
	// 通用错误 (1xxx)
	CodeSuccess       ErrorCode = "0"
	CodeUnknown       ErrorCode = "1000"
	CodeInvalidParam  ErrorCode = "1001"
	CodeUnauthorized  ErrorCode = "1002"
	CodeForbidden     ErrorCode = "1003"
	CodeNotFound      ErrorCode = "1004"
	CodeConflict      ErrorCode = "1005"
	CodeTooManyReqs   ErrorCode = "1006"
	CodeInternalError ErrorCode = "1007"

	// 认证授权错误 (2xxx)
	CodeTokenExpired ErrorCode = "2001"
	CodeTokenInvalid ErrorCode = "2002"
	CodeTokenMissing ErrorCode = "2003"

	// 资源错误 (3xxx)
	CodeProfileNotFound  ErrorCode = "3001"
	CodeDocumentNotFound ErrorCode = "3002"

	// 业务错误 (4xxx)
	CodeInsufficientCredits ErrorCode = "4001"
	CodeCreditWriteFailed   ErrorCode = "4002"
	CodeGenerationFailed    ErrorCode = "4003"

	// 外部服务错误 (5xxx)
	CodeUpstreamRateLimited   ErrorCode = "5001"
	CodeUpstreamQuotaExceeded ErrorCode = "5002"
	CodeUpstreamFailure       ErrorCode = "5003"
	CodeDatabaseError         ErrorCode = "5004"
)

// AppError 应用错误
type AppError struct {
	Code       ErrorCode `json:"code"`
	Message    string    `json:"message"`
	Detail     string    `json:"detail,omitempty"`
	HTTPStatus int       `json:"-"`
	Err        error     `json:"-"`
}

// Error 实现 error 接口
func (e *AppError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("[%s] %s: %v", e.Code, e.Message, e.Err)
	}
	return fmt.Sprintf("[%s] %s", e.Code, e.Message)
}

// Unwrap 返回底层错误
func (e *AppError) Unwrap() error {
	return e.Err
}

// WithDetail 添加详细信息
func (e *AppError) WithDetail(detail string) *AppError {
	clone := *e
	clone.Detail = detail
	return &clone
}

// WithError 添加底层错误
func (e *AppError) WithError(err error) *AppError {
	clone := *e
	clone.Err = err
	return &clone
}

// New 创建新的应用错误
func New(code ErrorCode, message string) *AppError {
	return &AppError{
		Code:       code,
		Message:    message,
		HTTPStatus: codeToHTTPStatus(code),
	}
}

// Wrap 包装错误
func Wrap(err error, code ErrorCode, message string) *AppError {
	return &AppError{
		Code:       code,
		Message:    message,
		HTTPStatus: codeToHTTPStatus(code),
		Err:        err,
	}
}

// codeToHTTPStatus 错误码转 HTTP 状态码
// 档案查询失败映射为通用 500 而非 404；
// 上游配额耗尽与用户余额不足同样返回 402，错误码不同，客户端可区分。
func codeToHTTPStatus(code ErrorCode) int {
	switch code {
	case CodeSuccess:
		return http.StatusOK
	case CodeInvalidParam:
		return http.StatusBadRequest
	case CodeUnauthorized, CodeTokenExpired, CodeTokenInvalid, CodeTokenMissing:
		return http.StatusUnauthorized
	case CodeForbidden:
		return http.StatusForbidden
	case CodeNotFound, CodeDocumentNotFound:
		return http.StatusNotFound
	case CodeConflict:
		return http.StatusConflict
	case CodeTooManyReqs, CodeUpstreamRateLimited:
		return http.StatusTooManyRequests
	case CodeInsufficientCredits, CodeUpstreamQuotaExceeded:
		return http.StatusPaymentRequired
	default:
		return http.StatusInternalServerError
	}
}

// 预定义错误
var (
	ErrInvalidParam  = New(CodeInvalidParam, "invalid parameter")
	ErrUnauthorized  = New(CodeUnauthorized, "unauthorized")
	ErrForbidden     = New(CodeForbidden, "forbidden")
	ErrNotFound      = New(CodeNotFound, "resource not found")
	ErrInternalError = New(CodeInternalError, "internal server error")

	ErrTokenExpired = New(CodeTokenExpired, "token expired")
	ErrTokenInvalid = New(CodeTokenInvalid, "token invalid")
	ErrTokenMissing = New(CodeTokenMissing, "token missing")

	ErrProfileNotFound  = New(CodeProfileNotFound, "failed to fetch user profile")
	ErrDocumentNotFound = New(CodeDocumentNotFound, "document not found")

	ErrInsufficientCredits = New(CodeInsufficientCredits, "insufficient credits")
	ErrGenerationFailed    = New(CodeGenerationFailed, "content generation failed")

	ErrUpstreamRateLimited = New(CodeUpstreamRateLimited,
		"AI service rate limit exceeded. Please try again in a moment.")
	ErrUpstreamQuotaExceeded = New(CodeUpstreamQuotaExceeded,
		"AI service credits depleted. Please contact support.")
	ErrUpstreamFailure = New(CodeUpstreamFailure, "AI generation failed")
)

// IsAppError 检查是否为 AppError
func IsAppError(err error) bool {
	_, ok := err.(*AppError)
	return ok
}

// AsAppError 将错误转换为 AppError
func AsAppError(err error) *AppError {
	if appErr, ok := err.(*AppError); ok {
		return appErr
	}
	return Wrap(err, CodeUnknown, "unknown error")
}

// IsCode 检查错误是否携带指定错误码
func IsCode(err error, code ErrorCode) bool {
	appErr, ok := err.(*AppError)
	return ok && appErr.Code == code
}
