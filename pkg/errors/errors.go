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
	CodeSuccess            ErrorCode = "0"
	CodeUnknown            ErrorCode = "1000"
	CodeInvalidParam       ErrorCode = "1001"
	CodeUnauthorized       ErrorCode = "1002"
	CodeForbidden          ErrorCode = "1003"
	CodeNotFound           ErrorCode = "1004"
	CodeConflict           ErrorCode = "1005"
	CodeTooManyRequests    ErrorCode = "1006"
	CodeInternalError      ErrorCode = "1007"
	CodeServiceUnavailable ErrorCode = "1008"

	// 认证授权错误 (2xxx)
	CodeTokenExpired     ErrorCode = "2001"
	CodeTokenInvalid     ErrorCode = "2002"
	CodeTokenMissing     ErrorCode = "2003"
	CodePermissionDenied ErrorCode = "2004"

	// 资源错误 (3xxx)
	CodeProjectNotFound      ErrorCode = "3001"
	CodeCategoryNotFound     ErrorCode = "3002"
	CodeContentPieceNotFound ErrorCode = "3003"
	CodeFileNotFound         ErrorCode = "3004"

	// 业务错误 (4xxx)
	CodeGenerationFailed      ErrorCode = "4001"
	CodeValidationFailed      ErrorCode = "4002"
	CodeInsufficientBalance   ErrorCode = "4003"
	CodeRateLimitExceeded     ErrorCode = "4004"
	CodeContentPolicyViolated ErrorCode = "4005"

	// 外部服务错误 (5xxx)
	CodeDatabaseError   ErrorCode = "5001"
	CodeCacheError      ErrorCode = "5002"
	CodeVectorDBError   ErrorCode = "5003"
	CodeStorageError    ErrorCode = "5004"
	CodeAIProviderError ErrorCode = "5005"
	CodeAIConfigError   ErrorCode = "5006"
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
	e.Detail = detail
	return e
}

// WithError 添加底层错误
func (e *AppError) WithError(err error) *AppError {
	e.Err = err
	return e
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
func codeToHTTPStatus(code ErrorCode) int {
	switch code {
	case CodeSuccess:
		return http.StatusOK
	case CodeInvalidParam, CodeValidationFailed:
		return http.StatusBadRequest
	case CodeUnauthorized, CodeTokenExpired, CodeTokenInvalid, CodeTokenMissing:
		return http.StatusUnauthorized
	case CodeForbidden, CodePermissionDenied:
		return http.StatusForbidden
	case CodeNotFound, CodeProjectNotFound, CodeCategoryNotFound, CodeContentPieceNotFound, CodeFileNotFound:
		return http.StatusNotFound
	case CodeConflict:
		return http.StatusConflict
	case CodeInsufficientBalance:
		return http.StatusPaymentRequired
	case CodeTooManyRequests, CodeRateLimitExceeded:
		return http.StatusTooManyRequests
	case CodeContentPolicyViolated:
		return http.StatusUnprocessableEntity
	case CodeServiceUnavailable:
		return http.StatusServiceUnavailable
	default:
		return http.StatusInternalServerError
	}
}

// 预定义错误
var (
	ErrInvalidParam       = New(CodeInvalidParam, "invalid parameter")
	ErrUnauthorized       = New(CodeUnauthorized, "unauthorized")
	ErrForbidden          = New(CodeForbidden, "forbidden")
	ErrNotFound           = New(CodeNotFound, "resource not found")
	ErrConflict           = New(CodeConflict, "resource conflict")
	ErrTooManyRequests    = New(CodeTooManyRequests, "too many requests")
	ErrInternalError      = New(CodeInternalError, "internal server error")
	ErrServiceUnavailable = New(CodeServiceUnavailable, "service unavailable")

	ErrTokenExpired = New(CodeTokenExpired, "token expired")
	ErrTokenInvalid = New(CodeTokenInvalid, "token invalid")
	ErrTokenMissing = New(CodeTokenMissing, "token missing")

	ErrProjectNotFound      = New(CodeProjectNotFound, "project not found")
	ErrCategoryNotFound     = New(CodeCategoryNotFound, "category not found")
	ErrContentPieceNotFound = New(CodeContentPieceNotFound, "content piece not found")

	ErrGenerationFailed = New(CodeGenerationFailed, "content generation failed")
	ErrValidationFailed = New(CodeValidationFailed, "validation failed")
	ErrAIProvider       = New(CodeAIProviderError, "AI provider error")
	ErrAIConfig         = New(CodeAIConfigError, "AI configuration error")
)

// NewInsufficientBalance 创建余额不足错误，附带当前余额和缺口
func NewInsufficientBalance(balance, required int64) *AppError {
	return New(CodeInsufficientBalance, "insufficient token balance").
		WithDetail(fmt.Sprintf("balance=%d required=%d shortfall=%d", balance, required, required-balance))
}

// NewRateLimitExceeded 创建限流错误
func NewRateLimitExceeded(retryAfterSeconds int) *AppError {
	return New(CodeRateLimitExceeded, "rate limit exceeded").
		WithDetail(fmt.Sprintf("retry_after=%ds", retryAfterSeconds))
}

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
