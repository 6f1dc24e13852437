package errors

import (
	stderrors "errors"
	"fmt"
)

// UserMessage 将任意错误映射为可直接展示给用户的安全文案
// 已知错误码给固定话术，未知错误走统一兜底格式
func UserMessage(operation string, err error) string {
	var appErr *AppError
	if stderrors.As(err, &appErr) {
		switch appErr.Code {
		case CodeInsufficientBalance:
			if appErr.Detail != "" {
				return fmt.Sprintf("Insufficient token balance (%s). Please top up your account and try again.", appErr.Detail)
			}
			return "Insufficient token balance. Please top up your account and try again."
		case CodeUnauthorized, CodeTokenExpired, CodeTokenInvalid, CodeTokenMissing:
			return "Authentication required. Please sign in and try again."
		case CodeNotFound, CodeProjectNotFound, CodeCategoryNotFound, CodeContentPieceNotFound, CodeFileNotFound:
			return "The requested resource was not found. It may have been deleted."
		case CodeAIConfigError:
			return "AI provider is not configured correctly. Please check your project AI settings."
		case CodeAIProviderError:
			return "The AI provider is currently unavailable. Please try again in a moment."
		case CodeContentPolicyViolated:
			return "The request was declined by the AI provider's content policy. Please adjust your input."
		case CodeRateLimitExceeded, CodeTooManyRequests:
			return "Too many requests. Please wait a moment before trying again."
		}
	}

	msg := "unknown error"
	if err != nil {
		msg = err.Error()
	}
	return fmt.Sprintf("Failed to %s: %s. Please try again.", operation, msg)
}
