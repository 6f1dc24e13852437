package image

import (
	"errors"
	"strings"

	apperrors "contentforge-ai-api/pkg/errors"
)

// translateImageError 把提供商错误归一为应用错误码
func translateImageError(provider string, err error) error {
	var appErr *apperrors.AppError
	if errors.As(err, &appErr) {
		return appErr
	}

	msg := strings.ToLower(err.Error())

	switch {
	case strings.Contains(msg, "api key"),
		strings.Contains(msg, "api_key"),
		strings.Contains(msg, "unauthorized"),
		strings.Contains(msg, "invalid authentication"),
		strings.Contains(msg, "401"):
		return apperrors.New(apperrors.CodeAIConfigError, "image provider is misconfigured").
			WithDetail("provider=" + provider).
			WithError(err)
	case strings.Contains(msg, "content policy"),
		strings.Contains(msg, "content_policy"),
		strings.Contains(msg, "safety"),
		strings.Contains(msg, "blocked by"),
		strings.Contains(msg, "content filter"):
		return apperrors.New(apperrors.CodeContentPolicyViolated, "prompt was rejected by the provider's content policy").
			WithError(err)
	default:
		return apperrors.New(apperrors.CodeAIProviderError, "image provider request failed").
			WithDetail("provider=" + provider).
			WithError(err)
	}
}
