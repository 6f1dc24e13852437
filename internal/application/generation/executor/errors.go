package executor

import (
	"strings"

	apperrors "contentforge-ai-api/pkg/errors"
)

// newConfigError 将工厂/凭证类错误归为 AI 配置错误
func newConfigError(err error) error {
	return apperrors.Wrap(err, apperrors.CodeAIConfigError, "AI provider is not configured").
		WithDetail(err.Error())
}

// translateProviderError 将提供商 SDK 错误翻译进固定错误分类
// 凭证缺失归为配置错误，内容审核拒绝单独标记，其余一律视为提供商错误
func translateProviderError(err error) error {
	if err == nil {
		return nil
	}
	if apperrors.IsAppError(err) {
		return err
	}

	msg := strings.ToLower(err.Error())

	switch {
	case strings.Contains(msg, "api key"),
		strings.Contains(msg, "api_key"),
		strings.Contains(msg, "unauthorized"),
		strings.Contains(msg, "invalid authentication"),
		strings.Contains(msg, "401"):
		return apperrors.Wrap(err, apperrors.CodeAIConfigError, "invalid AI provider credentials")

	case strings.Contains(msg, "content policy"),
		strings.Contains(msg, "content_policy"),
		strings.Contains(msg, "safety"),
		strings.Contains(msg, "blocked by"),
		strings.Contains(msg, "content filter"):
		return apperrors.Wrap(err, apperrors.CodeContentPolicyViolated, "request declined by content policy")

	default:
		return apperrors.Wrap(err, apperrors.CodeAIProviderError, "AI provider call failed")
	}
}
