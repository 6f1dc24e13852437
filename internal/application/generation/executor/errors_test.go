package executor

import (
	"errors"
	"testing"

	apperrors "contentforge-ai-api/pkg/errors"
)

func TestTranslateProviderError(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want apperrors.ErrorCode
	}{
		{name: "missing api key", err: errors.New("no API key provided"), want: apperrors.CodeAIConfigError},
		{name: "unauthorized", err: errors.New("401 Unauthorized"), want: apperrors.CodeAIConfigError},
		{name: "invalid authentication", err: errors.New("invalid authentication credentials"), want: apperrors.CodeAIConfigError},
		{name: "content policy", err: errors.New("request rejected by content policy"), want: apperrors.CodeContentPolicyViolated},
		{name: "safety system", err: errors.New("blocked by safety system"), want: apperrors.CodeContentPolicyViolated},
		{name: "content filter", err: errors.New("finish_reason: content filter"), want: apperrors.CodeContentPolicyViolated},
		{name: "rate limited upstream", err: errors.New("429 too many requests"), want: apperrors.CodeAIProviderError},
		{name: "generic failure", err: errors.New("connection reset by peer"), want: apperrors.CodeAIProviderError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := translateProviderError(tt.err)
			appErr := apperrors.AsAppError(got)
			if appErr == nil {
				t.Fatalf("translateProviderError() = %v, want AppError", got)
			}
			if appErr.Code != tt.want {
				t.Errorf("code = %v, want %v", appErr.Code, tt.want)
			}
			if !errors.Is(got, tt.err) {
				t.Error("translated error must wrap the original")
			}
		})
	}
}

func TestTranslateProviderErrorPassesThroughAppErrors(t *testing.T) {
	orig := apperrors.New(apperrors.CodeInsufficientBalance, "balance too low")
	if got := translateProviderError(orig); got != orig {
		t.Errorf("existing AppError must pass through unchanged, got %v", got)
	}
}

func TestTranslateProviderErrorNil(t *testing.T) {
	if got := translateProviderError(nil); got != nil {
		t.Errorf("nil error must stay nil, got %v", got)
	}
}
