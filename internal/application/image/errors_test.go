package image

import (
	"errors"
	"strings"
	"testing"

	apperrors "contentforge-ai-api/pkg/errors"
)

func TestTranslateImageError(t *testing.T) {
	tests := []struct {
		name       string
		err        error
		want       apperrors.ErrorCode
		wantDetail bool
	}{
		{name: "missing api key", err: errors.New("Incorrect API key provided"), want: apperrors.CodeAIConfigError, wantDetail: true},
		{name: "unauthorized", err: errors.New("status 401 unauthorized"), want: apperrors.CodeAIConfigError, wantDetail: true},
		{name: "content policy", err: errors.New("your request was rejected by our content policy"), want: apperrors.CodeContentPolicyViolated},
		{name: "safety block", err: errors.New("image blocked by safety filters"), want: apperrors.CodeContentPolicyViolated},
		{name: "generic provider failure", err: errors.New("503 service unavailable"), want: apperrors.CodeAIProviderError, wantDetail: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := translateImageError("openai", tt.err)
			appErr := apperrors.AsAppError(got)
			if appErr == nil {
				t.Fatalf("translateImageError() = %v, want AppError", got)
			}
			if appErr.Code != tt.want {
				t.Errorf("code = %v, want %v", appErr.Code, tt.want)
			}
			if tt.wantDetail && !strings.Contains(appErr.Detail, "provider=openai") {
				t.Errorf("detail %q missing provider", appErr.Detail)
			}
		})
	}
}

func TestTranslateImageErrorPassesThroughAppErrors(t *testing.T) {
	orig := apperrors.NewRateLimitExceeded(60)
	got := translateImageError("google", orig)
	appErr := apperrors.AsAppError(got)
	if appErr == nil || appErr.Code != apperrors.CodeRateLimitExceeded {
		t.Errorf("existing AppError must pass through, got %v", got)
	}
}
