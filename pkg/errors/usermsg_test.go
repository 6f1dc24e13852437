package errors

import (
	"errors"
	"strings"
	"testing"
)

func TestUserMessageKnownCodes(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want string
	}{
		{
			name: "insufficient balance with detail",
			err:  NewInsufficientBalance(120, 500),
			want: "Insufficient token balance (balance=120 required=500 shortfall=380). Please top up your account and try again.",
		},
		{
			name: "config error",
			err:  New(CodeAIConfigError, "missing api key"),
			want: "AI provider is not configured correctly. Please check your project AI settings.",
		},
		{
			name: "provider error",
			err:  New(CodeAIProviderError, "upstream 500"),
			want: "The AI provider is currently unavailable. Please try again in a moment.",
		},
		{
			name: "content policy",
			err:  New(CodeContentPolicyViolated, "declined"),
			want: "The request was declined by the AI provider's content policy. Please adjust your input.",
		},
		{
			name: "rate limited",
			err:  NewRateLimitExceeded(60),
			want: "Too many requests. Please wait a moment before trying again.",
		},
		{
			name: "not found",
			err:  New(CodeCategoryNotFound, "category not found"),
			want: "The requested resource was not found. It may have been deleted.",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := UserMessage("generate draft", tt.err); got != tt.want {
				t.Errorf("UserMessage() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestUserMessageFallbackFormat(t *testing.T) {
	got := UserMessage("refine content", errors.New("socket closed"))
	want := "Failed to refine content: socket closed. Please try again."
	if got != want {
		t.Errorf("UserMessage() = %q, want %q", got, want)
	}
}

func TestUserMessageNilError(t *testing.T) {
	got := UserMessage("generate image", nil)
	if !strings.HasPrefix(got, "Failed to generate image:") || !strings.HasSuffix(got, "Please try again.") {
		t.Errorf("UserMessage() = %q", got)
	}
}

func TestAppErrorWrapping(t *testing.T) {
	cause := errors.New("dial tcp: refused")
	appErr := Wrap(cause, CodeAIProviderError, "AI provider call failed")

	if !errors.Is(appErr, cause) {
		t.Error("wrapped error must expose the cause via errors.Is")
	}
	if appErr.HTTPStatus == 0 {
		t.Error("wrapped error must carry an HTTP status")
	}

	var target *AppError
	if !errors.As(appErr.WithDetail("provider=openai"), &target) {
		t.Fatal("errors.As must find AppError")
	}
	if target.Detail != "provider=openai" {
		t.Errorf("detail = %q", target.Detail)
	}
}
