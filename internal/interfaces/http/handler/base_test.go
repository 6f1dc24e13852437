package handler

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"

	"contentforge-ai-api/internal/interfaces/http/dto"
	apperrors "contentforge-ai-api/pkg/errors"
)

func newErrorResponse(t *testing.T, operation string, err error) (int, *dto.ErrorResponse) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	rec := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(rec)
	c.Request = httptest.NewRequest(http.MethodPost, "/api/v1/ai/chat", nil)

	respondError(c, operation, err)

	var resp dto.ErrorResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("unmarshal error response: %v", err)
	}
	return rec.Code, &resp
}

func TestRespondErrorUsesFallbackPhrasing(t *testing.T) {
	status, resp := newErrorResponse(t, "generate chat response", errors.New("connection reset by peer"))

	if status != http.StatusInternalServerError {
		t.Errorf("status = %d, want 500", status)
	}
	want := "Failed to generate chat response: connection reset by peer. Please try again."
	if resp.Message != want {
		t.Errorf("message = %q, want %q", resp.Message, want)
	}
	if resp.Error == nil || resp.Error.ErrorCode != string(apperrors.CodeUnknown) {
		t.Errorf("error detail = %+v, want code %s", resp.Error, apperrors.CodeUnknown)
	}
}

func TestRespondErrorKnownCodeGetsFixedPhrase(t *testing.T) {
	status, resp := newErrorResponse(t, "generate draft", apperrors.NewInsufficientBalance(120, 500))

	if status != http.StatusPaymentRequired {
		t.Errorf("status = %d, want 402", status)
	}
	if !strings.HasPrefix(resp.Message, "Insufficient token balance") {
		t.Errorf("message = %q, want the fixed balance phrase", resp.Message)
	}
	if strings.Contains(resp.Message, "generate draft") {
		t.Errorf("known-code message must not use the fallback format: %q", resp.Message)
	}
	if resp.Error == nil || resp.Error.ErrorCode != string(apperrors.CodeInsufficientBalance) {
		t.Errorf("error detail = %+v", resp.Error)
	}
}

func TestRespondErrorKeepsDetailInErrorSection(t *testing.T) {
	err := apperrors.New(apperrors.CodeAIConfigError, "image provider is not configured").
		WithDetail("provider=midjourney")
	_, resp := newErrorResponse(t, "generate image", err)

	if resp.Error == nil || resp.Error.Details != "provider=midjourney" {
		t.Errorf("error detail = %+v, want provider detail preserved", resp.Error)
	}
	if strings.Contains(resp.Message, "midjourney") {
		t.Errorf("provider internals leaked into user message: %q", resp.Message)
	}
}
