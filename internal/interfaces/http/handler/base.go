package handler

import (
	"github.com/gin-gonic/gin"

	"contentforge-ai-api/internal/interfaces/http/dto"
	apperrors "contentforge-ai-api/pkg/errors"
	"contentforge-ai-api/pkg/logger"
)

// respondError 把应用错误映射为统一错误响应
// message 走面向用户的文案，原始错误码和细节放在 error 段
func respondError(c *gin.Context, operation string, err error) {
	appErr := apperrors.AsAppError(err)

	if appErr.HTTPStatus >= 500 {
		logger.Error(c.Request.Context(), "request failed", err,
			"path", c.Request.URL.Path, "method", c.Request.Method)
	}

	dto.ErrorWithDetail(c, appErr.HTTPStatus, apperrors.UserMessage(operation, err), &dto.ErrorDetail{
		ErrorCode: string(appErr.Code),
		Details:   appErr.Detail,
	})
}
