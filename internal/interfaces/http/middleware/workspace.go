// Package middleware 提供 HTTP 中间件
package middleware

import (
	"context"

	"github.com/gin-gonic/gin"
)

// WorkspaceContextKey 工作区上下文 Key 类型
type WorkspaceContextKey string

const (
	// WorkspaceIDKey 工作区 ID 上下文 Key
	WorkspaceIDKey WorkspaceContextKey = "workspace_id"
	// UserIDKey 用户 ID 上下文 Key
	UserIDKey WorkspaceContextKey = "user_id"
)

// WorkspaceConfig 工作区中间件配置
type WorkspaceConfig struct {
	// Enabled 是否启用工作区隔离
	Enabled bool
	// HeaderName 从 Header 中获取工作区 ID 的字段名
	HeaderName string
	// DefaultWorkspaceID 默认工作区 ID（用于开发环境）
	DefaultWorkspaceID string
}

// Workspace 工作区上下文中间件
// 把认证后的工作区归属传播到 request context，供仓储与日志使用
func Workspace(cfg WorkspaceConfig) gin.HandlerFunc {
	if cfg.HeaderName == "" {
		cfg.HeaderName = "X-Workspace-ID"
	}

	return func(c *gin.Context) {
		// 优先从 Auth 中间件获取（JWT 解析后设置）
		workspaceID := c.GetString("workspace_id")

		if workspaceID == "" {
			workspaceID = c.GetHeader(cfg.HeaderName)
		}

		// 仅开发环境使用默认值
		if workspaceID == "" && cfg.DefaultWorkspaceID != "" {
			workspaceID = cfg.DefaultWorkspaceID
		}

		if workspaceID != "" {
			c.Set("workspace_id", workspaceID)

			ctx := context.WithValue(c.Request.Context(), WorkspaceIDKey, workspaceID)
			if userID := c.GetString("user_id"); userID != "" {
				ctx = context.WithValue(ctx, UserIDKey, userID)
			}
			c.Request = c.Request.WithContext(ctx)
		}

		c.Next()
	}
}

// GetWorkspaceID 从 context 中获取工作区 ID
func GetWorkspaceID(ctx context.Context) string {
	if v := ctx.Value(WorkspaceIDKey); v != nil {
		if s, ok := v.(string); ok {
			return s
		}
	}
	return ""
}

// GetUserID 从 context 中获取用户 ID
func GetUserID(ctx context.Context) string {
	if v := ctx.Value(UserIDKey); v != nil {
		if s, ok := v.(string); ok {
			return s
		}
	}
	return ""
}

// GetWorkspaceIDFromGin 从 Gin Context 中获取工作区 ID
func GetWorkspaceIDFromGin(c *gin.Context) string {
	return c.GetString("workspace_id")
}

// GetUserIDFromGin 从 Gin Context 中获取用户 ID
func GetUserIDFromGin(c *gin.Context) string {
	return c.GetString("user_id")
}
