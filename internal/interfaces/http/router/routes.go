// Package router 提供 HTTP 路由配置
package router

import (
	"contentforge-ai-api/internal/interfaces/http/handler"
	"contentforge-ai-api/internal/interfaces/http/middleware"
)

// RegisterAPIRoutes 注册 /api/v1 路由
// 认证路由公开；其余路由经过 JWT 认证与工作区上下文注入
func (r *Router) RegisterAPIRoutes(
	authHandler *handler.AuthHandler,
	aiHandler *handler.AIHandler,
	imageHandler *handler.ImageHandler,
	billingHandler *handler.BillingHandler,
) {
	v1 := r.engine.Group("/api/v1")

	// 认证
	auth := v1.Group("/auth")
	{
		auth.POST("/register", authHandler.Register)
		auth.POST("/login", authHandler.Login)
		auth.POST("/refresh", authHandler.Refresh)
	}

	// 受保护路由
	protected := v1.Group("")
	protected.Use(middleware.Auth(middleware.AuthConfig{
		Secret:    r.cfg.Security.JWT.Secret,
		Issuer:    r.cfg.Security.JWT.Issuer,
		SkipPaths: middleware.DefaultSkipPaths,
		Enabled:   true,
	}))
	protected.Use(middleware.Workspace(middleware.WorkspaceConfig{Enabled: true}))
	if r.rateLimit != nil {
		protected.Use(r.rateLimit)
	}

	// AI 生成操作
	ai := protected.Group("/ai")
	{
		ai.POST("/draft", aiHandler.Draft)
		ai.POST("/refine", aiHandler.Refine)
		ai.POST("/refine-selection", aiHandler.RefineSelection)
		ai.POST("/chat", aiHandler.Chat)
		ai.POST("/repurpose", aiHandler.Repurpose)
		ai.POST("/image-prompt", aiHandler.ImagePrompt)
		ai.POST("/context", aiHandler.AssembleContext)

		// 图片生成
		ai.POST("/images", imageHandler.Generate)
		ai.GET("/images", imageHandler.List)
	}

	// 计费账户
	billing := protected.Group("/billing")
	{
		billing.GET("/balance", billingHandler.GetBalance)
		billing.GET("/usage", billingHandler.ListUsage)
		billing.POST("/topup", billingHandler.TopUp)
	}
}
