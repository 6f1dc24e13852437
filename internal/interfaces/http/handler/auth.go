package handler

import (
	"github.com/gin-gonic/gin"

	"contentforge-ai-api/internal/application/auth"
	"contentforge-ai-api/internal/interfaces/http/dto"
)

// AuthHandler 认证处理器
type AuthHandler struct {
	svc *auth.Service
}

// NewAuthHandler 创建认证处理器
func NewAuthHandler(svc *auth.Service) *AuthHandler {
	return &AuthHandler{svc: svc}
}

// Register 注册
// @Summary 用户注册
// @Description 创建工作区与管理员用户，并预置初始 token 余额
// @Tags Auth
// @Accept json
// @Produce json
// @Param body body dto.RegisterRequest true "注册信息"
// @Success 201 {object} dto.Response[dto.AuthResponse]
// @Failure 400 {object} dto.ErrorResponse
// @Failure 409 {object} dto.ErrorResponse
// @Router /api/v1/auth/register [post]
func (h *AuthHandler) Register(c *gin.Context) {
	var req dto.RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		dto.BadRequest(c, "invalid request body: "+err.Error())
		return
	}

	result, err := h.svc.Register(c.Request.Context(), &auth.RegisterInput{
		Email:         req.Email,
		Password:      req.Password,
		Name:          req.Name,
		WorkspaceName: req.WorkspaceName,
	})
	if err != nil {
		respondError(c, "register account", err)
		return
	}

	dto.Created(c, toAuthResponse(result))
}

// Login 登录
// @Summary 用户登录
// @Tags Auth
// @Accept json
// @Produce json
// @Param body body dto.LoginRequest true "登录信息"
// @Success 200 {object} dto.Response[dto.AuthResponse]
// @Failure 401 {object} dto.ErrorResponse
// @Router /api/v1/auth/login [post]
func (h *AuthHandler) Login(c *gin.Context) {
	var req dto.LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		dto.BadRequest(c, "invalid request body: "+err.Error())
		return
	}

	result, err := h.svc.Login(c.Request.Context(), req.Email, req.Password)
	if err != nil {
		respondError(c, "sign in", err)
		return
	}

	dto.Success(c, toAuthResponse(result))
}

// Refresh 刷新令牌
// @Summary 用 refresh token 换发新令牌对
// @Tags Auth
// @Accept json
// @Produce json
// @Param body body dto.RefreshRequest true "刷新令牌"
// @Success 200 {object} dto.Response[dto.TokenResponse]
// @Failure 401 {object} dto.ErrorResponse
// @Router /api/v1/auth/refresh [post]
func (h *AuthHandler) Refresh(c *gin.Context) {
	var req dto.RefreshRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		dto.BadRequest(c, "invalid request body: "+err.Error())
		return
	}

	tokens, err := h.svc.Refresh(c.Request.Context(), req.RefreshToken)
	if err != nil {
		respondError(c, "refresh session", err)
		return
	}

	dto.Success(c, &dto.TokenResponse{
		AccessToken:  tokens.AccessToken,
		RefreshToken: tokens.RefreshToken,
	})
}

func toAuthResponse(result *auth.AuthResult) *dto.AuthResponse {
	return &dto.AuthResponse{
		UserID:       result.User.ID,
		WorkspaceID:  result.Workspace.ID,
		Email:        result.User.Email,
		Name:         result.User.Name,
		Role:         string(result.User.Role),
		AccessToken:  result.Tokens.AccessToken,
		RefreshToken: result.Tokens.RefreshToken,
	}
}
