// Package auth 提供注册、登录与令牌刷新
package auth

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.opentelemetry.io/otel"

	"contentforge-ai-api/internal/config"
	"contentforge-ai-api/internal/domain/entity"
	"contentforge-ai-api/internal/domain/repository"
	apperrors "contentforge-ai-api/pkg/errors"
	"contentforge-ai-api/pkg/logger"
	"contentforge-ai-api/pkg/utils"
)

var tracer = otel.Tracer("auth")

// Service 认证服务
type Service struct {
	users      repository.UserRepository
	workspaces repository.WorkspaceRepository
	accounts   repository.BillingAccountRepository
	transactor repository.Transactor
	jwtManager *utils.JWTManager

	jwtCfg         config.JWTConfig
	initialBalance int64
}

// NewService 创建认证服务
func NewService(
	users repository.UserRepository,
	workspaces repository.WorkspaceRepository,
	accounts repository.BillingAccountRepository,
	transactor repository.Transactor,
	jwtManager *utils.JWTManager,
	jwtCfg config.JWTConfig,
	initialBalance int64,
) *Service {
	return &Service{
		users:          users,
		workspaces:     workspaces,
		accounts:       accounts,
		transactor:     transactor,
		jwtManager:     jwtManager,
		jwtCfg:         jwtCfg,
		initialBalance: initialBalance,
	}
}

// RegisterInput 注册输入
type RegisterInput struct {
	Email         string
	Password      string
	Name          string
	WorkspaceName string
}

// AuthResult 登录/注册结果
type AuthResult struct {
	User      *entity.User      `json:"user"`
	Workspace *entity.Workspace `json:"workspace"`
	Tokens    *utils.TokenPair  `json:"tokens"`
}

// Register 注册新用户
// 同一事务内创建工作区、管理员用户和预置初始余额的计费账户
func (s *Service) Register(ctx context.Context, in *RegisterInput) (*AuthResult, error) {
	ctx, span := tracer.Start(ctx, "auth.Register")
	defer span.End()

	email := strings.ToLower(strings.TrimSpace(in.Email))
	if email == "" || in.Password == "" {
		return nil, apperrors.New(apperrors.CodeInvalidParam, "email and password are required")
	}
	if len(in.Password) < 8 {
		return nil, apperrors.New(apperrors.CodeInvalidParam, "password must be at least 8 characters")
	}

	existing, err := s.users.GetByEmail(ctx, email)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, apperrors.New(apperrors.CodeConflict, "email is already registered")
	}

	name := strings.TrimSpace(in.Name)
	if name == "" {
		name = email
	}
	workspaceName := strings.TrimSpace(in.WorkspaceName)
	if workspaceName == "" {
		workspaceName = name + "'s workspace"
	}

	workspace := entity.NewWorkspace(workspaceName, buildSlug(workspaceName))

	user := entity.NewUser("", email, name)
	user.ID = uuid.NewString()
	user.Role = entity.UserRoleAdmin
	if err := user.SetPassword(in.Password); err != nil {
		span.RecordError(err)
		return nil, apperrors.New(apperrors.CodeInternalError, "failed to hash password").WithError(err)
	}

	err = s.transactor.WithTransaction(ctx, func(txCtx context.Context) error {
		if err := s.workspaces.Create(txCtx, workspace); err != nil {
			return err
		}

		user.WorkspaceID = workspace.ID
		if err := s.users.Create(txCtx, user); err != nil {
			return err
		}

		workspace.OwnerID = user.ID
		if err := s.workspaces.Update(txCtx, workspace); err != nil {
			return err
		}

		return s.accounts.Create(txCtx, entity.NewBillingAccount(workspace.ID, user.ID, s.initialBalance))
	})
	if err != nil {
		span.RecordError(err)
		return nil, err
	}

	tokens, err := s.issueTokens(workspace.ID, user.ID, string(user.Role))
	if err != nil {
		span.RecordError(err)
		return nil, err
	}

	logger.FromContext(ctx).Info("user registered",
		"user_id", user.ID, "workspace_id", workspace.ID)

	return &AuthResult{User: user, Workspace: workspace, Tokens: tokens}, nil
}

// Login 邮箱密码登录
func (s *Service) Login(ctx context.Context, email, password string) (*AuthResult, error) {
	ctx, span := tracer.Start(ctx, "auth.Login")
	defer span.End()

	email = strings.ToLower(strings.TrimSpace(email))
	if email == "" || password == "" {
		return nil, apperrors.New(apperrors.CodeInvalidParam, "email and password are required")
	}

	user, err := s.users.GetByEmail(ctx, email)
	if err != nil {
		return nil, err
	}
	if user == nil || !user.CheckPassword(password) {
		return nil, apperrors.New(apperrors.CodeUnauthorized, "invalid email or password")
	}

	workspace, err := s.workspaces.GetByID(ctx, user.WorkspaceID)
	if err != nil {
		return nil, err
	}
	if workspace == nil || !workspace.IsActive() {
		return nil, apperrors.New(apperrors.CodeForbidden, "workspace is unavailable")
	}

	tokens, err := s.issueTokens(workspace.ID, user.ID, string(user.Role))
	if err != nil {
		span.RecordError(err)
		return nil, err
	}

	now := time.Now()
	user.LastLoginAt = &now
	if err := s.users.Update(ctx, user); err != nil {
		logger.FromContext(ctx).Warn("failed to record login time",
			"user_id", user.ID, "error", err)
	}

	return &AuthResult{User: user, Workspace: workspace, Tokens: tokens}, nil
}

// Refresh 用 refresh token 换发新令牌对
func (s *Service) Refresh(ctx context.Context, refreshToken string) (*utils.TokenPair, error) {
	ctx, span := tracer.Start(ctx, "auth.Refresh")
	defer span.End()

	claims, err := s.jwtManager.ParseToken(refreshToken)
	if err != nil {
		return nil, apperrors.New(apperrors.CodeUnauthorized, "invalid refresh token")
	}
	if claims.Type != "refresh" {
		return nil, apperrors.New(apperrors.CodeUnauthorized, "token is not a refresh token")
	}

	user, err := s.users.GetByID(ctx, claims.UserID)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, apperrors.New(apperrors.CodeUnauthorized, "user no longer exists")
	}

	return s.issueTokens(user.WorkspaceID, user.ID, string(user.Role))
}

func (s *Service) issueTokens(workspaceID, userID, role string) (*utils.TokenPair, error) {
	accessTTL := s.jwtCfg.Expiration
	if accessTTL <= 0 {
		accessTTL = 15 * time.Minute
	}
	refreshTTL := s.jwtCfg.RefreshExpiration
	if refreshTTL <= 0 {
		refreshTTL = 7 * 24 * time.Hour
	}
	return s.jwtManager.GenerateTokenPair(workspaceID, userID, role, accessTTL, refreshTTL)
}

// buildSlug 从工作区名派生 slug，追加短随机后缀保证唯一
func buildSlug(name string) string {
	var sb strings.Builder
	for _, r := range strings.ToLower(name) {
		switch {
		case r >= 'a' && r <= 'z', r >= '0' && r <= '9':
			sb.WriteRune(r)
		case r == ' ', r == '-', r == '_':
			sb.WriteByte('-')
		}
	}
	slug := strings.Trim(sb.String(), "-")
	if len(slug) > 40 {
		slug = slug[:40]
	}
	suffix := strings.Split(uuid.NewString(), "-")[0]
	if slug == "" {
		return suffix
	}
	return slug + "-" + suffix
}
