// Package image 编排图片生成：限流 → 余额预检 → 策略生成 → 上传 → 落库 → 缩略图任务 → 记录用量
package image

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"

	"contentforge-ai-api/internal/application/billing"
	"contentforge-ai-api/internal/config"
	"contentforge-ai-api/internal/domain/entity"
	"contentforge-ai-api/internal/domain/repository"
	"contentforge-ai-api/internal/domain/service"
	"contentforge-ai-api/internal/infrastructure/messaging"
	"contentforge-ai-api/internal/infrastructure/persistence/redis"
	apperrors "contentforge-ai-api/pkg/errors"
	"contentforge-ai-api/pkg/logger"
	"contentforge-ai-api/pkg/metrics"
)

var tracer = otel.Tracer("image")

// rateLimitEndpoint 限流 key 的端点标识，OpenAI 与 Google 共享同一窗口
const rateLimitEndpoint = "image-generation"

// Strategy 图片生成策略
type Strategy interface {
	Name() string
	Model() string
	Generate(ctx context.Context, prompt string) (data []byte, mimeType string, err error)
}

// RateLimiter 滑动窗口限流端口
type RateLimiter interface {
	Allow(ctx context.Context, key string, limit int, window time.Duration) (bool, error)
}

// ObjectStore 对象存储端口
type ObjectStore interface {
	Upload(ctx context.Context, key string, data []byte, contentType string) error
	PublicObjectURL(key string) string
}

// Service 图片生成服务
type Service struct {
	strategies map[string]Strategy
	limiter    RateLimiter
	checker    *billing.Checker
	recorder   service.UsageRecorder
	store      ObjectStore
	images     repository.GeneratedImageRepository
	producer   *messaging.Producer
	cfg        *config.ImageConfig
}

// NewService 创建图片生成服务
func NewService(
	strategies map[string]Strategy,
	limiter RateLimiter,
	checker *billing.Checker,
	recorder service.UsageRecorder,
	store ObjectStore,
	images repository.GeneratedImageRepository,
	producer *messaging.Producer,
	cfg *config.ImageConfig,
) *Service {
	return &Service{
		strategies: strategies,
		limiter:    limiter,
		checker:    checker,
		recorder:   recorder,
		store:      store,
		images:     images,
		producer:   producer,
		cfg:        cfg,
	}
}

// GenerateInput 图片生成输入
type GenerateInput struct {
	WorkspaceID string
	UserID      string
	ProjectID   string
	Prompt      string
	// Provider 为空时使用配置的默认提供商
	Provider string
}

// GeneratedImageResult 单张生成结果
type GeneratedImageResult struct {
	FileID       string `json:"file_id"`
	StorageKey   string `json:"storage_key"`
	PreviewURL   string `json:"preview_url,omitempty"`
	ThumbnailURL string `json:"thumbnail_url,omitempty"`
}

// GenerateOutput 图片生成结果，images 为列表以兼容多图请求
type GenerateOutput struct {
	Provider  string                 `json:"provider"`
	Model     string                 `json:"model"`
	TokenCost int64                  `json:"token_cost"`
	Images    []GeneratedImageResult `json:"images"`
}

// Generate 生成一张图片
// 固定费用只在生成成功后入账；缩略图任务失败不影响主流程
func (s *Service) Generate(ctx context.Context, in *GenerateInput) (*GenerateOutput, error) {
	if strings.TrimSpace(in.Prompt) == "" {
		return nil, apperrors.New(apperrors.CodeInvalidParam, "image prompt is required")
	}

	strategy, providerCfg, err := s.resolveStrategy(in.Provider)
	if err != nil {
		return nil, err
	}
	if s.store == nil {
		return nil, apperrors.New(apperrors.CodeAIConfigError, "image storage is not configured")
	}

	ctx = service.WithOperationProvider(ctx, "generate image", strategy.Name())
	ctx, span := tracer.Start(ctx, "image.Generate",
		trace.WithAttributes(
			attribute.String("image.provider", strategy.Name()),
			attribute.String("image.model", strategy.Model()),
		))
	defer span.End()

	if err := s.checkRateLimit(ctx, in.WorkspaceID, in.UserID); err != nil {
		span.RecordError(err)
		return nil, err
	}

	// 固定费用预检，生成失败不扣费
	if err := s.checker.CheckBalance(ctx, in.UserID, providerCfg.TokenCost); err != nil {
		span.RecordError(err)
		return nil, err
	}

	start := time.Now()
	data, mimeType, genErr := strategy.Generate(ctx, in.Prompt)
	metrics.ImageGenerationDuration.WithLabelValues(strategy.Name()).Observe(time.Since(start).Seconds())
	if genErr != nil {
		metrics.ImageGenerationTotal.WithLabelValues(strategy.Name(), "error").Inc()
		span.RecordError(genErr)
		return nil, translateImageError(strategy.Name(), genErr)
	}
	metrics.ImageGenerationTotal.WithLabelValues(strategy.Name(), "success").Inc()

	img := &entity.GeneratedImage{
		WorkspaceID: in.WorkspaceID,
		ProjectID:   in.ProjectID,
		UserID:      in.UserID,
		Provider:    strategy.Name(),
		Model:       strategy.Model(),
		Prompt:      in.Prompt,
		StorageKey:  buildStorageKey(in.WorkspaceID, mimeType),
	}
	img.PreviewURL = s.store.PublicObjectURL(img.StorageKey)

	if err := s.store.Upload(ctx, img.StorageKey, data, mimeType); err != nil {
		span.RecordError(err)
		return nil, fmt.Errorf("failed to store generated image: %w", err)
	}

	if err := s.images.Create(ctx, img); err != nil {
		span.RecordError(err)
		return nil, err
	}

	s.enqueueThumbnail(ctx, img)
	s.recordUsage(ctx, in, strategy, providerCfg.TokenCost, int(time.Since(start).Milliseconds()))

	return &GenerateOutput{
		Provider:  img.Provider,
		Model:     img.Model,
		TokenCost: providerCfg.TokenCost,
		Images: []GeneratedImageResult{{
			FileID:     img.ID,
			StorageKey: img.StorageKey,
			PreviewURL: img.PreviewURL,
			// 缩略图异步生成，入列后由 job-worker 回填
		}},
	}, nil
}

// ListImages 分页查询用户生成的图片
func (s *Service) ListImages(ctx context.Context, userID string, pagination repository.Pagination) (*repository.PagedResult[*entity.GeneratedImage], error) {
	return s.images.ListByUser(ctx, userID, pagination)
}

// resolveStrategy 选择提供商策略
func (s *Service) resolveStrategy(provider string) (Strategy, *config.ImageProviderConfig, error) {
	if provider == "" {
		provider = s.cfg.Provider
	}

	strategy, ok := s.strategies[provider]
	if !ok {
		return nil, nil, apperrors.New(apperrors.CodeAIConfigError, "image provider is not configured").
			WithDetail("provider=" + provider)
	}

	providerCfg, ok := s.cfg.Providers[provider]
	if !ok {
		return nil, nil, apperrors.New(apperrors.CodeAIConfigError, "image provider is not configured").
			WithDetail("provider=" + provider)
	}
	return strategy, &providerCfg, nil
}

// checkRateLimit 按工作区+用户维度检查共享滑动窗口
func (s *Service) checkRateLimit(ctx context.Context, workspaceID, userID string) error {
	window := s.cfg.RateLimit.Window
	if window <= 0 {
		window = time.Minute
	}
	limit := s.cfg.RateLimit.MaxRequests
	if limit <= 0 {
		limit = 5
	}

	key := redis.BuildUserRateLimitKey(workspaceID, userID, rateLimitEndpoint)
	allowed, err := s.limiter.Allow(ctx, key, limit, window)
	if err != nil {
		// 限流器故障时放行，避免 Redis 抖动阻断生成
		logger.FromContext(ctx).Warn("image rate limiter unavailable", "error", err)
		return nil
	}
	if !allowed {
		metrics.ImageGenerationTotal.WithLabelValues(service.ProviderFromContext(ctx), "rate_limited").Inc()
		return apperrors.NewRateLimitExceeded(int(window.Seconds()))
	}
	return nil
}

// enqueueThumbnail 发布缩略图任务，失败只记日志
func (s *Service) enqueueThumbnail(ctx context.Context, img *entity.GeneratedImage) {
	if s.producer == nil {
		return
	}
	maxWidth := s.cfg.Thumbnail.MaxWidth
	if maxWidth <= 0 {
		maxWidth = 512
	}

	_, err := s.producer.PublishThumbnailJob(ctx, &messaging.ThumbnailJobMessage{
		ImageID:     img.ID,
		WorkspaceID: img.WorkspaceID,
		UserID:      img.UserID,
		StorageKey:  img.StorageKey,
		MaxWidth:    maxWidth,
	})
	if err != nil {
		logger.FromContext(ctx).Error("failed to enqueue thumbnail job",
			"image_id", img.ID, "error", err)
	}
}

// recordUsage 成功后按固定费用记账，fire-and-forget
func (s *Service) recordUsage(ctx context.Context, in *GenerateInput, strategy Strategy, cost int64, durationMs int) {
	if s.recorder == nil {
		return
	}

	bg := context.WithoutCancel(ctx)
	go func() {
		defer func() {
			if r := recover(); r != nil {
				logger.FromContext(bg).Error("image usage recording panicked", "panic", r)
			}
		}()
		_ = s.recorder.Record(bg, service.UsageInput{
			WorkspaceID: in.WorkspaceID,
			UserID:      in.UserID,
			Operation:   "generate image",
			Provider:    strategy.Name(),
			Model:       strategy.Model(),
			FixedCost:   cost,
			DurationMs:  durationMs,
			Success:     true,
		})
	}()
}

// buildStorageKey 生成对象存储 key
func buildStorageKey(workspaceID, mimeType string) string {
	ext := ".png"
	switch mimeType {
	case "image/jpeg":
		ext = ".jpg"
	case "image/webp":
		ext = ".webp"
	}
	now := time.Now().UTC()
	return fmt.Sprintf("images/%s/%s/%s%s", workspaceID, now.Format("2006/01"), uuid.NewString(), ext)
}
