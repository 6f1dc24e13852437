// Package wire 提供依赖注入配置
package wire

import (
	"context"

	einoembedding "github.com/cloudwego/eino/components/embedding"
	"github.com/gin-gonic/gin"

	"contentforge-ai-api/internal/application/auth"
	"contentforge-ai-api/internal/application/billing"
	"contentforge-ai-api/internal/application/generation"
	"contentforge-ai-api/internal/application/generation/contextrepo"
	"contentforge-ai-api/internal/application/generation/executor"
	"contentforge-ai-api/internal/application/image"
	"contentforge-ai-api/internal/config"
	"contentforge-ai-api/internal/domain/repository"
	"contentforge-ai-api/internal/domain/service"
	infraembedding "contentforge-ai-api/internal/infrastructure/embedding"
	"contentforge-ai-api/internal/infrastructure/imagegen"
	"contentforge-ai-api/internal/infrastructure/messaging"
	"contentforge-ai-api/internal/infrastructure/persistence/milvus"
	"contentforge-ai-api/internal/infrastructure/persistence/postgres"
	"contentforge-ai-api/internal/infrastructure/persistence/redis"
	"contentforge-ai-api/internal/infrastructure/storage"
	"contentforge-ai-api/internal/interfaces/http/handler"
	"contentforge-ai-api/internal/interfaces/http/middleware"
	"contentforge-ai-api/internal/interfaces/http/router"
	"contentforge-ai-api/pkg/logger"
	"contentforge-ai-api/pkg/utils"
)

// JobWorkerDeps job-worker 的依赖容器
type JobWorkerDeps struct {
	PgClient    *postgres.Client
	RedisClient *redis.Client
	TxManager   *postgres.TxManager
	Accounts    *postgres.BillingAccountRepository
	Usage       *postgres.UsageRecordRepository
	Images      *postgres.GeneratedImageRepository
	Knowledge   *postgres.KnowledgeItemRepository
	Store       *storage.Client
	Indexer     *milvus.KnowledgeIndexer
}

// BootstrapDeps bootstrap 的依赖容器
type BootstrapDeps struct {
	PgClient   *postgres.Client
	Workspaces *postgres.WorkspaceRepository
	Users      *postgres.UserRepository
	Accounts   *postgres.BillingAccountRepository
	Projects   *postgres.ProjectRepository
	Categories *postgres.CategoryRepository
	Indexer    *milvus.KnowledgeIndexer
}

// ProvidePostgresClient 提供 PostgreSQL 客户端
func ProvidePostgresClient(cfg *config.Config) (*postgres.Client, func(), error) {
	client, err := postgres.NewClient(&cfg.Database.Postgres)
	if err != nil {
		return nil, nil, err
	}
	cleanup := func() {
		client.Close()
	}
	return client, cleanup, nil
}

// ProvideRedisClient 提供 Redis 客户端
func ProvideRedisClient(cfg *config.Config) (*redis.Client, func(), error) {
	client, err := redis.NewClient(&cfg.Cache.Redis)
	if err != nil {
		return nil, nil, err
	}
	cleanup := func() {
		client.Close()
	}
	return client, cleanup, nil
}

// ProvideMessagingProducer 提供消息生产者
func ProvideMessagingProducer(redisClient *redis.Client, cfg *config.Config) *messaging.Producer {
	maxLen := cfg.Messaging.RedisStream.MaxLen
	if maxLen <= 0 {
		maxLen = 100000
	}
	return messaging.NewProducer(redisClient.Redis(), int64(maxLen))
}

// ProvideMilvusClientOptional Milvus 不可达时降级而不是阻塞启动
func ProvideMilvusClientOptional(ctx context.Context, cfg *config.Config) (*milvus.Client, func(), error) {
	if !cfg.Vector.Enabled {
		return nil, func() {}, nil
	}
	client, err := milvus.NewClient(ctx, &cfg.Vector.Milvus)
	if err != nil {
		logger.Warn(ctx, "milvus not available, knowledge ranking disabled", "error", err.Error())
		return nil, func() {}, nil
	}
	cleanup := func() {
		_ = client.Close()
	}
	return client, cleanup, nil
}

// ProvideMilvusRepositoryOptional 提供可选的向量仓储
func ProvideMilvusRepositoryOptional(client *milvus.Client) *milvus.Repository {
	if client == nil {
		return nil
	}
	return milvus.NewRepository(client)
}

// ProvideEmbedderOptional Embedder 不可用时禁用向量能力
func ProvideEmbedderOptional(ctx context.Context, cfg *config.Config) (einoembedding.Embedder, error) {
	if !cfg.Vector.Enabled {
		return nil, nil
	}
	embedder, err := infraembedding.NewEinoEmbedder(ctx, &cfg.Embedding)
	if err != nil {
		logger.Warn(ctx, "embedding not available, knowledge ranking disabled", "error", err.Error())
		return nil, nil
	}
	return embedder, nil
}

// ProvideKnowledgeRankerOptional 提供可选的知识条目重排器
func ProvideKnowledgeRankerOptional(repo *milvus.Repository, embedder einoembedding.Embedder) contextrepo.KnowledgeRanker {
	if repo == nil || embedder == nil {
		return nil
	}
	return milvus.NewKnowledgeRanker(repo, embedder)
}

// ProvideKnowledgeIndexerOptional 提供可选的知识条目索引器
func ProvideKnowledgeIndexerOptional(repo *milvus.Repository, embedder einoembedding.Embedder) *milvus.KnowledgeIndexer {
	if repo == nil || embedder == nil {
		return nil
	}
	return milvus.NewKnowledgeIndexer(repo, embedder)
}

// ProvideUsageRecorder 提供用量记录器
func ProvideUsageRecorder(producer *messaging.Producer, cfg *config.Config) service.UsageRecorder {
	return billing.NewRecorder(producer, cfg.Billing.CostMultiplier)
}

// ProvidePipeline 提供生成管线
func ProvidePipeline(checker *billing.Checker, recorder service.UsageRecorder, cfg *config.Config) *generation.Pipeline {
	return generation.NewPipeline(checker, recorder, cfg.Billing.EstimateMultiplier)
}

// ProvideGenerationService 提供内容生成服务
func ProvideGenerationService(
	pipeline *generation.Pipeline,
	assembler *contextrepo.Assembler,
	exec *executor.Executor,
	projects repository.ProjectRepository,
	pieces repository.ContentPieceRepository,
	versions repository.ContentVersionRepository,
	chats repository.ChatMessageRepository,
	categories repository.CategoryRepository,
	transactor repository.Transactor,
	cfg *config.Config,
) *generation.Service {
	return generation.NewService(pipeline, assembler, exec, projects, pieces, versions, chats, categories, transactor, cfg.LLM.DefaultProvider)
}

// ProvideImageStrategies 按配置装配图片生成策略
// 单个提供商配置缺失只禁用该提供商
func ProvideImageStrategies(ctx context.Context, cfg *config.Config) map[string]image.Strategy {
	strategies := make(map[string]image.Strategy)

	for name, providerCfg := range cfg.Image.Providers {
		providerCfg := providerCfg
		switch name {
		case "openai":
			s, err := imagegen.NewOpenAIStrategy(&providerCfg)
			if err != nil {
				logger.Warn(ctx, "openai image strategy disabled", "error", err.Error())
				continue
			}
			strategies[name] = s
		case "google":
			s, err := imagegen.NewGoogleStrategy(ctx, &providerCfg)
			if err != nil {
				logger.Warn(ctx, "google image strategy disabled", "error", err.Error())
				continue
			}
			strategies[name] = s
		default:
			logger.Warn(ctx, "unknown image provider ignored", "provider", name)
		}
	}

	return strategies
}

// ProvideObjectStoreClientOptional R2 未配置时图片生成不可用但不阻塞启动
func ProvideObjectStoreClientOptional(ctx context.Context, cfg *config.Config) *storage.Client {
	client, err := storage.NewClient(ctx, &cfg.Storage.R2)
	if err != nil {
		logger.Warn(ctx, "object storage not configured, image generation disabled", "error", err.Error())
		return nil
	}
	return client
}

// ProvideObjectStore 把可选的存储客户端适配为端口
func ProvideObjectStore(client *storage.Client) image.ObjectStore {
	if client == nil {
		return nil
	}
	return client
}

// ProvideImageService 提供图片生成服务
func ProvideImageService(
	strategies map[string]image.Strategy,
	limiter image.RateLimiter,
	checker *billing.Checker,
	recorder service.UsageRecorder,
	store image.ObjectStore,
	images repository.GeneratedImageRepository,
	producer *messaging.Producer,
	cfg *config.Config,
) *image.Service {
	return image.NewService(strategies, limiter, checker, recorder, store, images, producer, &cfg.Image)
}

// ProvideJWTManager 提供 JWT 管理器
func ProvideJWTManager(cfg *config.Config) *utils.JWTManager {
	return utils.NewJWTManager(cfg.Security.JWT.Secret, cfg.Security.JWT.Issuer)
}

// ProvideAuthService 提供认证服务
func ProvideAuthService(
	users repository.UserRepository,
	workspaces repository.WorkspaceRepository,
	accounts repository.BillingAccountRepository,
	transactor repository.Transactor,
	jwtManager *utils.JWTManager,
	cfg *config.Config,
) *auth.Service {
	return auth.NewService(users, workspaces, accounts, transactor, jwtManager, cfg.Security.JWT, cfg.Billing.InitialBalance)
}

// ProvideRateLimitMiddleware 提供全局限流中间件
func ProvideRateLimitMiddleware(cfg *config.Config, redisClient *redis.Client) gin.HandlerFunc {
	return middleware.NewRateLimitMiddleware(middleware.RateLimitConfig{
		Enabled:           cfg.Security.RateLimit.Enabled,
		RequestsPerSecond: cfg.Security.RateLimit.RequestsPerSecond,
		Burst:             cfg.Security.RateLimit.Burst,
	}, redisClient.Redis())
}

// ProvideRouter 组装路由器并注册 API 路由
func ProvideRouter(
	cfg *config.Config,
	healthHandler *handler.HealthHandler,
	rateLimit gin.HandlerFunc,
	authHandler *handler.AuthHandler,
	aiHandler *handler.AIHandler,
	imageHandler *handler.ImageHandler,
	billingHandler *handler.BillingHandler,
) *router.Router {
	r := router.New(cfg, healthHandler, rateLimit)
	r.RegisterAPIRoutes(authHandler, aiHandler, imageHandler, billingHandler)
	return r
}
