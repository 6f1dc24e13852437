//go:build wireinject
// +build wireinject

package wire

import (
	"context"

	"github.com/google/wire"

	"contentforge-ai-api/internal/application/billing"
	"contentforge-ai-api/internal/application/generation/contextrepo"
	"contentforge-ai-api/internal/application/generation/executor"
	"contentforge-ai-api/internal/application/image"
	"contentforge-ai-api/internal/config"
	"contentforge-ai-api/internal/domain/repository"
	"contentforge-ai-api/internal/infrastructure/llm"
	"contentforge-ai-api/internal/infrastructure/persistence/postgres"
	"contentforge-ai-api/internal/infrastructure/persistence/redis"
	"contentforge-ai-api/internal/interfaces/http/handler"
	"contentforge-ai-api/internal/interfaces/http/router"
)

// InitializeApp 初始化 api-gateway（带路由器）
func InitializeApp(ctx context.Context, cfg *config.Config) (*router.Router, func(), error) {
	wire.Build(
		RepoSet,
		RedisSet,
		MessagingSet,
		VectorSet,
		GenerationSet,
		ImageSet,
		AuthSet,
		RouterSet,
	)
	return nil, nil, nil
}

// InitializeJobWorker 初始化 job-worker 依赖
func InitializeJobWorker(ctx context.Context, cfg *config.Config) (*JobWorkerDeps, func(), error) {
	wire.Build(
		ProvidePostgresClient,
		ProvideRedisClient,
		postgres.NewTxManager,
		postgres.NewBillingAccountRepository,
		postgres.NewUsageRecordRepository,
		postgres.NewGeneratedImageRepository,
		postgres.NewKnowledgeItemRepository,
		ProvideObjectStoreClientOptional,
		ProvideMilvusClientOptional,
		ProvideMilvusRepositoryOptional,
		ProvideEmbedderOptional,
		ProvideKnowledgeIndexerOptional,
		wire.Struct(new(JobWorkerDeps), "*"),
	)
	return nil, nil, nil
}

// InitializeBootstrap 初始化 bootstrap 依赖
func InitializeBootstrap(ctx context.Context, cfg *config.Config) (*BootstrapDeps, func(), error) {
	wire.Build(
		ProvidePostgresClient,
		postgres.NewWorkspaceRepository,
		postgres.NewUserRepository,
		postgres.NewBillingAccountRepository,
		postgres.NewProjectRepository,
		postgres.NewCategoryRepository,
		ProvideMilvusClientOptional,
		ProvideMilvusRepositoryOptional,
		ProvideEmbedderOptional,
		ProvideKnowledgeIndexerOptional,
		wire.Struct(new(BootstrapDeps), "*"),
	)
	return nil, nil, nil
}

// RepoSet PostgreSQL 仓储集合
var RepoSet = wire.NewSet(
	ProvidePostgresClient,
	postgres.NewTxManager,
	postgres.NewWorkspaceRepository,
	postgres.NewUserRepository,
	postgres.NewProjectRepository,
	postgres.NewCategoryRepository,
	postgres.NewPersonaRepository,
	postgres.NewBrandVoiceRepository,
	postgres.NewKnowledgeItemRepository,
	postgres.NewExampleRepository,
	postgres.NewUploadFileRepository,
	postgres.NewContentPieceRepository,
	postgres.NewContentVersionRepository,
	postgres.NewChatMessageRepository,
	postgres.NewBillingAccountRepository,
	postgres.NewUsageRecordRepository,
	postgres.NewGeneratedImageRepository,

	wire.Bind(new(repository.Transactor), new(*postgres.TxManager)),
	wire.Bind(new(repository.WorkspaceRepository), new(*postgres.WorkspaceRepository)),
	wire.Bind(new(repository.UserRepository), new(*postgres.UserRepository)),
	wire.Bind(new(repository.ProjectRepository), new(*postgres.ProjectRepository)),
	wire.Bind(new(repository.CategoryRepository), new(*postgres.CategoryRepository)),
	wire.Bind(new(repository.PersonaRepository), new(*postgres.PersonaRepository)),
	wire.Bind(new(repository.BrandVoiceRepository), new(*postgres.BrandVoiceRepository)),
	wire.Bind(new(repository.KnowledgeItemRepository), new(*postgres.KnowledgeItemRepository)),
	wire.Bind(new(repository.ExampleRepository), new(*postgres.ExampleRepository)),
	wire.Bind(new(repository.UploadFileRepository), new(*postgres.UploadFileRepository)),
	wire.Bind(new(repository.ContentPieceRepository), new(*postgres.ContentPieceRepository)),
	wire.Bind(new(repository.ContentVersionRepository), new(*postgres.ContentVersionRepository)),
	wire.Bind(new(repository.ChatMessageRepository), new(*postgres.ChatMessageRepository)),
	wire.Bind(new(repository.BillingAccountRepository), new(*postgres.BillingAccountRepository)),
	wire.Bind(new(repository.UsageRecordRepository), new(*postgres.UsageRecordRepository)),
	wire.Bind(new(repository.GeneratedImageRepository), new(*postgres.GeneratedImageRepository)),
)

// RedisSet Redis 提供者集合
var RedisSet = wire.NewSet(
	ProvideRedisClient,
	redis.NewCache,
	redis.NewRateLimiter,
	wire.Bind(new(image.RateLimiter), new(*redis.RateLimiter)),
	wire.Bind(new(contextrepo.EntityCache), new(*redis.Cache)),
)

// MessagingSet 消息队列提供者集合
var MessagingSet = wire.NewSet(
	ProvideMessagingProducer,
)

// VectorSet 可选向量检索（Milvus + Embedder 任一不可用时禁用重排）
var VectorSet = wire.NewSet(
	ProvideMilvusClientOptional,
	ProvideMilvusRepositoryOptional,
	ProvideEmbedderOptional,
	ProvideKnowledgeRankerOptional,
)

// GenerationSet 内容生成提供者集合
var GenerationSet = wire.NewSet(
	llm.NewEinoFactory,
	wire.Bind(new(executor.ChatModelFactory), new(*llm.EinoFactory)),
	executor.NewExecutor,
	contextrepo.NewAssembler,
	billing.NewChecker,
	ProvideUsageRecorder,
	billing.NewService,
	ProvidePipeline,
	ProvideGenerationService,
)

// ImageSet 图片生成提供者集合
var ImageSet = wire.NewSet(
	ProvideImageStrategies,
	ProvideObjectStoreClientOptional,
	ProvideObjectStore,
	ProvideImageService,
)

// AuthSet 认证提供者集合
var AuthSet = wire.NewSet(
	ProvideJWTManager,
	ProvideAuthService,
)

// RouterSet 路由器提供者集合
var RouterSet = wire.NewSet(
	handler.NewHealthHandler,
	handler.NewAuthHandler,
	handler.NewAIHandler,
	handler.NewImageHandler,
	handler.NewBillingHandler,
	ProvideRateLimitMiddleware,
	ProvideRouter,
)
