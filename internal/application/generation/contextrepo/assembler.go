package contextrepo

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
	"golang.org/x/sync/errgroup"

	"contentforge-ai-api/internal/domain/entity"
	"contentforge-ai-api/internal/domain/repository"
	"contentforge-ai-api/internal/infrastructure/persistence/redis"
	apperrors "contentforge-ai-api/pkg/errors"
	"contentforge-ai-api/pkg/logger"
)

var tracer = otel.Tracer("contextrepo")

// KnowledgeRanker 知识条目向量重排端口
// 返回按相似度降序的条目 ID，失败或未配置时组装器退回按时间排序
type KnowledgeRanker interface {
	Rank(ctx context.Context, workspaceID, projectID, query string, topK int) ([]string, error)
}

// EntityCache 单实体读穿缓存端口，底层用 singleflight 防击穿
type EntityCache interface {
	GetOrLoadSafe(ctx context.Context, key string, ttl time.Duration, loader func() (interface{}, error)) ([]byte, error)
}

// entityCacheTTL 内容类型、人设、品牌声音等素材变更低频，短 TTL 兜底
const entityCacheTTL = 5 * time.Minute

// Assembler 上下文组装器
type Assembler struct {
	categoryRepo repository.CategoryRepository
	personaRepo  repository.PersonaRepository
	voiceRepo    repository.BrandVoiceRepository
	knowledge    repository.KnowledgeItemRepository
	examples     repository.ExampleRepository
	uploads      repository.UploadFileRepository
	ranker       KnowledgeRanker // 可为 nil
	cache        EntityCache     // 可为 nil
}

// NewAssembler 创建上下文组装器，ranker 和 cache 允许为 nil
func NewAssembler(
	categoryRepo repository.CategoryRepository,
	personaRepo repository.PersonaRepository,
	voiceRepo repository.BrandVoiceRepository,
	knowledge repository.KnowledgeItemRepository,
	examples repository.ExampleRepository,
	uploads repository.UploadFileRepository,
	ranker KnowledgeRanker,
	cache EntityCache,
) *Assembler {
	return &Assembler{
		categoryRepo: categoryRepo,
		personaRepo:  personaRepo,
		voiceRepo:    voiceRepo,
		knowledge:    knowledge,
		examples:     examples,
		uploads:      uploads,
		ranker:       ranker,
		cache:        cache,
	}
}

// Assemble 并行拉取上下文素材并组装
// 内容类型是硬性依赖，缺失即失败；其余素材缺失则降级为空
func (a *Assembler) Assemble(ctx context.Context, in *AssembleInput) (*GenerationContext, error) {
	ctx, span := tracer.Start(ctx, "contextrepo.Assemble",
		trace.WithAttributes(
			attribute.String("workspace_id", in.WorkspaceID),
			attribute.String("project_id", in.ProjectID),
			attribute.String("category_id", in.CategoryID),
		))
	defer span.End()

	gc := &GenerationContext{}

	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		key := redis.BuildProjectCacheKey("category", in.WorkspaceID, in.ProjectID, in.CategoryID)
		category, err := loadCached(gctx, a.cache, key, func() (*entity.Category, error) {
			return a.categoryRepo.GetByID(gctx, in.CategoryID)
		})
		if err != nil {
			return fmt.Errorf("failed to load category: %w", err)
		}
		if category == nil {
			return apperrors.New(apperrors.CodeCategoryNotFound, "category not found").
				WithDetail("category_id=" + in.CategoryID)
		}
		gc.FormatGuidelines = category.FormatGuidelines
		return nil
	})

	if in.PersonaID != "" {
		g.Go(func() error {
			key := redis.BuildProjectCacheKey("persona", in.WorkspaceID, in.ProjectID, in.PersonaID)
			persona, err := loadCached(gctx, a.cache, key, func() (*entity.Persona, error) {
				return a.personaRepo.GetByID(gctx, in.PersonaID)
			})
			if err != nil {
				return fmt.Errorf("failed to load persona: %w", err)
			}
			if persona != nil {
				gc.Persona = persona.Description
			}
			return nil
		})
	}

	if in.BrandVoiceID != "" {
		g.Go(func() error {
			key := redis.BuildProjectCacheKey("voice", in.WorkspaceID, in.ProjectID, in.BrandVoiceID)
			voice, err := loadCached(gctx, a.cache, key, func() (*entity.BrandVoice, error) {
				return a.voiceRepo.GetByID(gctx, in.BrandVoiceID)
			})
			if err != nil {
				return fmt.Errorf("failed to load brand voice: %w", err)
			}
			if voice != nil {
				gc.BrandVoice = voice.Description
			}
			return nil
		})
	}

	var knowledgeItems []*entity.KnowledgeItem
	if len(in.KnowledgeItemIDs) > 0 {
		g.Go(func() error {
			items, err := a.knowledge.GetByIDs(gctx, in.KnowledgeItemIDs)
			if err != nil {
				return fmt.Errorf("failed to load knowledge items: %w", err)
			}
			knowledgeItems = items
			return nil
		})
	}

	var exampleItems []*entity.Example
	if len(in.ExampleIDs) > 0 {
		g.Go(func() error {
			items, err := a.examples.GetByIDs(gctx, in.ExampleIDs)
			if err != nil {
				return fmt.Errorf("failed to load examples: %w", err)
			}
			exampleItems = items
			return nil
		})
	}

	var files []*entity.UploadFile
	if len(in.UploadFileIDs) > 0 {
		g.Go(func() error {
			loaded, err := a.uploads.GetByIDs(gctx, in.UploadFileIDs)
			if err != nil {
				return fmt.Errorf("failed to load upload files: %w", err)
			}
			files = loaded
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		span.RecordError(err)
		return nil, err
	}

	knowledgeItems = a.rankKnowledge(ctx, in, knowledgeItems)
	if len(knowledgeItems) > MaxKnowledgeItems {
		knowledgeItems = knowledgeItems[:MaxKnowledgeItems]
	}
	for _, item := range knowledgeItems {
		gc.KnowledgeItems = append(gc.KnowledgeItems, ContextItem{Title: item.Title, Content: item.Content})
	}

	if len(exampleItems) > MaxExamples {
		exampleItems = exampleItems[:MaxExamples]
	}
	for _, ex := range exampleItems {
		gc.Examples = append(gc.Examples, ContextItem{Title: ex.Title, Content: ex.Content})
	}

	gc.AttachedFiles = concatFiles(files)

	span.SetAttributes(
		attribute.Int("knowledge_count", len(gc.KnowledgeItems)),
		attribute.Int("example_count", len(gc.Examples)),
	)
	return gc, nil
}

// rankKnowledge 有查询且配置了向量重排时按相似度重排，失败降级为原有顺序
func (a *Assembler) rankKnowledge(ctx context.Context, in *AssembleInput, items []*entity.KnowledgeItem) []*entity.KnowledgeItem {
	if a.ranker == nil || in.Query == "" || len(items) <= 1 {
		return items
	}

	rankedIDs, err := a.ranker.Rank(ctx, in.WorkspaceID, in.ProjectID, in.Query, MaxKnowledgeItems*2)
	if err != nil {
		logger.FromContext(ctx).Warn("knowledge ranking failed, falling back to recency order", "error", err)
		return items
	}

	pos := make(map[string]int, len(rankedIDs))
	for i, id := range rankedIDs {
		pos[id] = i
	}

	ranked := make([]*entity.KnowledgeItem, 0, len(items))
	var rest []*entity.KnowledgeItem
	for _, item := range items {
		if _, ok := pos[item.ID]; ok {
			ranked = append(ranked, item)
		} else {
			rest = append(rest, item)
		}
	}

	for i := 0; i < len(ranked); i++ {
		for j := i + 1; j < len(ranked); j++ {
			if pos[ranked[j].ID] < pos[ranked[i].ID] {
				ranked[i], ranked[j] = ranked[j], ranked[i]
			}
		}
	}

	return append(ranked, rest...)
}

// loadCached 经由读穿缓存加载单实体
// 未配置缓存时直查；缓存故障降级为直查；缓存的 null 代表确认不存在
func loadCached[T any](ctx context.Context, cache EntityCache, key string, loader func() (*T, error)) (*T, error) {
	if cache == nil {
		return loader()
	}

	raw, err := cache.GetOrLoadSafe(ctx, key, entityCacheTTL, func() (interface{}, error) {
		return loader()
	})
	if err != nil {
		logger.FromContext(ctx).Warn("cached load failed, retrying without cache", "key", key, "error", err)
		return loader()
	}
	if string(raw) == "null" {
		return nil, nil
	}

	var v T
	if err := json.Unmarshal(raw, &v); err != nil {
		logger.FromContext(ctx).Warn("entity cache payload corrupt, loading directly", "key", key, "error", err)
		return loader()
	}
	return &v, nil
}

// concatFiles 拼接文件抽取文本，每个文件带 [filename] 头
func concatFiles(files []*entity.UploadFile) string {
	var sb strings.Builder
	for _, f := range files {
		if f == nil || f.ExtractedText == "" {
			continue
		}
		if sb.Len() > 0 {
			sb.WriteString("\n\n")
		}
		sb.WriteString("[" + f.Filename + "]\n")
		sb.WriteString(f.ExtractedText)
	}
	return sb.String()
}
