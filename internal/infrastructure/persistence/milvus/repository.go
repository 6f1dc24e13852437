// Package milvus 提供 Milvus 向量数据库访问层实现
package milvus

import (
	"context"
	"fmt"
	"time"

	"github.com/milvus-io/milvus-sdk-go/v2/entity"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"

	"contentforge-ai-api/pkg/metrics"
)

// Repository 向量检索仓储
type Repository struct {
	client *Client
}

// NewRepository 创建向量检索仓储
func NewRepository(client *Client) *Repository {
	return &Repository{client: client}
}

// SearchParams 检索参数
type SearchParams struct {
	WorkspaceID string
	ProjectID   string
	QueryVector []float32
	TopK        int
}

// SearchResult 检索结果
type SearchResult struct {
	ID          string
	ItemID      string
	Score       float32
	Title       string
	TextContent string
}

// CreateCollection 创建集合
func (r *Repository) CreateCollection(ctx context.Context, schema *entity.Schema) error {
	if r == nil || r.client == nil || r.client.milvus == nil {
		return fmt.Errorf("milvus client not configured")
	}
	ctx, span := tracer.Start(ctx, "milvus.CreateCollection",
		trace.WithAttributes(attribute.String("collection", schema.CollectionName)))
	defer span.End()

	collName := r.client.CollectionName(schema.CollectionName)
	schema.CollectionName = collName

	err := r.client.milvus.CreateCollection(ctx, schema, entity.DefaultShardNumber)
	if err != nil {
		span.RecordError(err)
		return fmt.Errorf("failed to create collection: %w", err)
	}

	return nil
}

// CreateIndex 创建 HNSW 索引
func (r *Repository) CreateIndex(ctx context.Context, collection string) error {
	if r == nil || r.client == nil || r.client.milvus == nil {
		return fmt.Errorf("milvus client not configured")
	}
	ctx, span := tracer.Start(ctx, "milvus.CreateIndex",
		trace.WithAttributes(attribute.String("collection", collection)))
	defer span.End()

	collName := r.client.CollectionName(collection)

	idx, err := entity.NewIndexHNSW(
		entity.COSINE,
		r.client.config.HNSWM,
		r.client.config.HNSWEfConstruction,
	)
	if err != nil {
		span.RecordError(err)
		return fmt.Errorf("failed to create index: %w", err)
	}

	err = r.client.milvus.CreateIndex(ctx, collName, "vector", idx, false)
	if err != nil {
		span.RecordError(err)
		return fmt.Errorf("failed to create index: %w", err)
	}

	return nil
}

// CreatePartition 创建分区
func (r *Repository) CreatePartition(ctx context.Context, collection, workspaceID, projectID string) error {
	if r == nil || r.client == nil || r.client.milvus == nil {
		return fmt.Errorf("milvus client not configured")
	}
	ctx, span := tracer.Start(ctx, "milvus.CreatePartition",
		trace.WithAttributes(
			attribute.String("collection", collection),
			attribute.String("partition", PartitionName(workspaceID, projectID)),
		))
	defer span.End()

	collName := r.client.CollectionName(collection)
	partitionName := PartitionName(workspaceID, projectID)

	return r.client.milvus.CreatePartition(ctx, collName, partitionName)
}

// SearchChunks 按向量相似度检索知识库条目
func (r *Repository) SearchChunks(ctx context.Context, params *SearchParams) ([]*SearchResult, error) {
	if r == nil || r.client == nil || r.client.milvus == nil {
		return nil, fmt.Errorf("milvus client not configured")
	}
	ctx, span := tracer.Start(ctx, "milvus.SearchChunks",
		trace.WithAttributes(
			attribute.String("workspace_id", params.WorkspaceID),
			attribute.String("project_id", params.ProjectID),
			attribute.Int("top_k", params.TopK),
		))
	defer span.End()

	collName := r.client.CollectionName(CollectionKnowledgeChunks)
	partitionName := PartitionName(params.WorkspaceID, params.ProjectID)

	start := time.Now()
	defer func() {
		metrics.MilvusSearchDuration.WithLabelValues(CollectionKnowledgeChunks).Observe(time.Since(start).Seconds())
	}()

	// 如果分区尚未创建（例如新项目），直接返回空结果，避免 Milvus 报 partition not found。
	if has, err := r.client.milvus.HasPartition(ctx, collName, partitionName); err != nil {
		span.RecordError(err)
		metrics.MilvusSearchTotal.WithLabelValues(CollectionKnowledgeChunks, "error").Inc()
		return nil, fmt.Errorf("failed to check partition: %w", err)
	} else if !has {
		metrics.MilvusSearchTotal.WithLabelValues(CollectionKnowledgeChunks, "empty_partition").Inc()
		return []*SearchResult{}, nil
	}

	filter := fmt.Sprintf(
		`workspace_id == "%s" && project_id == "%s"`,
		params.WorkspaceID, params.ProjectID,
	)

	sp, err := entity.NewIndexHNSWSearchParam(128)
	if err != nil {
		span.RecordError(err)
		return nil, fmt.Errorf("failed to create search param: %w", err)
	}

	results, err := r.client.milvus.Search(ctx,
		collName,
		[]string{partitionName},
		filter,
		[]string{"id", "item_id", "title", "text_content"},
		[]entity.Vector{entity.FloatVector(params.QueryVector)},
		"vector",
		entity.COSINE,
		params.TopK,
		sp,
	)
	if err != nil {
		span.RecordError(err)
		metrics.MilvusSearchTotal.WithLabelValues(CollectionKnowledgeChunks, "error").Inc()
		return nil, fmt.Errorf("failed to search: %w", err)
	}
	metrics.MilvusSearchTotal.WithLabelValues(CollectionKnowledgeChunks, "success").Inc()

	var searchResults []*SearchResult
	for _, result := range results {
		for i := 0; i < result.ResultCount; i++ {
			sr := &SearchResult{
				Score: result.Scores[i],
			}

			if idCol, ok := result.Fields.GetColumn("id").(*entity.ColumnVarChar); ok {
				sr.ID = idCol.Data()[i]
			}
			if itemCol, ok := result.Fields.GetColumn("item_id").(*entity.ColumnVarChar); ok {
				sr.ItemID = itemCol.Data()[i]
			}
			if titleCol, ok := result.Fields.GetColumn("title").(*entity.ColumnVarChar); ok {
				sr.Title = titleCol.Data()[i]
			}
			if textCol, ok := result.Fields.GetColumn("text_content").(*entity.ColumnVarChar); ok {
				sr.TextContent = textCol.Data()[i]
			}

			searchResults = append(searchResults, sr)
		}
	}

	span.SetAttributes(attribute.Int("result_count", len(searchResults)))
	return searchResults, nil
}

// InsertChunks 插入知识库条目
func (r *Repository) InsertChunks(ctx context.Context, workspaceID, projectID string, chunks []*KnowledgeChunk) error {
	if r == nil || r.client == nil || r.client.milvus == nil {
		return fmt.Errorf("milvus client not configured")
	}
	ctx, span := tracer.Start(ctx, "milvus.InsertChunks",
		trace.WithAttributes(
			attribute.String("workspace_id", workspaceID),
			attribute.String("project_id", projectID),
			attribute.Int("count", len(chunks)),
		))
	defer span.End()

	if len(chunks) == 0 {
		return nil
	}

	collName := r.client.CollectionName(CollectionKnowledgeChunks)
	partitionName := PartitionName(workspaceID, projectID)

	// 确保分区存在
	has, _ := r.client.milvus.HasPartition(ctx, collName, partitionName)
	if !has {
		if err := r.CreatePartition(ctx, CollectionKnowledgeChunks, workspaceID, projectID); err != nil {
			return err
		}
	}

	ids := make([]string, len(chunks))
	vectors := make([][]float32, len(chunks))
	workspaceIDs := make([]string, len(chunks))
	projectIDs := make([]string, len(chunks))
	itemIDs := make([]string, len(chunks))
	titles := make([]string, len(chunks))
	textContents := make([]string, len(chunks))

	for i, chunk := range chunks {
		ids[i] = chunk.ID
		vectors[i] = chunk.Vector
		workspaceIDs[i] = chunk.WorkspaceID
		projectIDs[i] = chunk.ProjectID
		itemIDs[i] = chunk.ItemID
		titles[i] = chunk.Title
		textContents[i] = chunk.TextContent
	}

	idCol := entity.NewColumnVarChar("id", ids)
	vectorCol := entity.NewColumnFloatVector("vector", VectorDimension, vectors)
	workspaceCol := entity.NewColumnVarChar("workspace_id", workspaceIDs)
	projectCol := entity.NewColumnVarChar("project_id", projectIDs)
	itemCol := entity.NewColumnVarChar("item_id", itemIDs)
	titleCol := entity.NewColumnVarChar("title", titles)
	textCol := entity.NewColumnVarChar("text_content", textContents)

	_, err := r.client.milvus.Insert(ctx, collName, partitionName,
		idCol, vectorCol, workspaceCol, projectCol, itemCol, titleCol, textCol)
	if err != nil {
		span.RecordError(err)
		return fmt.Errorf("failed to insert chunks: %w", err)
	}

	return nil
}

// DeleteChunksByItem 删除指定知识条目的所有向量
func (r *Repository) DeleteChunksByItem(ctx context.Context, workspaceID, projectID, itemID string) error {
	if r == nil || r.client == nil || r.client.milvus == nil {
		return fmt.Errorf("milvus client not configured")
	}
	ctx, span := tracer.Start(ctx, "milvus.DeleteChunksByItem",
		trace.WithAttributes(
			attribute.String("item_id", itemID),
		))
	defer span.End()

	collName := r.client.CollectionName(CollectionKnowledgeChunks)
	partitionName := PartitionName(workspaceID, projectID)

	if has, err := r.client.milvus.HasPartition(ctx, collName, partitionName); err != nil {
		span.RecordError(err)
		return fmt.Errorf("failed to check partition: %w", err)
	} else if !has {
		return nil
	}

	filter := fmt.Sprintf(`item_id == "%s"`, itemID)

	err := r.client.milvus.Delete(ctx, collName, partitionName, filter)
	if err != nil {
		span.RecordError(err)
		return fmt.Errorf("failed to delete chunks: %w", err)
	}

	return nil
}

// EnsureKnowledgeChunksCollection 确保 knowledge_chunks 集合与索引可用（不存在则创建）。
// 约束：不会做 drop/rebuild 等破坏性操作。
func (r *Repository) EnsureKnowledgeChunksCollection(ctx context.Context) error {
	if r == nil || r.client == nil || r.client.milvus == nil {
		return fmt.Errorf("milvus client not configured")
	}

	exists, err := r.client.HasCollection(ctx, CollectionKnowledgeChunks)
	if err != nil {
		return err
	}
	if !exists {
		if err := r.CreateCollection(ctx, KnowledgeChunksSchema()); err != nil {
			return err
		}
		// 新建集合时创建索引；若失败，允许后续由运维介入。
		_ = r.CreateIndex(ctx, CollectionKnowledgeChunks)
	}

	// 尝试确保集合已加载（若已加载，Milvus 会返回成功）
	return r.client.LoadCollection(ctx, CollectionKnowledgeChunks)
}
