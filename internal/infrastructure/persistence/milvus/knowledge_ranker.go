package milvus

import (
	"context"
	"fmt"

	"github.com/cloudwego/eino/components/embedding"
	"github.com/google/uuid"

	"contentforge-ai-api/internal/application/generation/contextrepo"
	"contentforge-ai-api/internal/domain/entity"
)

// KnowledgeRanker 基于向量相似度的知识条目重排实现
type KnowledgeRanker struct {
	repo     *Repository
	embedder embedding.Embedder
}

// NewKnowledgeRanker 创建向量重排器
func NewKnowledgeRanker(repo *Repository, embedder embedding.Embedder) *KnowledgeRanker {
	return &KnowledgeRanker{repo: repo, embedder: embedder}
}

var _ contextrepo.KnowledgeRanker = (*KnowledgeRanker)(nil)

// Rank 将查询向量化后检索，返回按相似度降序的条目 ID
func (r *KnowledgeRanker) Rank(ctx context.Context, workspaceID, projectID, query string, topK int) ([]string, error) {
	if r == nil || r.repo == nil || r.embedder == nil {
		return nil, fmt.Errorf("knowledge ranker not configured")
	}
	if query == "" || topK <= 0 {
		return nil, nil
	}

	vectors, err := r.embedder.EmbedStrings(ctx, []string{query})
	if err != nil {
		return nil, fmt.Errorf("failed to embed query: %w", err)
	}
	if len(vectors) == 0 {
		return nil, nil
	}

	results, err := r.repo.SearchChunks(ctx, &SearchParams{
		WorkspaceID: workspaceID,
		ProjectID:   projectID,
		QueryVector: toFloat32(vectors[0]),
		TopK:        topK,
	})
	if err != nil {
		return nil, err
	}

	// 同一条目可能对应多个向量，按首次出现去重
	seen := make(map[string]struct{}, len(results))
	ids := make([]string, 0, len(results))
	for _, res := range results {
		if res == nil || res.ItemID == "" {
			continue
		}
		if _, ok := seen[res.ItemID]; ok {
			continue
		}
		seen[res.ItemID] = struct{}{}
		ids = append(ids, res.ItemID)
	}
	return ids, nil
}

// KnowledgeIndexer 知识条目向量索引器
type KnowledgeIndexer struct {
	repo     *Repository
	embedder embedding.Embedder
}

// NewKnowledgeIndexer 创建向量索引器
func NewKnowledgeIndexer(repo *Repository, embedder embedding.Embedder) *KnowledgeIndexer {
	return &KnowledgeIndexer{repo: repo, embedder: embedder}
}

// EnsureCollection 确保集合与索引就绪
func (i *KnowledgeIndexer) EnsureCollection(ctx context.Context) error {
	if i == nil || i.repo == nil {
		return fmt.Errorf("knowledge indexer not configured")
	}
	return i.repo.EnsureKnowledgeChunksCollection(ctx)
}

// IndexItem 向量化并写入单个知识条目，重复写入前先清理旧向量
func (i *KnowledgeIndexer) IndexItem(ctx context.Context, item *entity.KnowledgeItem) error {
	if i == nil || i.repo == nil || i.embedder == nil {
		return fmt.Errorf("knowledge indexer not configured")
	}
	if item == nil || item.Content == "" {
		return nil
	}

	vectors, err := i.embedder.EmbedStrings(ctx, []string{item.Title + "\n" + item.Content})
	if err != nil {
		return fmt.Errorf("failed to embed knowledge item: %w", err)
	}
	if len(vectors) == 0 {
		return nil
	}

	if err := i.repo.DeleteChunksByItem(ctx, item.WorkspaceID, item.ProjectID, item.ID); err != nil {
		return err
	}

	return i.repo.InsertChunks(ctx, item.WorkspaceID, item.ProjectID, []*KnowledgeChunk{{
		ID:          uuid.New().String(),
		Vector:      toFloat32(vectors[0]),
		WorkspaceID: item.WorkspaceID,
		ProjectID:   item.ProjectID,
		ItemID:      item.ID,
		Title:       item.Title,
		TextContent: item.Content,
	}})
}

// RemoveItem 删除条目对应的全部向量
func (i *KnowledgeIndexer) RemoveItem(ctx context.Context, workspaceID, projectID, itemID string) error {
	if i == nil || i.repo == nil {
		return fmt.Errorf("knowledge indexer not configured")
	}
	return i.repo.DeleteChunksByItem(ctx, workspaceID, projectID, itemID)
}

func toFloat32(v []float64) []float32 {
	out := make([]float32, len(v))
	for i, f := range v {
		out[i] = float32(f)
	}
	return out
}
