// Package milvus 提供 Milvus 向量数据库访问层实现
package milvus

import (
	"github.com/milvus-io/milvus-sdk-go/v2/entity"
)

const (
	// CollectionKnowledgeChunks 知识库条目集合
	CollectionKnowledgeChunks = "knowledge_chunks"

	// VectorDimension 向量维度
	VectorDimension = 1024
)

// KnowledgeChunksSchema 知识库条目 Collection Schema
func KnowledgeChunksSchema() *entity.Schema {
	return &entity.Schema{
		CollectionName: CollectionKnowledgeChunks,
		Description:    "Knowledge base items for semantic ranking",
		Fields: []*entity.Field{
			{
				Name:       "id",
				DataType:   entity.FieldTypeVarChar,
				PrimaryKey: true,
				AutoID:     false,
				TypeParams: map[string]string{
					"max_length": "64",
				},
			},
			{
				Name:     "vector",
				DataType: entity.FieldTypeFloatVector,
				TypeParams: map[string]string{
					"dim": "1024",
				},
			},
			{
				Name:     "workspace_id",
				DataType: entity.FieldTypeVarChar,
				TypeParams: map[string]string{
					"max_length": "64",
				},
			},
			{
				Name:     "project_id",
				DataType: entity.FieldTypeVarChar,
				TypeParams: map[string]string{
					"max_length": "64",
				},
			},
			{
				Name:     "item_id",
				DataType: entity.FieldTypeVarChar,
				TypeParams: map[string]string{
					"max_length": "64",
				},
			},
			{
				Name:     "title",
				DataType: entity.FieldTypeVarChar,
				TypeParams: map[string]string{
					"max_length": "512",
				},
			},
			{
				Name:     "text_content",
				DataType: entity.FieldTypeVarChar,
				TypeParams: map[string]string{
					"max_length": "65535",
				},
			},
		},
	}
}

// KnowledgeChunk 知识库条目数据结构
type KnowledgeChunk struct {
	ID          string    `json:"id"`
	Vector      []float32 `json:"vector"`
	WorkspaceID string    `json:"workspace_id"`
	ProjectID   string    `json:"project_id"`
	ItemID      string    `json:"item_id"`
	Title       string    `json:"title"`
	TextContent string    `json:"text_content"`
}

// PartitionName 生成分区名称
func PartitionName(workspaceID, projectID string) string {
	return "ws_" + workspaceID + "_proj_" + projectID
}
