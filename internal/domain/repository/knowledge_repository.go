// Package repository 定义数据访问层接口
package repository

import (
	"context"

	"contentforge-ai-api/internal/domain/entity"
)

// KnowledgeItemRepository 知识库仓储接口
type KnowledgeItemRepository interface {
	Create(ctx context.Context, item *entity.KnowledgeItem) error
	GetByID(ctx context.Context, id string) (*entity.KnowledgeItem, error)
	// GetByIDs 批量获取，缺失的 ID 被跳过而不是报错
	GetByIDs(ctx context.Context, ids []string) ([]*entity.KnowledgeItem, error)
	Update(ctx context.Context, item *entity.KnowledgeItem) error
	Delete(ctx context.Context, id string) error
	// ListByProject 按创建时间倒序返回项目下的条目
	ListByProject(ctx context.Context, projectID string, limit int) ([]*entity.KnowledgeItem, error)
}

// ExampleRepository 范例仓储接口
type ExampleRepository interface {
	Create(ctx context.Context, example *entity.Example) error
	GetByID(ctx context.Context, id string) (*entity.Example, error)
	// GetByIDs 批量获取，缺失的 ID 被跳过而不是报错
	GetByIDs(ctx context.Context, ids []string) ([]*entity.Example, error)
	Update(ctx context.Context, example *entity.Example) error
	Delete(ctx context.Context, id string) error
	// ListByCategory 按创建时间倒序返回类型下的范例
	ListByCategory(ctx context.Context, categoryID string, limit int) ([]*entity.Example, error)
	ListByProject(ctx context.Context, projectID string, limit int) ([]*entity.Example, error)
}

// UploadFileRepository 上传文件仓储接口
type UploadFileRepository interface {
	Create(ctx context.Context, file *entity.UploadFile) error
	GetByID(ctx context.Context, id string) (*entity.UploadFile, error)
	// GetByIDs 批量获取，缺失的 ID 被跳过而不是报错
	GetByIDs(ctx context.Context, ids []string) ([]*entity.UploadFile, error)
	Delete(ctx context.Context, id string) error
}
