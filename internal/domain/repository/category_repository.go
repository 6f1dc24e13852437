// Package repository 定义数据访问层接口
package repository

import (
	"context"

	"contentforge-ai-api/internal/domain/entity"
)

// CategoryRepository 内容类型仓储接口
type CategoryRepository interface {
	// Create 创建类型
	Create(ctx context.Context, category *entity.Category) error

	// GetByID 根据 ID 获取类型
	GetByID(ctx context.Context, id string) (*entity.Category, error)

	// Update 更新类型
	Update(ctx context.Context, category *entity.Category) error

	// Delete 删除类型
	Delete(ctx context.Context, id string) error

	// ListByProject 获取项目下的类型列表
	ListByProject(ctx context.Context, projectID string) ([]*entity.Category, error)
}
