// Package repository 定义数据访问层接口
package repository

import (
	"context"

	"contentforge-ai-api/internal/domain/entity"
)

// ProjectRepository 项目仓储接口
type ProjectRepository interface {
	// Create 创建项目
	Create(ctx context.Context, project *entity.Project) error

	// GetByID 根据 ID 获取项目
	GetByID(ctx context.Context, id string) (*entity.Project, error)

	// Update 更新项目
	Update(ctx context.Context, project *entity.Project) error

	// Delete 删除项目
	Delete(ctx context.Context, id string) error

	// ListByWorkspace 获取工作区项目列表
	ListByWorkspace(ctx context.Context, workspaceID string, pagination Pagination) (*PagedResult[*entity.Project], error)
}
