// Package repository 定义数据访问层接口
package repository

import (
	"context"

	"contentforge-ai-api/internal/domain/entity"
)

// WorkspaceRepository 工作区仓储接口
type WorkspaceRepository interface {
	// Create 创建工作区
	Create(ctx context.Context, workspace *entity.Workspace) error

	// GetByID 根据 ID 获取工作区
	GetByID(ctx context.Context, id string) (*entity.Workspace, error)

	// GetBySlug 根据 Slug 获取工作区
	GetBySlug(ctx context.Context, slug string) (*entity.Workspace, error)

	// Update 更新工作区
	Update(ctx context.Context, workspace *entity.Workspace) error
}
