// Package postgres 提供 PostgreSQL Repository 实现
package postgres

import (
	"context"
	"fmt"

	"gorm.io/gorm"

	"contentforge-ai-api/internal/domain/entity"
)

// WorkspaceRepository 工作区仓储实现
type WorkspaceRepository struct {
	client *Client
}

// NewWorkspaceRepository 创建工作区仓储
func NewWorkspaceRepository(client *Client) *WorkspaceRepository {
	return &WorkspaceRepository{client: client}
}

// Create 创建工作区
func (r *WorkspaceRepository) Create(ctx context.Context, workspace *entity.Workspace) error {
	ctx, span := tracer.Start(ctx, "postgres.WorkspaceRepository.Create")
	defer span.End()

	db := getDB(ctx, r.client.db)
	if err := db.Create(workspace).Error; err != nil {
		span.RecordError(err)
		return fmt.Errorf("failed to create workspace: %w", err)
	}
	return nil
}

// GetByID 根据 ID 获取工作区
func (r *WorkspaceRepository) GetByID(ctx context.Context, id string) (*entity.Workspace, error) {
	ctx, span := tracer.Start(ctx, "postgres.WorkspaceRepository.GetByID")
	defer span.End()

	db := getDB(ctx, r.client.db)
	var workspace entity.Workspace
	if err := db.First(&workspace, "id = ?", id).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, nil
		}
		span.RecordError(err)
		return nil, fmt.Errorf("failed to get workspace: %w", err)
	}
	return &workspace, nil
}

// GetBySlug 根据 Slug 获取工作区
func (r *WorkspaceRepository) GetBySlug(ctx context.Context, slug string) (*entity.Workspace, error) {
	ctx, span := tracer.Start(ctx, "postgres.WorkspaceRepository.GetBySlug")
	defer span.End()

	db := getDB(ctx, r.client.db)
	var workspace entity.Workspace
	if err := db.First(&workspace, "slug = ?", slug).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, nil
		}
		span.RecordError(err)
		return nil, fmt.Errorf("failed to get workspace by slug: %w", err)
	}
	return &workspace, nil
}

// Update 更新工作区
func (r *WorkspaceRepository) Update(ctx context.Context, workspace *entity.Workspace) error {
	ctx, span := tracer.Start(ctx, "postgres.WorkspaceRepository.Update")
	defer span.End()

	db := getDB(ctx, r.client.db)
	if err := db.Save(workspace).Error; err != nil {
		span.RecordError(err)
		return fmt.Errorf("failed to update workspace: %w", err)
	}
	return nil
}
