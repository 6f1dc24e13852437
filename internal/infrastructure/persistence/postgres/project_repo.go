// Package postgres 提供 PostgreSQL Repository 实现
package postgres

import (
	"context"
	"fmt"

	"gorm.io/gorm"

	"contentforge-ai-api/internal/domain/entity"
	"contentforge-ai-api/internal/domain/repository"
)

// ProjectRepository 项目仓储实现
type ProjectRepository struct {
	client *Client
}

// NewProjectRepository 创建项目仓储
func NewProjectRepository(client *Client) *ProjectRepository {
	return &ProjectRepository{client: client}
}

// Create 创建项目
func (r *ProjectRepository) Create(ctx context.Context, project *entity.Project) error {
	ctx, span := tracer.Start(ctx, "postgres.ProjectRepository.Create")
	defer span.End()

	db := getDB(ctx, r.client.db)
	if err := db.Create(project).Error; err != nil {
		span.RecordError(err)
		return fmt.Errorf("failed to create project: %w", err)
	}
	return nil
}

// GetByID 根据 ID 获取项目
func (r *ProjectRepository) GetByID(ctx context.Context, id string) (*entity.Project, error) {
	ctx, span := tracer.Start(ctx, "postgres.ProjectRepository.GetByID")
	defer span.End()

	db := getDB(ctx, r.client.db)
	var project entity.Project
	if err := db.First(&project, "id = ?", id).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, nil
		}
		span.RecordError(err)
		return nil, fmt.Errorf("failed to get project: %w", err)
	}
	return &project, nil
}

// Update 更新项目
func (r *ProjectRepository) Update(ctx context.Context, project *entity.Project) error {
	ctx, span := tracer.Start(ctx, "postgres.ProjectRepository.Update")
	defer span.End()

	db := getDB(ctx, r.client.db)
	if err := db.Save(project).Error; err != nil {
		span.RecordError(err)
		return fmt.Errorf("failed to update project: %w", err)
	}
	return nil
}

// Delete 删除项目
func (r *ProjectRepository) Delete(ctx context.Context, id string) error {
	ctx, span := tracer.Start(ctx, "postgres.ProjectRepository.Delete")
	defer span.End()

	db := getDB(ctx, r.client.db)
	if err := db.Delete(&entity.Project{}, "id = ?", id).Error; err != nil {
		span.RecordError(err)
		return fmt.Errorf("failed to delete project: %w", err)
	}
	return nil
}

// ListByWorkspace 获取工作区项目列表
func (r *ProjectRepository) ListByWorkspace(ctx context.Context, workspaceID string, pagination repository.Pagination) (*repository.PagedResult[*entity.Project], error) {
	ctx, span := tracer.Start(ctx, "postgres.ProjectRepository.ListByWorkspace")
	defer span.End()

	db := getDB(ctx, r.client.db)

	var total int64
	if err := db.Model(&entity.Project{}).Where("workspace_id = ?", workspaceID).Count(&total).Error; err != nil {
		span.RecordError(err)
		return nil, fmt.Errorf("failed to count projects: %w", err)
	}

	var projects []*entity.Project
	if err := db.Where("workspace_id = ?", workspaceID).
		Order("created_at DESC").
		Offset(pagination.Offset()).
		Limit(pagination.Limit()).
		Find(&projects).Error; err != nil {
		span.RecordError(err)
		return nil, fmt.Errorf("failed to list projects: %w", err)
	}

	return repository.NewPagedResult(projects, total, pagination), nil
}
