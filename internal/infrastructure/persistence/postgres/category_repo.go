// Package postgres 提供 PostgreSQL Repository 实现
package postgres

import (
	"context"
	"fmt"

	"gorm.io/gorm"

	"contentforge-ai-api/internal/domain/entity"
)

// CategoryRepository 内容类型仓储实现
type CategoryRepository struct {
	client *Client
}

// NewCategoryRepository 创建内容类型仓储
func NewCategoryRepository(client *Client) *CategoryRepository {
	return &CategoryRepository{client: client}
}

// Create 创建类型
func (r *CategoryRepository) Create(ctx context.Context, category *entity.Category) error {
	ctx, span := tracer.Start(ctx, "postgres.CategoryRepository.Create")
	defer span.End()

	db := getDB(ctx, r.client.db)
	if err := db.Create(category).Error; err != nil {
		span.RecordError(err)
		return fmt.Errorf("failed to create category: %w", err)
	}
	return nil
}

// GetByID 根据 ID 获取类型
func (r *CategoryRepository) GetByID(ctx context.Context, id string) (*entity.Category, error) {
	ctx, span := tracer.Start(ctx, "postgres.CategoryRepository.GetByID")
	defer span.End()

	db := getDB(ctx, r.client.db)
	var category entity.Category
	if err := db.First(&category, "id = ?", id).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, nil
		}
		span.RecordError(err)
		return nil, fmt.Errorf("failed to get category: %w", err)
	}
	return &category, nil
}

// Update 更新类型
func (r *CategoryRepository) Update(ctx context.Context, category *entity.Category) error {
	ctx, span := tracer.Start(ctx, "postgres.CategoryRepository.Update")
	defer span.End()

	db := getDB(ctx, r.client.db)
	if err := db.Save(category).Error; err != nil {
		span.RecordError(err)
		return fmt.Errorf("failed to update category: %w", err)
	}
	return nil
}

// Delete 删除类型
func (r *CategoryRepository) Delete(ctx context.Context, id string) error {
	ctx, span := tracer.Start(ctx, "postgres.CategoryRepository.Delete")
	defer span.End()

	db := getDB(ctx, r.client.db)
	if err := db.Delete(&entity.Category{}, "id = ?", id).Error; err != nil {
		span.RecordError(err)
		return fmt.Errorf("failed to delete category: %w", err)
	}
	return nil
}

// ListByProject 获取项目下的类型列表
func (r *CategoryRepository) ListByProject(ctx context.Context, projectID string) ([]*entity.Category, error) {
	ctx, span := tracer.Start(ctx, "postgres.CategoryRepository.ListByProject")
	defer span.End()

	db := getDB(ctx, r.client.db)
	var categories []*entity.Category
	if err := db.Where("project_id = ?", projectID).
		Order("created_at ASC").
		Find(&categories).Error; err != nil {
		span.RecordError(err)
		return nil, fmt.Errorf("failed to list categories: %w", err)
	}
	return categories, nil
}
