// Package postgres 提供 PostgreSQL Repository 实现
package postgres

import (
	"context"
	"fmt"

	"gorm.io/gorm"

	"contentforge-ai-api/internal/domain/entity"
)

// KnowledgeItemRepository 知识库仓储实现
type KnowledgeItemRepository struct {
	client *Client
}

// NewKnowledgeItemRepository 创建知识库仓储
func NewKnowledgeItemRepository(client *Client) *KnowledgeItemRepository {
	return &KnowledgeItemRepository{client: client}
}

func (r *KnowledgeItemRepository) Create(ctx context.Context, item *entity.KnowledgeItem) error {
	ctx, span := tracer.Start(ctx, "postgres.KnowledgeItemRepository.Create")
	defer span.End()

	db := getDB(ctx, r.client.db)
	if err := db.Create(item).Error; err != nil {
		span.RecordError(err)
		return fmt.Errorf("failed to create knowledge item: %w", err)
	}
	return nil
}

func (r *KnowledgeItemRepository) GetByID(ctx context.Context, id string) (*entity.KnowledgeItem, error) {
	ctx, span := tracer.Start(ctx, "postgres.KnowledgeItemRepository.GetByID")
	defer span.End()

	db := getDB(ctx, r.client.db)
	var item entity.KnowledgeItem
	if err := db.First(&item, "id = ?", id).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, nil
		}
		span.RecordError(err)
		return nil, fmt.Errorf("failed to get knowledge item: %w", err)
	}
	return &item, nil
}

// GetByIDs 批量获取，缺失的 ID 被跳过
func (r *KnowledgeItemRepository) GetByIDs(ctx context.Context, ids []string) ([]*entity.KnowledgeItem, error) {
	ctx, span := tracer.Start(ctx, "postgres.KnowledgeItemRepository.GetByIDs")
	defer span.End()

	if len(ids) == 0 {
		return nil, nil
	}

	db := getDB(ctx, r.client.db)
	var items []*entity.KnowledgeItem
	if err := db.Where("id IN ?", ids).Find(&items).Error; err != nil {
		span.RecordError(err)
		return nil, fmt.Errorf("failed to get knowledge items: %w", err)
	}
	return items, nil
}

func (r *KnowledgeItemRepository) Update(ctx context.Context, item *entity.KnowledgeItem) error {
	ctx, span := tracer.Start(ctx, "postgres.KnowledgeItemRepository.Update")
	defer span.End()

	db := getDB(ctx, r.client.db)
	if err := db.Save(item).Error; err != nil {
		span.RecordError(err)
		return fmt.Errorf("failed to update knowledge item: %w", err)
	}
	return nil
}

func (r *KnowledgeItemRepository) Delete(ctx context.Context, id string) error {
	ctx, span := tracer.Start(ctx, "postgres.KnowledgeItemRepository.Delete")
	defer span.End()

	db := getDB(ctx, r.client.db)
	if err := db.Delete(&entity.KnowledgeItem{}, "id = ?", id).Error; err != nil {
		span.RecordError(err)
		return fmt.Errorf("failed to delete knowledge item: %w", err)
	}
	return nil
}

// ListByProject 按创建时间倒序返回项目下的条目
func (r *KnowledgeItemRepository) ListByProject(ctx context.Context, projectID string, limit int) ([]*entity.KnowledgeItem, error) {
	ctx, span := tracer.Start(ctx, "postgres.KnowledgeItemRepository.ListByProject")
	defer span.End()

	db := getDB(ctx, r.client.db)
	q := db.Where("project_id = ?", projectID).Order("created_at DESC")
	if limit > 0 {
		q = q.Limit(limit)
	}

	var items []*entity.KnowledgeItem
	if err := q.Find(&items).Error; err != nil {
		span.RecordError(err)
		return nil, fmt.Errorf("failed to list knowledge items: %w", err)
	}
	return items, nil
}

// ExampleRepository 范例仓储实现
type ExampleRepository struct {
	client *Client
}

// NewExampleRepository 创建范例仓储
func NewExampleRepository(client *Client) *ExampleRepository {
	return &ExampleRepository{client: client}
}

func (r *ExampleRepository) Create(ctx context.Context, example *entity.Example) error {
	ctx, span := tracer.Start(ctx, "postgres.ExampleRepository.Create")
	defer span.End()

	db := getDB(ctx, r.client.db)
	if err := db.Create(example).Error; err != nil {
		span.RecordError(err)
		return fmt.Errorf("failed to create example: %w", err)
	}
	return nil
}

func (r *ExampleRepository) GetByID(ctx context.Context, id string) (*entity.Example, error) {
	ctx, span := tracer.Start(ctx, "postgres.ExampleRepository.GetByID")
	defer span.End()

	db := getDB(ctx, r.client.db)
	var example entity.Example
	if err := db.First(&example, "id = ?", id).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, nil
		}
		span.RecordError(err)
		return nil, fmt.Errorf("failed to get example: %w", err)
	}
	return &example, nil
}

// GetByIDs 批量获取，缺失的 ID 被跳过
func (r *ExampleRepository) GetByIDs(ctx context.Context, ids []string) ([]*entity.Example, error) {
	ctx, span := tracer.Start(ctx, "postgres.ExampleRepository.GetByIDs")
	defer span.End()

	if len(ids) == 0 {
		return nil, nil
	}

	db := getDB(ctx, r.client.db)
	var examples []*entity.Example
	if err := db.Where("id IN ?", ids).Find(&examples).Error; err != nil {
		span.RecordError(err)
		return nil, fmt.Errorf("failed to get examples: %w", err)
	}
	return examples, nil
}

func (r *ExampleRepository) Update(ctx context.Context, example *entity.Example) error {
	ctx, span := tracer.Start(ctx, "postgres.ExampleRepository.Update")
	defer span.End()

	db := getDB(ctx, r.client.db)
	if err := db.Save(example).Error; err != nil {
		span.RecordError(err)
		return fmt.Errorf("failed to update example: %w", err)
	}
	return nil
}

func (r *ExampleRepository) Delete(ctx context.Context, id string) error {
	ctx, span := tracer.Start(ctx, "postgres.ExampleRepository.Delete")
	defer span.End()

	db := getDB(ctx, r.client.db)
	if err := db.Delete(&entity.Example{}, "id = ?", id).Error; err != nil {
		span.RecordError(err)
		return fmt.Errorf("failed to delete example: %w", err)
	}
	return nil
}

// ListByCategory 按创建时间倒序返回类型下的范例
func (r *ExampleRepository) ListByCategory(ctx context.Context, categoryID string, limit int) ([]*entity.Example, error) {
	ctx, span := tracer.Start(ctx, "postgres.ExampleRepository.ListByCategory")
	defer span.End()

	db := getDB(ctx, r.client.db)
	q := db.Where("category_id = ?", categoryID).Order("created_at DESC")
	if limit > 0 {
		q = q.Limit(limit)
	}

	var examples []*entity.Example
	if err := q.Find(&examples).Error; err != nil {
		span.RecordError(err)
		return nil, fmt.Errorf("failed to list examples: %w", err)
	}
	return examples, nil
}

func (r *ExampleRepository) ListByProject(ctx context.Context, projectID string, limit int) ([]*entity.Example, error) {
	ctx, span := tracer.Start(ctx, "postgres.ExampleRepository.ListByProject")
	defer span.End()

	db := getDB(ctx, r.client.db)
	q := db.Where("project_id = ?", projectID).Order("created_at DESC")
	if limit > 0 {
		q = q.Limit(limit)
	}

	var examples []*entity.Example
	if err := q.Find(&examples).Error; err != nil {
		span.RecordError(err)
		return nil, fmt.Errorf("failed to list examples by project: %w", err)
	}
	return examples, nil
}

// UploadFileRepository 上传文件仓储实现
type UploadFileRepository struct {
	client *Client
}

// NewUploadFileRepository 创建上传文件仓储
func NewUploadFileRepository(client *Client) *UploadFileRepository {
	return &UploadFileRepository{client: client}
}

func (r *UploadFileRepository) Create(ctx context.Context, file *entity.UploadFile) error {
	ctx, span := tracer.Start(ctx, "postgres.UploadFileRepository.Create")
	defer span.End()

	db := getDB(ctx, r.client.db)
	if err := db.Create(file).Error; err != nil {
		span.RecordError(err)
		return fmt.Errorf("failed to create upload file: %w", err)
	}
	return nil
}

func (r *UploadFileRepository) GetByID(ctx context.Context, id string) (*entity.UploadFile, error) {
	ctx, span := tracer.Start(ctx, "postgres.UploadFileRepository.GetByID")
	defer span.End()

	db := getDB(ctx, r.client.db)
	var file entity.UploadFile
	if err := db.First(&file, "id = ?", id).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, nil
		}
		span.RecordError(err)
		return nil, fmt.Errorf("failed to get upload file: %w", err)
	}
	return &file, nil
}

// GetByIDs 批量获取，缺失的 ID 被跳过
func (r *UploadFileRepository) GetByIDs(ctx context.Context, ids []string) ([]*entity.UploadFile, error) {
	ctx, span := tracer.Start(ctx, "postgres.UploadFileRepository.GetByIDs")
	defer span.End()

	if len(ids) == 0 {
		return nil, nil
	}

	db := getDB(ctx, r.client.db)
	var files []*entity.UploadFile
	if err := db.Where("id IN ?", ids).Find(&files).Error; err != nil {
		span.RecordError(err)
		return nil, fmt.Errorf("failed to get upload files: %w", err)
	}
	return files, nil
}

func (r *UploadFileRepository) Delete(ctx context.Context, id string) error {
	ctx, span := tracer.Start(ctx, "postgres.UploadFileRepository.Delete")
	defer span.End()

	db := getDB(ctx, r.client.db)
	if err := db.Delete(&entity.UploadFile{}, "id = ?", id).Error; err != nil {
		span.RecordError(err)
		return fmt.Errorf("failed to delete upload file: %w", err)
	}
	return nil
}
