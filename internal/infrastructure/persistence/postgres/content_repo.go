// Package postgres 提供 PostgreSQL Repository 实现
package postgres

import (
	"context"
	"fmt"

	"gorm.io/gorm"

	"contentforge-ai-api/internal/domain/entity"
	"contentforge-ai-api/internal/domain/repository"
)

// ContentPieceRepository 内容单元仓储实现
type ContentPieceRepository struct {
	client *Client
}

// NewContentPieceRepository 创建内容单元仓储
func NewContentPieceRepository(client *Client) *ContentPieceRepository {
	return &ContentPieceRepository{client: client}
}

func (r *ContentPieceRepository) Create(ctx context.Context, piece *entity.ContentPiece) error {
	ctx, span := tracer.Start(ctx, "postgres.ContentPieceRepository.Create")
	defer span.End()

	db := getDB(ctx, r.client.db)
	if err := db.Create(piece).Error; err != nil {
		span.RecordError(err)
		return fmt.Errorf("failed to create content piece: %w", err)
	}
	return nil
}

func (r *ContentPieceRepository) GetByID(ctx context.Context, id string) (*entity.ContentPiece, error) {
	ctx, span := tracer.Start(ctx, "postgres.ContentPieceRepository.GetByID")
	defer span.End()

	db := getDB(ctx, r.client.db)
	var piece entity.ContentPiece
	if err := db.First(&piece, "id = ?", id).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, nil
		}
		span.RecordError(err)
		return nil, fmt.Errorf("failed to get content piece: %w", err)
	}
	return &piece, nil
}

func (r *ContentPieceRepository) Update(ctx context.Context, piece *entity.ContentPiece) error {
	ctx, span := tracer.Start(ctx, "postgres.ContentPieceRepository.Update")
	defer span.End()

	db := getDB(ctx, r.client.db)
	if err := db.Save(piece).Error; err != nil {
		span.RecordError(err)
		return fmt.Errorf("failed to update content piece: %w", err)
	}
	return nil
}

func (r *ContentPieceRepository) Delete(ctx context.Context, id string) error {
	ctx, span := tracer.Start(ctx, "postgres.ContentPieceRepository.Delete")
	defer span.End()

	db := getDB(ctx, r.client.db)
	if err := db.Delete(&entity.ContentPiece{}, "id = ?", id).Error; err != nil {
		span.RecordError(err)
		return fmt.Errorf("failed to delete content piece: %w", err)
	}
	return nil
}

func (r *ContentPieceRepository) ListByProject(ctx context.Context, projectID string, pagination repository.Pagination) (*repository.PagedResult[*entity.ContentPiece], error) {
	ctx, span := tracer.Start(ctx, "postgres.ContentPieceRepository.ListByProject")
	defer span.End()

	db := getDB(ctx, r.client.db)

	var total int64
	if err := db.Model(&entity.ContentPiece{}).Where("project_id = ?", projectID).Count(&total).Error; err != nil {
		span.RecordError(err)
		return nil, fmt.Errorf("failed to count content pieces: %w", err)
	}

	var pieces []*entity.ContentPiece
	if err := db.Where("project_id = ?", projectID).
		Order("updated_at DESC").
		Offset(pagination.Offset()).
		Limit(pagination.Limit()).
		Find(&pieces).Error; err != nil {
		span.RecordError(err)
		return nil, fmt.Errorf("failed to list content pieces: %w", err)
	}

	return repository.NewPagedResult(pieces, total, pagination), nil
}

// ContentVersionRepository 内容版本仓储实现
type ContentVersionRepository struct {
	client *Client
}

// NewContentVersionRepository 创建内容版本仓储
func NewContentVersionRepository(client *Client) *ContentVersionRepository {
	return &ContentVersionRepository{client: client}
}

// Create 追加新版本
func (r *ContentVersionRepository) Create(ctx context.Context, version *entity.ContentVersion) error {
	ctx, span := tracer.Start(ctx, "postgres.ContentVersionRepository.Create")
	defer span.End()

	db := getDB(ctx, r.client.db)
	if err := db.Create(version).Error; err != nil {
		span.RecordError(err)
		return fmt.Errorf("failed to create content version: %w", err)
	}
	return nil
}

// GetLatest 获取最新版本
func (r *ContentVersionRepository) GetLatest(ctx context.Context, pieceID string) (*entity.ContentVersion, error) {
	ctx, span := tracer.Start(ctx, "postgres.ContentVersionRepository.GetLatest")
	defer span.End()

	db := getDB(ctx, r.client.db)
	var version entity.ContentVersion
	if err := db.Where("content_piece_id = ?", pieceID).
		Order("version DESC").
		First(&version).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, nil
		}
		span.RecordError(err)
		return nil, fmt.Errorf("failed to get latest content version: %w", err)
	}
	return &version, nil
}

// GetByVersion 获取指定版本
func (r *ContentVersionRepository) GetByVersion(ctx context.Context, pieceID string, versionNum int) (*entity.ContentVersion, error) {
	ctx, span := tracer.Start(ctx, "postgres.ContentVersionRepository.GetByVersion")
	defer span.End()

	db := getDB(ctx, r.client.db)
	var version entity.ContentVersion
	if err := db.Where("content_piece_id = ? AND version = ?", pieceID, versionNum).
		First(&version).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, nil
		}
		span.RecordError(err)
		return nil, fmt.Errorf("failed to get content version: %w", err)
	}
	return &version, nil
}

// ListByPiece 按版本号倒序列出
func (r *ContentVersionRepository) ListByPiece(ctx context.Context, pieceID string, pagination repository.Pagination) (*repository.PagedResult[*entity.ContentVersion], error) {
	ctx, span := tracer.Start(ctx, "postgres.ContentVersionRepository.ListByPiece")
	defer span.End()

	db := getDB(ctx, r.client.db)

	var total int64
	if err := db.Model(&entity.ContentVersion{}).Where("content_piece_id = ?", pieceID).Count(&total).Error; err != nil {
		span.RecordError(err)
		return nil, fmt.Errorf("failed to count content versions: %w", err)
	}

	var versions []*entity.ContentVersion
	if err := db.Where("content_piece_id = ?", pieceID).
		Order("version DESC").
		Offset(pagination.Offset()).
		Limit(pagination.Limit()).
		Find(&versions).Error; err != nil {
		span.RecordError(err)
		return nil, fmt.Errorf("failed to list content versions: %w", err)
	}

	return repository.NewPagedResult(versions, total, pagination), nil
}

// ChatMessageRepository 对话消息仓储实现
type ChatMessageRepository struct {
	client *Client
}

// NewChatMessageRepository 创建对话消息仓储
func NewChatMessageRepository(client *Client) *ChatMessageRepository {
	return &ChatMessageRepository{client: client}
}

func (r *ChatMessageRepository) Create(ctx context.Context, message *entity.ChatMessage) error {
	ctx, span := tracer.Start(ctx, "postgres.ChatMessageRepository.Create")
	defer span.End()

	db := getDB(ctx, r.client.db)
	if err := db.Create(message).Error; err != nil {
		span.RecordError(err)
		return fmt.Errorf("failed to create chat message: %w", err)
	}
	return nil
}

// ListByPiece 按时间正序返回内容单元下的对话历史
// limit > 0 时取最近的 limit 条，而不是最早的
func (r *ChatMessageRepository) ListByPiece(ctx context.Context, pieceID string, limit int) ([]*entity.ChatMessage, error) {
	ctx, span := tracer.Start(ctx, "postgres.ChatMessageRepository.ListByPiece")
	defer span.End()

	db := getDB(ctx, r.client.db)
	q := db.Where("content_piece_id = ?", pieceID)
	if limit > 0 {
		// 先倒序截取最近 limit 条，再翻回正序
		q = q.Order("created_at DESC").Limit(limit)
	} else {
		q = q.Order("created_at ASC")
	}

	var messages []*entity.ChatMessage
	if err := q.Find(&messages).Error; err != nil {
		span.RecordError(err)
		return nil, fmt.Errorf("failed to list chat messages: %w", err)
	}
	if limit > 0 {
		reverseChronological(messages)
	}
	return messages, nil
}

// reverseChronological 把倒序查询结果原地翻转为时间正序
func reverseChronological(messages []*entity.ChatMessage) {
	for i, j := 0, len(messages)-1; i < j; i, j = i+1, j-1 {
		messages[i], messages[j] = messages[j], messages[i]
	}
}
