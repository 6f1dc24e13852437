// Package repository 定义数据访问层接口
package repository

import (
	"context"

	"contentforge-ai-api/internal/domain/entity"
)

// ContentPieceRepository 内容单元仓储接口
type ContentPieceRepository interface {
	Create(ctx context.Context, piece *entity.ContentPiece) error
	GetByID(ctx context.Context, id string) (*entity.ContentPiece, error)
	Update(ctx context.Context, piece *entity.ContentPiece) error
	Delete(ctx context.Context, id string) error
	ListByProject(ctx context.Context, projectID string, pagination Pagination) (*PagedResult[*entity.ContentPiece], error)
}

// ContentVersionRepository 内容版本仓储接口
type ContentVersionRepository interface {
	// Create 追加新版本
	Create(ctx context.Context, version *entity.ContentVersion) error

	// GetLatest 获取最新版本
	GetLatest(ctx context.Context, pieceID string) (*entity.ContentVersion, error)

	// GetByVersion 获取指定版本
	GetByVersion(ctx context.Context, pieceID string, version int) (*entity.ContentVersion, error)

	// ListByPiece 按版本号倒序列出
	ListByPiece(ctx context.Context, pieceID string, pagination Pagination) (*PagedResult[*entity.ContentVersion], error)
}

// ChatMessageRepository 对话消息仓储接口
type ChatMessageRepository interface {
	Create(ctx context.Context, message *entity.ChatMessage) error

	// ListByPiece 按时间正序返回内容单元下的对话历史
	ListByPiece(ctx context.Context, pieceID string, limit int) ([]*entity.ChatMessage, error)
}
