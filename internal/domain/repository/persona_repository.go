// Package repository 定义数据访问层接口
package repository

import (
	"context"

	"contentforge-ai-api/internal/domain/entity"
)

// PersonaRepository 受众画像仓储接口
type PersonaRepository interface {
	Create(ctx context.Context, persona *entity.Persona) error
	GetByID(ctx context.Context, id string) (*entity.Persona, error)
	Update(ctx context.Context, persona *entity.Persona) error
	Delete(ctx context.Context, id string) error
	ListByProject(ctx context.Context, projectID string) ([]*entity.Persona, error)
}

// BrandVoiceRepository 品牌语气仓储接口
type BrandVoiceRepository interface {
	Create(ctx context.Context, voice *entity.BrandVoice) error
	GetByID(ctx context.Context, id string) (*entity.BrandVoice, error)
	Update(ctx context.Context, voice *entity.BrandVoice) error
	Delete(ctx context.Context, id string) error
	ListByProject(ctx context.Context, projectID string) ([]*entity.BrandVoice, error)
}
