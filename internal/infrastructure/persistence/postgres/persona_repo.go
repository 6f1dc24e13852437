// Package postgres 提供 PostgreSQL Repository 实现
package postgres

import (
	"context"
	"fmt"

	"gorm.io/gorm"

	"contentforge-ai-api/internal/domain/entity"
)

// PersonaRepository 受众画像仓储实现
type PersonaRepository struct {
	client *Client
}

// NewPersonaRepository 创建受众画像仓储
func NewPersonaRepository(client *Client) *PersonaRepository {
	return &PersonaRepository{client: client}
}

func (r *PersonaRepository) Create(ctx context.Context, persona *entity.Persona) error {
	ctx, span := tracer.Start(ctx, "postgres.PersonaRepository.Create")
	defer span.End()

	db := getDB(ctx, r.client.db)
	if err := db.Create(persona).Error; err != nil {
		span.RecordError(err)
		return fmt.Errorf("failed to create persona: %w", err)
	}
	return nil
}

func (r *PersonaRepository) GetByID(ctx context.Context, id string) (*entity.Persona, error) {
	ctx, span := tracer.Start(ctx, "postgres.PersonaRepository.GetByID")
	defer span.End()

	db := getDB(ctx, r.client.db)
	var persona entity.Persona
	if err := db.First(&persona, "id = ?", id).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, nil
		}
		span.RecordError(err)
		return nil, fmt.Errorf("failed to get persona: %w", err)
	}
	return &persona, nil
}

func (r *PersonaRepository) Update(ctx context.Context, persona *entity.Persona) error {
	ctx, span := tracer.Start(ctx, "postgres.PersonaRepository.Update")
	defer span.End()

	db := getDB(ctx, r.client.db)
	if err := db.Save(persona).Error; err != nil {
		span.RecordError(err)
		return fmt.Errorf("failed to update persona: %w", err)
	}
	return nil
}

func (r *PersonaRepository) Delete(ctx context.Context, id string) error {
	ctx, span := tracer.Start(ctx, "postgres.PersonaRepository.Delete")
	defer span.End()

	db := getDB(ctx, r.client.db)
	if err := db.Delete(&entity.Persona{}, "id = ?", id).Error; err != nil {
		span.RecordError(err)
		return fmt.Errorf("failed to delete persona: %w", err)
	}
	return nil
}

func (r *PersonaRepository) ListByProject(ctx context.Context, projectID string) ([]*entity.Persona, error) {
	ctx, span := tracer.Start(ctx, "postgres.PersonaRepository.ListByProject")
	defer span.End()

	db := getDB(ctx, r.client.db)
	var personas []*entity.Persona
	if err := db.Where("project_id = ?", projectID).
		Order("created_at ASC").
		Find(&personas).Error; err != nil {
		span.RecordError(err)
		return nil, fmt.Errorf("failed to list personas: %w", err)
	}
	return personas, nil
}

// BrandVoiceRepository 品牌语气仓储实现
type BrandVoiceRepository struct {
	client *Client
}

// NewBrandVoiceRepository 创建品牌语气仓储
func NewBrandVoiceRepository(client *Client) *BrandVoiceRepository {
	return &BrandVoiceRepository{client: client}
}

func (r *BrandVoiceRepository) Create(ctx context.Context, voice *entity.BrandVoice) error {
	ctx, span := tracer.Start(ctx, "postgres.BrandVoiceRepository.Create")
	defer span.End()

	db := getDB(ctx, r.client.db)
	if err := db.Create(voice).Error; err != nil {
		span.RecordError(err)
		return fmt.Errorf("failed to create brand voice: %w", err)
	}
	return nil
}

func (r *BrandVoiceRepository) GetByID(ctx context.Context, id string) (*entity.BrandVoice, error) {
	ctx, span := tracer.Start(ctx, "postgres.BrandVoiceRepository.GetByID")
	defer span.End()

	db := getDB(ctx, r.client.db)
	var voice entity.BrandVoice
	if err := db.First(&voice, "id = ?", id).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, nil
		}
		span.RecordError(err)
		return nil, fmt.Errorf("failed to get brand voice: %w", err)
	}
	return &voice, nil
}

func (r *BrandVoiceRepository) Update(ctx context.Context, voice *entity.BrandVoice) error {
	ctx, span := tracer.Start(ctx, "postgres.BrandVoiceRepository.Update")
	defer span.End()

	db := getDB(ctx, r.client.db)
	if err := db.Save(voice).Error; err != nil {
		span.RecordError(err)
		return fmt.Errorf("failed to update brand voice: %w", err)
	}
	return nil
}

func (r *BrandVoiceRepository) Delete(ctx context.Context, id string) error {
	ctx, span := tracer.Start(ctx, "postgres.BrandVoiceRepository.Delete")
	defer span.End()

	db := getDB(ctx, r.client.db)
	if err := db.Delete(&entity.BrandVoice{}, "id = ?", id).Error; err != nil {
		span.RecordError(err)
		return fmt.Errorf("failed to delete brand voice: %w", err)
	}
	return nil
}

func (r *BrandVoiceRepository) ListByProject(ctx context.Context, projectID string) ([]*entity.BrandVoice, error) {
	ctx, span := tracer.Start(ctx, "postgres.BrandVoiceRepository.ListByProject")
	defer span.End()

	db := getDB(ctx, r.client.db)
	var voices []*entity.BrandVoice
	if err := db.Where("project_id = ?", projectID).
		Order("created_at ASC").
		Find(&voices).Error; err != nil {
		span.RecordError(err)
		return nil, fmt.Errorf("failed to list brand voices: %w", err)
	}
	return voices, nil
}
