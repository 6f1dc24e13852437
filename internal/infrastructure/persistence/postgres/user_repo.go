// Package postgres 提供 PostgreSQL Repository 实现
package postgres

import (
	"context"
	"fmt"

	"gorm.io/gorm"

	"contentforge-ai-api/internal/domain/entity"
)

// UserRepository 用户仓储实现
type UserRepository struct {
	client *Client
}

// NewUserRepository 创建用户仓储
func NewUserRepository(client *Client) *UserRepository {
	return &UserRepository{client: client}
}

// Create 创建用户
func (r *UserRepository) Create(ctx context.Context, user *entity.User) error {
	ctx, span := tracer.Start(ctx, "postgres.UserRepository.Create")
	defer span.End()

	db := getDB(ctx, r.client.db)
	if err := db.Table("users").Create(user).Error; err != nil {
		span.RecordError(err)
		return fmt.Errorf("failed to create user: %w", err)
	}
	return nil
}

// GetByID 根据 ID 获取用户
func (r *UserRepository) GetByID(ctx context.Context, id string) (*entity.User, error) {
	ctx, span := tracer.Start(ctx, "postgres.UserRepository.GetByID")
	defer span.End()

	db := getDB(ctx, r.client.db)
	var user entity.User
	if err := db.Table("users").First(&user, "id = ?", id).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, nil
		}
		span.RecordError(err)
		return nil, fmt.Errorf("failed to get user: %w", err)
	}
	return &user, nil
}

// GetByEmail 根据邮箱获取用户
func (r *UserRepository) GetByEmail(ctx context.Context, email string) (*entity.User, error) {
	ctx, span := tracer.Start(ctx, "postgres.UserRepository.GetByEmail")
	defer span.End()

	db := getDB(ctx, r.client.db)
	var user entity.User
	if err := db.Table("users").First(&user, "email = ?", email).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, nil
		}
		span.RecordError(err)
		return nil, fmt.Errorf("failed to get user by email: %w", err)
	}
	return &user, nil
}

// Update 更新用户
func (r *UserRepository) Update(ctx context.Context, user *entity.User) error {
	ctx, span := tracer.Start(ctx, "postgres.UserRepository.Update")
	defer span.End()

	db := getDB(ctx, r.client.db)
	if err := db.Table("users").Save(user).Error; err != nil {
		span.RecordError(err)
		return fmt.Errorf("failed to update user: %w", err)
	}
	return nil
}
