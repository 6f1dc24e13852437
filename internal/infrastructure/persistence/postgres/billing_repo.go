// Package postgres 提供 PostgreSQL Repository 实现
package postgres

import (
	"context"
	"fmt"
	"time"

	"gorm.io/gorm"

	"contentforge-ai-api/internal/domain/entity"
	"contentforge-ai-api/internal/domain/repository"
)

// BillingAccountRepository 预付费账户仓储实现
type BillingAccountRepository struct {
	client *Client
}

// NewBillingAccountRepository 创建账户仓储
func NewBillingAccountRepository(client *Client) *BillingAccountRepository {
	return &BillingAccountRepository{client: client}
}

func (r *BillingAccountRepository) Create(ctx context.Context, account *entity.BillingAccount) error {
	ctx, span := tracer.Start(ctx, "postgres.BillingAccountRepository.Create")
	defer span.End()

	db := getDB(ctx, r.client.db)
	if err := db.Create(account).Error; err != nil {
		span.RecordError(err)
		return fmt.Errorf("failed to create billing account: %w", err)
	}
	return nil
}

// GetByUserID 获取用户账户
func (r *BillingAccountRepository) GetByUserID(ctx context.Context, userID string) (*entity.BillingAccount, error) {
	ctx, span := tracer.Start(ctx, "postgres.BillingAccountRepository.GetByUserID")
	defer span.End()

	db := getDB(ctx, r.client.db)
	var account entity.BillingAccount
	if err := db.First(&account, "user_id = ?", userID).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, nil
		}
		span.RecordError(err)
		return nil, fmt.Errorf("failed to get billing account: %w", err)
	}
	return &account, nil
}

// Deduct 扣减余额
// 单条带条件的 UPDATE，允许透支为负：预检只是乐观闸门，事后结算必须如实入账
func (r *BillingAccountRepository) Deduct(ctx context.Context, userID string, tokens int64) error {
	ctx, span := tracer.Start(ctx, "postgres.BillingAccountRepository.Deduct")
	defer span.End()

	db := getDB(ctx, r.client.db)
	result := db.Model(&entity.BillingAccount{}).
		Where("user_id = ?", userID).
		Updates(map[string]interface{}{
			"balance":    gorm.Expr("balance - ?", tokens),
			"updated_at": time.Now(),
		})
	if result.Error != nil {
		span.RecordError(result.Error)
		return fmt.Errorf("failed to deduct balance: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return fmt.Errorf("failed to deduct balance: account not found for user %s", userID)
	}
	return nil
}

// TopUp 充值
func (r *BillingAccountRepository) TopUp(ctx context.Context, userID string, tokens int64) error {
	ctx, span := tracer.Start(ctx, "postgres.BillingAccountRepository.TopUp")
	defer span.End()

	db := getDB(ctx, r.client.db)
	result := db.Model(&entity.BillingAccount{}).
		Where("user_id = ?", userID).
		Updates(map[string]interface{}{
			"balance":    gorm.Expr("balance + ?", tokens),
			"updated_at": time.Now(),
		})
	if result.Error != nil {
		span.RecordError(result.Error)
		return fmt.Errorf("failed to top up balance: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return fmt.Errorf("failed to top up balance: account not found for user %s", userID)
	}
	return nil
}

// UsageRecordRepository 用量记录仓储实现
type UsageRecordRepository struct {
	client *Client
}

// NewUsageRecordRepository 创建用量记录仓储
func NewUsageRecordRepository(client *Client) *UsageRecordRepository {
	return &UsageRecordRepository{client: client}
}

func (r *UsageRecordRepository) Create(ctx context.Context, record *entity.UsageRecord) error {
	ctx, span := tracer.Start(ctx, "postgres.UsageRecordRepository.Create")
	defer span.End()

	db := getDB(ctx, r.client.db)
	if err := db.Create(record).Error; err != nil {
		span.RecordError(err)
		return fmt.Errorf("failed to create usage record: %w", err)
	}
	return nil
}

func (r *UsageRecordRepository) ListByUser(ctx context.Context, userID string, pagination repository.Pagination) (*repository.PagedResult[*entity.UsageRecord], error) {
	ctx, span := tracer.Start(ctx, "postgres.UsageRecordRepository.ListByUser")
	defer span.End()

	db := getDB(ctx, r.client.db)

	var total int64
	if err := db.Model(&entity.UsageRecord{}).Where("user_id = ?", userID).Count(&total).Error; err != nil {
		span.RecordError(err)
		return nil, fmt.Errorf("failed to count usage records: %w", err)
	}

	var records []*entity.UsageRecord
	if err := db.Where("user_id = ?", userID).
		Order("created_at DESC").
		Offset(pagination.Offset()).
		Limit(pagination.Limit()).
		Find(&records).Error; err != nil {
		span.RecordError(err)
		return nil, fmt.Errorf("failed to list usage records: %w", err)
	}

	return repository.NewPagedResult(records, total, pagination), nil
}

// GetTokenUsage 统计时间窗内的计费 token 总量
func (r *UsageRecordRepository) GetTokenUsage(ctx context.Context, workspaceID string, startInclusive, endExclusive time.Time) (int64, error) {
	ctx, span := tracer.Start(ctx, "postgres.UsageRecordRepository.GetTokenUsage")
	defer span.End()

	db := getDB(ctx, r.client.db)
	var total int64
	err := db.Model(&entity.UsageRecord{}).
		Select("COALESCE(SUM(billable_tokens), 0)").
		Where("workspace_id = ? AND created_at >= ? AND created_at < ?", workspaceID, startInclusive, endExclusive).
		Scan(&total).Error
	if err != nil {
		span.RecordError(err)
		return 0, fmt.Errorf("failed to get token usage: %w", err)
	}
	return total, nil
}

// GeneratedImageRepository 生成图片仓储实现
type GeneratedImageRepository struct {
	client *Client
}

// NewGeneratedImageRepository 创建生成图片仓储
func NewGeneratedImageRepository(client *Client) *GeneratedImageRepository {
	return &GeneratedImageRepository{client: client}
}

func (r *GeneratedImageRepository) Create(ctx context.Context, image *entity.GeneratedImage) error {
	ctx, span := tracer.Start(ctx, "postgres.GeneratedImageRepository.Create")
	defer span.End()

	db := getDB(ctx, r.client.db)
	if err := db.Create(image).Error; err != nil {
		span.RecordError(err)
		return fmt.Errorf("failed to create generated image: %w", err)
	}
	return nil
}

func (r *GeneratedImageRepository) GetByID(ctx context.Context, id string) (*entity.GeneratedImage, error) {
	ctx, span := tracer.Start(ctx, "postgres.GeneratedImageRepository.GetByID")
	defer span.End()

	db := getDB(ctx, r.client.db)
	var image entity.GeneratedImage
	if err := db.First(&image, "id = ?", id).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, nil
		}
		span.RecordError(err)
		return nil, fmt.Errorf("failed to get generated image: %w", err)
	}
	return &image, nil
}

func (r *GeneratedImageRepository) Update(ctx context.Context, image *entity.GeneratedImage) error {
	ctx, span := tracer.Start(ctx, "postgres.GeneratedImageRepository.Update")
	defer span.End()

	db := getDB(ctx, r.client.db)
	if err := db.Save(image).Error; err != nil {
		span.RecordError(err)
		return fmt.Errorf("failed to update generated image: %w", err)
	}
	return nil
}

func (r *GeneratedImageRepository) ListByUser(ctx context.Context, userID string, pagination repository.Pagination) (*repository.PagedResult[*entity.GeneratedImage], error) {
	ctx, span := tracer.Start(ctx, "postgres.GeneratedImageRepository.ListByUser")
	defer span.End()

	db := getDB(ctx, r.client.db)

	var total int64
	if err := db.Model(&entity.GeneratedImage{}).Where("user_id = ?", userID).Count(&total).Error; err != nil {
		span.RecordError(err)
		return nil, fmt.Errorf("failed to count generated images: %w", err)
	}

	var images []*entity.GeneratedImage
	if err := db.Where("user_id = ?", userID).
		Order("created_at DESC").
		Offset(pagination.Offset()).
		Limit(pagination.Limit()).
		Find(&images).Error; err != nil {
		span.RecordError(err)
		return nil, fmt.Errorf("failed to list generated images: %w", err)
	}

	return repository.NewPagedResult(images, total, pagination), nil
}
