// Package repository 定义数据访问层接口
package repository

import (
	"context"
	"time"

	"contentforge-ai-api/internal/domain/entity"
)

// BillingAccountRepository 预付费账户仓储接口
type BillingAccountRepository interface {
	Create(ctx context.Context, account *entity.BillingAccount) error

	// GetByUserID 获取用户账户
	GetByUserID(ctx context.Context, userID string) (*entity.BillingAccount, error)

	// Deduct 扣减余额，余额允许透支为负
	// 预检已在调用方完成，这里只做准确的事后结算
	Deduct(ctx context.Context, userID string, tokens int64) error

	// TopUp 充值
	TopUp(ctx context.Context, userID string, tokens int64) error
}

// UsageRecordRepository 用量记录仓储接口
type UsageRecordRepository interface {
	Create(ctx context.Context, record *entity.UsageRecord) error

	ListByUser(ctx context.Context, userID string, pagination Pagination) (*PagedResult[*entity.UsageRecord], error)

	// GetTokenUsage 统计时间窗内的计费 token 总量
	GetTokenUsage(ctx context.Context, workspaceID string, startInclusive, endExclusive time.Time) (int64, error)
}

// GeneratedImageRepository 生成图片仓储接口
type GeneratedImageRepository interface {
	Create(ctx context.Context, image *entity.GeneratedImage) error
	GetByID(ctx context.Context, id string) (*entity.GeneratedImage, error)
	Update(ctx context.Context, image *entity.GeneratedImage) error
	ListByUser(ctx context.Context, userID string, pagination Pagination) (*PagedResult[*entity.GeneratedImage], error)
}
