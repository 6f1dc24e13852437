package billing

import (
	"context"
	"fmt"

	"contentforge-ai-api/internal/domain/entity"
	"contentforge-ai-api/internal/domain/repository"
	apperrors "contentforge-ai-api/pkg/errors"
)

// Service 账户查询与充值
type Service struct {
	accounts repository.BillingAccountRepository
	usage    repository.UsageRecordRepository
}

// NewService 创建计费查询服务
func NewService(accounts repository.BillingAccountRepository, usage repository.UsageRecordRepository) *Service {
	return &Service{accounts: accounts, usage: usage}
}

// GetAccount 获取用户账户
func (s *Service) GetAccount(ctx context.Context, userID string) (*entity.BillingAccount, error) {
	account, err := s.accounts.GetByUserID(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to get billing account: %w", err)
	}
	if account == nil {
		return nil, apperrors.New(apperrors.CodeNotFound, "billing account not found")
	}
	return account, nil
}

// ListUsage 分页查询用量流水
func (s *Service) ListUsage(ctx context.Context, userID string, pagination repository.Pagination) (*repository.PagedResult[*entity.UsageRecord], error) {
	return s.usage.ListByUser(ctx, userID, pagination)
}

// TopUp 充值
func (s *Service) TopUp(ctx context.Context, userID string, tokens int64) error {
	if tokens <= 0 {
		return apperrors.New(apperrors.CodeInvalidParam, "top-up amount must be positive")
	}
	return s.accounts.TopUp(ctx, userID, tokens)
}
