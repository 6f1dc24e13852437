package billing

import (
	"context"
	"fmt"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"

	"contentforge-ai-api/internal/domain/repository"
	"contentforge-ai-api/internal/domain/service"
	apperrors "contentforge-ai-api/pkg/errors"
	"contentforge-ai-api/pkg/metrics"
)

var tracer = otel.Tracer("billing")

// Checker 余额预检
// 预检与实际调用不构成事务：用户可能在两者之间耗尽余额
// 这是接受的竞态而非缺陷，实际用量只按真实消耗事后结算
type Checker struct {
	accounts repository.BillingAccountRepository
}

// NewChecker 创建余额预检器
func NewChecker(accounts repository.BillingAccountRepository) *Checker {
	return &Checker{accounts: accounts}
}

// CheckBalance 校验用户余额是否覆盖预估用量
// 不足时返回携带当前余额与缺口的 insufficient-balance 错误
func (c *Checker) CheckBalance(ctx context.Context, userID string, requiredTokens int64) error {
	ctx, span := tracer.Start(ctx, "billing.CheckBalance",
		trace.WithAttributes(
			attribute.String("user_id", userID),
			attribute.Int64("required_tokens", requiredTokens),
		))
	defer span.End()

	account, err := c.accounts.GetByUserID(ctx, userID)
	if err != nil {
		span.RecordError(err)
		return fmt.Errorf("failed to check balance: %w", err)
	}

	var balance int64
	if account != nil {
		balance = account.Balance
	}
	span.SetAttributes(attribute.Int64("balance", balance))

	if balance < requiredTokens {
		metrics.BillingBalanceRejections.WithLabelValues(service.OperationFromContext(ctx)).Inc()
		return apperrors.NewInsufficientBalance(balance, requiredTokens)
	}
	return nil
}
