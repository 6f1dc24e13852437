package billing

import (
	"context"
	"strings"

	"contentforge-ai-api/internal/domain/service"
	"contentforge-ai-api/internal/infrastructure/messaging"
	"contentforge-ai-api/pkg/logger"
	"contentforge-ai-api/pkg/metrics"
)

// Recorder 用量记录器，把用量事件投递到消息流，由 job-worker 结算入账
// best-effort 契约：投递失败只记日志，绝不向调用方传播
type Recorder struct {
	producer       *messaging.Producer
	costMultiplier float64
}

// NewRecorder 创建用量记录器
func NewRecorder(producer *messaging.Producer, costMultiplier float64) *Recorder {
	if costMultiplier <= 0 {
		costMultiplier = 1
	}
	return &Recorder{
		producer:       producer,
		costMultiplier: costMultiplier,
	}
}

var _ service.UsageRecorder = (*Recorder)(nil)

// Record 计算计费 token 并发布用量事件
func (r *Recorder) Record(ctx context.Context, in service.UsageInput) error {
	if r == nil || r.producer == nil {
		return nil
	}

	userID := strings.TrimSpace(in.UserID)
	if userID == "" {
		return nil
	}

	billable := in.FixedCost
	multiplier := 0.0
	if billable == 0 {
		billable = BillableTokens(in.PromptTokens, in.CompletionTokens, r.costMultiplier)
		multiplier = r.costMultiplier
	}

	event := &messaging.UsageEventMessage{
		WorkspaceID:    strings.TrimSpace(in.WorkspaceID),
		UserID:         userID,
		Operation:      strings.TrimSpace(in.Operation),
		Provider:       strings.TrimSpace(in.Provider),
		Model:          strings.TrimSpace(in.Model),
		InputTokens:    in.PromptTokens,
		OutputTokens:   in.CompletionTokens,
		BillableTokens: billable,
		Multiplier:     multiplier,
		DurationMs:     in.DurationMs,
		Success:        in.Success,
	}

	if _, err := r.producer.PublishUsageEvent(ctx, event); err != nil {
		metrics.BillingUsageRecorded.WithLabelValues(event.Operation, "publish_error").Inc()
		logger.FromContext(ctx).Error("failed to publish usage event",
			"error", err,
			"operation", event.Operation,
			"user_id", userID,
		)
		return nil
	}

	metrics.BillingUsageRecorded.WithLabelValues(event.Operation, "published").Inc()
	metrics.BillingTokensCharged.WithLabelValues(event.Operation).Add(float64(billable))
	return nil
}
