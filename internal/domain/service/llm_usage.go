package service

import "context"

// UsageInput 表示一次 AI 调用的可计费与可观测数据。
// 说明：该结构位于 domain/service，作为跨层的稳定契约（port），避免基础设施层依赖应用层实现。
type UsageInput struct {
	WorkspaceID string
	UserID      string

	Operation string
	Provider  string
	Model     string

	PromptTokens     int
	CompletionTokens int
	DurationMs       int

	// FixedCost 非零时按固定费用计费（图片生成），忽略 token 乘数
	FixedCost int64
	Success   bool
}

// UsageRecorder 负责记录 AI 使用量（扣费 + 流水落库等）。
// 约定：该接口的实现应尽量“best-effort”，不应阻塞主业务流程。
type UsageRecorder interface {
	Record(ctx context.Context, in UsageInput) error
}
