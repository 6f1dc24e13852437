// Package generation 编排内容生成操作：组装上下文、构建提示词、执行模型、记录用量
package generation

import (
	"context"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"

	"contentforge-ai-api/internal/application/billing"
	"contentforge-ai-api/internal/application/generation/contextrepo"
	"contentforge-ai-api/internal/application/generation/executor"
	"contentforge-ai-api/internal/application/generation/prompt"
	"contentforge-ai-api/internal/domain/service"
	"contentforge-ai-api/pkg/logger"
	"contentforge-ai-api/pkg/metrics"
)

var tracer = otel.Tracer("generation")

// ExecResult 一次操作的执行结果
type ExecResult struct {
	Text     string
	Usage    *executor.TokenUsage
	Provider string
	Model    string
}

// Hooks 单个操作接入管线的回调集合
// 六种操作共享同一条固定控制流，差异只体现在各回调的实现上
type Hooks struct {
	// Operation 操作名，用于指标、日志和用户文案
	Operation string

	// WorkspaceID / UserID 归属信息，用于用量记录
	WorkspaceID string
	UserID      string

	// ValidateInput 输入校验，可为 nil
	ValidateInput func(ctx context.Context) error

	// FetchData 加载操作特有的实体数据
	FetchData func(ctx context.Context) error

	// AssembleContext 组装生成上下文，nil 时使用空上下文
	AssembleContext func(ctx context.Context) (*contextrepo.GenerationContext, error)

	// BuildPrompts 渲染提示词
	BuildPrompts func(ctx context.Context, gc *contextrepo.GenerationContext) (*prompt.PromptPair, error)

	// BeforeExecute 执行前回调（例如落盘渲染后的提示词），可为 nil
	BeforeExecute func(ctx context.Context, pair *prompt.PromptPair) error

	// Execute 调用执行器，流式或非流式
	Execute func(ctx context.Context, pair *prompt.PromptPair) (*ExecResult, error)

	// FormatOutput 结果后处理（例如持久化新版本），可为 nil
	FormatOutput func(ctx context.Context, res *ExecResult) error
}

// Pipeline 生成操作管线
// 固定步骤：校验 → 取数 → 组装上下文 → 构建提示词 → 余额预检 → 执行前回调 → 执行 → 记录用量 → 结果后处理
// 余额预检不足时在任何模型调用之前失败；用量记录 fire-and-forget
type Pipeline struct {
	checker            *billing.Checker
	recorder           service.UsageRecorder
	estimateMultiplier float64
}

// NewPipeline 创建管线
func NewPipeline(checker *billing.Checker, recorder service.UsageRecorder, estimateMultiplier float64) *Pipeline {
	return &Pipeline{
		checker:            checker,
		recorder:           recorder,
		estimateMultiplier: estimateMultiplier,
	}
}

// Run 按固定步骤执行一次操作
func (p *Pipeline) Run(ctx context.Context, hooks *Hooks) (*ExecResult, error) {
	ctx = service.WithOperation(ctx, hooks.Operation)

	ctx, span := tracer.Start(ctx, "generation."+hooks.Operation,
		trace.WithAttributes(attribute.String("operation", hooks.Operation)))
	defer span.End()

	start := time.Now()
	res, err := p.run(ctx, hooks)

	provider := "unknown"
	if res != nil && res.Provider != "" {
		provider = res.Provider
	}
	status := "success"
	if err != nil {
		status = "error"
		span.RecordError(err)
	}
	span.SetAttributes(attribute.String("llm.provider", provider))
	metrics.GenerationTotal.WithLabelValues(hooks.Operation, provider, status).Inc()
	metrics.GenerationDuration.WithLabelValues(hooks.Operation, provider).Observe(time.Since(start).Seconds())

	return res, err
}

func (p *Pipeline) run(ctx context.Context, hooks *Hooks) (*ExecResult, error) {
	if hooks.ValidateInput != nil {
		if err := hooks.ValidateInput(ctx); err != nil {
			return nil, err
		}
	}

	if err := hooks.FetchData(ctx); err != nil {
		return nil, err
	}

	gc := &contextrepo.GenerationContext{}
	if hooks.AssembleContext != nil {
		assembled, err := hooks.AssembleContext(ctx)
		if err != nil {
			return nil, err
		}
		if assembled != nil {
			gc = assembled
		}
	}

	pair, err := hooks.BuildPrompts(ctx, gc)
	if err != nil {
		return nil, err
	}

	// 乐观预检：余额不足则在任何模型调用前失败
	promptTokens := billing.EstimateTokens(pair.System + pair.User)
	required := billing.EstimateRequiredTokens(promptTokens, p.estimateMultiplier)
	if err := p.checker.CheckBalance(ctx, hooks.UserID, required); err != nil {
		return nil, err
	}

	if hooks.BeforeExecute != nil {
		if err := hooks.BeforeExecute(ctx, pair); err != nil {
			return nil, err
		}
	}

	execStart := time.Now()
	res, execErr := hooks.Execute(ctx, pair)
	durationMs := int(time.Since(execStart).Milliseconds())

	// 事后结算按真实消耗如实入账，与预检是否精确无关
	p.trackUsage(ctx, hooks, res, durationMs, execErr == nil)

	if execErr != nil {
		return nil, execErr
	}

	if hooks.FormatOutput != nil {
		if err := hooks.FormatOutput(ctx, res); err != nil {
			return nil, err
		}
	}

	return res, nil
}

// trackUsage 异步记录用量，失败只记日志
func (p *Pipeline) trackUsage(ctx context.Context, hooks *Hooks, res *ExecResult, durationMs int, success bool) {
	if p.recorder == nil || res == nil || res.Usage == nil {
		return
	}

	in := service.UsageInput{
		WorkspaceID:      hooks.WorkspaceID,
		UserID:           hooks.UserID,
		Operation:        hooks.Operation,
		Provider:         res.Provider,
		Model:            res.Model,
		PromptTokens:     res.Usage.InputTokens,
		CompletionTokens: res.Usage.OutputTokens,
		DurationMs:       durationMs,
		Success:          success,
	}

	bg := context.WithoutCancel(ctx)
	go func() {
		defer func() {
			if r := recover(); r != nil {
				logger.FromContext(bg).Error("usage recording panicked", "panic", r)
			}
		}()
		_ = p.recorder.Record(bg, in)
	}()
}
