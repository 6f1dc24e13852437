// Package executor 封装对 LLM 提供商的统一流式与非流式调用
package executor

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/cloudwego/eino/components/model"
	"github.com/cloudwego/eino/schema"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"

	"contentforge-ai-api/internal/application/generation/prompt"
	"contentforge-ai-api/internal/domain/entity"
	"contentforge-ai-api/pkg/metrics"
)

var tracer = otel.Tracer("executor")

// ChatModelFactory 应用层对 LLM ChatModel 的最小依赖（port）
// 由基础设施层提供具体实现（例如 EinoFactory）
type ChatModelFactory interface {
	Get(ctx context.Context, name string) (model.BaseChatModel, error)
}

// TokenUsage 一次调用的 token 用量
type TokenUsage struct {
	InputTokens  int `json:"input_tokens"`
	OutputTokens int `json:"output_tokens"`
}

// Total 总 token 数
func (u TokenUsage) Total() int {
	return u.InputTokens + u.OutputTokens
}

// Options 单次调用的提供商与采样参数，来自项目 AI 配置
type Options struct {
	Provider    string
	Model       string
	Temperature *float32
	MaxTokens   *int
}

// ChunkHandler 流式输出回调，返回 error 时中断消费
type ChunkHandler func(chunk string, index int) error

// Executor AI 执行器，除已解析的模型外不持有跨调用状态
type Executor struct {
	factory ChatModelFactory
}

// NewExecutor 创建执行器
func NewExecutor(factory ChatModelFactory) *Executor {
	return &Executor{factory: factory}
}

// Stream 流式生成，逐块回调，返回完整文本与最终用量
func (e *Executor) Stream(ctx context.Context, pair *prompt.PromptPair, opts *Options, onChunk ChunkHandler) (string, *TokenUsage, error) {
	msgs := []*schema.Message{
		schema.SystemMessage(pair.System),
		schema.UserMessage(pair.User),
	}
	return e.stream(ctx, msgs, opts, onChunk)
}

// StreamChat 携带多轮历史的流式生成
func (e *Executor) StreamChat(ctx context.Context, system string, history []prompt.ChatTurn, userMessage string, opts *Options, onChunk ChunkHandler) (string, *TokenUsage, error) {
	msgs := make([]*schema.Message, 0, len(history)+2)
	msgs = append(msgs, schema.SystemMessage(system))
	for _, turn := range history {
		switch turn.Role {
		case entity.RoleAssistant:
			msgs = append(msgs, schema.AssistantMessage(turn.Content, nil))
		default:
			msgs = append(msgs, schema.UserMessage(turn.Content))
		}
	}
	msgs = append(msgs, schema.UserMessage(userMessage))
	return e.stream(ctx, msgs, opts, onChunk)
}

// Generate 非流式单次生成
func (e *Executor) Generate(ctx context.Context, pair *prompt.PromptPair, opts *Options) (string, *TokenUsage, error) {
	if e == nil || e.factory == nil {
		return "", nil, newConfigError(fmt.Errorf("llm factory not configured"))
	}

	ctx, span := tracer.Start(ctx, "executor.Generate",
		trace.WithAttributes(
			attribute.String("llm.provider", opts.Provider),
			attribute.String("llm.model", opts.Model),
		))
	defer span.End()

	chatModel, err := e.factory.Get(ctx, opts.Provider)
	if err != nil {
		span.RecordError(err)
		return "", nil, newConfigError(err)
	}

	msgs := []*schema.Message{
		schema.SystemMessage(pair.System),
		schema.UserMessage(pair.User),
	}

	start := time.Now()
	outMsg, err := chatModel.Generate(ctx, msgs, buildModelOptions(opts)...)
	e.observeCall(opts, start, err)
	if err != nil {
		span.RecordError(err)
		return "", nil, translateProviderError(err)
	}
	if outMsg == nil {
		return "", nil, translateProviderError(fmt.Errorf("empty llm response"))
	}

	usage := usageFromMeta(outMsg.ResponseMeta)
	e.observeTokens(opts, usage)
	return outMsg.Content, usage, nil
}

// stream 消费 Eino StreamReader，逐块回调并累积最终结果
// 约定：流可能在最后返回一个 Content 为空但包含 Usage 的消息，用于 Token 统计
func (e *Executor) stream(ctx context.Context, msgs []*schema.Message, opts *Options, onChunk ChunkHandler) (string, *TokenUsage, error) {
	if e == nil || e.factory == nil {
		return "", nil, newConfigError(fmt.Errorf("llm factory not configured"))
	}

	ctx, span := tracer.Start(ctx, "executor.Stream",
		trace.WithAttributes(
			attribute.String("llm.provider", opts.Provider),
			attribute.String("llm.model", opts.Model),
		))
	defer span.End()

	chatModel, err := e.factory.Get(ctx, opts.Provider)
	if err != nil {
		span.RecordError(err)
		return "", nil, newConfigError(err)
	}

	start := time.Now()
	reader, err := chatModel.Stream(ctx, msgs, buildModelOptions(opts)...)
	if err != nil {
		e.observeCall(opts, start, err)
		span.RecordError(err)
		return "", nil, translateProviderError(err)
	}
	defer reader.Close()

	var full strings.Builder
	usage := &TokenUsage{}
	index := 0

	for {
		msg, recvErr := reader.Recv()
		if recvErr != nil {
			if errors.Is(recvErr, io.EOF) {
				break
			}
			e.observeCall(opts, start, recvErr)
			span.RecordError(recvErr)
			return full.String(), usage, translateProviderError(recvErr)
		}
		if msg == nil {
			continue
		}

		if msg.ResponseMeta != nil && msg.ResponseMeta.Usage != nil {
			usage.InputTokens = msg.ResponseMeta.Usage.PromptTokens
			usage.OutputTokens = msg.ResponseMeta.Usage.CompletionTokens
		}

		if msg.Content == "" {
			continue
		}

		full.WriteString(msg.Content)
		if onChunk != nil {
			if cbErr := onChunk(msg.Content, index); cbErr != nil {
				e.observeCall(opts, start, cbErr)
				return full.String(), usage, cbErr
			}
		}
		index++
	}

	e.observeCall(opts, start, nil)
	e.observeTokens(opts, usage)
	span.SetAttributes(
		attribute.Int("llm.chunks", index),
		attribute.Int("llm.input_tokens", usage.InputTokens),
		attribute.Int("llm.output_tokens", usage.OutputTokens),
	)
	return full.String(), usage, nil
}

func (e *Executor) observeCall(opts *Options, start time.Time, err error) {
	status := "success"
	if err != nil {
		status = "error"
	}
	metrics.LLMCallTotal.WithLabelValues(opts.Provider, opts.Model, status).Inc()
	metrics.LLMCallDuration.WithLabelValues(opts.Provider, opts.Model).Observe(time.Since(start).Seconds())
}

func (e *Executor) observeTokens(opts *Options, usage *TokenUsage) {
	if usage == nil {
		return
	}
	metrics.LLMTokensUsed.WithLabelValues(opts.Provider, opts.Model, "prompt").Add(float64(usage.InputTokens))
	metrics.LLMTokensUsed.WithLabelValues(opts.Provider, opts.Model, "completion").Add(float64(usage.OutputTokens))
}

func usageFromMeta(meta *schema.ResponseMeta) *TokenUsage {
	usage := &TokenUsage{}
	if meta != nil && meta.Usage != nil {
		usage.InputTokens = meta.Usage.PromptTokens
		usage.OutputTokens = meta.Usage.CompletionTokens
	}
	return usage
}

func buildModelOptions(opts *Options) []model.Option {
	out := make([]model.Option, 0, 3)
	if opts == nil {
		return out
	}
	if opts.Temperature != nil {
		out = append(out, model.WithTemperature(*opts.Temperature))
	}
	if opts.MaxTokens != nil {
		out = append(out, model.WithMaxTokens(*opts.MaxTokens))
	}
	if strings.TrimSpace(opts.Model) != "" {
		out = append(out, model.WithModel(strings.TrimSpace(opts.Model)))
	}
	return out
}
