// Package messaging 提供消息队列实现
package messaging

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
)

var tracer = otel.Tracer("messaging")

// Producer 消息生产者
type Producer struct {
	client *redis.Client
	maxLen int64
}

// NewProducer 创建消息生产者
func NewProducer(client *redis.Client, maxLen int64) *Producer {
	if maxLen <= 0 {
		maxLen = 100000
	}
	return &Producer{
		client: client,
		maxLen: maxLen,
	}
}

// Publish 发布消息到指定流
func (p *Producer) Publish(ctx context.Context, stream Stream, msg *Message) (string, error) {
	ctx, span := tracer.Start(ctx, "producer.Publish",
		trace.WithAttributes(
			attribute.String("stream", string(stream)),
			attribute.String("message.id", msg.ID),
			attribute.String("message.type", msg.Type),
		))
	defer span.End()

	data, err := json.Marshal(msg)
	if err != nil {
		span.RecordError(err)
		return "", fmt.Errorf("failed to marshal message: %w", err)
	}

	result, err := p.client.XAdd(ctx, &redis.XAddArgs{
		Stream: string(stream),
		MaxLen: p.maxLen,
		Approx: true,
		Values: map[string]interface{}{
			"data": string(data),
		},
	}).Result()

	if err != nil {
		span.RecordError(err)
		return "", fmt.Errorf("failed to publish message: %w", err)
	}

	span.SetAttributes(attribute.String("stream.message_id", result))
	return result, nil
}

// PublishUsageEvent 发布用量事件
// 调用方按 fire-and-forget 使用：发布失败只记日志，不阻塞主流程
func (p *Producer) PublishUsageEvent(ctx context.Context, event *UsageEventMessage) (string, error) {
	msg, err := NewMessage(uuid.New().String(), "usage_event", event.WorkspaceID, event.UserID, event)
	if err != nil {
		return "", err
	}

	msg.SetMetadata("operation", event.Operation)
	return p.Publish(ctx, StreamUsageEvents, msg)
}

// PublishThumbnailJob 发布缩略图生成任务
func (p *Producer) PublishThumbnailJob(ctx context.Context, job *ThumbnailJobMessage) (string, error) {
	msg, err := NewMessage(job.ImageID, "thumbnail_gen", job.WorkspaceID, job.UserID, job)
	if err != nil {
		return "", err
	}

	return p.Publish(ctx, StreamImageJobs, msg)
}

// UsageEventMessage 用量事件消息
type UsageEventMessage struct {
	WorkspaceID    string  `json:"workspace_id"`
	UserID         string  `json:"user_id"`
	Operation      string  `json:"operation"`
	Provider       string  `json:"provider,omitempty"`
	Model          string  `json:"model,omitempty"`
	InputTokens    int     `json:"input_tokens"`
	OutputTokens   int     `json:"output_tokens"`
	BillableTokens int64   `json:"billable_tokens"`
	Multiplier     float64 `json:"multiplier"`
	DurationMs     int     `json:"duration_ms,omitempty"`
	Success        bool    `json:"success"`
}

// ThumbnailJobMessage 缩略图生成任务消息
type ThumbnailJobMessage struct {
	ImageID     string `json:"image_id"`
	WorkspaceID string `json:"workspace_id"`
	UserID      string `json:"user_id"`
	StorageKey  string `json:"storage_key"`
	MaxWidth    int    `json:"max_width"`
}

// KnowledgeIndexJobMessage 知识条目向量索引任务消息
// 由内容管理侧在条目创建/更新/删除时发布，本服务的 job-worker 消费
type KnowledgeIndexJobMessage struct {
	WorkspaceID string `json:"workspace_id"`
	ProjectID   string `json:"project_id"`
	ItemID      string `json:"item_id"`
	Remove      bool   `json:"remove,omitempty"`
}
