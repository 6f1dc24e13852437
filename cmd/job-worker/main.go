// Package main 异步任务执行器入口（job-worker）
// 消费用量事件做准确结算，消费图片任务生成缩略图，消费知识条目任务维护向量索引
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"contentforge-ai-api/internal/config"
	"contentforge-ai-api/internal/domain/entity"
	"contentforge-ai-api/internal/infrastructure/messaging"
	"contentforge-ai-api/internal/wire"
	"contentforge-ai-api/pkg/logger"
	"contentforge-ai-api/pkg/tracer"
)

// dlqAlertThreshold 死信队列告警阈值
const dlqAlertThreshold = 100

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Printf("Failed to load config: %v\n", err)
		os.Exit(1)
	}

	logger.Init(cfg.Observability.Logging.Level, cfg.Observability.Logging.Format)
	ctx := context.Background()

	shutdown, err := tracer.Init(ctx, tracer.Config{
		ServiceName: "job-worker",
		Endpoint:    cfg.Observability.Tracing.Endpoint,
		SampleRate:  cfg.Observability.Tracing.SampleRate,
		Enabled:     cfg.Observability.Tracing.Enabled,
	})
	if err != nil {
		logger.Fatal(ctx, "failed to init tracer", err)
	}
	defer func() { _ = shutdown(ctx) }()

	deps, cleanup, err := wire.InitializeJobWorker(ctx, cfg)
	if err != nil {
		logger.Fatal(ctx, "failed to initialize job worker", err)
	}
	defer cleanup()

	usageConsumer := newConsumer(deps, cfg, messaging.StreamUsageEvents, messaging.ConsumerGroupUsageSettler)
	usageConsumer.RegisterHandler("usage_event", usageEventHandler(deps))

	imageConsumer := newConsumer(deps, cfg, messaging.StreamImageJobs, messaging.ConsumerGroupImageWorker)
	imageConsumer.RegisterHandler("thumbnail_gen", thumbnailJobHandler(deps, cfg))

	knowledgeConsumer := newConsumer(deps, cfg, messaging.StreamKnowledgeJobs, messaging.ConsumerGroupKnowledgeIndexer)
	knowledgeConsumer.RegisterHandler("knowledge_index", knowledgeIndexHandler(deps))

	if err := usageConsumer.Start(ctx); err != nil {
		logger.Fatal(ctx, "failed to start usage consumer", err)
	}
	if err := imageConsumer.Start(ctx); err != nil {
		logger.Fatal(ctx, "failed to start image consumer", err)
	}
	if err := knowledgeConsumer.Start(ctx); err != nil {
		logger.Fatal(ctx, "failed to start knowledge consumer", err)
	}

	go usageConsumer.MonitorDLQ(ctx, dlqAlertThreshold)
	go imageConsumer.MonitorDLQ(ctx, dlqAlertThreshold)
	go knowledgeConsumer.MonitorDLQ(ctx, dlqAlertThreshold)

	log := logger.FromContext(ctx)
	log.Info("job-worker started")

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info("job-worker shutting down")
	usageConsumer.Stop()
	imageConsumer.Stop()
	knowledgeConsumer.Stop()
}

func newConsumer(deps *wire.JobWorkerDeps, cfg *config.Config, stream messaging.Stream, group messaging.ConsumerGroup) *messaging.Consumer {
	return messaging.NewConsumer(deps.RedisClient.Redis(), messaging.ConsumerConfig{
		Stream:       stream,
		Group:        group,
		ConsumerName: hostnameConsumerName(),
		BlockTimeout: cfg.Messaging.RedisStream.BlockTimeout,
		RetryLimit:   cfg.Messaging.RedisStream.RetryLimit,
		Backoff: messaging.BackoffConfig{
			Initial:    cfg.Messaging.RedisStream.RetryBackoff.Initial,
			Max:        cfg.Messaging.RedisStream.RetryBackoff.Max,
			Multiplier: cfg.Messaging.RedisStream.RetryBackoff.Multiplier,
		},
	})
}

// usageEventHandler 用量结算：扣减余额并落用量记录，两者同事务
// 余额允许透支为负，预检在网关侧已完成
func usageEventHandler(deps *wire.JobWorkerDeps) messaging.MessageHandler {
	return func(ctx context.Context, msg *messaging.Message) error {
		var event messaging.UsageEventMessage
		if err := msg.UnmarshalPayload(&event); err != nil {
			return err
		}
		if event.UserID == "" {
			return nil
		}

		return deps.TxManager.WithTransaction(ctx, func(txCtx context.Context) error {
			if event.BillableTokens > 0 {
				if err := deps.Accounts.Deduct(txCtx, event.UserID, event.BillableTokens); err != nil {
					return err
				}
			}

			return deps.Usage.Create(txCtx, &entity.UsageRecord{
				WorkspaceID:    event.WorkspaceID,
				UserID:         event.UserID,
				Operation:      event.Operation,
				Provider:       event.Provider,
				Model:          event.Model,
				InputTokens:    event.InputTokens,
				OutputTokens:   event.OutputTokens,
				BillableTokens: event.BillableTokens,
				Multiplier:     event.Multiplier,
				Success:        event.Success,
			})
		})
	}
}

// thumbnailJobHandler 缩略图生成：下载原图 → 缩放 → 上传 → 更新记录
// 缩略图缺失可接受，存储未配置时直接丢弃任务
func thumbnailJobHandler(deps *wire.JobWorkerDeps, cfg *config.Config) messaging.MessageHandler {
	return func(ctx context.Context, msg *messaging.Message) error {
		if deps.Store == nil {
			logger.Warn(ctx, "object storage not configured, dropping thumbnail job", "message_id", msg.ID)
			return nil
		}

		var job messaging.ThumbnailJobMessage
		if err := msg.UnmarshalPayload(&job); err != nil {
			return err
		}

		data, err := deps.Store.Download(ctx, job.StorageKey)
		if err != nil {
			return fmt.Errorf("failed to download source image: %w", err)
		}

		maxWidth := job.MaxWidth
		if maxWidth <= 0 {
			maxWidth = cfg.Image.Thumbnail.MaxWidth
		}
		thumb, err := buildThumbnail(data, maxWidth, cfg.Image.Thumbnail.Quality)
		if err != nil {
			return fmt.Errorf("failed to build thumbnail: %w", err)
		}

		key := thumbnailKey(job.StorageKey)
		if err := deps.Store.Upload(ctx, key, thumb, thumbnailContentType); err != nil {
			return fmt.Errorf("failed to upload thumbnail: %w", err)
		}

		img, err := deps.Images.GetByID(ctx, job.ImageID)
		if err != nil {
			return err
		}
		if img == nil {
			logger.Warn(ctx, "generated image record missing, dropping thumbnail job", "image_id", job.ImageID)
			return nil
		}

		img.ThumbnailKey = key
		img.ThumbnailURL = deps.Store.PublicObjectURL(key)
		return deps.Images.Update(ctx, img)
	}
}

// knowledgeIndexHandler 知识条目向量索引：删除走清理，其余重建条目向量
// 向量能力未启用时任务直接丢弃，条目已不存在视为删除
func knowledgeIndexHandler(deps *wire.JobWorkerDeps) messaging.MessageHandler {
	return func(ctx context.Context, msg *messaging.Message) error {
		if deps.Indexer == nil {
			logger.Warn(ctx, "vector indexing not enabled, dropping knowledge job", "message_id", msg.ID)
			return nil
		}

		var job messaging.KnowledgeIndexJobMessage
		if err := msg.UnmarshalPayload(&job); err != nil {
			return err
		}
		if job.ItemID == "" {
			return nil
		}

		if job.Remove {
			return deps.Indexer.RemoveItem(ctx, job.WorkspaceID, job.ProjectID, job.ItemID)
		}

		item, err := deps.Knowledge.GetByID(ctx, job.ItemID)
		if err != nil {
			return err
		}
		if item == nil {
			return deps.Indexer.RemoveItem(ctx, job.WorkspaceID, job.ProjectID, job.ItemID)
		}

		return deps.Indexer.IndexItem(ctx, item)
	}
}

func hostnameConsumerName() string {
	host, err := os.Hostname()
	if err != nil || host == "" {
		host = "worker"
	}
	return fmt.Sprintf("%s-%d", host, os.Getpid())
}
