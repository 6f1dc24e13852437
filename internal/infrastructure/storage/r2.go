// Package storage 提供 S3 兼容对象存储（Cloudflare R2）访问
package storage

import (
	"bytes"
	"context"
	"fmt"
	"strings"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"

	"contentforge-ai-api/internal/config"
)

var tracer = otel.Tracer("storage")

// Client R2 对象存储客户端
type Client struct {
	s3        *s3.Client
	bucket    string
	publicURL string
}

// NewClient 创建 R2 客户端
// R2 通过账户级 endpoint 提供 S3 兼容 API，region 固定为 auto
func NewClient(ctx context.Context, cfg *config.R2Config) (*Client, error) {
	if cfg.AccountID == "" || cfg.AccessKeyID == "" || cfg.SecretAccessKey == "" {
		return nil, fmt.Errorf("r2 credentials are not configured")
	}
	if cfg.Bucket == "" {
		return nil, fmt.Errorf("r2 bucket is not configured")
	}

	awsCfg, err := awsconfig.LoadDefaultConfig(ctx,
		awsconfig.WithRegion("auto"),
		awsconfig.WithCredentialsProvider(
			credentials.NewStaticCredentialsProvider(cfg.AccessKeyID, cfg.SecretAccessKey, ""),
		),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to load storage config: %w", err)
	}

	endpoint := fmt.Sprintf("https://%s.r2.cloudflarestorage.com", cfg.AccountID)
	client := s3.NewFromConfig(awsCfg, func(o *s3.Options) {
		o.BaseEndpoint = aws.String(endpoint)
		o.UsePathStyle = true
	})

	return &Client{
		s3:        client,
		bucket:    cfg.Bucket,
		publicURL: strings.TrimRight(cfg.PublicURL, "/"),
	}, nil
}

// Upload 上传对象
func (c *Client) Upload(ctx context.Context, key string, data []byte, contentType string) error {
	ctx, span := tracer.Start(ctx, "storage.Upload",
		trace.WithAttributes(
			attribute.String("storage.key", key),
			attribute.Int("storage.size_bytes", len(data)),
		))
	defer span.End()

	_, err := c.s3.PutObject(ctx, &s3.PutObjectInput{
		Bucket:      aws.String(c.bucket),
		Key:         aws.String(key),
		Body:        bytes.NewReader(data),
		ContentType: aws.String(contentType),
	})
	if err != nil {
		span.RecordError(err)
		return fmt.Errorf("failed to upload object: %w", err)
	}
	return nil
}

// Download 下载对象
func (c *Client) Download(ctx context.Context, key string) ([]byte, error) {
	ctx, span := tracer.Start(ctx, "storage.Download",
		trace.WithAttributes(attribute.String("storage.key", key)))
	defer span.End()

	out, err := c.s3.GetObject(ctx, &s3.GetObjectInput{
		Bucket: aws.String(c.bucket),
		Key:    aws.String(key),
	})
	if err != nil {
		span.RecordError(err)
		return nil, fmt.Errorf("failed to download object: %w", err)
	}
	defer out.Body.Close()

	var buf bytes.Buffer
	if _, err := buf.ReadFrom(out.Body); err != nil {
		span.RecordError(err)
		return nil, fmt.Errorf("failed to read object body: %w", err)
	}
	return buf.Bytes(), nil
}

// Delete 删除对象
func (c *Client) Delete(ctx context.Context, key string) error {
	ctx, span := tracer.Start(ctx, "storage.Delete",
		trace.WithAttributes(attribute.String("storage.key", key)))
	defer span.End()

	_, err := c.s3.DeleteObject(ctx, &s3.DeleteObjectInput{
		Bucket: aws.String(c.bucket),
		Key:    aws.String(key),
	})
	if err != nil {
		span.RecordError(err)
		return fmt.Errorf("failed to delete object: %w", err)
	}
	return nil
}

// PublicObjectURL 拼接对象的公开访问地址，未配置公开域名时返回空串
func (c *Client) PublicObjectURL(key string) string {
	if c.publicURL == "" {
		return ""
	}
	return c.publicURL + "/" + strings.TrimLeft(key, "/")
}
