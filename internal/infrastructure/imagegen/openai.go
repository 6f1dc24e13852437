// Package imagegen 提供图片生成提供商适配
package imagegen

import (
	"context"
	"encoding/base64"
	"fmt"
	"io"
	"net/http"

	openai "github.com/sashabaranov/go-openai"

	"contentforge-ai-api/internal/config"
)

// OpenAIStrategy OpenAI 图片生成策略
type OpenAIStrategy struct {
	client *openai.Client
	model  string
	size   string
}

// NewOpenAIStrategy 创建 OpenAI 图片策略
func NewOpenAIStrategy(cfg *config.ImageProviderConfig) (*OpenAIStrategy, error) {
	if cfg.APIKey == "" {
		return nil, fmt.Errorf("openai image api key is not configured")
	}

	clientCfg := openai.DefaultConfig(cfg.APIKey)
	if cfg.BaseURL != "" {
		clientCfg.BaseURL = cfg.BaseURL
	}

	model := cfg.Model
	if model == "" {
		model = openai.CreateImageModelDallE3
	}
	size := cfg.Size
	if size == "" {
		size = openai.CreateImageSize1024x1024
	}

	return &OpenAIStrategy{
		client: openai.NewClientWithConfig(clientCfg),
		model:  model,
		size:   size,
	}, nil
}

// Name 策略名
func (s *OpenAIStrategy) Name() string {
	return "openai"
}

// Model 使用的模型名
func (s *OpenAIStrategy) Model() string {
	return s.model
}

// Generate 生成一张图片，优先取 base64 结果，URL 结果回退为下载
func (s *OpenAIStrategy) Generate(ctx context.Context, prompt string) ([]byte, string, error) {
	resp, err := s.client.CreateImage(ctx, openai.ImageRequest{
		Prompt:         prompt,
		Model:          s.model,
		N:              1,
		Size:           s.size,
		ResponseFormat: openai.CreateImageResponseFormatB64JSON,
	})
	if err != nil {
		return nil, "", fmt.Errorf("openai image generation failed: %w", err)
	}
	if len(resp.Data) == 0 {
		return nil, "", fmt.Errorf("openai image generation returned no data")
	}

	item := resp.Data[0]
	if item.B64JSON != "" {
		data, decErr := base64.StdEncoding.DecodeString(item.B64JSON)
		if decErr != nil {
			return nil, "", fmt.Errorf("failed to decode image data: %w", decErr)
		}
		return data, "image/png", nil
	}

	if item.URL != "" {
		return downloadImage(ctx, item.URL)
	}

	return nil, "", fmt.Errorf("openai image generation returned empty result")
}

// downloadImage 下载 URL 形式返回的图片
func downloadImage(ctx context.Context, url string) ([]byte, string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, "", fmt.Errorf("failed to create image download request: %w", err)
	}

	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		return nil, "", fmt.Errorf("failed to download image: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, "", fmt.Errorf("failed to download image: status=%d", resp.StatusCode)
	}

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, "", fmt.Errorf("failed to read image body: %w", err)
	}

	contentType := resp.Header.Get("Content-Type")
	if contentType == "" {
		contentType = "image/png"
	}
	return data, contentType, nil
}
