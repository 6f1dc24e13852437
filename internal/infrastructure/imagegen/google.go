package imagegen

import (
	"context"
	"fmt"

	"google.golang.org/genai"

	"contentforge-ai-api/internal/config"
)

// GoogleStrategy Google Imagen 图片生成策略
type GoogleStrategy struct {
	client *genai.Client
	model  string
}

// NewGoogleStrategy 创建 Google 图片策略
func NewGoogleStrategy(ctx context.Context, cfg *config.ImageProviderConfig) (*GoogleStrategy, error) {
	if cfg.APIKey == "" {
		return nil, fmt.Errorf("google image api key is not configured")
	}

	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  cfg.APIKey,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create google genai client: %w", err)
	}

	model := cfg.Model
	if model == "" {
		model = "imagen-3.0-generate-002"
	}

	return &GoogleStrategy{client: client, model: model}, nil
}

// Name 策略名
func (s *GoogleStrategy) Name() string {
	return "google"
}

// Model 使用的模型名
func (s *GoogleStrategy) Model() string {
	return s.model
}

// Generate 生成一张图片
func (s *GoogleStrategy) Generate(ctx context.Context, prompt string) ([]byte, string, error) {
	resp, err := s.client.Models.GenerateImages(ctx, s.model, prompt, &genai.GenerateImagesConfig{
		NumberOfImages: 1,
	})
	if err != nil {
		return nil, "", fmt.Errorf("google image generation failed: %w", err)
	}
	if len(resp.GeneratedImages) == 0 || resp.GeneratedImages[0].Image == nil {
		return nil, "", fmt.Errorf("google image generation returned no data")
	}

	img := resp.GeneratedImages[0].Image
	mimeType := img.MIMEType
	if mimeType == "" {
		mimeType = "image/png"
	}
	return img.ImageBytes, mimeType, nil
}
