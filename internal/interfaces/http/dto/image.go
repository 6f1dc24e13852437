package dto

import "time"

// GenerateImageRequest 图片生成请求
type GenerateImageRequest struct {
	Prompt    string `json:"prompt" binding:"required"`
	ProjectID string `json:"project_id,omitempty"`
	Provider  string `json:"provider,omitempty"`
}

// GeneratedImageItem 图片生成响应中的单张图片
type GeneratedImageItem struct {
	FileID       string `json:"file_id"`
	StorageKey   string `json:"storage_key"`
	PreviewURL   string `json:"preview_url,omitempty"`
	ThumbnailURL string `json:"thumbnail_url,omitempty"`
}

// GenerateImagesResponse 图片生成响应，结果始终为列表
type GenerateImagesResponse struct {
	Provider  string                `json:"provider"`
	Model     string                `json:"model,omitempty"`
	TokenCost int64                 `json:"token_cost,omitempty"`
	Images    []*GeneratedImageItem `json:"images"`
}

// GeneratedImageResponse 图片列表查询响应项
type GeneratedImageResponse struct {
	ImageID      string    `json:"image_id"`
	Provider     string    `json:"provider"`
	Model        string    `json:"model,omitempty"`
	StorageKey   string    `json:"storage_key"`
	PreviewURL   string    `json:"preview_url,omitempty"`
	ThumbnailURL string    `json:"thumbnail_url,omitempty"`
	TokenCost    int64     `json:"token_cost,omitempty"`
	CreatedAt    time.Time `json:"created_at,omitempty"`
}
