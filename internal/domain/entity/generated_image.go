// Package entity 定义领域实体
package entity

import (
	"time"
)

// GeneratedImage AI 生成的图片，缩略图允许缺失
type GeneratedImage struct {
	ID           string    `json:"id" gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	WorkspaceID  string    `json:"workspace_id" gorm:"type:uuid;index;not null"`
	ProjectID    string    `json:"project_id,omitempty" gorm:"type:uuid;index"`
	UserID       string    `json:"user_id" gorm:"type:uuid;index;not null"`
	Provider     string    `json:"provider" gorm:"type:varchar(64);not null"`
	Model        string    `json:"model,omitempty" gorm:"type:varchar(128)"`
	Prompt       string    `json:"prompt" gorm:"type:text;not null"`
	StorageKey   string    `json:"storage_key" gorm:"type:varchar(512);not null"`
	ThumbnailKey string    `json:"thumbnail_key,omitempty" gorm:"type:varchar(512)"`
	PreviewURL   string    `json:"preview_url,omitempty" gorm:"type:varchar(1024)"`
	ThumbnailURL string    `json:"thumbnail_url,omitempty" gorm:"type:varchar(1024)"`
	CreatedAt    time.Time `json:"created_at" gorm:"autoCreateTime"`
}

// TableName 指定表名
func (GeneratedImage) TableName() string {
	return "generated_images"
}
