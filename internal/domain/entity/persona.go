// Package entity 定义领域实体
package entity

import (
	"time"
)

// Persona 目标受众画像，用于引导生成口吻
type Persona struct {
	ID          string    `json:"id" gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	WorkspaceID string    `json:"workspace_id" gorm:"type:uuid;index;not null"`
	ProjectID   string    `json:"project_id" gorm:"type:uuid;index;not null"`
	Name        string    `json:"name" gorm:"type:varchar(255);not null"`
	Description string    `json:"description,omitempty" gorm:"type:text"`
	CreatedAt   time.Time `json:"created_at" gorm:"autoCreateTime"`
	UpdatedAt   time.Time `json:"updated_at" gorm:"autoUpdateTime"`
}

// TableName 指定表名
func (Persona) TableName() string {
	return "personas"
}

// BrandVoice 品牌语气描述
type BrandVoice struct {
	ID          string    `json:"id" gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	WorkspaceID string    `json:"workspace_id" gorm:"type:uuid;index;not null"`
	ProjectID   string    `json:"project_id" gorm:"type:uuid;index;not null"`
	Name        string    `json:"name" gorm:"type:varchar(255);not null"`
	Description string    `json:"description,omitempty" gorm:"type:text"`
	CreatedAt   time.Time `json:"created_at" gorm:"autoCreateTime"`
	UpdatedAt   time.Time `json:"updated_at" gorm:"autoUpdateTime"`
}

// TableName 指定表名
func (BrandVoice) TableName() string {
	return "brand_voices"
}
