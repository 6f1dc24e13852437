// Package entity 定义领域实体
package entity

import (
	"time"
)

// Category 内容类型定义，携带用于生成落地的格式指南
type Category struct {
	ID               string    `json:"id" gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	WorkspaceID      string    `json:"workspace_id" gorm:"type:uuid;index;not null"`
	ProjectID        string    `json:"project_id" gorm:"type:uuid;index;not null"`
	Name             string    `json:"name" gorm:"type:varchar(255);not null"`
	Description      string    `json:"description,omitempty" gorm:"type:text"`
	FormatGuidelines string    `json:"format_guidelines,omitempty" gorm:"type:text"`
	CreatedAt        time.Time `json:"created_at" gorm:"autoCreateTime"`
	UpdatedAt        time.Time `json:"updated_at" gorm:"autoUpdateTime"`
}

// TableName 指定表名
func (Category) TableName() string {
	return "categories"
}
