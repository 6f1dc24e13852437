// Package entity 定义领域实体
package entity

import (
	"time"
)

// KnowledgeItem 项目知识库条目
type KnowledgeItem struct {
	ID          string    `json:"id" gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	WorkspaceID string    `json:"workspace_id" gorm:"type:uuid;index;not null"`
	ProjectID   string    `json:"project_id" gorm:"type:uuid;index;not null"`
	Title       string    `json:"title" gorm:"type:varchar(255);not null"`
	Content     string    `json:"content" gorm:"type:text;not null"`
	CreatedAt   time.Time `json:"created_at" gorm:"autoCreateTime"`
	UpdatedAt   time.Time `json:"updated_at" gorm:"autoUpdateTime"`
}

// TableName 指定表名
func (KnowledgeItem) TableName() string {
	return "knowledge_items"
}

// Example 范例内容，作为 few-shot 素材注入提示词
type Example struct {
	ID          string    `json:"id" gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	WorkspaceID string    `json:"workspace_id" gorm:"type:uuid;index;not null"`
	ProjectID   string    `json:"project_id" gorm:"type:uuid;index;not null"`
	CategoryID  string    `json:"category_id,omitempty" gorm:"type:uuid;index"`
	Title       string    `json:"title" gorm:"type:varchar(255);not null"`
	Content     string    `json:"content" gorm:"type:text;not null"`
	CreatedAt   time.Time `json:"created_at" gorm:"autoCreateTime"`
	UpdatedAt   time.Time `json:"updated_at" gorm:"autoUpdateTime"`
}

// TableName 指定表名
func (Example) TableName() string {
	return "examples"
}
