// Package entity 定义领域实体
package entity

import (
	"time"
)

// ProjectStatus 项目状态
type ProjectStatus string

const (
	ProjectStatusActive   ProjectStatus = "active"
	ProjectStatusArchived ProjectStatus = "archived"
)

// AISettings 项目级 AI 配置，覆盖全局默认
type AISettings struct {
	Provider        string  `json:"provider,omitempty"`
	Model           string  `json:"model,omitempty"`
	Temperature     float64 `json:"temperature,omitempty"`
	MaxOutputTokens int     `json:"max_output_tokens,omitempty"`
}

// Project 内容项目实体
type Project struct {
	ID          string        `json:"id" gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	WorkspaceID string        `json:"workspace_id" gorm:"type:uuid;index;not null"`
	OwnerID     string        `json:"owner_id,omitempty" gorm:"type:uuid;index"`
	Name        string        `json:"name" gorm:"type:varchar(255);not null"`
	Description string        `json:"description,omitempty" gorm:"type:text"`
	AISettings  *AISettings   `json:"ai_settings,omitempty" gorm:"type:jsonb;serializer:json"`
	Status      ProjectStatus `json:"status" gorm:"type:varchar(50);default:'active'"`
	CreatedAt   time.Time     `json:"created_at" gorm:"autoCreateTime"`
	UpdatedAt   time.Time     `json:"updated_at" gorm:"autoUpdateTime"`
}

// TableName 指定表名
func (Project) TableName() string {
	return "projects"
}

// NewProject 创建新项目
func NewProject(workspaceID, ownerID, name string) *Project {
	now := time.Now()
	return &Project{
		WorkspaceID: workspaceID,
		OwnerID:     ownerID,
		Name:        name,
		AISettings:  &AISettings{},
		Status:      ProjectStatusActive,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
}

// IsEditable 检查项目是否可编辑
func (p *Project) IsEditable() bool {
	return p.Status == ProjectStatusActive
}
