// Package entity 定义领域实体
package entity

import (
	"time"
)

// WorkspaceStatus 工作区状态
type WorkspaceStatus string

const (
	WorkspaceStatusActive    WorkspaceStatus = "active"
	WorkspaceStatusSuspended WorkspaceStatus = "suspended"
)

// Workspace 工作区实体，所有业务数据按工作区隔离
type Workspace struct {
	ID        string          `json:"id" gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	Name      string          `json:"name" gorm:"type:varchar(255);not null"`
	Slug      string          `json:"slug" gorm:"type:varchar(100);uniqueIndex;not null"`
	OwnerID   string          `json:"owner_id,omitempty" gorm:"type:uuid;index"`
	Status    WorkspaceStatus `json:"status" gorm:"type:varchar(50);default:'active'"`
	CreatedAt time.Time       `json:"created_at" gorm:"autoCreateTime"`
	UpdatedAt time.Time       `json:"updated_at" gorm:"autoUpdateTime"`
}

// TableName 指定表名
func (Workspace) TableName() string {
	return "workspaces"
}

// NewWorkspace 创建新工作区
func NewWorkspace(name, slug string) *Workspace {
	now := time.Now()
	return &Workspace{
		Name:      name,
		Slug:      slug,
		Status:    WorkspaceStatusActive,
		CreatedAt: now,
		UpdatedAt: now,
	}
}

// IsActive 检查工作区是否可用
func (w *Workspace) IsActive() bool {
	return w.Status == WorkspaceStatusActive
}
