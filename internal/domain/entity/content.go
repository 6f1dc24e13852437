// Package entity 定义领域实体
package entity

import (
	"time"
)

// ContentStatus 内容状态
type ContentStatus string

const (
	ContentStatusDraft     ContentStatus = "draft"
	ContentStatusFinalized ContentStatus = "finalized"
)

// ContentPiece 内容单元，按版本演进，定稿后锁定
type ContentPiece struct {
	ID             string        `json:"id" gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	WorkspaceID    string        `json:"workspace_id" gorm:"type:uuid;index;not null"`
	ProjectID      string        `json:"project_id" gorm:"type:uuid;index;not null"`
	CategoryID     string        `json:"category_id" gorm:"type:uuid;index;not null"`
	Title          string        `json:"title" gorm:"type:varchar(512);not null"`
	Topic          string        `json:"topic,omitempty" gorm:"type:text"`
	CurrentVersion int           `json:"current_version" gorm:"default:0"`
	Status         ContentStatus `json:"status" gorm:"type:varchar(50);default:'draft'"`
	CreatedAt      time.Time     `json:"created_at" gorm:"autoCreateTime"`
	UpdatedAt      time.Time     `json:"updated_at" gorm:"autoUpdateTime"`
}

// TableName 指定表名
func (ContentPiece) TableName() string {
	return "content_pieces"
}

// IsFinalized 是否已定稿
func (c *ContentPiece) IsFinalized() bool {
	return c.Status == ContentStatusFinalized
}

// VersionSource 版本来源操作
type VersionSource string

const (
	VersionSourceManual    VersionSource = "manual"
	VersionSourceDraft     VersionSource = "draft"
	VersionSourceRefine    VersionSource = "refine"
	VersionSourceSelection VersionSource = "refine_selection"
	VersionSourceRepurpose VersionSource = "repurpose"
)

// ContentVersion 内容版本，追加写入，从不原地修改
type ContentVersion struct {
	ID             string        `json:"id" gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	ContentPieceID string        `json:"content_piece_id" gorm:"type:uuid;index;not null"`
	Version        int           `json:"version" gorm:"not null"`
	Body           string        `json:"body" gorm:"type:text;not null"`
	Source         VersionSource `json:"source" gorm:"type:varchar(50);not null;default:'manual'"`
	CreatedAt      time.Time     `json:"created_at" gorm:"autoCreateTime"`
}

// TableName 指定表名
func (ContentVersion) TableName() string {
	return "content_versions"
}

// NewContentVersion 追加一个新版本
func NewContentVersion(pieceID string, version int, body string, source VersionSource) *ContentVersion {
	return &ContentVersion{
		ContentPieceID: pieceID,
		Version:        version,
		Body:           body,
		Source:         source,
		CreatedAt:      time.Now(),
	}
}
