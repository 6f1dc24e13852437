// Package entity 定义领域实体
package entity

import (
	"time"
)

// UploadFile 用户上传文件，ExtractedText 为入库时抽取的纯文本
type UploadFile struct {
	ID            string    `json:"id" gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	WorkspaceID   string    `json:"workspace_id" gorm:"type:uuid;index;not null"`
	ProjectID     string    `json:"project_id" gorm:"type:uuid;index;not null"`
	Filename      string    `json:"filename" gorm:"type:varchar(512);not null"`
	ContentType   string    `json:"content_type,omitempty" gorm:"type:varchar(255)"`
	SizeBytes     int64     `json:"size_bytes"`
	StorageKey    string    `json:"storage_key" gorm:"type:varchar(512)"`
	ExtractedText string    `json:"extracted_text,omitempty" gorm:"type:text"`
	CreatedAt     time.Time `json:"created_at" gorm:"autoCreateTime"`
}

// TableName 指定表名
func (UploadFile) TableName() string {
	return "upload_files"
}
