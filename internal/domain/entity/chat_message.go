// Package entity 定义领域实体
package entity

import (
	"time"
)

// ChatMessage 内容单元下的对话消息
type ChatMessage struct {
	ID             string    `json:"id" gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	WorkspaceID    string    `json:"workspace_id" gorm:"type:uuid;index;not null"`
	ContentPieceID string    `json:"content_piece_id" gorm:"type:uuid;index;not null"`
	UserID         string    `json:"user_id,omitempty" gorm:"type:uuid;index"`
	Role           Role      `json:"role" gorm:"type:varchar(16);not null"`
	Content        string    `json:"content" gorm:"type:text;not null"`
	CreatedAt      time.Time `json:"created_at" gorm:"autoCreateTime"`
}

// TableName 指定表名
func (ChatMessage) TableName() string {
	return "chat_messages"
}

func NewChatMessage(workspaceID, pieceID, userID string, role Role, content string) *ChatMessage {
	return &ChatMessage{
		WorkspaceID:    workspaceID,
		ContentPieceID: pieceID,
		UserID:         userID,
		Role:           role,
		Content:        content,
		CreatedAt:      time.Now(),
	}
}
