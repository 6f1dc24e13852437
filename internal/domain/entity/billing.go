// Package entity 定义领域实体
package entity

import (
	"time"
)

// BillingAccount 预付费 token 账户
type BillingAccount struct {
	ID          string    `json:"id" gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	WorkspaceID string    `json:"workspace_id" gorm:"type:uuid;index;not null"`
	UserID      string    `json:"user_id" gorm:"type:uuid;uniqueIndex;not null"`
	Balance     int64     `json:"balance" gorm:"not null;default:0"`
	CreatedAt   time.Time `json:"created_at" gorm:"autoCreateTime"`
	UpdatedAt   time.Time `json:"updated_at" gorm:"autoUpdateTime"`
}

// TableName 指定表名
func (BillingAccount) TableName() string {
	return "billing_accounts"
}

// NewBillingAccount 创建账户并预置初始余额
func NewBillingAccount(workspaceID, userID string, initialBalance int64) *BillingAccount {
	now := time.Now()
	return &BillingAccount{
		WorkspaceID: workspaceID,
		UserID:      userID,
		Balance:     initialBalance,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
}

// UsageRecord 一次 AI 调用的用量记录
// BillableTokens 是经乘数定价后的计费 token 数，区别于原始 token 数
type UsageRecord struct {
	ID             string    `json:"id" gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	WorkspaceID    string    `json:"workspace_id" gorm:"type:uuid;index;not null"`
	UserID         string    `json:"user_id" gorm:"type:uuid;index;not null"`
	Operation      string    `json:"operation" gorm:"type:varchar(64);not null"`
	Provider       string    `json:"provider,omitempty" gorm:"type:varchar(64)"`
	Model          string    `json:"model,omitempty" gorm:"type:varchar(128)"`
	InputTokens    int       `json:"input_tokens"`
	OutputTokens   int       `json:"output_tokens"`
	BillableTokens int64     `json:"billable_tokens"`
	Multiplier     float64   `json:"multiplier"`
	Success        bool      `json:"success"`
	CreatedAt      time.Time `json:"created_at" gorm:"autoCreateTime"`
}

// TableName 指定表名
func (UsageRecord) TableName() string {
	return "usage_records"
}
