package dto

import "time"

// BalanceResponse 余额查询响应
type BalanceResponse struct {
	UserID    string    `json:"user_id"`
	Balance   int64     `json:"balance"`
	UpdatedAt time.Time `json:"updated_at"`
}

// TopUpRequest 充值请求
type TopUpRequest struct {
	Tokens int64 `json:"tokens" binding:"required,gt=0"`
}

// UsageRecordResponse 用量流水响应
type UsageRecordResponse struct {
	ID             string    `json:"id"`
	Operation      string    `json:"operation"`
	Provider       string    `json:"provider,omitempty"`
	Model          string    `json:"model,omitempty"`
	InputTokens    int64     `json:"input_tokens"`
	OutputTokens   int64     `json:"output_tokens"`
	BillableTokens int64     `json:"billable_tokens"`
	Success        bool      `json:"success"`
	CreatedAt      time.Time `json:"created_at"`
}
