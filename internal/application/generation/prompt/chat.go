package prompt

import (
	"contentforge-ai-api/internal/domain/entity"
)

// MaxChatHistory 注入模型的对话历史上限
const MaxChatHistory = 10

// ChatTurn 一轮对话
type ChatTurn struct {
	Role    entity.Role
	Content string
}

// TruncateHistory 截断为最近 max 条，不足时原样返回
func TruncateHistory(history []ChatTurn, max int) []ChatTurn {
	if max <= 0 || len(history) <= max {
		return history
	}
	return history[len(history)-max:]
}

// HistoryFromMessages 将持久化消息转为对话轮次并截断
func HistoryFromMessages(messages []*entity.ChatMessage) []ChatTurn {
	turns := make([]ChatTurn, 0, len(messages))
	for _, m := range messages {
		if m == nil {
			continue
		}
		turns = append(turns, ChatTurn{Role: m.Role, Content: m.Content})
	}
	return TruncateHistory(turns, MaxChatHistory)
}
