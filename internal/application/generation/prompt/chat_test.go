package prompt

import (
	"fmt"
	"testing"

	"contentforge-ai-api/internal/domain/entity"
)

func TestTruncateHistory(t *testing.T) {
	build := func(n int) []ChatTurn {
		turns := make([]ChatTurn, n)
		for i := range turns {
			turns[i] = ChatTurn{Role: entity.RoleUser, Content: fmt.Sprintf("msg-%d", i)}
		}
		return turns
	}

	tests := []struct {
		name      string
		size      int
		max       int
		wantLen   int
		wantFirst string
	}{
		{name: "under limit untouched", size: 4, max: 10, wantLen: 4, wantFirst: "msg-0"},
		{name: "exactly at limit untouched", size: 10, max: 10, wantLen: 10, wantFirst: "msg-0"},
		{name: "over limit keeps most recent", size: 15, max: 10, wantLen: 10, wantFirst: "msg-5"},
		{name: "zero max untouched", size: 3, max: 0, wantLen: 3, wantFirst: "msg-0"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := TruncateHistory(build(tt.size), tt.max)
			if len(got) != tt.wantLen {
				t.Fatalf("len = %d, want %d", len(got), tt.wantLen)
			}
			if got[0].Content != tt.wantFirst {
				t.Errorf("first turn = %q, want %q", got[0].Content, tt.wantFirst)
			}
		})
	}
}

func TestHistoryFromMessages(t *testing.T) {
	messages := make([]*entity.ChatMessage, 0, 13)
	for i := 0; i < 12; i++ {
		messages = append(messages, &entity.ChatMessage{Role: entity.RoleUser, Content: fmt.Sprintf("msg-%d", i)})
	}
	messages = append(messages, nil) // nil 条目应被跳过

	turns := HistoryFromMessages(messages)
	if len(turns) != MaxChatHistory {
		t.Fatalf("len = %d, want %d", len(turns), MaxChatHistory)
	}
	if turns[0].Content != "msg-2" {
		t.Errorf("first turn = %q, want msg-2", turns[0].Content)
	}
	if turns[len(turns)-1].Content != "msg-11" {
		t.Errorf("last turn = %q, want msg-11", turns[len(turns)-1].Content)
	}
}
