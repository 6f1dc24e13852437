package postgres

import (
	"fmt"
	"testing"
	"time"

	"contentforge-ai-api/internal/domain/entity"
)

// 模拟 created_at DESC LIMIT 10 在 15 条消息上的查询结果：
// 翻转后必须是第 6..15 条的正序，而不是最早的 10 条
func TestReverseChronologicalKeepsMostRecentWindow(t *testing.T) {
	base := time.Date(2026, 8, 1, 10, 0, 0, 0, time.UTC)

	var descLimited []*entity.ChatMessage
	for i := 15; i >= 6; i-- {
		descLimited = append(descLimited, &entity.ChatMessage{
			Content:   fmt.Sprintf("msg-%d", i),
			CreatedAt: base.Add(time.Duration(i) * time.Minute),
		})
	}

	reverseChronological(descLimited)

	if len(descLimited) != 10 {
		t.Fatalf("len = %d, want 10", len(descLimited))
	}
	for i, msg := range descLimited {
		want := fmt.Sprintf("msg-%d", i+6)
		if msg.Content != want {
			t.Errorf("messages[%d] = %q, want %q", i, msg.Content, want)
		}
	}
	for i := 1; i < len(descLimited); i++ {
		if descLimited[i].CreatedAt.Before(descLimited[i-1].CreatedAt) {
			t.Fatalf("messages not in chronological order at index %d", i)
		}
	}
}

func TestReverseChronologicalShortSlices(t *testing.T) {
	reverseChronological(nil)

	one := []*entity.ChatMessage{{Content: "only"}}
	reverseChronological(one)
	if one[0].Content != "only" {
		t.Errorf("single-element slice changed: %q", one[0].Content)
	}

	two := []*entity.ChatMessage{{Content: "newer"}, {Content: "older"}}
	reverseChronological(two)
	if two[0].Content != "older" || two[1].Content != "newer" {
		t.Errorf("pair = [%q, %q], want [older, newer]", two[0].Content, two[1].Content)
	}
}
