package redis

import "testing"

func TestBuildProjectCacheKey(t *testing.T) {
	got := BuildProjectCacheKey("category", "ws-1", "proj-2", "cat-3")
	if got != "category:ws-1:proj-2:cat-3" {
		t.Errorf("BuildProjectCacheKey() = %q", got)
	}
}

func TestBuildRateLimitKeys(t *testing.T) {
	if got := BuildRateLimitKey("ws-1", "image-generation"); got != "ratelimit:ws-1:image-generation" {
		t.Errorf("BuildRateLimitKey() = %q", got)
	}
	if got := BuildUserRateLimitKey("ws-1", "user-9", "chat"); got != "ratelimit:ws-1:user-9:chat" {
		t.Errorf("BuildUserRateLimitKey() = %q", got)
	}
}
