package prompt

import (
	"strings"
	"testing"
)

func TestQuickActionInstruction(t *testing.T) {
	const selection = "the selected text"

	tests := []struct {
		name     string
		action   QuickAction
		tone     string
		keyword  string
		wantTone string
	}{
		{name: "improve", action: QuickActionImprove, keyword: "Improve the clarity"},
		{name: "shorten", action: QuickActionShorten, keyword: "more concise"},
		{name: "change tone with tone", action: QuickActionChangeTone, tone: "professional", keyword: "Change the tone", wantTone: "professional"},
		{name: "change tone without tone", action: QuickActionChangeTone, keyword: "more engaging"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := QuickActionInstruction(tt.action, selection, tt.tone)
			if err != nil {
				t.Fatalf("QuickActionInstruction() error = %v", err)
			}
			if !strings.Contains(got, tt.keyword) {
				t.Errorf("instruction %q missing keyword %q", got, tt.keyword)
			}
			if !strings.Contains(got, selection) {
				t.Error("instruction must carry the selection verbatim")
			}
			if tt.wantTone != "" && !strings.Contains(got, tt.wantTone) {
				t.Errorf("instruction %q missing tone %q", got, tt.wantTone)
			}
		})
	}
}

func TestQuickActionInstructionUnknown(t *testing.T) {
	if _, err := QuickActionInstruction(QuickAction("explode"), "text", ""); err == nil {
		t.Error("unknown quick action should fail")
	}
}
