package prompt

import "fmt"

// QuickAction 选区快捷操作
type QuickAction string

const (
	QuickActionImprove    QuickAction = "improve"
	QuickActionShorten    QuickAction = "shorten"
	QuickActionChangeTone QuickAction = "changeTone"
)

// QuickActionInstruction 将快捷操作展开为完整的修改指令
// 指令中保留选中文本原文，tone 仅对 changeTone 生效
func QuickActionInstruction(action QuickAction, selection, tone string) (string, error) {
	switch action {
	case QuickActionImprove:
		return fmt.Sprintf("Improve the clarity and flow of the following text while keeping its meaning:\n\n%s", selection), nil
	case QuickActionShorten:
		return fmt.Sprintf("Make the following text more concise and brief without losing key information:\n\n%s", selection), nil
	case QuickActionChangeTone:
		if tone != "" {
			return fmt.Sprintf("Change the tone of the following text to %s:\n\n%s", tone, selection), nil
		}
		return fmt.Sprintf("Change the tone of the following text to be more engaging:\n\n%s", selection), nil
	default:
		return "", fmt.Errorf("unknown quick action: %s", action)
	}
}
