// Package billing 提供 token 估算、余额预检和用量记录
package billing

import (
	"math"
	"unicode/utf8"
)

// DefaultEstimateMultiplier 预检余额时的保守放大系数
// 覆盖预期输出加安全余量，是刻意保守的预估而非精确预测
const DefaultEstimateMultiplier = 3.0

// charsPerToken 字符到 token 的启发式换算
const charsPerToken = 4

// EstimateTokens 基于字符数的 token 估算
func EstimateTokens(text string) int64 {
	if text == "" {
		return 0
	}
	chars := utf8.RuneCountInString(text)
	return int64(math.Ceil(float64(chars) / charsPerToken))
}

// EstimateRequiredTokens 预检所需 token 数 = ceil(promptTokens * multiplier)
// multiplier <= 0 时使用默认值
func EstimateRequiredTokens(promptTokens int64, multiplier float64) int64 {
	if multiplier <= 0 {
		multiplier = DefaultEstimateMultiplier
	}
	return int64(math.Ceil(float64(promptTokens) * multiplier))
}

// BillableTokens 计费 token 数 = ceil((input+output) * costMultiplier)
// costMultiplier <= 0 时按 1 计
func BillableTokens(inputTokens, outputTokens int, costMultiplier float64) int64 {
	if costMultiplier <= 0 {
		costMultiplier = 1
	}
	return int64(math.Ceil(float64(inputTokens+outputTokens) * costMultiplier))
}
