package billing

import "testing"

func TestEstimateTokens(t *testing.T) {
	tests := []struct {
		name string
		text string
		want int64
	}{
		{name: "empty", text: "", want: 0},
		{name: "exact multiple", text: "abcdefgh", want: 2},
		{name: "rounds up", text: "abcde", want: 2},
		{name: "single char", text: "a", want: 1},
		{name: "multibyte counted as runes", text: "你好世界", want: 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := EstimateTokens(tt.text); got != tt.want {
				t.Errorf("EstimateTokens(%q) = %d, want %d", tt.text, got, tt.want)
			}
		})
	}
}

func TestEstimateRequiredTokens(t *testing.T) {
	tests := []struct {
		name       string
		prompt     int64
		multiplier float64
		want       int64
	}{
		{name: "default multiplier", prompt: 100, multiplier: 0, want: 300},
		{name: "negative multiplier falls back", prompt: 100, multiplier: -1, want: 300},
		{name: "explicit multiplier", prompt: 100, multiplier: 2, want: 200},
		{name: "fractional result rounds up", prompt: 3, multiplier: 2.5, want: 8},
		{name: "zero prompt", prompt: 0, multiplier: 3, want: 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := EstimateRequiredTokens(tt.prompt, tt.multiplier); got != tt.want {
				t.Errorf("EstimateRequiredTokens(%d, %v) = %d, want %d", tt.prompt, tt.multiplier, got, tt.want)
			}
		})
	}
}

func TestBillableTokens(t *testing.T) {
	tests := []struct {
		name       string
		input      int
		output     int
		multiplier float64
		want       int64
	}{
		{name: "unit multiplier", input: 100, output: 200, multiplier: 1, want: 300},
		{name: "zero multiplier falls back to one", input: 50, output: 50, multiplier: 0, want: 100},
		{name: "markup rounds up", input: 10, output: 5, multiplier: 1.1, want: 17},
		{name: "no usage", input: 0, output: 0, multiplier: 2, want: 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := BillableTokens(tt.input, tt.output, tt.multiplier); got != tt.want {
				t.Errorf("BillableTokens(%d, %d, %v) = %d, want %d", tt.input, tt.output, tt.multiplier, got, tt.want)
			}
		})
	}
}
