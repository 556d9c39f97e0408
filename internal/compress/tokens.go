package compress

import (
	"strconv"
	"strings"
)

const charsPerToken = 4

// tokenBudgets is the per-destination token allowance used to size chunks.
var tokenBudgets = map[string]int{
	"auto":    8000,
	"chatgpt": 8000,
	"claude":  100000,
	"gemini":  32000,
	"copilot": 4000,
}

// CharBudget returns the chunking character budget for a destination
// (tokens × 4). Unknown targets get the conservative default.
func CharBudget(target string) int {
	tokens, ok := tokenBudgets[strings.ToLower(target)]
	if !ok {
		tokens = tokenBudgets["auto"]
	}
	return tokens * charsPerToken
}

// EstimateTokens approximates the token count of text at ~4 chars/token.
func EstimateTokens(text string) int {
	return (len(text) + charsPerToken - 1) / charsPerToken
}

// FormatSize renders a character count compactly: 320, 1.5K, 2.30M.
func FormatSize(n int) string {
	switch {
	case n < 1000:
		return strconv.Itoa(n)
	case n < 1000000:
		return strconv.FormatFloat(float64(n)/1000, 'f', 1, 64) + "K"
	default:
		return strconv.FormatFloat(float64(n)/1000000, 'f', 2, 64) + "M"
	}
}
