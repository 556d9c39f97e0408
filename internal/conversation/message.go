package conversation

import (
	"fmt"
	"strings"
	"time"
)

// Role is the canonical speaker category of a message.
type Role string

const (
	RoleUser      Role = "USER"
	RoleAssistant Role = "ASSISTANT"
	RoleSystem    Role = "SYSTEM"

	// RoleConversation marks text with no detectable speaker structure:
	// the whole input is carried as one untagged message.
	RoleConversation Role = "conversation"
)

// Message is one speaker turn.
type Message struct {
	Role    Role   `json:"role"`
	Content string `json:"content"`
}

var userAliases = map[string]bool{
	"user":  true,
	"human": true,
	"you":   true,
}

var assistantAliases = map[string]bool{
	"assistant": true,
	"chatgpt":   true,
	"ai":        true,
	"claude":    true,
	"gemini":    true,
	"copilot":   true,
	"bot":       true,
}

// NormalizeRole maps a free-form speaker label to a canonical role.
// Unknown labels default to USER; the function is total.
func NormalizeRole(label string) Role {
	r := strings.ToLower(strings.TrimSpace(label))
	switch {
	case userAliases[r]:
		return RoleUser
	case assistantAliases[r]:
		return RoleAssistant
	case r == "system":
		return RoleSystem
	default:
		return RoleUser
	}
}

// ScrapeResult is the payload a platform scraper delivers. The scraping
// itself lives in the browser extension; this side only ingests the result.
type ScrapeResult struct {
	Platform     string    `json:"platform"`
	Messages     []Message `json:"messages"`
	URL          string    `json:"url"`
	Title        string    `json:"title"`
	Timestamp    time.Time `json:"timestamp"`
	MessageCount int       `json:"messageCount"`
}

// Flatten renders scraped messages as "ROLE: content" text, the form the
// parser expects as raw input.
func (s *ScrapeResult) Flatten() string {
	parts := make([]string, 0, len(s.Messages))
	for _, m := range s.Messages {
		parts = append(parts, fmt.Sprintf("%s: %s", m.Role, m.Content))
	}
	return strings.Join(parts, "\n\n")
}
