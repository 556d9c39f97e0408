package pipeline

import (
	"fmt"
	"strings"
	"time"

	"github.com/lazypower/ctxport/internal/compress"
	"github.com/lazypower/ctxport/internal/conversation"
)

const toolIdentity = "ctxport"

// Metadata describes a single pipeline run. It is created fresh per run,
// consumed once by the formatter, and discarded.
type Metadata struct {
	Source           string
	MessageCount     int
	Method           string
	ReductionPercent int
	AISummary        string
	GeneratedAt      time.Time
}

// Format assembles the instructional transfer document: header block,
// reader instruction, key topics, then either the AI summary verbatim or
// every message under its role tag. Deterministic for identical inputs
// apart from the embedded timestamp.
func Format(messages []conversation.Message, meta Metadata) string {
	source := meta.Source
	if source == "" {
		source = "Exported conversation"
	}

	var b strings.Builder
	b.WriteString("=== AI CONTEXT TRANSFER ===\n")
	fmt.Fprintf(&b, "Source: %s\n", source)
	fmt.Fprintf(&b, "Messages: %d\n", meta.MessageCount)
	fmt.Fprintf(&b, "Compressed: %d%% smaller than original\n", meta.ReductionPercent)
	fmt.Fprintf(&b, "Method: %s\n", meta.Method)
	fmt.Fprintf(&b, "Generated: %s\n", meta.GeneratedAt.UTC().Format(time.RFC3339))
	fmt.Fprintf(&b, "Tool: %s\n", toolIdentity)
	b.WriteString("===========================\n\n")

	b.WriteString("INSTRUCTION FOR AI: This is a compressed version of a previous conversation " +
		"from another AI platform. Please read it carefully to understand the full context, " +
		"then continue helping the user from where this conversation left off. " +
		"Do NOT ask the user to repeat information that is already provided below.\n\n")

	if topics := compress.ExtractTopics(messages); len(topics) > 0 {
		fmt.Fprintf(&b, "KEY TOPICS: %s\n\n", strings.Join(topics, ", "))
	}

	b.WriteString("--- CONVERSATION START ---\n\n")

	if meta.AISummary != "" {
		b.WriteString(meta.AISummary)
		b.WriteString("\n\n")
	} else {
		for _, m := range messages {
			fmt.Fprintf(&b, "[%s]\n%s\n\n", m.Role, m.Content)
		}
	}

	b.WriteString("--- CONVERSATION END ---\n\n")
	b.WriteString("Please continue from here. The user may ask follow-up questions or request changes " +
		"based on the context above.\n")

	return b.String()
}
