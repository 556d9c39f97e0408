package llm

import (
	"fmt"
	"strings"

	"github.com/lazypower/ctxport/internal/conversation"
)

// CompressionPrompt builds the instruction sent to a summarizer provider.
func CompressionPrompt(messages []conversation.Message) string {
	var b strings.Builder
	for i, m := range messages {
		if i > 0 {
			b.WriteString("\n")
		}
		fmt.Fprintf(&b, "[%s]: %s", m.Role, m.Content)
	}

	return fmt.Sprintf(`You are a conversation compressor. Your job is to compress the following conversation into a compact summary that preserves ALL important context, decisions, code changes, errors, solutions, and action items.

RULES:
- Remove ALL greetings, filler, pleasantries, and redundant text
- Keep ALL technical details, file names, code snippets, decisions, and errors
- Use bullet points for clarity
- Preserve the chronological order
- Keep it under 40%% of the original length
- Format so another AI can read this and continue the work seamlessly

CONVERSATION TO COMPRESS:
%s

COMPRESSED SUMMARY:`, b.String())
}
