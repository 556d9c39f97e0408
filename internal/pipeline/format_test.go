package pipeline

import (
	"strings"
	"testing"
	"time"

	"github.com/lazypower/ctxport/internal/conversation"
)

var formatTime = time.Date(2024, 3, 1, 12, 30, 0, 0, time.UTC)

func TestFormatHeader(t *testing.T) {
	msgs := []conversation.Message{
		{Role: conversation.RoleUser, Content: "deploy the webhook service"},
	}
	meta := Metadata{
		Source:           "chatgpt",
		MessageCount:     1,
		Method:           "Rule-based",
		ReductionPercent: 42,
		GeneratedAt:      formatTime,
	}

	out := Format(msgs, meta)

	for _, want := range []string{
		"=== AI CONTEXT TRANSFER ===",
		"Source: chatgpt",
		"Messages: 1",
		"Compressed: 42% smaller than original",
		"Method: Rule-based",
		"Generated: 2024-03-01T12:30:00Z",
		"Tool: ctxport",
		"--- CONVERSATION START ---",
		"--- CONVERSATION END ---",
		"Do NOT ask the user to repeat information",
		"Please continue from here.",
	} {
		if !strings.Contains(out, want) {
			t.Errorf("output missing %q", want)
		}
	}
}

func TestFormatDefaultSource(t *testing.T) {
	out := Format(nil, Metadata{GeneratedAt: formatTime})
	if !strings.Contains(out, "Source: Exported conversation") {
		t.Error("missing default source")
	}
}

func TestFormatTopicsLine(t *testing.T) {
	msgs := []conversation.Message{
		{Role: conversation.RoleUser, Content: "postgres migration postgres schema"},
	}

	out := Format(msgs, Metadata{GeneratedAt: formatTime})
	if !strings.Contains(out, "KEY TOPICS: postgres, migration, schema") {
		t.Errorf("topics line wrong:\n%s", out)
	}
}

func TestFormatOmitsEmptyTopics(t *testing.T) {
	msgs := []conversation.Message{
		{Role: conversation.RoleUser, Content: "the and for you"},
	}

	out := Format(msgs, Metadata{GeneratedAt: formatTime})
	if strings.Contains(out, "KEY TOPICS") {
		t.Error("topics line should be omitted when no topics exist")
	}
}

func TestFormatMessageList(t *testing.T) {
	msgs := []conversation.Message{
		{Role: conversation.RoleUser, Content: "question body"},
		{Role: conversation.RoleAssistant, Content: "answer body"},
	}

	out := Format(msgs, Metadata{MessageCount: 2, GeneratedAt: formatTime})
	if !strings.Contains(out, "[USER]\nquestion body\n\n") {
		t.Error("user message not rendered under role tag")
	}
	if !strings.Contains(out, "[ASSISTANT]\nanswer body\n\n") {
		t.Error("assistant message not rendered under role tag")
	}
}

func TestFormatUsesSummaryVerbatim(t *testing.T) {
	msgs := []conversation.Message{
		{Role: conversation.RoleUser, Content: "question body"},
	}
	meta := Metadata{
		MessageCount: 1,
		AISummary:    "- user asked about X\n- decided on Y",
		GeneratedAt:  formatTime,
	}

	out := Format(msgs, meta)
	if !strings.Contains(out, "- user asked about X\n- decided on Y") {
		t.Error("summary not embedded verbatim")
	}
	if strings.Contains(out, "[USER]\nquestion body") {
		t.Error("message list should be replaced by the summary")
	}
}

func TestFormatDeterministic(t *testing.T) {
	msgs := []conversation.Message{
		{Role: conversation.RoleUser, Content: "same input"},
	}
	meta := Metadata{MessageCount: 1, GeneratedAt: formatTime}

	if Format(msgs, meta) != Format(msgs, meta) {
		t.Error("identical inputs produced different documents")
	}
}
