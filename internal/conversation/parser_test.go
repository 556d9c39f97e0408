package conversation

import (
	"strings"
	"testing"
)

func TestParseLabeledTurns(t *testing.T) {
	text := "User: Hi, how are you?\n\nChatGPT: I'm doing well, thanks! Here's the code: print(1)"

	msgs := Parse(text)
	if len(msgs) != 2 {
		t.Fatalf("expected 2 messages, got %d: %+v", len(msgs), msgs)
	}
	if msgs[0].Role != RoleUser {
		t.Errorf("msgs[0].Role = %q, want USER", msgs[0].Role)
	}
	if msgs[0].Content != "Hi, how are you?" {
		t.Errorf("msgs[0].Content = %q", msgs[0].Content)
	}
	if msgs[1].Role != RoleAssistant {
		t.Errorf("msgs[1].Role = %q, want ASSISTANT", msgs[1].Role)
	}
	if msgs[1].Content != "I'm doing well, thanks! Here's the code: print(1)" {
		t.Errorf("msgs[1].Content = %q", msgs[1].Content)
	}
}

func TestParseCaseInsensitiveLabels(t *testing.T) {
	text := "HUMAN: question one\nclaude: answer one\nHuman: question two"

	msgs := Parse(text)
	if len(msgs) != 3 {
		t.Fatalf("expected 3 messages, got %d", len(msgs))
	}
	if msgs[0].Role != RoleUser || msgs[1].Role != RoleAssistant || msgs[2].Role != RoleUser {
		t.Errorf("roles = %q %q %q", msgs[0].Role, msgs[1].Role, msgs[2].Role)
	}
}

func TestParseMultilineTurnContent(t *testing.T) {
	text := "User: first line\nstill the first turn\n\nAssistant: reply line\nreply continues"

	msgs := Parse(text)
	if len(msgs) != 2 {
		t.Fatalf("expected 2 messages, got %d: %+v", len(msgs), msgs)
	}
	if !strings.Contains(msgs[0].Content, "still the first turn") {
		t.Errorf("turn body lost continuation: %q", msgs[0].Content)
	}
	if !strings.Contains(msgs[1].Content, "reply continues") {
		t.Errorf("reply body lost continuation: %q", msgs[1].Content)
	}
}

func TestParseLabelNotInsideWord(t *testing.T) {
	// "Username:" and "Maybot:" must not start turns; with no real labels the
	// whole text falls through to a single conversation message.
	text := "Username: alice\nMaybot: is a band"

	msgs := Parse(text)
	if len(msgs) != 1 {
		t.Fatalf("expected 1 message, got %d: %+v", len(msgs), msgs)
	}
	if msgs[0].Role != RoleConversation {
		t.Errorf("role = %q, want conversation sentinel", msgs[0].Role)
	}
	if !strings.Contains(msgs[0].Content, "Username: alice") {
		t.Errorf("content lost: %q", msgs[0].Content)
	}
}

func TestParseLineFallbackSingleLabel(t *testing.T) {
	// One label occurrence is below the two-label threshold, so the
	// line-based scan handles it.
	text := "some preamble without labels\nUser: the actual question\nwith a second line"

	msgs := Parse(text)
	if len(msgs) != 2 {
		t.Fatalf("expected 2 messages, got %d: %+v", len(msgs), msgs)
	}
	if msgs[0].Role != RoleConversation {
		t.Errorf("msgs[0].Role = %q, want conversation", msgs[0].Role)
	}
	if msgs[1].Role != RoleUser {
		t.Errorf("msgs[1].Role = %q, want USER", msgs[1].Role)
	}
	if !strings.Contains(msgs[1].Content, "with a second line") {
		t.Errorf("accumulated content = %q", msgs[1].Content)
	}
}

func TestParseSingleBlobFallback(t *testing.T) {
	text := "  just a plain paragraph of text with no speakers at all  "

	msgs := Parse(text)
	if len(msgs) != 1 {
		t.Fatalf("expected 1 message, got %d", len(msgs))
	}
	if msgs[0].Role != RoleConversation {
		t.Errorf("role = %q, want conversation", msgs[0].Role)
	}
	if msgs[0].Content != "just a plain paragraph of text with no speakers at all" {
		t.Errorf("content = %q", msgs[0].Content)
	}
}

func TestParseDropsEmptyTurns(t *testing.T) {
	text := "User:\nAssistant: only this turn has content\nUser: and this one"

	msgs := Parse(text)
	for _, m := range msgs {
		if strings.TrimSpace(m.Content) == "" {
			t.Errorf("empty-content message survived: %+v", m)
		}
	}
	if len(msgs) != 2 {
		t.Fatalf("expected 2 messages, got %d: %+v", len(msgs), msgs)
	}
}

func TestParseNeverEmpty(t *testing.T) {
	inputs := []string{
		"hello world",
		"User: hi\nAssistant: hello",
		"no labels here\njust lines",
	}
	for _, in := range inputs {
		if msgs := Parse(in); len(msgs) == 0 {
			t.Errorf("Parse(%q) returned no messages", in)
		}
	}
}

func TestParsePreservesContentLines(t *testing.T) {
	text := "User: alpha beta\n\nAssistant: gamma delta\nepsilon zeta\n\nUser: eta theta"

	msgs := Parse(text)
	var joined strings.Builder
	for _, m := range msgs {
		joined.WriteString(m.Content)
		joined.WriteString("\n")
	}
	for _, want := range []string{"alpha beta", "gamma delta", "epsilon zeta", "eta theta"} {
		if !strings.Contains(joined.String(), want) {
			t.Errorf("line %q lost in parse", want)
		}
	}
}

func TestNormalizeRole(t *testing.T) {
	tests := []struct {
		label string
		want  Role
	}{
		{"user", RoleUser},
		{"human", RoleUser},
		{"You", RoleUser},
		{"  USER  ", RoleUser},
		{"assistant", RoleAssistant},
		{"ChatGPT", RoleAssistant},
		{"ai", RoleAssistant},
		{"Claude", RoleAssistant},
		{"gemini", RoleAssistant},
		{"Copilot", RoleAssistant},
		{"bot", RoleAssistant},
		{"system", RoleSystem},
		{"SYSTEM", RoleSystem},
		{"narrator", RoleUser},
		{"", RoleUser},
	}

	for _, tt := range tests {
		if got := NormalizeRole(tt.label); got != tt.want {
			t.Errorf("NormalizeRole(%q) = %q, want %q", tt.label, got, tt.want)
		}
	}
}

func TestScrapeResultFlatten(t *testing.T) {
	s := &ScrapeResult{
		Platform: "chatgpt",
		Messages: []Message{
			{Role: RoleUser, Content: "hello"},
			{Role: RoleAssistant, Content: "hi there"},
		},
	}

	got := s.Flatten()
	want := "USER: hello\n\nASSISTANT: hi there"
	if got != want {
		t.Errorf("Flatten() = %q, want %q", got, want)
	}
}
