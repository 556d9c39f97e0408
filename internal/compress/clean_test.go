package compress

import (
	"strings"
	"testing"
)

func TestCleanRemovesUIChrome(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"Copy code\nprint(1)", "print(1)"},
		{"Regenerate response", ""},
		{"Answer done.\nContinue generating", "Answer done."},
		{"ChatGPT said: hello", "hello"},
		{"You said: run it again", "run it again"},
		{"nice 👍 work 📋", "nice work"},
		{"Sent at 10:45 PM", "Sent at"},
		{"meeting at 9:30 AM UTC tomorrow", "meeting at tomorrow"},
	}

	for _, tt := range tests {
		if got := Clean(tt.in); got != tt.want {
			t.Errorf("Clean(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestCleanImagePlaceholder(t *testing.T) {
	got := Clean("see [Image of a diagram] above")
	if got != "see [image] above" {
		t.Errorf("got %q, want literal [image] marker", got)
	}
}

func TestCleanWhitespace(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"a\t\t b", "a b"},
		{"a\n\n\n\n\nb", "a\n\nb"},
		{"  padded  ", "padded"},
		{"a\n   \nb", "a\n\nb"},
	}

	for _, tt := range tests {
		if got := Clean(tt.in); got != tt.want {
			t.Errorf("Clean(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestCleanIdempotent(t *testing.T) {
	inputs := []string{
		"User text with [Image: chart] and 👍 reactions at 11:59 pm PST",
		"code:\n\n\tfunc main() {}\n\n\n\ndone Copy code",
		"a\n \n \nb",
		"ChatGPT said: ChatGPT said: nested",
		"",
		"   \n\t\n   ",
		"plain sentence, nothing to strip",
	}

	for _, in := range inputs {
		once := Clean(in)
		twice := Clean(once)
		if once != twice {
			t.Errorf("Clean not idempotent for %q:\n once: %q\ntwice: %q", in, once, twice)
		}
	}
}

func TestCleanKeepsTechnicalContent(t *testing.T) {
	in := "Use sqlite3.Open(path) and check err != nil"
	got := Clean(in)
	if !strings.Contains(got, "sqlite3.Open(path)") || !strings.Contains(got, "err != nil") {
		t.Errorf("technical content mangled: %q", got)
	}
}
