package transport

import (
	"strings"
	"testing"
)

func TestTargetURL(t *testing.T) {
	tests := []struct {
		target string
		url    string
	}{
		{"chatgpt", "https://chatgpt.com/"},
		{"claude", "https://claude.ai/new"},
		{"gemini", "https://gemini.google.com/app"},
		{"copilot", "https://copilot.microsoft.com/"},
	}
	for _, tt := range tests {
		url, ok := TargetURL(tt.target)
		if !ok {
			t.Errorf("TargetURL(%q) not found", tt.target)
			continue
		}
		if url != tt.url {
			t.Errorf("TargetURL(%q) = %q, want %q", tt.target, url, tt.url)
		}
	}

	if _, ok := TargetURL("bing"); ok {
		t.Error("expected unknown target to miss")
	}
}

func TestTargetsSorted(t *testing.T) {
	targets := Targets()
	if len(targets) != 4 {
		t.Fatalf("got %d targets, want 4", len(targets))
	}
	joined := strings.Join(targets, ",")
	if joined != "chatgpt,claude,copilot,gemini" {
		t.Errorf("Targets() = %s, want chatgpt,claude,copilot,gemini", joined)
	}
}

type fakeHandoffs struct {
	text   string
	target string
	calls  int
}

func (f *fakeHandoffs) SetPendingHandoff(text, target string) error {
	f.text = text
	f.target = target
	f.calls++
	return nil
}

func TestTeleportUnknownTarget(t *testing.T) {
	store := &fakeHandoffs{}
	err := Teleport(store, "bing", "some text")
	if err == nil {
		t.Fatal("expected error for unknown target")
	}
	if store.calls != 0 {
		t.Errorf("handoff recorded for unknown target")
	}
}

func TestTeleportEmptyText(t *testing.T) {
	if err := Teleport(nil, "claude", ""); err == nil {
		t.Fatal("expected error for empty text")
	}
}
