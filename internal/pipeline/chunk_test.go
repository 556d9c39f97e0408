package pipeline

import (
	"fmt"
	"strings"
	"testing"
)

func buildDoc(lines int) string {
	var b strings.Builder
	for i := 0; i < lines; i++ {
		fmt.Fprintf(&b, "line %03d %s\n", i, strings.Repeat("x", 70))
	}
	return strings.TrimSuffix(b.String(), "\n")
}

func reassemble(chunks []string) string {
	bodies := make([]string, len(chunks))
	for i, c := range chunks {
		bodies[i] = StripChunkHeader(c)
	}
	return strings.Join(bodies, "\n")
}

func TestChunkFitsInBudget(t *testing.T) {
	doc := "a short document\nwith two lines"

	chunks := Chunk(doc, 1000)
	if len(chunks) != 1 {
		t.Fatalf("expected 1 chunk, got %d", len(chunks))
	}
	if chunks[0] != doc {
		t.Errorf("single chunk must equal the document, got %q", chunks[0])
	}
}

func TestChunkSplitsOnLineBoundaries(t *testing.T) {
	doc := buildDoc(50) // ~4000 chars
	budget := 1000

	chunks := Chunk(doc, budget)
	if len(chunks) < 2 {
		t.Fatalf("expected multiple chunks, got %d", len(chunks))
	}

	for i, c := range chunks {
		want := fmt.Sprintf("[CHUNK %d of %d] — Paste all chunks in order for full context.\n\n", i+1, len(chunks))
		if !strings.HasPrefix(c, want) {
			t.Errorf("chunk %d header = %q", i, c[:min(len(c), 60)])
		}
		if body := StripChunkHeader(c); len(body) > budget-chunkReserve {
			t.Errorf("chunk %d body is %d chars, over budget-%d", i, len(body), chunkReserve)
		}
	}

	if got := reassemble(chunks); got != doc {
		t.Error("reassembled chunks do not reproduce the document")
	}
}

func TestChunkNeverSplitsALine(t *testing.T) {
	long := strings.Repeat("y", 2000)
	doc := "before\n" + long + "\nafter\n" + buildDoc(20)

	chunks := Chunk(doc, 1000)
	found := false
	for _, c := range chunks {
		if strings.Contains(c, long) {
			found = true
		}
	}
	if !found {
		t.Error("over-long line was split across chunks")
	}
	if got := reassemble(chunks); got != doc {
		t.Error("reassembled chunks do not reproduce the document")
	}
}

func TestChunkTrailingNewline(t *testing.T) {
	doc := buildDoc(50) + "\n"

	chunks := Chunk(doc, 1000)
	if got := reassemble(chunks); got != doc {
		t.Errorf("trailing newline lost: want %d chars, got %d", len(doc), len(got))
	}
}

func TestStripChunkHeaderPassthrough(t *testing.T) {
	if got := StripChunkHeader("no header here"); got != "no header here" {
		t.Errorf("got %q", got)
	}
}
