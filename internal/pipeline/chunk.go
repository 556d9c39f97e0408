package pipeline

import (
	"fmt"
	"strings"
)

// chunkReserve keeps room in each chunk for its own header.
const chunkReserve = 300

// Chunk splits a document into ordered, size-bounded pieces on line
// boundaries. A document already within budget comes back as the sole,
// unlabeled element. Splits never happen mid-line: a single line longer
// than the budget stays whole and its chunk may exceed the nominal limit.
// Stripping headers and joining the bodies with newlines reproduces the
// document exactly.
func Chunk(doc string, maxChars int) []string {
	if len(doc) <= maxChars {
		return []string{doc}
	}

	var bodies []string
	var current []string
	currentLen := 0

	for _, line := range strings.Split(doc, "\n") {
		if len(current) > 0 && currentLen+1+len(line) > maxChars-chunkReserve {
			bodies = append(bodies, strings.Join(current, "\n"))
			current = nil
			currentLen = 0
		}
		if len(current) > 0 {
			currentLen++
		}
		current = append(current, line)
		currentLen += len(line)
	}
	if len(current) > 0 {
		bodies = append(bodies, strings.Join(current, "\n"))
	}

	chunks := make([]string, len(bodies))
	for i, body := range bodies {
		chunks[i] = fmt.Sprintf("[CHUNK %d of %d] — Paste all chunks in order for full context.\n\n%s",
			i+1, len(bodies), body)
	}
	return chunks
}

// StripChunkHeader returns a chunk's body with its header removed. Chunks
// without a header (the single-piece case) come back unchanged.
func StripChunkHeader(chunk string) string {
	if !strings.HasPrefix(chunk, "[CHUNK ") {
		return chunk
	}
	if i := strings.Index(chunk, "\n\n"); i >= 0 {
		return chunk[i+2:]
	}
	return chunk
}
