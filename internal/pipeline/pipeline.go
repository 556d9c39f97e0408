package pipeline

import (
	"context"
	"errors"
	"math"
	"strings"
	"time"

	"github.com/lazypower/ctxport/internal/compress"
	"github.com/lazypower/ctxport/internal/conversation"
)

// ErrEmptyInput means the raw text was empty or whitespace-only; the
// pipeline refuses to run and produces no partial output.
var ErrEmptyInput = errors.New("nothing to compress: input is empty")

// Stage names reported through Options.Progress, in pipeline order.
const (
	StageParse    = "parse"
	StageClean    = "clean"
	StageCompress = "compress"
	StageFormat   = "format"
	StageChunk    = "chunk"
)

// Summarizer is the optional AI compression tier.
type Summarizer interface {
	Summarize(ctx context.Context, messages []conversation.Message) (summary, method string, ok bool)
}

// Options configure a single pipeline run.
type Options struct {
	Source     string             // shown in the output header
	Target     string             // destination platform; sizes the chunks
	AIEnabled  bool               // try the summarizer tier before rule-based
	Summarizer Summarizer         // consulted only when AIEnabled
	Progress   func(stage string) // optional stage callback
}

// Result is the outcome of one pipeline run.
type Result struct {
	Messages         []conversation.Message
	Formatted        string
	Chunks           []string
	Method           string
	ReductionPercent int
	OriginalChars    int
	CompressedChars  int
	Summary          string
	GeneratedAt      time.Time
}

// Run drives parse, per-message clean, the compression tier(s), format, and
// chunking over raw conversation text. The summarizer is the only step that
// can block; it is bounded by its own timeout and any failure degrades to
// rule-based compression. The rule-based pass runs on every message even
// when an AI summary succeeded.
func Run(ctx context.Context, raw string, opts Options) (*Result, error) {
	if strings.TrimSpace(raw) == "" {
		return nil, ErrEmptyInput
	}
	step := opts.Progress
	if step == nil {
		step = func(string) {}
	}

	originalLen := len(raw)

	step(StageParse)
	messages := conversation.Parse(raw)

	step(StageClean)
	for i := range messages {
		messages[i].Content = compress.Clean(messages[i].Content)
	}

	step(StageCompress)
	method := "Rule-based"
	var summary string
	if opts.AIEnabled {
		if opts.Summarizer != nil {
			if s, m, ok := opts.Summarizer.Summarize(ctx, messages); ok {
				summary, method = s, m
			}
		}
		if summary == "" {
			method = "Rule-based (AI unavailable)"
		}
	}

	for i := range messages {
		messages[i].Content = compress.CompressRuleBased(messages[i].Content)
	}

	filtered := make([]conversation.Message, 0, len(messages))
	for _, m := range messages {
		if strings.TrimSpace(m.Content) != "" {
			filtered = append(filtered, m)
		}
	}

	// Reduction accounting references the AI summary length whenever one
	// exists, otherwise the surviving message contents.
	compressedLen := len(summary)
	if summary == "" {
		for _, m := range filtered {
			compressedLen += len(m.Content)
		}
	}

	step(StageFormat)
	meta := Metadata{
		Source:           opts.Source,
		MessageCount:     len(filtered),
		Method:           method,
		ReductionPercent: ReductionPercent(originalLen, compressedLen),
		AISummary:        summary,
		GeneratedAt:      time.Now(),
	}
	formatted := Format(filtered, meta)

	step(StageChunk)
	chunks := Chunk(formatted, compress.CharBudget(opts.Target))

	return &Result{
		Messages:         filtered,
		Formatted:        formatted,
		Chunks:           chunks,
		Method:           method,
		ReductionPercent: meta.ReductionPercent,
		OriginalChars:    originalLen,
		CompressedChars:  compressedLen,
		Summary:          summary,
		GeneratedAt:      meta.GeneratedAt,
	}, nil
}

// ReductionPercent is round((1 - compressed/original) × 100), clamped at 0.
func ReductionPercent(originalLen, compressedLen int) int {
	if originalLen <= 0 {
		return 0
	}
	pct := int(math.Round((1 - float64(compressedLen)/float64(originalLen)) * 100))
	if pct < 0 {
		return 0
	}
	return pct
}
