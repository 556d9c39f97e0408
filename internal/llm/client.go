package llm

import (
	"context"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/lazypower/ctxport/internal/config"
	"github.com/lazypower/ctxport/internal/conversation"
)

// DefaultTimeout bounds a single summarization attempt.
const DefaultTimeout = 60 * time.Second

// Client is the interface for summarizer providers.
type Client interface {
	Complete(ctx context.Context, prompt string) (*Response, error)
}

// Response holds the result of a provider completion.
type Response struct {
	Content  string
	Provider string
}

// Provider couples a client with the user-visible compression method name
// it reports when its summary is used.
type Provider struct {
	Method string
	Client Client
}

// Summarizer tries providers in a fixed preference order and uses the first
// non-empty result. Failures never escape this boundary: on total failure
// the summary is empty and ok is false, and the caller falls back to
// rule-based compression.
type Summarizer struct {
	Providers []Provider
	Timeout   time.Duration
}

// NewSummarizer builds the provider chain from config: Ollama first, then
// the Chrome AI bridge.
func NewSummarizer(cfg config.LLMConfig) *Summarizer {
	timeout := DefaultTimeout
	if cfg.TimeoutSeconds > 0 {
		timeout = time.Duration(cfg.TimeoutSeconds) * time.Second
	}
	return &Summarizer{
		Providers: []Provider{
			{Method: "Ollama AI", Client: NewOllama(cfg.OllamaURL, cfg.OllamaModel)},
			{Method: "Chrome AI", Client: NewChromeAI(cfg.ChromeAIURL)},
		},
		Timeout: timeout,
	}
}

// Summarize sends the conversation to each provider in turn, bounded by a
// per-attempt timeout, and returns the first non-empty summary together
// with the method name of the provider that produced it.
func (s *Summarizer) Summarize(ctx context.Context, messages []conversation.Message) (summary, method string, ok bool) {
	prompt := CompressionPrompt(messages)
	timeout := s.Timeout
	if timeout <= 0 {
		timeout = DefaultTimeout
	}

	for _, p := range s.Providers {
		attempt, cancel := context.WithTimeout(ctx, timeout)
		resp, err := p.Client.Complete(attempt, prompt)
		cancel()
		if err != nil {
			fmt.Fprintf(os.Stderr, "summarizer %s: %v\n", p.Method, err)
			continue
		}
		if resp == nil || strings.TrimSpace(resp.Content) == "" {
			continue
		}
		return resp.Content, p.Method, true
	}
	return "", "", false
}
