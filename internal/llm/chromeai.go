package llm

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"
)

const chromeAISystemPrompt = "You are a conversation compressor. Compress conversations into compact summaries preserving all important context, decisions, code, errors, and action items. Remove filler and redundancy."

// ChromeAI talks to the browser's built-in language model through the
// extension's local bridge endpoint. The bridge exposes a single prompt
// route and relays it to the in-browser model session.
type ChromeAI struct {
	url    string
	client *http.Client
}

// NewChromeAI creates a bridge client. An empty url falls back to the
// extension bridge's default port.
func NewChromeAI(url string) *ChromeAI {
	if url == "" {
		url = "http://localhost:11435"
	}
	return &ChromeAI{
		url:    url,
		client: &http.Client{Timeout: 120 * time.Second},
	}
}

// ProbeChromeAI reports whether the bridge answers at url.
func ProbeChromeAI(url string) bool {
	if url == "" {
		url = "http://localhost:11435"
	}
	ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
	defer cancel()

	req, err := http.NewRequestWithContext(ctx, "GET", url+"/v1/capabilities", nil)
	if err != nil {
		return false
	}
	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		return false
	}
	defer resp.Body.Close()
	return resp.StatusCode == http.StatusOK
}

// Complete sends a prompt through the bridge.
func (c *ChromeAI) Complete(ctx context.Context, prompt string) (*Response, error) {
	reqBody := map[string]any{
		"system_prompt": chromeAISystemPrompt,
		"prompt":        prompt,
	}

	body, err := json.Marshal(reqBody)
	if err != nil {
		return nil, fmt.Errorf("marshal request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, "POST", c.url+"/v1/prompt", bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("chrome ai bridge: %w", err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("read response: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("chrome ai bridge status %d: %s", resp.StatusCode, respBody)
	}

	var result struct {
		Response string `json:"response"`
	}
	if err := json.Unmarshal(respBody, &result); err != nil {
		return nil, fmt.Errorf("decode response: %w", err)
	}

	return &Response{
		Content:  result.Response,
		Provider: "chrome-ai",
	}, nil
}
