package llm

import "context"

// MockClient is a test double for the Client interface.
type MockClient struct {
	Response *Response
	Err      error
	Block    bool // wait for ctx cancellation before returning
	Calls    []string
}

// Complete records the call and returns the mock response. With Block set
// it hangs until the context is done, for exercising timeout paths.
func (m *MockClient) Complete(ctx context.Context, prompt string) (*Response, error) {
	m.Calls = append(m.Calls, prompt)
	if m.Block {
		<-ctx.Done()
		return nil, ctx.Err()
	}
	return m.Response, m.Err
}
