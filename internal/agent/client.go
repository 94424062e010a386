package agent

import (
	"bufio"
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"

	"github.com/google/uuid"
)

const defaultBaseURL = "https://api.wayfound.ai"

// Option configures a Client.
type Option func(*Client)

// Client talks to the agent-orchestration service. A single Query opens one
// streaming session.
type Client struct {
	// APIKey is sent as Authorization: Bearer <APIKey>.
	APIKey string
	// BaseURL defaults to https://api.wayfound.ai.
	BaseURL    string
	HTTPClient *http.Client
}

// WithBaseURL overrides the default API base URL.
func WithBaseURL(baseURL string) Option {
	return func(c *Client) {
		c.BaseURL = normalizeBaseURL(baseURL)
	}
}

// WithHTTPClient supplies a custom HTTP client.
func WithHTTPClient(client *http.Client) Option {
	return func(c *Client) {
		c.HTTPClient = client
	}
}

func New(apiKey string, opts ...Option) *Client {
	client := &Client{
		APIKey:     apiKey,
		BaseURL:    defaultBaseURL,
		HTTPClient: &http.Client{Timeout: 0}, // no timeout for streams
	}
	for _, opt := range opts {
		if opt != nil {
			opt(client)
		}
	}
	client.BaseURL = normalizeBaseURL(client.BaseURL)
	if client.HTTPClient == nil {
		client.HTTPClient = &http.Client{Timeout: 0}
	}
	return client
}

// queryRequest is the payload for POST /v1/agent/stream.
type queryRequest struct {
	RequestID    string                     `json:"request_id"`
	Prompt       string                     `json:"prompt"`
	Model        string                     `json:"model,omitempty"`
	MaxTurns     int                        `json:"max_turns,omitempty"`
	AllowedTools []string                   `json:"allowed_tools,omitempty"`
	Agents       map[string]AgentDefinition `json:"agents,omitempty"`
	MCPServers   map[string]MCPServer       `json:"mcp_servers,omitempty"`
}

// Stream delivers the session's event records in order. Messages blocks
// between records at the producer's pace; the channel closes when the
// producer stops or the context is cancelled. Err reports the terminal
// error, if any, once the channel has closed.
type Stream struct {
	ch  chan Message
	err error
}

// Messages returns the record channel. Range over it until it closes.
func (s *Stream) Messages() <-chan Message { return s.ch }

// Err returns the error that terminated the stream, or nil on clean EOF.
// Only valid after Messages has closed.
func (s *Stream) Err() error { return s.err }

// Query starts an orchestration session and returns its event stream.
// Permission checks interleaved with the stream are answered via
// opts.CanUseTool from the reader goroutine and are not delivered to the
// caller.
func (c *Client) Query(ctx context.Context, prompt string, opts Options) (*Stream, error) {
	payload, err := json.Marshal(queryRequest{
		RequestID:    uuid.NewString(),
		Prompt:       prompt,
		Model:        opts.Model,
		MaxTurns:     opts.MaxTurns,
		AllowedTools: opts.AllowedTools,
		Agents:       opts.Agents,
		MCPServers:   opts.MCPServers,
	})
	if err != nil {
		return nil, fmt.Errorf("marshal request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.BaseURL+"/v1/agent/stream", bytes.NewReader(payload))
	if err != nil {
		return nil, fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "text/event-stream")
	if c.APIKey != "" {
		req.Header.Set("Authorization", "Bearer "+c.APIKey)
	}

	resp, err := c.HTTPClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("do request: %w", err)
	}
	if resp.StatusCode != http.StatusOK {
		return nil, parseAPIError(resp)
	}

	stream := &Stream{ch: make(chan Message)}
	go c.consume(ctx, resp.Body, opts.CanUseTool, stream)
	return stream, nil
}

// consume reads SSE payloads off the response body, answers control
// requests, and forwards event records until EOF, error or cancellation.
func (c *Client) consume(ctx context.Context, body io.ReadCloser, canUseTool PermissionFunc, stream *Stream) {
	defer close(stream.ch)
	defer body.Close()

	var sessionID string

	err := scanSSE(body, func(data []byte) bool {
		msg, ctrl, err := decodeRecord(data)
		if err != nil {
			stream.err = err
			return false
		}

		if ctrl != nil {
			decision := Allow(ctrl.Input)
			if canUseTool != nil {
				decision = canUseTool(ctrl.ToolName, ctrl.Input)
			}
			if err := c.respondControl(ctx, sessionID, ctrl.RequestID, decision); err != nil {
				stream.err = err
				return false
			}
			return true
		}
		if msg == nil {
			return true // unknown record type, skip
		}

		if init, ok := msg.(*SystemInit); ok {
			sessionID = init.SessionID
		}

		select {
		case stream.ch <- msg:
			// The result record is the natural end of the stream; stop
			// reading even if the producer lingers.
			_, done := msg.(*Result)
			return !done
		case <-ctx.Done():
			stream.err = ctx.Err()
			return false
		}
	})
	if err != nil && stream.err == nil {
		stream.err = err
	}
}

// respondControl posts a permission decision back to the orchestrator.
func (c *Client) respondControl(ctx context.Context, sessionID, requestID string, decision PermissionDecision) error {
	payload, err := json.Marshal(decision)
	if err != nil {
		return fmt.Errorf("marshal decision: %w", err)
	}

	url := fmt.Sprintf("%s/v1/agent/%s/control/%s", c.BaseURL, sessionID, requestID)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(payload))
	if err != nil {
		return fmt.Errorf("build control response: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	if c.APIKey != "" {
		req.Header.Set("Authorization", "Bearer "+c.APIKey)
	}

	resp, err := c.HTTPClient.Do(req)
	if err != nil {
		return fmt.Errorf("send control response: %w", err)
	}
	defer resp.Body.Close()
	io.Copy(io.Discard, resp.Body)

	if resp.StatusCode != http.StatusOK && resp.StatusCode != http.StatusAccepted {
		return fmt.Errorf("control response rejected: %s", resp.Status)
	}
	return nil
}

func parseAPIError(resp *http.Response) error {
	defer resp.Body.Close()

	body, _ := io.ReadAll(resp.Body)
	var apiErr struct {
		Type    string `json:"type"`
		Message string `json:"message"`
	}
	if err := json.Unmarshal(body, &apiErr); err == nil && (apiErr.Message != "" || apiErr.Type != "") {
		return fmt.Errorf("api error %s: %s", apiErr.Type, apiErr.Message)
	}
	if len(body) == 0 {
		return fmt.Errorf("unexpected status %s", resp.Status)
	}
	return fmt.Errorf("unexpected status %s: %s", resp.Status, string(body))
}

// scanSSE reads server-sent events and hands each complete data payload to
// emit. Multi-line data fields are joined with newlines per the SSE spec;
// comment lines and non-data fields are ignored. emit returning false stops
// the scan.
func scanSSE(r io.Reader, emit func(data []byte) bool) error {
	reader := bufio.NewReader(r)

	var dataBuf strings.Builder
	keepGoing := true

	flush := func() {
		if !keepGoing || dataBuf.Len() == 0 {
			dataBuf.Reset()
			return
		}
		if !emit([]byte(dataBuf.String())) {
			keepGoing = false
		}
		dataBuf.Reset()
	}

	for keepGoing {
		line, err := reader.ReadString('\n')
		line = strings.TrimRight(line, "\r\n")

		switch {
		case line == "":
			flush()
		case strings.HasPrefix(line, ":"):
			// comment, ignore
		case strings.HasPrefix(line, "data:"):
			value := strings.TrimPrefix(line[len("data:"):], " ")
			if dataBuf.Len() > 0 {
				dataBuf.WriteByte('\n')
			}
			dataBuf.WriteString(value)
		}

		if err != nil {
			flush()
			if err == io.EOF {
				return nil
			}
			return err
		}
	}
	return nil
}

func normalizeBaseURL(baseURL string) string {
	if baseURL == "" {
		return defaultBaseURL
	}
	return strings.TrimRight(baseURL, "/")
}
