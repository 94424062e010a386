package agent

import (
	"encoding/json"
	"fmt"
)

// Tool names with renderer- or policy-visible semantics.
const (
	// TaskToolName is the delegation tool. Its input names the sub-agent
	// that handles the delegated prompt.
	TaskToolName = "Task"

	// WebSearchToolName is rate limited by the supervisor service per run.
	WebSearchToolName = "WebSearch"
)

// Stream delta sub-kinds carried by stream_event records.
const (
	DeltaMessageStart = "message_start"
	DeltaText         = "text_delta"
	DeltaMessageStop  = "message_stop"
)

// Result subtypes.
const ResultSuccess = "success"

// Message is a single record in the orchestration event stream. The concrete
// type is one of SystemInit, UserMessage, StreamDelta, AssistantMessage or
// Result.
type Message interface {
	messageType() string
}

// SystemInit is always the first record of a stream. It announces the
// session and what the orchestrator has been configured with.
type SystemInit struct {
	SessionID string   `json:"session_id"`
	Model     string   `json:"model"`
	Tools     []string `json:"tools"`
	Agents    []string `json:"agents"`

	Raw json.RawMessage `json:"-"`
}

// UserMessage marks a turn boundary. ParentToolUseID is set when the turn
// belongs to a delegated sub-call rather than the top-level conversation.
type UserMessage struct {
	ParentToolUseID string `json:"parent_tool_use_id,omitempty"`

	Raw json.RawMessage `json:"-"`
}

// IsDelegated reports whether this turn originates from a delegated sub-call.
func (m *UserMessage) IsDelegated() bool { return m.ParentToolUseID != "" }

// StreamDelta is an incremental assistant-output record. Kind is one of the
// Delta* constants; Text is set for text deltas, StopReason for message stops.
type StreamDelta struct {
	Kind       string
	Text       string
	StopReason string

	Raw json.RawMessage `json:"-"`
}

// ContentBlock is one ordered element of an assistant message: either plain
// text or a tool invocation.
type ContentBlock struct {
	Type  string         `json:"type"`
	Text  string         `json:"text,omitempty"`
	ID    string         `json:"id,omitempty"`
	Name  string         `json:"name,omitempty"`
	Input map[string]any `json:"input,omitempty"`
}

// IsToolUse reports whether the block invokes a tool.
func (b ContentBlock) IsToolUse() bool { return b.Type == "tool_use" }

// DelegateTarget returns the sub-agent named by a delegation tool-use block,
// if any.
func (b ContentBlock) DelegateTarget() (string, bool) {
	if !b.IsToolUse() || b.Name != TaskToolName {
		return "", false
	}
	target, ok := b.Input["subagent_type"].(string)
	if !ok || target == "" {
		return "", false
	}
	return target, true
}

// AssistantMessage is the complete assistant turn, delivered after its text
// has already been streamed via deltas.
type AssistantMessage struct {
	Content []ContentBlock `json:"content"`

	Raw json.RawMessage `json:"-"`
}

// ToolUses returns the tool-invocation blocks in order.
func (m *AssistantMessage) ToolUses() []ContentBlock {
	var uses []ContentBlock
	for _, b := range m.Content {
		if b.IsToolUse() {
			uses = append(uses, b)
		}
	}
	return uses
}

// Result terminates the stream.
type Result struct {
	Subtype      string  `json:"subtype"`
	DurationMS   int64   `json:"duration_ms"`
	NumTurns     int     `json:"num_turns"`
	TotalCostUSD float64 `json:"total_cost_usd"`
	IsError      bool    `json:"is_error"`
	Result       string  `json:"result,omitempty"`

	Raw json.RawMessage `json:"-"`
}

func (*SystemInit) messageType() string       { return "system" }
func (*UserMessage) messageType() string      { return "user" }
func (*StreamDelta) messageType() string      { return "stream_event" }
func (*AssistantMessage) messageType() string { return "assistant" }
func (*Result) messageType() string           { return "result" }

// controlRequest is a permission check interleaved with the stream. It is
// answered by the client and never surfaced to consumers.
type controlRequest struct {
	RequestID string
	ToolName  string
	Input     map[string]any
}

// envelope is the wire shape shared by every record type.
type envelope struct {
	Type            string   `json:"type"`
	Subtype         string   `json:"subtype"`
	SessionID       string   `json:"session_id"`
	Model           string   `json:"model"`
	Tools           []string `json:"tools"`
	Agents          []string `json:"agents"`
	ParentToolUseID string   `json:"parent_tool_use_id"`

	Event *struct {
		Type       string `json:"type"`
		StopReason string `json:"stop_reason"`
		Delta      *struct {
			Type string `json:"type"`
			Text string `json:"text"`
		} `json:"delta"`
	} `json:"event"`

	Message *struct {
		Content []ContentBlock `json:"content"`
	} `json:"message"`

	DurationMS   int64   `json:"duration_ms"`
	NumTurns     int     `json:"num_turns"`
	TotalCostUSD float64 `json:"total_cost_usd"`
	IsError      bool    `json:"is_error"`
	Result       string  `json:"result"`

	RequestID string `json:"request_id"`
	Request   *struct {
		ToolName string         `json:"tool_name"`
		Input    map[string]any `json:"input"`
	} `json:"request"`
}

// decodeRecord parses one data payload. Exactly one of the returns is
// non-nil for known record types; unknown types yield (nil, nil, nil) so the
// reader can skip records added by newer server versions.
func decodeRecord(data []byte) (Message, *controlRequest, error) {
	var env envelope
	if err := json.Unmarshal(data, &env); err != nil {
		return nil, nil, fmt.Errorf("decode stream record: %w", err)
	}

	switch env.Type {
	case "system":
		if env.Subtype != "init" {
			return nil, nil, nil
		}
		return &SystemInit{
			SessionID: env.SessionID,
			Model:     env.Model,
			Tools:     env.Tools,
			Agents:    env.Agents,
			Raw:       append(json.RawMessage(nil), data...),
		}, nil, nil

	case "user":
		return &UserMessage{
			ParentToolUseID: env.ParentToolUseID,
			Raw:             append(json.RawMessage(nil), data...),
		}, nil, nil

	case "stream_event":
		if env.Event == nil {
			return nil, nil, fmt.Errorf("stream_event record without event body")
		}
		delta := &StreamDelta{
			Kind: env.Event.Type,
			Raw:  append(json.RawMessage(nil), data...),
		}
		switch env.Event.Type {
		case "content_block_delta":
			delta.Kind = DeltaText
			if env.Event.Delta != nil {
				delta.Text = env.Event.Delta.Text
			}
		case DeltaMessageStop:
			delta.StopReason = env.Event.StopReason
		}
		return delta, nil, nil

	case "assistant":
		if env.Message == nil {
			return nil, nil, fmt.Errorf("assistant record without message body")
		}
		return &AssistantMessage{
			Content: env.Message.Content,
			Raw:     append(json.RawMessage(nil), data...),
		}, nil, nil

	case "result":
		return &Result{
			Subtype:      env.Subtype,
			DurationMS:   env.DurationMS,
			NumTurns:     env.NumTurns,
			TotalCostUSD: env.TotalCostUSD,
			IsError:      env.IsError,
			Result:       env.Result,
			Raw:          append(json.RawMessage(nil), data...),
		}, nil, nil

	case "control_request":
		if env.Request == nil {
			return nil, nil, fmt.Errorf("control_request record without request body")
		}
		return nil, &controlRequest{
			RequestID: env.RequestID,
			ToolName:  env.Request.ToolName,
			Input:     env.Request.Input,
		}, nil

	default:
		return nil, nil, nil
	}
}

// RawPayload returns the original wire payload of a message, used by the
// JSON-lines output mode.
func RawPayload(msg Message) json.RawMessage {
	switch m := msg.(type) {
	case *SystemInit:
		return m.Raw
	case *UserMessage:
		return m.Raw
	case *StreamDelta:
		return m.Raw
	case *AssistantMessage:
		return m.Raw
	case *Result:
		return m.Raw
	}
	return nil
}
