package agent

import (
	"strings"
	"testing"
)

func TestDecodeRecordSystemInit(t *testing.T) {
	data := []byte(`{"type":"system","subtype":"init","session_id":"s1",` +
		`"model":"claude-sonnet-4-5","tools":["Task","WebSearch"],"agents":["data-collector"]}`)

	msg, ctrl, err := decodeRecord(data)
	if err != nil {
		t.Fatalf("decodeRecord: %v", err)
	}
	if ctrl != nil {
		t.Fatalf("unexpected control request")
	}
	init, ok := msg.(*SystemInit)
	if !ok {
		t.Fatalf("expected *SystemInit, got %T", msg)
	}
	if init.SessionID != "s1" || init.Model != "claude-sonnet-4-5" {
		t.Errorf("session fields not decoded: %+v", init)
	}
	if len(init.Tools) != 2 || init.Tools[1] != "WebSearch" {
		t.Errorf("tools not decoded: %v", init.Tools)
	}
	if len(init.Agents) != 1 || init.Agents[0] != "data-collector" {
		t.Errorf("agents not decoded: %v", init.Agents)
	}
	if string(init.Raw) != string(data) {
		t.Errorf("raw payload not preserved")
	}
}

func TestDecodeRecordUser(t *testing.T) {
	msg, _, err := decodeRecord([]byte(`{"type":"user","parent_tool_use_id":"toolu_42"}`))
	if err != nil {
		t.Fatalf("decodeRecord: %v", err)
	}
	user, ok := msg.(*UserMessage)
	if !ok {
		t.Fatalf("expected *UserMessage, got %T", msg)
	}
	if !user.IsDelegated() || user.ParentToolUseID != "toolu_42" {
		t.Errorf("delegated turn not detected: %+v", user)
	}

	msg, _, err = decodeRecord([]byte(`{"type":"user"}`))
	if err != nil {
		t.Fatalf("decodeRecord: %v", err)
	}
	if msg.(*UserMessage).IsDelegated() {
		t.Errorf("top-level turn must not report as delegated")
	}
}

func TestDecodeRecordStreamDeltas(t *testing.T) {
	msg, _, err := decodeRecord([]byte(`{"type":"stream_event",` +
		`"event":{"type":"content_block_delta","delta":{"type":"text_delta","text":"Hel"}}}`))
	if err != nil {
		t.Fatalf("decodeRecord: %v", err)
	}
	delta := msg.(*StreamDelta)
	if delta.Kind != DeltaText || delta.Text != "Hel" {
		t.Errorf("text delta not normalized: %+v", delta)
	}

	msg, _, err = decodeRecord([]byte(`{"type":"stream_event",` +
		`"event":{"type":"message_stop","stop_reason":"end_turn"}}`))
	if err != nil {
		t.Fatalf("decodeRecord: %v", err)
	}
	delta = msg.(*StreamDelta)
	if delta.Kind != DeltaMessageStop || delta.StopReason != "end_turn" {
		t.Errorf("message stop not decoded: %+v", delta)
	}

	msg, _, err = decodeRecord([]byte(`{"type":"stream_event","event":{"type":"message_start"}}`))
	if err != nil {
		t.Fatalf("decodeRecord: %v", err)
	}
	if msg.(*StreamDelta).Kind != DeltaMessageStart {
		t.Errorf("message start kind not preserved")
	}

	if _, _, err := decodeRecord([]byte(`{"type":"stream_event"}`)); err == nil {
		t.Errorf("stream_event without event body must error")
	}
}

func TestDecodeRecordAssistant(t *testing.T) {
	data := []byte(`{"type":"assistant","message":{"content":[` +
		`{"type":"text","text":"On it."},` +
		`{"type":"tool_use","id":"toolu_1","name":"Task","input":{"subagent_type":"data-collector","prompt":"go"}}]}}`)

	msg, _, err := decodeRecord(data)
	if err != nil {
		t.Fatalf("decodeRecord: %v", err)
	}
	asst := msg.(*AssistantMessage)
	if len(asst.Content) != 2 {
		t.Fatalf("expected 2 content blocks, got %d", len(asst.Content))
	}

	uses := asst.ToolUses()
	if len(uses) != 1 || uses[0].Name != TaskToolName {
		t.Fatalf("tool-use block not extracted: %v", uses)
	}
	target, ok := uses[0].DelegateTarget()
	if !ok || target != "data-collector" {
		t.Errorf("delegate target not resolved: %q %v", target, ok)
	}

	if _, ok := asst.Content[0].DelegateTarget(); ok {
		t.Errorf("text block must not resolve a delegate target")
	}
}

func TestDelegateTargetRequiresTaskTool(t *testing.T) {
	block := ContentBlock{
		Type:  "tool_use",
		Name:  WebSearchToolName,
		Input: map[string]any{"subagent_type": "ghost"},
	}
	if _, ok := block.DelegateTarget(); ok {
		t.Errorf("non-Task tool must not resolve a delegate target")
	}

	block = ContentBlock{Type: "tool_use", Name: TaskToolName, Input: map[string]any{}}
	if _, ok := block.DelegateTarget(); ok {
		t.Errorf("Task tool without subagent_type must not resolve a target")
	}
}

func TestDecodeRecordResult(t *testing.T) {
	msg, _, err := decodeRecord([]byte(`{"type":"result","subtype":"success",` +
		`"duration_ms":5400,"num_turns":12,"total_cost_usd":1.23,"result":"thesis"}`))
	if err != nil {
		t.Fatalf("decodeRecord: %v", err)
	}
	res := msg.(*Result)
	if res.Subtype != ResultSuccess || res.NumTurns != 12 || res.TotalCostUSD != 1.23 {
		t.Errorf("result fields not decoded: %+v", res)
	}
	if res.DurationMS != 5400 || res.Result != "thesis" {
		t.Errorf("result fields not decoded: %+v", res)
	}
}

func TestDecodeRecordControlRequest(t *testing.T) {
	msg, ctrl, err := decodeRecord([]byte(`{"type":"control_request","request_id":"r1",` +
		`"request":{"tool_name":"WebSearch","input":{"query":"AAPL"}}}`))
	if err != nil {
		t.Fatalf("decodeRecord: %v", err)
	}
	if msg != nil {
		t.Fatalf("control request must not surface as a message")
	}
	if ctrl == nil || ctrl.RequestID != "r1" || ctrl.ToolName != WebSearchToolName {
		t.Fatalf("control request not decoded: %+v", ctrl)
	}
	if ctrl.Input["query"] != "AAPL" {
		t.Errorf("control input not decoded: %v", ctrl.Input)
	}

	if _, _, err := decodeRecord([]byte(`{"type":"control_request","request_id":"r2"}`)); err == nil {
		t.Errorf("control_request without request body must error")
	}
}

func TestDecodeRecordUnknownTypeSkipped(t *testing.T) {
	msg, ctrl, err := decodeRecord([]byte(`{"type":"telemetry","payload":{"x":1}}`))
	if err != nil || msg != nil || ctrl != nil {
		t.Errorf("unknown record type must be skipped, got msg=%v ctrl=%v err=%v", msg, ctrl, err)
	}

	msg, ctrl, err = decodeRecord([]byte(`{"type":"system","subtype":"status"}`))
	if err != nil || msg != nil || ctrl != nil {
		t.Errorf("non-init system record must be skipped, got msg=%v ctrl=%v err=%v", msg, ctrl, err)
	}
}

func TestDecodeRecordInvalidJSON(t *testing.T) {
	_, _, err := decodeRecord([]byte(`{"type":`))
	if err == nil || !strings.Contains(err.Error(), "decode stream record") {
		t.Errorf("expected wrapped decode error, got %v", err)
	}
}

func TestRawPayloadRoundTrip(t *testing.T) {
	data := []byte(`{"type":"user","parent_tool_use_id":"p"}`)
	msg, _, err := decodeRecord(data)
	if err != nil {
		t.Fatalf("decodeRecord: %v", err)
	}
	if string(RawPayload(msg)) != string(data) {
		t.Errorf("RawPayload must return the original wire bytes")
	}
}
