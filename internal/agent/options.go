package agent

// Permission behaviors returned to the orchestrator.
const (
	BehaviorAllow = "allow"
	BehaviorDeny  = "deny"
)

// PermissionDecision is the structured answer to a tool-execution permission
// check. Denial is a normal control-flow outcome, not an error.
type PermissionDecision struct {
	Behavior     string         `json:"behavior"`
	Message      string         `json:"message,omitempty"`
	UpdatedInput map[string]any `json:"updated_input,omitempty"`
}

// Allow approves a tool call, passing its input through unchanged.
func Allow(input map[string]any) PermissionDecision {
	return PermissionDecision{Behavior: BehaviorAllow, UpdatedInput: input}
}

// Deny rejects a tool call with a human-readable reason.
func Deny(reason string) PermissionDecision {
	return PermissionDecision{Behavior: BehaviorDeny, Message: reason}
}

// PermissionFunc is invoked once per tool-execution attempt, before the
// orchestrator runs the tool. It must answer synchronously.
type PermissionFunc func(toolName string, input map[string]any) PermissionDecision

// AgentDefinition is the prompt configuration for a named sub-agent.
type AgentDefinition struct {
	Description string   `json:"description"`
	Prompt      string   `json:"prompt"`
	Tools       []string `json:"tools,omitempty"`
	Model       string   `json:"model,omitempty"`
}

// MCPServer describes a protocol-server connection the orchestrator should
// establish on the session's behalf.
type MCPServer struct {
	Type    string            `json:"type"`
	URL     string            `json:"url"`
	Headers map[string]string `json:"headers,omitempty"`
}

// Options configures a Query call.
type Options struct {
	Model        string
	MaxTurns     int
	AllowedTools []string
	Agents       map[string]AgentDefinition
	MCPServers   map[string]MCPServer

	// CanUseTool answers the orchestrator's permission checks. Nil allows
	// everything.
	CanUseTool PermissionFunc
}
