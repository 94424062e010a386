// Package policy implements the tool admission policy handed to the
// orchestrator as its permission callback.
package policy

import (
	"fmt"
	"sync"

	"github.com/Wayfound-AI/wayfound-mcp-supervisor-example/internal/agent"
)

// DefaultSearchCap is how many rate-limited search calls one run may make.
const DefaultSearchCap = 3

// SearchLimiter caps invocations of a single externally rate-limited tool.
// Every other tool passes through allowed with its input unchanged. The
// counter is guarded so the cap holds even if the orchestration layer checks
// permissions from concurrent call sites.
type SearchLimiter struct {
	tool string
	max  int

	mu    sync.Mutex
	count int
}

// NewSearchLimiter returns a limiter for the named tool. A non-positive max
// falls back to DefaultSearchCap.
func NewSearchLimiter(tool string, max int) *SearchLimiter {
	if max <= 0 {
		max = DefaultSearchCap
	}
	return &SearchLimiter{tool: tool, max: max}
}

// CanUseTool implements agent.PermissionFunc. Denial is final for the call
// attempt; the reason string is surfaced to the model so it can adjust.
func (l *SearchLimiter) CanUseTool(toolName string, input map[string]any) agent.PermissionDecision {
	if toolName != l.tool {
		return agent.Allow(input)
	}

	l.mu.Lock()
	defer l.mu.Unlock()

	l.count++
	if l.count > l.max {
		return agent.Deny(fmt.Sprintf(
			"%s limit reached (%d per run); work with the sources already collected",
			l.tool, l.max))
	}
	return agent.Allow(input)
}

// Count returns how many times the rate-limited tool has been requested.
func (l *SearchLimiter) Count() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.count
}
