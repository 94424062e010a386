package prompts

import (
	"strings"
	"testing"

	"github.com/Wayfound-AI/wayfound-mcp-supervisor-example/internal/agent"
)

func TestAnalysisPromptMentionsWorkflow(t *testing.T) {
	prompt := AnalysisPrompt("NVDA")

	for _, want := range []string{
		"NVDA",
		DataCollectorAgent,
		ReportWriterAgent,
		SupervisorReviewTool,
		"not financial advice",
	} {
		if !strings.Contains(prompt, want) {
			t.Errorf("prompt missing %q", want)
		}
	}
	if strings.Contains(prompt, "%!") {
		t.Errorf("prompt has a formatting artifact:\n%s", prompt)
	}
}

func TestAgentsDefinitions(t *testing.T) {
	agents := Agents()

	collector, ok := agents[DataCollectorAgent]
	if !ok {
		t.Fatalf("missing %s definition", DataCollectorAgent)
	}
	if collector.Prompt == "" || collector.Description == "" {
		t.Errorf("collector definition incomplete: %+v", collector)
	}
	found := false
	for _, tool := range collector.Tools {
		if tool == agent.WebSearchToolName {
			found = true
		}
	}
	if !found {
		t.Errorf("collector must be able to search the web: %v", collector.Tools)
	}

	writer, ok := agents[ReportWriterAgent]
	if !ok {
		t.Fatalf("missing %s definition", ReportWriterAgent)
	}
	for _, tool := range writer.Tools {
		if tool == agent.WebSearchToolName {
			t.Errorf("writer must not search the web: %v", writer.Tools)
		}
	}
}

func TestSupervisorServerHeaders(t *testing.T) {
	srv := SupervisorServer("https://app.wayfound.test/mcp", "key123", "agent_9")

	if srv.Type != "http" || srv.URL != "https://app.wayfound.test/mcp" {
		t.Errorf("descriptor incomplete: %+v", srv)
	}
	if srv.Headers["Authorization"] != "Bearer key123" {
		t.Errorf("bearer header not set: %v", srv.Headers)
	}
	if srv.Headers["X-Wayfound-Agent-Id"] != "agent_9" {
		t.Errorf("agent scope header not set: %v", srv.Headers)
	}

	srv = SupervisorServer("u", "k", "")
	if _, ok := srv.Headers["X-Wayfound-Agent-Id"]; ok {
		t.Errorf("agent scope header must be omitted when unset")
	}
}

func TestAllowedToolsCoverWorkflow(t *testing.T) {
	tools := AllowedTools()

	want := map[string]bool{
		agent.TaskToolName:      false,
		agent.WebSearchToolName: false,
		SupervisorReviewTool:    false,
		SupervisorGuidanceTool:  false,
	}
	for _, tool := range tools {
		if _, ok := want[tool]; ok {
			want[tool] = true
		}
	}
	for tool, seen := range want {
		if !seen {
			t.Errorf("allow-list missing %s", tool)
		}
	}
}
