// Package prompts holds the static prompt text and session configuration
// literals for the supervised stock-analysis workflow.
package prompts

import (
	"fmt"

	"github.com/Wayfound-AI/wayfound-mcp-supervisor-example/internal/agent"
)

// Sub-agent names referenced by the orchestration prompt.
const (
	DataCollectorAgent = "data-collector"
	ReportWriterAgent  = "report-writer"
)

// SupervisorServerName is the key of the supervisor MCP server descriptor.
const SupervisorServerName = "wayfound"

// Supervisor tool names exposed over MCP, namespaced the way the
// orchestrator surfaces them.
const (
	SupervisorReviewTool   = "mcp__wayfound__review_report"
	SupervisorGuidanceTool = "mcp__wayfound__get_guidelines"
)

// AnalysisPrompt builds the top-level orchestration prompt for one ticker.
func AnalysisPrompt(ticker string) string {
	return fmt.Sprintf(`You are coordinating a supervised stock analysis of %[1]s.

Work in this order:
1. Delegate to the %[2]s agent to gather current fundamentals, recent news,
   and analyst sentiment for %[1]s. Respect the web search budget; it is
   enforced and requests over the limit will be denied.
2. Delegate to the %[3]s agent to draft an investment report for %[1]s from
   the collected material and save it to %[1]s_report.md.
3. Submit the draft to the Wayfound supervisor with the %[4]s tool and read
   its grade and feedback.
4. If the supervisor grade is below "B", have the %[3]s agent revise the
   report using the feedback and resubmit. Do at most 3 revision rounds.

Finish by summarizing the final grade and the one-paragraph investment
thesis. This is research assistance, not financial advice, and the report
must say so.`, ticker, DataCollectorAgent, ReportWriterAgent, SupervisorReviewTool)
}

const dataCollectorPrompt = `You are a financial data collector. Given a stock
ticker, gather current price context, fundamentals (revenue, margins, P/E),
recent headlines, and analyst sentiment. Prefer primary sources. Cite every
figure with its source and date. You have a hard budget of web searches per
run; plan your queries before spending them. Return a structured summary,
not prose.`

const reportWriterPrompt = `You are an equity research writer. Turn collected
data into a concise investment report: company overview, recent performance,
risks, catalysts, and a one-paragraph thesis. Write in plain language, keep
every claim tied to a cited source from the collected data, and never invent
figures. Include a disclaimer that this is not financial advice. Save the
report where the task instructs.`

// Agents returns the named sub-agent definitions for the session.
func Agents() map[string]agent.AgentDefinition {
	return map[string]agent.AgentDefinition{
		DataCollectorAgent: {
			Description: "Gathers fundamentals, news and sentiment for a ticker",
			Prompt:      dataCollectorPrompt,
			Tools:       []string{agent.WebSearchToolName, "Read"},
		},
		ReportWriterAgent: {
			Description: "Drafts and revises the investment report",
			Prompt:      reportWriterPrompt,
			Tools:       []string{"Read", "Write"},
		},
	}
}

// SupervisorServer returns the MCP connection descriptor for the Wayfound
// supervisor. agentID scopes the review session to one supervised agent.
func SupervisorServer(url, apiKey, agentID string) agent.MCPServer {
	headers := map[string]string{
		"Authorization": "Bearer " + apiKey,
	}
	if agentID != "" {
		headers["X-Wayfound-Agent-Id"] = agentID
	}
	return agent.MCPServer{
		Type:    "http",
		URL:     url,
		Headers: headers,
	}
}

// AllowedTools is the session tool allow-list.
func AllowedTools() []string {
	return []string{
		agent.TaskToolName,
		agent.WebSearchToolName,
		"Read",
		"Write",
		SupervisorReviewTool,
		SupervisorGuidanceTool,
	}
}
