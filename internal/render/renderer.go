// Package render turns the orchestration event stream into a running,
// human-readable transcript on a terminal.
package render

import (
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/Wayfound-AI/wayfound-mcp-supervisor-example/internal/agent"
	"github.com/Wayfound-AI/wayfound-mcp-supervisor-example/internal/timeutil"
)

// unknownDelegate is shown when a delegated turn starts before any
// delegation tool-use has named its target.
const unknownDelegate = "unknown agent"

// Renderer consumes stream records one at a time and writes incremental
// output. It owns all cross-event state; create one per run and feed it the
// session's records in order.
type Renderer struct {
	out io.Writer
	st  styles

	sessionID       string
	currentDelegate string
	pending         strings.Builder
	blockOpen       bool

	initDone bool
	lineOpen bool // an unterminated streamed line is on screen
}

// New returns a renderer writing to out. color toggles ANSI styling.
func New(out io.Writer, color bool) *Renderer {
	return &Renderer{out: out, st: newStyles(color)}
}

// SessionID returns the identifier announced by the init record, if seen.
func (r *Renderer) SessionID() string { return r.sessionID }

// Render handles one record and reports true once the final result record
// has been rendered; the caller should stop reading then.
func (r *Renderer) Render(msg agent.Message) bool {
	switch m := msg.(type) {
	case *agent.SystemInit:
		r.renderInit(m)
	case *agent.UserMessage:
		r.renderUser(m)
	case *agent.StreamDelta:
		r.renderDelta(m)
	case *agent.AssistantMessage:
		r.renderAssistant(m)
	case *agent.Result:
		r.renderResult(m)
		return true
	}
	return false
}

func (r *Renderer) renderInit(m *agent.SystemInit) {
	if r.initDone {
		return
	}
	r.initDone = true
	r.sessionID = m.SessionID

	fmt.Fprintln(r.out, r.st.label.Render("Session:")+" "+r.st.value.Render(m.SessionID))
	fmt.Fprintln(r.out, "  "+r.st.muted.Render("Model: "+m.Model))
	if len(m.Tools) > 0 {
		fmt.Fprintln(r.out, "  "+r.st.muted.Render(fmt.Sprintf("Tools: %s", strings.Join(m.Tools, ", "))))
	}
	if len(m.Agents) > 0 {
		fmt.Fprintln(r.out, "  "+r.st.muted.Render(fmt.Sprintf("Agents: %s", strings.Join(m.Agents, ", "))))
	}
	fmt.Fprintln(r.out, r.st.muted.Render(separatorLine))
}

func (r *Renderer) renderUser(m *agent.UserMessage) {
	r.endStreamedLine()
	r.pending.Reset()
	r.blockOpen = false

	if m.IsDelegated() {
		delegate := r.currentDelegate
		if delegate == "" {
			delegate = unknownDelegate
		}
		fmt.Fprintln(r.out, "")
		fmt.Fprintln(r.out, r.st.bracket.Render("[")+r.st.label.Render("Sub-Agent")+r.st.bracket.Render("]")+" "+r.st.value.Render(delegate))
		return
	}

	fmt.Fprintln(r.out, "")
	fmt.Fprintln(r.out, r.st.bracket.Render("[")+r.st.muted.Render("Turn")+r.st.bracket.Render("]"))
}

func (r *Renderer) renderDelta(m *agent.StreamDelta) {
	switch m.Kind {
	case agent.DeltaText:
		if m.Text == "" {
			return
		}
		if !r.blockOpen {
			fmt.Fprint(r.out, r.st.label.Render("Assistant:")+" "+r.st.streamOn)
			r.blockOpen = true
			r.lineOpen = true
		}
		r.pending.WriteString(m.Text)
		fmt.Fprint(r.out, m.Text)

	case agent.DeltaMessageStop:
		r.endStreamedLine()
		if m.StopReason != "" {
			fmt.Fprintln(r.out, "  "+r.st.muted.Render("stop: "+m.StopReason))
		}
	}
}

func (r *Renderer) renderAssistant(m *agent.AssistantMessage) {
	r.endStreamedLine()
	r.pending.Reset()
	r.blockOpen = false

	label := "content block"
	if len(m.Content) != 1 {
		label = "content blocks"
	}
	fmt.Fprintln(r.out, r.st.bracket.Render("[")+r.st.muted.Render(fmt.Sprintf("Assistant: %d %s", len(m.Content), label))+r.st.bracket.Render("]"))

	for _, block := range m.ToolUses() {
		line := "  " + r.st.muted.Render("→") + " " + r.st.label.Render(block.Name)
		if target, ok := block.DelegateTarget(); ok {
			r.currentDelegate = target
			line += " " + r.st.muted.Render("→") + " " + r.st.value.Render(target)
		}
		fmt.Fprintln(r.out, line)
	}
}

func (r *Renderer) renderResult(m *agent.Result) {
	r.endStreamedLine()

	elapsed := timeutil.FormatDuration(time.Duration(m.DurationMS) * time.Millisecond)
	fmt.Fprintln(r.out, r.st.muted.Render(separatorLine))
	fmt.Fprintln(r.out, r.st.success.Render("Done")+" "+r.st.muted.Render(fmt.Sprintf("in %s · %d turns · $%.4f", elapsed, m.NumTurns, m.TotalCostUSD)))

	if m.Subtype == agent.ResultSuccess {
		if m.Result != "" {
			fmt.Fprintln(r.out, "")
			fmt.Fprintln(r.out, m.Result)
		}
		return
	}
	fmt.Fprintln(r.out, r.st.errored.Render(m.Subtype))
}

// endStreamedLine terminates an in-progress streamed text line, restoring
// the default color.
func (r *Renderer) endStreamedLine() {
	if !r.lineOpen {
		return
	}
	fmt.Fprintln(r.out, r.st.streamOff)
	r.lineOpen = false
}
