package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/muesli/termenv"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/Wayfound-AI/wayfound-mcp-supervisor-example/config"
	"github.com/Wayfound-AI/wayfound-mcp-supervisor-example/internal/agent"
	"github.com/Wayfound-AI/wayfound-mcp-supervisor-example/internal/credentials"
	"github.com/Wayfound-AI/wayfound-mcp-supervisor-example/internal/policy"
	"github.com/Wayfound-AI/wayfound-mcp-supervisor-example/internal/prompts"
	"github.com/Wayfound-AI/wayfound-mcp-supervisor-example/internal/render"
	"github.com/Wayfound-AI/wayfound-mcp-supervisor-example/version"
)

var (
	flagMaxTurns int
	flagModel    string
	flagBaseURL  string
	flagJSON     bool
	flagNoColor  bool
)

var rootCmd = &cobra.Command{
	Use:   "analyst [ticker]",
	Short: "Run a supervised stock analysis agent session",
	Long: `analyst runs a stock analysis workflow on the Wayfound orchestration
service: a coordinator delegates research and report writing to sub-agents,
submits the draft to the Wayfound AI supervisor over MCP for grading, and
streams the whole session to the terminal.`,
	Version: version.Get(),
	Args:    cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		// Arguments validated; runtime failures should not reprint usage.
		cmd.SilenceUsage = true
		return run(cmd.Context(), strings.ToUpper(strings.TrimSpace(args[0])))
	},
}

func init() {
	rootCmd.Flags().IntVar(&flagMaxTurns, "max-turns", 0, "override the session turn limit")
	rootCmd.Flags().StringVar(&flagModel, "model", "", "override the orchestration model")
	rootCmd.Flags().StringVar(&flagBaseURL, "base-url", "", "override the orchestration API base URL")
	rootCmd.Flags().BoolVar(&flagJSON, "json", false, "emit raw event records as JSON lines instead of rendering")
	rootCmd.Flags().BoolVar(&flagNoColor, "no-color", false, "disable ANSI colors")
}

func run(ctx context.Context, ticker string) error {
	if ticker == "" {
		return fmt.Errorf("ticker must not be empty")
	}

	cfg, err := config.Load()
	if err != nil {
		return err
	}
	if flagMaxTurns > 0 {
		cfg.MaxTurns = flagMaxTurns
	}
	if flagModel != "" {
		cfg.Model = flagModel
	}
	if flagBaseURL != "" {
		cfg.BaseURL = flagBaseURL
	}

	apiKey, err := credentials.GetSecret(credentials.WayfoundAPIKeyName)
	if err != nil {
		return fmt.Errorf("read Wayfound API key: %w (set the %s environment variable)",
			err, credentials.WayfoundAPIKeyName)
	}

	ctx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer stop()
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	limiter := policy.NewSearchLimiter(agent.WebSearchToolName, cfg.SearchCap)
	client := agent.New(apiKey, agent.WithBaseURL(cfg.BaseURL))

	stream, err := client.Query(ctx, prompts.AnalysisPrompt(ticker), agent.Options{
		Model:        cfg.Model,
		MaxTurns:     cfg.MaxTurns,
		AllowedTools: prompts.AllowedTools(),
		Agents:       prompts.Agents(),
		MCPServers: map[string]agent.MCPServer{
			prompts.SupervisorServerName: prompts.SupervisorServer(cfg.SupervisorURL, apiKey, cfg.AgentID),
		},
		CanUseTool: limiter.CanUseTool,
	})
	if err != nil {
		return err
	}

	if flagJSON {
		err = emitJSON(stream)
	} else {
		err = renderStream(stream, cancel)
	}
	if err != nil {
		return err
	}
	return stream.Err()
}

// renderStream pretty-prints the session. The cancel func stops the reader
// once the result record has been rendered.
func renderStream(stream *agent.Stream, cancel context.CancelFunc) error {
	color := !flagNoColor &&
		term.IsTerminal(int(os.Stdout.Fd())) &&
		!termenv.EnvNoColor()

	renderer := render.New(os.Stdout, color)
	for msg := range stream.Messages() {
		if renderer.Render(msg) {
			cancel()
			break
		}
	}
	return nil
}

// emitJSON writes each record's original wire payload as one JSON line.
func emitJSON(stream *agent.Stream) error {
	enc := json.NewEncoder(os.Stdout)
	for msg := range stream.Messages() {
		raw := agent.RawPayload(msg)
		if raw == nil {
			continue
		}
		if err := enc.Encode(raw); err != nil {
			return fmt.Errorf("encode event: %w", err)
		}
	}
	return nil
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
