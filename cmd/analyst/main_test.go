package main

import (
	"bytes"
	"strings"
	"testing"

	"github.com/Wayfound-AI/wayfound-mcp-supervisor-example/internal/credentials"
)

func TestMissingTickerArgument(t *testing.T) {
	var stdout, stderr bytes.Buffer
	rootCmd.SetOut(&stdout)
	rootCmd.SetErr(&stderr)
	rootCmd.SetArgs([]string{})
	defer func() {
		rootCmd.SetOut(nil)
		rootCmd.SetErr(nil)
		rootCmd.SetArgs(nil)
	}()

	err := rootCmd.Execute()
	if err == nil {
		t.Fatalf("expected an argument error")
	}
	if !strings.Contains(err.Error(), "accepts 1 arg(s), received 0") {
		t.Errorf("expected the missing-argument error, got %v", err)
	}

	if !strings.Contains(stderr.String(), "Error:") {
		t.Errorf("error must be reported on stderr:\n%s", stderr.String())
	}
	combined := stdout.String() + stderr.String()
	if !strings.Contains(combined, "Usage:") || !strings.Contains(combined, "analyst [ticker]") {
		t.Errorf("usage must be printed:\n%s", combined)
	}

	// run() was never entered: no session output and no stream rendering.
	if strings.Contains(combined, "Session:") {
		t.Errorf("renderer output present without a ticker:\n%s", combined)
	}
}

func TestAuthSecretName(t *testing.T) {
	if got := authSecretName(false); got != credentials.WayfoundAPIKeyName {
		t.Errorf("default key = %q, want %q", got, credentials.WayfoundAPIKeyName)
	}
	if got := authSecretName(true); got != credentials.AnthropicAPIKeyName {
		t.Errorf("anthropic key = %q, want %q", got, credentials.AnthropicAPIKeyName)
	}
}
