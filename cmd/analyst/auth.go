package main

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/Wayfound-AI/wayfound-mcp-supervisor-example/internal/credentials"
)

var flagAnthropic bool

var authCmd = &cobra.Command{
	Use:   "auth",
	Short: "Manage API keys in the system keyring",
}

var authSetCmd = &cobra.Command{
	Use:   "set [value]",
	Short: "Store an API key; prompts when no value is given",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		cmd.SilenceUsage = true

		raw := ""
		if len(args) == 1 {
			raw = args[0]
		}
		name := authSecretName(flagAnthropic)
		value, err := ensureSecretInput(raw, fmt.Sprintf("Enter value for %s: ", name))
		if err != nil {
			return err
		}
		if err := credentials.SetSecret(name, value); err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "Stored %s in the system keyring\n", name)
		return nil
	},
}

var authClearCmd = &cobra.Command{
	Use:   "clear",
	Short: "Remove a stored API key",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		cmd.SilenceUsage = true

		name := authSecretName(flagAnthropic)
		if err := credentials.DeleteSecret(name); err != nil {
			if errors.Is(err, credentials.ErrNotFound) {
				return fmt.Errorf("%s is not stored", name)
			}
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "Removed %s from the system keyring\n", name)
		return nil
	},
}

var authStatusCmd = &cobra.Command{
	Use:   "status",
	Short: "Report which API keys are resolvable",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		cmd.SilenceUsage = true

		for _, name := range []string{credentials.WayfoundAPIKeyName, credentials.AnthropicAPIKeyName} {
			ok, err := credentials.HasSecret(name)
			if err != nil {
				return err
			}
			state := "not set"
			if ok {
				state = "set"
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%s: %s\n", name, state)
		}
		return nil
	},
}

// authSecretName picks the keyring entry the auth commands operate on.
func authSecretName(anthropic bool) string {
	if anthropic {
		return credentials.AnthropicAPIKeyName
	}
	return credentials.WayfoundAPIKeyName
}

// ensureSecretInput returns the provided value, or prompts for one without
// echo when it is empty.
func ensureSecretInput(raw, prompt string) (string, error) {
	trimmed := strings.TrimSpace(raw)
	if trimmed != "" {
		return trimmed, nil
	}

	fmt.Fprint(os.Stdout, prompt)
	secret, err := term.ReadPassword(int(os.Stdin.Fd()))
	fmt.Fprintln(os.Stdout)
	if err != nil {
		return "", fmt.Errorf("read secret: %w", err)
	}
	trimmed = strings.TrimSpace(string(secret))
	if trimmed == "" {
		return "", fmt.Errorf("secret cannot be empty")
	}
	return trimmed, nil
}

func init() {
	authCmd.PersistentFlags().BoolVar(&flagAnthropic, "anthropic", false,
		"operate on the Anthropic API key instead of the Wayfound one")
	authCmd.AddCommand(authSetCmd, authClearCmd, authStatusCmd)
	rootCmd.AddCommand(authCmd)
}
