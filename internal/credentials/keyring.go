package credentials

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/zalando/go-keyring"
)

const (
	serviceName = "wayfound-analyst"

	// AnthropicAPIKeyName authenticates the model provider behind the
	// orchestration service.
	AnthropicAPIKeyName = "ANTHROPIC_API_KEY"

	// WayfoundAPIKeyName authenticates both the orchestration endpoint and
	// the supervisor MCP server.
	WayfoundAPIKeyName = "WAYFOUND_API_KEY"
)

// ErrNotFound indicates that a requested secret was not found in the keyring
// or the environment.
var ErrNotFound = errors.New("secret not found")

// GetSecret retrieves the named secret from the system keyring, falling back
// to an environment variable of the same name so CI runs work without a
// keyring daemon.
func GetSecret(name string) (string, error) {
	secret, err := keyring.Get(serviceName, name)
	if err == nil {
		return secret, nil
	}
	if !errors.Is(err, keyring.ErrNotFound) {
		// Keyring backend unavailable; the env fallback below still applies.
		if env := strings.TrimSpace(os.Getenv(name)); env != "" {
			return env, nil
		}
		return "", fmt.Errorf("read secret %q: %w", name, err)
	}
	if env := strings.TrimSpace(os.Getenv(name)); env != "" {
		return env, nil
	}
	return "", ErrNotFound
}

// SetSecret stores the named secret in the system keyring.
func SetSecret(name, value string) error {
	trimmed := strings.TrimSpace(value)
	if trimmed == "" {
		return fmt.Errorf("secret %q cannot be empty", name)
	}
	if err := keyring.Set(serviceName, name, trimmed); err != nil {
		return fmt.Errorf("store secret %q: %w", name, err)
	}
	return nil
}

// DeleteSecret removes the named secret from the system keyring.
func DeleteSecret(name string) error {
	if err := keyring.Delete(serviceName, name); err != nil {
		if errors.Is(err, keyring.ErrNotFound) {
			return ErrNotFound
		}
		return fmt.Errorf("delete secret %q: %w", name, err)
	}
	return nil
}

// HasSecret reports whether the named secret is resolvable.
func HasSecret(name string) (bool, error) {
	_, err := GetSecret(name)
	if err == nil {
		return true, nil
	}
	if errors.Is(err, ErrNotFound) {
		return false, nil
	}
	return false, err
}
