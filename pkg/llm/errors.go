package llm

import (
	"errors"
	"fmt"
)

// ErrMissingAPIKey indicates a provider credential is absent from the
// configuration. This is fatal for the selected provider and never retried.
var ErrMissingAPIKey = errors.New("llm: missing provider API key")

// ConfigError wraps a fatal provider configuration problem.
type ConfigError struct {
	Provider string
	Err      error
}

func (e *ConfigError) Error() string {
	return fmt.Sprintf("llm: provider %s misconfigured: %v", e.Provider, e.Err)
}

func (e *ConfigError) Unwrap() error { return e.Err }

// TimeoutError marks a request that exceeded the round deadline, so callers
// can show a friendlier message than a generic provider failure.
type TimeoutError struct {
	Provider string
	Err      error
}

func (e *TimeoutError) Error() string {
	return fmt.Sprintf("llm: provider %s timed out: %v", e.Provider, e.Err)
}

func (e *TimeoutError) Unwrap() error { return e.Err }

// ProviderError carries a non-success HTTP response from a provider.
type ProviderError struct {
	Provider string
	Status   int
	Body     string
}

func (e *ProviderError) Error() string {
	return fmt.Sprintf("llm: provider %s returned status %d: %s", e.Provider, e.Status, e.Body)
}

// IsTimeout reports whether err is (or wraps) a round timeout.
func IsTimeout(err error) bool {
	var te *TimeoutError
	return errors.As(err, &te)
}
