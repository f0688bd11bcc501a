package providers

import (
	"errors"
	"fmt"
)

// MissingCredentialError reports a required credential absent from both the
// config and the environment.
type MissingCredentialError struct {
	Kind  Kind
	Field string
}

func (e *MissingCredentialError) Error() string {
	return fmt.Sprintf("%s: missing credential %q (set it in config or the environment)", e.Kind, e.Field)
}

// UnsupportedProviderError reports a provider kind that is not known at all.
type UnsupportedProviderError struct {
	Kind Kind
}

func (e *UnsupportedProviderError) Error() string {
	return fmt.Sprintf("unsupported provider: %q", string(e.Kind))
}

// NotImplementedProviderError reports a known provider kind that has no
// backend yet.
type NotImplementedProviderError struct {
	Kind Kind
}

func (e *NotImplementedProviderError) Error() string {
	return fmt.Sprintf("provider %q is not implemented yet", string(e.Kind))
}

// ProviderCallError wraps a transport, HTTP or decoding failure from a
// backend. StatusCode is zero when no HTTP response was received.
type ProviderCallError struct {
	Provider   string
	StatusCode int
	Body       string
	Err        error
}

func (e *ProviderCallError) Error() string {
	switch {
	case e.StatusCode != 0:
		return fmt.Sprintf("%s: API error (status %d): %s", e.Provider, e.StatusCode, e.Body)
	case e.Err != nil:
		return fmt.Sprintf("%s: %v", e.Provider, e.Err)
	default:
		return e.Provider + ": call failed"
	}
}

func (e *ProviderCallError) Unwrap() error { return e.Err }

// IsCredentialError checks if err is, or wraps, a MissingCredentialError.
func IsCredentialError(err error) bool {
	var mc *MissingCredentialError
	return errors.As(err, &mc)
}
