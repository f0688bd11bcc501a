package providers

import (
	"os"
	"strings"
)

// Env is an immutable snapshot of environment variables.
type Env map[string]string

// EnvFromOS captures the process environment once.
func EnvFromOS() Env {
	env := make(Env)
	for _, kv := range os.Environ() {
		k, v, ok := strings.Cut(kv, "=")
		if ok {
			env[k] = v
		}
	}
	return env
}

// Resolve returns the first non-empty value of: the explicit value, each env
// key in order, then def. An empty string means nothing resolved.
func Resolve(explicit string, env Env, keys []string, def string) string {
	if explicit != "" {
		return explicit
	}
	for _, k := range keys {
		if v := env[k]; v != "" {
			return v
		}
	}
	return def
}

// require is Resolve for credentials that must be present.
func require(kind Kind, field, explicit string, env Env, keys ...string) (string, error) {
	v := Resolve(explicit, env, keys, "")
	if v == "" {
		return "", &MissingCredentialError{Kind: kind, Field: field}
	}
	return v, nil
}
