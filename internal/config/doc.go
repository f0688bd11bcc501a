// Package config loads and merges the reviewer configuration from multiple sources.
//
// Precedence (highest to lowest):
//  1. CLI flags
//  2. Environment variables (AGENTS_SCORE_THRESHOLD, AGENTS_DOCS_DIR, AGENTS_PRIVACY__REDACT_SECRETS, etc.)
//  3. Config file (ai-comment-reviewer.yaml, ai-reviewer.yaml or issuer-config.yaml)
//  4. Built-in defaults
//
// String values in the file may reference ${VAR}; references are resolved
// from the environment snapshot before merging. Use [Load] to obtain a merged
// [Config] and [ModelConfig.ProviderConfig] to build a provider from it.
package config
