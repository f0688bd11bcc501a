// Package redact removes secrets from source files before they are placed in
// a prompt.
//
// Detection uses regex heuristics covering common secret shapes: API keys,
// JWTs, private keys, AWS access key IDs and secret access keys, bearer
// tokens and provider-specific tokens (OpenAI, DeepSeek, Hugging Face,
// GitHub).
//
// Files whose paths match configured glob patterns have their entire content
// replaced with [REDACTED] rather than being scanned line by line.
package redact
