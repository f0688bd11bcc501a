// Package cli wires together the Cobra command tree for the agents binary.
//
// It defines the root command and all subcommands (comment-review,
// code-review, issues, serve, config, providers, version), binds flags,
// reads configuration, invokes the review core, and returns deterministic
// exit codes for CI gating.
package cli
