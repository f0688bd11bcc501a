// Package logging configures the zerolog logger used by the agents binary and
// defines the [Observer] sink that review and provider code report events to.
//
// Core packages depend only on the [Observer] interface. The zerolog-backed
// implementation returned by [NewZerolog] is wired in by the CLI; tests use
// [Nop] or a recording observer.
package logging
