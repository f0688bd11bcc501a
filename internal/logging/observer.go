package logging

import (
	"github.com/rs/zerolog"
)

// Observer receives notable events from providers and the ensemble loop.
// Implementations must not alter the text they are given. Callers treat an
// observer as best effort and never depend on it succeeding.
type Observer interface {
	PromptSent(provider, prompt string)
	ResponseReceived(provider, text string)
	CallFailed(provider string, err error)
	ProviderSkipped(provider string, err error)
}

// Nop is an Observer that discards every event.
type Nop struct{}

func (Nop) PromptSent(string, string)       {}
func (Nop) ResponseReceived(string, string) {}
func (Nop) CallFailed(string, error)        {}
func (Nop) ProviderSkipped(string, error)   {}

// Zerolog reports events to a zerolog.Logger. Prompt and response bodies are
// logged verbatim at debug level.
type Zerolog struct {
	logger zerolog.Logger
}

// NewZerolog returns an Observer backed by logger.
func NewZerolog(logger zerolog.Logger) *Zerolog {
	return &Zerolog{logger: logger}
}

func (z *Zerolog) PromptSent(provider, prompt string) {
	z.logger.Info().Str("provider", provider).Int("prompt_bytes", len(prompt)).Msg("prompt sent")
	z.logger.Debug().Str("provider", provider).Str("prompt", prompt).Msg("prompt body")
}

func (z *Zerolog) ResponseReceived(provider, text string) {
	z.logger.Info().Str("provider", provider).Int("response_bytes", len(text)).Msg("response received")
	z.logger.Debug().Str("provider", provider).Str("response", text).Msg("response body")
}

func (z *Zerolog) CallFailed(provider string, err error) {
	z.logger.Error().Err(err).Str("provider", provider).Msg("provider call failed")
}

func (z *Zerolog) ProviderSkipped(provider string, err error) {
	z.logger.Warn().Err(err).Str("provider", provider).Msg("provider skipped")
}
