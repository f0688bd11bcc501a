package logging

import (
	"bytes"
	"errors"
	"strings"
	"testing"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

func TestSetupAddsRunID(t *testing.T) {
	var buf bytes.Buffer
	runID := Setup(&buf, "info")
	if runID == "" {
		t.Fatal("Setup returned empty run id")
	}
	log.Info().Msg("hello")
	if !strings.Contains(buf.String(), runID) {
		t.Errorf("log output %q missing run id %q", buf.String(), runID)
	}
}

func TestSetupInvalidLevelFallsBackToInfo(t *testing.T) {
	Setup(&bytes.Buffer{}, "shouting")
	if got := zerolog.GlobalLevel(); got != zerolog.InfoLevel {
		t.Errorf("GlobalLevel = %v, want info", got)
	}
}

func TestZerologObserverVerbatim(t *testing.T) {
	zerolog.SetGlobalLevel(zerolog.DebugLevel)
	defer zerolog.SetGlobalLevel(zerolog.InfoLevel)

	var buf bytes.Buffer
	obs := NewZerolog(zerolog.New(&buf))

	obs.PromptSent("openai", "review this\ncode")
	obs.ResponseReceived("openai", `{"score": 80}`)
	obs.CallFailed("openai", errors.New("boom"))
	obs.ProviderSkipped("bedrock", errors.New("timeout"))

	out := buf.String()
	for _, want := range []string{
		`"prompt":"review this\ncode"`,
		`"response":"{\"score\": 80}"`,
		`"message":"provider call failed"`,
		`"message":"provider skipped"`,
		`"provider":"bedrock"`,
	} {
		if !strings.Contains(out, want) {
			t.Errorf("output missing %s\n%s", want, out)
		}
	}
}

func TestNopDoesNothing(t *testing.T) {
	var obs Observer = Nop{}
	obs.PromptSent("x", "y")
	obs.ResponseReceived("x", "y")
	obs.CallFailed("x", nil)
	obs.ProviderSkipped("x", nil)
}

func TestSetLevel(t *testing.T) {
	defer zerolog.SetGlobalLevel(zerolog.InfoLevel)

	SetLevel("debug")
	if got := zerolog.GlobalLevel(); got != zerolog.DebugLevel {
		t.Errorf("GlobalLevel = %v, want debug", got)
	}
	SetLevel("nonsense")
	if got := zerolog.GlobalLevel(); got != zerolog.DebugLevel {
		t.Errorf("unknown level changed GlobalLevel to %v", got)
	}
}
