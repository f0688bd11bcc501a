package review

import (
	"context"
	"errors"
)

// fakeProvider replies with a fixed text or error and records prompts.
type fakeProvider struct {
	name    string
	reply   string
	err     error
	prompts []string
	calls   *[]string
}

func (f *fakeProvider) Name() string { return f.name }

func (f *fakeProvider) Generate(_ context.Context, prompt string) (string, error) {
	f.prompts = append(f.prompts, prompt)
	if f.calls != nil {
		*f.calls = append(*f.calls, f.name)
	}
	if f.err != nil {
		return "", f.err
	}
	return f.reply, nil
}

var errUnavailable = errors.New("service unavailable")

// recordingObserver collects skipped provider names and can panic on each.
type recordingObserver struct {
	skipped []string
	panics  bool
}

func (o *recordingObserver) PromptSent(string, string)       {}
func (o *recordingObserver) ResponseReceived(string, string) {}
func (o *recordingObserver) CallFailed(string, error)        {}
func (o *recordingObserver) ProviderSkipped(name string, _ error) {
	o.skipped = append(o.skipped, name)
	if o.panics {
		panic("observer failure")
	}
}
