package providers

import (
	"context"

	"github.com/Chitrak-Aseri/Agents/internal/logging"
)

// Observe wraps p so that every call is reported to obs. A panicking observer
// is recovered; the prompt and response pass through untouched either way.
func Observe(p Provider, obs logging.Observer) Provider {
	if obs == nil {
		return p
	}
	return &observed{Provider: p, obs: obs}
}

type observed struct {
	Provider
	obs logging.Observer
}

func (o *observed) Generate(ctx context.Context, prompt string) (string, error) {
	name := o.Name()
	notify(func() { o.obs.PromptSent(name, prompt) })

	text, err := o.Provider.Generate(ctx, prompt)
	if err != nil {
		notify(func() { o.obs.CallFailed(name, err) })
		return "", err
	}
	notify(func() { o.obs.ResponseReceived(name, text) })
	return text, nil
}

func notify(fn func()) {
	defer func() { _ = recover() }()
	fn()
}
