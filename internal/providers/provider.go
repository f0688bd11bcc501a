package providers

import (
	"context"
	"net/http"
	"strings"
	"time"
)

// Provider is the single capability every backend offers: turn a prompt into
// raw model text. Name identifies the configured model as "kind/model".
type Provider interface {
	Generate(ctx context.Context, prompt string) (string, error)
	Name() string
}

func displayName(kind Kind, model string) string {
	return string(kind) + "/" + model
}

// Kind identifies a provider backend.
type Kind string

const (
	KindOpenAI      Kind = "openai"
	KindBedrock     Kind = "bedrock"
	KindHuggingFace Kind = "huggingface"
	KindDeepSeek    Kind = "deepseek"

	// Recognised but intentionally unimplemented.
	KindGemini Kind = "gemini"
	KindGroq   Kind = "groq"
	KindCustom Kind = "custom"
)

// Implemented lists the kinds New can construct.
var Implemented = []Kind{KindOpenAI, KindBedrock, KindHuggingFace, KindDeepSeek}

// Stubbed lists the kinds New recognises but refuses with NotImplementedProviderError.
var Stubbed = []Kind{KindGemini, KindGroq, KindCustom}

// ParseKind normalises a configured provider type. Unknown names are returned
// as-is so that New can report them.
func ParseKind(s string) Kind {
	k := strings.ToLower(strings.TrimSpace(s))
	switch k {
	case "google_gemini", "google":
		return KindGemini
	case "hf", "hugging_face":
		return KindHuggingFace
	}
	return Kind(k)
}

// Config is the resolved configuration for one provider instance.
type Config struct {
	Kind        Kind
	ModelName   string
	Temperature *float64
	Credentials map[string]string
	ExtraParams map[string]any
}

func (c Config) temperature(def float64) float64 {
	if c.Temperature != nil {
		return *c.Temperature
	}
	return def
}

func (c Config) credential(key string) string {
	if c.Credentials == nil {
		return ""
	}
	return c.Credentials[key]
}

func (c Config) intParam(key string) int {
	switch v := c.ExtraParams[key].(type) {
	case int:
		return v
	case int64:
		return int(v)
	case float64:
		return int(v)
	}
	return 0
}

func (c Config) stringParam(key string) string {
	if s, ok := c.ExtraParams[key].(string); ok {
		return s
	}
	return ""
}

// Option adjusts how New builds a provider.
type Option func(*options)

type options struct {
	client *http.Client
}

// WithHTTPClient makes the provider send its requests through client.
func WithHTTPClient(client *http.Client) Option {
	return func(o *options) { o.client = client }
}

// New builds the provider selected by cfg.Kind. Credentials are resolved
// against env once, here.
func New(cfg Config, env Env, opts ...Option) (Provider, error) {
	o := options{}
	for _, opt := range opts {
		opt(&o)
	}

	var (
		p   Provider
		err error
	)
	switch cfg.Kind {
	case KindOpenAI:
		p, err = newOpenAI(cfg, env, o)
	case KindDeepSeek:
		p, err = newDeepSeek(cfg, env, o)
	case KindBedrock:
		p, err = newBedrock(cfg, env, o)
	case KindHuggingFace:
		p, err = newHuggingFace(cfg, env, o)
	case KindGemini, KindGroq, KindCustom:
		return nil, &NotImplementedProviderError{Kind: cfg.Kind}
	default:
		return nil, &UnsupportedProviderError{Kind: cfg.Kind}
	}
	if err != nil {
		return nil, err
	}

	if secs := cfg.intParam("timeout_seconds"); secs > 0 {
		p = &timeoutProvider{Provider: p, timeout: time.Duration(secs) * time.Second}
	}
	return p, nil
}

// timeoutProvider bounds each Generate call. An expired deadline surfaces as
// an ordinary ProviderCallError from the wrapped backend.
type timeoutProvider struct {
	Provider
	timeout time.Duration
}

func (t *timeoutProvider) Generate(ctx context.Context, prompt string) (string, error) {
	ctx, cancel := context.WithTimeout(ctx, t.timeout)
	defer cancel()
	return t.Provider.Generate(ctx, prompt)
}
