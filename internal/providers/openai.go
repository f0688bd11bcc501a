package providers

import (
	"context"
	"errors"

	"github.com/tmc/langchaingo/llms"
	"github.com/tmc/langchaingo/llms/openai"
)

const defaultDeepSeekBase = "https://api.deepseek.com/v1"

// chatModel adapts any langchaingo model to Provider. It backs the openai and
// deepseek kinds, which share the OpenAI chat-completions protocol.
type chatModel struct {
	name        string
	llm         llms.Model
	temperature float64
	maxTokens   int
}

func newOpenAI(cfg Config, env Env, o options) (*chatModel, error) {
	key, err := require(KindOpenAI, "api_key", cfg.credential("api_key"), env, "OPENAI_API_KEY")
	if err != nil {
		return nil, err
	}
	base := Resolve(cfg.credential("api_base"), env, []string{"OPENAI_API_BASE"}, "")
	model := cfg.ModelName
	if model == "" {
		model = "gpt-4o-mini"
	}
	return newChatModel(KindOpenAI, cfg, key, base, model, o)
}

func newDeepSeek(cfg Config, env Env, o options) (*chatModel, error) {
	key, err := require(KindDeepSeek, "api_key", cfg.credential("api_key"), env, "DEEPSEEK_API_KEY")
	if err != nil {
		return nil, err
	}
	base := Resolve(cfg.credential("api_base"), env, []string{"DEEPSEEK_API_BASE"}, defaultDeepSeekBase)
	model := cfg.ModelName
	if model == "" {
		model = "deepseek-chat"
	}
	return newChatModel(KindDeepSeek, cfg, key, base, model, o)
}

func newChatModel(kind Kind, cfg Config, key, base, model string, o options) (*chatModel, error) {
	name := displayName(kind, model)
	opts := []openai.Option{
		openai.WithModel(model),
		openai.WithToken(key),
	}
	if base != "" {
		opts = append(opts, openai.WithBaseURL(base))
	}
	if o.client != nil {
		opts = append(opts, openai.WithHTTPClient(o.client))
	}
	llm, err := openai.New(opts...)
	if err != nil {
		return nil, &ProviderCallError{Provider: name, Err: err}
	}
	return &chatModel{
		name:        name,
		llm:         llm,
		temperature: cfg.temperature(0),
		maxTokens:   cfg.intParam("max_tokens"),
	}, nil
}

func (m *chatModel) Name() string { return m.name }

func (m *chatModel) Generate(ctx context.Context, prompt string) (string, error) {
	callOpts := []llms.CallOption{llms.WithTemperature(m.temperature)}
	if m.maxTokens > 0 {
		callOpts = append(callOpts, llms.WithMaxTokens(m.maxTokens))
	}
	text, err := llms.GenerateFromSinglePrompt(ctx, m.llm, prompt, callOpts...)
	if err != nil {
		return "", &ProviderCallError{Provider: m.name, Err: err}
	}
	if text == "" {
		return "", &ProviderCallError{Provider: m.name, Err: errors.New("empty text content in response")}
	}
	return text, nil
}
