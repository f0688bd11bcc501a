package providers

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"
)

const defaultHuggingFaceModel = "google/gemma-3-27b-it-fast"

// HuggingFace talks to a self-hosted text-generation endpoint that exposes
// the OpenAI-style /chat/completions route.
type HuggingFace struct {
	token       string
	model       string
	baseURL     string
	temperature float64
	maxTokens   int
	client      *http.Client
}

func newHuggingFace(cfg Config, env Env, o options) (*HuggingFace, error) {
	token, err := require(KindHuggingFace, "HF_TOKEN", cfg.credential("HF_TOKEN"), env, "HF_TOKEN")
	if err != nil {
		return nil, err
	}
	base, err := require(KindHuggingFace, "api_base", cfg.credential("api_base"), env, "HF_API_BASE_URL")
	if err != nil {
		return nil, err
	}
	model := cfg.ModelName
	if model == "" {
		model = defaultHuggingFaceModel
	}
	client := o.client
	if client == nil {
		client = &http.Client{
			Timeout:   300 * time.Second,
			Transport: &http.Transport{DisableKeepAlives: true},
		}
	}
	return &HuggingFace{
		token:       token,
		model:       model,
		baseURL:     strings.TrimRight(base, "/"),
		temperature: cfg.temperature(0.7),
		maxTokens:   cfg.intParam("max_tokens"),
		client:      client,
	}, nil
}

func (h *HuggingFace) Name() string { return displayName(KindHuggingFace, h.model) }

func (h *HuggingFace) Generate(ctx context.Context, prompt string) (string, error) {
	body := hfRequest{
		Model:       h.model,
		Temperature: h.temperature,
		Stream:      false,
		Messages: []hfMessage{{
			Role:    "user",
			Content: []hfContent{{Type: "text", Text: prompt}},
		}},
	}
	if h.maxTokens > 0 {
		body.MaxTokens = h.maxTokens
	}

	payload, err := json.Marshal(body)
	if err != nil {
		return "", fmt.Errorf("marshaling request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, h.baseURL+"/chat/completions", bytes.NewReader(payload))
	if err != nil {
		return "", &ProviderCallError{Provider: h.Name(), Err: fmt.Errorf("creating request: %w", err)}
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+h.token)

	resp, err := h.client.Do(req)
	if err != nil {
		return "", &ProviderCallError{Provider: h.Name(), Err: fmt.Errorf("sending request: %w", err)}
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", &ProviderCallError{Provider: h.Name(), Err: fmt.Errorf("reading response: %w", err)}
	}
	if resp.StatusCode != http.StatusOK {
		return "", &ProviderCallError{Provider: h.Name(), StatusCode: resp.StatusCode, Body: string(respBody)}
	}

	var result hfResponse
	if err := json.Unmarshal(respBody, &result); err != nil {
		return "", &ProviderCallError{Provider: h.Name(), Err: fmt.Errorf("parsing response: %w", err)}
	}
	if len(result.Choices) == 0 {
		return "", &ProviderCallError{Provider: h.Name(), Err: errors.New("no choices in response")}
	}
	if result.Choices[0].Message.Content == "" {
		return "", &ProviderCallError{Provider: h.Name(), Err: errors.New("empty text content in response")}
	}
	return result.Choices[0].Message.Content, nil
}

type hfRequest struct {
	Model       string      `json:"model"`
	Temperature float64     `json:"temperature"`
	Stream      bool        `json:"stream"`
	MaxTokens   int         `json:"max_tokens,omitempty"`
	Messages    []hfMessage `json:"messages"`
}

type hfMessage struct {
	Role    string      `json:"role"`
	Content []hfContent `json:"content"`
}

type hfContent struct {
	Type string `json:"type"`
	Text string `json:"text"`
}

type hfResponse struct {
	Choices []struct {
		Message struct {
			Content string `json:"content"`
		} `json:"message"`
	} `json:"choices"`
}
