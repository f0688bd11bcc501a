package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"runtime"
	"strings"

	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/confmap"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/rawbytes"
	"github.com/knadh/koanf/v2"

	"github.com/Chitrak-Aseri/Agents/internal/providers"
)

// Default config file names, one per run.
const (
	CommentReviewFile = "ai-comment-reviewer.yaml"
	CodeReviewFile    = "ai-reviewer.yaml"
	IssuesFile        = "issuer-config.yaml"
)

// EnvPrefix prefixes every environment override. A double underscore
// separates nested keys: AGENTS_PRIVACY__REDACT_SECRETS.
const EnvPrefix = "AGENTS_"

// ErrNoModel is returned when a run needs a model and none is configured.
var ErrNoModel = errors.New("no model configured: set \"model\" or \"models\" in the config file")

// Config is the effective configuration of one run.
type Config struct {
	Include        []string      `koanf:"include" json:"include"`
	Exclude        []string      `koanf:"exclude" json:"exclude"`
	Extensions     []string      `koanf:"extensions" json:"extensions"`
	ScoreThreshold *int          `koanf:"score_threshold" json:"score_threshold,omitempty"`
	Model          *ModelConfig  `koanf:"model" json:"model,omitempty"`
	Models         []ModelConfig `koanf:"models" json:"models,omitempty"`
	DocsDir        string        `koanf:"docs_dir" json:"docs_dir"`
	Output         string        `koanf:"output" json:"output,omitempty"`
	LogLevel       string        `koanf:"log_level" json:"log_level"`
	Privacy        PrivacyConfig `koanf:"privacy" json:"privacy"`
	GitHub         GitHubConfig  `koanf:"github" json:"github"`
}

// ModelConfig selects and configures one provider. The kind is read from
// "kind" or, in the older layout, from "provider.type".
type ModelConfig struct {
	Kind             string            `koanf:"kind" json:"kind,omitempty"`
	Provider         ProviderRef       `koanf:"provider" json:"provider,omitempty"`
	ModelName        string            `koanf:"model_name" json:"model_name,omitempty"`
	Temperature      *float64          `koanf:"temperature" json:"temperature,omitempty"`
	Region           string            `koanf:"region" json:"region,omitempty"`
	Credentials      map[string]string `koanf:"credentials" json:"credentials,omitempty"`
	ExtraParams      map[string]any    `koanf:"extra_params" json:"extra_params,omitempty"`
	AdditionalParams map[string]any    `koanf:"additional_params" json:"additional_params,omitempty"`
}

// ProviderRef is the nested provider block of the older layout.
type ProviderRef struct {
	Type string `koanf:"type" json:"type,omitempty"`
}

// PrivacyConfig controls redaction of prompts before they leave the machine.
type PrivacyConfig struct {
	RedactSecrets bool     `koanf:"redact_secrets" json:"redact_secrets"`
	RedactPaths   []string `koanf:"redact_paths" json:"redact_paths"`
}

// GitHubConfig configures the issue tracker used by the issue run.
type GitHubConfig struct {
	Repository string   `koanf:"repository" json:"repository,omitempty"`
	Labels     []string `koanf:"labels" json:"labels"`
}

// Default returns a Config with all defaults applied.
func Default() Config {
	return Config{
		Include:    []string{},
		Exclude:    []string{},
		Extensions: []string{".py"},
		DocsDir:    "data",
		LogLevel:   "info",
		Privacy: PrivacyConfig{
			RedactPaths: []string{"**/.env", "**/*secrets*"},
		},
		GitHub: GitHubConfig{
			Labels: []string{"issue-agent"},
		},
	}
}

func defaults() map[string]any {
	d := Default()
	return map[string]any{
		"include":                d.Include,
		"exclude":                d.Exclude,
		"extensions":             d.Extensions,
		"docs_dir":               d.DocsDir,
		"log_level":              d.LogLevel,
		"privacy.redact_secrets": d.Privacy.RedactSecrets,
		"privacy.redact_paths":   d.Privacy.RedactPaths,
		"github.labels":          d.GitHub.Labels,
	}
}

// Source describes where Load reads from.
type Source struct {
	// Path is the config file. A missing file is only an error when Required.
	Path     string
	Required bool
	// Env is used for ${VAR} substitution inside the file.
	Env providers.Env
	// Overrides come from CLI flags. Nil values are skipped.
	Overrides map[string]any
}

// Load builds the effective config by merging: defaults <- file <- env <- overrides.
func Load(src Source) (Config, error) {
	k := koanf.New(".")

	if err := k.Load(confmap.Provider(defaults(), "."), nil); err != nil {
		return Config{}, fmt.Errorf("loading defaults: %w", err)
	}

	if src.Path != "" {
		data, err := os.ReadFile(src.Path)
		switch {
		case err == nil:
			if err := k.Load(rawbytes.Provider(data), &envParser{env: src.Env}); err != nil {
				return Config{}, fmt.Errorf("parsing config file %s: %w", src.Path, err)
			}
		case errors.Is(err, os.ErrNotExist) && !src.Required:
		default:
			return Config{}, fmt.Errorf("reading config file: %w", err)
		}
	}

	// An empty variable is treated as unset.
	err := k.Load(env.ProviderWithValue(EnvPrefix, ".", func(key, value string) (string, any) {
		if value == "" {
			return "", nil
		}
		return strings.ReplaceAll(strings.ToLower(strings.TrimPrefix(key, EnvPrefix)), "__", "."), value
	}), nil)
	if err != nil {
		return Config{}, fmt.Errorf("loading environment: %w", err)
	}

	if o := present(src.Overrides); len(o) > 0 {
		if err := k.Load(confmap.Provider(o, "."), nil); err != nil {
			return Config{}, fmt.Errorf("applying overrides: %w", err)
		}
	}

	var cfg Config
	if err := k.Unmarshal("", &cfg); err != nil {
		return Config{}, fmt.Errorf("decoding config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func present(m map[string]any) map[string]any {
	out := make(map[string]any, len(m))
	for k, v := range m {
		if v != nil {
			out[k] = v
		}
	}
	return out
}

// Validate checks values no later stage can recover from.
func (c Config) Validate() error {
	if t := c.ScoreThreshold; t != nil && (*t < 0 || *t > 100) {
		return fmt.Errorf("score_threshold must be between 0 and 100, got %d", *t)
	}
	for i, m := range c.ModelList() {
		if m.kind() == "" {
			return fmt.Errorf("model %d: provider kind is not set", i)
		}
	}
	return nil
}

// ModelList returns the configured models in order: "models" when present,
// otherwise the single "model".
func (c Config) ModelList() []ModelConfig {
	if len(c.Models) > 0 {
		return c.Models
	}
	if c.Model != nil {
		return []ModelConfig{*c.Model}
	}
	return nil
}

// Primary returns the model used by single-provider runs.
func (c Config) Primary() (ModelConfig, error) {
	if c.Model != nil {
		return *c.Model, nil
	}
	if len(c.Models) > 0 {
		return c.Models[0], nil
	}
	return ModelConfig{}, ErrNoModel
}

func (m ModelConfig) kind() string {
	if m.Kind != "" {
		return m.Kind
	}
	return m.Provider.Type
}

// ProviderConfig converts m into the provider factory's input.
func (m ModelConfig) ProviderConfig() providers.Config {
	extra := make(map[string]any, len(m.AdditionalParams)+len(m.ExtraParams)+1)
	for k, v := range m.AdditionalParams {
		extra[k] = v
	}
	for k, v := range m.ExtraParams {
		extra[k] = v
	}
	if _, ok := extra["region"]; !ok && m.Region != "" {
		extra["region"] = m.Region
	}
	return providers.Config{
		Kind:        providers.ParseKind(m.kind()),
		ModelName:   m.ModelName,
		Temperature: m.Temperature,
		Credentials: m.Credentials,
		ExtraParams: extra,
	}
}

// Masked returns a copy of c with every credential value hidden.
func (c Config) Masked() Config {
	mask := func(m ModelConfig) ModelConfig {
		if len(m.Credentials) == 0 {
			return m
		}
		creds := make(map[string]string, len(m.Credentials))
		for k, v := range m.Credentials {
			if v != "" {
				v = "****"
			}
			creds[k] = v
		}
		m.Credentials = creds
		return m
	}
	if c.Model != nil {
		m := mask(*c.Model)
		c.Model = &m
	}
	if len(c.Models) > 0 {
		models := make([]ModelConfig, len(c.Models))
		for i, m := range c.Models {
			models[i] = mask(m)
		}
		c.Models = models
	}
	return c
}

var envRef = regexp.MustCompile(`\$\{(\w+)\}`)

// envParser is the YAML parser with ${VAR} references in string values
// replaced from env. Null values and strings that are empty after
// substitution are dropped, so neither erases a default.
type envParser struct {
	env providers.Env
}

func (p *envParser) Unmarshal(b []byte) (map[string]any, error) {
	m, err := yaml.Parser().Unmarshal(b)
	if err != nil {
		return nil, err
	}
	return p.clean(m).(map[string]any), nil
}

func (p *envParser) Marshal(m map[string]any) ([]byte, error) {
	return yaml.Parser().Marshal(m)
}

func (p *envParser) clean(v any) any {
	switch t := v.(type) {
	case map[string]any:
		for k, e := range t {
			if e = p.clean(e); e == nil {
				delete(t, k)
				continue
			}
			t[k] = e
		}
		return t
	case []any:
		out := t[:0]
		for _, e := range t {
			if e = p.clean(e); e != nil {
				out = append(out, e)
			}
		}
		return out
	case string:
		s := envRef.ReplaceAllStringFunc(t, func(ref string) string {
			return p.env[ref[2:len(ref)-1]]
		})
		if strings.TrimSpace(s) == "" {
			return nil
		}
		return s
	}
	return v
}

// ConfigDir returns the platform-appropriate user config directory.
func ConfigDir() (string, error) {
	if xdg := os.Getenv("XDG_CONFIG_HOME"); xdg != "" {
		return filepath.Join(xdg, "agents"), nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("cannot determine home directory: %w", err)
	}
	switch runtime.GOOS {
	case "darwin":
		return filepath.Join(home, "Library", "Application Support", "agents"), nil
	case "windows":
		if appData := os.Getenv("APPDATA"); appData != "" {
			return filepath.Join(appData, "agents"), nil
		}
		return filepath.Join(home, "AppData", "Roaming", "agents"), nil
	default:
		return filepath.Join(home, ".config", "agents"), nil
	}
}

// Locate finds the default config file name in dir, then in the user
// config directory. It returns the path in dir when neither exists.
func Locate(dir, name string) string {
	local := filepath.Join(dir, name)
	if _, err := os.Stat(local); err == nil {
		return local
	}
	if cd, err := ConfigDir(); err == nil {
		p := filepath.Join(cd, name)
		if _, err := os.Stat(p); err == nil {
			return p
		}
	}
	return local
}
