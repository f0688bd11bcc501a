package cli

import (
	"bytes"
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Chitrak-Aseri/Agents/internal/config"
	"github.com/Chitrak-Aseri/Agents/internal/github"
	"github.com/Chitrak-Aseri/Agents/internal/output"
	"github.com/Chitrak-Aseri/Agents/internal/providers"
	"github.com/Chitrak-Aseri/Agents/internal/review"
)

const lowScoreReply = `{"score": 40, "code_comment": true, "feedback": ["b.py lacks docstrings"], "suggestions": ["add module docstring"], "strengths": ["a.py is well documented"]}`

type mockProvider struct {
	name    string
	reply   string
	prompts []string
}

func (m *mockProvider) Name() string { return m.name }

func (m *mockProvider) Generate(_ context.Context, prompt string) (string, error) {
	m.prompts = append(m.prompts, prompt)
	return m.reply, nil
}

// stubProviders makes newProvider return a mock per kind. Kinds without a
// reply fall through to the real factory.
func stubProviders(t *testing.T, replies map[providers.Kind]string) map[providers.Kind]*mockProvider {
	t.Helper()
	built := map[providers.Kind]*mockProvider{}
	orig := newProvider
	t.Cleanup(func() { newProvider = orig })
	newProvider = func(cfg providers.Config, env providers.Env, opts ...providers.Option) (providers.Provider, error) {
		reply, ok := replies[cfg.Kind]
		if !ok {
			return orig(cfg, env, opts...)
		}
		m := &mockProvider{name: string(cfg.Kind), reply: reply}
		built[cfg.Kind] = m
		return m, nil
	}
	return built
}

type fakeTracker struct {
	existing []string
	created  []review.Issue
}

func (f *fakeTracker) OpenIssues(context.Context) ([]string, error) { return f.existing, nil }

func (f *fakeTracker) CreateIssue(_ context.Context, title, body string) (string, error) {
	f.created = append(f.created, review.Issue{Title: title, Body: body})
	return "https://github.com/o/r/issues/" + title, nil
}

func stubTracker(t *testing.T, f *fakeTracker) {
	t.Helper()
	orig := newTracker
	t.Cleanup(func() { newTracker = orig })
	newTracker = func(config.Config, providers.Env) (github.Tracker, error) { return f, nil }
}

func writeFiles(t *testing.T, dir string, files map[string]string) {
	t.Helper()
	for name, content := range files {
		p := filepath.Join(dir, filepath.FromSlash(name))
		require.NoError(t, os.MkdirAll(filepath.Dir(p), 0o755))
		require.NoError(t, os.WriteFile(p, []byte(content), 0o644))
	}
}

// sampleRepo is a directory with one documented and one undocumented file.
func sampleRepo(t *testing.T, cfg string) (root, cfgPath string) {
	t.Helper()
	root = t.TempDir()
	writeFiles(t, root, map[string]string{
		"a.py": "\"\"\"Adds numbers.\"\"\"\n\n\ndef add(a, b):\n    \"\"\"Return a + b.\"\"\"\n    return a + b\n",
		"b.py": "def mul(a, b):\n    return a * b\n",
	})
	cfgPath = filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(cfgPath, []byte(cfg), 0o644))
	return root, cfgPath
}

const sampleConfig = `
include: ["."]
exclude: []
score_threshold: 70
model:
  provider:
    type: openai
  model_name: gpt-4o
`

func execute(args ...string) (code int, stdout, stderr string) {
	var out, errOut bytes.Buffer
	code = run(args, &out, &errOut)
	return code, out.String(), errOut.String()
}

func TestCommentReview_BelowThreshold(t *testing.T) {
	mocks := stubProviders(t, map[providers.Kind]string{providers.KindOpenAI: lowScoreReply})
	root, cfgPath := sampleRepo(t, sampleConfig)

	code, stdout, stderr := execute("comment-review", "--config", cfgPath, "--root", root)
	if code != ExitFail {
		t.Fatalf("exit code = %d, want %d\nstderr: %s", code, ExitFail, stderr)
	}
	assert.Contains(t, stdout, "FAIL: score below threshold (40 < 70)")

	data, err := os.ReadFile(filepath.Join(root, output.CommentResultFile))
	require.NoError(t, err)
	var persisted, want map[string]any
	require.NoError(t, json.Unmarshal(data, &persisted))
	require.NoError(t, json.Unmarshal([]byte(lowScoreReply), &want))
	assert.Equal(t, want, persisted)

	prompt := mocks[providers.KindOpenAI].prompts[0]
	assert.Contains(t, prompt, "### a.py ###")
	assert.Contains(t, prompt, "### b.py ###")
}

func TestCommentReview_Pass(t *testing.T) {
	stubProviders(t, map[providers.Kind]string{providers.KindOpenAI: strings.Replace(lowScoreReply, "40", "85", 1)})
	root, cfgPath := sampleRepo(t, sampleConfig)

	code, stdout, stderr := execute("comment-review", "--config", cfgPath, "--root", root)
	if code != ExitSuccess {
		t.Fatalf("exit code = %d, want 0\nstderr: %s", code, stderr)
	}
	assert.Contains(t, stdout, "PASS: score 85 >= 70")
}

func TestCommentReview_ThresholdFlag(t *testing.T) {
	stubProviders(t, map[providers.Kind]string{providers.KindOpenAI: lowScoreReply})
	root, cfgPath := sampleRepo(t, sampleConfig)

	code, _, stderr := execute("comment-review", "--config", cfgPath, "--root", root, "--score-threshold", "40")
	assert.Equal(t, ExitSuccess, code, stderr)
}

func TestCommentReview_DefaultThreshold(t *testing.T) {
	stubProviders(t, map[providers.Kind]string{providers.KindOpenAI: strings.Replace(lowScoreReply, "40", "69", 1)})
	root, cfgPath := sampleRepo(t, "include: [\".\"]\nmodel:\n  kind: openai\n")

	code, stdout, _ := execute("comment-review", "--config", cfgPath, "--root", root)
	assert.Equal(t, ExitFail, code)
	assert.Contains(t, stdout, "(69 < 70)")
}

func TestCommentReview_EmptyThresholdKeepsGate(t *testing.T) {
	stubProviders(t, map[providers.Kind]string{providers.KindOpenAI: strings.Replace(lowScoreReply, "40", "69", 1)})
	t.Setenv("AGENTS_SCORE_THRESHOLD", "")
	root, cfgPath := sampleRepo(t, "include: [\".\"]\nscore_threshold: ${AGENTS_TEST_UNSET}\nmodel:\n  kind: openai\n")

	code, stdout, _ := execute("comment-review", "--config", cfgPath, "--root", root)
	assert.Equal(t, ExitFail, code)
	assert.Contains(t, stdout, "(69 < 70)")
}

func TestCommentReview_JSONFormat(t *testing.T) {
	stubProviders(t, map[providers.Kind]string{providers.KindOpenAI: lowScoreReply})
	root, cfgPath := sampleRepo(t, sampleConfig)

	code, stdout, _ := execute("comment-review", "--config", cfgPath, "--root", root, "--format", "json")
	assert.Equal(t, ExitFail, code)

	var s output.Summary
	require.NoError(t, json.Unmarshal([]byte(stdout), &s))
	assert.Equal(t, []string{"a.py", "b.py"}, s.Files)
	assert.False(t, s.Pass)
}

func TestCodeReview_WritesResult(t *testing.T) {
	stubProviders(t, map[providers.Kind]string{
		providers.KindOpenAI: `{"score": 91, "feedback": [], "suggestions": [], "strengths": ["small functions"]}`,
	})
	root, cfgPath := sampleRepo(t, sampleConfig)

	code, _, stderr := execute("code-review", "--config", cfgPath, "--root", root)
	require.Equal(t, ExitSuccess, code, stderr)

	data, err := os.ReadFile(filepath.Join(root, output.CodeResultFile))
	require.NoError(t, err)
	got, err := review.ParseCodeReviewResult(string(data))
	require.NoError(t, err)
	assert.Equal(t, 91, got.Score)
}

func TestReview_NoFiles(t *testing.T) {
	stubProviders(t, map[providers.Kind]string{providers.KindOpenAI: lowScoreReply})
	root, cfgPath := sampleRepo(t, "include: [\"src\"]\nexclude: [\"build\"]\nmodel:\n  kind: openai\n")

	code, _, stderr := execute("comment-review", "--config", cfgPath, "--root", root)
	assert.Equal(t, ExitFail, code)
	assert.Contains(t, stderr, "no files found")
	assert.Contains(t, stderr, root)
	assert.Contains(t, stderr, `"src"`)
	assert.Contains(t, stderr, `"build"`)
}

func TestReview_UnparsableReply(t *testing.T) {
	stubProviders(t, map[providers.Kind]string{providers.KindOpenAI: "The comments look fine overall."})
	root, cfgPath := sampleRepo(t, sampleConfig)

	code, _, stderr := execute("comment-review", "--config", cfgPath, "--root", root)
	assert.Equal(t, ExitFail, code)
	assert.Contains(t, stderr, "The comments look fine overall.")

	_, err := os.Stat(filepath.Join(root, output.CommentResultFile))
	assert.True(t, os.IsNotExist(err), "no result file on parse failure")
}

func TestReview_SchemaMismatch(t *testing.T) {
	stubProviders(t, map[providers.Kind]string{providers.KindOpenAI: `{"score": "high"}`})
	root, cfgPath := sampleRepo(t, sampleConfig)

	code, _, stderr := execute("comment-review", "--config", cfgPath, "--root", root)
	assert.Equal(t, ExitFail, code)
	assert.Contains(t, stderr, "invalid field: score")
}

func TestReview_MissingCredential(t *testing.T) {
	t.Setenv("OPENAI_API_KEY", "")
	root, cfgPath := sampleRepo(t, sampleConfig)

	code, _, stderr := execute("comment-review", "--config", cfgPath, "--root", root)
	assert.Equal(t, ExitAuthError, code)
	assert.Contains(t, stderr, "api_key")
}

func TestReview_ProviderKinds(t *testing.T) {
	tests := []struct {
		kind string
		want int
	}{
		{"mystery", ExitUsageError},
		{"groq", ExitUsageError},
		{"google_gemini", ExitUsageError},
	}
	for _, tt := range tests {
		t.Run(tt.kind, func(t *testing.T) {
			root, cfgPath := sampleRepo(t, "include: [\".\"]\nmodel:\n  kind: "+tt.kind+"\n")
			code, _, stderr := execute("comment-review", "--config", cfgPath, "--root", root)
			assert.Equal(t, tt.want, code, stderr)
		})
	}
}

func TestReview_NoModel(t *testing.T) {
	root, cfgPath := sampleRepo(t, "include: [\".\"]\n")
	code, _, stderr := execute("comment-review", "--config", cfgPath, "--root", root)
	assert.Equal(t, ExitUsageError, code)
	assert.Contains(t, stderr, "no model configured")
}

func TestReview_MissingConfigFile(t *testing.T) {
	code, _, _ := execute("comment-review", "--config", filepath.Join(t.TempDir(), "absent.yaml"))
	assert.Equal(t, ExitUsageError, code)
}

func TestReview_RedactFlag(t *testing.T) {
	mocks := stubProviders(t, map[providers.Kind]string{providers.KindOpenAI: lowScoreReply})
	root, cfgPath := sampleRepo(t, sampleConfig)
	writeFiles(t, root, map[string]string{"c.py": `API_KEY = "sk-abcdefghijklmnopqrstuvwxyz"` + "\n"})

	execute("comment-review", "--config", cfgPath, "--root", root, "--redact")
	prompt := mocks[providers.KindOpenAI].prompts[0]
	assert.NotContains(t, prompt, "sk-abcdefghijklmnopqrstuvwxyz")
	assert.Contains(t, prompt, "### c.py ###")
}

func issuesConfig(t *testing.T, models string) (cfgPath string) {
	t.Helper()
	docs := t.TempDir()
	writeFiles(t, docs, map[string]string{"notes.txt": "Coverage dropped to 41%."})
	cfgPath = filepath.Join(t.TempDir(), "issuer-config.yaml")
	body := "docs_dir: " + docs + "\nmodels:\n" + models
	require.NoError(t, os.WriteFile(cfgPath, []byte(body), 0o644))
	return cfgPath
}

func TestIssues_MostIssuesWins(t *testing.T) {
	mocks := stubProviders(t, map[providers.Kind]string{
		providers.KindOpenAI:   `{"create_issues": false, "issues": []}`,
		providers.KindDeepSeek: `{"create_issues": true, "ISSUES": [{"title": "Raise coverage", "body": "Coverage is 41%."}, {"title": "Add CI", "body": "No CI."}]}`,
		providers.KindBedrock:  "not json at all",
	})
	tracker := &fakeTracker{existing: []string{"Flaky tests: they fail"}}
	stubTracker(t, tracker)
	cfgPath := issuesConfig(t, "  - kind: openai\n  - kind: deepseek\n  - kind: bedrock\n")

	code, stdout, stderr := execute("issues", "--config", cfgPath)
	require.Equal(t, ExitSuccess, code, stderr)

	assert.Equal(t, []review.Issue{
		{Title: "Raise coverage", Body: "Coverage is 41%."},
		{Title: "Add CI", Body: "No CI."},
	}, tracker.created)
	assert.Contains(t, stdout, "Selected 2 issue(s) from deepseek")
	assert.Contains(t, stdout, "bedrock abstained")

	prompt := mocks[providers.KindOpenAI].prompts[0]
	assert.Contains(t, prompt, "Coverage dropped to 41%.")
	assert.Contains(t, prompt, "- Flaky tests: they fail")
}

func TestIssues_DryRun(t *testing.T) {
	stubProviders(t, map[providers.Kind]string{
		providers.KindOpenAI: `{"create_issues": true, "issues": [{"title": "T", "body": "B"}]}`,
	})
	tracker := &fakeTracker{}
	stubTracker(t, tracker)
	cfgPath := issuesConfig(t, "  - kind: openai\n")

	code, stdout, _ := execute("issues", "--config", cfgPath, "--dry-run")
	assert.Equal(t, ExitSuccess, code)
	assert.Empty(t, tracker.created)
	assert.Contains(t, stdout, "Dry run")
}

func TestIssues_AllAbstain(t *testing.T) {
	stubProviders(t, map[providers.Kind]string{providers.KindOpenAI: "nope"})
	tracker := &fakeTracker{}
	stubTracker(t, tracker)
	cfgPath := issuesConfig(t, "  - kind: openai\n  - kind: groq\n")

	code, stdout, _ := execute("issues", "--config", cfgPath)
	assert.Equal(t, ExitSuccess, code)
	assert.Empty(t, tracker.created)
	assert.Contains(t, stdout, "No new issues to create.")
}

func TestIssues_MissingDocs(t *testing.T) {
	stubProviders(t, map[providers.Kind]string{providers.KindOpenAI: "{}"})
	stubTracker(t, &fakeTracker{})
	cfgPath := issuesConfig(t, "  - kind: openai\n")

	code, _, stderr := execute("issues", "--config", cfgPath, "--docs-dir", filepath.Join(t.TempDir(), "absent"))
	assert.Equal(t, ExitFail, code)
	assert.Contains(t, stderr, "documents folder")
}

func TestVersionCmd(t *testing.T) {
	code, stdout, _ := execute("version")
	assert.Equal(t, ExitSuccess, code)
	assert.Contains(t, stdout, "agents version "+version)
}

func TestProvidersList(t *testing.T) {
	code, stdout, _ := execute("providers", "list")
	assert.Equal(t, ExitSuccess, code)
	for _, k := range providers.Implemented {
		assert.Contains(t, stdout, string(k)+":")
	}
	for _, k := range providers.Stubbed {
		assert.Contains(t, stdout, "- "+string(k))
	}
}

func TestKnownKinds_CoverImplemented(t *testing.T) {
	listed := map[providers.Kind]bool{}
	for _, k := range knownKinds {
		listed[k.Kind] = true
	}
	for _, k := range providers.Implemented {
		if !listed[k] {
			t.Errorf("provider %s missing from providers list", k)
		}
	}
}

func TestConfigShow_MasksCredentials(t *testing.T) {
	cfgPath := filepath.Join(t.TempDir(), "c.yaml")
	require.NoError(t, os.WriteFile(cfgPath, []byte("model:\n  kind: openai\n  credentials:\n    api_key: sk-very-secret\n"), 0o644))

	code, stdout, _ := execute("config", "show", "--config", cfgPath)
	assert.Equal(t, ExitSuccess, code)
	assert.NotContains(t, stdout, "sk-very-secret")
	assert.Contains(t, stdout, `"effective_score_threshold": 70`)
}

func TestConfigShow_UnknownRun(t *testing.T) {
	code, _, _ := execute("config", "show", "--run", "deploy")
	assert.Equal(t, ExitUsageError, code)
}

func TestUnknownCommand(t *testing.T) {
	code, _, _ := execute("frobnicate")
	assert.Equal(t, ExitUsageError, code)
}

func TestBuildOverrides(t *testing.T) {
	cmd := newCommentReviewCmd()
	require.NoError(t, cmd.ParseFlags(nil))
	assert.Empty(t, buildOverrides(cmd), "absent flags must not override")

	cmd = newCommentReviewCmd()
	require.NoError(t, cmd.ParseFlags([]string{"--score-threshold", "0", "--extensions", ".py, .pyi", "--redact"}))
	assert.Equal(t, map[string]any{
		"score_threshold":        0,
		"extensions":             []string{".py", ".pyi"},
		"privacy.redact_secrets": true,
	}, buildOverrides(cmd))
}

func TestSplitComma(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  []string
	}{
		{"empty string", "", nil},
		{"single value", "foo", []string{"foo"}},
		{"multiple values", "a,b,c", []string{"a", "b", "c"}},
		{"whitespace trimmed", " a , b , c ", []string{"a", "b", "c"}},
		{"empty parts skipped", "a,,b", []string{"a", "b"}},
		{"all empty", ",,,", nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := splitComma(tt.input)
			if len(got) != len(tt.want) {
				t.Fatalf("splitComma(%q) = %v (len %d), want %v (len %d)",
					tt.input, got, len(got), tt.want, len(tt.want))
			}
			for i := range got {
				if got[i] != tt.want[i] {
					t.Errorf("splitComma(%q)[%d] = %q, want %q",
						tt.input, i, got[i], tt.want[i])
				}
			}
		})
	}
}

func TestModelLabel(t *testing.T) {
	tests := []struct {
		m    config.ModelConfig
		want string
	}{
		{config.ModelConfig{Kind: "openai", ModelName: "gpt-4o"}, "openai/gpt-4o"},
		{config.ModelConfig{Provider: config.ProviderRef{Type: "google_gemini"}}, "gemini"},
	}
	for _, tt := range tests {
		if got := modelLabel(tt.m); got != tt.want {
			t.Errorf("modelLabel(%+v) = %q, want %q", tt.m, got, tt.want)
		}
	}
}
