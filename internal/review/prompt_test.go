package review

import (
	"strings"
	"testing"
)

func TestPrompts_EmbedInputs(t *testing.T) {
	for name, p := range map[string]string{
		"comment": CommentReviewPrompt("STRUCT", "CODE"),
		"code":    CodeReviewPrompt("STRUCT", "CODE"),
	} {
		if !strings.Contains(p, "STRUCT") || !strings.Contains(p, "CODE") {
			t.Errorf("%s prompt does not embed its inputs", name)
		}
		if strings.Contains(p, "%!") {
			t.Errorf("%s prompt has a formatting error", name)
		}
	}
	if !strings.Contains(CommentReviewPrompt("", ""), `"code_comment"`) {
		t.Error("comment prompt does not ask for code_comment")
	}
}

func TestIssuePrompt(t *testing.T) {
	p := IssuePrompt("DOCS", []string{"Flaky test: fails on CI", "Slow build: takes 10m"})
	if !strings.Contains(p, "- Flaky test: fails on CI\n- Slow build: takes 10m") {
		t.Errorf("existing issues not listed:\n%s", p)
	}
	if !strings.Contains(p, "DOCS") {
		t.Error("documents not embedded")
	}
	if !strings.Contains(IssuePrompt("DOCS", nil), "(none)") {
		t.Error("empty issue list not marked")
	}
}
