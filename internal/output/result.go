package output

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/Chitrak-Aseri/Agents/internal/review"
)

// Well-known result file names.
const (
	CommentResultFile = "code_comment_review_result.json"
	CodeResultFile    = "code_review_result.json"
)

// ResultFile returns the default result file name for a run kind.
func ResultFile(kind review.Kind) string {
	if kind == review.KindComment {
		return CommentResultFile
	}
	return CodeResultFile
}

// WriteResult persists the validated result object to path, indented by
// four spaces. Empty lists are written as [] rather than null.
func WriteResult(path string, v any) error {
	data, err := json.MarshalIndent(emptyLists(v), "", "    ")
	if err != nil {
		return fmt.Errorf("marshaling result: %w", err)
	}
	data = append(data, '\n')
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("writing result file: %w", err)
	}
	return nil
}

func emptyLists(v any) any {
	orEmpty := func(s []string) []string {
		if s == nil {
			return []string{}
		}
		return s
	}
	switch r := v.(type) {
	case review.ReviewResult:
		r.Feedback, r.Suggestions, r.Strengths = orEmpty(r.Feedback), orEmpty(r.Suggestions), orEmpty(r.Strengths)
		return r
	case review.CodeReviewResult:
		r.Feedback, r.Suggestions, r.Strengths = orEmpty(r.Feedback), orEmpty(r.Suggestions), orEmpty(r.Strengths)
		return r
	}
	return v
}
