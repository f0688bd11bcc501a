package output

import (
	"bytes"
	"encoding/json"
	"errors"
	"testing"

	"github.com/Chitrak-Aseri/Agents/internal/review"
)

func TestJSONWriter_Review(t *testing.T) {
	s := CodeSummary(review.CodeReviewResult{Score: 82, Feedback: []string{"f"}}, review.Gate(82, 70), []string{"a.py"})

	var buf bytes.Buffer
	w := &JSONWriter{}
	if err := w.WriteReview(&buf, s); err != nil {
		t.Fatalf("WriteReview error: %v", err)
	}

	var parsed Summary
	if err := json.Unmarshal(buf.Bytes(), &parsed); err != nil {
		t.Fatalf("Output is not valid JSON: %v", err)
	}
	if parsed.Kind != review.KindCode {
		t.Errorf("Kind = %q, want %q", parsed.Kind, review.KindCode)
	}
	if !parsed.Pass || parsed.Threshold != 70 {
		t.Errorf("gate = %v/%d, want pass at 70", parsed.Pass, parsed.Threshold)
	}
	if parsed.NeedsMoreComments != nil {
		t.Error("code review summary should not carry code_comment")
	}
}

func TestJSONWriter_Issues(t *testing.T) {
	res := review.EnsembleResult{
		Decision: review.Decision{CreateIssues: true, Issues: []review.Issue{{Title: "T", Body: "B"}}},
		Winner:   "openai",
		Candidates: []review.Candidate{
			{Provider: "bedrock", Err: errors.New("throttled")},
			{Provider: "openai"},
		},
	}
	var buf bytes.Buffer
	if err := (&JSONWriter{}).WriteIssues(&buf, NewIssueReport(res, nil, true)); err != nil {
		t.Fatalf("WriteIssues error: %v", err)
	}
	var parsed IssueReport
	if err := json.Unmarshal(buf.Bytes(), &parsed); err != nil {
		t.Fatalf("Output is not valid JSON: %v", err)
	}
	if len(parsed.Abstained) != 1 || parsed.Abstained[0].Provider != "bedrock" {
		t.Errorf("Abstained = %+v, want bedrock", parsed.Abstained)
	}
	if !parsed.DryRun || parsed.Winner != "openai" {
		t.Errorf("parsed = %+v", parsed)
	}
}

func TestGetWriter(t *testing.T) {
	for _, f := range []string{"", "text", "json"} {
		if _, err := GetWriter(f); err != nil {
			t.Errorf("GetWriter(%q) error: %v", f, err)
		}
	}
	if _, err := GetWriter("sarif"); err == nil {
		t.Error("GetWriter(sarif) should fail")
	}
}
