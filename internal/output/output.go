package output

import (
	"fmt"
	"io"

	"github.com/Chitrak-Aseri/Agents/internal/review"
)

// Summary is the console view of one scored review run.
type Summary struct {
	Kind      review.Kind `json:"kind"`
	Score     int         `json:"score"`
	Threshold int         `json:"threshold"`
	Pass      bool        `json:"pass"`
	// NeedsMoreComments is only set for comment reviews.
	NeedsMoreComments *bool    `json:"code_comment,omitempty"`
	Feedback          []string `json:"feedback"`
	Suggestions       []string `json:"suggestions"`
	Strengths         []string `json:"strengths"`
	Files             []string `json:"files"`
	ResultPath        string   `json:"result_path,omitempty"`
}

// CommentSummary describes a comment review and its gate outcome.
func CommentSummary(r review.ReviewResult, g review.GateResult, files []string) *Summary {
	needs := r.NeedsMoreComments
	return &Summary{
		Kind:              review.KindComment,
		Score:             g.Score,
		Threshold:         g.Threshold,
		Pass:              g.Pass,
		NeedsMoreComments: &needs,
		Feedback:          r.Feedback,
		Suggestions:       r.Suggestions,
		Strengths:         r.Strengths,
		Files:             files,
	}
}

// CodeSummary describes a code review and its gate outcome.
func CodeSummary(r review.CodeReviewResult, g review.GateResult, files []string) *Summary {
	return &Summary{
		Kind:        review.KindCode,
		Score:       g.Score,
		Threshold:   g.Threshold,
		Pass:        g.Pass,
		Feedback:    r.Feedback,
		Suggestions: r.Suggestions,
		Strengths:   r.Strengths,
		Files:       files,
	}
}

// IssueReport is the console view of an issue run.
type IssueReport struct {
	Winner       string         `json:"winner,omitempty"`
	CreateIssues bool           `json:"create_issues"`
	Issues       []review.Issue `json:"issues"`
	Abstained    []Abstention   `json:"abstained,omitempty"`
	Created      []string       `json:"created,omitempty"`
	DryRun       bool           `json:"dry_run,omitempty"`
}

// Abstention names a provider that did not take part and why.
type Abstention struct {
	Provider string `json:"provider"`
	Reason   string `json:"reason"`
}

// NewIssueReport builds the report for an ensemble result. Created holds the
// URL of each issue filed, in order.
func NewIssueReport(res review.EnsembleResult, created []string, dryRun bool) *IssueReport {
	r := &IssueReport{
		Winner:       res.Winner,
		CreateIssues: res.Decision.CreateIssues,
		Issues:       res.Decision.Issues,
		Created:      created,
		DryRun:       dryRun,
	}
	for _, c := range res.Candidates {
		if c.Err != nil {
			r.Abstained = append(r.Abstained, Abstention{Provider: c.Provider, Reason: c.Err.Error()})
		}
	}
	return r
}

// Writer renders run results in a specific format.
type Writer interface {
	WriteReview(w io.Writer, s *Summary) error
	WriteIssues(w io.Writer, r *IssueReport) error
}

// GetWriter returns a writer for the specified format.
func GetWriter(format string) (Writer, error) {
	switch format {
	case "", "text":
		return &TextWriter{}, nil
	case "json":
		return &JSONWriter{}, nil
	default:
		return nil, fmt.Errorf("unsupported output format: %s", format)
	}
}
