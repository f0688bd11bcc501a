package review

// ReviewResult is the comment-quality verdict.
type ReviewResult struct {
	Score             int      `json:"score"`
	NeedsMoreComments bool     `json:"code_comment"`
	Feedback          []string `json:"feedback"`
	Suggestions       []string `json:"suggestions"`
	Strengths         []string `json:"strengths"`
}

// CodeReviewResult is the general code-quality verdict.
type CodeReviewResult struct {
	Score       int      `json:"score"`
	Feedback    []string `json:"feedback"`
	Suggestions []string `json:"suggestions"`
	Strengths   []string `json:"strengths"`
}

// Issue is one issue a reviewer proposes to file.
type Issue struct {
	Title string `json:"title"`
	Body  string `json:"body"`
}

// Decision is a reviewer's answer to "should new issues be filed".
type Decision struct {
	CreateIssues bool    `json:"create_issues"`
	Issues       []Issue `json:"issues"`
}

// Neutral is the decision returned when no reviewer proposes anything.
func Neutral() Decision {
	return Decision{CreateIssues: false, Issues: []Issue{}}
}

// normalized makes CreateIssues agree with the issue list.
func (d Decision) normalized() Decision {
	if d.Issues == nil {
		d.Issues = []Issue{}
	}
	d.CreateIssues = len(d.Issues) > 0
	return d
}

// Kind names the two scored review runs.
type Kind string

const (
	KindComment Kind = "comment"
	KindCode    Kind = "code"
)
