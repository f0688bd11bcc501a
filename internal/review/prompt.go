package review

import (
	"fmt"
	"strings"
)

const commentReviewTemplate = `You are a senior software engineer specializing in code comment quality reviews. Review the following code only for its commenting quality and return a single JSON object with the fields:

- "score": an integer (0-100) representing how well the code is commented.
- "code_comment": a boolean, true if additional comments are recommended.
- "feedback": a list of short, specific observations about comment issues (missing, redundant, unclear).
- "suggestions": a list of clear improvements for the comments (clarity, coverage, precision).
- "strengths": a list of well-commented aspects of the code.

Only review code comments. Do not evaluate logic, syntax or functionality unless it directly affects comment quality.

You are reviewing all files together, not individually. Base the score and feedback on the whole codebase.

Project Structure:
%s

Codebase:
%s

Respond only with valid JSON (no markdown, no extra text). The output must begin with { and end with }.

Expected Output:
{
  "score": integer,
  "code_comment": boolean,
  "feedback": [string],
  "suggestions": [string],
  "strengths": [string]
}`

const codeReviewTemplate = `You are a senior code reviewer. Analyze the following code and return a single JSON object with:

- "score": overall quality score, an integer from 0 to 100.
- "feedback": a list of issues, improvements and observations.
- "suggestions": a list of possible changes to improve quality.
- "strengths": a list of things the code does well.

Review all the files and the structure at once. The score is computed over the whole codebase, never file by file.

Project Structure:
%s

Complete Codebase:
%s

Output only a JSON object matching this schema. No code, markdown, explanations or extra text. The output must begin with { and end with }.

Output schema:
{
  "score": integer,
  "feedback": [string],
  "suggestions": [string],
  "strengths": [string]
}`

const issueTemplate = `You are an autonomous reviewer helping to manage GitHub issues.
Analyze the provided documents and the list of currently open GitHub issues and decide whether any new, non-redundant issues should be created.

### Instructions:

1. Compare the documents and SonarQube metrics against the current issues.
2. Identify gaps, untracked problems or improvement opportunities that are not already covered by an existing issue.
3. Do not create duplicate or overlapping issues. Each new issue must describe one clearly distinct concern.
4. Group similar observations into a single issue where possible.
5. Give each new issue a concise, descriptive title and a clear, actionable body.

Documents and metrics:
%s

Current GitHub issues:
%s

Respond only with a JSON object of this form (no markdown, no extra text):
{
  "create_issues": boolean,
  "issues": [{"title": string, "body": string}]
}
Set "create_issues" to false and "issues" to [] when nothing new should be filed.`

// CommentReviewPrompt asks for a ReviewResult.
func CommentReviewPrompt(structure, code string) string {
	return fmt.Sprintf(commentReviewTemplate, structure, code)
}

// CodeReviewPrompt asks for a CodeReviewResult.
func CodeReviewPrompt(structure, code string) string {
	return fmt.Sprintf(codeReviewTemplate, structure, code)
}

// IssuePrompt asks for a Decision given the document content and the
// currently open issues, one "title: body" entry each.
func IssuePrompt(content string, existing []string) string {
	list := "(none)"
	if len(existing) > 0 {
		lines := make([]string, len(existing))
		for i, e := range existing {
			lines[i] = "- " + e
		}
		list = strings.Join(lines, "\n")
	}
	return fmt.Sprintf(issueTemplate, content, list)
}
