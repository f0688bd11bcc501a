package output

import (
	"fmt"
	"io"
	"strings"
)

// TextWriter outputs a human-readable report.
type TextWriter struct{}

func (t *TextWriter) WriteReview(w io.Writer, s *Summary) error {
	ew := &errWriter{w: w}

	title := "Code Review"
	if s.NeedsMoreComments != nil {
		title = "Comment Review"
	}
	ew.printf("%s (%d files)\n", title, len(s.Files))
	ew.println(strings.Repeat("─", 60))
	ew.printf("Score: %d / 100 (threshold %d)\n", s.Score, s.Threshold)
	if s.NeedsMoreComments != nil {
		ew.printf("More comments recommended: %s\n", yesNo(*s.NeedsMoreComments))
	}
	ew.println(strings.Repeat("─", 60))

	section(ew, "Feedback", s.Feedback)
	section(ew, "Suggestions", s.Suggestions)
	section(ew, "Strengths", s.Strengths)

	ew.printf("\n%s\n", strings.Repeat("─", 60))
	if s.ResultPath != "" {
		ew.printf("Saved result to %s\n", s.ResultPath)
	}
	if s.Pass {
		ew.printf("PASS: score %d >= %d\n", s.Score, s.Threshold)
	} else {
		ew.printf("FAIL: score below threshold (%d < %d)\n", s.Score, s.Threshold)
	}
	return ew.err
}

func (t *TextWriter) WriteIssues(w io.Writer, r *IssueReport) error {
	ew := &errWriter{w: w}

	ew.println("Issue Review")
	ew.println(strings.Repeat("─", 60))
	for _, a := range r.Abstained {
		ew.printf("[-] %s abstained: %s\n", a.Provider, a.Reason)
	}
	if !r.CreateIssues {
		ew.println("\nNo new issues to create.")
		return ew.err
	}

	ew.printf("Selected %d issue(s) from %s\n", len(r.Issues), r.Winner)
	for i, is := range r.Issues {
		ew.printf("\n  %d. %s\n", i+1, is.Title)
		for _, line := range wrapText(is.Body, 70) {
			ew.printf("    %s\n", line)
		}
		if i < len(r.Created) {
			ew.printf("    -> %s\n", r.Created[i])
		}
	}
	if r.DryRun {
		ew.println("\nDry run: no issues were created.")
	}
	return ew.err
}

func section(ew *errWriter, name string, items []string) {
	if len(items) == 0 {
		return
	}
	ew.printf("\n%s:\n", name)
	for _, item := range items {
		lines := wrapText(item, 70)
		ew.printf("  - %s\n", lines[0])
		for _, l := range lines[1:] {
			ew.printf("    %s\n", l)
		}
	}
}

func yesNo(b bool) string {
	if b {
		return "yes"
	}
	return "no"
}

// errWriter wraps an io.Writer and captures the first error.
type errWriter struct {
	w   io.Writer
	err error
}

func (ew *errWriter) printf(format string, args ...interface{}) {
	if ew.err != nil {
		return
	}
	_, ew.err = fmt.Fprintf(ew.w, format, args...)
}

func (ew *errWriter) println(s string) {
	if ew.err != nil {
		return
	}
	_, ew.err = fmt.Fprintln(ew.w, s)
}

func wrapText(text string, width int) []string {
	if len(text) <= width {
		return []string{text}
	}
	var lines []string
	words := strings.Fields(text)
	var current strings.Builder
	for _, word := range words {
		if current.Len()+len(word)+1 > width && current.Len() > 0 {
			lines = append(lines, current.String())
			current.Reset()
		}
		if current.Len() > 0 {
			current.WriteString(" ")
		}
		current.WriteString(word)
	}
	if current.Len() > 0 {
		lines = append(lines, current.String())
	}
	if len(lines) == 0 {
		return []string{""}
	}
	return lines
}
