package output

import (
	"encoding/json"
	"fmt"
	"io"
)

// JSONWriter outputs results as JSON.
type JSONWriter struct{}

func (j *JSONWriter) WriteReview(w io.Writer, s *Summary) error {
	return writeJSON(w, s)
}

func (j *JSONWriter) WriteIssues(w io.Writer, r *IssueReport) error {
	return writeJSON(w, r)
}

func writeJSON(w io.Writer, v any) error {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("marshaling JSON: %w", err)
	}
	_, err = w.Write(data)
	if err != nil {
		return fmt.Errorf("writing JSON: %w", err)
	}
	_, err = fmt.Fprintln(w)
	return err
}
