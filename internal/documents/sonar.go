package documents

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"
)

// SonarReport is the subset of a SonarQube export the prompt uses.
type SonarReport struct {
	Issues      []SonarIssue     `json:"issues"`
	QualityGate SonarQualityGate `json:"quality_gate"`
	Metrics     []SonarMetric    `json:"metrics"`
}

type SonarIssue struct {
	RuleID   scalar `json:"ruleId"`
	Severity scalar `json:"severity"`
	Type     scalar `json:"type"`
	Message  scalar `json:"message"`
	File     scalar `json:"file"`
	Line     scalar `json:"line"`
}

type SonarQualityGate struct {
	Status     string           `json:"status"`
	Conditions []SonarCondition `json:"conditions"`
}

type SonarCondition struct {
	MetricKey      scalar `json:"metricKey"`
	Actual         scalar `json:"actual"`
	ErrorThreshold scalar `json:"errorThreshold"`
	Status         scalar `json:"status"`
}

type SonarMetric struct {
	Metric string `json:"metric"`
	Value  scalar `json:"value"`
}

// ParseSonar decodes a sonar.json export.
func ParseSonar(path string) (*SonarReport, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading sonar report: %w", err)
	}
	var r SonarReport
	if err := json.Unmarshal(data, &r); err != nil {
		return nil, fmt.Errorf("parsing sonar report: %w", err)
	}
	return &r, nil
}

// IssuesText renders one block per issue.
func (r *SonarReport) IssuesText() string {
	if r == nil || len(r.Issues) == 0 {
		return "No issues found in sonar.json."
	}
	blocks := make([]string, len(r.Issues))
	for i, is := range r.Issues {
		blocks[i] = fmt.Sprintf("- Rule: %s\n  Severity: %s\n  Type: %s\n  Message: %s\n  File: %s:%s",
			is.RuleID, is.Severity, is.Type, is.Message, is.File, is.Line)
	}
	return strings.Join(blocks, "\n\n")
}

// SummarizeSonar renders the quality gate and headline metrics. A nil report
// yields an empty summary.
func SummarizeSonar(r *SonarReport) string {
	if r == nil {
		return ""
	}

	status := r.QualityGate.Status
	if status == "" {
		status = "UNKNOWN"
	}
	lines := []string{fmt.Sprintf("Quality Gate Status: **%s**", status)}
	for _, c := range r.QualityGate.Conditions {
		lines = append(lines, fmt.Sprintf("- %s: %s (threshold: %s) => %s",
			c.MetricKey, c.Actual, c.ErrorThreshold, c.Status))
	}

	metrics := make(map[string]scalar, len(r.Metrics))
	for _, m := range r.Metrics {
		metrics[m.Metric] = m.Value
	}
	for _, m := range []struct{ key, format string }{
		{"coverage", "- Coverage: %s%%"},
		{"complexity", "- Complexity: %s"},
		{"bugs", "- Bugs: %s"},
		{"vulnerabilities", "- Vulnerabilities: %s"},
	} {
		if v := metrics[m.key]; v != "" {
			lines = append(lines, fmt.Sprintf(m.format, v))
		}
	}
	return strings.Join(lines, "\n")
}
