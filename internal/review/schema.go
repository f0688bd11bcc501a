package review

import (
	"errors"
	"fmt"
	"regexp"
	"sort"
	"strings"

	"github.com/santhosh-tekuri/jsonschema/v5"
)

// SchemaValidationError means the model returned a JSON object of the wrong
// shape. Fields names every offending field, sorted.
type SchemaValidationError struct {
	Fields []string
	Err    error
}

func (e *SchemaValidationError) Error() string {
	return fmt.Sprintf("model output failed schema validation (fields: %s)", strings.Join(e.Fields, ", "))
}

func (e *SchemaValidationError) Unwrap() error { return e.Err }

const stringList = `{"type": "array", "items": {"type": "string"}}`

var reviewResultSchema = jsonschema.MustCompileString("review_result.json", `{
  "type": "object",
  "required": ["score", "code_comment", "feedback", "suggestions", "strengths"],
  "properties": {
    "score": {"type": "integer", "minimum": 0, "maximum": 100},
    "code_comment": {"type": "boolean"},
    "feedback": `+stringList+`,
    "suggestions": `+stringList+`,
    "strengths": `+stringList+`
  }
}`)

var codeReviewResultSchema = jsonschema.MustCompileString("code_review_result.json", `{
  "type": "object",
  "required": ["score", "feedback", "suggestions", "strengths"],
  "properties": {
    "score": {"type": "integer", "minimum": 0, "maximum": 100},
    "feedback": `+stringList+`,
    "suggestions": `+stringList+`,
    "strengths": `+stringList+`
  }
}`)

var decisionSchema = jsonschema.MustCompileString("reviewer_decision.json", `{
  "type": "object",
  "required": ["create_issues"],
  "properties": {
    "create_issues": {"type": "boolean"},
    "issues": {
      "type": "array",
      "items": {
        "type": "object",
        "required": ["title", "body"],
        "properties": {
          "title": {"type": "string", "minLength": 1},
          "body": {"type": "string", "minLength": 1}
        }
      }
    }
  }
}`)

func validate(schema *jsonschema.Schema, obj map[string]any) error {
	err := schema.Validate(obj)
	if err == nil {
		return nil
	}
	var ve *jsonschema.ValidationError
	if !errors.As(err, &ve) {
		return &SchemaValidationError{Err: err}
	}
	set := make(map[string]bool)
	collectFields(ve, set)
	fields := make([]string, 0, len(set))
	for f := range set {
		fields = append(fields, f)
	}
	sort.Strings(fields)
	return &SchemaValidationError{Fields: fields, Err: err}
}

var quoted = regexp.MustCompile(`'([^']*)'`)

// collectFields walks to the leaf causes and records each failing field as a
// dotted path. Missing properties are reported by name.
func collectFields(ve *jsonschema.ValidationError, set map[string]bool) {
	if len(ve.Causes) > 0 {
		for _, c := range ve.Causes {
			collectFields(c, set)
		}
		return
	}
	loc := strings.ReplaceAll(strings.Trim(ve.InstanceLocation, "/"), "/", ".")
	if strings.HasPrefix(ve.Message, "missing propert") {
		for _, m := range quoted.FindAllStringSubmatch(ve.Message, -1) {
			if loc == "" {
				set[m[1]] = true
			} else {
				set[loc+"."+m[1]] = true
			}
		}
		return
	}
	if loc == "" {
		loc = "(root)"
	}
	set[loc] = true
}

// ParseReviewResult extracts, validates and decodes a comment-quality result.
func ParseReviewResult(raw string) (ReviewResult, error) {
	var r ReviewResult
	if err := parseInto(raw, reviewResultSchema, nil, &r); err != nil {
		return ReviewResult{}, err
	}
	return r, nil
}

// ParseCodeReviewResult extracts, validates and decodes a code-quality result.
func ParseCodeReviewResult(raw string) (CodeReviewResult, error) {
	var r CodeReviewResult
	if err := parseInto(raw, codeReviewResultSchema, nil, &r); err != nil {
		return CodeReviewResult{}, err
	}
	return r, nil
}

// ParseDecision extracts, validates and decodes a reviewer decision. An
// upper-case "ISSUES" key is read as "issues", and a null or missing issue
// list is empty. CreateIssues is returned as the model stated it.
func ParseDecision(raw string) (Decision, error) {
	var d Decision
	if err := parseInto(raw, decisionSchema, normalizeDecision, &d); err != nil {
		return Decision{}, err
	}
	if d.Issues == nil {
		d.Issues = []Issue{}
	}
	return d, nil
}

func normalizeDecision(obj map[string]any) {
	if v, ok := obj["ISSUES"]; ok {
		if _, has := obj["issues"]; !has {
			obj["issues"] = v
		}
		delete(obj, "ISSUES")
	}
	if v, ok := obj["issues"]; ok && v == nil {
		delete(obj, "issues")
	}
}

func parseInto(raw string, schema *jsonschema.Schema, prepare func(map[string]any), out any) error {
	obj, err := Extract(raw)
	if err != nil {
		return err
	}
	if prepare != nil {
		prepare(obj)
	}
	if err := validate(schema, obj); err != nil {
		return err
	}
	return decodeInto(obj, out)
}
