// Package review turns raw model text into validated review results and
// decisions.
//
// The pipeline is: build a prompt ([CommentReviewPrompt], [CodeReviewPrompt],
// [IssuePrompt]), call a provider, [Extract] the JSON object from whatever
// the model returned, validate it against the JSON Schema of the expected
// type, then decode. Extraction failures ([OutputExtractionError]) and schema
// failures ([SchemaValidationError]) are distinct errors.
//
// Single-provider runs end at [Gate]. The issue-filing run queries several
// providers in order and folds their decisions with [SelectDecision]: the
// strictly largest issue list wins and ties keep the first one seen.
package review
