// Package output persists review results and renders run summaries.
//
// [WriteResult] writes the validated result object to its well-known file
// ([CommentResultFile] or [CodeResultFile]) with four-space indentation.
// Console summaries come in two formats:
//   - text: human-readable terminal output (default)
//   - json: the summary as structured JSON
//
// Use [GetWriter] to obtain a [Writer] for a given format string.
package output
