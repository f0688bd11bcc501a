// Agents is a CI-oriented CLI that reviews a codebase with an LLM.
//
// It scores comment quality or overall code quality, persists the validated
// result as JSON, and exits non-zero when the score is below the threshold.
// It can also ask several models which GitHub issues to file from a folder
// of reports and create the ones proposed by the model that found the most.
//
// Usage:
//
//	agents comment-review --root .       # score comment quality
//	agents code-review --root .          # score overall code quality
//	agents issues --dry-run              # select new issues without filing them
//	agents serve --addr :8000            # HTTP generate endpoint
//	agents providers list                # supported provider kinds
package main
