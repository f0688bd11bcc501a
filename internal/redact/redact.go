package redact

import (
	"regexp"

	"github.com/Chitrak-Aseri/Agents/internal/workspace"
)

const placeholder = "[REDACTED]"

// secretPatterns are regex heuristics for common secret types.
var secretPatterns = []*regexp.Regexp{
	// Generic API keys (long hex/base64 strings after common key patterns)
	regexp.MustCompile(`(?i)(api[_-]?key|apikey|api[_-]?secret)\s*[:=]\s*["']?([A-Za-z0-9/+=_-]{20,})["']?`),
	// AWS access key IDs
	regexp.MustCompile(`AKIA[0-9A-Z]{16}`),
	// AWS secret access keys
	regexp.MustCompile(`(?i)(aws[_-]?secret[_-]?access[_-]?key)\s*[:=]\s*["']?([A-Za-z0-9/+=]{40})["']?`),
	// Generic secrets/tokens/passwords in assignments
	regexp.MustCompile(`(?i)(secret|token|password|passwd|credential)\s*[:=]\s*["']([^"']{8,})["']`),
	regexp.MustCompile(`(?i)Bearer\s+[A-Za-z0-9._-]{20,}`),
	// JWTs
	regexp.MustCompile(`eyJ[A-Za-z0-9_-]{10,}\.eyJ[A-Za-z0-9_-]{10,}\.[A-Za-z0-9_-]{10,}`),
	regexp.MustCompile(`-----BEGIN\s+(RSA\s+)?PRIVATE KEY-----`),
	// GitHub tokens
	regexp.MustCompile(`gh[pousr]_[A-Za-z0-9_]{36,}`),
	// Hugging Face tokens
	regexp.MustCompile(`hf_[A-Za-z0-9]{30,}`),
	// OpenAI and DeepSeek keys
	regexp.MustCompile(`sk-[A-Za-z0-9_-]{20,}`),
	// Generic long hex strings that look like secrets (32+ chars in an assignment)
	regexp.MustCompile(`(?i)(key|secret|token)\s*[:=]\s*["']?[0-9a-f]{32,}["']?`),
}

// Secrets replaces detected secrets in text with [REDACTED] and reports how
// many were replaced.
func Secrets(text string) (string, int) {
	n := 0
	for _, pat := range secretPatterns {
		text = pat.ReplaceAllStringFunc(text, func(string) string {
			n++
			return placeholder
		})
	}
	return text, n
}

// Files returns a copy of files with secrets removed. Files whose path
// matches one of paths have their whole content replaced. The second result
// counts replacements, one per file blanked by path.
func Files(files []workspace.File, paths []string) ([]workspace.File, int) {
	out := make([]workspace.File, len(files))
	total := 0
	for i, f := range files {
		if workspace.MatchesAny(f.Path, paths) {
			out[i] = workspace.File{Path: f.Path, Content: placeholder + " (file content redacted by path policy)\n"}
			total++
			continue
		}
		content, n := Secrets(f.Content)
		out[i] = workspace.File{Path: f.Path, Content: content}
		total += n
	}
	return out, total
}
