package review

import (
	"context"

	"github.com/Chitrak-Aseri/Agents/internal/providers"
)

// RunCommentReview sends the comment-quality prompt to p and parses the
// reply. Provider and parse errors are returned unchanged.
func RunCommentReview(ctx context.Context, p providers.Provider, structure, code string) (ReviewResult, error) {
	return run(ctx, p, CommentReviewPrompt(structure, code), ParseReviewResult)
}

// RunCodeReview sends the code-quality prompt to p and parses the reply.
func RunCodeReview(ctx context.Context, p providers.Provider, structure, code string) (CodeReviewResult, error) {
	return run(ctx, p, CodeReviewPrompt(structure, code), ParseCodeReviewResult)
}

func run[T any](ctx context.Context, p providers.Provider, prompt string, parse func(string) (T, error)) (T, error) {
	text, err := p.Generate(ctx, prompt)
	if err != nil {
		var zero T
		return zero, err
	}
	return parse(text)
}
