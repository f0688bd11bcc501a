package review

import (
	"context"
	"errors"

	"github.com/Chitrak-Aseri/Agents/internal/logging"
	"github.com/Chitrak-Aseri/Agents/internal/providers"
)

// Candidate is one provider's outcome in an ensemble run. Err is set when the
// provider abstained because its call or its output failed.
type Candidate struct {
	Provider string
	Decision Decision
	Err      error
}

// EnsembleResult is the selected decision plus every candidate in call order.
type EnsembleResult struct {
	Decision   Decision
	Winner     string
	Candidates []Candidate
}

// RunEnsemble asks each provider in order and selects a decision. Failures
// are reported to obs and count as abstentions; the run never aborts.
func RunEnsemble(ctx context.Context, ps []providers.Provider, prompt string, obs logging.Observer) EnsembleResult {
	if obs == nil {
		obs = logging.Nop{}
	}
	cands := make([]Candidate, 0, len(ps))
	for _, p := range ps {
		c := Candidate{Provider: p.Name()}
		text, err := p.Generate(ctx, prompt)
		if err == nil {
			c.Decision, err = ParseDecision(text)
		}
		if err != nil {
			c.Err = err
			skipped(obs, c.Provider, err)
		}
		cands = append(cands, c)
	}

	best := SelectDecision(cands)
	return EnsembleResult{Decision: best.Decision, Winner: best.Provider, Candidates: cands}
}

func skipped(obs logging.Observer, name string, err error) {
	defer func() { _ = recover() }()
	obs.ProviderSkipped(name, err)
}

// SelectDecision folds the candidates left to right, starting from the
// neutral decision with zero issues. A candidate replaces the current best
// only when it has strictly more issues, so ties keep the first seen.
// Abstaining candidates never win. The result satisfies
// CreateIssues == (len(Issues) > 0).
func SelectDecision(cands []Candidate) Candidate {
	best := fold(cands, Candidate{Decision: Neutral()}, func(best, c Candidate) Candidate {
		if moreIssues(c, best) {
			return c
		}
		return best
	})
	best.Decision = best.Decision.normalized()
	return best
}

// moreIssues is the ensemble comparator.
func moreIssues(c, best Candidate) bool {
	return c.Err == nil && len(c.Decision.Issues) > len(best.Decision.Issues)
}

func fold[T, A any](xs []T, acc A, f func(A, T) A) A {
	for _, x := range xs {
		acc = f(acc, x)
	}
	return acc
}

// Abstained counts candidates that failed.
func (r EnsembleResult) Abstained() int {
	n := 0
	for _, c := range r.Candidates {
		if c.Err != nil {
			n++
		}
	}
	return n
}

// IsParseFailure reports whether err came from extracting or validating model
// output rather than from the provider call.
func IsParseFailure(err error) bool {
	var ex *OutputExtractionError
	var sv *SchemaValidationError
	return errors.As(err, &ex) || errors.As(err, &sv)
}
