package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"path/filepath"
	"strings"

	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"github.com/Chitrak-Aseri/Agents/internal/config"
	"github.com/Chitrak-Aseri/Agents/internal/logging"
	"github.com/Chitrak-Aseri/Agents/internal/output"
	"github.com/Chitrak-Aseri/Agents/internal/providers"
	"github.com/Chitrak-Aseri/Agents/internal/redact"
	"github.com/Chitrak-Aseri/Agents/internal/review"
	"github.com/Chitrak-Aseri/Agents/internal/workspace"
)

// Shared review flags
var (
	flagRoot           string
	flagScoreThreshold int
	flagOutput         string
	flagRedact         bool
	flagExtensions     string
)

func addReviewFlags(cmd *cobra.Command) {
	cmd.Flags().StringVar(&flagRoot, "root", ".", "Directory to review")
	cmd.Flags().IntVar(&flagScoreThreshold, "score-threshold", 0, "Override the score threshold from the config")
	cmd.Flags().StringVar(&flagOutput, "output", "", "Result file path (default: well-known name in the root)")
	cmd.Flags().BoolVar(&flagRedact, "redact", false, "Redact secrets from code before sending it to the model")
	cmd.Flags().StringVar(&flagExtensions, "extensions", "", "File extensions to load (comma-separated, e.g. .py,.pyi)")
}

// buildOverrides returns only the flags set on the command line, so an
// absent flag never clobbers the configured value.
func buildOverrides(cmd *cobra.Command) map[string]any {
	m := map[string]any{}
	flags := cmd.Flags()
	if flags.Changed("score-threshold") {
		m["score_threshold"] = flagScoreThreshold
	}
	if flags.Changed("output") {
		m["output"] = flagOutput
	}
	if flags.Changed("redact") {
		m["privacy.redact_secrets"] = flagRedact
	}
	if flags.Changed("extensions") {
		m["extensions"] = splitComma(flagExtensions)
	}
	if flags.Changed("docs-dir") {
		m["docs_dir"] = flagDocsDir
	}
	return m
}

func splitComma(s string) []string {
	parts := strings.Split(s, ",")
	var result []string
	for _, p := range parts {
		p = strings.TrimSpace(p)
		if p != "" {
			result = append(result, p)
		}
	}
	return result
}

func newCommentReviewCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "comment-review",
		Short: "Score the comment quality of a codebase",
		Long: "Send the file structure and code to the configured model, save the validated " +
			"result to " + output.CommentResultFile + " and fail when the score is below the threshold.",
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			runScoredReview(cmd, review.KindComment, config.CommentReviewFile)
			return nil
		},
	}
	addReviewFlags(cmd)
	return cmd
}

func newCodeReviewCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "code-review",
		Short: "Score the overall code quality of a codebase",
		Long: "Send the file structure and code to the configured model, save the validated " +
			"result to " + output.CodeResultFile + " and fail when the score is below the threshold.",
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			runScoredReview(cmd, review.KindCode, config.CodeReviewFile)
			return nil
		},
	}
	addReviewFlags(cmd)
	return cmd
}

// scored is the part of a review result the gate needs.
type scored struct {
	score   int
	result  any
	summary func(review.GateResult) *output.Summary
}

func runScoredReview(cmd *cobra.Command, kind review.Kind, defaultConfig string) {
	stdout, stderr := cmd.OutOrStdout(), cmd.ErrOrStderr()

	writer, err := output.GetWriter(flagFormat)
	if err != nil {
		fmt.Fprintf(stderr, "Error: %v\n", err)
		exitCode = ExitUsageError
		return
	}

	cfg, env, err := loadConfig(defaultConfig, buildOverrides(cmd))
	if err != nil {
		fmt.Fprintf(stderr, "Error: %v\n", err)
		exitCode = ExitUsageError
		return
	}

	root, err := filepath.Abs(flagRoot)
	if err != nil {
		fmt.Fprintf(stderr, "Error: %v\n", err)
		exitCode = ExitUsageError
		return
	}

	wc, err := workspace.Build(root, cfg.Include, cfg.Exclude, workspace.ExtensionFilter(cfg.Extensions...))
	if err != nil {
		fail(stderr, err)
		return
	}
	if wc.Empty() {
		printNoFiles(stderr, root, cfg)
		exitCode = ExitFail
		return
	}
	files := make([]string, len(wc.Files))
	for i, f := range wc.Files {
		files[i] = f.Path
		log.Info().Str("path", f.Path).Msg("loaded file")
	}

	if cfg.Privacy.RedactSecrets {
		var n int
		wc.Files, n = redact.Files(wc.Files, cfg.Privacy.RedactPaths)
		log.Info().Int("redactions", n).Msg("secrets redacted")
	}

	p, err := buildPrimary(cfg, env)
	if err != nil {
		fail(stderr, err)
		return
	}

	res, err := generate(cmd.Context(), kind, p, wc)
	if err != nil {
		reportGenerateError(stderr, err)
		return
	}

	path := cfg.Output
	if path == "" {
		path = output.ResultFile(kind)
	}
	if !filepath.IsAbs(path) {
		path = filepath.Join(root, path)
	}
	if err := output.WriteResult(path, res.result); err != nil {
		fail(stderr, err)
		return
	}

	gate := review.Gate(res.score, review.EffectiveThreshold(cfg.ScoreThreshold))
	s := res.summary(gate)
	s.Files = files
	s.ResultPath = path
	if err := writer.WriteReview(stdout, s); err != nil {
		fail(stderr, err)
		return
	}
	if !gate.Pass {
		exitCode = ExitFail
	}
}

func generate(ctx context.Context, kind review.Kind, p providers.Provider, wc workspace.Context) (scored, error) {
	if ctx == nil {
		ctx = context.Background()
	}
	structure, code := wc.StructureText(), wc.CodeText()
	if kind == review.KindComment {
		r, err := review.RunCommentReview(ctx, p, structure, code)
		if err != nil {
			return scored{}, err
		}
		return scored{score: r.Score, result: r, summary: func(g review.GateResult) *output.Summary {
			return output.CommentSummary(r, g, nil)
		}}, nil
	}
	r, err := review.RunCodeReview(ctx, p, structure, code)
	if err != nil {
		return scored{}, err
	}
	return scored{score: r.Score, result: r, summary: func(g review.GateResult) *output.Summary {
		return output.CodeSummary(r, g, nil)
	}}, nil
}

func buildPrimary(cfg config.Config, env providers.Env) (providers.Provider, error) {
	m, err := cfg.Primary()
	if err != nil {
		return nil, err
	}
	return buildProvider(m, env)
}

func buildProvider(m config.ModelConfig, env providers.Env) (providers.Provider, error) {
	p, err := newProvider(m.ProviderConfig(), env)
	if err != nil {
		return nil, err
	}
	return providers.Observe(p, logging.NewZerolog(log.Logger)), nil
}

// reportGenerateError prints what the model returned, or which fields were
// wrong, so that a failed run can be diagnosed from the console alone.
func reportGenerateError(w io.Writer, err error) {
	var (
		ex *review.OutputExtractionError
		sv *review.SchemaValidationError
	)
	switch {
	case errors.As(err, &ex):
		fmt.Fprintf(w, "Error parsing response: %v\n", err)
		fmt.Fprintf(w, "Raw model output:\n%s\n", ex.Raw)
	case errors.As(err, &sv):
		fmt.Fprintf(w, "Error parsing response: %v\n", err)
		for _, f := range sv.Fields {
			fmt.Fprintf(w, "  invalid field: %s\n", f)
		}
	default:
		fail(w, err)
		return
	}
	exitCode = ExitFail
}

func printNoFiles(w io.Writer, root string, cfg config.Config) {
	fmt.Fprintf(w, "Error: no files found for review\n")
	fmt.Fprintf(w, "  root:       %s\n", root)
	fmt.Fprintf(w, "  includes:   %q\n", cfg.Include)
	fmt.Fprintf(w, "  excludes:   %q\n", cfg.Exclude)
	fmt.Fprintf(w, "  extensions: %q\n", cfg.Extensions)
	fmt.Fprintln(w, "Check the include/exclude paths in the config.")
}
