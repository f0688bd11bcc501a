package cli

import (
	"fmt"

	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"github.com/Chitrak-Aseri/Agents/internal/config"
	"github.com/Chitrak-Aseri/Agents/internal/documents"
	"github.com/Chitrak-Aseri/Agents/internal/github"
	"github.com/Chitrak-Aseri/Agents/internal/logging"
	"github.com/Chitrak-Aseri/Agents/internal/output"
	"github.com/Chitrak-Aseri/Agents/internal/providers"
	"github.com/Chitrak-Aseri/Agents/internal/review"
)

// Issue run flags
var (
	flagDocsDir string
	flagDryRun  bool
)

// newTracker opens the issue tracker for the configured repository.
var newTracker = func(cfg config.Config, env providers.Env) (github.Tracker, error) {
	owner, repo, err := github.ResolveRepository(cfg.GitHub.Repository, env)
	if err != nil {
		return nil, err
	}
	return github.NewClient(github.Options{
		Token:  env["GITHUB_TOKEN"],
		Owner:  owner,
		Repo:   repo,
		Labels: cfg.GitHub.Labels,
		APIURL: env["GITHUB_API_URL"],
	})
}

func newIssuesCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "issues",
		Short: "File new GitHub issues from a folder of reports",
		Long: "Read the reports in the documents folder, ask every configured model which " +
			"untracked issues should be filed, and create the issues proposed by the model " +
			"that found the most.",
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			runIssues(cmd)
			return nil
		},
	}
	cmd.Flags().StringVar(&flagDocsDir, "docs-dir", "", "Folder of reports to analyze (default: data)")
	cmd.Flags().BoolVar(&flagDryRun, "dry-run", false, "Print the selected issues without creating them")
	return cmd
}

func runIssues(cmd *cobra.Command) {
	ctx := cmd.Context()
	stdout, stderr := cmd.OutOrStdout(), cmd.ErrOrStderr()

	writer, err := output.GetWriter(flagFormat)
	if err != nil {
		fmt.Fprintf(stderr, "Error: %v\n", err)
		exitCode = ExitUsageError
		return
	}

	cfg, env, err := loadConfig(config.IssuesFile, buildOverrides(cmd))
	if err != nil {
		fmt.Fprintf(stderr, "Error: %v\n", err)
		exitCode = ExitUsageError
		return
	}

	models := cfg.ModelList()
	if len(models) == 0 {
		fail(stderr, config.ErrNoModel)
		return
	}

	bundle, err := documents.ParseFolder(cfg.DocsDir)
	if err != nil {
		fail(stderr, err)
		return
	}
	log.Info().Strs("files", bundle.Files).Str("dir", cfg.DocsDir).Msg("documents loaded")

	tracker, err := newTracker(cfg, env)
	if err != nil {
		fail(stderr, err)
		return
	}
	if flagDryRun {
		tracker = github.DryRun{Tracker: tracker}
	}

	existing, err := tracker.OpenIssues(ctx)
	if err != nil {
		fail(stderr, err)
		return
	}
	log.Info().Int("open_issues", len(existing)).Msg("fetched existing issues")

	// A provider that cannot be built abstains like one whose call fails.
	obs := logging.NewZerolog(log.Logger)
	var ps []providers.Provider
	for _, m := range models {
		p, err := buildProvider(m, env)
		if err != nil {
			obs.ProviderSkipped(modelLabel(m), err)
			continue
		}
		ps = append(ps, p)
	}
	if len(ps) == 0 {
		fmt.Fprintln(stderr, "Error: no configured model could be built")
		exitCode = ExitUsageError
		return
	}

	res := review.RunEnsemble(ctx, ps, review.IssuePrompt(bundle.Content(), existing), obs)

	var created []string
	if res.Decision.CreateIssues {
		created, err = github.FileIssues(ctx, tracker, res.Decision.Issues)
		if err != nil {
			fail(stderr, err)
		}
	}

	if werr := writer.WriteIssues(stdout, output.NewIssueReport(res, created, flagDryRun)); werr != nil && err == nil {
		fail(stderr, werr)
	}
}

// modelLabel names a configured model the way providers name themselves.
func modelLabel(m config.ModelConfig) string {
	kind := string(m.ProviderConfig().Kind)
	if m.ModelName == "" {
		return kind
	}
	return kind + "/" + m.ModelName
}
