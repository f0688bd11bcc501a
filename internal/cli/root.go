package cli

import (
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"github.com/Chitrak-Aseri/Agents/internal/config"
	"github.com/Chitrak-Aseri/Agents/internal/logging"
	"github.com/Chitrak-Aseri/Agents/internal/providers"
)

const version = "0.1.0"

// Exit codes
const (
	ExitSuccess    = 0
	ExitFail       = 1
	ExitUsageError = 2
	ExitAuthError  = 3
)

// Persistent flags
var (
	flagConfig   string
	flagLogLevel string
	flagFormat   string
)

// exitCode is set by command handlers to control the process exit code.
var exitCode = ExitSuccess

// newProvider builds a provider from its resolved configuration.
var newProvider = providers.New

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:   "agents",
		Short: "LLM code review for CI",
		Long: "Agents scores comment and code quality with an LLM, gates CI on the score, " +
			"and files new GitHub issues from report folders.",
		SilenceUsage: true,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			logging.Setup(cmd.ErrOrStderr(), flagLogLevel)
		},
	}
	root.PersistentFlags().StringVar(&flagConfig, "config", "", "Config file path (default depends on the command)")
	root.PersistentFlags().StringVar(&flagLogLevel, "log-level", "", "Log level (debug, info, warn, error)")
	root.PersistentFlags().StringVar(&flagFormat, "format", "text", "Console output format (text, json)")

	root.AddCommand(newCommentReviewCmd())
	root.AddCommand(newCodeReviewCmd())
	root.AddCommand(newIssuesCmd())
	root.AddCommand(newServeCmd())
	root.AddCommand(newConfigCmd())
	root.AddCommand(newProvidersCmd())
	root.AddCommand(&cobra.Command{
		Use:   "version",
		Short: "Print agents version",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Fprintf(cmd.OutOrStdout(), "agents version %s\n", version)
		},
	})
	return root
}

// Run executes the root command and returns an exit code.
func Run() int {
	return run(os.Args[1:], os.Stdout, os.Stderr)
}

func run(args []string, stdout, stderr io.Writer) int {
	exitCode = ExitSuccess
	root := newRootCmd()
	root.SetArgs(args)
	root.SetOut(stdout)
	root.SetErr(stderr)

	if err := root.Execute(); err != nil {
		// Cobra already prints the error
		return ExitUsageError
	}
	return exitCode
}

// loadConfig reads the file named by --config, or the command's default
// file from the working directory or user config directory.
func loadConfig(defaultName string, overrides map[string]any) (config.Config, providers.Env, error) {
	env := providers.EnvFromOS()
	src := config.Source{Path: flagConfig, Required: true, Env: env, Overrides: overrides}
	if src.Path == "" {
		src.Path = config.Locate(".", defaultName)
		src.Required = false
	}
	cfg, err := config.Load(src)
	if err != nil {
		return config.Config{}, nil, err
	}
	if flagLogLevel == "" && cfg.LogLevel != "" {
		logging.SetLevel(cfg.LogLevel)
	}
	log.Debug().Str("config", src.Path).Msg("configuration loaded")
	return cfg, env, nil
}

// fail prints err and records the exit code it maps to.
func fail(w io.Writer, err error) {
	fmt.Fprintf(w, "Error: %v\n", err)
	exitCode = exitFor(err)
}

func exitFor(err error) int {
	var (
		unsupported *providers.UnsupportedProviderError
		stubbed     *providers.NotImplementedProviderError
	)
	switch {
	case providers.IsCredentialError(err):
		return ExitAuthError
	case errors.As(err, &unsupported), errors.As(err, &stubbed), errors.Is(err, config.ErrNoModel):
		return ExitUsageError
	}
	return ExitFail
}
