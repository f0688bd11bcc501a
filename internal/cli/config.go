package cli

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/Chitrak-Aseri/Agents/internal/config"
	"github.com/Chitrak-Aseri/Agents/internal/review"
)

var flagConfigRun string

func newConfigCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "config",
		Short: "Inspect agents configuration",
	}
	show := &cobra.Command{
		Use:   "show",
		Short: "Show effective configuration with credentials masked",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			name, ok := configFiles[flagConfigRun]
			if !ok {
				return fmt.Errorf("unknown run %q (want comment, code or issues)", flagConfigRun)
			}
			cfg, _, err := loadConfig(name, nil)
			if err != nil {
				fmt.Fprintf(cmd.ErrOrStderr(), "Error: %v\n", err)
				exitCode = ExitUsageError
				return nil
			}

			view := struct {
				config.Config
				EffectiveThreshold int `json:"effective_score_threshold"`
			}{cfg.Masked(), review.EffectiveThreshold(cfg.ScoreThreshold)}

			data, err := json.MarshalIndent(view, "", "  ")
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), string(data))
			return nil
		},
	}
	show.Flags().StringVar(&flagConfigRun, "run", "code", "Run whose default config file to read (comment, code, issues)")
	cmd.AddCommand(show)
	return cmd
}

var configFiles = map[string]string{
	"comment": config.CommentReviewFile,
	"code":    config.CodeReviewFile,
	"issues":  config.IssuesFile,
}
