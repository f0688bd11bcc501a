package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/Chitrak-Aseri/Agents/internal/providers"
)

type kindInfo struct {
	Kind        providers.Kind
	Credentials string
	Default     string
}

var knownKinds = []kindInfo{
	{providers.KindOpenAI, "api_key | OPENAI_API_KEY", "gpt-4o-mini"},
	{providers.KindDeepSeek, "api_key | DEEPSEEK_API_KEY", "deepseek-chat"},
	{providers.KindBedrock, "aws keys, profile_name or the AWS default chain", "meta.llama3-70b-instruct-v1:0"},
	{providers.KindHuggingFace, "HF_TOKEN, api_base | HF_API_BASE_URL", "google/gemma-3-27b-it-fast"},
}

func newProvidersCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "providers",
		Short: "Provider information",
	}
	cmd.AddCommand(&cobra.Command{
		Use:   "list",
		Short: "List supported provider kinds",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, args []string) {
			w := cmd.OutOrStdout()
			for _, k := range knownKinds {
				fmt.Fprintf(w, "%s:\n", k.Kind)
				fmt.Fprintf(w, "  default model: %s\n", k.Default)
				fmt.Fprintf(w, "  credentials:   %s\n\n", k.Credentials)
			}
			fmt.Fprintln(w, "Not implemented yet:")
			for _, k := range providers.Stubbed {
				fmt.Fprintf(w, "  - %s\n", k)
			}
		},
	})
	return cmd
}
