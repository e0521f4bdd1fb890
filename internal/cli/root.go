package cli

import (
	"fmt"
	"os"
	"strings"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"github.com/mgpai22/teaser/internal/logging"
)

var (
	verbose bool
	logger  *logging.Logger
)

var rootCmd = &cobra.Command{
	Use:   "teaser",
	Short: "Assemble teaser timelines from transcripts",
	Long: `Teaser turns a long recording into a short teaser.

It fetches or generates a transcript, suggests standout moments, and
assembles the chosen ranges into an editor timeline (FCPXML for DaVinci
Resolve or Final Cut Pro) or a quick ffmpeg preview.

API keys are read from flags, the environment, or a .env file.`,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		_ = godotenv.Load()
		logger = logging.NewLogger(verbose)
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		logger.Sync()
	},
}

func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().
		BoolVarP(&verbose, "verbose", "v", false, "Enable verbose output")
	rootCmd.PersistentFlags().StringP("output", "o", "", "Output file path")
	rootCmd.PersistentFlags().
		StringP("language", "l", "", "Language code (e.g., en, es, fr)")
}

// resolves an API key from the --api-key flag, then envVar
func apiKeyFrom(cmd *cobra.Command, envVar, name string) (string, error) {
	apiKey, _ := cmd.Flags().GetString("api-key")
	if apiKey == "" {
		apiKey = os.Getenv(envVar)
	}
	if apiKey == "" {
		return "", fmt.Errorf("%s API key is required: use --api-key flag or set %s environment variable", name, envVar)
	}
	return apiKey, nil
}

// splits a comma separated flag value, dropping blanks
func splitList(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}
