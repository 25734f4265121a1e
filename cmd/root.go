package cmd

import (
	"context"
	"errors"
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"autotranslate/src/log"
)

var (
	envFile string
	verbose bool
)

var rootCmd = &cobra.Command{
	Use:   "autotranslate",
	Short: "Translate text and .docx files with a language model, batch by batch",
	Long: `autotranslate splits a plain-text or .docx file into batches that fit the model's
token budget (MAX_TOKENS_MODEL), sends each batch to the translation service and writes
the result next to the input as <name>-translated-to-<language>.<ext>.`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		if err := godotenv.Load(envFile); err != nil && !errors.Is(err, os.ErrNotExist) {
			return err
		}
		return log.Configure(verbose)
	},
}

func init() {
	settingDefaultConfig()

	rootCmd.PersistentFlags().StringVar(&envFile, "env-file", ".env", "Environment file to load before reading configuration")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Log batch payloads and results")
}

// Execute runs the root command.
func Execute(ctx context.Context) error {
	return rootCmd.ExecuteContext(ctx)
}
