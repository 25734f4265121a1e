package cmd

import (
	"context"
	"fmt"
	"net/http"

	"github.com/google/uuid"
	"github.com/schollz/progressbar/v3"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"github.com/tmc/langchaingo/llms"

	"autotranslate/src/document"
	"autotranslate/src/fsutil"
	"autotranslate/src/log"
	"autotranslate/src/minioctrl"
	"autotranslate/src/ollama"
	"autotranslate/src/openai"
	"autotranslate/src/prompt"
	"autotranslate/src/translationflow"
)

var translateCmd = &cobra.Command{
	Use:   "translate <file>",
	Short: "Translate a text or .docx file",
	Long: `Translate a plain-text or .docx file batch by batch.

Text files are sent line by line and every translated batch is appended to the output
file as soon as it arrives. A .docx file is sent as index-tagged runs, and the runs are
replaced in a copy of the document.`,
	Args: cobra.ExactArgs(1),
	RunE: runTranslate,
}

func init() {
	rootCmd.AddCommand(translateCmd)

	flags := translateCmd.Flags()
	flags.StringP("model", "m", openai.DefaultModel, "Model used for translation")
	flags.StringP("target-language", "l", "english", "Language to translate to")
	flags.String("provider", "openai", "Translation service: openai or ollama")
	flags.String("prompt", prompt.DefaultPath, "File holding the system instruction")
	flags.Int("max-tokens", 0, "Token budget per request (defaults to MAX_TOKENS_MODEL)")
	flags.Float32("temperature", openai.DefaultTemperature, "Sampling temperature")
	flags.Duration("timeout", 0, "Timeout of a single translation request (defaults to 5m)")
	flags.Bool("auto-correct", false, "Ask the model to fix mistakes in the source")
	flags.Bool("auto-improve", false, "Ask the model to improve the wording")
	flags.Bool("count-tokens", false, "Count source tokens with the model's tokenizer for the volume estimate")
	flags.Bool("upload", false, "Upload the translated file to MinIO")

	bindFlag("translate.model", flags.Lookup("model"))
	bindFlag("translate.language", flags.Lookup("target-language"))
	bindFlag("translate.provider", flags.Lookup("provider"))
	bindFlag("translate.prompt", flags.Lookup("prompt"))
	bindFlag("translate.max_tokens", flags.Lookup("max-tokens"))
	bindFlag("translate.temperature", flags.Lookup("temperature"))
	bindFlag("translate.timeout", flags.Lookup("timeout"))
	bindFlag("translate.auto_correct", flags.Lookup("auto-correct"))
	bindFlag("translate.auto_improve", flags.Lookup("auto-improve"))
	bindFlag("translate.count_tokens", flags.Lookup("count-tokens"))
	bindFlag("minio.upload", flags.Lookup("upload"))
}

func runTranslate(cmd *cobra.Command, args []string) error {
	path := args[0]
	runID := uuid.NewString()
	log.SetLogger(log.WithValues("run_id", runID))

	store := fsutil.NewLocalFileStore()
	language := viper.GetString("translate.language")
	model := viper.GetString("translate.model")

	systemPrompt, err := prompt.Load(store, viper.GetString("translate.prompt"))
	if err != nil {
		return err
	}

	outputPath := document.TranslatedPath(path, language)
	noteExistingOutput(store, path, outputPath)
	doc, err := document.Open(store, path, outputPath)
	if err != nil {
		return err
	}

	budget := viper.GetInt("translate.max_tokens")
	perBatch, err := translationflow.UnitsPerBatch(budget, doc.Variant())
	if err != nil {
		return err
	}

	translator, err := newTranslator(model)
	if err != nil {
		return &translationflow.ConfigurationError{Op: "translator", Err: err}
	}

	batches := translationflow.Plan(doc.Len(), perBatch, doc.Variant())
	bar := progressbar.NewOptions(len(batches),
		progressbar.OptionSetWriter(cmd.ErrOrStderr()),
		progressbar.OptionSetDescription("translating "+path),
		progressbar.OptionShowCount(),
	)

	opts := []translationflow.Option{
		translationflow.WithTokenBudget(budget),
		translationflow.WithBatchHook(func(translationflow.Batch) {
			_ = bar.Add(1)
		}),
	}
	if viper.GetBool("translate.count_tokens") {
		opts = append(opts, translationflow.WithTokenCounter(func(text string) int {
			return llms.CountTokens(model, text)
		}))
	}

	flow := translationflow.NewTranslationFlow(translator, systemPrompt, translationflow.Parameters{
		TargetLanguage: language,
		AutoCorrect:    viper.GetBool("translate.auto_correct"),
		AutoImprove:    viper.GetBool("translate.auto_improve"),
	}, opts...)

	log.Info("starting translation", "input", path, "output", outputPath, "model", model,
		"provider", viper.GetString("translate.provider"), "language", language)
	report, err := flow.Translate(cmd.Context(), doc)
	_ = bar.Finish()
	if err != nil {
		return err
	}

	fmt.Fprintf(cmd.OutOrStdout(), "translated %d units in %d batches into %s\n", report.TotalUnits, report.Batches, outputPath)
	if len(report.Skipped) > 0 {
		fmt.Fprintf(cmd.OutOrStdout(), "lines at batch boundaries not sent: %v\n", report.Skipped)
	}

	if viper.GetBool("minio.upload") {
		location, err := uploadArtifact(cmd.Context(), store, outputPath)
		if err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "uploaded to %s\n", location)
	}
	return nil
}

// noteExistingOutput logs when a text translation will be appended to an
// earlier output. A failed check is logged and the run continues; opening
// the output on the first merge reports real failures.
func noteExistingOutput(store fsutil.FileStore, path, outputPath string) {
	exists, err := store.Exists(outputPath)
	if err != nil {
		log.Error(err, "failed to check output file", "output", outputPath)
		return
	}
	if exists && !document.IsDocx(path) {
		log.Info("output file exists, translations will be appended", "output", outputPath)
	}
}

func newTranslator(model string) (translationflow.Translator, error) {
	httpClient := &http.Client{Timeout: viper.GetDuration("translate.timeout")}
	temperature := float32(viper.GetFloat64("translate.temperature"))

	switch provider := viper.GetString("translate.provider"); provider {
	case "openai":
		return openai.NewProvider(openai.Config{
			APIKey:      viper.GetString("openai.api_key"),
			BaseURL:     viper.GetString("openai.base_url"),
			Model:       model,
			Temperature: temperature,
			HTTPClient:  httpClient,
		})
	case "ollama":
		return ollama.NewOllamaProvider(viper.GetString("ollama.url"), model, httpClient, temperature)
	default:
		return nil, fmt.Errorf("unknown provider %q", provider)
	}
}

func uploadArtifact(ctx context.Context, store fsutil.FileStore, outputPath string) (string, error) {
	data, err := store.ReadFile(outputPath)
	if err != nil {
		return "", fmt.Errorf("failed to read %s for upload: %w", outputPath, err)
	}

	minioService, err := minioctrl.NewMinioService(minioctrl.Config{
		Endpoint:  viper.GetString("minio.endpoint"),
		AccessKey: viper.GetString("minio.access_key"),
		SecretKey: viper.GetString("minio.secret_key"),
		UseSSL:    viper.GetBool("minio.use_ssl"),
		Region:    viper.GetString("minio.region"),
	})
	if err != nil {
		return "", err
	}
	return minioService.UploadArtifact(ctx, viper.GetString("minio.bucket"), viper.GetString("minio.prefix"), outputPath, data)
}
