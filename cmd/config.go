package cmd

import (
	"github.com/spf13/pflag"
	"github.com/spf13/viper"

	"autotranslate/src/minioctrl"
	"autotranslate/src/ollama"
	"autotranslate/src/openai"
	"autotranslate/src/prompt"
)

func settingDefaultConfig() {
	// Enable automatic environment variable binding
	viper.AutomaticEnv()

	// Translation service credentials
	viper.BindEnv("openai.api_key", "OPENAI_API_KEY")
	viper.BindEnv("openai.base_url", "OPENAI_BASE_URL")
	viper.BindEnv("ollama.url", "OLLAMA_URL")
	viper.SetDefault("ollama.url", ollama.DefaultURL)

	// The token budget has no default: an unset budget is a configuration error
	viper.BindEnv("translate.max_tokens", "MAX_TOKENS_MODEL")
	viper.BindEnv("translate.prompt", "TRANSLATOR_PROMPT")
	viper.BindEnv("translate.temperature", "TRANSLATE_TEMPERATURE")
	viper.BindEnv("translate.timeout", "TRANSLATE_TIMEOUT")
	viper.SetDefault("translate.prompt", prompt.DefaultPath)
	viper.SetDefault("translate.provider", "openai")
	viper.SetDefault("translate.model", openai.DefaultModel)
	viper.SetDefault("translate.language", "english")
	viper.SetDefault("translate.temperature", openai.DefaultTemperature)
	viper.SetDefault("translate.timeout", "5m")

	// Optional upload of finished artifacts to MinIO
	viper.BindEnv("minio.endpoint", "MINIO_ENDPOINT")
	viper.BindEnv("minio.access_key", "MINIO_ACCESS_KEY")
	viper.BindEnv("minio.secret_key", "MINIO_SECRET_KEY")
	viper.BindEnv("minio.use_ssl", "MINIO_USE_SSL")
	viper.BindEnv("minio.region", "MINIO_REGION")
	viper.BindEnv("minio.bucket", "MINIO_TRANSLATED_BUCKET")
	viper.BindEnv("minio.prefix", "MINIO_PREFIX")
	viper.SetDefault("minio.endpoint", "localhost:9000")
	viper.SetDefault("minio.access_key", "minioadmin")
	viper.SetDefault("minio.secret_key", "minioadmin")
	viper.SetDefault("minio.bucket", minioctrl.TranslatedResourcesBucket)
}

func bindFlag(key string, flag *pflag.Flag) {
	if err := viper.BindPFlag(key, flag); err != nil {
		panic(err)
	}
}
