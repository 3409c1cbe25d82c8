package config

import (
	"fmt"
	"log"
	"os"
	"strings"
)

// ProviderCredential pairs a text-generation model identifier with the API key
// used to call it. Position in the slice is the failover order.
type ProviderCredential struct {
	Model  string
	APIKey string
}

// Config holds application configuration.
type Config struct {
	Port            string
	CORSAllowOrigin []string
	ObjectStoreType string
	LocalStoreDir   string
	AWSRegion       string
	S3Bucket        string
	S3Prefix        string
	SQSQueueURL     string
	DatabaseURL     string
	Env             string
	Providers       []ProviderCredential
}

// Load reads configuration from environment variables with sensible defaults.
func Load() Config {
	// Best-effort load of local env files for dev convenience.
	loadEnvFiles(".env", "cmd/.env")

	env := normalizeEnv(getEnv("ENV", "dev"))
	dbURL := os.Getenv("DATABASE_URL")

	if env == "production" && dbURL == "" {
		log.Printf("DATABASE_URL is required in production")
	}

	return Config{
		Port:            getEnv("PORT", "8080"),
		CORSAllowOrigin: splitAndTrim(getEnv("CORS_ALLOW_ORIGINS", "http://localhost:5173")),
		ObjectStoreType: normalizeStoreType(getEnv("OBJECT_STORE", "local")),
		LocalStoreDir:   getEnv("LOCAL_STORE_DIR", "./data"),
		AWSRegion:       getEnv("AWS_REGION", ""),
		S3Bucket:        getEnv("S3_BUCKET", ""),
		S3Prefix:        getEnv("S3_PREFIX", ""),
		SQSQueueURL:     getEnv("EA_SQS_QUEUE_URL", ""),
		DatabaseURL:     dbURL,
		Env:             env,
		Providers:       loadProviders(),
	}
}

// loadProviders reads the ordered failover list. EA_PROVIDER_MODELS is a
// comma-separated list of model identifiers; the key for the Nth model comes
// from EA_PROVIDER_KEY_<N> (1-based). A missing key is kept as an empty
// credential so the generation service can log the skip.
func loadProviders() []ProviderCredential {
	models := splitAndTrim(getEnv("EA_PROVIDER_MODELS", strings.Join(defaultProviderModels, ",")))
	out := make([]ProviderCredential, 0, len(models))
	for i, model := range models {
		key := os.Getenv(fmt.Sprintf("EA_PROVIDER_KEY_%d", i+1))
		out = append(out, ProviderCredential{Model: model, APIKey: strings.TrimSpace(key)})
	}
	return out
}

var defaultProviderModels = []string{
	"moonshotai/kimi-k2:free",
	"cognitivecomputations/dolphin-mistral-24b-venice-edition:free",
	"qwen/qwen3-235b-a22b:free",
}

func getEnv(key, def string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}
	return def
}

func splitAndTrim(raw string) []string {
	parts := strings.Split(raw, ",")
	var out []string
	for _, p := range parts {
		if trimmed := strings.TrimSpace(p); trimmed != "" {
			out = append(out, trimmed)
		}
	}
	return out
}

func normalizeEnv(raw string) string {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case "production", "prod":
		return "production"
	case "staging":
		return "staging"
	case "local":
		return "local"
	default:
		return "dev"
	}
}

func normalizeStoreType(raw string) string {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case "s3":
		return "s3"
	default:
		return "local"
	}
}
