package config

import (
	"os"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Config holds all application configuration.
type Config struct {
	Server     ServerConfig
	S3         S3Config
	Log        LogConfig
	CORS       CORSConfig
	Bedrock    BedrockConfig
	Textract   TextractConfig
	Transcribe TranscribeConfig
	Generation GenerationConfig
	Extract    ExtractConfig
}

// ServerConfig holds HTTP server settings.
type ServerConfig struct {
	Port         string        `mapstructure:"port"`
	ReadTimeout  time.Duration `mapstructure:"read_timeout"`
	WriteTimeout time.Duration `mapstructure:"write_timeout"`
	Environment  string        `mapstructure:"environment"`
}

// S3Config holds AWS S3 settings.
type S3Config struct {
	Region        string `mapstructure:"region"`
	Bucket        string `mapstructure:"bucket"`
	Endpoint      string `mapstructure:"endpoint"`
	AccessKey     string `mapstructure:"access_key"`
	SecretKey     string `mapstructure:"secret_key"`
	MaxFileSizeMB int64  `mapstructure:"max_file_size_mb"`
	PresignExpiry int64  `mapstructure:"presign_expiry"`
}

// LogConfig holds logging settings.
type LogConfig struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"`
}

// CORSConfig holds CORS settings.
type CORSConfig struct {
	AllowedOrigins []string `mapstructure:"allowed_origins"`
}

// BedrockConfig holds model invocation settings.
type BedrockConfig struct {
	Region          string `mapstructure:"region"`
	Endpoint        string `mapstructure:"endpoint"`
	AccessKey       string `mapstructure:"access_key"`
	SecretKey       string `mapstructure:"secret_key"`
	MaxRetries      int    `mapstructure:"max_retries"`
	ReadTimeoutSecs int    `mapstructure:"read_timeout_secs"`
}

// TextractConfig holds document analysis settings.
type TextractConfig struct {
	Region           string `mapstructure:"region"`
	Endpoint         string `mapstructure:"endpoint"`
	AccessKey        string `mapstructure:"access_key"`
	SecretKey        string `mapstructure:"secret_key"`
	PollIntervalSecs int    `mapstructure:"poll_interval_secs"`
	MaxWaitSecs      int    `mapstructure:"max_wait_secs"`
	UseTables        bool   `mapstructure:"use_tables"`
	HideHeaders      bool   `mapstructure:"hide_headers"`
	HideFooters      bool   `mapstructure:"hide_footers"`
	HidePageNumbers  bool   `mapstructure:"hide_page_numbers"`
}

// TranscribeConfig holds speech-to-text settings.
type TranscribeConfig struct {
	Region           string `mapstructure:"region"`
	Endpoint         string `mapstructure:"endpoint"`
	AccessKey        string `mapstructure:"access_key"`
	SecretKey        string `mapstructure:"secret_key"`
	OutputBucket     string `mapstructure:"output_bucket"`
	Language         string `mapstructure:"language"`
	PollIntervalSecs int    `mapstructure:"poll_interval_secs"`
	MaxWaitSecs      int    `mapstructure:"max_wait_secs"`
}

// GenerationConfig holds default sampling settings applied when a request
// leaves them unset.
type GenerationConfig struct {
	Temperature float64  `mapstructure:"temperature"`
	TopP        float64  `mapstructure:"top_p"`
	TopK        int      `mapstructure:"top_k"`
	MaxTokens   int      `mapstructure:"max_tokens"`
	StopWords   []string `mapstructure:"stop_words"`
}

// ExtractConfig holds extraction pipeline settings.
type ExtractConfig struct {
	DefaultModel string `mapstructure:"default_model"`
	MaxPages     int    `mapstructure:"max_pages"`
	AnswerLength int    `mapstructure:"answer_length"`
}

// Load reads configuration from environment variables with the DOCSIFT_ prefix.
func Load() (*Config, error) {
	v := viper.New()
	v.SetEnvPrefix("DOCSIFT")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	// Server defaults
	v.SetDefault("server.port", ":8080")
	v.SetDefault("server.read_timeout", "15s")
	v.SetDefault("server.write_timeout", "15s")
	v.SetDefault("server.environment", "development")

	// S3 defaults
	v.SetDefault("s3.region", "us-east-1")
	v.SetDefault("s3.bucket", "docsift-documents")
	v.SetDefault("s3.endpoint", "")
	v.SetDefault("s3.max_file_size_mb", 50)
	v.SetDefault("s3.presign_expiry", 3600)

	// Log defaults
	v.SetDefault("log.level", "debug")
	v.SetDefault("log.format", "console")

	// CORS defaults (localhost origins for development)
	v.SetDefault("cors.allowed_origins", "http://localhost:3000,http://127.0.0.1:3000")

	// Bedrock defaults
	v.SetDefault("bedrock.region", "us-east-1")
	v.SetDefault("bedrock.endpoint", "")
	v.SetDefault("bedrock.max_retries", 5)
	v.SetDefault("bedrock.read_timeout_secs", 120)

	// Textract defaults
	v.SetDefault("textract.region", "us-east-1")
	v.SetDefault("textract.endpoint", "")
	v.SetDefault("textract.poll_interval_secs", 5)
	v.SetDefault("textract.max_wait_secs", 600)
	v.SetDefault("textract.use_tables", true)
	v.SetDefault("textract.hide_headers", false)
	v.SetDefault("textract.hide_footers", true)
	v.SetDefault("textract.hide_page_numbers", true)

	// Transcribe defaults
	v.SetDefault("transcribe.region", "us-east-1")
	v.SetDefault("transcribe.endpoint", "")
	v.SetDefault("transcribe.output_bucket", "")
	v.SetDefault("transcribe.language", "en-US")
	v.SetDefault("transcribe.poll_interval_secs", 5)
	v.SetDefault("transcribe.max_wait_secs", 900)

	// Generation defaults
	v.SetDefault("generation.temperature", 0.0)
	v.SetDefault("generation.top_p", 1.0)
	v.SetDefault("generation.top_k", 50)
	v.SetDefault("generation.max_tokens", 4096)
	v.SetDefault("generation.stop_words", "")

	// Extract defaults
	v.SetDefault("extract.default_model", "anthropic.claude-3-sonnet-20240229-v1:0")
	v.SetDefault("extract.max_pages", 20)
	v.SetDefault("extract.answer_length", 1024)

	// Bind environment variables explicitly for nested keys
	envBindings := map[string]string{
		"server.port":                  "DOCSIFT_SERVER_PORT",
		"server.read_timeout":          "DOCSIFT_SERVER_READ_TIMEOUT",
		"server.write_timeout":         "DOCSIFT_SERVER_WRITE_TIMEOUT",
		"server.environment":           "DOCSIFT_SERVER_ENVIRONMENT",
		"s3.region":                    "DOCSIFT_S3_REGION",
		"s3.bucket":                    "DOCSIFT_S3_BUCKET",
		"s3.endpoint":                  "DOCSIFT_S3_ENDPOINT",
		"s3.access_key":                "DOCSIFT_S3_ACCESS_KEY",
		"s3.secret_key":                "DOCSIFT_S3_SECRET_KEY",
		"s3.max_file_size_mb":          "DOCSIFT_S3_MAX_FILE_SIZE_MB",
		"s3.presign_expiry":            "DOCSIFT_S3_PRESIGN_EXPIRY",
		"log.level":                    "DOCSIFT_LOG_LEVEL",
		"log.format":                   "DOCSIFT_LOG_FORMAT",
		"cors.allowed_origins":         "DOCSIFT_CORS_ALLOWED_ORIGINS",
		"bedrock.region":               "DOCSIFT_BEDROCK_REGION",
		"bedrock.endpoint":             "DOCSIFT_BEDROCK_ENDPOINT",
		"bedrock.access_key":           "DOCSIFT_BEDROCK_ACCESS_KEY",
		"bedrock.secret_key":           "DOCSIFT_BEDROCK_SECRET_KEY",
		"bedrock.max_retries":          "DOCSIFT_BEDROCK_MAX_RETRIES",
		"bedrock.read_timeout_secs":    "DOCSIFT_BEDROCK_READ_TIMEOUT_SECS",
		"textract.region":              "DOCSIFT_TEXTRACT_REGION",
		"textract.endpoint":            "DOCSIFT_TEXTRACT_ENDPOINT",
		"textract.access_key":          "DOCSIFT_TEXTRACT_ACCESS_KEY",
		"textract.secret_key":          "DOCSIFT_TEXTRACT_SECRET_KEY",
		"textract.poll_interval_secs":  "DOCSIFT_TEXTRACT_POLL_INTERVAL_SECS",
		"textract.max_wait_secs":       "DOCSIFT_TEXTRACT_MAX_WAIT_SECS",
		"textract.use_tables":          "DOCSIFT_TEXTRACT_USE_TABLES",
		"textract.hide_headers":        "DOCSIFT_TEXTRACT_HIDE_HEADERS",
		"textract.hide_footers":        "DOCSIFT_TEXTRACT_HIDE_FOOTERS",
		"textract.hide_page_numbers":   "DOCSIFT_TEXTRACT_HIDE_PAGE_NUMBERS",
		"transcribe.region":            "DOCSIFT_TRANSCRIBE_REGION",
		"transcribe.endpoint":          "DOCSIFT_TRANSCRIBE_ENDPOINT",
		"transcribe.access_key":        "DOCSIFT_TRANSCRIBE_ACCESS_KEY",
		"transcribe.secret_key":        "DOCSIFT_TRANSCRIBE_SECRET_KEY",
		"transcribe.output_bucket":     "DOCSIFT_TRANSCRIBE_OUTPUT_BUCKET",
		"transcribe.language":          "DOCSIFT_TRANSCRIBE_LANGUAGE",
		"transcribe.poll_interval_secs": "DOCSIFT_TRANSCRIBE_POLL_INTERVAL_SECS",
		"transcribe.max_wait_secs":      "DOCSIFT_TRANSCRIBE_MAX_WAIT_SECS",
		"generation.temperature":        "DOCSIFT_GENERATION_TEMPERATURE",
		"generation.top_p":              "DOCSIFT_GENERATION_TOP_P",
		"generation.top_k":              "DOCSIFT_GENERATION_TOP_K",
		"generation.max_tokens":         "DOCSIFT_GENERATION_MAX_TOKENS",
		"generation.stop_words":         "DOCSIFT_GENERATION_STOP_WORDS",
		"extract.default_model":         "DOCSIFT_EXTRACT_DEFAULT_MODEL",
		"extract.max_pages":             "DOCSIFT_EXTRACT_MAX_PAGES",
		"extract.answer_length":         "DOCSIFT_EXTRACT_ANSWER_LENGTH",
	}
	for key, env := range envBindings {
		_ = v.BindEnv(key, env)
	}

	cfg := &Config{}

	// Railway/Heroku/Render set a PORT env var. Use it if DOCSIFT_SERVER_PORT is not explicitly set.
	serverPort := v.GetString("server.port")
	if port := os.Getenv("PORT"); port != "" && os.Getenv("DOCSIFT_SERVER_PORT") == "" {
		serverPort = ":" + port
	}

	cfg.Server = ServerConfig{
		Port:         serverPort,
		ReadTimeout:  v.GetDuration("server.read_timeout"),
		WriteTimeout: v.GetDuration("server.write_timeout"),
		Environment:  v.GetString("server.environment"),
	}
	cfg.S3 = S3Config{
		Region:        v.GetString("s3.region"),
		Bucket:        v.GetString("s3.bucket"),
		Endpoint:      v.GetString("s3.endpoint"),
		AccessKey:     v.GetString("s3.access_key"),
		SecretKey:     v.GetString("s3.secret_key"),
		MaxFileSizeMB: v.GetInt64("s3.max_file_size_mb"),
		PresignExpiry: v.GetInt64("s3.presign_expiry"),
	}
	cfg.Log = LogConfig{
		Level:  v.GetString("log.level"),
		Format: v.GetString("log.format"),
	}
	cfg.CORS = CORSConfig{
		AllowedOrigins: splitCommaList(v.GetString("cors.allowed_origins")),
	}
	cfg.Bedrock = BedrockConfig{
		Region:          v.GetString("bedrock.region"),
		Endpoint:        v.GetString("bedrock.endpoint"),
		AccessKey:       v.GetString("bedrock.access_key"),
		SecretKey:       v.GetString("bedrock.secret_key"),
		MaxRetries:      v.GetInt("bedrock.max_retries"),
		ReadTimeoutSecs: v.GetInt("bedrock.read_timeout_secs"),
	}
	cfg.Textract = TextractConfig{
		Region:           v.GetString("textract.region"),
		Endpoint:         v.GetString("textract.endpoint"),
		AccessKey:        v.GetString("textract.access_key"),
		SecretKey:        v.GetString("textract.secret_key"),
		PollIntervalSecs: v.GetInt("textract.poll_interval_secs"),
		MaxWaitSecs:      v.GetInt("textract.max_wait_secs"),
		UseTables:        v.GetBool("textract.use_tables"),
		HideHeaders:      v.GetBool("textract.hide_headers"),
		HideFooters:      v.GetBool("textract.hide_footers"),
		HidePageNumbers:  v.GetBool("textract.hide_page_numbers"),
	}
	transcribeOutput := v.GetString("transcribe.output_bucket")
	if transcribeOutput == "" {
		transcribeOutput = cfg.S3.Bucket
	}
	cfg.Transcribe = TranscribeConfig{
		Region:           v.GetString("transcribe.region"),
		Endpoint:         v.GetString("transcribe.endpoint"),
		AccessKey:        v.GetString("transcribe.access_key"),
		SecretKey:        v.GetString("transcribe.secret_key"),
		OutputBucket:     transcribeOutput,
		Language:         v.GetString("transcribe.language"),
		PollIntervalSecs: v.GetInt("transcribe.poll_interval_secs"),
		MaxWaitSecs:      v.GetInt("transcribe.max_wait_secs"),
	}
	cfg.Generation = GenerationConfig{
		Temperature: v.GetFloat64("generation.temperature"),
		TopP:        v.GetFloat64("generation.top_p"),
		TopK:        v.GetInt("generation.top_k"),
		MaxTokens:   v.GetInt("generation.max_tokens"),
		StopWords:   splitCommaList(v.GetString("generation.stop_words")),
	}
	cfg.Extract = ExtractConfig{
		DefaultModel: v.GetString("extract.default_model"),
		MaxPages:     v.GetInt("extract.max_pages"),
		AnswerLength: v.GetInt("extract.answer_length"),
	}

	return cfg, nil
}

// splitCommaList parses a comma-separated string, dropping empty entries.
func splitCommaList(s string) []string {
	var out []string
	for _, item := range strings.Split(s, ",") {
		if item = strings.TrimSpace(item); item != "" {
			out = append(out, item)
		}
	}
	return out
}
