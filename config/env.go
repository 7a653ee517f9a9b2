package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"

	"img2pdf/contracts"
	"img2pdf/converter"
)

// LoggingConfig holds logging-related configuration.
type LoggingConfig struct {
	Level      string
	Pretty     bool
	File       string
	MaxSizeMB  int
	MaxBackups int
	MaxAgeDays int
	Compress   bool
}

// ConversionDefaults seed the CLI flags.
type ConversionDefaults struct {
	PageSize string
	Compress bool
	Quality  float64
	Writer   string
	Verify   bool
	Output   string
}

// S3Config is used when the output target is an s3:// URL.
type S3Config struct {
	Region          string
	Endpoint        string
	AccessKeyID     string
	SecretAccessKey string
}

type Config struct {
	Logging    LoggingConfig
	Conversion ConversionDefaults
	S3         S3Config
}

// Load reads .env files when present, then the environment.
func Load(envFiles ...string) Config {
	if len(envFiles) == 0 {
		_ = godotenv.Load()
	} else {
		_ = godotenv.Load(envFiles...)
	}
	return FromEnv()
}

// FromEnv loads configuration from environment with defaults.
func FromEnv() Config {
	cfg := Config{}

	cfg.Logging = LoggingConfig{
		Level:      getEnv("LOG_LEVEL", "info"),
		Pretty:     parseBool(getEnv("LOG_PRETTY", "true")),
		File:       getEnv("LOG_FILE", ""),
		MaxSizeMB:  parseInt(getEnv("LOG_MAX_SIZE_MB", "10"), 10),
		MaxBackups: parseInt(getEnv("LOG_MAX_BACKUPS", "3"), 3),
		MaxAgeDays: parseInt(getEnv("LOG_MAX_AGE_DAYS", "30"), 30),
		Compress:   parseBool(getEnv("LOG_COMPRESS", "true")),
	}

	cfg.Conversion = ConversionDefaults{
		PageSize: getEnv("IMG2PDF_PAGE_SIZE", contracts.PageSizeA4),
		Compress: parseBool(getEnv("IMG2PDF_COMPRESS", "false")),
		Quality:  parseFloat(getEnv("IMG2PDF_QUALITY", "0.8"), 0.8),
		Writer:   getEnv("IMG2PDF_WRITER", converter.WriterGofpdf),
		Verify:   parseBool(getEnv("IMG2PDF_VERIFY", "false")),
		Output:   getEnv("IMG2PDF_OUTPUT", contracts.DefaultOutputName),
	}

	cfg.S3 = S3Config{
		Region:          getEnv("AWS_REGION", ""),
		Endpoint:        getEnv("S3_ENDPOINT", ""),
		AccessKeyID:     getEnv("S3_ACCESS_KEY_ID", ""),
		SecretAccessKey: getEnv("S3_SECRET_ACCESS_KEY", ""),
	}

	return cfg
}

// Settings validates CLI input and turns it into what the converter consumes.
func Settings(flags contracts.InputFlags) (contracts.ConversionSettings, error) {
	policy, err := contracts.PolicyForName(flags.PageSize)
	if err != nil {
		return contracts.ConversionSettings{}, err
	}
	if flags.Quality < 0 || flags.Quality > 1 {
		return contracts.ConversionSettings{}, fmt.Errorf("%w: quality %.2f outside 0..1", contracts.ErrInvalidSettings, flags.Quality)
	}
	writer := strings.ToLower(flags.Writer)
	switch writer {
	case "":
		writer = converter.WriterGofpdf
	case converter.WriterGofpdf, converter.WriterStream:
	default:
		return contracts.ConversionSettings{}, fmt.Errorf("%w: unknown writer %q", contracts.ErrInvalidSettings, flags.Writer)
	}
	return contracts.ConversionSettings{
		Policy: policy,
		Compression: contracts.CompressionSetting{
			Enabled: flags.Compress,
			Quality: flags.Quality,
		},
		Writer: writer,
		Verify: flags.Verify,
	}, nil
}

func getEnv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func parseInt(s string, def int) int {
	if s == "" {
		return def
	}
	if n, err := strconv.Atoi(s); err == nil {
		return n
	}
	return def
}

func parseFloat(s string, def float64) float64 {
	if s == "" {
		return def
	}
	if f, err := strconv.ParseFloat(s, 64); err == nil {
		return f
	}
	return def
}

func parseBool(s string) bool {
	v := strings.ToLower(strings.TrimSpace(s))
	return v == "1" || v == "true" || v == "yes" || v == "on"
}
