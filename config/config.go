package config

import (
	"fmt"
	"log"
	"net/url"
	"os"
	"strconv"
	"strings"
	"time"
)

const (
	DefaultPort        = "8080"
	DefaultPIILanguage = "en"
)

const (
	defaultMaxUploadBytes        = 32 << 20
	defaultThumbnailMaxSize      = 0
	defaultRequestTimeoutSeconds = 60
	defaultCORSOrigins           = "http://localhost:5173"
)

type Config struct {
	// http listener
	Port           string
	RequestTimeout time.Duration
	AllowedOrigins []string

	// language service credentials, injected at start-up
	LanguageKey      string
	LanguageEndpoint string
	PIILanguage      string

	// upload handling
	MaxUploadBytes int64

	// longest side of the inline preview image, 0 keeps original dimensions
	ThumbnailMaxSize int

	// optional YAML file overriding the department keyword list
	DepartmentsFile string
}

func getEnvOrDefault(key, defaultValue string) string {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	return value
}

func getEnvIntOrDefault(envVar string, defaultVal int) int {
	valStr := os.Getenv(envVar)
	if valStr == "" {
		return defaultVal
	}
	val, err := strconv.Atoi(valStr)
	if err != nil || val < 0 {
		log.Printf("Warning: Invalid %s '%s'. Using default %d. Error: %v", envVar, valStr, defaultVal, err)
		return defaultVal
	}
	return val
}

func splitList(raw string) []string {
	var out []string
	for _, part := range strings.Split(raw, ",") {
		part = strings.TrimSpace(part)
		if part != "" {
			out = append(out, part)
		}
	}
	return out
}

func LoadConfig() (Config, error) {
	key := strings.TrimSpace(os.Getenv("LANGUAGE_KEY"))
	if key == "" {
		return Config{}, fmt.Errorf("LANGUAGE_KEY is required")
	}

	endpoint := strings.TrimSpace(os.Getenv("LANGUAGE_ENDPOINT"))
	if endpoint == "" {
		return Config{}, fmt.Errorf("LANGUAGE_ENDPOINT is required")
	}
	u, err := url.Parse(endpoint)
	if err != nil || (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
		return Config{}, fmt.Errorf("LANGUAGE_ENDPOINT '%s' must be an absolute http(s) URL", endpoint)
	}

	maxUpload := getEnvIntOrDefault("MAX_UPLOAD_BYTES", defaultMaxUploadBytes)
	if maxUpload == 0 {
		maxUpload = defaultMaxUploadBytes
	}

	timeoutSecs := getEnvIntOrDefault("REQUEST_TIMEOUT_SECONDS", defaultRequestTimeoutSeconds)
	if timeoutSecs == 0 {
		timeoutSecs = defaultRequestTimeoutSeconds
	}

	cfg := Config{
		Port:             getEnvOrDefault("PORT", DefaultPort),
		RequestTimeout:   time.Duration(timeoutSecs) * time.Second,
		AllowedOrigins:   splitList(getEnvOrDefault("CORS_ALLOWED_ORIGINS", defaultCORSOrigins)),
		LanguageKey:      key,
		LanguageEndpoint: strings.TrimSuffix(endpoint, "/"),
		PIILanguage:      getEnvOrDefault("PII_LANGUAGE", DefaultPIILanguage),
		MaxUploadBytes:   int64(maxUpload),
		ThumbnailMaxSize: getEnvIntOrDefault("THUMBNAIL_MAX_SIZE", defaultThumbnailMaxSize),
		DepartmentsFile:  os.Getenv("DEPARTMENTS_FILE"),
	}

	return cfg, nil
}
