package config

import (
	"crypto/rand"
	"encoding/base64"
	"log/slog"
	"os"
	"strconv"
	"time"
)

type Config struct {
	Port          string
	DBPath        string
	UploadDir     string
	UploadBaseURL string
	UploadTimeout time.Duration
	CatalogPath   string
	OpenAIKey     string
	OpenAIModel   string
	CSRFKey       []byte
	SessionKey    []byte
	CookieDomain  string
	CookieSecure  bool
}

func LoadConfig() (*Config, error) {
	cfg := &Config{
		Port:          getEnv("PORT", "8585"),
		DBPath:        getEnv("DB_PATH", "./xianluo.db"),
		UploadDir:     getEnv("UPLOAD_DIR", "./static/uploads"),
		UploadBaseURL: getEnv("UPLOAD_BASE_URL", "/static/uploads"),
		CatalogPath:   getEnv("CATALOG_PATH", "./catalog.yaml"),
		OpenAIKey:     os.Getenv("OPENAI_API_KEY"),
		OpenAIModel:   getEnv("OPENAI_MODEL", ""),
		CookieDomain:  getEnv("COOKIE_DOMAIN", ""),
		CookieSecure:  getEnv("COOKIE_SECURE", "false") == "true",
	}

	// Upload batches fail rather than hang past this bound.
	timeoutSec, err := strconv.Atoi(getEnv("UPLOAD_TIMEOUT_SECONDS", "30"))
	if err != nil || timeoutSec <= 0 {
		slog.Warn("Invalid UPLOAD_TIMEOUT_SECONDS, using 30", "value", os.Getenv("UPLOAD_TIMEOUT_SECONDS"))
		timeoutSec = 30
	}
	cfg.UploadTimeout = time.Duration(timeoutSec) * time.Second

	cfg.CSRFKey = loadKey("CSRF_KEY")
	cfg.SessionKey = loadKey("SESSION_KEY")

	if _, err := strconv.Atoi(cfg.Port); err != nil {
		slog.Error("Invalid PORT environment variable. Falling back to default.", "PORT", os.Getenv("PORT"))
		cfg.Port = "8585"
	}

	return cfg, nil
}

func getEnv(key, defaultValue string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return defaultValue
}

// loadKey decodes a base64 key from the environment, or generates a
// throwaway development key when unset or invalid. Sessions and CSRF tokens
// signed with a generated key do not survive a restart.
func loadKey(envVar string) []byte {
	raw := os.Getenv(envVar)
	if raw == "" {
		slog.Warn("Key not set, generating a random development key. PLEASE SET IT IN PRODUCTION!", "var", envVar)
		return generateRandomBytes(32)
	}
	decoded, err := base64.StdEncoding.DecodeString(raw)
	if err != nil || len(decoded) < 32 {
		slog.Warn("Key invalid or shorter than 32 bytes, generating a random development key.", "var", envVar)
		return generateRandomBytes(32)
	}
	return decoded
}

func generateRandomBytes(n int) []byte {
	b := make([]byte, n)
	if _, err := rand.Read(b); err != nil {
		slog.Error("Failed to read random bytes", "error", err)
		fallbackKey := "fallback-insecure-key-" + strconv.FormatInt(time.Now().UnixNano(), 10)
		if len(fallbackKey) < n {
			paddedKey := make([]byte, n)
			copy(paddedKey, fallbackKey)
			return paddedKey
		}
		return []byte(fallbackKey)[:n]
	}
	return b
}
