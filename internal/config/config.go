package config

import (
	"os"
	"strconv"
	"strings"
)

type Config struct {
	HTTPAddr string

	// DB
	Env    string // "dev" | "prod"
	DBPath string // e.g. "./data/presencia.db"

	// SigningSecret keys the per-event digest.  AdminSecret gates the
	// admin endpoints.  Both fall back to dev values only in dev.
	SigningSecret string
	AdminSecret   string

	// Timezone the ledger's date/time columns are local to.
	Timezone string

	// BaseURL is prepended to minted clock-in links (empty = no links).
	BaseURL string

	// Event-table read cache and retry.
	CacheTTLSeconds int // 0 disables the cache
	ReadRetries     int // extra attempts after a failed read
}

func FromEnv() Config {
	addr := getenvDefault("PRESENCIA_HTTP_ADDR", ":8080")

	env := strings.ToLower(getenvDefault("PRESENCIA_ENV", "dev"))
	if env != "dev" && env != "prod" {
		// fail-soft: treat unknown as dev
		env = "dev"
	}

	dbPath := getenvDefault("PRESENCIA_DB_PATH", "./data/presencia.db")

	signingSecret := os.Getenv("PRESENCIA_SIGNING_SECRET")
	adminSecret := os.Getenv("PRESENCIA_ADMIN_SECRET")
	if env == "dev" {
		if signingSecret == "" {
			signingSecret = "dev-signing-secret"
		}
		if adminSecret == "" {
			adminSecret = "dev-admin-secret"
		}
	}

	tz := getenvDefault("PRESENCIA_TIMEZONE", "Europe/Madrid")
	baseURL := strings.TrimRight(os.Getenv("PRESENCIA_BASE_URL"), "/")

	cacheTTL := getenvInt("PRESENCIA_CACHE_TTL_SECONDS", 30)
	retries := getenvInt("PRESENCIA_READ_RETRIES", 2)

	return Config{
		HTTPAddr: addr,
		Env:      env,
		DBPath:   dbPath,

		SigningSecret: signingSecret,
		AdminSecret:   adminSecret,

		Timezone: tz,
		BaseURL:  baseURL,

		CacheTTLSeconds: cacheTTL,
		ReadRetries:     retries,
	}
}

func getenvDefault(key, def string) string {
	v := os.Getenv(key)
	if strings.TrimSpace(v) == "" {
		return def
	}
	return v
}

func getenvInt(key string, def int) int {
	v := strings.TrimSpace(os.Getenv(key))
	if v == "" {
		return def
	}
	n, err := strconv.Atoi(v)
	if err != nil || n < 0 {
		return def
	}
	return n
}
