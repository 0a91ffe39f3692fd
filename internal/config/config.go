package config

import (
	"log"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// Config holds every setting the API reads at boot.
// Provider credentials may be empty; the operation that needs one fails at call time.
type Config struct {
	Port      string
	BaseURL   string
	UploadDir string

	// --- Databases ---
	DatabaseURL       string
	DBMaxOpenConns    int
	DBMaxIdleConns    int
	DBConnMaxLifetime time.Duration
	LegacyMySQLDSN    string

	// --- Auth ---
	JWTSecret string

	// --- Payment ---
	PaystackSecretKey string
	PaystackBaseURL   string

	// --- Notifications ---
	ResendAPIKey  string
	EmailFrom     string
	SalesEmail    string
	ContactEmail  string
	WinSMSAPIKey  string
	WinSMSBaseURL string

	// --- AI ---
	GeminiAPIKey string
	GeminiModel  string

	PinTTL time.Duration
}

// Load reads .env (if present) and then the process environment.
func Load() Config {
	if err := godotenv.Load(); err != nil {
		log.Println("WARNING: Could not find or load .env file. Relying on system environment variables.")
	}
	return FromEnv()
}

// FromEnv builds a Config from the current environment only.
func FromEnv() Config {
	return Config{
		Port:              env("PORT", "8080"),
		BaseURL:           env("BASE_URL", "http://localhost:8080"),
		UploadDir:         env("UPLOAD_DIR", "./uploads"),
		DatabaseURL:       env("DATABASE_URL", ""),
		DBMaxOpenConns:    intEnv("DB_MAX_OPEN_CONNS", 25),
		DBMaxIdleConns:    intEnv("DB_MAX_IDLE_CONNS", 25),
		DBConnMaxLifetime: durationEnv("DB_CONN_MAX_LIFETIME", 5*time.Minute),
		LegacyMySQLDSN:    env("LEGACY_MYSQL_DSN", ""),
		JWTSecret:         env("SUPABASE_JWT_SECRET", ""),
		PaystackSecretKey: env("PAYSTACK_SECRET_KEY", ""),
		PaystackBaseURL:   env("PAYSTACK_BASE_URL", "https://api.paystack.co"),
		ResendAPIKey:      env("RESEND_API_KEY", ""),
		EmailFrom:         env("EMAIL_FROM", "Bales Store <orders@balesstore.co.za>"),
		SalesEmail:        env("SALES_EMAIL", ""),
		ContactEmail:      env("CONTACT_EMAIL", ""),
		WinSMSAPIKey:      env("WINSMS_API_KEY", ""),
		WinSMSBaseURL:     env("WINSMS_BASE_URL", "https://api.winsms.co.za/api/rest/v1"),
		GeminiAPIKey:      env("GEMINI_API_KEY", ""),
		GeminiModel:       env("GEMINI_MODEL", "gemini-1.5-flash"),
		PinTTL:            durationEnv("PIN_TTL", 10*time.Minute),
	}
}

// InMemory reports whether no database is configured.
func (c Config) InMemory() bool { return c.DatabaseURL == "" }

func env(key, def string) string {
	if v := strings.TrimSpace(os.Getenv(key)); v != "" {
		return v
	}
	return def
}

func intEnv(key string, def int) int {
	v := strings.TrimSpace(os.Getenv(key))
	if v == "" {
		return def
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		log.Printf("WARNING: %s=%q is not an integer, using %d", key, v, def)
		return def
	}
	return n
}

func durationEnv(key string, def time.Duration) time.Duration {
	v := strings.TrimSpace(os.Getenv(key))
	if v == "" {
		return def
	}
	d, err := time.ParseDuration(v)
	if err != nil || d <= 0 {
		log.Printf("WARNING: %s=%q is not a positive duration, using %s", key, v, def)
		return def
	}
	return d
}
