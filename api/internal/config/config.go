package config

import (
	"log"
	"net"
	"net/url"
	"os"
	"strconv"
	"strings"
	"time"
)

type Config struct {
	Port string

	// Store: postgres | memory
	Store       string
	DatabaseURL string

	// Detector: http | gemini | ws | demo
	Detector       string
	DetectorURL    string
	DetectorWSHost string
	DetectTimeout  time.Duration
	MinConfidence  float64

	GeminiAPIKey string
	GeminiModel  string

	Locale        string
	UploadsDir    string
	DefaultUserID int64
	CORSOrigins   []string

	TelegramBotToken string
	WebhookURL       string
}

func mustEnv(k string) string {
	v := os.Getenv(k)
	if v == "" {
		log.Fatalf("missing required env %s", k)
	}
	return v
}

func getEnv(k, def string) string {
	if v := strings.TrimSpace(os.Getenv(k)); v != "" {
		return v
	}
	return def
}

func getInt(k string, def int64) int64 {
	v := getEnv(k, "")
	if v == "" {
		return def
	}
	n, err := strconv.ParseInt(v, 10, 64)
	if err != nil {
		log.Printf("config: bad %s=%q, using %d", k, v, def)
		return def
	}
	return n
}

func getFloat(k string, def float64) float64 {
	v := getEnv(k, "")
	if v == "" {
		return def
	}
	f, err := strconv.ParseFloat(v, 64)
	if err != nil {
		log.Printf("config: bad %s=%q, using %v", k, v, def)
		return def
	}
	return f
}

func splitList(s string) []string {
	var out []string
	for _, p := range strings.Split(s, ",") {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}

func Load() *Config {
	return &Config{
		Port: getEnv("PORT", "8000"),

		Store:       strings.ToLower(getEnv("STORE", "postgres")),
		DatabaseURL: ResolveDSN(),

		Detector:       strings.ToLower(getEnv("DETECTOR", "http")),
		DetectorURL:    getEnv("DETECTOR_URL", "http://localhost:5000/predict"),
		DetectorWSHost: getEnv("DETECTOR_WS_HOST", "localhost:8080"),
		DetectTimeout:  time.Duration(getInt("DETECT_TIMEOUT_SEC", 60)) * time.Second,
		MinConfidence:  getFloat("MIN_CONFIDENCE", 0.3),

		GeminiAPIKey: getEnv("GEMINI_API_KEY", ""),
		GeminiModel:  getEnv("GEMINI_MODEL", "gemini-2.5-flash"),

		Locale:        getEnv("LOCALE", "fr"),
		UploadsDir:    getEnv("UPLOADS_DIR", "uploads"),
		DefaultUserID: getInt("DEFAULT_USER_ID", 1),
		CORSOrigins:   splitList(getEnv("CORS_ORIGINS", "http://localhost:3000,http://localhost:3001")),

		TelegramBotToken: getEnv("TELEGRAM_BOT_TOKEN", ""),
		WebhookURL:       getEnv("WEBHOOK_URL", ""),
	}
}

// LoadBot is Load plus the variables only the Telegram front-end needs.
func LoadBot() *Config {
	cfg := Load()
	cfg.TelegramBotToken = mustEnv("TELEGRAM_BOT_TOKEN")
	return cfg
}

// ResolveDSN prefers DATABASE_URL and otherwise builds the DSN from POSTGRES_*/PG* variables.
func ResolveDSN() string {
	if v := strings.TrimSpace(os.Getenv("DATABASE_URL")); v != "" {
		return v
	}
	user := getEnv("POSTGRES_USER", "tidyroom")
	pass := os.Getenv("POSTGRES_PASSWORD")
	host := getEnv("PGHOST", "db")
	port := getEnv("PGPORT", "5432")
	db := getEnv("POSTGRES_DB", "tidyroom")

	u := &url.URL{
		Scheme:   "postgres",
		User:     url.UserPassword(user, pass),
		Host:     net.JoinHostPort(host, port),
		Path:     "/" + db,
		RawQuery: "sslmode=disable",
	}
	return u.String()
}

// SafeDSNSummary hides the password for logs.
func SafeDSNSummary(dsn string) string {
	u, err := url.Parse(dsn)
	if err != nil {
		return "dsn: parse error"
	}
	user := u.User.Username()
	host := u.Host
	port := ""
	if h, p, err := net.SplitHostPort(u.Host); err == nil {
		host, port = h, p
	}
	db := strings.TrimPrefix(u.Path, "/")
	if port == "" {
		return "host=" + host + " db=" + db + " user=" + user
	}
	return "host=" + host + " port=" + port + " db=" + db + " user=" + user
}
