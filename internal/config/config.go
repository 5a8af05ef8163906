package config

import (
	"log"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	Port     string
	DBDSN    string
	MediaDir string
	LogFile  string

	DefaultLocale string
	Locales       []string

	// Admin account upserted at startup. The password is hashed before it
	// reaches the database.
	AdminEmail    string
	AdminPassword string

	SendGridAPIKey string
	ContactFrom    string
	ContactTo      string
	CloudinaryURL  string

	CatalogTTL     time.Duration
	CatalogRefresh string // cron spec for the snapshot refresh; empty disables it
	SecureCookies  bool
}

// Load reads the environment, after merging an optional .env file (files
// passed in take precedence over ./.env; a missing file is not an error).
func Load(envFiles ...string) Config {
	if err := godotenv.Load(envFiles...); err != nil && !os.IsNotExist(err) {
		log.Printf("[config] could not read env file: %v", err)
	}

	cfg := Config{
		Port:           env("PORT", "8080"),
		DBDSN:          env("DB_DSN", "dealerlot.db"), // sqlite file in project root
		MediaDir:       env("MEDIA_DIR", "./web/media"),
		LogFile:        env("LOG_FILE", "./dealerlot.log"),
		DefaultLocale:  env("DEFAULT_LOCALE", "en"),
		Locales:        splitList(env("LOCALES", "en,de,nl,fr")),
		AdminEmail:     env("ADMIN_EMAIL", "admin@dealerlot.test"),
		AdminPassword:  os.Getenv("ADMIN_PASSWORD"),
		SendGridAPIKey: os.Getenv("SENDGRID_API_KEY"),
		ContactFrom:    env("CONTACT_FROM", "no-reply@dealerlot.test"),
		ContactTo:      env("CONTACT_TO", "sales@dealerlot.test"),
		CloudinaryURL:  os.Getenv("CLOUDINARY_URL"),
		CatalogTTL:     duration(os.Getenv("CATALOG_TTL"), 30*time.Second),
		CatalogRefresh: refreshSpec(os.Getenv("CATALOG_REFRESH")),
		SecureCookies:  boolean(os.Getenv("SECURE_COOKIES")),
	}
	log.Printf("[config] PORT=%s DB_DSN=%s MEDIA_DIR=%s LOG_FILE=%s LOCALES=%v DEFAULT_LOCALE=%s CATALOG_TTL=%s CATALOG_REFRESH=%q sendgrid=%t cloudinary=%t",
		cfg.Port, cfg.DBDSN, cfg.MediaDir, cfg.LogFile, cfg.Locales, cfg.DefaultLocale, cfg.CatalogTTL, cfg.CatalogRefresh,
		cfg.SendGridAPIKey != "", cfg.CloudinaryURL != "")
	return cfg
}

func env(key, def string) string {
	if v := strings.TrimSpace(os.Getenv(key)); v != "" {
		return v
	}
	return def
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

func duration(s string, def time.Duration) time.Duration {
	if s == "" {
		return def
	}
	d, err := time.ParseDuration(s)
	if err != nil || d < 0 {
		log.Printf("[config] bad duration %q, using %s", s, def)
		return def
	}
	return d
}

// refreshSpec defaults to every five minutes; "off" disables the job.
func refreshSpec(s string) string {
	switch s = strings.TrimSpace(s); strings.ToLower(s) {
	case "":
		return "@every 5m"
	case "off", "none", "false":
		return ""
	}
	return s
}

func boolean(s string) bool {
	b, _ := strconv.ParseBool(strings.TrimSpace(s))
	return b
}
