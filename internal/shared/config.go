package shared

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog/log"
)

type Config struct {
	AppEnv          string
	LogLevel        string
	CatalogPath     string
	SiteRoot        string
	BuildDate       time.Time
	WriteWorkers    int
	MetricsTextfile string
	MySQLDSN        string

	LinkcheckWorkers int
	LinkcheckRPS     float64
	LinkcheckTimeout time.Duration

	S3Bucket    string
	S3Region    string
	S3Endpoint  string
	S3Prefix    string
	S3AccessKey string
	S3SecretKey string
}

// Load reads the environment, after merging a .env file from the working directory when one
// exists. Variables already set in the environment win over the file.
func Load() (Config, error) {
	if err := godotenv.Load(); err != nil && !os.IsNotExist(err) {
		return Config{}, fmt.Errorf("load .env: %w", err)
	}
	atoi := func(k string, def int) int {
		if v := os.Getenv(k); v != "" {
			if n, err := strconv.Atoi(v); err == nil && n > 0 {
				return n
			}
		}
		return def
	}
	atof := func(k string, def float64) float64 {
		if v := os.Getenv(k); v != "" {
			if f, err := strconv.ParseFloat(v, 64); err == nil && f > 0 {
				return f
			}
		}
		return def
	}
	c := Config{
		AppEnv:          env("APP_ENV", "prod"),
		LogLevel:        env("LOG_LEVEL", "info"),
		CatalogPath:     env("CATALOG_PATH", "data/plans_data.json"),
		SiteRoot:        env("SITE_ROOT", "."),
		WriteWorkers:    atoi("WRITE_WORKERS", 8),
		MetricsTextfile: env("METRICS_TEXTFILE", ""),
		MySQLDSN:        env("MYSQL_DSN", ""),

		LinkcheckWorkers: atoi("LINKCHECK_WORKERS", 4),
		LinkcheckRPS:     atof("LINKCHECK_RPS", 5),
		LinkcheckTimeout: time.Duration(atoi("LINKCHECK_TIMEOUT_SECONDS", 10)) * time.Second,

		S3Bucket:    env("S3_BUCKET", ""),
		S3Region:    env("S3_REGION", "ap-northeast-1"),
		S3Endpoint:  env("S3_ENDPOINT", ""),
		S3Prefix:    env("S3_PREFIX", ""),
		S3AccessKey: env("S3_ACCESS_KEY_ID", ""),
		S3SecretKey: env("S3_SECRET_ACCESS_KEY", ""),
	}
	d, err := BuildDate(os.Getenv("SITEGEN_BUILD_DATE"), time.Now())
	if err != nil {
		return Config{}, err
	}
	c.BuildDate = d
	if c.S3Bucket == "" {
		log.Debug().Msg("S3_BUCKET is empty; publish is disabled")
	}
	return c, nil
}

// BuildDate parses a YYYY-MM-DD override. An empty value means now.
func BuildDate(v string, now time.Time) (time.Time, error) {
	if v == "" {
		return now, nil
	}
	d, err := time.Parse(time.DateOnly, v)
	if err != nil {
		return time.Time{}, fmt.Errorf("SITEGEN_BUILD_DATE %q: want YYYY-MM-DD: %w", v, err)
	}
	return d, nil
}

func env(k, def string) string {
	if v := os.Getenv(k); v != "" {
		return v
	}
	return def
}
