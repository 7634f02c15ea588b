package shared

import (
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/rs/zerolog/log"
)

type Config struct {
	AppEnv      string
	HTTPAddr    string
	MetricsAddr string
	MySQLDSN    string
	RedisAddr   string
	RedisDB     int
	RedisPass   string
	DatasetBase string
	DatasetKey  string
	DatasetCSV  string
	Source      string
	Categories  []string
	Workers     int
	ReviewLimit int
	CacheTTL    time.Duration
}

func Load() Config {
	atoi := func(k string, def int) int {
		if v := os.Getenv(k); v != "" {
			if n, err := strconv.Atoi(v); err == nil {
				return n
			}
		}
		return def
	}
	c := Config{
		AppEnv:      env("APP_ENV", "prod"),
		HTTPAddr:    env("HTTP_ADDR", ":8080"),
		MetricsAddr: env("METRICS_ADDR", ":9100"),
		MySQLDSN:    env("MYSQL_DSN", "root:root@tcp(localhost:3306)/reviews?parseTime=true&charset=utf8mb4,utf8&loc=UTC"),
		RedisAddr:   env("REDIS_ADDR", "localhost:6379"),
		RedisPass:   env("REDIS_PASSWORD", ""),
		DatasetBase: env("DATASET_BASE_URL", ""),
		DatasetKey:  env("DATASET_API_KEY", ""),
		DatasetCSV:  env("DATASET_CSV", ""),
		Source:      env("DATASET_SOURCE", "master"),
		Categories:  splitCSV(env("CATEGORIES", "Books,Electronics,Clothing")),
		Workers:     atoi("INGEST_WORKERS", 4),
		ReviewLimit: atoi("INGEST_REVIEW_LIMIT", 1000),
		CacheTTL:    time.Duration(atoi("CACHE_TTL_SECONDS", 900)) * time.Second,
	}
	if c.DatasetBase == "" && c.DatasetCSV == "" {
		log.Warn().Msg("neither DATASET_BASE_URL nor DATASET_CSV is set; ingestor has nothing to load")
	}
	return c
}

func env(k, def string) string {
	if v := os.Getenv(k); v != "" {
		return v
	}
	return def
}

func splitCSV(s string) []string {
	parts := strings.Split(s, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if t := strings.TrimSpace(p); t != "" {
			out = append(out, t)
		}
	}
	return out
}
