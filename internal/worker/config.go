package worker

import (
	"fmt"
	"net/url"
	"os"
	"strconv"
	"strings"

	"github.com/cockroachdb/errors"
)

// Config holds everything the worker reads from the environment.
type Config struct {
	DSN           string
	RedisAddr     string
	RedisPassword string
	RedisDB       int
	// Queue is the Redis list key, "queue:" followed by WORKER_QUEUE.
	Queue string
}

// LoadConfig builds a Config from the process environment. Callers that want
// .env support load those files first.
func LoadConfig() (Config, error) {
	dsn, err := buildDSNFromEnv()
	if err != nil {
		return Config{}, err
	}
	cfg := Config{DSN: dsn, Queue: "queue:" + envOr("WORKER_QUEUE", "default")}
	if err := cfg.setRedisURL(envOr("REDIS_URL", "redis://localhost:6379/0")); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func buildDSNFromEnv() (string, error) {
	dbname := os.Getenv("POSTGRES_DB")
	if dbname == "" {
		if dbURL := os.Getenv("DATABASE_URL"); dbURL != "" {
			return dbURL, nil
		}
		return "", errors.New("POSTGRES_DB not set; set env vars or DATABASE_URL")
	}
	return fmt.Sprintf("host=%s port=%s user=%s password=%s dbname=%s sslmode=disable",
		envOr("POSTGRES_HOST", "localhost"),
		envOr("POSTGRES_PORT", "5432"),
		os.Getenv("POSTGRES_USER"),
		os.Getenv("POSTGRES_PASSWORD"),
		dbname,
	), nil
}

func (c *Config) setRedisURL(raw string) error {
	u, err := url.Parse(raw)
	if err != nil {
		return errors.Wrap(err, "invalid REDIS_URL")
	}
	if u.Scheme == "unix" || u.Host == "" {
		return errors.Newf("unsupported REDIS_URL %q: only tcp hosts are supported", raw)
	}
	c.RedisAddr = u.Host
	c.RedisPassword, _ = u.User.Password()
	c.RedisDB = 0
	if db := strings.TrimPrefix(u.Path, "/"); db != "" {
		i, err := strconv.Atoi(db)
		if err != nil {
			return errors.Wrapf(err, "invalid redis database %q", db)
		}
		c.RedisDB = i
	}
	return nil
}
