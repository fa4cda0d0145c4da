package config

import (
	"fmt"
	"net"
	"net/url"
	"os"
	"strconv"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

type Config struct {
	Interval     time.Duration `yaml:"interval"`
	PageWidth    int           `yaml:"page_width"`
	MaxPages     int           `yaml:"max_pages"`
	FetchTimeout time.Duration `yaml:"fetch_timeout"`

	// PagedHosts lists hosts whose feeds are fetched page by page through
	// the PageParam query parameter.
	PagedHosts []string `yaml:"paged_hosts"`
	PageParam  string   `yaml:"page_param"`

	ListenAddr  string `yaml:"listen_addr"`
	ControlAddr string `yaml:"control_addr"`

	// UseDatabase merges the sources registered in Postgres into the list
	// read from the sources file.
	UseDatabase bool   `yaml:"use_database"`
	PGHost      string `yaml:"pg_host"`
	PGPort      int    `yaml:"pg_port"`
	PGUser      string `yaml:"pg_user"`
	PGPassword  string `yaml:"pg_password"`
	PGDatabase  string `yaml:"pg_database"`

	LogLevel string `yaml:"log_level"`
	LogFile  string `yaml:"log_file"`
}

func Default() Config {
	return Config{
		Interval:     30 * time.Minute,
		PageWidth:    10,
		MaxPages:     100,
		FetchTimeout: 20 * time.Second,
		PagedHosts:   []string{"wordpress.com"},
		PageParam:    "paged",
		ListenAddr:   ":8080",
		ControlAddr:  "127.0.0.1:8088",
		PGHost:       "localhost",
		PGPort:       5432,
		PGUser:       "postgres",
		PGPassword:   "changeme",
		PGDatabase:   "rssmerge",
		LogLevel:     "info",
	}
}

// Load applies, in order, the defaults, the YAML file at path (skipped
// when path is empty) and the environment.
func Load(path string) (Config, error) {
	cfg := Default()
	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return Config{}, fmt.Errorf("read config %s: %w", path, err)
		}
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return Config{}, fmt.Errorf("parse config %s: %w", path, err)
		}
	}
	applyEnv(&cfg)
	if err := cfg.validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func applyEnv(cfg *Config) {
	cfg.Interval = parseDurationEnv("RSSMERGE_INTERVAL", cfg.Interval)
	cfg.PageWidth = parseIntEnv("RSSMERGE_PAGE_WIDTH", cfg.PageWidth)
	cfg.MaxPages = parseIntEnv("RSSMERGE_MAX_PAGES", cfg.MaxPages)
	cfg.FetchTimeout = parseDurationEnv("RSSMERGE_FETCH_TIMEOUT", cfg.FetchTimeout)
	if v := os.Getenv("RSSMERGE_PAGED_HOSTS"); v != "" {
		cfg.PagedHosts = strings.Split(v, ",")
	}
	cfg.PageParam = getenv("RSSMERGE_PAGE_PARAM", cfg.PageParam)
	cfg.ListenAddr = getenv("RSSMERGE_LISTEN_ADDR", cfg.ListenAddr)
	cfg.ControlAddr = getenv("CONTROL_ADDR", cfg.ControlAddr)
	cfg.UseDatabase = parseBoolEnv("RSSMERGE_USE_DATABASE", cfg.UseDatabase)
	cfg.PGHost = getenv("POSTGRES_HOST", cfg.PGHost)
	cfg.PGPort = parseIntEnv("POSTGRES_PORT", cfg.PGPort)
	cfg.PGUser = getenv("POSTGRES_USER", cfg.PGUser)
	cfg.PGPassword = getenv("POSTGRES_PASSWORD", cfg.PGPassword)
	cfg.PGDatabase = getenv("POSTGRES_DBNAME", cfg.PGDatabase)
	cfg.LogLevel = getenv("RSSMERGE_LOG_LEVEL", cfg.LogLevel)
	cfg.LogFile = getenv("RSSMERGE_LOG_FILE", cfg.LogFile)
}

func (c Config) validate() error {
	if c.Interval <= 0 {
		return fmt.Errorf("interval must be positive, got %s", c.Interval)
	}
	if c.PageWidth <= 0 {
		return fmt.Errorf("page_width must be > 0, got %d", c.PageWidth)
	}
	if c.MaxPages <= 0 {
		return fmt.Errorf("max_pages must be > 0, got %d", c.MaxPages)
	}
	return nil
}

// DSN is the lib/pq connection string.
func (c Config) DSN() string {
	u := url.URL{
		Scheme:   "postgres",
		User:     url.UserPassword(c.PGUser, c.PGPassword),
		Host:     net.JoinHostPort(c.PGHost, strconv.Itoa(c.PGPort)),
		Path:     "/" + c.PGDatabase,
		RawQuery: "sslmode=disable",
	}
	return u.String()
}

func getenv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func parseIntEnv(key string, def int) int {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			return n
		}
	}
	return def
}

func parseBoolEnv(key string, def bool) bool {
	if v := os.Getenv(key); v != "" {
		if b, err := strconv.ParseBool(v); err == nil {
			return b
		}
	}
	return def
}

func parseDurationEnv(key string, def time.Duration) time.Duration {
	if v := os.Getenv(key); v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			return d
		}
	}
	return def
}
