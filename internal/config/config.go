package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"
)

// Config 聚合整个服务的配置项。
type Config struct {
	Server     ServerConfig
	Log        LogConfig
	Candidates CandidatesConfig
	Feed       FeedConfig
	Metrics    MetricsConfig
}

// Load 从环境变量加载配置。
func Load() (*Config, error) {
	server, err := loadServerConfig()
	if err != nil {
		return nil, err
	}

	candidates, err := loadCandidatesConfig()
	if err != nil {
		return nil, err
	}

	feed, err := loadFeedConfig()
	if err != nil {
		return nil, err
	}

	metricsEnabled, err := parseBoolEnv("METRICS_ENABLED", true)
	if err != nil {
		return nil, err
	}

	return &Config{
		Server:     server,
		Log:        LogConfig{Level: getEnvOrDefault("LOG_LEVEL", "info")},
		Candidates: candidates,
		Feed:       feed,
		Metrics:    MetricsConfig{Enabled: metricsEnabled},
	}, nil
}

// ServerConfig 描述 HTTP 服务配置。
type ServerConfig struct {
	Addr           string
	AllowedOrigins []string
}

// LogConfig 描述日志配置。
type LogConfig struct {
	Level string
}

// CandidatesConfig 描述候选人数据与分页配置。
type CandidatesConfig struct {
	SeedFile        string
	DefaultPageSize int
}

// FeedConfig 描述状态变更推送配置。
type FeedConfig struct {
	Buffer    int
	Heartbeat time.Duration
}

// MetricsConfig 描述 Prometheus 指标配置。
type MetricsConfig struct {
	Enabled bool
}

// loadServerConfig 解析服务器监听地址与跨域来源。
func loadServerConfig() (ServerConfig, error) {
	port := strings.TrimSpace(os.Getenv("PORT"))
	if port == "" {
		port = "5000"
	}

	origins := splitList(getEnvOrDefault("CORS_ALLOWED_ORIGINS", "*"))

	if strings.Contains(port, ":") {
		// 允许用户直接传入 ":5000" 或 "127.0.0.1:5000"。
		return ServerConfig{Addr: port, AllowedOrigins: origins}, nil
	}

	if strings.Contains(port, " ") {
		return ServerConfig{}, fmt.Errorf("invalid PORT value: %q", port)
	}

	return ServerConfig{Addr: ":" + port, AllowedOrigins: origins}, nil
}

func loadCandidatesConfig() (CandidatesConfig, error) {
	pageSize := 10
	if override, err := parseOptionalIntEnv("CANDIDATES_DEFAULT_PAGE_SIZE"); err != nil {
		return CandidatesConfig{}, err
	} else if override != nil {
		if *override < 1 {
			return CandidatesConfig{}, fmt.Errorf("invalid CANDIDATES_DEFAULT_PAGE_SIZE value %d: must be positive", *override)
		}
		pageSize = *override
	}

	return CandidatesConfig{
		SeedFile:        strings.TrimSpace(os.Getenv("CANDIDATES_SEED_FILE")),
		DefaultPageSize: pageSize,
	}, nil
}

func loadFeedConfig() (FeedConfig, error) {
	buffer := 16
	if override, err := parseOptionalIntEnv("FEED_BUFFER"); err != nil {
		return FeedConfig{}, err
	} else if override != nil {
		if *override < 1 {
			buffer = 1
		} else {
			buffer = *override
		}
	}

	heartbeatSeconds := 15
	if override, err := parseOptionalIntEnv("FEED_HEARTBEAT_SECONDS"); err != nil {
		return FeedConfig{}, err
	} else if override != nil {
		if *override < 1 {
			return FeedConfig{}, fmt.Errorf("invalid FEED_HEARTBEAT_SECONDS value %d: must be positive", *override)
		}
		heartbeatSeconds = *override
	}

	return FeedConfig{
		Buffer:    buffer,
		Heartbeat: time.Duration(heartbeatSeconds) * time.Second,
	}, nil
}

func getEnvOrDefault(key, defaultValue string) string {
	if value := strings.TrimSpace(os.Getenv(key)); value != "" {
		return value
	}
	return defaultValue
}

func splitList(raw string) []string {
	var out []string
	for _, part := range strings.Split(raw, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}

func parseBoolEnv(key string, defaultValue bool) (bool, error) {
	raw := strings.TrimSpace(os.Getenv(key))
	if raw == "" {
		return defaultValue, nil
	}

	val, err := strconv.ParseBool(raw)
	if err != nil {
		return false, fmt.Errorf("invalid %s value %q: %w", key, raw, err)
	}
	return val, nil
}

func parseOptionalIntEnv(key string) (*int, error) {
	raw, ok := os.LookupEnv(key)
	if !ok {
		return nil, nil
	}

	value := strings.TrimSpace(raw)
	if value == "" {
		return nil, nil
	}

	val, err := strconv.Atoi(value)
	if err != nil {
		return nil, fmt.Errorf("invalid %s value %q: %w", key, value, err)
	}
	return &val, nil
}
