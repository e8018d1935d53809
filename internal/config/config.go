package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/yungbote/shopbot-backend/internal/platform/envutil"
)

// Config carries the static settings of the bot server. Values come from an
// optional YAML file; environment variables always win.
type Config struct {
	BaseURL           string `yaml:"base_url"`
	Port              string `yaml:"port"`
	CategoryFile      string `yaml:"category_structure_file"`
	CrawlerBaseURL    string `yaml:"crawler_base_url"`
	RedisAddr         string `yaml:"redis_addr"`
	KakaoRESTAPIKey   string `yaml:"-"`
	OAuthStateSecret  string `yaml:"-"`
	LogMode           string `yaml:"log_mode"`
	SpecWriterBacklog int    `yaml:"spec_writer_backlog"`
}

func Load(path string) (Config, error) {
	cfg := Config{
		BaseURL:           "http://localhost:8080",
		Port:              "8080",
		CategoryFile:      "storage/category_structure.json",
		LogMode:           "development",
		SpecWriterBacklog: 64,
	}

	if path != "" {
		raw, err := os.ReadFile(path)
		if err != nil {
			if !os.IsNotExist(err) {
				return cfg, fmt.Errorf("read config file: %w", err)
			}
		} else if err := yaml.Unmarshal(raw, &cfg); err != nil {
			return cfg, fmt.Errorf("parse config file: %w", err)
		}
	}

	cfg.BaseURL = envutil.String("BASE_URL", cfg.BaseURL)
	cfg.Port = envutil.String("PORT", cfg.Port)
	cfg.CategoryFile = envutil.String("CATEGORY_STRUCTURE_FILE", cfg.CategoryFile)
	cfg.CrawlerBaseURL = envutil.String("CRAWLER_BASE_URL", cfg.CrawlerBaseURL)
	cfg.RedisAddr = envutil.String("REDIS_ADDR", cfg.RedisAddr)
	cfg.LogMode = envutil.String("LOG_MODE", cfg.LogMode)
	cfg.SpecWriterBacklog = envutil.Int("SPEC_WRITER_BACKLOG", cfg.SpecWriterBacklog)

	cfg.KakaoRESTAPIKey = envutil.String("KAKAO_REST_API_KEY", "")
	cfg.OAuthStateSecret = envutil.String("OAUTH_STATE_SECRET", "")

	return cfg, nil
}
