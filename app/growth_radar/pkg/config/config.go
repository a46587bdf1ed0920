package config

import (
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

// Config 报告引擎配置
type Config struct {
	LLM         LLMConfig         `yaml:"llm"`
	Sources     SourcesConfig     `yaml:"sources"`
	Cache       CacheConfig       `yaml:"cache"`
	Log         LogConfig         `yaml:"log"`
	Concurrency ConcurrencyConfig `yaml:"concurrency"`
}

// LLMConfig 文本生成服务配置
type LLMConfig struct {
	Provider    string  `yaml:"provider"` // openai or gemini
	BaseURL     string  `yaml:"base_url"`
	APIKey      string  `yaml:"api_key"`
	Model       string  `yaml:"model"`
	Temperature float32 `yaml:"temperature"`
	MaxTokens   int     `yaml:"max_tokens"`
	Timeout     int     `yaml:"timeout"` // 单个板块生成的超时（秒）
}

// SourcesConfig 外部数据源配置
type SourcesConfig struct {
	YouTube YouTubeConfig `yaml:"youtube"`
	News    NewsConfig    `yaml:"news"`
	Social  SocialConfig  `yaml:"social"`
}

// YouTubeConfig 视频平台指标接口
type YouTubeConfig struct {
	APIKey     string `yaml:"api_key"`
	BaseURL    string `yaml:"base_url"`
	MaxResults int    `yaml:"max_results"`
	Timeout    int    `yaml:"timeout"`
}

// NewsConfig 新闻搜索接口
type NewsConfig struct {
	APIKey        string `yaml:"api_key"`
	BaseURL       string `yaml:"base_url"`
	Language      string `yaml:"language"`
	PageSize      int    `yaml:"page_size"`
	Timeout       int    `yaml:"timeout"`
	EnrichContent bool   `yaml:"enrich_content"`
}

// SocialConfig 社交趋势数据源，目前只有 placeholder
type SocialConfig struct {
	Provider string `yaml:"provider"`
}

// CacheConfig 数据源缓存配置
type CacheConfig struct {
	TTLHours int `yaml:"ttl_hours"`
}

// LogConfig 日志相关配置
type LogConfig struct {
	Level string `yaml:"level"`
	File  string `yaml:"file"`
}

// ConcurrencyConfig LLM 调用限流配置
type ConcurrencyConfig struct {
	QPS int `yaml:"qps"`
	RPM int `yaml:"rpm"`
}

// LoadConfig 从指定路径加载配置并补全默认值
func LoadConfig(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, err
	}
	cfg.ApplyDefaults()

	return &cfg, nil
}

// ApplyDefaults 填充未配置的字段
func (c *Config) ApplyDefaults() {
	if c.LLM.Provider == "" {
		c.LLM.Provider = "openai"
	}
	if c.LLM.Temperature == 0 {
		c.LLM.Temperature = 0.7
	}
	if c.LLM.MaxTokens == 0 {
		c.LLM.MaxTokens = 2048
	}
	if c.LLM.Timeout == 0 {
		c.LLM.Timeout = 60
	}
	if c.Sources.YouTube.BaseURL == "" {
		c.Sources.YouTube.BaseURL = "https://www.googleapis.com/youtube/v3"
	}
	if c.Sources.YouTube.MaxResults == 0 {
		c.Sources.YouTube.MaxResults = 10
	}
	if c.Sources.YouTube.Timeout == 0 {
		c.Sources.YouTube.Timeout = 15
	}
	if c.Sources.News.BaseURL == "" {
		c.Sources.News.BaseURL = "https://newsapi.org"
	}
	if c.Sources.News.Language == "" {
		c.Sources.News.Language = "es"
	}
	if c.Sources.News.PageSize == 0 || c.Sources.News.PageSize > 10 {
		c.Sources.News.PageSize = 10
	}
	if c.Sources.News.Timeout == 0 {
		c.Sources.News.Timeout = 15
	}
	if c.Sources.Social.Provider == "" {
		c.Sources.Social.Provider = "placeholder"
	}
	if c.Cache.TTLHours == 0 {
		c.Cache.TTLHours = 24
	}
	if c.Log.Level == "" {
		c.Log.Level = "info"
	}
	if c.Concurrency.RPM == 0 {
		c.Concurrency.RPM = 60
	}
	if c.Concurrency.QPS == 0 {
		c.Concurrency.QPS = 7
	}
}

// CacheTTL 缓存有效期
func (c *Config) CacheTTL() time.Duration {
	return time.Duration(c.Cache.TTLHours) * time.Hour
}

// LLMTimeout 单次生成超时
func (c *Config) LLMTimeout() time.Duration {
	return time.Duration(c.LLM.Timeout) * time.Second
}
