package server

import (
	"context"

	"github.com/go-kratos/kratos/v2/log"

	"github.com/iWorld-y/growth_radar/app/growth/internal/conf"
	"github.com/iWorld-y/growth_radar/app/growth_radar/pkg/config"
	"github.com/iWorld-y/growth_radar/app/growth_radar/pkg/engine"
	grLogger "github.com/iWorld-y/growth_radar/app/growth_radar/pkg/logger"
	"github.com/iWorld-y/growth_radar/app/growth_radar/pkg/source"
)

// NewGrowthEngine 初始化 growth_radar 引擎，数据源缓存由 data 层提供
func NewGrowthEngine(c *conf.Growth, store source.CacheStore, logger log.Logger) (*engine.Engine, func(), error) {
	cfg := EngineConfig(c)

	// 初始化日志
	if err := grLogger.InitLogger(cfg.Log.Level, cfg.Log.File); err != nil {
		log.NewHelper(logger).Errorf("Failed to init growth_radar logger: %v", err)
		_ = grLogger.InitLogger("info", "") // 降级处理
	}

	eng, err := engine.NewEngine(context.Background(), cfg, store)
	if err != nil {
		log.NewHelper(logger).Errorf("Failed to init engine: %v", err)
		return nil, nil, err
	}

	cleanup := func() {
		log.NewHelper(logger).Info("Cleaning up growth_radar engine")
	}
	return eng, cleanup, nil
}

// EngineConfig 将 internal/conf.Growth 转换为 pkg/config.Config，并补全默认值
func EngineConfig(c *conf.Growth) *config.Config {
	cfg := &config.Config{}
	if c == nil {
		cfg.ApplyDefaults()
		return cfg
	}

	cfg.Cache.TTLHours = c.CacheTTLHours()
	if l := c.Llm; l != nil {
		cfg.LLM = config.LLMConfig{
			Provider:    l.Provider,
			BaseURL:     l.BaseUrl,
			APIKey:      l.ApiKey,
			Model:       l.Model,
			Temperature: l.Temperature,
			MaxTokens:   int(l.MaxTokens),
			Timeout:     int(l.Timeout),
		}
	}
	if s := c.Sources; s != nil {
		if y := s.Youtube; y != nil {
			cfg.Sources.YouTube = config.YouTubeConfig{
				APIKey:     y.ApiKey,
				BaseURL:    y.BaseUrl,
				MaxResults: int(y.MaxResults),
				Timeout:    int(y.Timeout),
			}
		}
		if n := s.News; n != nil {
			cfg.Sources.News = config.NewsConfig{
				APIKey:        n.ApiKey,
				BaseURL:       n.BaseUrl,
				Language:      n.Language,
				PageSize:      int(n.PageSize),
				Timeout:       int(n.Timeout),
				EnrichContent: n.EnrichContent,
			}
		}
		if so := s.Social; so != nil {
			cfg.Sources.Social.Provider = so.Provider
		}
	}
	if l := c.Log; l != nil {
		cfg.Log = config.LogConfig{Level: l.Level, File: l.File}
	}
	if cc := c.Concurrency; cc != nil {
		cfg.Concurrency = config.ConcurrencyConfig{QPS: int(cc.Qps), RPM: int(cc.Rpm)}
	}

	cfg.ApplyDefaults()
	return cfg
}
