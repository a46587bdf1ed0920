package engine

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/iWorld-y/growth_radar/app/growth_radar/pkg/analysis"
	"github.com/iWorld-y/growth_radar/app/growth_radar/pkg/config"
	"github.com/iWorld-y/growth_radar/app/growth_radar/pkg/llm"
	"github.com/iWorld-y/growth_radar/app/growth_radar/pkg/logger"
	"github.com/iWorld-y/growth_radar/app/growth_radar/pkg/metrics"
	"github.com/iWorld-y/growth_radar/app/growth_radar/pkg/model"
	"github.com/iWorld-y/growth_radar/app/growth_radar/pkg/source"
	"github.com/iWorld-y/growth_radar/app/growth_radar/pkg/source/newsapi"
	"github.com/iWorld-y/growth_radar/app/growth_radar/pkg/source/social"
	"github.com/iWorld-y/growth_radar/app/growth_radar/pkg/source/youtube"
	"github.com/iWorld-y/growth_radar/app/growth_radar/pkg/synth"
)

// Engine 核心处理引擎：取数（带缓存）→ 构建上下文 → 并发生成 → 合成报告
type Engine struct {
	youtube *source.Cached
	social  *source.Cached
	news    *source.Cached
	synth   *synth.Engine
	now     func() time.Time
}

// Components 用于组装引擎的各个部件
type Components struct {
	YouTube source.Fetcher
	Social  source.Fetcher
	News    source.Fetcher
	Store   source.CacheStore
	TTL     time.Duration
	Synth   *synth.Engine
	Now     func() time.Time
}

// New 由已构造好的部件创建引擎
func New(c Components) *Engine {
	now := c.Now
	if now == nil {
		now = time.Now
	}
	return &Engine{
		youtube: source.NewCached(model.SourceYouTube, c.YouTube, c.Store, c.TTL).WithClock(now),
		social:  source.NewCached(model.SourceSocial, c.Social, c.Store, c.TTL).WithClock(now),
		news:    source.NewCached(model.SourceNews, c.News, c.Store, c.TTL).WithClock(now),
		synth:   c.Synth,
		now:     now,
	}
}

// NewEngine 根据配置创建引擎实例
func NewEngine(ctx context.Context, cfg *config.Config, store source.CacheStore) (*Engine, error) {
	gen, err := llm.NewGenerator(ctx, cfg.LLM)
	if err != nil {
		return nil, err
	}
	e, err := NewCollector(cfg, store)
	if err != nil {
		return nil, err
	}
	limiter := synth.NewLimiter(cfg.Concurrency.RPM, cfg.Concurrency.QPS)
	e.synth = synth.NewEngine(gen, limiter, cfg.LLMTimeout())
	return e, nil
}

// NewCollector 只装配数据源和缓存，不需要文本生成配置。
// 返回的引擎只能调用 Collect 和 BuildContext。
func NewCollector(cfg *config.Config, store source.CacheStore) (*Engine, error) {
	var socialFetcher source.Fetcher
	switch cfg.Sources.Social.Provider {
	case "placeholder", "":
		socialFetcher = social.NewPlaceholder(nil)
	default:
		return nil, fmt.Errorf("unsupported social provider: %s", cfg.Sources.Social.Provider)
	}

	yt := cfg.Sources.YouTube
	nw := cfg.Sources.News
	var newsOpts []newsapi.Option
	if nw.EnrichContent {
		newsOpts = append(newsOpts, newsapi.WithContentExtractor(newsapi.ReadabilityExtractor(time.Duration(nw.Timeout)*time.Second)))
	}

	return New(Components{
		YouTube: youtube.NewClient(yt.APIKey, yt.BaseURL, yt.MaxResults, yt.Timeout),
		Social:  socialFetcher,
		News:    newsapi.NewClient(nw.APIKey, nw.BaseURL, nw.Language, nw.PageSize, nw.Timeout, newsOpts...),
		Store:   store,
		TTL:     cfg.CacheTTL(),
	}), nil
}

// Request 一次分析请求，ChannelID 与 Keywords 至少提供一个
type Request struct {
	AccountID string
	ChannelID string
	Keywords  string
}

// Analysis 一次分析的完整产物
type Analysis struct {
	Raw      model.RawSourceData
	Context  model.AnalysisContext
	Outcomes []synth.Outcome
	Report   *model.CompositeReport
}

// Collect 并发读取三个数据源，命中缓存时不发起外部请求。
// 没有对应输入的数据源直接视为缺失。
func (e *Engine) Collect(ctx context.Context, req Request) model.RawSourceData {
	channel := strings.TrimSpace(req.ChannelID)
	keywords := strings.TrimSpace(req.Keywords)

	var raw model.RawSourceData
	g, gctx := errgroup.WithContext(ctx)
	fetch := func(c *source.Cached, query string, dst *json.RawMessage) {
		if query == "" {
			return
		}
		g.Go(func() error {
			*dst = c.Fetch(gctx, req.AccountID, query)
			return nil
		})
	}
	fetch(e.youtube, channel, &raw.YouTube)
	fetch(e.social, keywords, &raw.Social)
	fetch(e.news, keywords, &raw.News)
	// 数据源错误已在 Cached 内部吸收，这里不会返回错误
	_ = g.Wait()

	return raw
}

// BuildContext 取数并构建分析上下文，不调用 LLM
func (e *Engine) BuildContext(ctx context.Context, req Request) (model.RawSourceData, model.AnalysisContext) {
	raw := e.Collect(ctx, req)
	return raw, analysis.Build(raw, req.Keywords)
}

// Analyze 执行完整流程，总会返回包含七个板块的报告
func (e *Engine) Analyze(ctx context.Context, req Request) *Analysis {
	start := e.now()
	raw, actx := e.BuildContext(ctx, req)
	logger.Log.Infof("账户 [%s] 上下文构建完成: youtube=%t social=%t news=%t",
		req.AccountID, actx.Metrics.YouTube.Available, actx.Metrics.Social.Available, actx.Metrics.News.Available)

	res := e.synth.Run(ctx, actx)

	// 生成时间取所有板块结束之后
	report := model.Compose(res.Sections, e.now())
	metrics.ReportsGenerated.Inc()
	logger.Log.Infof("账户 [%s] 报告生成完成，耗时 %v，兜底板块 %d 个",
		req.AccountID, e.now().Sub(start).Round(time.Millisecond), res.Fallbacks())

	return &Analysis{
		Raw:      raw,
		Context:  actx,
		Outcomes: res.Outcomes,
		Report:   report,
	}
}
