// Package synth 并发生成报告的七个板块，任何一个失败都以兜底值替代
package synth

import (
	"context"
	"fmt"
	"sync"
	"time"

	"golang.org/x/time/rate"

	"github.com/iWorld-y/growth_radar/app/growth_radar/pkg/llm"
	"github.com/iWorld-y/growth_radar/app/growth_radar/pkg/logger"
	"github.com/iWorld-y/growth_radar/app/growth_radar/pkg/metrics"
	"github.com/iWorld-y/growth_radar/app/growth_radar/pkg/model"
)

// DefaultTimeout 单个板块生成的默认超时
const DefaultTimeout = 60 * time.Second

// Outcome 单个生成任务的结果标记
type Outcome struct {
	Section  model.SectionName
	Fallback bool
	Err      error
}

// Result 七个板块及其结果标记，Outcomes 与 model.AllSections 顺序一致
type Result struct {
	Sections model.Sections
	Outcomes []Outcome
}

// Fallbacks 使用兜底值的板块数
func (r Result) Fallbacks() int {
	n := 0
	for _, o := range r.Outcomes {
		if o.Fallback {
			n++
		}
	}
	return n
}

// Engine 生成引擎，所有任务共享同一个限流器
type Engine struct {
	gen     llm.Generator
	limiter *rate.Limiter
	timeout time.Duration
}

// NewLimiter 按每分钟请求数和突发数创建限流器
func NewLimiter(rpm, burst int) *rate.Limiter {
	if rpm <= 0 {
		return rate.NewLimiter(rate.Inf, 0)
	}
	if burst <= 0 {
		burst = 1
	}
	return rate.NewLimiter(rate.Limit(float64(rpm)/60.0), burst)
}

// NewEngine limiter 为 nil 时不限流
func NewEngine(gen llm.Generator, limiter *rate.Limiter, timeout time.Duration) *Engine {
	if limiter == nil {
		limiter = rate.NewLimiter(rate.Inf, 0)
	}
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	return &Engine{gen: gen, limiter: limiter, timeout: timeout}
}

// Run 为同一个上下文启动七个生成任务并等待全部结束，不会提前返回
func (e *Engine) Run(ctx context.Context, actx model.AnalysisContext) Result {
	var (
		wg       sync.WaitGroup
		sections model.Sections
		outcomes = make([]Outcome, len(model.AllSections))
	)

	spawn := func(i int, fn func() Outcome) {
		wg.Add(1)
		go func() {
			defer wg.Done()
			outcomes[i] = fn()
		}()
	}

	spawn(0, func() (o Outcome) {
		sections.Overview, o = runTask(ctx, e, model.SectionOverview, overviewPrompt(actx), parseOverview, FallbackOverview)
		return o
	})
	spawn(1, func() (o Outcome) {
		sections.ICEMatrix, o = runTask(ctx, e, model.SectionICEMatrix, iceMatrixPrompt(actx), parseICEMatrix, FallbackICEMatrix)
		return o
	})
	spawn(2, func() (o Outcome) {
		sections.AlertRadar, o = runTask(ctx, e, model.SectionAlertRadar, alertRadarPrompt(actx), parseAlertRadar, FallbackAlertRadar)
		return o
	})
	spawn(3, func() (o Outcome) {
		sections.Opportunities, o = runTask(ctx, e, model.SectionOpportunities, opportunitiesPrompt(actx), parseOpportunities, FallbackOpportunities)
		return o
	})
	spawn(4, func() (o Outcome) {
		sections.InsightCards, o = runTask(ctx, e, model.SectionInsightCards, insightCardsPrompt(actx), parseInsightCards, FallbackInsightCards)
		return o
	})
	spawn(5, func() (o Outcome) {
		sections.Playbooks, o = runTask(ctx, e, model.SectionPlaybooks, playbooksPrompt(actx), parsePlaybooks, FallbackPlaybooks)
		return o
	})
	spawn(6, func() (o Outcome) {
		sections.ROIProof, o = runTask(ctx, e, model.SectionROIProof, roiProofPrompt(actx), parseROIProof, FallbackROIProof)
		return o
	})

	wg.Wait()

	res := Result{Sections: sections, Outcomes: outcomes}
	if n := res.Fallbacks(); n > 0 {
		logger.Log.Warnf("报告生成完成，%d/%d 个板块使用兜底值", n, len(outcomes))
	}
	return res
}

func runTask[T any](ctx context.Context, e *Engine, section model.SectionName, prompt string,
	parse func(string) (T, error), fallback func() T) (T, Outcome) {
	start := time.Now()
	defer func() {
		metrics.SynthesisDuration.WithLabelValues(string(section)).Observe(time.Since(start).Seconds())
	}()

	v, err := generate(ctx, e, prompt, parse)
	if err != nil {
		logger.Log.WithField("section", section).Warnf("板块生成失败，使用兜底值: %v", err)
		metrics.SynthesisOutcomes.WithLabelValues(string(section), "fallback").Inc()
		return fallback(), Outcome{Section: section, Fallback: true, Err: err}
	}
	metrics.SynthesisOutcomes.WithLabelValues(string(section), "ok").Inc()
	return v, Outcome{Section: section}
}

func generate[T any](ctx context.Context, e *Engine, prompt string, parse func(string) (T, error)) (T, error) {
	var zero T
	tctx, cancel := context.WithTimeout(ctx, e.timeout)
	defer cancel()

	if err := e.limiter.Wait(tctx); err != nil {
		return zero, fmt.Errorf("rate limit: %w", err)
	}
	text, err := e.gen.Generate(tctx, prompt)
	if err != nil {
		return zero, fmt.Errorf("generate: %w", err)
	}
	v, err := parse(text)
	if err != nil {
		return zero, fmt.Errorf("parse: %w", err)
	}
	return v, nil
}
