// Package analysis 把各数据源的原始载荷整理成生成任务共用的分析上下文。
// 这里只做纯计算：没有 I/O，缺失或无法解析的数据一律按零值处理。
package analysis

import (
	"bytes"
	"encoding/json"
	"strconv"
	"strings"

	"github.com/iWorld-y/growth_radar/app/growth_radar/pkg/model"
)

// DefaultKeywords 未提供关键词时使用
const DefaultKeywords = "general content"

const maxHeadlines = 5

// Build 由 RawSourceData 推导 AnalysisContext，相同输入总是得到相同输出
func Build(raw model.RawSourceData, keywords string) model.AnalysisContext {
	ctx := model.AnalysisContext{
		Keywords:         strings.TrimSpace(keywords),
		TrendingHashtags: []model.Hashtag{},
		Metrics: model.Metrics{
			News: model.NewsMetrics{Headlines: []string{}},
		},
	}
	if ctx.Keywords == "" {
		ctx.Keywords = DefaultKeywords
	}

	var yt model.YouTubePayload
	if decode(raw.YouTube, &yt) && yt.Channel != nil {
		ctx.Metrics.YouTube = youtubeMetrics(yt)
	}

	var so model.SocialPayload
	if decode(raw.Social, &so) {
		ctx.Metrics.Social = model.SocialMetrics{
			Available:     true,
			AverageLikes:  so.Engagement.AverageLikes,
			AverageShares: so.Engagement.AverageRetweets,
			TrendingScore: so.Engagement.TrendingScore,
		}
		ctx.TrendingHashtags = append(ctx.TrendingHashtags, so.Hashtags...)
	}

	var nw model.NewsPayload
	if decode(raw.News, &nw) {
		ctx.Metrics.News = model.NewsMetrics{
			Available:      true,
			TotalArticles:  nw.TotalResults,
			RecentCoverage: len(nw.Articles),
			Headlines:      headlines(nw.Articles),
		}
	}

	return ctx
}

func youtubeMetrics(p model.YouTubePayload) model.YouTubeMetrics {
	stats := p.Channel.Statistics
	m := model.YouTubeMetrics{
		Available:    true,
		Subscribers:  parseCount(stats.SubscriberCount),
		TotalViews:   parseCount(stats.ViewCount),
		VideoCount:   parseCount(stats.VideoCount),
		RecentVideos: len(p.RecentVideos),
	}
	if m.VideoCount > 0 {
		m.AvgViewsPerVideo = m.TotalViews / m.VideoCount
	}

	var sum int64
	for _, v := range p.VideoStats {
		sum += parseCount(v.Statistics.ViewCount)
	}
	if len(p.VideoStats) > 0 {
		m.AvgViewsRecentVideo = sum / int64(len(p.VideoStats))
	}
	return m
}

func headlines(articles []model.NewsArticle) []string {
	out := []string{}
	for _, a := range articles {
		title := strings.TrimSpace(a.Title)
		if title == "" {
			continue
		}
		out = append(out, title)
		if len(out) == maxHeadlines {
			break
		}
	}
	return out
}

func decode(raw json.RawMessage, v any) bool {
	raw = bytes.TrimSpace(raw)
	if len(raw) == 0 || bytes.Equal(raw, []byte("null")) {
		return false
	}
	return json.Unmarshal(raw, v) == nil
}

// parseCount 接口计数是字符串，非法值按 0 处理
func parseCount(s string) int64 {
	n, err := strconv.ParseInt(strings.TrimSpace(s), 10, 64)
	if err != nil || n < 0 {
		return 0
	}
	return n
}
