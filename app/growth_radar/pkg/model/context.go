package model

import (
	"fmt"
	"strings"
)

// AnalysisContext 由原始数据推导出的标准化上下文，七个生成任务共用
type AnalysisContext struct {
	Keywords         string    `json:"keywords"`
	Metrics          Metrics   `json:"metrics"`
	TrendingHashtags []Hashtag `json:"trending_hashtags"`
}

type Metrics struct {
	YouTube YouTubeMetrics `json:"youtube"`
	Social  SocialMetrics  `json:"social"`
	News    NewsMetrics    `json:"news"`
}

type YouTubeMetrics struct {
	Available           bool  `json:"available"`
	Subscribers         int64 `json:"subscribers"`
	TotalViews          int64 `json:"total_views"`
	VideoCount          int64 `json:"video_count"`
	AvgViewsPerVideo    int64 `json:"avg_views_per_video"`
	RecentVideos        int   `json:"recent_videos"`
	AvgViewsRecentVideo int64 `json:"avg_views_recent_video"`
}

type SocialMetrics struct {
	Available     bool    `json:"available"`
	AverageLikes  int     `json:"average_likes"`
	AverageShares int     `json:"average_shares"`
	TrendingScore float64 `json:"trending_score"`
}

type NewsMetrics struct {
	Available      bool     `json:"available"`
	TotalArticles  int      `json:"total_articles"`
	RecentCoverage int      `json:"recent_coverage"`
	Headlines      []string `json:"headlines"`
}

// Describe 渲染 KPI 摘要，用于提示词和报告文字描述
func (c AnalysisContext) Describe() string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "Keyword/Topic: %s\n", c.Keywords)

	yt := c.Metrics.YouTube
	if yt.Available {
		fmt.Fprintf(&sb, "YouTube: %d subscribers, %d total views, %d videos, %d avg views per video, %d avg views on the last %d videos\n",
			yt.Subscribers, yt.TotalViews, yt.VideoCount, yt.AvgViewsPerVideo, yt.AvgViewsRecentVideo, yt.RecentVideos)
	} else {
		sb.WriteString("YouTube: not available\n")
	}

	so := c.Metrics.Social
	if so.Available {
		fmt.Fprintf(&sb, "Social: %.1f%% trending score, %d avg likes, %d avg shares\n",
			so.TrendingScore, so.AverageLikes, so.AverageShares)
	} else {
		sb.WriteString("Social: not available\n")
	}

	nw := c.Metrics.News
	if nw.Available {
		fmt.Fprintf(&sb, "News: %d articles found, %d recent\n", nw.TotalArticles, nw.RecentCoverage)
	} else {
		sb.WriteString("News: not available\n")
	}
	return sb.String()
}
