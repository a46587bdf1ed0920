package analysis

import (
	"encoding/json"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/iWorld-y/growth_radar/app/growth_radar/pkg/model"
)

var sampleRaw = model.RawSourceData{
	YouTube: json.RawMessage(`{
		"channel":{"id":"UC1","statistics":{"subscriberCount":"1200","viewCount":"50000","videoCount":"25"}},
		"recentVideos":[{"id":{"videoId":"v1"}},{"id":{"videoId":"v2"}}],
		"videoStats":[{"id":"v1","statistics":{"viewCount":"100"}},{"id":"v2","statistics":{"viewCount":"301"}}]
	}`),
	Social: json.RawMessage(`{
		"hashtags":[{"tag":"fitness","volume":32000,"growth":"+15%"}],
		"engagement":{"average_likes":250,"average_retweets":40,"trending_score":88.4}
	}`),
	News: json.RawMessage(`{"articles":[{"title":"A"},{"title":" "},{"title":"B"}],"totalResults":57}`),
}

func TestBuild_AllSources(t *testing.T) {
	got := Build(sampleRaw, " fitness ")

	want := model.AnalysisContext{
		Keywords: "fitness",
		Metrics: model.Metrics{
			YouTube: model.YouTubeMetrics{
				Available:           true,
				Subscribers:         1200,
				TotalViews:          50000,
				VideoCount:          25,
				AvgViewsPerVideo:    2000,
				RecentVideos:        2,
				AvgViewsRecentVideo: 200,
			},
			Social: model.SocialMetrics{Available: true, AverageLikes: 250, AverageShares: 40, TrendingScore: 88.4},
			News:   model.NewsMetrics{Available: true, TotalArticles: 57, RecentCoverage: 3, Headlines: []string{"A", "B"}},
		},
		TrendingHashtags: []model.Hashtag{{Tag: "fitness", Volume: 32000, Growth: "+15%"}},
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("Build() mismatch (-want +got):\n%s", diff)
	}
}

func TestBuild_Deterministic(t *testing.T) {
	a := Build(sampleRaw, "fitness")
	b := Build(sampleRaw, "fitness")
	if diff := cmp.Diff(a, b); diff != "" {
		t.Errorf("Build() not deterministic:\n%s", diff)
	}
}

func TestBuild_AbsentAndBrokenSources(t *testing.T) {
	raw := model.RawSourceData{
		YouTube: json.RawMessage(`{"channel":null}`),
		Social:  json.RawMessage(`null`),
		News:    json.RawMessage(`{"articles":"oops"`),
	}
	got := Build(raw, "")

	if got.Keywords != DefaultKeywords {
		t.Errorf("Keywords = %q, want %q", got.Keywords, DefaultKeywords)
	}
	want := model.Metrics{News: model.NewsMetrics{Headlines: []string{}}}
	if diff := cmp.Diff(want, got.Metrics); diff != "" {
		t.Errorf("metrics for absent sources (-want +got):\n%s", diff)
	}
	if got.TrendingHashtags == nil {
		t.Error("TrendingHashtags should be empty, not nil")
	}
}

func TestBuild_InvalidCounts(t *testing.T) {
	raw := model.RawSourceData{
		YouTube: json.RawMessage(`{"channel":{"statistics":{"subscriberCount":"n/a","viewCount":"900","videoCount":"0"}}}`),
	}
	yt := Build(raw, "x").Metrics.YouTube
	if !yt.Available || yt.Subscribers != 0 || yt.AvgViewsPerVideo != 0 || yt.TotalViews != 900 {
		t.Errorf("unexpected youtube metrics %+v", yt)
	}
}
