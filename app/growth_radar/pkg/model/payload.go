package model

import "encoding/json"

// Source 外部数据源名称，同时作为缓存键的一部分
type Source string

const (
	SourceYouTube Source = "youtube"
	SourceSocial  Source = "social"
	SourceNews    Source = "news"
)

// RawSourceData 单次请求内各数据源的原始载荷，nil 表示该数据源缺失
type RawSourceData struct {
	YouTube json.RawMessage
	Social  json.RawMessage
	News    json.RawMessage
}

// YouTubePayload 视频平台指标：频道统计 + 最近视频 + 视频统计
type YouTubePayload struct {
	Channel      *YouTubeChannel     `json:"channel"`
	RecentVideos []YouTubeSearchItem `json:"recentVideos"`
	VideoStats   []YouTubeVideo      `json:"videoStats"`
}

type YouTubeChannel struct {
	ID         string              `json:"id"`
	Snippet    YouTubeSnippet      `json:"snippet"`
	Statistics YouTubeChannelStats `json:"statistics"`
}

// YouTubeChannelStats 接口返回的计数均为字符串
type YouTubeChannelStats struct {
	ViewCount             string `json:"viewCount"`
	SubscriberCount       string `json:"subscriberCount"`
	HiddenSubscriberCount bool   `json:"hiddenSubscriberCount"`
	VideoCount            string `json:"videoCount"`
}

type YouTubeSnippet struct {
	Title       string `json:"title"`
	Description string `json:"description"`
	PublishedAt string `json:"publishedAt"`
}

type YouTubeSearchItem struct {
	ID struct {
		Kind    string `json:"kind"`
		VideoID string `json:"videoId"`
	} `json:"id"`
	Snippet YouTubeSnippet `json:"snippet"`
}

type YouTubeVideo struct {
	ID         string `json:"id"`
	Statistics struct {
		ViewCount    string `json:"viewCount"`
		LikeCount    string `json:"likeCount"`
		CommentCount string `json:"commentCount"`
	} `json:"statistics"`
	ContentDetails struct {
		Duration string `json:"duration"`
	} `json:"contentDetails"`
}

// SocialPayload 社交趋势载荷
type SocialPayload struct {
	Hashtags   []Hashtag  `json:"hashtags"`
	Engagement Engagement `json:"engagement"`
}

type Hashtag struct {
	Tag    string `json:"tag"`
	Volume int    `json:"volume"`
	Growth string `json:"growth"`
}

type Engagement struct {
	AverageLikes    int     `json:"average_likes"`
	AverageRetweets int     `json:"average_retweets"`
	TrendingScore   float64 `json:"trending_score"`
}

// NewsPayload 新闻搜索载荷，Articles 最多 10 条
type NewsPayload struct {
	Articles     []NewsArticle `json:"articles"`
	TotalResults int           `json:"totalResults"`
}

type NewsArticle struct {
	Source struct {
		ID   string `json:"id"`
		Name string `json:"name"`
	} `json:"source"`
	Author      string `json:"author"`
	Title       string `json:"title"`
	Description string `json:"description"`
	URL         string `json:"url"`
	URLToImage  string `json:"urlToImage"`
	PublishedAt string `json:"publishedAt"`
	Content     string `json:"content"`
}
