package youtube

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/iWorld-y/growth_radar/app/growth_radar/pkg/model"
	"github.com/iWorld-y/growth_radar/app/growth_radar/pkg/source"
)

const defaultBaseURL = "https://www.googleapis.com/youtube/v3"

// Client YouTube Data API 客户端，按频道 ID 拉取频道与最近视频统计
type Client struct {
	apiKey     string
	baseURL    string
	maxResults int
	client     *http.Client
}

// NewClient 创建客户端，timeout 单位为秒
func NewClient(apiKey, baseURL string, maxResults, timeout int) *Client {
	if baseURL == "" {
		baseURL = defaultBaseURL
	}
	if maxResults <= 0 {
		maxResults = 10
	}
	t := time.Duration(timeout) * time.Second
	if t == 0 {
		t = 15 * time.Second
	}
	return &Client{
		apiKey:     apiKey,
		baseURL:    strings.TrimRight(baseURL, "/"),
		maxResults: maxResults,
		client:     &http.Client{Timeout: t},
	}
}

// Ensure Client implements source.Fetcher
var _ source.Fetcher = (*Client)(nil)

type listResponse[T any] struct {
	Items []T `json:"items"`
}

// Fetch 依次请求 channels、search、videos 三个接口。频道不存在时返回 nil 载荷。
func (c *Client) Fetch(ctx context.Context, channelID string) (json.RawMessage, error) {
	if c.apiKey == "" {
		return nil, fmt.Errorf("youtube: missing API key")
	}

	var channels listResponse[model.YouTubeChannel]
	if err := c.get(ctx, "/channels", url.Values{
		"part": {"statistics,snippet"},
		"id":   {channelID},
	}, &channels); err != nil {
		return nil, err
	}
	if len(channels.Items) == 0 {
		return nil, nil
	}

	var search listResponse[model.YouTubeSearchItem]
	if err := c.get(ctx, "/search", url.Values{
		"part":       {"snippet"},
		"channelId":  {channelID},
		"order":      {"date"},
		"type":       {"video"},
		"maxResults": {strconv.Itoa(c.maxResults)},
	}, &search); err != nil {
		return nil, err
	}

	ids := make([]string, 0, len(search.Items))
	for _, item := range search.Items {
		if item.ID.VideoID != "" {
			ids = append(ids, item.ID.VideoID)
		}
	}

	var videos listResponse[model.YouTubeVideo]
	if len(ids) > 0 {
		if err := c.get(ctx, "/videos", url.Values{
			"part": {"statistics,contentDetails"},
			"id":   {strings.Join(ids, ",")},
		}, &videos); err != nil {
			return nil, err
		}
	}

	payload := model.YouTubePayload{
		Channel:      &channels.Items[0],
		RecentVideos: search.Items,
		VideoStats:   videos.Items,
	}
	return json.Marshal(payload)
}

func (c *Client) get(ctx context.Context, path string, q url.Values, v any) error {
	q.Set("key", c.apiKey)
	httpReq, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+path+"?"+q.Encode(), nil)
	if err != nil {
		return fmt.Errorf("youtube: create request failed: %w", err)
	}

	res, err := c.client.Do(httpReq)
	if err != nil {
		return fmt.Errorf("youtube: request %s failed: %w", path, err)
	}
	defer res.Body.Close()

	if res.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(io.LimitReader(res.Body, 4096))
		return fmt.Errorf("youtube: api error %s (status %d): %s", path, res.StatusCode, string(body))
	}

	if err := json.NewDecoder(res.Body).Decode(v); err != nil {
		return fmt.Errorf("youtube: decode %s failed: %w", path, err)
	}
	return nil
}
