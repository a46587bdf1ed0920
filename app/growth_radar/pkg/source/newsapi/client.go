package newsapi

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

	"github.com/go-shiori/go-readability"

	"github.com/iWorld-y/growth_radar/app/growth_radar/pkg/logger"
	"github.com/iWorld-y/growth_radar/app/growth_radar/pkg/model"
	"github.com/iWorld-y/growth_radar/app/growth_radar/pkg/source"
)

const (
	defaultBaseURL = "https://newsapi.org"
	maxArticles    = 10

	// 摘要短于该长度的文章才尝试抓取正文
	minDescriptionLen = 200
	maxEnriched       = 3
	maxContentLen     = 2000
)

// ContentExtractor 根据文章链接抓取正文纯文本
type ContentExtractor func(ctx context.Context, pageURL string) (string, error)

// ReadabilityExtractor 使用 readability 抓取并清洗正文
func ReadabilityExtractor(timeout time.Duration) ContentExtractor {
	return func(_ context.Context, pageURL string) (string, error) {
		article, err := readability.FromURL(pageURL, timeout)
		if err != nil {
			return "", err
		}
		return article.TextContent, nil
	}
}

// Client NewsAPI 客户端
type Client struct {
	apiKey   string
	baseURL  string
	language string
	pageSize int
	client   *http.Client
	extract  ContentExtractor
}

// Option 可选配置
type Option func(*Client)

// WithContentExtractor 开启正文补全
func WithContentExtractor(extract ContentExtractor) Option {
	return func(c *Client) {
		c.extract = extract
	}
}

// NewClient 创建客户端，timeout 单位为秒
func NewClient(apiKey, baseURL, language string, pageSize, timeout int, opts ...Option) *Client {
	if baseURL == "" {
		baseURL = defaultBaseURL
	}
	if pageSize <= 0 || pageSize > maxArticles {
		pageSize = maxArticles
	}
	t := time.Duration(timeout) * time.Second
	if t == 0 {
		t = 15 * time.Second
	}
	c := &Client{
		apiKey:   apiKey,
		baseURL:  strings.TrimRight(baseURL, "/"),
		language: language,
		pageSize: pageSize,
		client:   &http.Client{Timeout: t},
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Ensure Client implements source.Fetcher
var _ source.Fetcher = (*Client)(nil)

type everythingResponse struct {
	Status       string              `json:"status"`
	Code         string              `json:"code"`
	Message      string              `json:"message"`
	TotalResults int                 `json:"totalResults"`
	Articles     []model.NewsArticle `json:"articles"`
}

// Fetch 按关键词搜索新闻，按发布时间排序，最多返回 10 条
func (c *Client) Fetch(ctx context.Context, keywords string) (json.RawMessage, error) {
	if c.apiKey == "" {
		return nil, fmt.Errorf("newsapi: missing API key")
	}

	q := url.Values{}
	q.Set("q", keywords)
	q.Set("sortBy", "publishedAt")
	q.Set("pageSize", strconv.Itoa(c.pageSize))
	if c.language != "" {
		q.Set("language", c.language)
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/v2/everything?"+q.Encode(), nil)
	if err != nil {
		return nil, fmt.Errorf("newsapi: create request failed: %w", err)
	}
	httpReq.Header.Set("X-Api-Key", c.apiKey)

	res, err := c.client.Do(httpReq)
	if err != nil {
		return nil, fmt.Errorf("newsapi: request failed: %w", err)
	}
	defer res.Body.Close()

	body, err := io.ReadAll(res.Body)
	if err != nil {
		return nil, fmt.Errorf("newsapi: read body failed: %w", err)
	}

	var resp everythingResponse
	if err := json.Unmarshal(body, &resp); err != nil {
		return nil, fmt.Errorf("newsapi: unmarshal response failed (status %d): %w", res.StatusCode, err)
	}
	if res.StatusCode != http.StatusOK || resp.Status != "ok" {
		return nil, fmt.Errorf("newsapi: api error (status %d): %s %s", res.StatusCode, resp.Code, resp.Message)
	}

	articles := resp.Articles
	if len(articles) > maxArticles {
		articles = articles[:maxArticles]
	}
	if articles == nil {
		articles = []model.NewsArticle{}
	}
	if c.extract != nil {
		c.enrich(ctx, articles)
	}

	return json.Marshal(model.NewsPayload{
		Articles:     articles,
		TotalResults: resp.TotalResults,
	})
}

// enrich 为摘要过短的前几篇文章补全正文，失败时保留原摘要
func (c *Client) enrich(ctx context.Context, articles []model.NewsArticle) {
	enriched := 0
	for i := range articles {
		if enriched >= maxEnriched {
			return
		}
		art := &articles[i]
		if art.URL == "" || len(art.Description) >= minDescriptionLen {
			continue
		}
		enriched++

		content, err := c.extract(ctx, art.URL)
		if err != nil {
			logger.Log.Debugf("正文抓取失败，使用摘要 [%s]: %v", art.Title, err)
			continue
		}
		content = strings.TrimSpace(content)
		if len(content) > maxContentLen {
			content = strings.ToValidUTF8(content[:maxContentLen], "")
		}
		if len(content) > len(art.Content) {
			art.Content = content
		}
	}
}
