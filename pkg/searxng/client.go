// Package searxng 是自建 SearXNG 实例 JSON 接口的客户端
package searxng

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/iWorld-y/site_radar/pkg/search"
)

const (
	defaultTimeout = 30 * time.Second
	userAgent      = "Mozilla/5.0 (Macintosh; Intel Mac OS X 10_15_7) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/120.0.0.0 Safari/537.36"
)

// Client SearXNG 客户端
type Client struct {
	base   *url.URL
	err    error
	client *http.Client
}

// Option 客户端选项
type Option func(*Client)

// WithHTTPClient 替换底层 http.Client，会覆盖 timeout
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) { c.client = hc }
}

// NewClient timeout 单位为秒，0 表示默认 30 秒。
// baseURL 可以带路径前缀，例如 http://host/searxng
func NewClient(baseURL string, timeout int, opts ...Option) *Client {
	t := time.Duration(timeout) * time.Second
	if t <= 0 {
		t = defaultTimeout
	}
	c := &Client{client: &http.Client{Timeout: t}}
	c.base, c.err = url.Parse(strings.TrimRight(baseURL, "/"))
	for _, opt := range opts {
		opt(c)
	}
	return c
}

var _ search.Searcher = (*Client)(nil)

type response struct {
	Results []struct {
		Title   string  `json:"title"`
		URL     string  `json:"url"`
		Content string  `json:"content"`
		Score   float64 `json:"score"`
	} `json:"results"`
}

func category(topic string) string {
	if topic == "news" {
		return "news"
	}
	return "general"
}

func (c *Client) endpoint(req *search.Request) (string, error) {
	if c.err != nil {
		return "", fmt.Errorf("invalid base URL: %w", c.err)
	}
	u := c.base.JoinPath("search")
	q := url.Values{
		"q":          {req.Query},
		"format":     {"json"},
		"categories": {category(req.Topic)},
	}
	if req.Country != "" {
		q.Set("language", "en-"+strings.ToUpper(req.Country))
	}
	u.RawQuery = q.Encode()
	return u.String(), nil
}

// Search MaxResults 大于 0 时截断结果
func (c *Client) Search(ctx context.Context, req *search.Request) (*search.Response, error) {
	target, err := c.endpoint(req)
	if err != nil {
		return nil, err
	}
	httpReq, err := http.NewRequestWithContext(ctx, http.MethodGet, target, nil)
	if err != nil {
		return nil, fmt.Errorf("create request failed: %w", err)
	}
	httpReq.Header.Set("User-Agent", userAgent)
	httpReq.Header.Set("Accept", "application/json")

	res, err := c.client.Do(httpReq)
	if err != nil {
		return nil, fmt.Errorf("request failed: %w", err)
	}
	defer res.Body.Close()

	if res.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(io.LimitReader(res.Body, 4<<10))
		return nil, fmt.Errorf("searxng api error (status %d): %s", res.StatusCode, body)
	}

	var raw response
	if err := json.NewDecoder(res.Body).Decode(&raw); err != nil {
		return nil, fmt.Errorf("decode response failed: %w", err)
	}

	items := raw.Results
	if req.MaxResults > 0 && len(items) > req.MaxResults {
		items = items[:req.MaxResults]
	}
	out := &search.Response{Results: make([]search.Result, 0, len(items))}
	for _, r := range items {
		out.Results = append(out.Results, search.Result{Title: r.Title, URL: r.URL, Content: r.Content, Score: r.Score})
	}
	return out, nil
}
