// Package serper 是 google.serper.dev 搜索 API 的客户端
package serper

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"

	"github.com/iWorld-y/site_radar/pkg/search"
)

const defaultEndpoint = "https://google.serper.dev/search"

// Client Serper API 客户端
type Client struct {
	apiKey   string
	country  string
	endpoint string
	client   *http.Client
}

// Option 客户端选项
type Option func(*Client)

// WithEndpoint 替换 API 地址
func WithEndpoint(endpoint string) Option {
	return func(c *Client) { c.endpoint = endpoint }
}

// WithHTTPClient 替换底层 http.Client
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) { c.client = hc }
}

// NewClient country 为请求未指定地区时使用的 gl 参数
func NewClient(apiKey, country string, opts ...Option) *Client {
	c := &Client{
		apiKey:   apiKey,
		country:  country,
		endpoint: defaultEndpoint,
		client:   http.DefaultClient,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

var _ search.Searcher = (*Client)(nil)

// SearchRequest Serper 请求体
type SearchRequest struct {
	Q   string `json:"q"`
	GL  string `json:"gl,omitempty"`
	Num int    `json:"num,omitempty"`
}

// SearchResponse Serper 响应，只保留自然结果
type SearchResponse struct {
	Organic []OrganicResult `json:"organic"`
}

// OrganicResult 单条自然结果
type OrganicResult struct {
	Title    string `json:"title"`
	Link     string `json:"link"`
	Snippet  string `json:"snippet"`
	Position int    `json:"position"`
}

// Search implements search.Searcher
func (c *Client) Search(ctx context.Context, req *search.Request) (*search.Response, error) {
	gl := req.Country
	if gl == "" {
		gl = c.country
	}
	payload, err := json.Marshal(SearchRequest{Q: req.Query, GL: gl, Num: req.MaxResults})
	if err != nil {
		return nil, fmt.Errorf("marshal request failed: %w", err)
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, c.endpoint, bytes.NewReader(payload))
	if err != nil {
		return nil, fmt.Errorf("create request failed: %w", err)
	}
	httpReq.Header.Set("X-API-KEY", c.apiKey)
	httpReq.Header.Set("Content-Type", "application/json")

	res, err := c.client.Do(httpReq)
	if err != nil {
		return nil, fmt.Errorf("request failed: %w", err)
	}
	defer res.Body.Close()

	body, err := io.ReadAll(res.Body)
	if err != nil {
		return nil, fmt.Errorf("read body failed: %w", err)
	}
	if res.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("serper api error (status %d): %s", res.StatusCode, string(body))
	}

	var sr SearchResponse
	if err := json.Unmarshal(body, &sr); err != nil {
		return nil, fmt.Errorf("unmarshal response failed: %w", err)
	}

	results := make([]search.Result, 0, len(sr.Organic))
	for _, o := range sr.Organic {
		results = append(results, search.Result{
			Title:   o.Title,
			URL:     o.Link,
			Content: o.Snippet,
		})
	}
	return &search.Response{Results: results}, nil
}
